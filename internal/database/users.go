package database

import (
	"database/sql"
	"fmt"
)

// AddUser inserts a credential row and returns the assigned user id. A
// duplicate username yields ErrConflict; UserExists is the friendlier
// pre-check, the UNIQUE constraint here is the authoritative guard.
func (db *DB) AddUser(username, passwordHash, role string) (int64, error) {
	res, err := db.Exec(
		`INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)`,
		username, passwordHash, role,
	)
	if isConstraintErr(err) {
		return 0, fmt.Errorf("insert user %q: %w", username, ErrConflict)
	}
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// GetUser looks up a user by exact username. Absence is a normal outcome
// and returns (nil, nil).
func (db *DB) GetUser(username string) (*User, error) {
	u := &User{}
	err := db.QueryRow(
		`SELECT id, username, password_hash, role FROM users WHERE username = ?`, username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (db *DB) UserExists(username string) (bool, error) {
	var id int64
	err := db.QueryRow(`SELECT id FROM users WHERE username = ?`, username).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return true, nil
}
