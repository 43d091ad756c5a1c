package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrConflict means a primary-key or uniqueness constraint rejected a write.
	ErrConflict = errors.New("conflict")
	// ErrUnknownColumn means an update named a column outside the table's column set.
	ErrUnknownColumn = errors.New("unknown column")
)

// Table describes one keyed table. Columns lists every column in schema
// order, the primary key first. The three record kinds share this one
// accessor instead of carrying a CRUD triplet each.
type Table struct {
	Name     string
	IDColumn string
	Columns  []string
}

var (
	Incidents = Table{
		Name:     "cyber_incidents",
		IDColumn: "incident_id",
		Columns:  []string{"incident_id", "timestamp", "severity", "category", "status", "description"},
	}
	Datasets = Table{
		Name:     "datasets_metadata",
		IDColumn: "dataset_id",
		Columns:  []string{"dataset_id", "name", "rows", "columns", "uploaded_by", "upload_date"},
	}
	Tickets = Table{
		Name:     "it_tickets",
		IDColumn: "ticket_id",
		Columns:  []string{"ticket_id", "priority", "description", "status", "assigned_to", "created_at", "resolution_time_hours"},
	}
)

// Row is one table row keyed by column name, as returned by Snapshot.
type Row map[string]any

func (t Table) hasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

func isConstraintErr(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
}

// InsertRow appends one full row, values in Table.Columns order. A
// primary-key collision yields ErrConflict and leaves the table unchanged.
func (db *DB) InsertRow(t Table, values ...any) error {
	if len(values) != len(t.Columns) {
		return fmt.Errorf("insert %s: got %d values, want %d", t.Name, len(values), len(t.Columns))
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(t.Columns)), ", ")
	_, err := db.Exec(
		fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", t.Name, strings.Join(t.Columns, ", "), placeholders),
		values...,
	)
	if isConstraintErr(err) {
		return fmt.Errorf("insert %s id: %w", t.Name, ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("insert %s: %w", t.Name, err)
	}
	return nil
}

// UpdateRow sets only the named columns of the row matching id and reports
// how many rows matched (zero when the id is absent). Column names are
// checked against the descriptor before any SQL is built.
func (db *DB) UpdateRow(t Table, id int64, changes map[string]any) (int64, error) {
	if len(changes) == 0 {
		return 0, fmt.Errorf("update %s: no columns given", t.Name)
	}

	setClauses := make([]string, 0, len(changes))
	values := make([]any, 0, len(changes)+1)
	for col, val := range changes {
		if col == t.IDColumn || !t.hasColumn(col) {
			return 0, fmt.Errorf("update %s: %q: %w", t.Name, col, ErrUnknownColumn)
		}
		setClauses = append(setClauses, col+" = ?")
		values = append(values, val)
	}
	values = append(values, id)

	res, err := db.Exec(
		fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?", t.Name, strings.Join(setClauses, ", "), t.IDColumn),
		values...,
	)
	if err != nil {
		return 0, fmt.Errorf("update %s: %w", t.Name, err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// DeleteRow removes the row matching id and reports how many rows matched.
func (db *DB) DeleteRow(t Table, id int64) (int64, error) {
	res, err := db.Exec(
		fmt.Sprintf("DELETE FROM %s WHERE %s = ?", t.Name, t.IDColumn), id,
	)
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", t.Name, err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// GetRow reads the row matching id. Absence is a normal outcome and
// returns (nil, nil).
func (db *DB) GetRow(t Table, id int64) (Row, error) {
	values := make([]any, len(t.Columns))
	ptrs := make([]any, len(t.Columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	err := db.QueryRow(
		fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?", strings.Join(t.Columns, ", "), t.Name, t.IDColumn), id,
	).Scan(ptrs...)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s row: %w", t.Name, err)
	}
	row := make(Row, len(t.Columns))
	for i, col := range t.Columns {
		row[col] = values[i]
	}
	return row, nil
}

// Snapshot reads the whole table ordered by primary key. Callers filter the
// result in memory; there is no query surface beyond this.
func (db *DB) Snapshot(t Table) ([]Row, error) {
	rows, err := db.Query(
		fmt.Sprintf("SELECT %s FROM %s ORDER BY %s", strings.Join(t.Columns, ", "), t.Name, t.IDColumn),
	)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", t.Name, err)
	}
	defer rows.Close()

	var snapshot []Row
	for rows.Next() {
		values := make([]any, len(t.Columns))
		ptrs := make([]any, len(t.Columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", t.Name, err)
		}
		row := make(Row, len(t.Columns))
		for i, col := range t.Columns {
			row[col] = values[i]
		}
		snapshot = append(snapshot, row)
	}
	return snapshot, rows.Err()
}

func (db *DB) CountRows(t Table) (int, error) {
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + t.Name).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", t.Name, err)
	}
	return n, nil
}

// CountRowsWhere counts rows with column = value, for the aggregate stats
// the dashboard and summary report consume.
func (db *DB) CountRowsWhere(t Table, column string, value any) (int, error) {
	if !t.hasColumn(column) {
		return 0, fmt.Errorf("count %s: %q: %w", t.Name, column, ErrUnknownColumn)
	}
	var n int
	err := db.QueryRow(
		fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = ?", t.Name, column), value,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", t.Name, err)
	}
	return n, nil
}
