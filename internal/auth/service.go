package auth

import (
	"errors"
	"fmt"

	"github.com/nkoval/hiveportal/internal/database"
)

// Expected failure outcomes. The reasons mirror what the portal shows the
// user; anything else coming out of Register or Login is a storage fault.
var (
	ErrUsernameTaken = errors.New("Username already exists")
	ErrUnknownUser   = errors.New("Username not found")
	ErrWrongPassword = errors.New("Invalid password")
)

// Service orchestrates registration and login against the credential
// store. It holds no session state; the HTTP layer carries identity in
// tokens.
type Service struct {
	db *database.DB
}

func NewService(db *database.DB) *Service {
	return &Service{db: db}
}

// Register creates a new account and returns its id. The username is
// pre-checked for existence so the common case fails with
// ErrUsernameTaken rather than a constraint error; the store's UNIQUE
// constraint still backstops a race. Format validation is the caller's
// job (see ValidateUsername, ValidatePassword) so that callers control
// which rules apply.
func (s *Service) Register(username, password, role string) (int64, error) {
	exists, err := s.db.UserExists(username)
	if err != nil {
		return 0, fmt.Errorf("checking username: %w", err)
	}
	if exists {
		return 0, ErrUsernameTaken
	}

	hash, err := HashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("hashing password: %w", err)
	}

	id, err := s.db.AddUser(username, hash, role)
	if err != nil {
		if errors.Is(err, database.ErrConflict) {
			return 0, ErrUsernameTaken
		}
		return 0, err
	}
	return id, nil
}

// Login verifies the credentials and returns the stored user record,
// including the role the session is gated by.
func (s *Service) Login(username, password string) (*database.User, error) {
	user, err := s.db.GetUser(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnknownUser
	}
	if !VerifyPassword(password, user.PasswordHash) {
		return nil, ErrWrongPassword
	}
	return user, nil
}
