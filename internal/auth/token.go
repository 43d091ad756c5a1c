package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Session is the identity a verified token carries. It replaces ambient
// "current user" state: every gated call receives one explicitly.
type Session struct {
	Username string
	Role     string
}

type claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Role     string `json:"role"`
}

// GenerateToken mints an HS256 session token for the user.
func GenerateToken(s Session, secret []byte, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
		Username: s.Username,
		Role:     s.Role,
	})
	return token.SignedString(secret)
}

// ParseToken verifies the token and returns the session it carries.
func ParseToken(tokenString string, secret []byte) (*Session, error) {
	c := &claims{}
	token, err := jwt.ParseWithClaims(tokenString, c, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return &Session{Username: c.Username, Role: c.Role}, nil
}
