package orchestrators

import (
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidPassword is returned when the admin password does not match.
var ErrInvalidPassword = errors.New("invalid password")

// LoginDeps holds dependencies for ExecuteLogin.
type LoginDeps struct {
	// AdminPasswordHash is the bcrypt hash of the shared admin password.
	AdminPasswordHash string
}

// ExecuteLogin verifies the shared admin password. The site has a single
// admin identity, so there is no account lookup, just a hash comparison.
// POST: Returns nil only when the password matches
func ExecuteLogin(password string, deps LoginDeps) error {
	if password == "" || deps.AdminPasswordHash == "" {
		slog.Info("auth_event", "event", "login_failed", "reason", "empty")
		return ErrInvalidPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(deps.AdminPasswordHash), []byte(password)); err != nil {
		slog.Info("auth_event", "event", "login_failed", "reason", "wrong_password")
		return ErrInvalidPassword
	}
	slog.Info("auth_event", "event", "login_succeeded")
	return nil
}
