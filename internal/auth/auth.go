package auth

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/negpdo/emiti/internal/store"
)

// Register hashes the password and stores a new account. It reports false if
// the username is already taken. Plaintext passwords never reach the store.
func Register(ctx context.Context, creds store.Credentials, username, password, role string) (bool, error) {
	if username == "" || password == "" {
		return false, fmt.Errorf("username and password required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hashing password: %w", err)
	}

	ok, err := creds.Register(ctx, username, string(hash), role)
	if err != nil {
		return false, err
	}
	if ok {
		slog.Info("user registered", "user", username, "role", role)
	}
	return ok, nil
}

// Login verifies the password against the stored hash and returns the
// account's role. A missing account and a wrong password are reported the
// same way.
func Login(ctx context.Context, creds store.Credentials, username, password string) (bool, string, error) {
	user, err := creds.GetUser(ctx, username)
	if err != nil {
		return false, "", err
	}
	if user == nil {
		return false, "", nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		slog.Warn("login failed", "user", username)
		return false, "", nil
	}

	slog.Info("user logged in", "user", username, "role", user.Role)
	return true, user.Role, nil
}
