package auth

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/negpdo/emiti/internal/store"
)

// SaveSession issues a session token for the user and writes it to path, so
// a later run can resume the logged-in state.
func SaveSession(ctx context.Context, creds store.Credentials, path string, userID int64, username, role string) error {
	secret, err := creds.SessionSecret(ctx)
	if err != nil {
		return err
	}

	token, err := GenerateToken(secret, userID, username, role)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(token), 0600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

// LoadSession validates a previously saved session token. It returns nil
// (without error) when there is no session or the token no longer verifies,
// in which case a stale session file is removed.
func LoadSession(ctx context.Context, creds store.Credentials, path string) (*Claims, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil
	}

	secret, err := creds.SessionSecret(ctx)
	if err != nil {
		return nil, err
	}

	claims, err := ValidateToken(secret, string(data))
	if err != nil {
		os.Remove(path)
		return nil, nil
	}
	return claims, nil
}

// ClearSession removes the session file, logging the user out across runs.
func ClearSession(path string) {
	os.Remove(path)
}
