package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
)

// SessionSecret retrieves the session-token signing secret from the settings
// table, generating and storing one on first use. The key column is quoted
// with backticks, which both SQLite and MySQL accept.
func (s *SQL) SessionSecret(ctx context.Context) (string, error) {
	var secret string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM settings WHERE `key` = 'session_secret'",
	).Scan(&secret)
	if err == nil {
		return secret, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("querying session secret: %w", err)
	}

	candidate, err := newSecret()
	if err != nil {
		return "", err
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO settings (`key`, value) VALUES ('session_secret', ?)", candidate,
	)
	if err != nil {
		// Another process may have won the insert; read whatever is there.
		if rerr := s.db.QueryRowContext(ctx,
			"SELECT value FROM settings WHERE `key` = 'session_secret'",
		).Scan(&secret); rerr == nil {
			return secret, nil
		}
		return "", fmt.Errorf("storing session secret: %w", err)
	}
	return candidate, nil
}

// newSecret generates a random hex-encoded signing secret.
func newSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating session secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
