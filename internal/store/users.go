package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/negpdo/emiti/internal/model"
)

// Register stores a new account row. It reports false if the username is
// already taken.
func (s *SQL) Register(ctx context.Context, username, passwordHash, role string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE username = ?`, username,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking username: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, role, created_at) VALUES (?, ?, ?, ?)`,
		username, passwordHash, role, time.Now().Format(model.TimeFormat),
	)
	if err != nil {
		return false, fmt.Errorf("registering user: %w", err)
	}
	return true, nil
}

// GetUser returns the account with the given username, nil if absent.
func (s *SQL) GetUser(ctx context.Context, username string) (*model.User, error) {
	u := &model.User{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, role, created_at
		 FROM users WHERE username = ?`, username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}
