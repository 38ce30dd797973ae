package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/negpdo/emiti/internal/model"
)

// loadUsers reads the user list. Missing or unreadable files load as empty.
func (s *Snapshot) loadUsers() []model.User {
	data, err := os.ReadFile(s.usersPath)
	if err != nil {
		return nil
	}
	var users []model.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil
	}
	return users
}

// saveUsers rewrites the whole user list.
func (s *Snapshot) saveUsers(users []model.User) error {
	data, err := json.MarshalIndent(users, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding users: %w", err)
	}
	return writeFileAtomic(s.usersPath, data, 0600)
}

// Register appends a new account. It reports false if the username is taken.
func (s *Snapshot) Register(_ context.Context, username, passwordHash, role string) (bool, error) {
	users := s.loadUsers()
	for _, u := range users {
		if u.Username == username {
			return false, nil
		}
	}

	users = append(users, model.User{
		ID:           int64(len(users) + 1),
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().Format(model.TimeFormat),
	})

	if err := s.saveUsers(users); err != nil {
		return false, err
	}
	return true, nil
}

// GetUser returns the account with the given username, nil if absent.
func (s *Snapshot) GetUser(_ context.Context, username string) (*model.User, error) {
	for _, u := range s.loadUsers() {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

// SessionSecret reads the signing secret file, generating it on first use.
func (s *Snapshot) SessionSecret(_ context.Context) (string, error) {
	data, err := os.ReadFile(s.secretPath)
	if err == nil && len(data) > 0 {
		return string(data), nil
	}

	secret, err := newSecret()
	if err != nil {
		return "", err
	}
	if err := writeFileAtomic(s.secretPath, []byte(secret), 0600); err != nil {
		return "", err
	}
	return secret, nil
}
