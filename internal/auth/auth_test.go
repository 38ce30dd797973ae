package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/negpdo/emiti/internal/model"
	"github.com/negpdo/emiti/internal/store"
)

func TestRegisterAndLogin(t *testing.T) {
	creds := store.NewSnapshot(t.TempDir())
	ctx := context.Background()

	ok, err := Register(ctx, creds, "alice", "s3cret", model.RolePharmacist)
	require.NoError(t, err)
	require.True(t, ok)

	// The stored hash must not be the plaintext password.
	u, err := creds.GetUser(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.NotEqual(t, "s3cret", u.PasswordHash)

	ok, role, err := Login(ctx, creds, "alice", "s3cret")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, model.RolePharmacist, role)
}

func TestLoginWrongPassword(t *testing.T) {
	creds := store.NewSnapshot(t.TempDir())
	ctx := context.Background()

	Register(ctx, creds, "alice", "s3cret", model.RolePharmacist)

	ok, role, err := Login(ctx, creds, "alice", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, role)
}

func TestLoginUnknownUser(t *testing.T) {
	creds := store.NewSnapshot(t.TempDir())

	ok, role, err := Login(context.Background(), creds, "nobody", "whatever")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, role)
}

func TestRegisterTakenUsername(t *testing.T) {
	creds := store.NewSnapshot(t.TempDir())
	ctx := context.Background()

	ok, err := Register(ctx, creds, "alice", "one", model.RoleAdmin)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = Register(ctx, creds, "alice", "two", model.RoleHospital)
	require.NoError(t, err)
	assert.False(t, ok)

	// The first registration still authenticates.
	ok, role, err := Login(ctx, creds, "alice", "one")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, model.RoleAdmin, role)
}

func TestRegisterEmptyFields(t *testing.T) {
	creds := store.NewSnapshot(t.TempDir())
	ctx := context.Background()

	_, err := Register(ctx, creds, "", "pass", model.RoleAdmin)
	assert.Error(t, err)

	_, err = Register(ctx, creds, "user", "", model.RoleAdmin)
	assert.Error(t, err)
}

func TestSessionRoundTrip(t *testing.T) {
	dir := t.TempDir()
	creds := store.NewSnapshot(dir)
	ctx := context.Background()
	path := filepath.Join(dir, "session.token")

	require.NoError(t, SaveSession(ctx, creds, path, 7, "alice", model.RolePharmacist))

	claims, err := LoadSession(ctx, creds, path)
	require.NoError(t, err)
	require.NotNil(t, claims)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, model.RolePharmacist, claims.Role)

	ClearSession(path)

	claims, err = LoadSession(ctx, creds, path)
	require.NoError(t, err)
	assert.Nil(t, claims, "cleared session must not resume")
}

func TestLoadSessionMissingFile(t *testing.T) {
	dir := t.TempDir()
	creds := store.NewSnapshot(dir)

	claims, err := LoadSession(context.Background(), creds, filepath.Join(dir, "nope.token"))
	require.NoError(t, err)
	assert.Nil(t, claims)
}

func TestLoadSessionTamperedToken(t *testing.T) {
	dir := t.TempDir()
	creds := store.NewSnapshot(dir)
	ctx := context.Background()
	path := filepath.Join(dir, "session.token")

	require.NoError(t, SaveSession(ctx, creds, path, 1, "alice", model.RoleAdmin))

	// Corrupt the token on disk; the session must be dropped, not trusted.
	require.NoError(t, os.WriteFile(path, []byte("tampered.token.value"), 0600))

	claims, err := LoadSession(ctx, creds, path)
	require.NoError(t, err)
	assert.Nil(t, claims)
}
