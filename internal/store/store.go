package store

import (
	"context"

	"github.com/negpdo/emiti/internal/model"
)

// DefaultTopLimit is the ranking size used by the top-users view.
const DefaultTopLimit = 5

// TopUser is one row of the top-users ranking for an item name.
type TopUser struct {
	Username string
	Quantity int
}

// Inventory is the persistence and query engine for per-user item records.
// Domain outcomes (duplicate add, missing item) are reported through the
// boolean; the error channel is reserved for storage failures. A missing or
// unreadable durable source reads as empty, never as an error.
type Inventory interface {
	// AddItem inserts a new record for owner. It reports false if an item
	// with the same name already exists for that owner.
	AddItem(ctx context.Context, owner, name string, quantity int, price float64, code, expiryDate string) (bool, error)

	// UpdateItem overwrites the mutable fields of an existing record,
	// preserving its id and creation time. It reports false if the owner
	// has no item with that name.
	UpdateItem(ctx context.Context, owner, name string, quantity int, price float64, code, expiryDate string) (bool, error)

	// DeleteItem removes the record with the given name. It reports false
	// if the owner has no item with that name.
	DeleteItem(ctx context.Context, owner, name string) (bool, error)

	// FlagItem marks the first record with the given name. The flag is
	// never cleared. It reports false if no record matched.
	FlagItem(ctx context.Context, owner, name string) (bool, error)

	// GetInventory returns the owner's records, empty for unknown owners.
	GetInventory(ctx context.Context, owner string) ([]model.Item, error)

	// TopUsersForItem sums quantities of the named item per registered
	// user and returns up to limit entries sorted by descending total.
	// Users with no matching items contribute a zero total and are still
	// ranked; ties keep registration order.
	TopUsersForItem(ctx context.Context, name string, limit int) ([]TopUser, error)
}

// Credentials persists account records. Password hashing happens in the auth
// layer; only hashes ever reach a Credentials implementation.
type Credentials interface {
	// Register stores a new account. It reports false if the username is
	// already taken.
	Register(ctx context.Context, username, passwordHash, role string) (bool, error)

	// GetUser returns the account with the given username, nil if absent.
	GetUser(ctx context.Context, username string) (*model.User, error)

	// SessionSecret returns the signing secret for session tokens,
	// generating and persisting one on first use.
	SessionSecret(ctx context.Context) (string, error)
}
