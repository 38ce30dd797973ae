package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/negpdo/emiti/internal/model"
)

// SQL is the table-backed store. Items live in a single table keyed by a
// surrogate id with one row per (owner, name); users and the session secret
// live alongside. It works unchanged on SQLite and MySQL.
type SQL struct {
	db *sql.DB
}

// NewSQL returns a store backed by an opened database.
func NewSQL(db *sql.DB) *SQL {
	return &SQL{db: db}
}

// ownerID resolves a username to its user id. Unknown owners resolve to 0.
func (s *SQL) ownerID(ctx context.Context, owner string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM users WHERE username = ?`, owner,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("resolving owner: %w", err)
	}
	return id, nil
}

// AddItem inserts a new item row for owner, rejecting duplicates by name.
func (s *SQL) AddItem(ctx context.Context, owner, name string, quantity int, price float64, code, expiryDate string) (bool, error) {
	userID, err := s.ownerID(ctx, owner)
	if err != nil || userID == 0 {
		return false, err
	}

	var count int
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM items WHERE user_id = ? AND name = ?`,
		userID, name,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking for duplicate item: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO items (user_id, name, quantity, price, code, expiry_date, created_at, flag)
		 VALUES (?, ?, ?, ?, ?, ?, ?, 0)`,
		userID, name, quantity, price, code, expiryDate, time.Now().Format(model.TimeFormat),
	)
	if err != nil {
		return false, fmt.Errorf("adding item: %w", err)
	}
	return true, nil
}

// UpdateItem overwrites the mutable fields of an existing item row.
func (s *SQL) UpdateItem(ctx context.Context, owner, name string, quantity int, price float64, code, expiryDate string) (bool, error) {
	id, err := s.itemID(ctx, owner, name)
	if err != nil || id == 0 {
		return false, err
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE items SET quantity = ?, price = ?, code = ?, expiry_date = ?, updated_at = ?
		 WHERE id = ?`,
		quantity, price, code, expiryDate, time.Now().Format(model.TimeFormat), id,
	)
	if err != nil {
		return false, fmt.Errorf("updating item: %w", err)
	}
	return true, nil
}

// DeleteItem removes an item row by owner and name.
func (s *SQL) DeleteItem(ctx context.Context, owner, name string) (bool, error) {
	id, err := s.itemID(ctx, owner, name)
	if err != nil || id == 0 {
		return false, err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id); err != nil {
		return false, fmt.Errorf("deleting item: %w", err)
	}
	return true, nil
}

// FlagItem sets the flag on the first matching item row.
func (s *SQL) FlagItem(ctx context.Context, owner, name string) (bool, error) {
	id, err := s.itemID(ctx, owner, name)
	if err != nil || id == 0 {
		return false, err
	}

	if _, err := s.db.ExecContext(ctx, `UPDATE items SET flag = 1 WHERE id = ?`, id); err != nil {
		return false, fmt.Errorf("flagging item: %w", err)
	}
	return true, nil
}

// itemID returns the lowest item id matching (owner, name), 0 if none.
// The explicit lookup keeps the boolean result honest on MySQL, where an
// UPDATE that changes nothing reports zero affected rows.
func (s *SQL) itemID(ctx context.Context, owner, name string) (int64, error) {
	var id sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT MIN(i.id) FROM items i
		 JOIN users u ON u.id = i.user_id
		 WHERE u.username = ? AND i.name = ?`,
		owner, name,
	).Scan(&id)
	if err != nil && err != sql.ErrNoRows {
		return 0, fmt.Errorf("finding item: %w", err)
	}
	return id.Int64, nil
}

// GetInventory returns the owner's items in insertion order.
func (s *SQL) GetInventory(ctx context.Context, owner string) ([]model.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT i.id, i.name, i.quantity, i.price, i.code, i.expiry_date, i.created_at, i.updated_at, i.flag
		 FROM items i
		 JOIN users u ON u.id = i.user_id
		 WHERE u.username = ?
		 ORDER BY i.id`, owner,
	)
	if err != nil {
		return nil, fmt.Errorf("getting inventory: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var item model.Item
		var updatedAt sql.NullString
		if err := rows.Scan(&item.ID, &item.Name, &item.Quantity, &item.Price, &item.Code,
			&item.ExpiryDate, &item.CreatedAt, &updatedAt, &item.Flag); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		item.UpdatedAt = updatedAt.String
		items = append(items, item)
	}
	return items, rows.Err()
}

// TopUsersForItem ranks every user by total quantity of the named item.
// Users without the item keep a zero total and stay in the ranking; ties
// keep registration (id) order.
func (s *SQL) TopUsersForItem(ctx context.Context, name string, limit int) ([]TopUser, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT u.username, COALESCE(SUM(CASE WHEN i.name = ? THEN i.quantity ELSE 0 END), 0) AS total
		 FROM users u
		 LEFT JOIN items i ON i.user_id = u.id
		 GROUP BY u.id, u.username
		 ORDER BY total DESC, u.id
		 LIMIT ?`, name, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("ranking users: %w", err)
	}
	defer rows.Close()

	var top []TopUser
	for rows.Next() {
		var tu TopUser
		if err := rows.Scan(&tu.Username, &tu.Quantity); err != nil {
			return nil, fmt.Errorf("scanning ranking: %w", err)
		}
		top = append(top, tu)
	}
	return top, rows.Err()
}
