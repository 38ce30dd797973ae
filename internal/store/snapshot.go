package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/negpdo/emiti/internal/model"
)

// Snapshot is the file-backed store: one JSON file maps owner -> item name
// -> records, a second holds the user list. Every mutation re-reads the
// whole file, mutates the mapping, and rewrites it. There is no locking;
// concurrent writers race at the granularity of a full save, which is an
// accepted limitation of the format.
type Snapshot struct {
	invPath    string
	usersPath  string
	secretPath string
}

// Snapshot file names inside the data directory.
const (
	inventoryFile = "inventory.json"
	usersFile     = "users.json"
	secretFile    = "session.secret"
)

// NewSnapshot returns a file-backed store rooted at dir. The directory is
// created on demand by the first save.
func NewSnapshot(dir string) *Snapshot {
	return &Snapshot{
		invPath:    filepath.Join(dir, inventoryFile),
		usersPath:  filepath.Join(dir, usersFile),
		secretPath: filepath.Join(dir, secretFile),
	}
}

// Load reads the inventory mapping. A missing or unreadable file loads as an
// empty mapping; absence of data is not an error.
func (s *Snapshot) Load() *model.Inventory {
	data, err := os.ReadFile(s.invPath)
	if err != nil {
		return model.NewInventory()
	}
	inv := model.NewInventory()
	if err := json.Unmarshal(data, inv); err != nil {
		return model.NewInventory()
	}
	return inv
}

// Save rewrites the whole inventory mapping. The file is replaced with a
// rename so readers never observe a partial write.
func (s *Snapshot) Save(inv *model.Inventory) error {
	data, err := json.MarshalIndent(inv, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding inventory: %w", err)
	}
	return writeFileAtomic(s.invPath, data, 0644)
}

// AddItem appends a new record for owner. The id is the owner's current
// item count plus one; ids are not reassigned on deletion.
func (s *Snapshot) AddItem(_ context.Context, owner, name string, quantity int, price float64, code, expiryDate string) (bool, error) {
	inv := s.Load()
	oi := inv.EnsureOwner(owner)
	if oi.Has(name) {
		return false, nil
	}

	oi.Set(name, []model.Item{{
		ID:         int64(oi.Len() + 1),
		Name:       name,
		Quantity:   quantity,
		Price:      price,
		Code:       code,
		ExpiryDate: expiryDate,
		CreatedAt:  time.Now().Format(model.TimeFormat),
	}})

	if err := s.Save(inv); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateItem replaces the record under name, keeping its id and creation
// time and stamping the update time.
func (s *Snapshot) UpdateItem(_ context.Context, owner, name string, quantity int, price float64, code, expiryDate string) (bool, error) {
	inv := s.Load()
	oi := inv.Owner(owner)
	if !oi.Has(name) {
		return false, nil
	}

	prev := oi.Get(name)[0]
	oi.Set(name, []model.Item{{
		ID:         prev.ID,
		Name:       name,
		Quantity:   quantity,
		Price:      price,
		Code:       code,
		ExpiryDate: expiryDate,
		CreatedAt:  prev.CreatedAt,
		UpdatedAt:  time.Now().Format(model.TimeFormat),
		Flag:       prev.Flag,
	}})

	if err := s.Save(inv); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteItem removes the record under name.
func (s *Snapshot) DeleteItem(_ context.Context, owner, name string) (bool, error) {
	inv := s.Load()
	if !inv.Owner(owner).Delete(name) {
		return false, nil
	}
	if err := s.Save(inv); err != nil {
		return false, err
	}
	return true, nil
}

// FlagItem scans the owner's records in order and marks the first one whose
// name matches.
func (s *Snapshot) FlagItem(_ context.Context, owner, name string) (bool, error) {
	inv := s.Load()
	oi := inv.Owner(owner)
	for _, n := range oi.Names() {
		items := oi.Get(n)
		for i := range items {
			if items[i].Name != name {
				continue
			}
			items[i].Flag = true
			oi.Set(n, items)
			if err := s.Save(inv); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// GetInventory returns the owner's records in insertion order.
func (s *Snapshot) GetInventory(_ context.Context, owner string) ([]model.Item, error) {
	return s.Load().Owner(owner).Items(), nil
}

// TopUsersForItem sums quantities of the named item per owner in the file.
// Owners without the item keep a zero total and stay in the ranking; ties
// keep file order.
func (s *Snapshot) TopUsersForItem(_ context.Context, name string, limit int) ([]TopUser, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}

	inv := s.Load()
	var top []TopUser
	for _, owner := range inv.Owners() {
		total := 0
		oi := inv.Owner(owner)
		for _, n := range oi.Names() {
			for _, item := range oi.Get(n) {
				if item.Name == name {
					total += item.Quantity
				}
			}
		}
		top = append(top, TopUser{Username: owner, Quantity: total})
	}

	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Quantity > top[j].Quantity
	})
	if len(top) > limit {
		top = top[:limit]
	}
	return top, nil
}

// writeFileAtomic writes data to a temporary file in the target directory
// and renames it into place.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting file mode: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", filepath.Base(path), err)
	}
	return nil
}
