package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Inventory is the full durable mapping: owner -> item name -> records.
// JSON objects don't guarantee key order, but the file format relies on it
// twice: item ids are assigned from the owner's current count, and top-user
// ranking breaks ties in owner insertion order. Both key levels therefore
// keep their insertion order through a load/save round trip.
type Inventory struct {
	owners  []string
	byOwner map[string]*OwnerInventory
}

// OwnerInventory is one owner's partition: item name -> records, ordered.
type OwnerInventory struct {
	names  []string
	byName map[string][]Item
}

// NewInventory returns an empty inventory mapping.
func NewInventory() *Inventory {
	return &Inventory{byOwner: make(map[string]*OwnerInventory)}
}

// Owners returns owner names in insertion order.
func (inv *Inventory) Owners() []string {
	return inv.owners
}

// Owner returns the partition for owner, or nil if the owner has none.
func (inv *Inventory) Owner(owner string) *OwnerInventory {
	return inv.byOwner[owner]
}

// EnsureOwner returns the partition for owner, creating an empty one if needed.
func (inv *Inventory) EnsureOwner(owner string) *OwnerInventory {
	if oi, ok := inv.byOwner[owner]; ok {
		return oi
	}
	oi := &OwnerInventory{byName: make(map[string][]Item)}
	inv.owners = append(inv.owners, owner)
	inv.byOwner[owner] = oi
	return oi
}

// Names returns item names in insertion order.
func (oi *OwnerInventory) Names() []string {
	if oi == nil {
		return nil
	}
	return oi.names
}

// Len returns the number of distinct item names.
func (oi *OwnerInventory) Len() int {
	if oi == nil {
		return 0
	}
	return len(oi.names)
}

// Has reports whether an item with the given name exists.
func (oi *OwnerInventory) Has(name string) bool {
	if oi == nil {
		return false
	}
	_, ok := oi.byName[name]
	return ok
}

// Get returns the records stored under name.
func (oi *OwnerInventory) Get(name string) []Item {
	if oi == nil {
		return nil
	}
	return oi.byName[name]
}

// Set stores records under name, appending the name if it is new.
func (oi *OwnerInventory) Set(name string, items []Item) {
	if _, ok := oi.byName[name]; !ok {
		oi.names = append(oi.names, name)
	}
	oi.byName[name] = items
}

// Delete removes the records under name. It reports whether name existed.
func (oi *OwnerInventory) Delete(name string) bool {
	if oi == nil {
		return false
	}
	if _, ok := oi.byName[name]; !ok {
		return false
	}
	delete(oi.byName, name)
	for i, n := range oi.names {
		if n == name {
			oi.names = append(oi.names[:i], oi.names[i+1:]...)
			break
		}
	}
	return true
}

// Items returns all records flattened in insertion order.
func (oi *OwnerInventory) Items() []Item {
	if oi == nil {
		return nil
	}
	var items []Item
	for _, name := range oi.names {
		items = append(items, oi.byName[name]...)
	}
	return items
}

// MarshalJSON writes owners in insertion order.
func (inv *Inventory) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, owner := range inv.owners {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(owner)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(inv.byOwner[owner])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads owners in file order.
func (inv *Inventory) UnmarshalJSON(data []byte) error {
	inv.owners = nil
	inv.byOwner = make(map[string]*OwnerInventory)

	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return fmt.Errorf("decoding inventory: %w", err)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decoding owner key: %w", err)
		}
		owner, ok := tok.(string)
		if !ok {
			return fmt.Errorf("decoding owner key: unexpected token %v", tok)
		}
		oi := &OwnerInventory{byName: make(map[string][]Item)}
		if err := dec.Decode(oi); err != nil {
			return fmt.Errorf("decoding inventory for %q: %w", owner, err)
		}
		inv.owners = append(inv.owners, owner)
		inv.byOwner[owner] = oi
	}
	if err := expectDelim(dec, '}'); err != nil {
		return fmt.Errorf("decoding inventory: %w", err)
	}
	return nil
}

// MarshalJSON writes item names in insertion order.
func (oi *OwnerInventory) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range oi.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(oi.byName[name])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads item names in file order.
func (oi *OwnerInventory) UnmarshalJSON(data []byte) error {
	oi.names = nil
	oi.byName = make(map[string][]Item)

	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decoding item key: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("decoding item key: unexpected token %v", tok)
		}
		var items []Item
		if err := dec.Decode(&items); err != nil {
			return fmt.Errorf("decoding items for %q: %w", name, err)
		}
		oi.names = append(oi.names, name)
		oi.byName[name] = items
	}
	return expectDelim(dec, '}')
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}
