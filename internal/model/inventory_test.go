package model

import (
	"encoding/json"
	"testing"
)

func TestInventoryPreservesOwnerOrder(t *testing.T) {
	inv := NewInventory()
	// Insertion order deliberately not alphabetical.
	for _, owner := range []string{"zeta", "alpha", "mid"} {
		inv.EnsureOwner(owner).Set("Aspirin", []Item{{ID: 1, Name: "Aspirin"}})
	}

	data, err := json.Marshal(inv)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	decoded := NewInventory()
	if err := json.Unmarshal(data, decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	want := []string{"zeta", "alpha", "mid"}
	got := decoded.Owners()
	if len(got) != len(want) {
		t.Fatalf("expected %d owners, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("owner %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestInventoryRoundTripStable(t *testing.T) {
	inv := NewInventory()
	alice := inv.EnsureOwner("alice")
	alice.Set("Paracetamol", []Item{{
		ID: 1, Name: "Paracetamol", Quantity: 100, Price: 2.5,
		Code: "C1", ExpiryDate: "2099-01-01 00:00:00",
		CreatedAt: "2025-01-01 10:00:00",
	}})
	alice.Set("Ibuprofen", []Item{{
		ID: 2, Name: "Ibuprofen", Quantity: 30, Price: 4.0,
		Code: "C2", ExpiryDate: "2024-01-01 00:00:00",
		CreatedAt: "2025-01-02 10:00:00", Flag: true,
	}})
	inv.EnsureOwner("bob")

	first, err := json.Marshal(inv)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	decoded := NewInventory()
	if err := json.Unmarshal(first, decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	second, err := json.Marshal(decoded)
	if err != nil {
		t.Fatalf("re-Marshal: %v", err)
	}

	if string(first) != string(second) {
		t.Errorf("round trip not stable:\nfirst:  %s\nsecond: %s", first, second)
	}
}

func TestOwnerInventoryDelete(t *testing.T) {
	inv := NewInventory()
	oi := inv.EnsureOwner("alice")
	oi.Set("A", []Item{{ID: 1, Name: "A"}})
	oi.Set("B", []Item{{ID: 2, Name: "B"}})

	if !oi.Delete("A") {
		t.Error("expected Delete to report true for present name")
	}
	if oi.Delete("A") {
		t.Error("expected Delete to report false for absent name")
	}
	if oi.Has("A") {
		t.Error("expected A to be gone")
	}
	if !oi.Has("B") {
		t.Error("expected B to survive")
	}

	names := oi.Names()
	if len(names) != 1 || names[0] != "B" {
		t.Errorf("expected names [B], got %v", names)
	}
}

func TestOwnerInventoryItemsFlattened(t *testing.T) {
	inv := NewInventory()
	oi := inv.EnsureOwner("alice")
	oi.Set("B", []Item{{ID: 1, Name: "B"}})
	oi.Set("A", []Item{{ID: 2, Name: "A"}})

	items := oi.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	// Insertion order, not alphabetical.
	if items[0].Name != "B" || items[1].Name != "A" {
		t.Errorf("expected [B A], got [%s %s]", items[0].Name, items[1].Name)
	}
}
