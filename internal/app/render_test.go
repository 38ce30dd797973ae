package app

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/negpdo/emiti/internal/model"
	"github.com/negpdo/emiti/internal/store"
)

func TestRenderInventoryWidths(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	renderInventory(&buf, []model.Item{
		{ID: 1, Name: "Paracetamol", Quantity: 100, Price: 2.5, Code: "C1", ExpiryDate: "2099-01-01 00:00:00"},
		{ID: 2, Name: "A", Quantity: 3, Price: 10, Code: "LONG-CODE-123", ExpiryDate: "2099-01-01 00:00:00"},
	}, now)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)

	// The name column is sized to the widest value, so the expiry column
	// starts at the same offset in every row.
	header := lines[0]
	assert.Contains(t, header, "ID")
	assert.Contains(t, header, "EXPIRY_DATE")
	col := strings.Index(lines[1], "2099-01-01")
	assert.Equal(t, col, strings.Index(lines[2], "2099-01-01"))
}

func TestRenderInventoryStyles(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	renderInventory(&buf, []model.Item{
		{ID: 1, Name: "Fresh", Quantity: 1, Price: 1, Code: "A", ExpiryDate: "2099-01-01 00:00:00"},
		{ID: 2, Name: "Old", Quantity: 1, Price: 1, Code: "B", ExpiryDate: "2024-01-01 00:00:00"},
		{ID: 3, Name: "Marked", Quantity: 1, Price: 1, Code: "C", ExpiryDate: "2099-01-01 00:00:00", Flag: true},
		{ID: 4, Name: "OldMarked", Quantity: 1, Price: 1, Code: "D", ExpiryDate: "2024-01-01 00:00:00", Flag: true},
	}, now)

	lines := strings.Split(buf.String(), "\n")
	assert.NotContains(t, lines[1], styleExpired, "fresh rows are unstyled")
	assert.Contains(t, lines[2], styleExpired)
	assert.Contains(t, lines[3], styleFlagged)
	// Expired wins over flagged.
	assert.Contains(t, lines[4], styleExpired)
	assert.NotContains(t, lines[4], styleFlagged)
}

func TestRenderInventoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	renderInventory(&buf, nil, time.Now())
	assert.Contains(t, buf.String(), "(no items)")
}

func TestRenderTopUsers(t *testing.T) {
	var buf bytes.Buffer
	renderTopUsers(&buf, "Paracetamol", []store.TopUser{
		{Username: "bob", Quantity: 80},
		{Username: "alice", Quantity: 30},
	})

	out := buf.String()
	assert.Contains(t, out, "1. bob")
	assert.Contains(t, out, "80")
	assert.Contains(t, out, "2. alice")

	buf.Reset()
	renderTopUsers(&buf, "Anything", nil)
	assert.Contains(t, buf.String(), "(no users)")
}
