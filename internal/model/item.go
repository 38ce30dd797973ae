package model

import "time"

// TimeFormat is the layout used for every persisted datetime. Values stored
// in this format sort lexicographically in chronological order, which the
// expiry check relies on.
const TimeFormat = "2006-01-02 15:04:05"

// Item is one inventory record owned by a single user.
type Item struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	Code       string  `json:"code"`
	ExpiryDate string  `json:"expiry_date"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at,omitempty"`
	Flag       bool    `json:"flag,omitempty"`
}

// Expired reports whether the item's expiry date lies before now.
// Both sides are compared as strings in TimeFormat.
func (i Item) Expired(now time.Time) bool {
	return i.ExpiryDate < now.Format(TimeFormat)
}
