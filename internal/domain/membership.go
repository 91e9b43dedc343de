package domain

import "time"

// Membership represents the many-to-many relationship between boards and items.
// The (BoardID, ItemID) pair is unique; inserting an existing pair is a no-op,
// never an error.
type Membership struct {
	BoardID string    `json:"board_id"`
	ItemID  string    `json:"item_id"`
	AddedAt time.Time `json:"added_at"`
}
