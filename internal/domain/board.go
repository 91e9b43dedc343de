package domain

import "time"

// Board represents a named, nestable collection of media items.
// Boards form a forest: each board has at most one parent and no board may be
// its own ancestor. Membership cascades upward — an item placed in a board is
// also placed in every ancestor board.
type Board struct {
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	ParentID    string      `json:"parent_id,omitempty"`    // empty = root
	CoverItemID string      `json:"cover_item_id,omitempty"`
	SmartRules  *SmartRules `json:"smart_rules,omitempty"`
	ItemCount   int         `json:"item_count"` // Denormalized count of items in this board
}

// IsRoot returns true if this board has no parent.
func (b *Board) IsRoot() bool {
	return b.ParentID == ""
}

// HasSmartRules returns true if this board carries a non-empty rule set
// and therefore participates in automatic categorization.
func (b *Board) HasSmartRules() bool {
	return b.SmartRules != nil && !b.SmartRules.IsEmpty()
}

// Touch updates the UpdatedAt timestamp to the current time.
func (b *Board) Touch() {
	b.UpdatedAt = time.Now()
}

// InitTimestamps sets both CreatedAt and UpdatedAt to now.
func (b *Board) InitTimestamps() {
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
}
