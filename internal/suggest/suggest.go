// Package suggest asks a language model where an analyzed media item should
// be filed when no smart rule claims it. The backend speaks the OpenAI chat
// API, which covers hosted providers and local LM-Studio-style endpoints.
package suggest

import (
	"context"

	"github.com/pinstackapp/pinstack-server/internal/domain"
)

// Actions a suggestion can resolve to.
const (
	ActionAddToExisting = "add_to_existing"
	ActionCreateNew     = "create_new"
)

// NewBoard describes a board the model wants created for the item.
type NewBoard struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ParentID    string `json:"parent_id"`
}

// Decision is a placement decision for a single item. Exactly one of
// BoardIDs (for add_to_existing) or NewBoard (for create_new) is meaningful,
// selected by Action.
type Decision struct {
	Action     string    `json:"action"`
	BoardID    string    `json:"board_id"`
	BoardIDs   []string  `json:"suggested_boards"`
	Confidence float64   `json:"confidence"`
	Reasoning  string    `json:"reasoning"`
	NewBoard   *NewBoard `json:"new_board"`
}

// Request carries everything the model needs to place one item.
type Request struct {
	Description string
	Tags        []string
	Hierarchy   []*domain.Node
}

// Suggester produces placement decisions. Implementations must not mutate
// any application state; callers apply decisions themselves.
type Suggester interface {
	Suggest(ctx context.Context, req Request) (*Decision, error)
}
