// Package store defines the persistence interface for the PinStack server.
package store

import (
	"context"

	"github.com/pinstackapp/pinstack-server/internal/domain"
)

// Store defines the interface for all persistence operations.
// Implementations enforce no business rules, only data access; tree
// invariants (cycle prevention, cascade) live in the service layer.
type Store interface {
	// Lifecycle
	Close() error

	// Boards
	CreateBoard(ctx context.Context, board *domain.Board) error
	GetBoard(ctx context.Context, id string) (*domain.Board, error)
	ListBoards(ctx context.Context) ([]*domain.Board, error)
	ListBoardsByParent(ctx context.Context, parentID string) ([]*domain.Board, error)
	UpdateBoard(ctx context.Context, board *domain.Board) error
	UpdateBoardParent(ctx context.Context, id, parentID string) error
	UpdateBoardRules(ctx context.Context, id string, rules *domain.SmartRules) error
	DeleteBoard(ctx context.Context, id string) error

	// Items
	CreateItem(ctx context.Context, item *domain.Item) error
	GetItem(ctx context.Context, id string) (*domain.Item, error)
	ListItems(ctx context.Context) ([]*domain.Item, error)
	UpdateItemAnalysis(ctx context.Context, id, description string, tags []string) error
	DeleteItem(ctx context.Context, id string) error

	// Memberships
	InsertMembership(ctx context.Context, boardID, itemID string) error
	DeleteMembership(ctx context.Context, boardID, itemID string) error
	ListMembershipsByBoard(ctx context.Context, boardID string) ([]*domain.Membership, error)
	ListBoardIDsForItem(ctx context.Context, itemID string) ([]string, error)
	ListItemsByBoard(ctx context.Context, boardID string) ([]*domain.Item, error)
	MoveMemberships(ctx context.Context, fromBoardID, toBoardID string) (int, error)
	CountMemberships(ctx context.Context, boardID string) (int, error)
}
