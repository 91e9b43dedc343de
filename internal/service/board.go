// Package service implements the application's business logic on top of the
// persistence layer: board hierarchy management, membership cascade, and
// automatic categorization.
package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pinstackapp/pinstack-server/internal/domain"
	domainerrors "github.com/pinstackapp/pinstack-server/internal/errors"
	"github.com/pinstackapp/pinstack-server/internal/id"
	"github.com/pinstackapp/pinstack-server/internal/store"
	"github.com/pinstackapp/pinstack-server/internal/validation"
)

// BoardService manages the board forest and item memberships. All mutations
// of the hierarchy and of memberships are serialized through a single mutex:
// the write rate is human-scale, and one lock keeps cascade and cycle checks
// free of interleaving anomalies. Reads are lock-free snapshot queries.
type BoardService struct {
	store     store.Store
	logger    *slog.Logger
	validator *validation.Validator

	// mu serializes tree and membership mutations.
	mu sync.Mutex
}

// NewBoardService creates a board service.
func NewBoardService(st store.Store, logger *slog.Logger, v *validation.Validator) *BoardService {
	return &BoardService{
		store:     st,
		logger:    logger,
		validator: v,
	}
}

// CreateBoardInput holds the fields for creating a board.
type CreateBoardInput struct {
	Name        string             `json:"name" validate:"required,min=1,max=120"`
	Description string             `json:"description" validate:"max=1000"`
	ParentID    string             `json:"parent_id"`
	SmartRules  *domain.SmartRules `json:"smart_rules"`
}

// UpdateBoardInput holds the updatable fields of a board. Nil pointers mean
// "leave unchanged"; the parent pointer is changed through MoveBoard only.
type UpdateBoardInput struct {
	Name        *string            `json:"name" validate:"omitempty,min=1,max=120"`
	Description *string            `json:"description" validate:"omitempty,max=1000"`
	CoverItemID *string            `json:"cover_item_id"`
	SmartRules  *domain.SmartRules `json:"smart_rules"`
}

// MergeResult reports what a merge moved.
type MergeResult struct {
	ItemsMoved         int `json:"items_moved"`
	ChildrenReparented int `json:"children_reparented"`
}

// CreateBoard creates a board, optionally nested under an existing parent.
func (s *BoardService) CreateBoard(ctx context.Context, input CreateBoardInput) (*domain.Board, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if input.ParentID != "" {
		if _, err := s.store.GetBoard(ctx, input.ParentID); err != nil {
			if domainerrors.Is(err, store.ErrNotFound) {
				return nil, domainerrors.NotFoundf("parent board %s not found", input.ParentID)
			}
			return nil, err
		}
	}

	board := &domain.Board{
		ID:          id.MustGenerate("board"),
		Name:        input.Name,
		Description: input.Description,
		ParentID:    input.ParentID,
		SmartRules:  input.SmartRules,
	}
	board.InitTimestamps()

	if err := s.store.CreateBoard(ctx, board); err != nil {
		return nil, err
	}

	s.logger.Info("board created", "board_id", board.ID, "name", board.Name, "parent_id", board.ParentID)
	return board, nil
}

// GetBoard retrieves a single board.
func (s *BoardService) GetBoard(ctx context.Context, boardID string) (*domain.Board, error) {
	board, err := s.store.GetBoard(ctx, boardID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("board %s not found", boardID)
		}
		return nil, err
	}
	return board, nil
}

// ListBoards returns all boards.
func (s *BoardService) ListBoards(ctx context.Context) ([]*domain.Board, error) {
	return s.store.ListBoards(ctx)
}

// GetTree returns the full hierarchy as nested nodes, roots first.
func (s *BoardService) GetTree(ctx context.Context) ([]*domain.Node, error) {
	boards, err := s.store.ListBoards(ctx)
	if err != nil {
		return nil, err
	}
	return domain.NewTree(boards).Snapshot(), nil
}

// GetAncestors returns a board's ancestor chain, nearest parent first. A
// depth-bound hit is logged as an integrity fault and returned as a non-empty
// warning alongside the partial chain, so callers see the degradation.
func (s *BoardService) GetAncestors(ctx context.Context, boardID string) ([]*domain.Board, string, error) {
	if _, err := s.GetBoard(ctx, boardID); err != nil {
		return nil, "", err
	}

	boards, err := s.store.ListBoards(ctx)
	if err != nil {
		return nil, "", err
	}

	chain, err := domain.NewTree(boards).Ancestors(boardID)
	if err != nil {
		s.logger.Warn("ancestor traversal hit depth bound", "board_id", boardID, "error", err)
		return chain, err.Error(), nil
	}
	return chain, "", nil
}

// UpdateBoard applies partial updates to a board's own fields.
func (s *BoardService) UpdateBoard(ctx context.Context, boardID string, input UpdateBoardInput) (*domain.Board, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	board, err := s.GetBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		board.Name = *input.Name
	}
	if input.Description != nil {
		board.Description = *input.Description
	}
	if input.CoverItemID != nil {
		board.CoverItemID = *input.CoverItemID
	}
	if input.SmartRules != nil {
		board.SmartRules = input.SmartRules
	}
	board.Touch()

	if err := s.store.UpdateBoard(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

// UpdateBoardRules replaces a board's smart-rule set. Pass nil to clear it.
func (s *BoardService) UpdateBoardRules(ctx context.Context, boardID string, rules *domain.SmartRules) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.UpdateBoardRules(ctx, boardID, rules); err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFoundf("board %s not found", boardID)
		}
		return err
	}
	return nil
}

// MoveBoard re-parents a board. Pass an empty newParentID to move the board
// to root level. Moving a board under itself or under any of its descendants
// is rejected, leaving the tree unchanged.
func (s *BoardService) MoveBoard(ctx context.Context, boardID, newParentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if boardID == newParentID && boardID != "" {
		return domainerrors.SelfParent("board cannot be its own parent")
	}

	if _, err := s.GetBoard(ctx, boardID); err != nil {
		return err
	}

	if newParentID != "" {
		if _, err := s.store.GetBoard(ctx, newParentID); err != nil {
			if domainerrors.Is(err, store.ErrNotFound) {
				return domainerrors.NotFoundf("parent board %s not found", newParentID)
			}
			return err
		}

		boards, err := s.store.ListBoards(ctx)
		if err != nil {
			return err
		}
		tree := domain.NewTree(boards)
		for _, descendant := range tree.Descendants(boardID) {
			if descendant.ID == newParentID {
				return domainerrors.Cyclef("cannot move board %s under its descendant %s", boardID, newParentID)
			}
		}
	}

	if err := s.store.UpdateBoardParent(ctx, boardID, newParentID); err != nil {
		return err
	}

	s.logger.Info("board moved", "board_id", boardID, "new_parent_id", newParentID)
	return nil
}

// MergeBoards moves every item and child board of the source into the
// destination, then deletes the source. Items already on the destination are
// skipped. Merging a board into one of its own descendants is rejected since
// re-parenting the source's children there would create a cycle.
func (s *BoardService) MergeBoards(ctx context.Context, sourceID, destID string) (*MergeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sourceID == destID {
		return nil, domainerrors.SelfParent("cannot merge a board into itself")
	}
	if _, err := s.GetBoard(ctx, sourceID); err != nil {
		return nil, err
	}
	if _, err := s.GetBoard(ctx, destID); err != nil {
		return nil, err
	}

	boards, err := s.store.ListBoards(ctx)
	if err != nil {
		return nil, err
	}
	tree := domain.NewTree(boards)
	for _, descendant := range tree.Descendants(sourceID) {
		if descendant.ID == destID {
			return nil, domainerrors.Cyclef("cannot merge board %s into its descendant %s", sourceID, destID)
		}
	}

	moved, err := s.store.MoveMemberships(ctx, sourceID, destID)
	if err != nil {
		return nil, err
	}

	children := tree.Children(sourceID)
	for _, child := range children {
		if err := s.store.UpdateBoardParent(ctx, child.ID, destID); err != nil {
			return nil, err
		}
	}

	if err := s.store.DeleteBoard(ctx, sourceID); err != nil {
		return nil, err
	}

	result := &MergeResult{ItemsMoved: moved, ChildrenReparented: len(children)}
	s.logger.Info("boards merged",
		"source_id", sourceID,
		"dest_id", destID,
		"items_moved", result.ItemsMoved,
		"children_reparented", result.ChildrenReparented,
	)
	return result, nil
}

// DeleteBoard deletes a board. A board with children is only deleted when
// deleteDescendants is set, in which case the whole subtree is removed
// leaves-first; otherwise the call is rejected so children are never silently
// orphaned. Item memberships disappear with their boards, the items remain.
func (s *BoardService) DeleteBoard(ctx context.Context, boardID string, deleteDescendants bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.GetBoard(ctx, boardID); err != nil {
		return err
	}

	boards, err := s.store.ListBoards(ctx)
	if err != nil {
		return err
	}
	tree := domain.NewTree(boards)

	descendants := tree.Descendants(boardID)
	if len(descendants) > 0 && !deleteDescendants {
		return domainerrors.Conflictf("board %s has %d descendant boards; delete them first or request descendant deletion", boardID, len(descendants))
	}

	// Descendants lists ancestors before their own descendants, so deleting
	// in reverse removes leaves first.
	for i := len(descendants) - 1; i >= 0; i-- {
		if err := s.store.DeleteBoard(ctx, descendants[i].ID); err != nil {
			return err
		}
	}

	if err := s.store.DeleteBoard(ctx, boardID); err != nil {
		return err
	}

	s.logger.Info("board deleted", "board_id", boardID, "descendants_deleted", len(descendants))
	return nil
}

// AddItemToBoard places an item on a board. With cascade set, the placement
// is propagated to every ancestor board, closest first. Ancestor placements
// fail independently: a failure is logged and the remaining ancestors are
// still attempted. Only a failure of the direct placement fails the call.
func (s *BoardService) AddItemToBoard(ctx context.Context, boardID, itemID string, cascade bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.addItemLocked(ctx, boardID, itemID, cascade)
}

// addItemLocked is AddItemToBoard without the lock, for callers that already
// hold it.
func (s *BoardService) addItemLocked(ctx context.Context, boardID, itemID string, cascade bool) error {
	if _, err := s.GetBoard(ctx, boardID); err != nil {
		return err
	}
	if _, err := s.store.GetItem(ctx, itemID); err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFoundf("item %s not found", itemID)
		}
		return err
	}

	if err := s.store.InsertMembership(ctx, boardID, itemID); err != nil {
		return err
	}

	if !cascade {
		return nil
	}

	boards, err := s.store.ListBoards(ctx)
	if err != nil {
		return err
	}

	ancestors, err := domain.NewTree(boards).Ancestors(boardID)
	if err != nil {
		// The partial chain is still cascaded to; the fault is surfaced in logs.
		s.logger.Warn("ancestor traversal hit depth bound during cascade",
			"board_id", boardID, "error", err)
	}

	for _, ancestor := range ancestors {
		if err := s.store.InsertMembership(ctx, ancestor.ID, itemID); err != nil {
			s.logger.Error("cascade placement failed",
				"board_id", ancestor.ID, "item_id", itemID, "error", err)
		}
	}

	return nil
}

// RemoveItemFromBoard removes an item from a single board. Removal never
// cascades: membership in ancestor boards is left untouched.
func (s *BoardService) RemoveItemFromBoard(ctx context.Context, boardID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.GetBoard(ctx, boardID); err != nil {
		return err
	}
	return s.store.DeleteMembership(ctx, boardID, itemID)
}

// ListBoardItems returns the items on a board, newest placement first.
func (s *BoardService) ListBoardItems(ctx context.Context, boardID string) ([]*domain.Item, error) {
	if _, err := s.GetBoard(ctx, boardID); err != nil {
		return nil, err
	}
	return s.store.ListItemsByBoard(ctx, boardID)
}
