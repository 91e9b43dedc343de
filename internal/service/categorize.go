package service

import (
	"context"
	"log/slog"

	"github.com/pinstackapp/pinstack-server/internal/domain"
	domainerrors "github.com/pinstackapp/pinstack-server/internal/errors"
	"github.com/pinstackapp/pinstack-server/internal/store"
	"github.com/pinstackapp/pinstack-server/internal/suggest"
)

// Outcome describes where categorization left an item.
type Outcome string

const (
	// OutcomeFiled means the item landed on at least one board.
	OutcomeFiled Outcome = "filed"
	// OutcomeUnfiled means no rule matched and no usable suggestion arrived.
	// Unfiled is a normal resting state, not an error.
	OutcomeUnfiled Outcome = "unfiled"
)

// Methods by which an item gets filed.
const (
	MethodRules      = "rules"
	MethodSuggestion = "suggestion"
)

// CategorizationResult reports what categorization did with one item.
type CategorizationResult struct {
	Outcome Outcome `json:"outcome"`
	// Method is set when Outcome is filed.
	Method string `json:"method,omitempty"`
	// BoardIDs are the boards the item was directly placed on, excluding
	// cascaded ancestor placements.
	BoardIDs []string `json:"board_ids,omitempty"`
	// CreatedBoardID is set when a new board was created for the item.
	CreatedBoardID string `json:"created_board_id,omitempty"`
}

// CategorizationService files analyzed items onto boards. Smart rules are
// tried first; when none claims the item, an AI suggestion is requested.
// The suggestion call happens before any mutation and without holding the
// tree lock, so a slow or dead model never stalls board operations.
type CategorizationService struct {
	store     store.Store
	boards    *BoardService
	suggester suggest.Suggester
	logger    *slog.Logger
}

// NewCategorizationService creates a categorization service. The suggester
// may be nil, in which case items no rule claims stay unfiled.
func NewCategorizationService(st store.Store, boards *BoardService, suggester suggest.Suggester, logger *slog.Logger) *CategorizationService {
	return &CategorizationService{
		store:     st,
		boards:    boards,
		suggester: suggester,
		logger:    logger,
	}
}

// ProcessAnalysis records analysis output for an item and then categorizes
// it. This is the entry point the analysis ingestion endpoint drives.
func (s *CategorizationService) ProcessAnalysis(ctx context.Context, itemID, description string, tags []string) (*CategorizationResult, error) {
	if err := s.store.UpdateItemAnalysis(ctx, itemID, description, tags); err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("item %s not found", itemID)
		}
		return nil, err
	}

	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.Categorize(ctx, item)
}

// Categorize files an item: every board whose smart rules match gets the
// item (with the usual ancestor cascade); when no rule matches, the AI
// suggestion path runs. Failures to place on individual boards are logged
// and skipped rather than aborting the scan.
func (s *CategorizationService) Categorize(ctx context.Context, item *domain.Item) (*CategorizationResult, error) {
	boards, err := s.store.ListBoards(ctx)
	if err != nil {
		return nil, err
	}
	tree := domain.NewTree(boards)

	if filed := s.scanRules(ctx, tree, item); len(filed) > 0 {
		s.logger.Info("item filed by rules", "item_id", item.ID, "boards", filed)
		return &CategorizationResult{
			Outcome:  OutcomeFiled,
			Method:   MethodRules,
			BoardIDs: filed,
		}, nil
	}

	return s.suggestPlacement(ctx, tree, item)
}

// scanRules places the item on every rule-matching board, in stable board-ID
// order, and returns the IDs it landed on.
func (s *CategorizationService) scanRules(ctx context.Context, tree *domain.Tree, item *domain.Item) []string {
	var filed []string
	for _, board := range tree.Boards() {
		if !board.HasSmartRules() {
			continue
		}
		if !board.SmartRules.Matches(item.Tags, item.Description) {
			continue
		}
		if err := s.boards.AddItemToBoard(ctx, board.ID, item.ID, true); err != nil {
			s.logger.Error("rule placement failed",
				"board_id", board.ID, "item_id", item.ID, "error", err)
			continue
		}
		filed = append(filed, board.ID)
	}
	return filed
}

// suggestPlacement runs the AI fallback. Any failure along the way leaves
// the item unfiled; only storage errors while applying a decision are
// returned as errors.
func (s *CategorizationService) suggestPlacement(ctx context.Context, tree *domain.Tree, item *domain.Item) (*CategorizationResult, error) {
	unfiled := &CategorizationResult{Outcome: OutcomeUnfiled}

	if s.suggester == nil {
		return unfiled, nil
	}

	decision, err := s.suggester.Suggest(ctx, suggest.Request{
		Description: item.Description,
		Tags:        item.Tags,
		Hierarchy:   tree.Snapshot(),
	})
	if err != nil {
		s.logger.Info("no usable suggestion, item stays unfiled",
			"item_id", item.ID, "error", err)
		return unfiled, nil
	}

	switch decision.Action {
	case suggest.ActionAddToExisting:
		var filed []string
		for _, boardID := range decision.BoardIDs {
			if tree.Get(boardID) == nil {
				s.logger.Warn("suggestion names unknown board", "board_id", boardID, "item_id", item.ID)
				continue
			}
			if err := s.boards.AddItemToBoard(ctx, boardID, item.ID, true); err != nil {
				s.logger.Error("suggested placement failed",
					"board_id", boardID, "item_id", item.ID, "error", err)
				continue
			}
			filed = append(filed, boardID)
		}
		if len(filed) == 0 {
			return unfiled, nil
		}
		s.logger.Info("item filed by suggestion", "item_id", item.ID, "boards", filed)
		return &CategorizationResult{
			Outcome:  OutcomeFiled,
			Method:   MethodSuggestion,
			BoardIDs: filed,
		}, nil

	case suggest.ActionCreateNew:
		parentID := decision.NewBoard.ParentID
		if parentID != "" && tree.Get(parentID) == nil {
			// Unknown parent from the model; create at root rather than fail.
			s.logger.Warn("suggested parent board unknown, creating at root",
				"parent_id", parentID, "item_id", item.ID)
			parentID = ""
		}

		board, err := s.boards.CreateBoard(ctx, CreateBoardInput{
			Name:        decision.NewBoard.Name,
			Description: decision.NewBoard.Description,
			ParentID:    parentID,
		})
		if err != nil {
			s.logger.Error("could not create suggested board",
				"name", decision.NewBoard.Name, "item_id", item.ID, "error", err)
			return unfiled, nil
		}
		if err := s.boards.AddItemToBoard(ctx, board.ID, item.ID, true); err != nil {
			return nil, err
		}

		s.logger.Info("item filed on new suggested board",
			"item_id", item.ID, "board_id", board.ID, "name", board.Name)
		return &CategorizationResult{
			Outcome:        OutcomeFiled,
			Method:         MethodSuggestion,
			BoardIDs:       []string{board.ID},
			CreatedBoardID: board.ID,
		}, nil
	}

	return unfiled, nil
}
