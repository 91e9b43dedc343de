package service

import (
	"context"
	"log/slog"

	"github.com/pinstackapp/pinstack-server/internal/domain"
	domainerrors "github.com/pinstackapp/pinstack-server/internal/errors"
	"github.com/pinstackapp/pinstack-server/internal/id"
	"github.com/pinstackapp/pinstack-server/internal/store"
	"github.com/pinstackapp/pinstack-server/internal/validation"
)

// ItemService manages media item records. Media files themselves live
// outside this system; items carry metadata and analysis output only.
type ItemService struct {
	store     store.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewItemService creates an item service.
func NewItemService(st store.Store, logger *slog.Logger, v *validation.Validator) *ItemService {
	return &ItemService{
		store:     st,
		logger:    logger,
		validator: v,
	}
}

// CreateItemInput holds the fields for registering an item.
type CreateItemInput struct {
	Filename    string   `json:"filename" validate:"required,min=1,max=255"`
	MediaType   string   `json:"media_type" validate:"required,oneof=image video"`
	Description string   `json:"description" validate:"max=4000"`
	Tags        []string `json:"tags"`
}

// CreateItem registers a media item.
func (s *ItemService) CreateItem(ctx context.Context, input CreateItemInput) (*domain.Item, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	mediaType, ok := domain.ParseMediaType(input.MediaType)
	if !ok {
		return nil, domainerrors.Validationf("unsupported media type %q", input.MediaType)
	}

	item := &domain.Item{
		ID:          id.MustGenerate("item"),
		Filename:    input.Filename,
		MediaType:   mediaType,
		Description: input.Description,
		Tags:        input.Tags,
	}
	item.InitTimestamps()

	if err := s.store.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("item created", "item_id", item.ID, "filename", item.Filename)
	return item, nil
}

// GetItem retrieves a single item.
func (s *ItemService) GetItem(ctx context.Context, itemID string) (*domain.Item, error) {
	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("item %s not found", itemID)
		}
		return nil, err
	}
	return item, nil
}

// ListItems returns all items, newest first.
func (s *ItemService) ListItems(ctx context.Context) ([]*domain.Item, error) {
	return s.store.ListItems(ctx)
}

// ListItemBoards returns the IDs of every board holding the item.
func (s *ItemService) ListItemBoards(ctx context.Context, itemID string) ([]string, error) {
	if _, err := s.GetItem(ctx, itemID); err != nil {
		return nil, err
	}
	return s.store.ListBoardIDsForItem(ctx, itemID)
}

// DeleteItem removes an item and all of its board memberships.
func (s *ItemService) DeleteItem(ctx context.Context, itemID string) error {
	if err := s.store.DeleteItem(ctx, itemID); err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFoundf("item %s not found", itemID)
		}
		return err
	}
	s.logger.Info("item deleted", "item_id", itemID)
	return nil
}
