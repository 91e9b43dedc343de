package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pinstackapp/pinstack-server/internal/domain"
	"github.com/pinstackapp/pinstack-server/internal/store"
)

func testItem(id, filename string) *domain.Item {
	now := time.Now().Truncate(time.Millisecond)
	return &domain.Item{
		ID:        id,
		Filename:  filename,
		MediaType: domain.MediaTypeImage,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreateAndGetItem(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	item := testItem("item-a", "beach.jpg")
	item.Description = "a sunny beach"
	item.Tags = []string{"beach", "summer"}

	if err := s.CreateItem(ctx, item); err != nil {
		t.Fatalf("create item: %v", err)
	}

	got, err := s.GetItem(ctx, "item-a")
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if got.Filename != "beach.jpg" {
		t.Errorf("filename = %q", got.Filename)
	}
	if got.MediaType != domain.MediaTypeImage {
		t.Errorf("media type = %q", got.MediaType)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "beach" {
		t.Errorf("tags = %v", got.Tags)
	}
	if got.IsAnalyzed() {
		t.Error("new item should not be analyzed")
	}
}

func TestGetItemNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetItem(context.Background(), "item-missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListItems(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := testItem("item-1", "old.jpg")
	first.CreatedAt = time.Now().Add(-time.Hour)
	second := testItem("item-2", "new.jpg")

	for _, item := range []*domain.Item{first, second} {
		if err := s.CreateItem(ctx, item); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	items, err := s.ListItems(ctx)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].ID != "item-2" {
		t.Errorf("newest first: got %s", items[0].ID)
	}
}

func TestUpdateItemAnalysis(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateItem(ctx, testItem("item-an", "cat.mp4")); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.UpdateItemAnalysis(ctx, "item-an", "a cat chasing a laser", []string{"cat", "indoor"}); err != nil {
		t.Fatalf("update analysis: %v", err)
	}

	got, err := s.GetItem(ctx, "item-an")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.IsAnalyzed() {
		t.Fatal("analyzed_at not set")
	}
	if got.Description != "a cat chasing a laser" {
		t.Errorf("description = %q", got.Description)
	}
	if len(got.Tags) != 2 {
		t.Errorf("tags = %v", got.Tags)
	}

	err = s.UpdateItemAnalysis(ctx, "item-missing", "x", nil)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("update missing: err = %v, want ErrNotFound", err)
	}
}

func TestDeleteItem(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateItem(ctx, testItem("item-d", "gone.jpg")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.CreateBoard(ctx, testBoard("board-x", "Holder", "")); err != nil {
		t.Fatalf("create board: %v", err)
	}
	if err := s.InsertMembership(ctx, "board-x", "item-d"); err != nil {
		t.Fatalf("insert membership: %v", err)
	}

	if err := s.DeleteItem(ctx, "item-d"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetItem(ctx, "item-d"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("get after delete: err = %v, want ErrNotFound", err)
	}

	count, err := s.CountMemberships(ctx, "board-x")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("memberships survived item delete: %d", count)
	}
}
