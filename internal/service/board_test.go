package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinstackapp/pinstack-server/internal/domain"
	domainerrors "github.com/pinstackapp/pinstack-server/internal/errors"
	"github.com/pinstackapp/pinstack-server/internal/validation"
)

func TestCreateBoardValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.boards.CreateBoard(ctx, CreateBoardInput{Name: ""})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))

	_, err = env.boards.CreateBoard(ctx, CreateBoardInput{Name: "Orphan", ParentID: "board-missing"})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}

func TestCreateNestedBoard(t *testing.T) {
	env := newTestEnv(t)

	root := env.mustCreateBoard(t, CreateBoardInput{Name: "Animals"})
	child := env.mustCreateBoard(t, CreateBoardInput{Name: "Cats", ParentID: root.ID})

	got, err := env.boards.GetBoard(context.Background(), child.ID)
	require.NoError(t, err)
	assert.Equal(t, root.ID, got.ParentID)
}

func TestGetTree(t *testing.T) {
	env := newTestEnv(t)

	root := env.mustCreateBoard(t, CreateBoardInput{Name: "Animals"})
	env.mustCreateBoard(t, CreateBoardInput{Name: "Cats", ParentID: root.ID})
	env.mustCreateBoard(t, CreateBoardInput{Name: "Travel"})

	nodes, err := env.boards.GetTree(context.Background())
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	byName := map[string]*domain.Node{}
	for _, n := range nodes {
		byName[n.Name] = n
	}
	require.Contains(t, byName, "Animals")
	require.Len(t, byName["Animals"].Children, 1)
	assert.Equal(t, "Cats", byName["Animals"].Children[0].Name)
	assert.Empty(t, byName["Travel"].Children)
}

func TestMoveBoardSelfParent(t *testing.T) {
	env := newTestEnv(t)
	board := env.mustCreateBoard(t, CreateBoardInput{Name: "Solo"})

	err := env.boards.MoveBoard(context.Background(), board.ID, board.ID)
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrSelfParent))
}

func TestMoveBoardCyclePrevention(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// a -> b -> c
	a := env.mustCreateBoard(t, CreateBoardInput{Name: "A"})
	b := env.mustCreateBoard(t, CreateBoardInput{Name: "B", ParentID: a.ID})
	c := env.mustCreateBoard(t, CreateBoardInput{Name: "C", ParentID: b.ID})

	err := env.boards.MoveBoard(ctx, a.ID, c.ID)
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrCycle))

	// The rejected move leaves the tree unchanged.
	got, err := env.boards.GetBoard(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, got.IsRoot())
}

func TestMoveBoardToRoot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	parent := env.mustCreateBoard(t, CreateBoardInput{Name: "Parent"})
	child := env.mustCreateBoard(t, CreateBoardInput{Name: "Child", ParentID: parent.ID})

	require.NoError(t, env.boards.MoveBoard(ctx, child.ID, ""))

	got, err := env.boards.GetBoard(ctx, child.ID)
	require.NoError(t, err)
	assert.True(t, got.IsRoot())
}

func TestMergeBoards(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	source := env.mustCreateBoard(t, CreateBoardInput{Name: "Source"})
	dest := env.mustCreateBoard(t, CreateBoardInput{Name: "Destination"})
	child := env.mustCreateBoard(t, CreateBoardInput{Name: "Child", ParentID: source.ID})

	// Source holds items 1 and 2; destination already holds item 2.
	item1 := env.mustCreateItem(t, CreateItemInput{Filename: "one.jpg", MediaType: "image"})
	item2 := env.mustCreateItem(t, CreateItemInput{Filename: "two.jpg", MediaType: "image"})
	require.NoError(t, env.boards.AddItemToBoard(ctx, source.ID, item1.ID, true))
	require.NoError(t, env.boards.AddItemToBoard(ctx, source.ID, item2.ID, true))
	require.NoError(t, env.boards.AddItemToBoard(ctx, dest.ID, item2.ID, true))

	result, err := env.boards.MergeBoards(ctx, source.ID, dest.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.ItemsMoved, "duplicate membership must be skipped")
	assert.Equal(t, 1, result.ChildrenReparented)

	// Source is gone, destination holds the union, child hangs off dest.
	_, err = env.boards.GetBoard(ctx, source.ID)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))

	items, err := env.boards.ListBoardItems(ctx, dest.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	gotChild, err := env.boards.GetBoard(ctx, child.ID)
	require.NoError(t, err)
	assert.Equal(t, dest.ID, gotChild.ParentID)
}

func TestMergeBoardsIntoDescendantRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	parent := env.mustCreateBoard(t, CreateBoardInput{Name: "Parent"})
	child := env.mustCreateBoard(t, CreateBoardInput{Name: "Child", ParentID: parent.ID})

	_, err := env.boards.MergeBoards(ctx, parent.ID, child.ID)
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrCycle))
}

func TestDeleteBoardWithChildrenRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	parent := env.mustCreateBoard(t, CreateBoardInput{Name: "Parent"})
	env.mustCreateBoard(t, CreateBoardInput{Name: "Child", ParentID: parent.ID})

	err := env.boards.DeleteBoard(ctx, parent.ID, false)
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrConflict))

	// Still there.
	_, err = env.boards.GetBoard(ctx, parent.ID)
	require.NoError(t, err)
}

func TestDeleteBoardSubtree(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	root := env.mustCreateBoard(t, CreateBoardInput{Name: "Root"})
	mid := env.mustCreateBoard(t, CreateBoardInput{Name: "Mid", ParentID: root.ID})
	leaf := env.mustCreateBoard(t, CreateBoardInput{Name: "Leaf", ParentID: mid.ID})

	item := env.mustCreateItem(t, CreateItemInput{Filename: "keep.jpg", MediaType: "image"})
	require.NoError(t, env.boards.AddItemToBoard(ctx, leaf.ID, item.ID, true))

	require.NoError(t, env.boards.DeleteBoard(ctx, root.ID, true))

	for _, id := range []string{root.ID, mid.ID, leaf.ID} {
		_, err := env.boards.GetBoard(ctx, id)
		assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
	}

	// Items outlive their boards.
	_, err := env.items.GetItem(ctx, item.ID)
	require.NoError(t, err)
}

func TestAddItemCascadesToAncestors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	root := env.mustCreateBoard(t, CreateBoardInput{Name: "Animals"})
	mid := env.mustCreateBoard(t, CreateBoardInput{Name: "Cats", ParentID: root.ID})
	leaf := env.mustCreateBoard(t, CreateBoardInput{Name: "Kittens", ParentID: mid.ID})
	item := env.mustCreateItem(t, CreateItemInput{Filename: "kitten.jpg", MediaType: "image"})

	require.NoError(t, env.boards.AddItemToBoard(ctx, leaf.ID, item.ID, true))

	boardIDs, err := env.items.ListItemBoards(ctx, item.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{root.ID, mid.ID, leaf.ID}, boardIDs)
}

func TestAddItemWithoutCascade(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	root := env.mustCreateBoard(t, CreateBoardInput{Name: "Animals"})
	leaf := env.mustCreateBoard(t, CreateBoardInput{Name: "Cats", ParentID: root.ID})
	item := env.mustCreateItem(t, CreateItemInput{Filename: "cat.jpg", MediaType: "image"})

	require.NoError(t, env.boards.AddItemToBoard(ctx, leaf.ID, item.ID, false))

	boardIDs, err := env.items.ListItemBoards(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{leaf.ID}, boardIDs, "ancestors receive nothing without cascade")
}

func TestAddItemCascadeSurvivesAncestorFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	root := env.mustCreateBoard(t, CreateBoardInput{Name: "Animals"})
	mid := env.mustCreateBoard(t, CreateBoardInput{Name: "Cats", ParentID: root.ID})
	leaf := env.mustCreateBoard(t, CreateBoardInput{Name: "Kittens", ParentID: mid.ID})
	item := env.mustCreateItem(t, CreateItemInput{Filename: "kitten.jpg", MediaType: "image"})

	// Placements onto the middle ancestor fail; the rest of the chain must
	// still be attempted and the call must still succeed.
	boards := NewBoardService(&failingMembershipStore{Store: env.store, failBoardID: mid.ID}, testLogger(), validation.New())
	require.NoError(t, boards.AddItemToBoard(ctx, leaf.ID, item.ID, true))

	boardIDs, err := env.items.ListItemBoards(ctx, item.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{root.ID, leaf.ID}, boardIDs)
}

func TestAddItemIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	board := env.mustCreateBoard(t, CreateBoardInput{Name: "Board"})
	item := env.mustCreateItem(t, CreateItemInput{Filename: "x.jpg", MediaType: "image"})

	require.NoError(t, env.boards.AddItemToBoard(ctx, board.ID, item.ID, true))
	require.NoError(t, env.boards.AddItemToBoard(ctx, board.ID, item.ID, true))

	items, err := env.boards.ListBoardItems(ctx, board.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestRemoveItemDoesNotCascade(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	root := env.mustCreateBoard(t, CreateBoardInput{Name: "Root"})
	leaf := env.mustCreateBoard(t, CreateBoardInput{Name: "Leaf", ParentID: root.ID})
	item := env.mustCreateItem(t, CreateItemInput{Filename: "y.jpg", MediaType: "image"})

	require.NoError(t, env.boards.AddItemToBoard(ctx, leaf.ID, item.ID, true))
	require.NoError(t, env.boards.RemoveItemFromBoard(ctx, leaf.ID, item.ID))

	boardIDs, err := env.items.ListItemBoards(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{root.ID}, boardIDs, "ancestor membership survives removal")
}

func TestUpdateBoardPartial(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	board := env.mustCreateBoard(t, CreateBoardInput{Name: "Old", Description: "keep me"})

	newName := "New"
	updated, err := env.boards.UpdateBoard(ctx, board.ID, UpdateBoardInput{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, "keep me", updated.Description, "unset fields stay untouched")
}

func TestGetAncestors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	root := env.mustCreateBoard(t, CreateBoardInput{Name: "Root"})
	mid := env.mustCreateBoard(t, CreateBoardInput{Name: "Mid", ParentID: root.ID})
	leaf := env.mustCreateBoard(t, CreateBoardInput{Name: "Leaf", ParentID: mid.ID})

	chain, warning, err := env.boards.GetAncestors(ctx, leaf.ID)
	require.NoError(t, err)
	assert.Empty(t, warning)
	require.Len(t, chain, 2)
	assert.Equal(t, mid.ID, chain[0].ID, "nearest parent first")
	assert.Equal(t, root.ID, chain[1].ID)
}

func TestGetAncestorsDepthBoundWarning(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// A chain deeper than the traversal bound.
	parentID := ""
	var leaf *domain.Board
	for i := 0; i <= domain.MaxTreeDepth+1; i++ {
		leaf = env.mustCreateBoard(t, CreateBoardInput{Name: "Nested", ParentID: parentID})
		parentID = leaf.ID
	}

	chain, warning, err := env.boards.GetAncestors(ctx, leaf.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, warning, "truncation must be surfaced, not just logged")
	assert.Len(t, chain, domain.MaxTreeDepth)
}
