package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeBoard(id, parentID string) *Board {
	return &Board{ID: id, Name: "Board " + id, ParentID: parentID}
}

func TestTree_RootsAndChildren(t *testing.T) {
	tree := NewTree([]*Board{
		makeBoard("board-a", ""),
		makeBoard("board-b", "board-a"),
		makeBoard("board-c", "board-a"),
		makeBoard("board-d", "board-b"),
		makeBoard("board-e", ""),
	})

	roots := tree.Roots()
	require.Len(t, roots, 2)
	assert.Equal(t, "board-a", roots[0].ID)
	assert.Equal(t, "board-e", roots[1].ID)

	children := tree.Children("board-a")
	require.Len(t, children, 2)
	assert.Equal(t, "board-b", children[0].ID)
	assert.Equal(t, "board-c", children[1].ID)

	assert.Empty(t, tree.Children("board-d"))
}

func TestTree_Ancestors(t *testing.T) {
	tree := NewTree([]*Board{
		makeBoard("board-root", ""),
		makeBoard("board-mid", "board-root"),
		makeBoard("board-leaf", "board-mid"),
	})

	chain, err := tree.Ancestors("board-leaf")
	require.NoError(t, err)
	require.Len(t, chain, 2)
	// Nearest parent first.
	assert.Equal(t, "board-mid", chain[0].ID)
	assert.Equal(t, "board-root", chain[1].ID)

	chain, err = tree.Ancestors("board-root")
	require.NoError(t, err)
	assert.Empty(t, chain)

	chain, err = tree.Ancestors("board-unknown")
	require.NoError(t, err)
	assert.Empty(t, chain)
}

func TestTree_Ancestors_DepthBound(t *testing.T) {
	// A two-board parent cycle. NewTree treats both as children of each other,
	// so the ancestor walk would loop forever without the depth bound.
	a := makeBoard("board-a", "board-b")
	b := makeBoard("board-b", "board-a")
	tree := NewTree([]*Board{a, b})

	chain, err := tree.Ancestors("board-a")
	require.Error(t, err)

	var depthErr *DepthError
	require.ErrorAs(t, err, &depthErr)
	assert.Equal(t, "board-a", depthErr.BoardID)

	// Partial result is still returned.
	assert.Len(t, chain, MaxTreeDepth)
}

func TestTree_Ancestors_DanglingParent(t *testing.T) {
	tree := NewTree([]*Board{makeBoard("board-x", "board-gone")})

	chain, err := tree.Ancestors("board-x")
	require.NoError(t, err)
	assert.Empty(t, chain)
}

func TestTree_Descendants(t *testing.T) {
	var boards []*Board
	boards = append(boards, makeBoard("board-0", ""))
	// board-0 -> board-1 -> board-2 -> ... -> board-5
	for i := 1; i <= 5; i++ {
		boards = append(boards, makeBoard(
			fmt.Sprintf("board-%d", i),
			fmt.Sprintf("board-%d", i-1),
		))
	}
	boards = append(boards, makeBoard("board-side", "board-0"))
	tree := NewTree(boards)

	descendants := tree.Descendants("board-0")
	assert.Len(t, descendants, 6)

	ids := make(map[string]bool)
	for _, d := range descendants {
		ids[d.ID] = true
	}
	assert.True(t, ids["board-5"])
	assert.True(t, ids["board-side"])
	assert.False(t, ids["board-0"], "a board is not its own descendant")
}

func TestTree_Snapshot(t *testing.T) {
	tree := NewTree([]*Board{
		{ID: "board-1", Name: "Animals"},
		{ID: "board-2", Name: "Cats", Description: "feline content", ParentID: "board-1"},
		{ID: "board-3", Name: "Vehicles"},
	})

	snapshot := tree.Snapshot()
	require.Len(t, snapshot, 2)

	animals := snapshot[0]
	assert.Equal(t, "Animals", animals.Name)
	require.Len(t, animals.Children, 1)
	assert.Equal(t, "Cats", animals.Children[0].Name)
	assert.Equal(t, "feline content", animals.Children[0].Description)
	assert.Equal(t, "board-1", animals.Children[0].ParentID)

	assert.Equal(t, "Vehicles", snapshot[1].Name)
	assert.Empty(t, snapshot[1].Children)
}
