package domain

import "sort"

// MaxTreeDepth is the hard bound on ancestor-chain traversal. A well-formed
// forest never approaches it; exceeding it means the parent pointers are
// corrupted (an undetected cycle) and traversal stops with ErrDepthExceeded.
const MaxTreeDepth = 10

// DepthError reports that a traversal hit MaxTreeDepth. The partial result
// accompanying it is still usable; callers decide whether to degrade or fail.
type DepthError struct {
	BoardID string
}

func (e *DepthError) Error() string {
	return "board " + e.BoardID + ": ancestor chain exceeds depth bound, parent pointers may be cyclic"
}

// Tree is a query-time view over a full board listing, providing parent,
// child, and ancestor relationships. It is a snapshot: mutations made after
// construction are not reflected.
type Tree struct {
	byID     map[string]*Board
	children map[string][]string // parent id -> child ids, sorted
	roots    []string            // sorted root ids
}

// NewTree builds a tree view from a full set of boards.
// Boards referencing a missing parent are treated as roots rather than dropped.
func NewTree(boards []*Board) *Tree {
	t := &Tree{
		byID:     make(map[string]*Board, len(boards)),
		children: make(map[string][]string),
	}

	for _, b := range boards {
		t.byID[b.ID] = b
	}

	for _, b := range boards {
		if b.ParentID != "" && t.byID[b.ParentID] != nil {
			t.children[b.ParentID] = append(t.children[b.ParentID], b.ID)
		} else {
			t.roots = append(t.roots, b.ID)
		}
	}

	sort.Strings(t.roots)
	for _, ids := range t.children {
		sort.Strings(ids)
	}

	return t
}

// Get returns the board with the given ID, or nil.
func (t *Tree) Get(id string) *Board {
	return t.byID[id]
}

// Boards returns all boards in the tree, ordered by ID.
func (t *Tree) Boards() []*Board {
	ids := make([]string, 0, len(t.byID))
	for id := range t.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	boards := make([]*Board, 0, len(ids))
	for _, id := range ids {
		boards = append(boards, t.byID[id])
	}
	return boards
}

// Roots returns the boards with no parent, ordered by ID.
func (t *Tree) Roots() []*Board {
	return t.resolve(t.roots)
}

// Children returns the direct children of a board, ordered by ID.
func (t *Tree) Children(id string) []*Board {
	return t.resolve(t.children[id])
}

// Ancestors returns the ancestor chain of a board, nearest parent first.
// Traversal walks the parent pointers with a hard bound of MaxTreeDepth hops;
// if the bound is exceeded the partial chain is returned together with a
// *DepthError so callers can log the integrity fault and continue.
func (t *Tree) Ancestors(id string) ([]*Board, error) {
	var chain []*Board

	current := t.byID[id]
	if current == nil {
		return nil, nil
	}

	for depth := 0; current.ParentID != ""; depth++ {
		if depth >= MaxTreeDepth {
			return chain, &DepthError{BoardID: id}
		}
		parent := t.byID[current.ParentID]
		if parent == nil {
			break // dangling parent pointer, treat as root
		}
		chain = append(chain, parent)
		current = parent
	}

	return chain, nil
}

// Descendants returns every board below the given one, enumerated depth-first
// with an explicit stack. Children are visited in ID order so the result is
// deterministic. The visited set guards against corrupted parent pointers.
func (t *Tree) Descendants(id string) []*Board {
	var out []*Board
	visited := map[string]bool{id: true}

	stack := make([]string, len(t.children[id]))
	copy(stack, t.children[id])

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[current] {
			continue
		}
		visited[current] = true

		if b := t.byID[current]; b != nil {
			out = append(out, b)
		}
		stack = append(stack, t.children[current]...)
	}

	return out
}

// Node is one entry in a serializable hierarchy snapshot, handed to the
// AI-suggestion collaborator so it can reason about existing structure.
type Node struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	ParentID    string  `json:"parent_id,omitempty"`
	Children    []*Node `json:"children,omitempty"`
}

// Snapshot converts the tree into nested Nodes, roots first.
func (t *Tree) Snapshot() []*Node {
	var build func(id string) *Node
	build = func(id string) *Node {
		b := t.byID[id]
		n := &Node{
			ID:          b.ID,
			Name:        b.Name,
			Description: b.Description,
			ParentID:    b.ParentID,
		}
		for _, childID := range t.children[id] {
			n.Children = append(n.Children, build(childID))
		}
		return n
	}

	var nodes []*Node
	for _, rootID := range t.roots {
		nodes = append(nodes, build(rootID))
	}
	return nodes
}

// resolve maps board IDs to boards, skipping unknown IDs.
func (t *Tree) resolve(ids []string) []*Board {
	if len(ids) == 0 {
		return nil
	}
	boards := make([]*Board, 0, len(ids))
	for _, id := range ids {
		if b := t.byID[id]; b != nil {
			boards = append(boards, b)
		}
	}
	return boards
}
