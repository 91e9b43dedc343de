package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pinstackapp/pinstack-server/internal/domain"
	"github.com/pinstackapp/pinstack-server/internal/store"
	"github.com/pinstackapp/pinstack-server/internal/store/sqlite"
	"github.com/pinstackapp/pinstack-server/internal/suggest"
	"github.com/pinstackapp/pinstack-server/internal/validation"
)

// testEnv wires services against a real temp SQLite store.
type testEnv struct {
	store  store.Store
	boards *BoardService
	items  *ItemService
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := testLogger()

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	v := validation.New()
	return &testEnv{
		store:  st,
		boards: NewBoardService(st, logger, v),
		items:  NewItemService(st, logger, v),
	}
}

func (e *testEnv) categorizer(t *testing.T, suggester suggest.Suggester) *CategorizationService {
	t.Helper()
	return NewCategorizationService(e.store, e.boards, suggester, testLogger())
}

// failingMembershipStore delegates to a real store but fails membership
// inserts onto one board.
type failingMembershipStore struct {
	store.Store
	failBoardID string
}

func (f *failingMembershipStore) InsertMembership(ctx context.Context, boardID, itemID string) error {
	if boardID == f.failBoardID {
		return errors.New("membership insert failed")
	}
	return f.Store.InsertMembership(ctx, boardID, itemID)
}

func (e *testEnv) mustCreateBoard(t *testing.T, input CreateBoardInput) *domain.Board {
	t.Helper()
	board, err := e.boards.CreateBoard(context.Background(), input)
	require.NoError(t, err)
	return board
}

func (e *testEnv) mustCreateItem(t *testing.T, input CreateItemInput) *domain.Item {
	t.Helper()
	item, err := e.items.CreateItem(context.Background(), input)
	require.NoError(t, err)
	return item
}

// fakeSuggester returns a canned decision or error.
type fakeSuggester struct {
	decision *suggest.Decision
	err      error
	calls    int
	lastReq  suggest.Request
}

func (f *fakeSuggester) Suggest(_ context.Context, req suggest.Request) (*suggest.Decision, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.decision, nil
}
