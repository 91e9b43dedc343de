package sqlite

import (
	"context"
	"database/sql"
	"encoding/json/v2"
	"fmt"
	"strings"
	"time"

	"github.com/pinstackapp/pinstack-server/internal/domain"
	"github.com/pinstackapp/pinstack-server/internal/store"
)

// boardColumns is the ordered list of columns selected in board queries.
// Must match the scan order in scanBoard.
const boardColumns = `b.id, b.created_at, b.updated_at, b.name, b.description,
	b.parent_id, b.cover_item_id, b.smart_rules,
	(SELECT COUNT(*) FROM board_items bi WHERE bi.board_id = b.id)`

// scanBoard scans a sql.Row (or sql.Rows via its Scan method) into a domain.Board.
func scanBoard(scanner interface{ Scan(dest ...any) error }) (*domain.Board, error) {
	var b domain.Board

	var (
		createdAt   string
		updatedAt   string
		description sql.NullString
		parentID    sql.NullString
		coverItemID sql.NullString
		smartRules  sql.NullString
	)

	err := scanner.Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
		&b.Name,
		&description,
		&parentID,
		&coverItemID,
		&smartRules,
		&b.ItemCount,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	b.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	b.Description = description.String
	b.ParentID = parentID.String
	b.CoverItemID = coverItemID.String

	if smartRules.Valid && smartRules.String != "" {
		var rules domain.SmartRules
		if err := json.Unmarshal([]byte(smartRules.String), &rules); err != nil {
			return nil, fmt.Errorf("unmarshal smart rules for %s: %w", b.ID, err)
		}
		b.SmartRules = &rules
	}

	return &b, nil
}

// marshalRules encodes a rule set for storage; nil encodes to NULL.
func marshalRules(rules *domain.SmartRules) (sql.NullString, error) {
	if rules == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(rules)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshal smart rules: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// CreateBoard inserts a board. Returns store.ErrAlreadyExists on duplicate ID.
func (s *Store) CreateBoard(ctx context.Context, board *domain.Board) error {
	rules, err := marshalRules(board.SmartRules)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO boards (
			id, created_at, updated_at, name, description, parent_id, cover_item_id, smart_rules
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		board.ID,
		formatTime(board.CreatedAt),
		formatTime(board.UpdatedAt),
		board.Name,
		nullString(board.Description),
		nullString(board.ParentID),
		nullString(board.CoverItemID),
		rules,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetBoard retrieves a board by ID.
// Returns store.ErrNotFound if the board does not exist.
func (s *Store) GetBoard(ctx context.Context, id string) (*domain.Board, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+boardColumns+` FROM boards b WHERE b.id = ?`, id)

	board, err := scanBoard(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return board, nil
}

// ListBoards returns all boards ordered by ID for deterministic iteration.
func (s *Store) ListBoards(ctx context.Context) ([]*domain.Board, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+boardColumns+` FROM boards b ORDER BY b.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBoards(rows)
}

// ListBoardsByParent returns the direct children of a board, ordered by name.
// Pass the empty string for root boards.
func (s *Store) ListBoardsByParent(ctx context.Context, parentID string) ([]*domain.Board, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if parentID == "" {
		rows, err = s.db.QueryContext(ctx,
			`SELECT `+boardColumns+` FROM boards b WHERE b.parent_id IS NULL ORDER BY b.name`)
	} else {
		rows, err = s.db.QueryContext(ctx,
			`SELECT `+boardColumns+` FROM boards b WHERE b.parent_id = ? ORDER BY b.name`, parentID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBoards(rows)
}

// UpdateBoard updates a board's mutable fields (name, description, cover,
// rules). The parent pointer is updated separately via UpdateBoardParent.
// Returns store.ErrNotFound if the board does not exist.
func (s *Store) UpdateBoard(ctx context.Context, board *domain.Board) error {
	rules, err := marshalRules(board.SmartRules)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE boards SET
			updated_at = ?,
			name = ?,
			description = ?,
			cover_item_id = ?,
			smart_rules = ?
		WHERE id = ?`,
		formatTime(board.UpdatedAt),
		board.Name,
		nullString(board.Description),
		nullString(board.CoverItemID),
		rules,
		board.ID,
	)
	if err != nil {
		return err
	}
	return requireRowsAffected(result)
}

// UpdateBoardParent atomically updates a board's parent pointer.
// Pass the empty string to move the board to root level.
// Returns store.ErrNotFound if the board does not exist.
func (s *Store) UpdateBoardParent(ctx context.Context, id, parentID string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE boards SET parent_id = ?, updated_at = ? WHERE id = ?`,
		nullString(parentID),
		formatTime(time.Now()),
		id,
	)
	if err != nil {
		return err
	}
	return requireRowsAffected(result)
}

// UpdateBoardRules replaces a board's smart-rule set. Pass nil to clear it.
// Returns store.ErrNotFound if the board does not exist.
func (s *Store) UpdateBoardRules(ctx context.Context, id string, rules *domain.SmartRules) error {
	encoded, err := marshalRules(rules)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE boards SET smart_rules = ?, updated_at = ? WHERE id = ?`,
		encoded,
		formatTime(time.Now()),
		id,
	)
	if err != nil {
		return err
	}
	return requireRowsAffected(result)
}

// DeleteBoard hard-deletes a board. Memberships are removed via ON DELETE
// CASCADE; deleting a board that still has children fails the parent_id
// foreign key, so callers must handle descendants first.
// Returns store.ErrNotFound if the board does not exist.
func (s *Store) DeleteBoard(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowsAffected(result)
}

// collectBoards drains a board result set.
func collectBoards(rows *sql.Rows) ([]*domain.Board, error) {
	var boards []*domain.Board
	for rows.Next() {
		board, err := scanBoard(rows)
		if err != nil {
			return nil, err
		}
		boards = append(boards, board)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return boards, nil
}

// requireRowsAffected maps a zero-row update/delete to store.ErrNotFound.
func requireRowsAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
