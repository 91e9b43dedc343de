package sqlite

import (
	"context"
	"time"

	"github.com/pinstackapp/pinstack-server/internal/domain"
)

// InsertMembership places an item on a board. Re-inserting an existing
// membership is a no-op, so cascaded placements stay idempotent.
func (s *Store) InsertMembership(ctx context.Context, boardID, itemID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO board_items (board_id, item_id, added_at)
		VALUES (?, ?, ?)`,
		boardID, itemID, formatTime(time.Now()),
	)
	return err
}

// DeleteMembership removes an item from a single board. Removing a
// membership that does not exist is a no-op.
func (s *Store) DeleteMembership(ctx context.Context, boardID, itemID string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM board_items WHERE board_id = ? AND item_id = ?`,
		boardID, itemID,
	)
	return err
}

// ListMembershipsByBoard returns the memberships of a board, newest first.
func (s *Store) ListMembershipsByBoard(ctx context.Context, boardID string) ([]*domain.Membership, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT board_id, item_id, added_at FROM board_items
		WHERE board_id = ?
		ORDER BY added_at DESC, item_id`,
		boardID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memberships []*domain.Membership
	for rows.Next() {
		var m domain.Membership
		var addedAt string
		if err := rows.Scan(&m.BoardID, &m.ItemID, &addedAt); err != nil {
			return nil, err
		}
		m.AddedAt, err = parseTime(addedAt)
		if err != nil {
			return nil, err
		}
		memberships = append(memberships, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return memberships, nil
}

// ListBoardIDsForItem returns the IDs of every board containing an item.
func (s *Store) ListBoardIDsForItem(ctx context.Context, itemID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT board_id FROM board_items WHERE item_id = ? ORDER BY board_id`,
		itemID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// ListItemsByBoard returns the items on a board, newest placement first.
func (s *Store) ListItemsByBoard(ctx context.Context, boardID string) ([]*domain.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+prefixedItemColumns+` FROM items i
		JOIN board_items bi ON bi.item_id = i.id
		WHERE bi.board_id = ?
		ORDER BY bi.added_at DESC, i.id`,
		boardID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectItems(rows)
}

const prefixedItemColumns = `i.id, i.created_at, i.updated_at, i.analyzed_at, i.filename, i.media_type, i.description, i.tags`

// MoveMemberships reassigns every membership of one board to another,
// skipping items already on the destination. Returns the number of
// memberships actually moved.
func (s *Store) MoveMemberships(ctx context.Context, fromBoardID, toBoardID string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO board_items (board_id, item_id, added_at)
		SELECT ?, item_id, ? FROM board_items WHERE board_id = ?`,
		toBoardID, formatTime(time.Now()), fromBoardID,
	)
	if err != nil {
		return 0, err
	}
	moved, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM board_items WHERE board_id = ?`, fromBoardID); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return int(moved), nil
}

// CountMemberships returns the number of items on a board.
func (s *Store) CountMemberships(ctx context.Context, boardID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM board_items WHERE board_id = ?`, boardID,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
