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

// itemColumns must match the scan order in scanItem.
const itemColumns = `id, created_at, updated_at, analyzed_at, filename, media_type, description, tags`

// scanItem scans a row into a domain.Item.
func scanItem(scanner interface{ Scan(dest ...any) error }) (*domain.Item, error) {
	var item domain.Item

	var (
		createdAt   string
		updatedAt   string
		analyzedAt  sql.NullString
		mediaType   string
		description sql.NullString
		tags        sql.NullString
	)

	err := scanner.Scan(
		&item.ID,
		&createdAt,
		&updatedAt,
		&analyzedAt,
		&item.Filename,
		&mediaType,
		&description,
		&tags,
	)
	if err != nil {
		return nil, err
	}

	item.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	item.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	item.AnalyzedAt, err = parseNullableTime(analyzedAt)
	if err != nil {
		return nil, err
	}

	item.MediaType = domain.MediaType(mediaType)
	item.Description = description.String

	if tags.Valid && tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &item.Tags); err != nil {
			return nil, fmt.Errorf("unmarshal tags for %s: %w", item.ID, err)
		}
	}

	return &item, nil
}

// marshalTags encodes a tag list for storage; empty encodes to NULL.
func marshalTags(tags []string) (sql.NullString, error) {
	if len(tags) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshal tags: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// CreateItem inserts an item. Returns store.ErrAlreadyExists on duplicate ID.
func (s *Store) CreateItem(ctx context.Context, item *domain.Item) error {
	tags, err := marshalTags(item.Tags)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO items (
			id, created_at, updated_at, analyzed_at, filename, media_type, description, tags
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		formatTime(item.CreatedAt),
		formatTime(item.UpdatedAt),
		nullTimeString(item.AnalyzedAt),
		item.Filename,
		string(item.MediaType),
		nullString(item.Description),
		tags,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetItem retrieves an item by ID.
// Returns store.ErrNotFound if the item does not exist.
func (s *Store) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id)

	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ListItems returns all items, newest first.
func (s *Store) ListItems(ctx context.Context) ([]*domain.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectItems(rows)
}

// UpdateItemAnalysis records analysis output for an item, stamping
// analyzed_at with the current time.
// Returns store.ErrNotFound if the item does not exist.
func (s *Store) UpdateItemAnalysis(ctx context.Context, id, description string, tags []string) error {
	encoded, err := marshalTags(tags)
	if err != nil {
		return err
	}

	now := formatTime(time.Now())
	result, err := s.db.ExecContext(ctx, `
		UPDATE items SET
			updated_at = ?,
			analyzed_at = ?,
			description = ?,
			tags = ?
		WHERE id = ?`,
		now,
		now,
		nullString(description),
		encoded,
		id,
	)
	if err != nil {
		return err
	}
	return requireRowsAffected(result)
}

// DeleteItem hard-deletes an item. Memberships are removed via ON DELETE
// CASCADE and any board cover referencing the item is set to NULL.
// Returns store.ErrNotFound if the item does not exist.
func (s *Store) DeleteItem(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowsAffected(result)
}

// collectItems drains an item result set.
func collectItems(rows *sql.Rows) ([]*domain.Item, error) {
	var items []*domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
