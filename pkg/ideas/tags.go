package ideas

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

var ErrTagNotFound = errors.New("tag not found")

const (
	createTagStatement = `
	INSERT INTO tags (id, name, is_synced)
	VALUES (?, ?, FALSE)
	`

	getTagStatement = `
	SELECT id, name, is_synced, is_deleted, created_at, updated_at
	FROM tags
	WHERE id = ?
	`

	listTagsStatement = `
	SELECT id, name
	FROM tags
	WHERE is_deleted = FALSE
	`
)

// CreateTag inserts a tag with a fresh time-ordered identifier. Tag names
// carry no uniqueness constraint.
func CreateTag(ctx context.Context, db *sql.DB, name string) (Tag, error) {
	if name == "" {
		return Tag{}, ErrEmptyName
	}

	tagID, err := uuid.NewV7()
	if err != nil {
		return Tag{}, err
	}

	if _, err = db.ExecContext(ctx, createTagStatement, tagID, name); err != nil {
		return Tag{}, err
	}

	return GetTag(ctx, db, tagID)
}

// GetTag retrieves a single tag by id.
func GetTag(ctx context.Context, db *sql.DB, id uuid.UUID) (Tag, error) {
	var tag Tag

	err := db.QueryRowContext(ctx, getTagStatement, id).Scan(
		&tag.ID,
		&tag.Name,
		&tag.Synced,
		&tag.Deleted,
		&tag.CreatedAt,
		&tag.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Tag{}, ErrTagNotFound
		}
		return Tag{}, err
	}

	return tag, nil
}

// ListTags returns the (id, name) of every non-deleted tag in storage order.
func ListTags(ctx context.Context, db *sql.DB) ([]TagSummary, error) {
	rows, err := db.QueryContext(ctx, listTagsStatement)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []TagSummary
	for rows.Next() {
		var tag TagSummary
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tags, nil
}
