package ideas

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrFolderNotFound = errors.New("folder not found")
	ErrEmptyName      = errors.New("name cannot be empty")
)

const (
	createFolderStatement = `
	INSERT INTO folders (id, name, is_synced)
	VALUES (?, ?, FALSE)
	`

	getFolderStatement = `
	SELECT id, name, is_synced, is_deleted, created_at, updated_at
	FROM folders
	WHERE id = ?
	`

	listFoldersStatement = `
	SELECT id, name
	FROM folders
	WHERE is_deleted = FALSE
	`
)

// CreateFolder inserts a folder with a fresh time-ordered identifier. A
// duplicate name violates the UNIQUE constraint on folders.name; that error
// is propagated unchanged for the caller to surface as a conflict.
func CreateFolder(ctx context.Context, db *sql.DB, name string) (Folder, error) {
	if name == "" {
		return Folder{}, ErrEmptyName
	}

	folderID, err := uuid.NewV7()
	if err != nil {
		return Folder{}, err
	}

	if _, err = db.ExecContext(ctx, createFolderStatement, folderID, name); err != nil {
		return Folder{}, err
	}

	return GetFolder(ctx, db, folderID)
}

// GetFolder retrieves a single folder by id.
func GetFolder(ctx context.Context, db *sql.DB, id uuid.UUID) (Folder, error) {
	var folder Folder

	err := db.QueryRowContext(ctx, getFolderStatement, id).Scan(
		&folder.ID,
		&folder.Name,
		&folder.Synced,
		&folder.Deleted,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Folder{}, ErrFolderNotFound
		}
		return Folder{}, err
	}

	return folder, nil
}

// ListFolders returns the (id, name) of every non-deleted folder in storage
// order.
func ListFolders(ctx context.Context, db *sql.DB) ([]FolderSummary, error) {
	rows, err := db.QueryContext(ctx, listFoldersStatement)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var folders []FolderSummary
	for rows.Next() {
		var folder FolderSummary
		if err := rows.Scan(&folder.ID, &folder.Name); err != nil {
			return nil, err
		}
		folders = append(folders, folder)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return folders, nil
}
