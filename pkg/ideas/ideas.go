package ideas

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ideastash/ideastash/pkg/notify"
)

var ErrIdeaNotFound = errors.New("idea not found")

const (
	createIdeaStatement = `
	INSERT INTO ideas (id, title, description, link, image, folder_id, is_synced)
	VALUES (?, ?, ?, ?, ?, ?, FALSE)
	`

	createIdeaTagStatement = `
	INSERT INTO idea_tags (idea_id, tag_id)
	VALUES (?, ?)
	`

	createNotificationStatement = `
	INSERT INTO notifications (id, idea_id, title, body, notify_at, recurrence, schedule_handle)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	recentIdeasStatement = `
	SELECT ` + ideaTagColumns + `
	FROM ideas i
	LEFT JOIN idea_tags it ON it.idea_id = i.id
	LEFT JOIN tags t ON t.id = it.tag_id
	WHERE i.created_at >= unixepoch() - 604800
	ORDER BY i.created_at, i.id
	`

	getIdeaStatement = `
	SELECT ` + ideaTagColumns + `
	FROM ideas i
	LEFT JOIN idea_tags it ON it.idea_id = i.id
	LEFT JOIN tags t ON t.id = it.tag_id
	WHERE i.id = ?
	`

	folderIdeasStatement = `
	SELECT ` + ideaTagColumns + `
	FROM ideas i
	LEFT JOIN idea_tags it ON it.idea_id = i.id
	LEFT JOIN tags t ON t.id = it.tag_id
	WHERE i.folder_id = ?
	ORDER BY i.created_at, i.id
	`

	saveContentStatement = `
	UPDATE ideas
	SET content = ?, is_synced = FALSE, updated_at = unixepoch()
	WHERE id = ?
	`
)

// nullIfEmpty maps "" to SQL NULL for optional text columns.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// CreateIdea inserts an idea, its tag links and (if requested) a reminder
// notification as one transaction. Duplicate tag ids in the request violate
// the idea_tags primary key and abort the whole transaction; so does a
// scheduler failure. On success the idea, all of its tag links and at most
// one notification-with-handle exist together, or nothing does.
//
// The scheduler is called while the transaction is open so that a registered
// device trigger and its notification row commit or vanish together. If the
// commit itself fails after a successful Schedule call, the handle is
// cancelled best-effort so no orphaned trigger survives.
func CreateIdea(ctx context.Context, db *sql.DB, scheduler notify.Scheduler, in NewIdea) (*Idea, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	ideaID, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(
		ctx,
		createIdeaStatement,
		ideaID,
		in.Title,
		nullIfEmpty(in.Description),
		nullIfEmpty(in.Link),
		nullIfEmpty(in.Image),
		in.FolderID,
	)
	if err != nil {
		return nil, err
	}

	for _, tagID := range in.TagIDs {
		if _, err = tx.ExecContext(ctx, createIdeaTagStatement, ideaID, tagID); err != nil {
			return nil, err
		}
	}

	var handle string
	scheduled := false
	if in.Reminder != nil {
		if scheduler == nil {
			return nil, errors.New("reminder requested but no scheduler configured")
		}

		notificationID, err := uuid.NewV7()
		if err != nil {
			return nil, err
		}

		recurrence := in.Reminder.Recurrence
		if recurrence == "" {
			recurrence = notify.RecurrenceNone
		}

		title := "Reminder: " + in.Title
		body := in.Description
		if body == "" {
			body = "Check your idea"
		}

		handle, err = scheduler.Schedule(ctx, notify.Request{
			ID:         notificationID,
			IdeaID:     ideaID,
			Title:      title,
			Body:       body,
			At:         in.Reminder.At,
			Recurrence: recurrence,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to schedule reminder: %w", err)
		}
		scheduled = true

		_, err = tx.ExecContext(
			ctx,
			createNotificationStatement,
			notificationID,
			ideaID,
			title,
			body,
			in.Reminder.At.Unix(),
			string(recurrence),
			handle,
		)
		if err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		if scheduled {
			scheduler.Cancel(ctx, handle)
		}
		return nil, err
	}

	return FetchIdeaByID(ctx, db, ideaID)
}

// FetchRecentIdeas returns ideas created within the last 7 days (inclusive,
// relative to query time), each with its joined tags, ordered by creation
// time.
func FetchRecentIdeas(ctx context.Context, db *sql.DB) ([]Idea, error) {
	rows, err := db.QueryContext(ctx, recentIdeasStatement)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectIdeas(rows)
}

// FetchIdeaByID returns one idea with its joined tags, or (nil, nil) if no
// idea has the given id. Absence is a result, not an error.
func FetchIdeaByID(ctx context.Context, db *sql.DB, id uuid.UUID) (*Idea, error) {
	rows, err := db.QueryContext(ctx, getIdeaStatement, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ideas, err := collectIdeas(rows)
	if err != nil {
		return nil, err
	}
	if len(ideas) == 0 {
		return nil, nil
	}

	return &ideas[0], nil
}

// ListIdeasByFolder returns every idea in a folder with its joined tags,
// ordered by creation time.
func ListIdeasByFolder(ctx context.Context, db *sql.DB, folderID uuid.UUID) ([]Idea, error) {
	rows, err := db.QueryContext(ctx, folderIdeasStatement, folderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectIdeas(rows)
}

// SaveContent replaces the idea's rich-text body and resets is_synced. This
// is the only mutation after creation; last writer wins.
func SaveContent(ctx context.Context, db *sql.DB, id uuid.UUID, content string) error {
	res, err := db.ExecContext(ctx, saveContentStatement, content, id)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrIdeaNotFound
	}

	return nil
}
