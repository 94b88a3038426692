package ideas

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ideastash/ideastash/pkg/notify"
)

var ErrNotificationNotFound = errors.New("notification not found")

const (
	getNotificationStatement = `
	SELECT id, idea_id, title, body, notify_at, recurrence, schedule_handle, is_active
	FROM notifications
	WHERE id = ?
	`

	getNotificationByIdeaStatement = `
	SELECT id, idea_id, title, body, notify_at, recurrence, schedule_handle, is_active
	FROM notifications
	WHERE idea_id = ?
	`

	deactivateNotificationStatement = `
	UPDATE notifications
	SET is_active = FALSE
	WHERE id = ?
	`
)

func scanNotification(row *sql.Row) (Notification, error) {
	var (
		n          Notification
		body       sql.NullString
		recurrence string
		handle     sql.NullString
	)

	err := row.Scan(
		&n.ID,
		&n.IdeaID,
		&n.Title,
		&body,
		&n.NotifyAt,
		&recurrence,
		&handle,
		&n.Active,
	)
	if err != nil {
		return Notification{}, err
	}

	n.Body = body.String
	n.Recurrence = notify.Recurrence(recurrence)
	n.ScheduleHandle = handle.String
	return n, nil
}

// GetNotification retrieves a notification by id.
func GetNotification(ctx context.Context, db *sql.DB, id uuid.UUID) (Notification, error) {
	n, err := scanNotification(db.QueryRowContext(ctx, getNotificationStatement, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Notification{}, ErrNotificationNotFound
		}
		return Notification{}, err
	}
	return n, nil
}

// GetNotificationByIdea returns the reminder attached to an idea, or
// (nil, nil) if the idea has none.
func GetNotificationByIdea(ctx context.Context, db *sql.DB, ideaID uuid.UUID) (*Notification, error) {
	n, err := scanNotification(db.QueryRowContext(ctx, getNotificationByIdeaStatement, ideaID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

// CancelNotification cancels the device trigger behind a notification and
// marks the row inactive. The row is kept for history; only is_active flips.
func CancelNotification(ctx context.Context, db *sql.DB, scheduler notify.Scheduler, id uuid.UUID) error {
	n, err := GetNotification(ctx, db, id)
	if err != nil {
		return err
	}

	if n.ScheduleHandle != "" && scheduler != nil {
		if err := scheduler.Cancel(ctx, n.ScheduleHandle); err != nil {
			return fmt.Errorf("failed to cancel scheduled trigger: %w", err)
		}
	}

	if _, err := db.ExecContext(ctx, deactivateNotificationStatement, id); err != nil {
		return err
	}

	return nil
}
