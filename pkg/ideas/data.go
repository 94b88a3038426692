package ideas

import (
	"time"

	"github.com/google/uuid"

	"github.com/ideastash/ideastash/pkg/notify"
)

// Folder is a named grouping of ideas.
type Folder struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Synced    bool      `json:"is_synced"`
	Deleted   bool      `json:"is_deleted"`
	CreatedAt float64   `json:"created_at"`
	UpdatedAt float64   `json:"updated_at"`
}

// FolderSummary is the (id, name) projection returned by ListFolders.
type FolderSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Tag is a free-form label, many-to-many with ideas. Tag names are not
// unique; two tags may share a name.
type Tag struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Synced    bool      `json:"is_synced"`
	Deleted   bool      `json:"is_deleted"`
	CreatedAt float64   `json:"created_at"`
	UpdatedAt float64   `json:"updated_at"`
}

// TagSummary is the (id, name) projection returned by ListTags and carried
// on fetched ideas.
type TagSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Idea is a user-authored note with optional link, image and rich-text body,
// belonging to exactly one folder. Tags holds the joined tag rows; it is an
// empty, non-nil slice for ideas without tags.
type Idea struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Link        string       `json:"link,omitempty"`
	Content     string       `json:"content,omitempty"`
	Image       string       `json:"image,omitempty"`
	FolderID    uuid.UUID    `json:"folder_id"`
	CreatedAt   float64      `json:"created_at"`
	UpdatedAt   float64      `json:"updated_at"`
	Tags        []TagSummary `json:"tags"`
}

// Notification is a persisted reminder for an idea. ScheduleHandle is the
// opaque identifier returned by the scheduler collaborator, kept so the
// trigger can be cancelled later.
type Notification struct {
	ID             uuid.UUID         `json:"id"`
	IdeaID         uuid.UUID         `json:"idea_id"`
	Title          string            `json:"title"`
	Body           string            `json:"body,omitempty"`
	NotifyAt       int64             `json:"notify_at"`
	Recurrence     notify.Recurrence `json:"recurrence"`
	ScheduleHandle string            `json:"schedule_handle,omitempty"`
	Active         bool              `json:"is_active"`
}

// ReminderRequest asks CreateIdea to register a reminder alongside the idea.
// An empty Recurrence means "none": fire once at the given time.
type ReminderRequest struct {
	At         time.Time         `validate:"required"`
	Recurrence notify.Recurrence `validate:"omitempty,oneof=none daily weekly monthly yearly"`
}

// NewIdea is the creation request for CreateIdea. It is validated before any
// database work happens.
type NewIdea struct {
	Title       string           `validate:"required,max=200"`
	Description string           `validate:"omitempty,max=1000"`
	Link        string           `validate:"omitempty,url"`
	Image       string           `validate:"-"`
	FolderID    uuid.UUID        `validate:"required"`
	TagIDs      []uuid.UUID      `validate:"-"`
	Reminder    *ReminderRequest `validate:"omitempty"`
}
