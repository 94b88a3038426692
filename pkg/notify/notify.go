package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Recurrence governs how a scheduled reminder repeats after its stored time.
type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
	RecurrenceYearly  Recurrence = "yearly"
)

// Valid reports whether r is one of the supported recurrence kinds.
func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	}
	return false
}

// ParseRecurrence converts a string to a Recurrence, treating the empty
// string as "none".
func ParseRecurrence(s string) (Recurrence, error) {
	if s == "" {
		return RecurrenceNone, nil
	}
	r := Recurrence(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown recurrence kind: %q", s)
	}
	return r, nil
}

// Request describes one reminder to register with the device scheduler.
type Request struct {
	ID         uuid.UUID
	IdeaID     uuid.UUID
	Title      string
	Body       string
	At         time.Time
	Recurrence Recurrence
}

// Scheduler registers reminder triggers with whatever notification facility
// the host platform provides. Schedule returns an opaque handle that is
// persisted alongside the notification row and can be passed to Cancel later.
// A Schedule failure is treated as a hard failure by the caller.
type Scheduler interface {
	Schedule(ctx context.Context, req Request) (string, error)
	Cancel(ctx context.Context, handle string) error
}

// NextFire returns the first instant at or after now when a trigger with the
// given stored time and recurrence fires. For RecurrenceNone that is the
// stored time itself, even if it is already in the past; for the repeating
// kinds the stored time contributes its clock time (and day / weekday / month
// as applicable) while the date advances past now.
func NextFire(at time.Time, r Recurrence, now time.Time) time.Time {
	switch r {
	case RecurrenceDaily:
		next := time.Date(now.Year(), now.Month(), now.Day(), at.Hour(), at.Minute(), 0, 0, at.Location())
		if next.Before(now) {
			next = next.AddDate(0, 0, 1)
		}
		return next
	case RecurrenceWeekly:
		next := time.Date(now.Year(), now.Month(), now.Day(), at.Hour(), at.Minute(), 0, 0, at.Location())
		for next.Weekday() != at.Weekday() || next.Before(now) {
			next = next.AddDate(0, 0, 1)
		}
		return next
	case RecurrenceMonthly:
		// time.Date normalizes out-of-range days, so a trigger stored on the
		// 31st rolls into the following month for shorter months.
		next := time.Date(now.Year(), now.Month(), at.Day(), at.Hour(), at.Minute(), 0, 0, at.Location())
		if next.Before(now) {
			next = next.AddDate(0, 1, 0)
		}
		return next
	case RecurrenceYearly:
		next := time.Date(now.Year(), at.Month(), at.Day(), at.Hour(), at.Minute(), 0, 0, at.Location())
		if next.Before(now) {
			next = next.AddDate(1, 0, 0)
		}
		return next
	default:
		return at
	}
}
