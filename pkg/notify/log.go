package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
)

// LogScheduler is a Scheduler that records registrations on a writer instead
// of talking to a platform notifier. It is what the CLI wires in; a mobile or
// desktop embedding would supply its own Scheduler backed by the OS facility.
type LogScheduler struct {
	Out io.Writer
}

func (s LogScheduler) out() io.Writer {
	if s.Out != nil {
		return s.Out
	}
	return os.Stderr
}

// Schedule validates the request, picks a fresh handle and logs the next
// firing instant.
func (s LogScheduler) Schedule(ctx context.Context, req Request) (string, error) {
	if !req.Recurrence.Valid() {
		return "", fmt.Errorf("cannot schedule reminder with recurrence %q", req.Recurrence)
	}
	if req.At.IsZero() {
		return "", fmt.Errorf("cannot schedule reminder without a time")
	}

	handle := uuid.NewString()
	next := NextFire(req.At, req.Recurrence, time.Now())
	fmt.Fprintf(s.out(), "Reminder %s for idea %s registered (handle %s): next fire %s, recurrence %s\n",
		req.ID, req.IdeaID, handle, next.Format(time.RFC3339), req.Recurrence)
	return handle, nil
}

// Cancel logs the cancellation. Unknown handles are not an error.
func (s LogScheduler) Cancel(ctx context.Context, handle string) error {
	fmt.Fprintf(s.out(), "Reminder with handle %s cancelled\n", handle)
	return nil
}
