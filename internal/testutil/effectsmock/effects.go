// Package effectsmock records dispatched side effects so tests can assert on
// the audit trail and notifications without a database.
package effectsmock

import (
	"context"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"microlend-backend/internal/domain/effects"
)

type Recorder struct {
	mu            sync.Mutex
	Events        []effects.AuditEvent
	Notifications []effects.Notification
	Staff         []string

	AuditErr   error
	PublishErr error
}

func (r *Recorder) Record(ctx context.Context, ev effects.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.AuditErr != nil {
		return r.AuditErr
	}
	r.Events = append(r.Events, ev)
	return nil
}

func (r *Recorder) Publish(ctx context.Context, n effects.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.PublishErr != nil {
		return r.PublishErr
	}
	r.Notifications = append(r.Notifications, n)
	return nil
}

func (r *Recorder) StaffIDs(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.Staff))
	copy(out, r.Staff)
	return out, nil
}

// NotificationsFor filters the captured notifications by recipient.
func (r *Recorder) NotificationsFor(recipient string) []effects.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []effects.Notification
	for _, n := range r.Notifications {
		if n.RecipientID == recipient {
			out = append(out, n)
		}
	}
	return out
}

// ActionsSeen returns the audit action kinds in dispatch order.
func (r *Recorder) ActionsSeen() []effects.Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]effects.Action, 0, len(r.Events))
	for _, ev := range r.Events {
		out = append(out, ev.Action)
	}
	return out
}

// NewDispatcher wires the recorder into a dispatcher with a silent logger.
func NewDispatcher(r *Recorder) *effects.Dispatcher {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return effects.NewDispatcher(r, r, r, log)
}
