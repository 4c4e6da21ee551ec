package effects

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Dispatcher fans out audit events and notifications after a state transition
// has been committed. Every call is best-effort: sink failures are logged and
// swallowed, never propagated to the caller. There is no retry queue; a
// failed notification is simply lost.
type Dispatcher struct {
	audit  AuditSink
	notify NotificationPublisher
	staff  StaffDirectory
	log    *logrus.Logger
}

func NewDispatcher(audit AuditSink, notify NotificationPublisher, staff StaffDirectory, log *logrus.Logger) *Dispatcher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Dispatcher{audit: audit, notify: notify, staff: staff, log: log}
}

func (d *Dispatcher) Audit(ctx context.Context, ev AuditEvent) {
	if d.audit == nil {
		return
	}
	if err := d.audit.Record(ctx, ev); err != nil {
		d.log.WithError(err).WithFields(logrus.Fields{
			"action":    ev.Action,
			"entity_id": ev.EntityID,
		}).Warn("audit sink failed; event dropped")
	}
}

func (d *Dispatcher) Notify(ctx context.Context, n Notification) {
	if d.notify == nil {
		return
	}
	if err := d.notify.Publish(ctx, n); err != nil {
		d.log.WithError(err).WithFields(logrus.Fields{
			"recipient": n.RecipientID,
			"category":  n.Category,
		}).Warn("notification publish failed; dropped")
	}
}

// NotifyStaff publishes the same notification to every staff recipient.
func (d *Dispatcher) NotifyStaff(ctx context.Context, title, message string, cat Category, loanID string) {
	if d.staff == nil {
		return
	}
	ids, err := d.staff.StaffIDs(ctx)
	if err != nil {
		d.log.WithError(err).Warn("staff directory lookup failed; staff notifications dropped")
		return
	}
	for _, id := range ids {
		d.Notify(ctx, Notification{
			RecipientID: id,
			Title:       title,
			Message:     message,
			Category:    cat,
			LoanID:      loanID,
		})
	}
}
