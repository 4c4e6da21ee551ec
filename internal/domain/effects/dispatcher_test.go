package effects

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
)

type sinkStub struct {
	events []AuditEvent
	notes  []Notification
	staff  []string

	recordErr  error
	publishErr error
	staffErr   error
}

func (s *sinkStub) Record(ctx context.Context, ev AuditEvent) error {
	if s.recordErr != nil {
		return s.recordErr
	}
	s.events = append(s.events, ev)
	return nil
}

func (s *sinkStub) Publish(ctx context.Context, n Notification) error {
	if s.publishErr != nil {
		return s.publishErr
	}
	s.notes = append(s.notes, n)
	return nil
}

func (s *sinkStub) StaffIDs(ctx context.Context) ([]string, error) {
	return s.staff, s.staffErr
}

func newTestDispatcher(s *sinkStub) *Dispatcher {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewDispatcher(s, s, s, log)
}

func TestDispatcher_AuditAndNotify(t *testing.T) {
	s := &sinkStub{}
	d := newTestDispatcher(s)
	ctx := context.Background()

	d.Audit(ctx, AuditEvent{Action: ActionLoanApplied, EntityID: "loan-1"})
	d.Notify(ctx, Notification{RecipientID: "b-1", Title: "hi"})

	if len(s.events) != 1 || s.events[0].Action != ActionLoanApplied {
		t.Fatalf("events = %+v", s.events)
	}
	if len(s.notes) != 1 || s.notes[0].RecipientID != "b-1" {
		t.Fatalf("notes = %+v", s.notes)
	}
}

func TestDispatcher_SinkFailuresAreSwallowed(t *testing.T) {
	s := &sinkStub{recordErr: errors.New("db down"), publishErr: errors.New("broker down")}
	d := newTestDispatcher(s)
	ctx := context.Background()

	// Must not panic or propagate; the events are simply lost.
	d.Audit(ctx, AuditEvent{Action: ActionLoanApplied})
	d.Notify(ctx, Notification{RecipientID: "b-1"})

	if len(s.events) != 0 || len(s.notes) != 0 {
		t.Fatal("failed deliveries must not be recorded")
	}
}

func TestDispatcher_NotifyStaffFansOut(t *testing.T) {
	s := &sinkStub{staff: []string{"s-1", "s-2"}}
	d := newTestDispatcher(s)

	d.NotifyStaff(context.Background(), "Heads Up", "msg", CategorySystem, "loan-1")

	if len(s.notes) != 2 {
		t.Fatalf("notes = %d, want 2", len(s.notes))
	}
	if s.notes[0].RecipientID != "s-1" || s.notes[1].RecipientID != "s-2" {
		t.Fatalf("recipients = %+v", s.notes)
	}
	if s.notes[0].Title != "Heads Up" || s.notes[0].LoanID != "loan-1" {
		t.Fatalf("notification content off: %+v", s.notes[0])
	}
}

func TestDispatcher_StaffLookupFailureDropsAll(t *testing.T) {
	s := &sinkStub{staffErr: errors.New("directory down")}
	d := newTestDispatcher(s)

	d.NotifyStaff(context.Background(), "Heads Up", "msg", CategorySystem, "loan-1")
	if len(s.notes) != 0 {
		t.Fatalf("notes = %+v, want none", s.notes)
	}
}

func TestDispatcher_NilSinksAreNoOps(t *testing.T) {
	d := NewDispatcher(nil, nil, nil, nil)
	ctx := context.Background()

	d.Audit(ctx, AuditEvent{Action: ActionLoanApplied})
	d.Notify(ctx, Notification{})
	d.NotifyStaff(ctx, "t", "m", CategorySystem, "l")
}
