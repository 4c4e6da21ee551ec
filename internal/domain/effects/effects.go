package effects

import "context"

// Action is the closed set of audit action kinds. Free-form labels are not
// accepted anywhere; new actions must be added here.
type Action string

const (
	ActionLoanApplied       Action = "loan_applied"
	ActionLoanPreApproved   Action = "loan_pre_approved"
	ActionLoanQueued        Action = "loan_queued_for_review"
	ActionLoanApproved      Action = "loan_approved"
	ActionLoanRejected      Action = "loan_rejected"
	ActionApprovalBlocked   Action = "approval_blocked"
	ActionRepaymentRecorded Action = "repayment_recorded"
	ActionLoanCompleted     Action = "loan_completed"
	ActionStatusReconciled  Action = "status_reconciled"
)

// Category is the closed set of notification categories.
type Category string

const (
	CategoryApplication Category = "application"
	CategoryApproval    Category = "approval"
	CategoryRepayment   Category = "repayment"
	CategoryCompletion  Category = "completion"
	CategorySystem      Category = "system"
)

type AuditEvent struct {
	ActorID    string
	ActorLabel string
	Action     Action
	EntityType string
	EntityID   string
	Details    map[string]any
}

type Notification struct {
	RecipientID string
	Title       string
	Message     string
	Category    Category
	LoanID      string
}

type AuditSink interface {
	Record(ctx context.Context, ev AuditEvent) error
}

type NotificationPublisher interface {
	Publish(ctx context.Context, n Notification) error
}

// StaffDirectory resolves the recipients for staff-facing notifications.
type StaffDirectory interface {
	StaffIDs(ctx context.Context) ([]string, error)
}
