package loan

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("loan not found")
	// ErrNotBorrower: the loan exists but belongs to someone else.
	ErrNotBorrower = errors.New("loan does not belong to this borrower")
)

// ValidationError carries a caller-facing message built at the point of
// rejection. Surfaced verbatim, never retried.
type ValidationError struct {
	msg string
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string { return e.msg }

// StateError rejects an operation because of the loan's current status, with
// a status-specific explanation rather than a generic message.
type StateError struct {
	Status Status
}

var stateExplanations = map[Status]string{
	StatusPending:     "this loan is still pending review and cannot accept repayments yet",
	StatusPreApproved: "this loan is pre-approved but awaiting final approval; repayments are not accepted yet",
	StatusRejected:    "this loan application was rejected; no repayments can be made against it",
	StatusCompleted:   "this loan has already been fully repaid",
}

func NewStateError(s Status) *StateError { return &StateError{Status: s} }

func (e *StateError) Error() string {
	if msg, ok := stateExplanations[e.Status]; ok {
		return msg
	}
	return fmt.Sprintf("loan status %q does not allow this operation", e.Status)
}
