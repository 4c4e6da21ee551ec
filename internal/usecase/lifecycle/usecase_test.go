package lifecycle

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	domainLoan "microlend-backend/internal/domain/loan"
	"microlend-backend/internal/domain/uow"
	"microlend-backend/internal/rules"
	"microlend-backend/internal/testutil/effectsmock"
	"microlend-backend/internal/testutil/loanmock"
	"microlend-backend/internal/testutil/uowmock"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func silentLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type harness struct {
	loan  *domainLoan.Loan
	rec   *effectsmock.Recorder
	u     *Usecase
	saves int
}

// newHarness wires a unit of work that hands the stored loan to the
// transaction body, the way WithinLoanTx does after taking the row lock.
func newHarness(l *domainLoan.Loan, caps rules.SystemCaps) *harness {
	h := &harness{loan: l, rec: &effectsmock.Recorder{Staff: []string{"staff-9"}}}
	loans := &loanmock.Repo{
		SaveFn: func(ctx context.Context, saved *domainLoan.Loan) error { h.saves++; return nil },
	}
	tx := &uowmock.UoW{
		WithinLoanTxFn: func(ctx context.Context, loanID string, fn func(r uow.Repos, l *domainLoan.Loan) error) error {
			if h.loan == nil || h.loan.LoanID != loanID {
				return gorm.ErrRecordNotFound
			}
			return fn(uow.Repos{Loans: loans}, h.loan)
		},
	}
	h.u = NewUsecase(tx, rules.NewStatic(nil, caps), effectsmock.NewDispatcher(h.rec), silentLogger())
	h.u.now = func() time.Time { return testNow }
	return h
}

func pendingLoan() *domainLoan.Loan {
	return &domainLoan.Loan{
		ID: 5, LoanID: "loan-5", BorrowerID: "b-1",
		Principal: 20000, TermMonths: 24,
		MonthlyInstallment: 1100,
		Status:             domainLoan.StatusPreApproved,
	}
}

func TestApprove_ActivatesLoan(t *testing.T) {
	h := newHarness(pendingLoan(), rules.DefaultCaps())

	ok, err := h.u.Approve(context.Background(), "loan-5", "staff-9")
	if err != nil {
		t.Fatalf("Approve error: %v", err)
	}
	if !ok {
		t.Fatal("expected the approval to apply")
	}
	l := h.loan
	if l.Status != domainLoan.StatusActive {
		t.Fatalf("status = %s, want active", l.Status)
	}
	if l.ApprovedBy != "staff-9" {
		t.Fatalf("approved_by = %q", l.ApprovedBy)
	}
	if l.ApprovedAt == nil || !l.ApprovedAt.Equal(testNow) {
		t.Fatalf("approved_at = %v", l.ApprovedAt)
	}
	wantEnd := testNow.AddDate(0, 24, 0)
	if l.EndDate == nil || !l.EndDate.Equal(wantEnd) {
		t.Fatalf("end_date = %v, want %v", l.EndDate, wantEnd)
	}
	if h.saves != 1 {
		t.Fatalf("saves = %d, want 1", h.saves)
	}

	actions := h.rec.ActionsSeen()
	if len(actions) != 1 || actions[0] != "loan_approved" {
		t.Fatalf("audit actions = %v", actions)
	}
	borrower := h.rec.NotificationsFor("b-1")
	if len(borrower) != 1 || borrower[0].Title != "Loan Approved" {
		t.Fatalf("borrower notifications = %+v", borrower)
	}
	staff := h.rec.NotificationsFor("staff-9")
	if len(staff) != 1 || staff[0].Title != "Loan Activated" {
		t.Fatalf("staff notifications = %+v", staff)
	}
}

func TestApprove_BlockedByTightenedCaps(t *testing.T) {
	// Cap dropped to 15000 after the 20000 application was taken.
	h := newHarness(pendingLoan(), rules.SystemCaps{MaxLoanAmount: 15000, MaxTermMonths: 60})

	ok, err := h.u.Approve(context.Background(), "loan-5", "staff-9")
	if err != nil {
		t.Fatalf("Approve error: %v", err)
	}
	if ok {
		t.Fatal("approval must be blocked")
	}
	if h.loan.Status != domainLoan.StatusPreApproved {
		t.Fatalf("status = %s, blocked approval must not mutate", h.loan.Status)
	}
	if h.saves != 0 {
		t.Fatalf("saves = %d, want 0", h.saves)
	}
	actions := h.rec.ActionsSeen()
	if len(actions) != 1 || actions[0] != "approval_blocked" {
		t.Fatalf("audit actions = %v", actions)
	}
	if len(h.rec.Notifications) != 0 {
		t.Fatalf("blocked approval must not notify, got %+v", h.rec.Notifications)
	}
}

func TestApprove_IgnoresLoanOutsideSourceStates(t *testing.T) {
	for _, status := range []domainLoan.Status{
		domainLoan.StatusActive, domainLoan.StatusRejected, domainLoan.StatusCompleted,
	} {
		l := pendingLoan()
		l.Status = status
		h := newHarness(l, rules.DefaultCaps())

		ok, err := h.u.Approve(context.Background(), "loan-5", "staff-9")
		if err != nil {
			t.Fatalf("status %s: Approve error: %v", status, err)
		}
		if ok {
			t.Fatalf("status %s: approve must be ignored", status)
		}
		if h.loan.Status != status || h.saves != 0 {
			t.Fatalf("status %s: loan mutated", status)
		}
		if len(h.rec.Events) != 0 || len(h.rec.Notifications) != 0 {
			t.Fatalf("status %s: no effects expected", status)
		}
	}
}

func TestApprove_NotFound(t *testing.T) {
	h := newHarness(pendingLoan(), rules.DefaultCaps())

	_, err := h.u.Approve(context.Background(), "missing", "staff-9")
	if !errors.Is(err, domainLoan.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestReject_Success(t *testing.T) {
	l := pendingLoan()
	l.Status = domainLoan.StatusPending
	h := newHarness(l, rules.DefaultCaps())

	ok, err := h.u.Reject(context.Background(), "loan-5", "staff-9")
	if err != nil {
		t.Fatalf("Reject error: %v", err)
	}
	if !ok {
		t.Fatal("expected the rejection to apply")
	}
	if h.loan.Status != domainLoan.StatusRejected {
		t.Fatalf("status = %s, want rejected", h.loan.Status)
	}
	actions := h.rec.ActionsSeen()
	if len(actions) != 1 || actions[0] != "loan_rejected" {
		t.Fatalf("audit actions = %v", actions)
	}
	borrower := h.rec.NotificationsFor("b-1")
	if len(borrower) != 1 || borrower[0].Title != "Loan Application Declined" {
		t.Fatalf("borrower notifications = %+v", borrower)
	}
}

func TestReject_IgnoresActiveLoan(t *testing.T) {
	l := pendingLoan()
	l.Status = domainLoan.StatusActive
	h := newHarness(l, rules.DefaultCaps())

	ok, err := h.u.Reject(context.Background(), "loan-5", "staff-9")
	if err != nil {
		t.Fatalf("Reject error: %v", err)
	}
	if ok || h.loan.Status != domainLoan.StatusActive {
		t.Fatal("active loan must not be rejected")
	}
}

func TestReject_NotFound(t *testing.T) {
	h := newHarness(pendingLoan(), rules.DefaultCaps())

	_, err := h.u.Reject(context.Background(), "missing", "staff-9")
	if !errors.Is(err, domainLoan.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
