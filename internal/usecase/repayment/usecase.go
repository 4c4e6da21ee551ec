// Package repayment records payments against a loan and drives the
// completion transition. Balances are always derived from the repayment
// history; the tentative in-transaction computation is verified against an
// authoritative reload after commit.
package repayment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"microlend-backend/internal/domain/effects"
	domainLoan "microlend-backend/internal/domain/loan"
	domainRepayment "microlend-backend/internal/domain/repayment"
	"microlend-backend/internal/domain/uow"
)

type Usecase struct {
	repo       domainLoan.Repository
	repayments domainRepayment.Repository
	uow        uow.UnitOfWork
	fx         *effects.Dispatcher
	log        *logrus.Logger
	now        func() time.Time
}

func NewUsecase(repo domainLoan.Repository, reps domainRepayment.Repository, tx uow.UnitOfWork, fx *effects.Dispatcher, log *logrus.Logger) *Usecase {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Usecase{repo: repo, repayments: reps, uow: tx, fx: fx, log: log, now: func() time.Time { return time.Now().UTC() }}
}

type RepaymentView struct {
	Reference        string    `json:"reference"`
	Amount           float64   `json:"amount"`
	PaidAt           time.Time `json:"paid_at"`
	Status           string    `json:"status"`
	AmountPaid       float64   `json:"amount_paid"`
	RemainingBalance float64   `json:"remaining_balance"`
	LoanStatus       string    `json:"loan_status"`
}

// Make records a payment for the borrower's loan. The status written inside
// the transaction is tentative: it is computed from the repayment set as
// loaded before this write. After commit the loan and its repayments are
// reloaded and the authoritative balance decides completion; a premature
// completed status is reverted to active.
func (u *Usecase) Make(ctx context.Context, borrowerID, loanID string, amount float64) (*RepaymentView, error) {
	if amount <= 0 {
		return nil, domainLoan.NewValidationError("repayment amount must be positive")
	}

	now := u.now()
	rp := &domainRepayment.Repayment{
		Reference: uuid.NewString(),
		Amount:    amount,
		PaidAt:    now,
		Status:    domainRepayment.StatusConfirmed,
	}

	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.BorrowerID != borrowerID {
			return domainLoan.ErrNotBorrower
		}
		if !l.Repayable() {
			return domainLoan.NewStateError(l.Status)
		}

		// Pre-write snapshot of the repayment history.
		prior, err := r.Repayments.ListByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}

		rp.LoanID = l.ID
		if err := r.Repayments.Create(ctx, rp); err != nil {
			return err
		}

		// Tentative status from the stale snapshot plus this payment.
		if l.Status == domainLoan.StatusApproved {
			// A payment activates an approved-but-undisbursed loan.
			l.Status = domainLoan.StatusActive
		}
		tentativeRemaining := l.TotalRepayable - (domainRepayment.Sum(prior) + amount)
		if tentativeRemaining <= domainLoan.CompletionEpsilon {
			l.Status = domainLoan.StatusCompleted
		}
		l.StatusUpdatedAt = now
		return r.Loans.Save(ctx, l)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainLoan.ErrNotFound
		}
		return nil, err
	}

	// Authoritative pass: reload everything from the durable store. The
	// tentative computation used a collection fetched before this write was
	// committed, so it can disagree with reality under concurrency.
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	reps, err := u.repayments.ListByLoanID(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	paid := domainRepayment.Sum(reps)
	remaining := l.TotalRepayable - paid
	completed := remaining <= domainLoan.CompletionEpsilon

	if !completed && l.Status == domainLoan.StatusCompleted {
		l.Status = domainLoan.StatusActive
		l.StatusUpdatedAt = u.now()
		if err := u.repo.Save(ctx, l); err != nil {
			return nil, err
		}
		u.log.WithFields(logrus.Fields{"loan_id": loanID, "remaining": remaining}).
			Warn("reverted premature completion after authoritative recount")
	}

	u.fx.Audit(ctx, effects.AuditEvent{
		ActorID:    borrowerID,
		ActorLabel: "borrower",
		Action:     effects.ActionRepaymentRecorded,
		EntityType: "repayment",
		EntityID:   rp.Reference,
		Details: map[string]any{
			"loan_id":   loanID,
			"amount":    amount,
			"paid":      paid,
			"remaining": remaining,
		},
	})
	u.fx.Notify(ctx, effects.Notification{
		RecipientID: borrowerID,
		Title:       "Payment Received",
		Message:     fmt.Sprintf("We received your payment of %.2f. Remaining balance: %.2f.", amount, clampZero(remaining)),
		Category:    effects.CategoryRepayment,
		LoanID:      loanID,
	})
	u.fx.NotifyStaff(ctx, "Payment Received",
		fmt.Sprintf("Payment of %.2f recorded against loan %s.", amount, loanID),
		effects.CategoryRepayment, loanID)

	// Completion effects fire only once the authoritative recount confirms
	// the loan is fully repaid.
	if completed {
		u.fx.Audit(ctx, effects.AuditEvent{
			ActorID:    "system",
			ActorLabel: "repayment-processor",
			Action:     effects.ActionLoanCompleted,
			EntityType: "loan",
			EntityID:   loanID,
			Details:    map[string]any{"total_paid": paid},
		})
		u.fx.Notify(ctx, effects.Notification{
			RecipientID: borrowerID,
			Title:       "Loan Fully Repaid",
			Message:     "Congratulations! Your loan has been fully repaid and is now closed.",
			Category:    effects.CategoryCompletion,
			LoanID:      loanID,
		})
		u.fx.NotifyStaff(ctx, "Loan Completed",
			fmt.Sprintf("Loan %s has been fully repaid.", loanID),
			effects.CategoryCompletion, loanID)
	}

	return &RepaymentView{
		Reference:        rp.Reference,
		Amount:           rp.Amount,
		PaidAt:           rp.PaidAt,
		Status:           string(rp.Status),
		AmountPaid:       paid,
		RemainingBalance: clampZero(remaining),
		LoanStatus:       string(l.Status),
	}, nil
}

// List returns the repayment history of a loan, oldest first.
func (u *Usecase) List(ctx context.Context, loanID string) ([]RepaymentView, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainLoan.ErrNotFound
		}
		return nil, err
	}
	reps, err := u.repayments.ListByLoanID(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	views := make([]RepaymentView, 0, len(reps))
	running := 0.0
	for i := range reps {
		running += reps[i].Amount
		views = append(views, RepaymentView{
			Reference:        reps[i].Reference,
			Amount:           reps[i].Amount,
			PaidAt:           reps[i].PaidAt,
			Status:           string(reps[i].Status),
			AmountPaid:       running,
			RemainingBalance: clampZero(l.TotalRepayable - running),
			LoanStatus:       string(l.Status),
		})
	}
	return views, nil
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
