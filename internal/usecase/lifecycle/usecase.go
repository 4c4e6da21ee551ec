// Package lifecycle drives the admin approve/reject transitions. Both
// operations are idempotent-safe: calling them on a loan outside the valid
// source states reports failure without mutating anything.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"microlend-backend/internal/domain/effects"
	domainLoan "microlend-backend/internal/domain/loan"
	"microlend-backend/internal/domain/uow"
	"microlend-backend/internal/rules"
)

type Usecase struct {
	uow      uow.UnitOfWork
	provider rules.Provider
	fx       *effects.Dispatcher
	log      *logrus.Logger
	now      func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, provider rules.Provider, fx *effects.Dispatcher, log *logrus.Logger) *Usecase {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Usecase{uow: tx, provider: provider, fx: fx, log: log, now: func() time.Time { return time.Now().UTC() }}
}

func transitionAllowed(s domainLoan.Status) bool {
	return s == domainLoan.StatusPending || s == domainLoan.StatusPreApproved
}

// Approve moves a pending or pre-approved loan to active. The current system
// caps are re-checked first: they may have tightened since application, and
// a violation blocks the approval without mutating the loan.
func (u *Usecase) Approve(ctx context.Context, loanID, approverID string) (bool, error) {
	caps, err := u.provider.Caps(ctx)
	if err != nil {
		return false, err
	}

	var approved *domainLoan.Loan
	err = u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if !transitionAllowed(l.Status) {
			u.log.WithFields(logrus.Fields{"loan_id": loanID, "status": l.Status}).
				Info("approve ignored: loan is not awaiting approval")
			return nil
		}
		if l.Principal > caps.MaxLoanAmount || l.TermMonths > caps.MaxTermMonths {
			u.log.WithFields(logrus.Fields{
				"loan_id":     loanID,
				"principal":   l.Principal,
				"term_months": l.TermMonths,
				"max_amount":  caps.MaxLoanAmount,
				"max_term":    caps.MaxTermMonths,
			}).Warn("approval blocked: loan exceeds current system caps")
			u.fx.Audit(ctx, effects.AuditEvent{
				ActorID:    approverID,
				ActorLabel: "staff",
				Action:     effects.ActionApprovalBlocked,
				EntityType: "loan",
				EntityID:   loanID,
				Details: map[string]any{
					"principal":   l.Principal,
					"term_months": l.TermMonths,
					"max_amount":  caps.MaxLoanAmount,
					"max_term":    caps.MaxTermMonths,
				},
			})
			return nil
		}

		now := u.now()
		end := now.AddDate(0, l.TermMonths, 0)
		l.Status = domainLoan.StatusActive
		l.ApprovedBy = approverID
		l.ApprovedAt = &now
		l.StartDate = &now
		l.EndDate = &end
		l.RegulatoryCompliant = true
		l.StatusUpdatedAt = now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		approved = l
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, domainLoan.ErrNotFound
		}
		return false, err
	}
	if approved == nil {
		return false, nil
	}

	u.fx.Audit(ctx, effects.AuditEvent{
		ActorID:    approverID,
		ActorLabel: "staff",
		Action:     effects.ActionLoanApproved,
		EntityType: "loan",
		EntityID:   approved.LoanID,
		Details:    map[string]any{"principal": approved.Principal, "term_months": approved.TermMonths},
	})
	u.fx.Notify(ctx, effects.Notification{
		RecipientID: approved.BorrowerID,
		Title:       "Loan Approved",
		Message: fmt.Sprintf("Your loan of %.2f has been approved and is now active. First installment of %.2f is due next month.",
			approved.Principal, approved.MonthlyInstallment),
		Category: effects.CategoryApproval,
		LoanID:   approved.LoanID,
	})
	u.fx.NotifyStaff(ctx, "Loan Activated",
		fmt.Sprintf("Loan %s for %.2f was approved by %s.", approved.LoanID, approved.Principal, approverID),
		effects.CategoryApproval, approved.LoanID)
	return true, nil
}

// Reject moves a pending or pre-approved loan to rejected.
func (u *Usecase) Reject(ctx context.Context, loanID, rejecterID string) (bool, error) {
	var rejected *domainLoan.Loan
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if !transitionAllowed(l.Status) {
			u.log.WithFields(logrus.Fields{"loan_id": loanID, "status": l.Status}).
				Info("reject ignored: loan is not awaiting a decision")
			return nil
		}
		l.Status = domainLoan.StatusRejected
		l.StatusUpdatedAt = u.now()
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		rejected = l
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, domainLoan.ErrNotFound
		}
		return false, err
	}
	if rejected == nil {
		return false, nil
	}

	u.fx.Audit(ctx, effects.AuditEvent{
		ActorID:    rejecterID,
		ActorLabel: "staff",
		Action:     effects.ActionLoanRejected,
		EntityType: "loan",
		EntityID:   rejected.LoanID,
		Details:    map[string]any{"principal": rejected.Principal},
	})
	u.fx.Notify(ctx, effects.Notification{
		RecipientID: rejected.BorrowerID,
		Title:       "Loan Application Declined",
		Message:     "Unfortunately your loan application was not approved. Contact us for details on reapplying.",
		Category:    effects.CategoryApproval,
		LoanID:      rejected.LoanID,
	})
	u.fx.NotifyStaff(ctx, "Loan Rejected",
		fmt.Sprintf("Loan %s was rejected by %s.", rejected.LoanID, rejecterID),
		effects.CategoryApproval, rejected.LoanID)
	return true, nil
}
