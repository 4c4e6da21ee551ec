package loan

import (
	"context"

	"github.com/sirupsen/logrus"

	"microlend-backend/internal/domain/effects"
	domainLoan "microlend-backend/internal/domain/loan"
	"microlend-backend/internal/domain/repayment"
)

// reconcile repairs a loan whose stored status has drifted from what its
// repayment history implies, persisting any correction before the read
// returns. Idempotent: a second pass over a reconciled loan changes nothing.
func (u *Usecase) reconcile(ctx context.Context, l *domainLoan.Loan, reps []repayment.Repayment) bool {
	remaining := l.TotalRepayable - repayment.Sum(reps)

	var corrected domainLoan.Status
	switch {
	case remaining <= domainLoan.CompletionEpsilon && l.Status != domainLoan.StatusCompleted:
		corrected = domainLoan.StatusCompleted
	case remaining > domainLoan.CompletionEpsilon && l.Status == domainLoan.StatusCompleted && len(reps) > 0:
		// A completed loan with zero repayments is a data anomaly we leave
		// alone rather than invent a revert target for.
		corrected = domainLoan.StatusActive
	default:
		return false
	}

	previous := l.Status
	l.Status = corrected
	l.StatusUpdatedAt = u.now()
	if err := u.repo.Save(ctx, l); err != nil {
		u.log.WithError(err).WithFields(logrus.Fields{
			"loan_id": l.LoanID,
			"from":    previous,
			"to":      corrected,
		}).Error("status reconciliation could not be persisted")
		l.Status = previous
		return false
	}

	u.log.WithFields(logrus.Fields{
		"loan_id":   l.LoanID,
		"from":      previous,
		"to":        corrected,
		"remaining": remaining,
	}).Info("loan status reconciled")
	u.fx.Audit(ctx, effects.AuditEvent{
		ActorID:    "system",
		ActorLabel: "status-reconciler",
		Action:     effects.ActionStatusReconciled,
		EntityType: "loan",
		EntityID:   l.LoanID,
		Details: map[string]any{
			"from":      string(previous),
			"to":        string(corrected),
			"remaining": remaining,
		},
	})
	return true
}
