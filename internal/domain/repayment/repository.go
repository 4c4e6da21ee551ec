package repayment

import "context"

type Repository interface {
	Create(ctx context.Context, r *Repayment) error

	// ListByLoanID returns every repayment for the loan, oldest first.
	ListByLoanID(ctx context.Context, loanID uint64) ([]Repayment, error)
}
