package uow

import (
	"context"

	"microlend-backend/internal/domain/assessment"
	"microlend-backend/internal/domain/loan"
	"microlend-backend/internal/domain/repayment"
)

type Repos struct {
	Loans       loan.Repository
	Assessments assessment.Repository
	Repayments  repayment.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the loan row first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
