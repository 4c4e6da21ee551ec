package assessmentmock

import (
	"context"

	domain "microlend-backend/internal/domain/assessment"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn      func(ctx context.Context, a *domain.Assessment) error
	GetByLoanIDFn func(ctx context.Context, loanID uint64) (*domain.Assessment, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Assessment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID uint64) (*domain.Assessment, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}
