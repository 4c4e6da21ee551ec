package assessment

import "context"

type Repository interface {
	// Create a new assessment (DB uniqueness ensures at most one per loan).
	Create(ctx context.Context, a *Assessment) error

	// Get assessment by internal loan ID.
	GetByLoanID(ctx context.Context, loanID uint64) (*Assessment, error)
}
