package mysql

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	assessmentDomain "microlend-backend/internal/domain/assessment"
	"microlend-backend/pkg/id"
)

func makeAssessment(loanID uint64) *assessmentDomain.Assessment {
	return &assessmentDomain.Assessment{
		AssessmentID:        id.NewID32(),
		LoanID:              loanID,
		GrossMonthlyIncome:  10000,
		NetMonthlyIncome:    8000,
		RentOrBond:          2000,
		LivingExpenses:      1500,
		DebtObligations:     500,
		DisposableIncome:    4000,
		DebtToIncomeRatio:   15.88,
		DisposableAfterLoan: 2912.50,
		CanAfford:           true,
		Outcome:             assessmentDomain.OutcomePass,
		Explanation:         "PASS: comfortable margin",
	}
}

func TestAssessmentRepository_CreateAndGet(t *testing.T) {
	db := openTestDB(t)
	loans := NewLoanRepository(db)
	repo := NewAssessmentRepository(db)
	ctx := context.Background()

	l := makeLoan(id.NewID32(), id.NewID32())
	if err := loans.Create(ctx, l); err != nil {
		t.Fatalf("seed loan: %v", err)
	}

	if err := repo.Create(ctx, makeAssessment(l.ID)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByLoanID(ctx, l.ID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.Outcome != assessmentDomain.OutcomePass || !got.CanAfford || got.DisposableIncome != 4000 {
		t.Fatalf("unexpected assessment: %+v", got)
	}

	if _, err := repo.GetByLoanID(ctx, 9999); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err = %v, want ErrRecordNotFound", err)
	}
}

func TestAssessmentRepository_OnePerLoan(t *testing.T) {
	db := openTestDB(t)
	loans := NewLoanRepository(db)
	repo := NewAssessmentRepository(db)
	ctx := context.Background()

	l := makeLoan(id.NewID32(), id.NewID32())
	if err := loans.Create(ctx, l); err != nil {
		t.Fatalf("seed loan: %v", err)
	}
	if err := repo.Create(ctx, makeAssessment(l.ID)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	// The unique index allows only one assessment per loan.
	if err := repo.Create(ctx, makeAssessment(l.ID)); err == nil {
		t.Fatal("second assessment for the same loan must fail")
	}
}
