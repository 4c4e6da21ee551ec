package loanmock

import (
	"context"
	"errors"
	"testing"

	domain "microlend-backend/internal/domain/loan"
)

func TestRepoDefaults(t *testing.T) {
	m := &Repo{}
	ctx := context.Background()

	if err := m.Create(ctx, &domain.Loan{}); err != nil {
		t.Fatalf("Create default: %v", err)
	}
	if err := m.Save(ctx, &domain.Loan{}); err != nil {
		t.Fatalf("Save default: %v", err)
	}
	if _, err := m.GetByLoanID(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Fatalf("GetByLoanID default err = %v", err)
	}
	if _, err := m.GetByLoanIDForUpdate(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Fatalf("GetByLoanIDForUpdate default err = %v", err)
	}
	if out, err := m.ListAll(ctx); err != nil || out != nil {
		t.Fatalf("ListAll default = %v, %v", out, err)
	}
}

func TestRepoDelegates(t *testing.T) {
	want := &domain.Loan{LoanID: "loan-1"}
	m := &Repo{
		GetByLoanIDFn: func(ctx context.Context, loanID string) (*domain.Loan, error) {
			if loanID != "loan-1" {
				t.Fatalf("loanID = %q", loanID)
			}
			return want, nil
		},
	}
	got, err := m.GetByLoanID(context.Background(), "loan-1")
	if err != nil || got != want {
		t.Fatalf("got %v, %v", got, err)
	}
}
