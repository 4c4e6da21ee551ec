package loan

import (
	"time"

	"microlend-backend/internal/domain/loan"
	"microlend-backend/internal/domain/repayment"
)

type ApplyInput struct {
	Amount            float64
	TermMonths        int
	Purpose           string
	Method            loan.Method
	DateOfBirth       time.Time
	GrossIncome       float64
	NetIncome         float64
	SpouseIncome      float64
	RentOrBond        float64
	LivingExpenses    float64
	DebtObligations   float64
	Insurance         float64
	OtherExpenses     float64
	Dependents        int
	DocumentsVerified bool
	LifeCoverConsent  bool
}

// LoanView is the read model returned to callers. Balances are derived from
// the repayment history at read time, never read from a stored counter.
type LoanView struct {
	LoanID             string      `json:"loan_id"`
	BorrowerID         string      `json:"borrower_id"`
	Principal          float64     `json:"principal"`
	DepositAmount      float64     `json:"deposit_amount,omitempty"`
	InterestRate       float64     `json:"interest_rate"`
	TermMonths         int         `json:"term_months"`
	InitiationFee      float64     `json:"initiation_fee"`
	MonthlyServiceFee  float64     `json:"monthly_service_fee"`
	CreditLifePremium  float64     `json:"credit_life_premium"`
	TotalInterest      float64     `json:"total_interest"`
	TotalFees          float64     `json:"total_fees"`
	TotalRepayable     float64     `json:"total_repayable"`
	MonthlyInstallment float64     `json:"monthly_installment"`
	Purpose            string      `json:"purpose"`
	Method             loan.Method `json:"application_method"`
	Status             loan.Status `json:"status"`
	AmountPaid         float64     `json:"amount_paid"`
	RemainingBalance   float64     `json:"remaining_balance"`
	AppliedAt          time.Time   `json:"applied_at"`
	ApprovedAt         *time.Time  `json:"approved_at,omitempty"`
	StartDate          *time.Time  `json:"start_date,omitempty"`
	EndDate            *time.Time  `json:"end_date,omitempty"`
}

func newView(l *loan.Loan, reps []repayment.Repayment) *LoanView {
	paid := repayment.Sum(reps)
	remaining := l.TotalRepayable - paid
	if remaining < 0 {
		remaining = 0 // raw value kept for diagnostics only
	}
	return &LoanView{
		LoanID:             l.LoanID,
		BorrowerID:         l.BorrowerID,
		Principal:          l.Principal,
		DepositAmount:      l.DepositAmount,
		InterestRate:       l.InterestRate,
		TermMonths:         l.TermMonths,
		InitiationFee:      l.InitiationFee,
		MonthlyServiceFee:  l.MonthlyServiceFee,
		CreditLifePremium:  l.CreditLifePremium,
		TotalInterest:      l.TotalInterest,
		TotalFees:          l.TotalFees,
		TotalRepayable:     l.TotalRepayable,
		MonthlyInstallment: l.MonthlyInstallment,
		Purpose:            l.Purpose,
		Method:             l.Method,
		Status:             l.Status,
		AmountPaid:         paid,
		RemainingBalance:   remaining,
		AppliedAt:          l.AppliedAt,
		ApprovedAt:         l.ApprovedAt,
		StartDate:          l.StartDate,
		EndDate:            l.EndDate,
	}
}
