// Package affordability computes disposable income, debt-to-income ratios
// and the can-afford verdict for one application. Pure functions, no side
// effects.
package affordability

import (
	"fmt"
	"strings"

	"microlend-backend/internal/domain/assessment"
	"microlend-backend/internal/rules"
)

// Input is the applicant's declared financial position plus the proposed
// installment.
type Input struct {
	GrossIncome  float64
	NetIncome    float64
	SpouseIncome float64

	RentOrBond      float64
	LivingExpenses  float64
	DebtObligations float64
	Insurance       float64
	OtherExpenses   float64
	Dependents      int
}

// HouseholdGross is the combined gross income used for DTI denominators.
func (in Input) HouseholdGross() float64 { return in.GrossIncome + in.SpouseIncome }

type Result struct {
	TotalExpenses       float64
	DisposableIncome    float64
	PreliminaryDTI      float64
	PostInstallmentDTI  float64
	DisposableAfterLoan float64
	CanAfford           bool
	ResidualWarning     bool
	Outcome             assessment.Outcome
	Explanation         string
}

// Profile derives the installment-independent figures: total declared
// expenses, disposable income, and the preliminary DTI used for risk-tier
// selection. Preliminary DTI is 0 when household gross income is 0.
func Profile(in Input, r rules.AffordabilityRules) (totalExpenses, disposableIncome, preliminaryDTI float64) {
	totalExpenses = in.RentOrBond + in.LivingExpenses + in.DebtObligations +
		in.Insurance + in.OtherExpenses + float64(in.Dependents)*r.DependentCost
	disposableIncome = (in.NetIncome + in.SpouseIncome) - totalExpenses
	if gross := in.HouseholdGross(); gross > 0 {
		preliminaryDTI = in.DebtObligations / gross * 100
	}
	return totalExpenses, disposableIncome, preliminaryDTI
}

// Assess runs the full verdict for the proposed installment. Post-installment
// DTI is 100 when household gross income is 0.
func Assess(in Input, installment float64, r rules.AffordabilityRules) Result {
	totalExpenses, disposable, prelimDTI := Profile(in, r)

	postDTI := 100.0
	reservePct := 0.0
	gross := in.HouseholdGross()
	afterLoan := disposable - installment
	if gross > 0 {
		postDTI = (in.DebtObligations + installment) / gross * 100
		reservePct = afterLoan / gross * 100
	}

	// Hard breaches fail the verdict outright; cushion breaches only raise
	// the residual warning (they still block auto-approval, but the loan
	// stays reviewable rather than failed).
	var hard, cushion []string
	if disposable < installment {
		hard = append(hard, fmt.Sprintf("disposable income %.2f does not cover the %.2f installment", disposable, installment))
	}
	if postDTI >= r.MaxDTI {
		hard = append(hard, fmt.Sprintf("debt-to-income ratio %.1f%% is at or above the %.1f%% limit", postDTI, r.MaxDTI))
	}
	if afterLoan < r.MinResidualAmount {
		hard = append(hard, fmt.Sprintf("residual income %.2f is below the %.2f floor", afterLoan, r.MinResidualAmount))
	}
	if afterLoan < r.MinDisposableAfterLoan {
		cushion = append(cushion, fmt.Sprintf("income after the installment %.2f is below the %.2f minimum", afterLoan, r.MinDisposableAfterLoan))
	}
	if reservePct < r.MinReservePercent {
		cushion = append(cushion, fmt.Sprintf("post-loan reserve %.1f%% of gross income is below the %.1f%% minimum", reservePct, r.MinReservePercent))
	}

	// canAfford holds only when every threshold, hard and cushion, is met.
	canAfford := len(hard) == 0 && len(cushion) == 0
	residualWarning := len(cushion) > 0
	breaches := append(append([]string{}, hard...), cushion...)

	res := Result{
		TotalExpenses:       totalExpenses,
		DisposableIncome:    disposable,
		PreliminaryDTI:      prelimDTI,
		PostInstallmentDTI:  postDTI,
		DisposableAfterLoan: afterLoan,
		CanAfford:           canAfford,
		ResidualWarning:     residualWarning,
	}

	switch {
	case len(hard) > 0:
		res.Outcome = assessment.OutcomeFail
		res.Explanation = "FAIL: " + strings.Join(breaches, "; ")
	case residualWarning:
		res.Outcome = assessment.OutcomeWarning
		res.Explanation = "WARNING: " + strings.Join(cushion, "; ") + "; manual review recommended"
	default:
		res.Outcome = assessment.OutcomePass
		res.Explanation = fmt.Sprintf("PASS: disposable income %.2f comfortably covers the %.2f installment, leaving %.2f (%.1f%% of gross income)",
			disposable, installment, afterLoan, reservePct)
	}
	return res
}
