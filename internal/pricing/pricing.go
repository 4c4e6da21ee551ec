// Package pricing turns a principal and the applicant's risk signals into
// priced terms. Everything here is deterministic and side-effect free so the
// calculator can be exercised standalone.
package pricing

import "microlend-backend/internal/rules"

type Band string

const (
	BandSmall  Band = "small"
	BandMedium Band = "medium"
	BandLarge  Band = "large"
)

// Quote is the full priced outcome for one application.
type Quote struct {
	Band               Band
	InterestRate       float64
	InitiationFee      float64
	MonthlyServiceFee  float64
	CreditLifePremium  float64
	TotalInterest      float64
	TotalFees          float64
	TotalRepayable     float64
	MonthlyInstallment float64
}

// BandFor buckets a post-deposit principal into small/medium/large.
func BandFor(principal float64, t rules.TermRules) Band {
	switch {
	case principal <= t.SmallMaxPrincipal:
		return BandSmall
	case principal <= t.MediumMaxPrincipal:
		return BandMedium
	default:
		return BandLarge
	}
}

// TermRange resolves the allowed term range (inclusive) for the principal.
// The band maximum is clamped to the system-wide hard cap.
func TermRange(principal float64, snap *rules.Snapshot, caps rules.SystemCaps) (min, max int) {
	var band rules.TermBand
	switch BandFor(principal, snap.Terms) {
	case BandSmall:
		band = snap.Terms.Small
	case BandMedium:
		band = snap.Terms.Medium
	default:
		band = snap.Terms.Large
	}
	min, max = band.MinMonths, band.MaxMonths
	if caps.MaxTermMonths > 0 && max > caps.MaxTermMonths {
		max = caps.MaxTermMonths
	}
	return min, max
}

// InitiationFee: flat base up to 1000, then base plus a percentage of the
// excess, capped at the configured maximum.
func InitiationFee(principal float64, f rules.FeeRules) float64 {
	if !f.InitiationEnabled {
		return 0
	}
	if principal <= 1000 {
		return f.InitiationBase
	}
	fee := f.InitiationBase + (principal-1000)*(f.InitiationPercent/100)
	if fee > f.InitiationCap {
		fee = f.InitiationCap
	}
	return fee
}

// CreditLifePremium is the monthly credit-life insurance premium. Zero when
// disabled or the principal is at or below the cover threshold.
func CreditLifePremium(principal float64, f rules.FeeRules) float64 {
	if !f.CreditLifeEnabled || principal <= f.CreditLifeThreshold {
		return 0
	}
	return principal * (f.CreditLifeMonthlyRate / 100)
}

// RiskRate picks the band base rate and applies the first matching
// affordability tier adjustment. Tier DTI bounds are strict (a DTI exactly
// at a tier's MaxDTI does not qualify); disposable income bounds are
// inclusive. When no tier matches, the poorest tier's adjustment applies
// unconditionally. The result is clamped to [MinRate, MaxRate].
func RiskRate(band Band, dti, disposableIncome float64, r rules.RateRules) float64 {
	var base float64
	switch band {
	case BandSmall:
		base = r.SmallBaseRate
	case BandMedium:
		base = r.MediumBaseRate
	default:
		base = r.LargeBaseRate
	}

	adjustment := 0.0
	if n := len(r.Tiers); n > 0 {
		adjustment = r.Tiers[n-1].RateAdjustment
		for _, tier := range r.Tiers {
			if dti < tier.MaxDTI && disposableIncome >= tier.MinDisposable {
				adjustment = tier.RateAdjustment
				break
			}
		}
	}

	rate := base + adjustment
	if rate < r.MinRate {
		rate = r.MinRate
	}
	if rate > r.MaxRate {
		rate = r.MaxRate
	}
	return rate
}

// Price computes the full quote for a post-deposit principal. dti is the
// preliminary (pre-installment) debt-to-income ratio.
func Price(principal float64, termMonths int, dti, disposableIncome float64, snap *rules.Snapshot) Quote {
	band := BandFor(principal, snap.Terms)
	rate := RiskRate(band, dti, disposableIncome, snap.Rates)
	initiation := InitiationFee(principal, snap.Fees)
	creditLife := CreditLifePremium(principal, snap.Fees)
	service := snap.Fees.MonthlyServiceFee

	term := float64(termMonths)
	totalInterest := principal * (rate / 100) * (term / 12)
	totalFees := initiation + service*term + creditLife*term
	totalRepayable := principal + totalInterest + totalFees

	return Quote{
		Band:               band,
		InterestRate:       rate,
		InitiationFee:      initiation,
		MonthlyServiceFee:  service,
		CreditLifePremium:  creditLife,
		TotalInterest:      totalInterest,
		TotalFees:          totalFees,
		TotalRepayable:     totalRepayable,
		MonthlyInstallment: totalRepayable / term,
	}
}
