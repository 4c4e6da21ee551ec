// Package decision applies the auto-approval eligibility rules to a priced,
// assessed application and classifies its risk for staff review.
package decision

import (
	"microlend-backend/internal/domain/assessment"
	"microlend-backend/internal/rules"
)

// Reason is the closed set of factors that can block auto-approval.
type Reason string

const (
	ReasonAutoApprovalDisabled Reason = "auto_approval_disabled"
	ReasonAmountOverCeiling    Reason = "amount_over_ceiling"
	ReasonAffordabilityFailed  Reason = "affordability_failed"
	ReasonResidualWarning      Reason = "residual_warning"
	ReasonDocumentsNotVerified Reason = "documents_not_verified"
	ReasonLifeCoverNoConsent   Reason = "life_cover_consent_missing"
)

type RiskTier string

const (
	TierLow    RiskTier = "LOW"
	TierMedium RiskTier = "MEDIUM"
	TierHigh   RiskTier = "HIGH"
)

type Input struct {
	// RequestedAmount is the original pre-deposit amount; the auto-approval
	// ceiling applies to what the borrower asked for, not the adjusted
	// principal.
	RequestedAmount   float64
	Affordability     assessment.Outcome
	PostDTI           float64
	DocumentsVerified bool
	LifeCoverConsent  bool
}

type Outcome struct {
	AutoApprove bool
	Reasons     []Reason
	RiskTier    RiskTier
	// AmountOnly: the single blocking factor was the auto-approval ceiling.
	// Low risk, fast-track framing for staff.
	AmountOnly bool
}

// Evaluate returns the auto-approval decision. All criteria must hold for
// eligibility; otherwise the blocking reasons are reported in rule order.
func Evaluate(in Input, snap *rules.Snapshot) Outcome {
	var reasons []Reason

	if !snap.AutoApproval.Enabled {
		reasons = append(reasons, ReasonAutoApprovalDisabled)
	}
	if in.RequestedAmount > snap.AutoApproval.MaxAmount {
		reasons = append(reasons, ReasonAmountOverCeiling)
	}
	switch in.Affordability {
	case assessment.OutcomeFail:
		reasons = append(reasons, ReasonAffordabilityFailed)
	case assessment.OutcomeWarning:
		reasons = append(reasons, ReasonResidualWarning)
	}
	if snap.Documents.RequireVerification && !in.DocumentsVerified {
		reasons = append(reasons, ReasonDocumentsNotVerified)
	}
	if snap.LifeCover.Required && in.RequestedAmount > snap.LifeCover.ConsentThreshold && !in.LifeCoverConsent {
		reasons = append(reasons, ReasonLifeCoverNoConsent)
	}

	out := Outcome{
		AutoApprove: len(reasons) == 0,
		Reasons:     reasons,
		AmountOnly:  len(reasons) == 1 && reasons[0] == ReasonAmountOverCeiling,
		RiskTier:    riskTier(in, reasons),
	}
	return out
}

func riskTier(in Input, reasons []Reason) RiskTier {
	if in.Affordability == assessment.OutcomeFail {
		return TierHigh
	}
	for _, r := range reasons {
		switch r {
		case ReasonResidualWarning, ReasonDocumentsNotVerified, ReasonLifeCoverNoConsent:
			return TierMedium
		}
	}
	switch {
	case in.PostDTI < 30:
		return TierLow
	case in.PostDTI < 45:
		return TierMedium
	default:
		return TierHigh
	}
}
