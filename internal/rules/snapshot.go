// Package rules defines the lending-parameter bundle the engine prices and
// decides against. A Snapshot is immutable for the duration of one operation
// and is always injected explicitly; nothing in the engine reads ambient
// process-wide configuration.
package rules

// SystemCaps is the separately-sourced hard ceiling on any loan. It always
// takes precedence over rule-derived bands, and is re-checked at approval
// time because it may have tightened since application.
type SystemCaps struct {
	MaxLoanAmount float64 `json:"max_loan_amount"`
	MaxTermMonths int     `json:"max_term_months"`
}

type TermBand struct {
	MinMonths int `json:"min_months"`
	MaxMonths int `json:"max_months"`
}

// Tier is one affordability tier for risk-based pricing. Tiers are evaluated
// in order (excellent first); a tier matches when DTI is strictly below
// MaxDTI and disposable income is at least MinDisposable.
type Tier struct {
	Name           string  `json:"name"`
	MaxDTI         float64 `json:"max_dti"`
	MinDisposable  float64 `json:"min_disposable"`
	RateAdjustment float64 `json:"rate_adjustment"`
}

type AutoApprovalRules struct {
	Enabled   bool    `json:"enabled"`
	MaxAmount float64 `json:"max_amount"`
}

type FeeRules struct {
	InitiationEnabled bool    `json:"initiation_enabled"`
	InitiationBase    float64 `json:"initiation_base"`
	InitiationPercent float64 `json:"initiation_percent"`
	InitiationCap     float64 `json:"initiation_cap"`

	MonthlyServiceFee float64 `json:"monthly_service_fee"`

	CreditLifeEnabled     bool    `json:"credit_life_enabled"`
	CreditLifeThreshold   float64 `json:"credit_life_threshold"`
	CreditLifeMonthlyRate float64 `json:"credit_life_monthly_rate"`
}

type RateRules struct {
	MinRate float64 `json:"min_rate"`
	MaxRate float64 `json:"max_rate"`

	SmallBaseRate  float64 `json:"small_base_rate"`
	MediumBaseRate float64 `json:"medium_base_rate"`
	LargeBaseRate  float64 `json:"large_base_rate"`

	// Ordered excellent → poor; the last tier's adjustment applies
	// unconditionally when none match.
	Tiers []Tier `json:"tiers"`
}

type TermRules struct {
	SmallMaxPrincipal  float64 `json:"small_max_principal"`
	MediumMaxPrincipal float64 `json:"medium_max_principal"`

	Small  TermBand `json:"small"`
	Medium TermBand `json:"medium"`
	Large  TermBand `json:"large"`
}

type AffordabilityRules struct {
	MaxDTI                 float64 `json:"max_dti"`
	MinDisposableAfterLoan float64 `json:"min_disposable_after_loan"`
	MinResidualAmount      float64 `json:"min_residual_amount"`
	MinReservePercent      float64 `json:"min_reserve_percent"`
	MinGrossIncome         float64 `json:"min_gross_income"`
	MinNetIncome           float64 `json:"min_net_income"`
	DependentCost          float64 `json:"dependent_cost"`
}

type DepositRules struct {
	Required         bool    `json:"required"`
	Percent          float64 `json:"percent"`
	ReducesPrincipal bool    `json:"reduces_principal"`
}

type LifeCoverRules struct {
	Required bool `json:"required"`
	// ConsentThreshold: requested amounts above it mandate life-cover
	// consent before auto-approval.
	ConsentThreshold float64 `json:"consent_threshold"`
}

type DocumentRules struct {
	RequireVerification bool `json:"require_verification"`
}

// Snapshot is the full rules bundle for one engine call.
type Snapshot struct {
	Version       string             `json:"version"`
	AutoApproval  AutoApprovalRules  `json:"auto_approval"`
	Fees          FeeRules           `json:"fees"`
	Rates         RateRules          `json:"rates"`
	Terms         TermRules          `json:"terms"`
	Affordability AffordabilityRules `json:"affordability"`
	Deposit       DepositRules       `json:"deposit"`
	LifeCover     LifeCoverRules     `json:"life_cover"`
	Documents     DocumentRules      `json:"documents"`
}
