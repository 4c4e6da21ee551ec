package rules

// Defaults is the compiled-in rules bundle, used when the external provider
// has nothing newer. Values mirror the production rule set.
func Defaults() *Snapshot {
	return &Snapshot{
		Version: "defaults",
		AutoApproval: AutoApprovalRules{
			Enabled:   true,
			MaxAmount: 25000,
		},
		Fees: FeeRules{
			InitiationEnabled: true,
			InitiationBase:    165,
			InitiationPercent: 10,
			InitiationCap:     1050,
			MonthlyServiceFee: 60,

			CreditLifeEnabled:     true,
			CreditLifeThreshold:   10000,
			CreditLifeMonthlyRate: 0.3,
		},
		Rates: RateRules{
			MinRate:        16,
			MaxRate:        27.75,
			SmallBaseRate:  24,
			MediumBaseRate: 22,
			LargeBaseRate:  20,
			Tiers: []Tier{
				{Name: "excellent", MaxDTI: 20, MinDisposable: 8000, RateAdjustment: -3},
				{Name: "good", MaxDTI: 30, MinDisposable: 5000, RateAdjustment: -1.5},
				{Name: "fair", MaxDTI: 40, MinDisposable: 3000, RateAdjustment: 0},
				{Name: "stretched", MaxDTI: 50, MinDisposable: 2000, RateAdjustment: 1.5},
				{Name: "poor", MaxDTI: 60, MinDisposable: 1000, RateAdjustment: 3},
			},
		},
		Terms: TermRules{
			SmallMaxPrincipal:  8000,
			MediumMaxPrincipal: 30000,
			Small:              TermBand{MinMonths: 1, MaxMonths: 12},
			Medium:             TermBand{MinMonths: 6, MaxMonths: 36},
			Large:              TermBand{MinMonths: 12, MaxMonths: 72},
		},
		Affordability: AffordabilityRules{
			MaxDTI:                 45,
			MinDisposableAfterLoan: 1500,
			MinResidualAmount:      800,
			MinReservePercent:      10,
			MinGrossIncome:         3500,
			MinNetIncome:           3000,
			DependentCost:          1500,
		},
		Deposit: DepositRules{
			Required:         false,
			Percent:          10,
			ReducesPrincipal: true,
		},
		LifeCover: LifeCoverRules{
			Required:         true,
			ConsentThreshold: 15000,
		},
		Documents: DocumentRules{
			RequireVerification: false,
		},
	}
}

// DefaultCaps is the fallback hard cap when none is configured.
func DefaultCaps() SystemCaps {
	return SystemCaps{MaxLoanAmount: 50000, MaxTermMonths: 60}
}
