package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microlend-backend/internal/rules"
)

func TestBandFor(t *testing.T) {
	terms := rules.Defaults().Terms

	cases := []struct {
		name      string
		principal float64
		want      Band
	}{
		{"tiny", 500, BandSmall},
		{"small upper bound inclusive", 8000, BandSmall},
		{"just above small", 8000.01, BandMedium},
		{"medium upper bound inclusive", 30000, BandMedium},
		{"just above medium", 30000.01, BandLarge},
		{"large", 45000, BandLarge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, BandFor(tc.principal, terms))
		})
	}
}

func TestTermRange(t *testing.T) {
	snap := rules.Defaults()
	caps := rules.DefaultCaps()

	min, max := TermRange(5000, snap, caps)
	assert.Equal(t, 1, min)
	assert.Equal(t, 12, max)

	min, max = TermRange(20000, snap, caps)
	assert.Equal(t, 6, min)
	assert.Equal(t, 36, max)

	// Large band runs to 72 months but the system cap clamps it to 60.
	min, max = TermRange(40000, snap, caps)
	assert.Equal(t, 12, min)
	assert.Equal(t, 60, max)

	// No cap configured: the band maximum stands.
	min, max = TermRange(40000, snap, rules.SystemCaps{})
	assert.Equal(t, 12, min)
	assert.Equal(t, 72, max)
}

func TestInitiationFee(t *testing.T) {
	fees := rules.Defaults().Fees

	assert.InDelta(t, 165, InitiationFee(800, fees), 1e-9)
	assert.InDelta(t, 165, InitiationFee(1000, fees), 1e-9)
	assert.InDelta(t, 565, InitiationFee(5000, fees), 1e-9)
	// 165 + 19000*10% = 2065, capped.
	assert.InDelta(t, 1050, InitiationFee(20000, fees), 1e-9)

	fees.InitiationEnabled = false
	assert.Zero(t, InitiationFee(5000, fees))
}

func TestCreditLifePremium(t *testing.T) {
	fees := rules.Defaults().Fees

	assert.Zero(t, CreditLifePremium(5000, fees))
	// Threshold itself is still exempt.
	assert.Zero(t, CreditLifePremium(10000, fees))
	assert.InDelta(t, 60, CreditLifePremium(20000, fees), 1e-9)

	fees.CreditLifeEnabled = false
	assert.Zero(t, CreditLifePremium(20000, fees))
}

func TestRiskRate_TierSelection(t *testing.T) {
	rr := rules.Defaults().Rates

	cases := []struct {
		name       string
		band       Band
		dti        float64
		disposable float64
		want       float64
	}{
		{"excellent profile on small band", BandSmall, 10, 9000, 21},
		// DTI bounds are strict: exactly 20 skips the excellent tier and
		// lands on good.
		{"dti at excellent boundary", BandSmall, 20, 9000, 22.5},
		{"fair profile", BandSmall, 35, 3000, 24},
		{"disposable floor is inclusive", BandMedium, 25, 5000, 20.5},
		{"no tier matches, poorest applies", BandSmall, 70, 500, 27},
		{"large band excellent", BandLarge, 4, 29000, 17},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, RiskRate(tc.band, tc.dti, tc.disposable, rr), 1e-9)
		})
	}
}

func TestRiskRate_Clamping(t *testing.T) {
	rr := rules.Defaults().Rates

	rr.SmallBaseRate = 26
	// 26 + 3 (poor) = 29, clamped down to the ceiling.
	assert.InDelta(t, rr.MaxRate, RiskRate(BandSmall, 70, 500, rr), 1e-9)

	rr.LargeBaseRate = 18
	// 18 - 3 (excellent) = 15, clamped up to the floor.
	assert.InDelta(t, rr.MinRate, RiskRate(BandLarge, 5, 20000, rr), 1e-9)
}

func TestRiskRate_NoTiersConfigured(t *testing.T) {
	rr := rules.Defaults().Rates
	rr.Tiers = nil
	assert.InDelta(t, rr.SmallBaseRate, RiskRate(BandSmall, 70, 0, rr), 1e-9)
}

func TestPrice_SmallLoan(t *testing.T) {
	snap := rules.Defaults()

	// 5000 over 6 months, fair tier (dti 5, disposable 4000).
	q := Price(5000, 6, 5, 4000, snap)

	require.Equal(t, BandSmall, q.Band)
	assert.InDelta(t, 24, q.InterestRate, 1e-9)
	assert.InDelta(t, 565, q.InitiationFee, 1e-9)
	assert.InDelta(t, 60, q.MonthlyServiceFee, 1e-9)
	assert.Zero(t, q.CreditLifePremium)
	assert.InDelta(t, 600, q.TotalInterest, 1e-6)
	assert.InDelta(t, 925, q.TotalFees, 1e-6)
	assert.InDelta(t, 6525, q.TotalRepayable, 1e-6)
	assert.InDelta(t, 1087.50, q.MonthlyInstallment, 1e-6)
}

func TestPrice_LargeLoanCarriesCreditLife(t *testing.T) {
	snap := rules.Defaults()

	// 40000 over 24 months, excellent tier (dti 4, disposable 29000).
	q := Price(40000, 24, 4, 29000, snap)

	require.Equal(t, BandLarge, q.Band)
	assert.InDelta(t, 17, q.InterestRate, 1e-9)
	assert.InDelta(t, 1050, q.InitiationFee, 1e-9)
	assert.InDelta(t, 120, q.CreditLifePremium, 1e-9)
	assert.InDelta(t, 13600, q.TotalInterest, 1e-6)
	// 1050 initiation + 60*24 service + 120*24 credit life.
	assert.InDelta(t, 5370, q.TotalFees, 1e-6)
	assert.InDelta(t, 58970, q.TotalRepayable, 1e-6)
	assert.InDelta(t, 58970.0/24, q.MonthlyInstallment, 1e-6)
}
