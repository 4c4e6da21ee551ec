package loan

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"microlend-backend/internal/affordability"
	"microlend-backend/internal/decision"
	domainAssessment "microlend-backend/internal/domain/assessment"
	domainLoan "microlend-backend/internal/domain/loan"
	"microlend-backend/internal/domain/effects"
	"microlend-backend/internal/domain/repayment"
	"microlend-backend/internal/domain/uow"
	"microlend-backend/internal/pricing"
	"microlend-backend/internal/rules"
	"microlend-backend/pkg/id"
)

// SystemApprover marks auto-approved loans in the approval trail.
const SystemApprover = "system:auto-approval"

type Usecase struct {
	repo       domainLoan.Repository
	repayments repayment.Repository
	uow        uow.UnitOfWork
	provider   rules.Provider
	fx         *effects.Dispatcher
	log        *logrus.Logger
	now        func() time.Time
}

func NewUsecase(repo domainLoan.Repository, reps repayment.Repository, tx uow.UnitOfWork, provider rules.Provider, fx *effects.Dispatcher, log *logrus.Logger) *Usecase {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Usecase{repo: repo, repayments: reps, uow: tx, provider: provider, fx: fx, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// Apply runs the full application pipeline: hard-cap and applicant
// validation, deposit handling, term-range enforcement, pricing,
// affordability, persistence, and the auto-approval decision.
func (u *Usecase) Apply(ctx context.Context, borrowerID string, in ApplyInput) (*LoanView, error) {
	snap, err := u.provider.Rules(ctx)
	if err != nil {
		return nil, err
	}
	caps, err := u.provider.Caps(ctx)
	if err != nil {
		return nil, err
	}
	now := u.now()

	// System caps first: fail fast regardless of lending-rule bands.
	if in.Amount <= 0 {
		return nil, domainLoan.NewValidationError("loan amount must be positive")
	}
	if in.Amount > caps.MaxLoanAmount {
		return nil, domainLoan.NewValidationError("requested amount %.2f exceeds the system maximum of %.2f", in.Amount, caps.MaxLoanAmount)
	}
	if in.TermMonths <= 0 {
		return nil, domainLoan.NewValidationError("loan term must be positive")
	}
	if in.TermMonths > caps.MaxTermMonths {
		return nil, domainLoan.NewValidationError("requested term of %d months exceeds the system maximum of %d", in.TermMonths, caps.MaxTermMonths)
	}

	// Applicant thresholds.
	if in.GrossIncome < snap.Affordability.MinGrossIncome {
		return nil, domainLoan.NewValidationError("gross monthly income %.2f is below the required minimum of %.2f", in.GrossIncome, snap.Affordability.MinGrossIncome)
	}
	if in.NetIncome < snap.Affordability.MinNetIncome {
		return nil, domainLoan.NewValidationError("net monthly income %.2f is below the required minimum of %.2f", in.NetIncome, snap.Affordability.MinNetIncome)
	}
	if ageAt(in.DateOfBirth, now) < 18 {
		return nil, domainLoan.NewValidationError("applicant must be at least 18 years old")
	}

	// Deposit: may reduce the principal used for every downstream step.
	// The original requested amount survives only in notification text and
	// the audit trail.
	deposit := 0.0
	principal := in.Amount
	if snap.Deposit.Required {
		deposit = in.Amount * snap.Deposit.Percent / 100
		if snap.Deposit.ReducesPrincipal {
			principal = math.Max(0, in.Amount-deposit)
		}
	}

	// Term range for the adjusted principal, inclusive bounds, cap-clamped.
	minTerm, maxTerm := pricing.TermRange(principal, snap, caps)
	if in.TermMonths < minTerm || in.TermMonths > maxTerm {
		return nil, domainLoan.NewValidationError("a loan of %.2f requires a term between %d and %d months", principal, minTerm, maxTerm)
	}

	affIn := affordability.Input{
		GrossIncome:     in.GrossIncome,
		NetIncome:       in.NetIncome,
		SpouseIncome:    in.SpouseIncome,
		RentOrBond:      in.RentOrBond,
		LivingExpenses:  in.LivingExpenses,
		DebtObligations: in.DebtObligations,
		Insurance:       in.Insurance,
		OtherExpenses:   in.OtherExpenses,
		Dependents:      in.Dependents,
	}
	_, disposable, prelimDTI := affordability.Profile(affIn, snap.Affordability)
	quote := pricing.Price(principal, in.TermMonths, prelimDTI, disposable, snap)
	result := affordability.Assess(affIn, quote.MonthlyInstallment, snap.Affordability)

	outcome := decision.Evaluate(decision.Input{
		RequestedAmount:   in.Amount,
		Affordability:     result.Outcome,
		PostDTI:           result.PostInstallmentDTI,
		DocumentsVerified: in.DocumentsVerified,
		LifeCoverConsent:  in.LifeCoverConsent,
	}, snap)

	l := &domainLoan.Loan{
		LoanID:             id.NewID32(),
		BorrowerID:         borrowerID,
		Principal:          principal,
		DepositAmount:      deposit,
		InterestRate:       quote.InterestRate,
		TermMonths:         in.TermMonths,
		InitiationFee:      quote.InitiationFee,
		MonthlyServiceFee:  quote.MonthlyServiceFee,
		CreditLifePremium:  quote.CreditLifePremium,
		TotalInterest:      quote.TotalInterest,
		TotalFees:          quote.TotalFees,
		TotalRepayable:     quote.TotalRepayable,
		MonthlyInstallment: quote.MonthlyInstallment,
		Purpose:            in.Purpose,
		Method:             in.Method,
		Status:             domainLoan.StatusPending,
		AppliedAt:          now,
		StatusUpdatedAt:    now,

		DocumentsVerified:     in.DocumentsVerified,
		AffordabilityAssessed: true,
	}
	if outcome.AutoApprove {
		end := now.AddDate(0, in.TermMonths, 0)
		l.Status = domainLoan.StatusPreApproved
		l.ApprovedBy = SystemApprover
		l.ApprovedAt = &now
		l.StartDate = &now
		l.EndDate = &end
		l.RegulatoryCompliant = true
	}

	a := &domainAssessment.Assessment{
		AssessmentID:        id.NewID32(),
		GrossMonthlyIncome:  in.GrossIncome,
		NetMonthlyIncome:    in.NetIncome,
		SpouseIncome:        in.SpouseIncome,
		RentOrBond:          in.RentOrBond,
		LivingExpenses:      in.LivingExpenses,
		DebtObligations:     in.DebtObligations,
		InsurancePremiums:   in.Insurance,
		OtherExpenses:       in.OtherExpenses,
		Dependents:          in.Dependents,
		DisposableIncome:    result.DisposableIncome,
		DebtToIncomeRatio:   result.PostInstallmentDTI,
		DisposableAfterLoan: result.DisposableAfterLoan,
		CanAfford:           result.CanAfford,
		ResidualWarning:     result.ResidualWarning,
		Outcome:             result.Outcome,
		Explanation:         result.Explanation,
	}

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		a.LoanID = l.ID
		return r.Assessments.Create(ctx, a)
	})
	if err != nil {
		return nil, err
	}

	u.emitApplicationEffects(ctx, borrowerID, l, in, result, outcome)
	return newView(l, nil), nil
}

func (u *Usecase) emitApplicationEffects(ctx context.Context, borrowerID string, l *domainLoan.Loan, in ApplyInput, result affordability.Result, outcome decision.Outcome) {
	reasons := make([]string, 0, len(outcome.Reasons))
	for _, r := range outcome.Reasons {
		reasons = append(reasons, string(r))
	}
	action := effects.ActionLoanQueued
	if outcome.AutoApprove {
		action = effects.ActionLoanPreApproved
	}
	u.fx.Audit(ctx, effects.AuditEvent{
		ActorID:    borrowerID,
		ActorLabel: "borrower",
		Action:     action,
		EntityType: "loan",
		EntityID:   l.LoanID,
		Details: map[string]any{
			"requested_amount":     in.Amount,
			"principal":            l.Principal,
			"deposit":              l.DepositAmount,
			"term_months":          l.TermMonths,
			"interest_rate":        l.InterestRate,
			"total_repayable":      l.TotalRepayable,
			"monthly_installment":  l.MonthlyInstallment,
			"dti":                  result.PostInstallmentDTI,
			"disposable_income":    result.DisposableIncome,
			"can_afford":           result.CanAfford,
			"residual_warning":     result.ResidualWarning,
			"auto_approved":        outcome.AutoApprove,
			"blocking_reasons":     reasons,
			"risk_tier":            string(outcome.RiskTier),
			"documents_verified":   l.DocumentsVerified,
			"life_cover_consented": in.LifeCoverConsent,
		},
	})

	switch {
	case outcome.AutoApprove:
		msg := fmt.Sprintf("Your loan application for %.2f has been pre-approved at %.2f%% over %d months. Monthly installment: %.2f.",
			in.Amount, l.InterestRate, l.TermMonths, l.MonthlyInstallment)
		if l.DepositAmount > 0 {
			msg += fmt.Sprintf(" A deposit of %.2f applies.", l.DepositAmount)
		}
		u.fx.Notify(ctx, effects.Notification{
			RecipientID: borrowerID, Title: "Loan Pre-Approved", Message: msg,
			Category: effects.CategoryApproval, LoanID: l.LoanID,
		})
		u.fx.NotifyStaff(ctx, "Loan Auto-Approved",
			fmt.Sprintf("Loan %s for %.2f was pre-approved automatically.", l.LoanID, l.Principal),
			effects.CategoryApproval, l.LoanID)
	case outcome.AmountOnly:
		u.fx.Notify(ctx, effects.Notification{
			RecipientID: borrowerID, Title: "Application Received",
			Message: fmt.Sprintf("Your application for %.2f looks good and is queued for a quick final review because of its size. We will be in touch shortly.", in.Amount),
			Category: effects.CategoryApplication, LoanID: l.LoanID,
		})
		u.fx.NotifyStaff(ctx, "Fast-Track Review",
			fmt.Sprintf("Loan %s: low-risk application for %.2f, only above the auto-approval ceiling. Risk tier %s.", l.LoanID, in.Amount, outcome.RiskTier),
			effects.CategoryApplication, l.LoanID)
	default:
		u.fx.Notify(ctx, effects.Notification{
			RecipientID: borrowerID, Title: "Application Received",
			Message: fmt.Sprintf("Your application for %.2f is under review. We will notify you once a decision has been made.", in.Amount),
			Category: effects.CategoryApplication, LoanID: l.LoanID,
		})
		u.fx.NotifyStaff(ctx, "Application Requires Careful Review",
			fmt.Sprintf("Loan %s for %.2f needs manual review (%v). Risk tier %s.", l.LoanID, in.Amount, reasons, outcome.RiskTier),
			effects.CategoryApplication, l.LoanID)
	}
}

// Get returns a single loan, reconciled against its repayment history before
// the read returns.
func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanView, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainLoan.ErrNotFound
		}
		return nil, err
	}
	reps, err := u.repayments.ListByLoanID(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	u.reconcile(ctx, l, reps)
	return newView(l, reps), nil
}

// ListForBorrower returns the borrower's loans, each reconciled.
func (u *Usecase) ListForBorrower(ctx context.Context, borrowerID string) ([]LoanView, error) {
	loans, err := u.repo.ListByBorrowerID(ctx, borrowerID)
	if err != nil {
		return nil, err
	}
	return u.reconciledViews(ctx, loans)
}

// ListAll returns every loan, each reconciled.
func (u *Usecase) ListAll(ctx context.Context) ([]LoanView, error) {
	loans, err := u.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return u.reconciledViews(ctx, loans)
}

func (u *Usecase) reconciledViews(ctx context.Context, loans []domainLoan.Loan) ([]LoanView, error) {
	views := make([]LoanView, 0, len(loans))
	for i := range loans {
		l := &loans[i]
		reps, err := u.repayments.ListByLoanID(ctx, l.ID)
		if err != nil {
			return nil, err
		}
		u.reconcile(ctx, l, reps)
		views = append(views, *newView(l, reps))
	}
	return views, nil
}

// ageAt computes whole years with a day-of-year comparison, so a birthday
// later in the calendar year has not been reached yet.
func ageAt(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	if now.YearDay() < dob.YearDay() {
		years--
	}
	return years
}
