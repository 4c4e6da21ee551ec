package assessment

import (
	"time"

	"gorm.io/gorm"
)

type Outcome string

const (
	OutcomePass    Outcome = "PASS"
	OutcomeWarning Outcome = "WARNING"
	OutcomeFail    Outcome = "FAIL"
)

// Assessment is the affordability snapshot taken at application time.
// One per loan, immutable afterwards: later repayments never touch it.
type Assessment struct {
	ID           uint64 `gorm:"primaryKey;column:id" json:"-"`
	AssessmentID string `gorm:"size:32;uniqueIndex:ux_assessments_assessment_id" json:"assessment_id"`
	LoanID       uint64 `gorm:"not null;uniqueIndex:ux_assessments_loan" json:"-"`

	GrossMonthlyIncome float64 `gorm:"type:decimal(18,2)" json:"gross_monthly_income"`
	NetMonthlyIncome   float64 `gorm:"type:decimal(18,2)" json:"net_monthly_income"`
	SpouseIncome       float64 `gorm:"type:decimal(18,2)" json:"spouse_income"`
	RentOrBond         float64 `gorm:"type:decimal(18,2)" json:"rent_or_bond"`
	LivingExpenses     float64 `gorm:"type:decimal(18,2)" json:"living_expenses"`
	DebtObligations    float64 `gorm:"type:decimal(18,2)" json:"debt_obligations"`
	InsurancePremiums  float64 `gorm:"type:decimal(18,2)" json:"insurance_premiums"`
	OtherExpenses      float64 `gorm:"type:decimal(18,2)" json:"other_expenses"`
	Dependents         int     `json:"dependents"`

	DisposableIncome    float64 `gorm:"type:decimal(18,2)" json:"disposable_income"`
	DebtToIncomeRatio   float64 `gorm:"type:decimal(6,2)" json:"debt_to_income_ratio"`
	DisposableAfterLoan float64 `gorm:"type:decimal(18,2)" json:"disposable_after_loan"`
	CanAfford           bool    `json:"can_afford"`
	ResidualWarning     bool    `json:"residual_warning"`
	Outcome             Outcome `gorm:"size:8" json:"outcome"`
	Explanation         string  `gorm:"type:text" json:"explanation"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Assessment) TableName() string { return "affordability_assessments" }
