package loan

import (
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusPreApproved Status = "pre_approved"
	StatusApproved    Status = "approved"
	StatusActive      Status = "active"
	StatusRejected    Status = "rejected"
	StatusCompleted   Status = "completed"
)

type Method string

const (
	MethodOnline   Method = "online"
	MethodInPerson Method = "in_person"
)

// CompletionEpsilon is the tolerance (in currency units) under which a
// remaining balance counts as fully repaid.
const CompletionEpsilon = 0.01

// Loan rows are append-only: status moves through the lifecycle graph but a
// loan is never deleted. Principal is the post-deposit contractual amount;
// totals are computed once at application time and frozen.
type Loan struct {
	ID                 uint64  `gorm:"primaryKey;column:id" json:"-"`
	LoanID             string  `gorm:"size:32;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`
	BorrowerID         string  `gorm:"size:32;index:idx_loans_borrower_active" json:"borrower_id"`
	Principal          float64 `gorm:"type:decimal(18,2)" json:"principal"`
	DepositAmount      float64 `gorm:"type:decimal(18,2)" json:"deposit_amount"`
	InterestRate       float64 `gorm:"type:decimal(6,4)" json:"interest_rate"`
	TermMonths         int     `gorm:"column:term_months" json:"term_months"`
	InitiationFee      float64 `gorm:"type:decimal(18,2)" json:"initiation_fee"`
	MonthlyServiceFee  float64 `gorm:"type:decimal(18,2)" json:"monthly_service_fee"`
	CreditLifePremium  float64 `gorm:"type:decimal(18,2)" json:"credit_life_premium"`
	TotalInterest      float64 `gorm:"type:decimal(18,2)" json:"total_interest"`
	TotalFees          float64 `gorm:"type:decimal(18,2)" json:"total_fees"`
	TotalRepayable     float64 `gorm:"type:decimal(18,2)" json:"total_repayable"`
	MonthlyInstallment float64 `gorm:"type:decimal(18,2)" json:"monthly_installment"`
	Purpose            string  `gorm:"type:text" json:"purpose"`
	Method             Method  `gorm:"size:16" json:"application_method"`
	Status             Status  `gorm:"size:16;default:'pending';index" json:"status"`

	AppliedAt  time.Time  `json:"applied_at"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	ApprovedBy string     `gorm:"size:64" json:"approved_by,omitempty"`

	DocumentsVerified     bool `json:"documents_verified"`
	AffordabilityAssessed bool `json:"affordability_assessed"`
	CreditCheckCompleted  bool `json:"credit_check_completed"`
	RegulatoryCompliant   bool `json:"regulatory_compliant"`

	StatusUpdatedAt time.Time      `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	DeletedBy       string         `gorm:"size:32" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// Repayable reports whether the loan is in a state that accepts payments.
func (l *Loan) Repayable() bool {
	return l.Status == StatusActive || l.Status == StatusApproved
}
