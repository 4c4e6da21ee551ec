package repayment

import (
	"time"

	"gorm.io/gorm"
)

type Status string

const StatusConfirmed Status = "confirmed"

// Repayment rows are append-only: never mutated, never deleted. The amount
// paid against a loan is always derived by summing them, never stored as a
// running counter.
type Repayment struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	Reference string    `gorm:"size:36;uniqueIndex:ux_repayments_reference" json:"reference"`
	LoanID    uint64    `gorm:"not null;index:idx_repayments_loan" json:"-"`
	Amount    float64   `gorm:"type:decimal(18,2)" json:"amount"`
	PaidAt    time.Time `json:"paid_at"`
	Status    Status    `gorm:"size:16;default:'confirmed'" json:"status"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Repayment) TableName() string { return "repayments" }

// Sum totals the amounts of a repayment set.
func Sum(reps []Repayment) float64 {
	var total float64
	for i := range reps {
		total += reps[i].Amount
	}
	return total
}
