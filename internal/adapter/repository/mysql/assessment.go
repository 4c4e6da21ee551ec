package mysql

import (
	"context"

	assessmentDomain "microlend-backend/internal/domain/assessment"

	"gorm.io/gorm"
)

type AssessmentRepository struct{ db *gorm.DB }

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

func (r *AssessmentRepository) Create(ctx context.Context, a *assessmentDomain.Assessment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AssessmentRepository) GetByLoanID(ctx context.Context, loanID uint64) (*assessmentDomain.Assessment, error) {
	var out assessmentDomain.Assessment
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}
