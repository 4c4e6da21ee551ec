// Package effects provides the durable implementations of the audit sink and
// notification publisher. Delivery is best-effort by contract: callers go
// through the domain dispatcher, which drops failures.
package effects

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"microlend-backend/internal/domain/effects"
)

type AuditRecord struct {
	ID         uint64    `gorm:"primaryKey;column:id"`
	ActorID    string    `gorm:"size:64;index"`
	ActorLabel string    `gorm:"size:32"`
	Action     string    `gorm:"size:48;index"`
	EntityType string    `gorm:"size:32"`
	EntityID   string    `gorm:"size:64;index"`
	Details    string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (AuditRecord) TableName() string { return "audit_events" }

type NotificationRecord struct {
	ID          uint64    `gorm:"primaryKey;column:id"`
	RecipientID string    `gorm:"size:64;index"`
	Title       string    `gorm:"size:255"`
	Message     string    `gorm:"type:text"`
	Category    string    `gorm:"size:32"`
	LoanID      string    `gorm:"size:32;index"`
	ReadAt      *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (NotificationRecord) TableName() string { return "notifications" }

type GormAuditSink struct{ db *gorm.DB }

func NewGormAuditSink(db *gorm.DB) *GormAuditSink { return &GormAuditSink{db: db} }

func (s *GormAuditSink) Record(ctx context.Context, ev effects.AuditEvent) error {
	details, err := json.Marshal(ev.Details)
	if err != nil {
		return err
	}
	rec := AuditRecord{
		ActorID:    ev.ActorID,
		ActorLabel: ev.ActorLabel,
		Action:     string(ev.Action),
		EntityType: ev.EntityType,
		EntityID:   ev.EntityID,
		Details:    string(details),
	}
	return s.db.WithContext(ctx).Create(&rec).Error
}

type GormNotificationPublisher struct{ db *gorm.DB }

func NewGormNotificationPublisher(db *gorm.DB) *GormNotificationPublisher {
	return &GormNotificationPublisher{db: db}
}

func (p *GormNotificationPublisher) Publish(ctx context.Context, n effects.Notification) error {
	rec := NotificationRecord{
		RecipientID: n.RecipientID,
		Title:       n.Title,
		Message:     n.Message,
		Category:    string(n.Category),
		LoanID:      n.LoanID,
	}
	return p.db.WithContext(ctx).Create(&rec).Error
}

// StaticStaffDirectory serves the staff recipient list from configuration.
type StaticStaffDirectory struct{ ids []string }

func NewStaticStaffDirectory(ids []string) *StaticStaffDirectory {
	return &StaticStaffDirectory{ids: ids}
}

func (d *StaticStaffDirectory) StaffIDs(ctx context.Context) ([]string, error) {
	out := make([]string, len(d.ids))
	copy(out, d.ids)
	return out, nil
}
