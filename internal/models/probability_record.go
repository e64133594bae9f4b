package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"time"
)

// ProbabilityRecord is the frozen drop rate of one box item for one approval.
// Rows are insert-only.
type ProbabilityRecord struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	BoxID         uint            `gorm:"index;not null" json:"box_id"`
	BoxItemID     uint            `gorm:"index;not null" json:"box_item_id"`
	Probability   decimal.Decimal `gorm:"type:numeric(7,2);not null" json:"probability"`
	EffectiveFrom time.Time       `gorm:"not null" json:"effective_from"`
	EffectiveTo   time.Time       `gorm:"not null" json:"effective_to"`
	ApprovedBy    uuid.UUID       `gorm:"type:uuid;not null" json:"approved_by"`
	ApprovedAt    time.Time       `gorm:"not null" json:"approved_at"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

// EffectiveAt reports whether now falls in the half-open window [from, to).
func (r *ProbabilityRecord) EffectiveAt(now time.Time) bool {
	return !now.Before(r.EffectiveFrom) && now.Before(r.EffectiveTo)
}
