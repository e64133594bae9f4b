package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"time"
)

type BoxStatus string

const (
	BoxStatusDraft           BoxStatus = "draft"
	BoxStatusPendingApproval BoxStatus = "pending_approval"
	BoxStatusApproved        BoxStatus = "approved"
	BoxStatusRejected        BoxStatus = "rejected"
)

type Box struct {
	BaseModel
	SellerID             uuid.UUID       `gorm:"type:uuid;index;not null" json:"seller_id"`
	Name                 string          `gorm:"type:varchar(255);not null" json:"name"`
	TotalQuantity        int             `gorm:"not null;default:0" json:"total_quantity"`
	Status               BoxStatus       `gorm:"type:varchar(32);not null;default:'draft';index" json:"status"`
	HasUltraRare         bool            `gorm:"not null;default:false" json:"has_ultra_rare"`
	UltraRareProbability decimal.Decimal `gorm:"type:numeric(7,2);not null;default:0" json:"ultra_rare_probability"`
	ReleaseDate          time.Time       `gorm:"not null" json:"release_date"`
	RejectReason         string          `gorm:"type:text" json:"reject_reason,omitempty"`
	DisabledAt           *time.Time      `json:"disabled_at,omitempty"`
	Items                []BoxItem       `gorm:"foreignKey:BoxID" json:"items,omitempty"`
}

// Disabled reports whether stock depletion has taken the box off sale.
func (b *Box) Disabled() bool {
	return b.DisabledAt != nil
}

// ActiveItems returns the items that still take part in the box's distribution.
func (b *Box) ActiveItems() []BoxItem {
	active := make([]BoxItem, 0, len(b.Items))
	for _, item := range b.Items {
		if item.IsActive {
			active = append(active, item)
		}
	}
	return active
}
