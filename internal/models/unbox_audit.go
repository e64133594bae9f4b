package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"time"
)

const (
	ProbabilitySourceApproved = "approved"
	ProbabilitySourceLive     = "live"
)

// UnboxAuditRecord is written once per successful unboxing and never updated.
type UnboxAuditRecord struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	OwnedBoxID       uint            `gorm:"uniqueIndex;not null" json:"owned_box_id"`
	BuyerID          uuid.UUID       `gorm:"type:uuid;index;not null" json:"buyer_id"`
	BoxID            uint            `gorm:"index;not null" json:"box_id"`
	BoxItemID        uint            `gorm:"not null" json:"box_item_id"`
	ProductID        uuid.UUID       `gorm:"type:uuid;index;not null" json:"product_id"`
	Rarity           Rarity          `gorm:"type:varchar(16);not null" json:"rarity"`
	DropRate         decimal.Decimal `gorm:"type:numeric(7,2);not null" json:"drop_rate"`
	RollValue        decimal.Decimal `gorm:"type:numeric(20,10);not null" json:"roll_value"`
	Total            decimal.Decimal `gorm:"type:numeric(20,10);not null" json:"total"`
	Source           string          `gorm:"type:varchar(16);not null" json:"source"`
	ProbabilityTable datatypes.JSON  `gorm:"not null" json:"probability_table"`
	UnboxedAt        time.Time       `gorm:"index;not null" json:"unboxed_at"`
}

// ProbabilityTableRow is one entry of the serialized table stored on an audit record.
type ProbabilityTableRow struct {
	BoxItemID uint            `json:"box_item_id"`
	ProductID uuid.UUID       `json:"product_id"`
	Rarity    Rarity          `json:"rarity"`
	Rate      decimal.Decimal `json:"rate"`
	From      decimal.Decimal `json:"from"`
	To        decimal.Decimal `json:"to"`
}
