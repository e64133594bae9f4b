package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"time"
)

type BoxItem struct {
	BaseModel
	BoxID              uint                `gorm:"index;not null" json:"box_id"`
	ProductID          uuid.UUID           `gorm:"type:uuid;index;not null" json:"product_id"`
	RemainingQuantity  int                 `gorm:"not null;default:0;check:remaining_quantity >= 0" json:"remaining_quantity"`
	DropRate           decimal.Decimal     `gorm:"type:numeric(7,2);not null;default:0" json:"drop_rate"`
	Rarity             Rarity              `gorm:"type:varchar(16);not null" json:"rarity"`
	IsUltraRare        bool                `gorm:"not null;default:false" json:"is_ultra_rare"`
	IsActive           bool                `gorm:"not null;default:true" json:"is_active"`
	Version            int                 `gorm:"not null;default:1" json:"-"`
	RarityWeight       *RarityWeight       `gorm:"foreignKey:BoxItemID" json:"rarity_weight,omitempty"`
	ProbabilityRecords []ProbabilityRecord `gorm:"foreignKey:BoxItemID" json:"-"`
}

// RarityWeight is the authoring-time odds input of a single box item.
type RarityWeight struct {
	BaseModel
	BoxItemID uint   `gorm:"uniqueIndex;not null" json:"box_item_id"`
	Rarity    Rarity `gorm:"type:varchar(16);not null" json:"rarity"`
	Weight    int    `gorm:"not null;check:weight >= 0 AND weight <= 100" json:"weight"`
}

// ActiveRecord returns the probability record effective at now, preferring the
// most recently started window when several overlap.
func (i *BoxItem) ActiveRecord(now time.Time) *ProbabilityRecord {
	var active *ProbabilityRecord
	for idx := range i.ProbabilityRecords {
		record := &i.ProbabilityRecords[idx]
		if !record.EffectiveAt(now) {
			continue
		}
		if active == nil || record.EffectiveFrom.After(active.EffectiveFrom) {
			active = record
		}
	}
	return active
}

// Weight returns the configured raw weight, zero when none is attached.
func (i *BoxItem) Weight() int {
	if i.RarityWeight == nil {
		return 0
	}
	return i.RarityWeight.Weight
}
