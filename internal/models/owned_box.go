package models

import (
	"github.com/google/uuid"
	"time"
)

// OwnedBoxInstance is one buyer's purchased copy of a box.
type OwnedBoxInstance struct {
	BaseModel
	BuyerID  uuid.UUID  `gorm:"type:uuid;index;not null" json:"buyer_id"`
	BoxID    uint       `gorm:"index;not null" json:"box_id"`
	Opened   bool       `gorm:"not null;default:false" json:"opened"`
	OpenedAt *time.Time `json:"opened_at,omitempty"`
}

const OwnedItemStatusAvailable = "available"

// OwnedItem is a product granted to a buyer by unboxing.
type OwnedItem struct {
	BaseModel
	BuyerID    uuid.UUID `gorm:"type:uuid;index;not null" json:"buyer_id"`
	ProductID  uuid.UUID `gorm:"type:uuid;index;not null" json:"product_id"`
	OwnedBoxID uint      `gorm:"uniqueIndex;not null" json:"owned_box_id"`
	Quantity   int       `gorm:"not null;default:1" json:"quantity"`
	Status     string    `gorm:"type:varchar(32);not null" json:"status"`
}
