package models

import (
	"github.com/google/uuid"
	"time"
)

type NotificationType string

const (
	NotificationBoxApproved   NotificationType = "box_approved"
	NotificationBoxRejected   NotificationType = "box_rejected"
	NotificationStockDepleted NotificationType = "stock_depleted"
)

type Notification struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	RecipientID uuid.UUID        `gorm:"type:uuid;index;not null" json:"recipient_id"`
	Type        NotificationType `gorm:"type:varchar(32);not null" json:"type"`
	Title       string           `gorm:"type:text;not null" json:"title"`
	Message     string           `gorm:"type:text;not null" json:"message"`
	ReadAt      *time.Time       `json:"read_at,omitempty"`
	CreatedAt   time.Time        `gorm:"autoCreateTime" json:"created_at"`
}

// CatalogStock mirrors the catalog's available stock for a product.
type CatalogStock struct {
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey" json:"product_id"`
	Available int       `gorm:"not null;default:0;check:available >= 0" json:"available"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
