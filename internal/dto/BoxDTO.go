package dto

import (
	"github.com/google/uuid"
	"time"
)

type CreateBoxDTO struct {
	Name        string    `json:"name" validate:"required,max=255"`
	ReleaseDate time.Time `json:"release_date" validate:"required"`
}

type ItemEntryDTO struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"min=1"`
	Rarity    string    `json:"rarity" validate:"required"`
	Weight    int       `json:"weight" validate:"min=0,max=100"`
}

type SubmitItemsDTO struct {
	Items []ItemEntryDTO `json:"items" validate:"required,dive"`
}

type RejectBoxDTO struct {
	Reason string `json:"reason" validate:"required,max=1000"`
}

type BoxItemGetDTO struct {
	ID                uint      `json:"id"`
	ProductID         uuid.UUID `json:"product_id"`
	Rarity            string    `json:"rarity"`
	Weight            int       `json:"weight"`
	RemainingQuantity int       `json:"remaining_quantity"`
	DropRate          string    `json:"drop_rate"`
	IsUltraRare       bool      `json:"is_ultra_rare"`
}

type BoxGetDTO struct {
	ID                   uint            `json:"id"`
	SellerID             uuid.UUID       `json:"seller_id"`
	Name                 string          `json:"name"`
	Status               string          `json:"status"`
	TotalQuantity        int             `json:"total_quantity"`
	HasUltraRare         bool            `json:"has_ultra_rare"`
	UltraRareProbability string          `json:"ultra_rare_probability"`
	ReleaseDate          time.Time       `json:"release_date"`
	RejectReason         string          `json:"reject_reason,omitempty"`
	DisabledAt           *time.Time      `json:"disabled_at,omitempty"`
	Items                []BoxItemGetDTO `json:"items"`
}
