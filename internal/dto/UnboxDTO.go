package dto

import (
	"encoding/json"
	"github.com/google/uuid"
	"time"
)

type UnboxResultDTO struct {
	OwnedBoxID uint      `json:"owned_box_id"`
	BoxID      uint      `json:"box_id"`
	ProductID  uuid.UUID `json:"product_id"`
	Rarity     string    `json:"rarity"`
	DropRate   string    `json:"drop_rate"`
	UnboxedAt  time.Time `json:"unboxed_at"`
}

type DistributionEntryDTO struct {
	BoxItemID   uint      `json:"box_item_id"`
	ProductID   uuid.UUID `json:"product_id"`
	Rarity      string    `json:"rarity"`
	Probability string    `json:"probability"`
	From        string    `json:"from"`
	To          string    `json:"to"`
}

type DistributionGetDTO struct {
	BoxID       uint                   `json:"box_id"`
	Source      string                 `json:"source,omitempty"`
	SoldOut     bool                   `json:"sold_out"`
	Total       string                 `json:"total"`
	Entries     []DistributionEntryDTO `json:"entries"`
	EvaluatedAt time.Time              `json:"evaluated_at"`
}

type UnboxLogGetDTO struct {
	ID               uint            `json:"id"`
	OwnedBoxID       uint            `json:"owned_box_id"`
	BuyerID          uuid.UUID       `json:"buyer_id"`
	BoxID            uint            `json:"box_id"`
	BoxItemID        uint            `json:"box_item_id"`
	ProductID        uuid.UUID       `json:"product_id"`
	Rarity           string          `json:"rarity"`
	DropRate         string          `json:"drop_rate"`
	RollValue        string          `json:"roll_value"`
	Total            string          `json:"total"`
	Source           string          `json:"source"`
	ProbabilityTable json.RawMessage `json:"probability_table"`
	UnboxedAt        time.Time       `json:"unboxed_at"`
}

type UnboxLogPageDTO struct {
	Logs   []UnboxLogGetDTO `json:"logs"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}
