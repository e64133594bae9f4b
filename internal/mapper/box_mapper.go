package mapper

import (
	"MysteryBox/internal/dto"
	"MysteryBox/internal/models"
	"MysteryBox/internal/odds"
	"strings"
)

func ToBoxGetDTO(box *models.Box) *dto.BoxGetDTO {
	items := make([]dto.BoxItemGetDTO, 0, len(box.Items))
	for _, item := range box.ActiveItems() {
		items = append(items, dto.BoxItemGetDTO{
			ID:                item.ID,
			ProductID:         item.ProductID,
			Rarity:            item.Rarity.String(),
			Weight:            item.Weight(),
			RemainingQuantity: item.RemainingQuantity,
			DropRate:          item.DropRate.StringFixed(odds.RatePlaces),
			IsUltraRare:       item.IsUltraRare,
		})
	}
	return &dto.BoxGetDTO{
		ID:                   box.ID,
		SellerID:             box.SellerID,
		Name:                 box.Name,
		Status:               string(box.Status),
		TotalQuantity:        box.TotalQuantity,
		HasUltraRare:         box.HasUltraRare,
		UltraRareProbability: box.UltraRareProbability.StringFixed(odds.RatePlaces),
		ReleaseDate:          box.ReleaseDate,
		RejectReason:         box.RejectReason,
		DisabledAt:           box.DisabledAt,
		Items:                items,
	}
}

func ToBoxGetDTOs(boxes []models.Box) []dto.BoxGetDTO {
	result := make([]dto.BoxGetDTO, 0, len(boxes))
	for i := range boxes {
		result = append(result, *ToBoxGetDTO(&boxes[i]))
	}
	return result
}

// ToOddsEntries converts submitted items. Unknown rarity names map to the
// zero Rarity and are rejected by the odds validator.
func ToOddsEntries(items []dto.ItemEntryDTO) []odds.Entry {
	entries := make([]odds.Entry, len(items))
	for i, item := range items {
		rarity, _ := models.ParseRarity(strings.TrimSpace(item.Rarity))
		entries[i] = odds.Entry{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Rarity:    rarity,
			Weight:    item.Weight,
		}
	}
	return entries
}
