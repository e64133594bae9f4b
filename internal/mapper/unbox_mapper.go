package mapper

import (
	"MysteryBox/internal/dto"
	"MysteryBox/internal/models"
	"MysteryBox/internal/odds"
	"MysteryBox/internal/services"
	"encoding/json"
)

func ToUnboxResultDTO(result *services.UnboxResult) *dto.UnboxResultDTO {
	return &dto.UnboxResultDTO{
		OwnedBoxID: result.OwnedBoxID,
		BoxID:      result.BoxID,
		ProductID:  result.ProductID,
		Rarity:     result.Rarity.String(),
		DropRate:   result.DropRate.StringFixed(odds.RatePlaces),
		UnboxedAt:  result.UnboxedAt,
	}
}

func ToDistributionGetDTO(distribution *services.Distribution) *dto.DistributionGetDTO {
	entries := make([]dto.DistributionEntryDTO, 0, len(distribution.Table))
	for _, r := range distribution.Table {
		entries = append(entries, dto.DistributionEntryDTO{
			BoxItemID:   r.ItemID,
			ProductID:   r.ProductID,
			Rarity:      r.Rarity.String(),
			Probability: r.Probability.StringFixed(odds.RatePlaces),
			From:        r.From.StringFixed(odds.RatePlaces),
			To:          r.To.StringFixed(odds.RatePlaces),
		})
	}
	return &dto.DistributionGetDTO{
		BoxID:       distribution.BoxID,
		Source:      distribution.Source,
		SoldOut:     distribution.SoldOut,
		Total:       distribution.Total.StringFixed(odds.RatePlaces),
		Entries:     entries,
		EvaluatedAt: distribution.EvaluatedAt,
	}
}

func ToUnboxLogGetDTO(record *models.UnboxAuditRecord) dto.UnboxLogGetDTO {
	return dto.UnboxLogGetDTO{
		ID:               record.ID,
		OwnedBoxID:       record.OwnedBoxID,
		BuyerID:          record.BuyerID,
		BoxID:            record.BoxID,
		BoxItemID:        record.BoxItemID,
		ProductID:        record.ProductID,
		Rarity:           record.Rarity.String(),
		DropRate:         record.DropRate.StringFixed(odds.RatePlaces),
		RollValue:        record.RollValue.StringFixed(odds.RollPlaces),
		Total:            record.Total.StringFixed(odds.RatePlaces),
		Source:           record.Source,
		ProbabilityTable: json.RawMessage(record.ProbabilityTable),
		UnboxedAt:        record.UnboxedAt,
	}
}

func ToUnboxLogPageDTO(page *services.AuditPage) *dto.UnboxLogPageDTO {
	logs := make([]dto.UnboxLogGetDTO, 0, len(page.Records))
	for i := range page.Records {
		logs = append(logs, ToUnboxLogGetDTO(&page.Records[i]))
	}
	return &dto.UnboxLogPageDTO{Logs: logs, Limit: page.Limit, Offset: page.Offset}
}
