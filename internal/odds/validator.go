// Package odds holds the pure odds arithmetic of a box: validating an authored
// item set, normalizing it into drop rates and drawing from a weighted table.
package odds

import (
	"MysteryBox/internal/apperror"
	"MysteryBox/internal/models"
	"fmt"

	"github.com/google/uuid"
)

const (
	SmallSetSize = 6
	LargeSetSize = 12
	TotalWeight  = 100
	MaxWeight    = 100
)

// Entry is one proposed item of a box item set.
type Entry struct {
	ProductID uuid.UUID
	Quantity  int
	Rarity    models.Rarity
	Weight    int
}

var (
	ErrInvalidItemCount = apperror.New(apperror.KindValidation, fmt.Sprintf("a box must hold exactly %d or %d items", SmallSetSize, LargeSetSize))
	ErrUltraRareCount   = apperror.New(apperror.KindValidation, "a box must hold exactly one ultra rare item")
	ErrUnknownRarity    = apperror.New(apperror.KindValidation, "unknown rarity tier")
	ErrInvalidQuantity  = apperror.New(apperror.KindValidation, "item quantity must be at least 1")
	ErrWeightOutOfRange = apperror.New(apperror.KindValidation, fmt.Sprintf("item weight must be between 0 and %d", MaxWeight))
	ErrWeightSum        = apperror.New(apperror.KindValidation, fmt.Sprintf("item weights must sum to exactly %d", TotalWeight))
	ErrTierOrder        = apperror.New(apperror.KindValidation, "tier weight sums must not increase from common to ultra rare")
)

// ValidateEntries checks a proposed item set and returns the first rule it breaks.
func ValidateEntries(entries []Entry) error {
	if len(entries) != SmallSetSize && len(entries) != LargeSetSize {
		return ErrInvalidItemCount
	}

	ultraRares := 0
	for _, e := range entries {
		if e.Rarity == models.RarityUltraRare {
			ultraRares++
		}
	}
	if ultraRares != 1 {
		return ErrUltraRareCount
	}

	for _, e := range entries {
		if !e.Rarity.Valid() {
			return ErrUnknownRarity
		}
		if e.Quantity < 1 {
			return ErrInvalidQuantity
		}
		if e.Weight < 0 || e.Weight > MaxWeight {
			return ErrWeightOutOfRange
		}
	}

	sum := 0
	for _, e := range entries {
		sum += e.Weight
	}
	if sum != TotalWeight {
		return ErrWeightSum
	}

	tierSums := TierWeightSums(entries)
	for i := 1; i < len(models.Rarities); i++ {
		prev, next := tierSums[models.Rarities[i-1]], tierSums[models.Rarities[i]]
		if prev != 0 && next != 0 && next > prev {
			return ErrTierOrder
		}
	}
	return nil
}

// TierWeightSums groups entries by tier and sums their weights.
func TierWeightSums(entries []Entry) map[models.Rarity]int {
	sums := make(map[models.Rarity]int, len(models.Rarities))
	for _, e := range entries {
		sums[e.Rarity] += e.Weight
	}
	return sums
}
