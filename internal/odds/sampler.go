package odds

import (
	"MysteryBox/internal/apperror"
	"MysteryBox/internal/models"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNoSampleableDistribution = apperror.New(apperror.KindInternal, "no sampleable distribution")

// Candidate is one drawable box item with its (not necessarily normalized) probability.
type Candidate struct {
	ItemID      uint
	ProductID   uuid.UUID
	Rarity      models.Rarity
	Probability decimal.Decimal
}

// Range is a candidate together with its half-open slice [From, To) of the roll space.
type Range struct {
	Candidate
	From decimal.Decimal
	To   decimal.Decimal
}

func (r Range) contains(roll decimal.Decimal) bool {
	return roll.GreaterThanOrEqual(r.From) && roll.LessThan(r.To)
}

// Draw is the outcome of one sample together with everything needed to replay it.
type Draw struct {
	Selected Range
	Roll     decimal.Decimal
	Total    decimal.Decimal
	Table    []Range
}

// BuildTable orders candidates by probability descending then item id ascending
// and lays out their cumulative ranges.
func BuildTable(candidates []Candidate) ([]Range, decimal.Decimal, error) {
	total := decimal.Zero
	for _, c := range candidates {
		if c.Probability.IsNegative() {
			return nil, decimal.Zero, ErrNoSampleableDistribution
		}
		total = total.Add(c.Probability)
	}
	if !total.IsPositive() {
		return nil, decimal.Zero, ErrNoSampleableDistribution
	}

	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		if cmp := sorted[i].Probability.Cmp(sorted[j].Probability); cmp != 0 {
			return cmp > 0
		}
		return sorted[i].ItemID < sorted[j].ItemID
	})

	table := make([]Range, len(sorted))
	running := decimal.Zero
	for i, c := range sorted {
		next := running.Add(c.Probability)
		table[i] = Range{Candidate: c, From: running, To: next}
		running = next
	}
	return table, total, nil
}

// Sample draws exactly one candidate using a single uniform roll from src.
func Sample(candidates []Candidate, src RandomSource) (*Draw, error) {
	table, total, err := BuildTable(candidates)
	if err != nil {
		return nil, err
	}
	roll := RollIn(src, total)
	selected, ok := Select(table, roll)
	if !ok {
		return nil, ErrNoSampleableDistribution
	}
	return &Draw{Selected: selected, Roll: roll, Total: total, Table: table}, nil
}

// Select returns the first range of table containing roll.
func Select(table []Range, roll decimal.Decimal) (Range, bool) {
	for _, r := range table {
		if r.contains(roll) {
			return r, true
		}
	}
	return Range{}, false
}
