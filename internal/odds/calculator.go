package odds

import (
	"MysteryBox/internal/apperror"

	"github.com/shopspring/decimal"
)

const RatePlaces = 2

var (
	Hundred  = decimal.NewFromInt(100)
	minDrift = decimal.New(1, -RatePlaces)
)

var ErrZeroTotal = apperror.New(apperror.KindInternal, "no weighted quantity to normalize")

// Weighted is the input of the drop rate calculation.
type Weighted struct {
	Quantity int
	Weight   int
}

// CalculateDropRates turns quantity x weight into percentages rounded to two
// places that sum to exactly 100. Rounding drift is pushed onto a single entry.
func CalculateDropRates(entries []Weighted) ([]decimal.Decimal, error) {
	var total int64
	for _, e := range entries {
		total += int64(e.Quantity) * int64(e.Weight)
	}
	if total <= 0 {
		return nil, ErrZeroTotal
	}

	divisor := decimal.NewFromInt(total)
	rates := make([]decimal.Decimal, len(entries))
	sum := decimal.Zero
	for i, e := range entries {
		share := decimal.NewFromInt(int64(e.Quantity) * int64(e.Weight)).Mul(Hundred)
		rates[i] = share.DivRound(divisor, RatePlaces)
		sum = sum.Add(rates[i])
	}

	diff := Hundred.Sub(sum)
	if diff.Abs().LessThan(minDrift) {
		return rates, nil
	}

	target := -1
	for i, rate := range rates {
		if diff.IsPositive() {
			if target < 0 || rate.GreaterThan(rates[target]) {
				target = i
			}
			continue
		}
		// A negative correction never drives a rate below zero.
		if rate.LessThan(diff.Abs()) {
			continue
		}
		if target < 0 || rate.LessThan(rates[target]) {
			target = i
		}
	}
	if target < 0 {
		return nil, apperror.New(apperror.KindInternal, "no entry can absorb rounding drift")
	}
	rates[target] = rates[target].Add(diff)
	return rates, nil
}

// SumRates adds up a set of drop rates.
func SumRates(rates []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range rates {
		sum = sum.Add(r)
	}
	return sum
}
