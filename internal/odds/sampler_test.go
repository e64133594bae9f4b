package odds

import (
	"MysteryBox/internal/models"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource replays a fixed sequence of draws.
type fixedSource struct {
	values []float64
	next   int
}

func (f *fixedSource) Float64() float64 {
	v := f.values[f.next%len(f.values)]
	f.next++
	return v
}

func candidate(id uint, probability string) Candidate {
	return Candidate{
		ItemID:      id,
		ProductID:   uuid.New(),
		Rarity:      models.RarityCommon,
		Probability: decimal.RequireFromString(probability),
	}
}

func abcTable() []Candidate {
	return []Candidate{candidate(3, "10"), candidate(1, "60"), candidate(2, "30")}
}

func TestSample_RollSelectsContainingRange(t *testing.T) {
	draw, err := Sample(abcTable(), &fixedSource{values: []float64{0.65}})
	require.NoError(t, err)

	assert.Equal(t, uint(2), draw.Selected.ItemID)
	assert.True(t, draw.Roll.Equal(decimal.NewFromInt(65)))
	assert.True(t, draw.Selected.From.Equal(decimal.NewFromInt(60)))
	assert.True(t, draw.Selected.To.Equal(decimal.NewFromInt(90)))
	assert.True(t, draw.Total.Equal(decimal.NewFromInt(100)))
}

func TestSample_RollBoundaries(t *testing.T) {
	first, err := Sample(abcTable(), &fixedSource{values: []float64{0}})
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.Selected.ItemID)

	last, err := Sample(abcTable(), &fixedSource{values: []float64{0.9999999999}})
	require.NoError(t, err)
	assert.Equal(t, uint(3), last.Selected.ItemID)

	// a misbehaving source at exactly 1 still lands in the last range
	clamped, err := Sample(abcTable(), &fixedSource{values: []float64{1}})
	require.NoError(t, err)
	assert.Equal(t, uint(3), clamped.Selected.ItemID)
	assert.True(t, clamped.Roll.LessThan(clamped.Total))

	// the upper bound of a range belongs to the next one
	edge, err := Sample(abcTable(), &fixedSource{values: []float64{0.6}})
	require.NoError(t, err)
	assert.Equal(t, uint(2), edge.Selected.ItemID)
}

func TestBuildTable_OrdersByProbabilityThenItemID(t *testing.T) {
	table, total, err := BuildTable([]Candidate{
		candidate(9, "25"), candidate(4, "25"), candidate(7, "50"),
	})
	require.NoError(t, err)
	require.Len(t, table, 3)

	assert.Equal(t, []uint{7, 4, 9}, []uint{table[0].ItemID, table[1].ItemID, table[2].ItemID})
	assert.True(t, table[1].From.Equal(decimal.NewFromInt(50)))
	assert.True(t, table[2].To.Equal(total))
}

func TestSample_IsDeterministicForFixedRoll(t *testing.T) {
	shuffled := []Candidate{abcTable()[2], abcTable()[0], abcTable()[1]}
	for i := 0; i < 20; i++ {
		a, err := Sample(abcTable(), &fixedSource{values: []float64{0.37}})
		require.NoError(t, err)
		b, err := Sample(shuffled, &fixedSource{values: []float64{0.37}})
		require.NoError(t, err)
		assert.Equal(t, a.Selected.ItemID, b.Selected.ItemID)
	}
}

func TestSample_UnnormalizedProbabilities(t *testing.T) {
	// 3 + 1 = 4, roll 0.8 * 4 = 3.2 falls in the second range [3, 4)
	draw, err := Sample([]Candidate{candidate(1, "3"), candidate(2, "1")}, &fixedSource{values: []float64{0.8}})
	require.NoError(t, err)
	assert.Equal(t, uint(2), draw.Selected.ItemID)
}

func TestSample_SkipsZeroProbabilityEntries(t *testing.T) {
	draw, err := Sample([]Candidate{candidate(1, "0"), candidate(2, "5")}, &fixedSource{values: []float64{0}})
	require.NoError(t, err)
	assert.Equal(t, uint(2), draw.Selected.ItemID)
}

func TestSample_NoSampleableDistribution(t *testing.T) {
	_, err := Sample(nil, NewRandomSource())
	assert.ErrorIs(t, err, ErrNoSampleableDistribution)

	_, err = Sample([]Candidate{candidate(1, "0"), candidate(2, "0")}, NewRandomSource())
	assert.ErrorIs(t, err, ErrNoSampleableDistribution)

	_, err = Sample([]Candidate{candidate(1, "-5"), candidate(2, "10")}, NewRandomSource())
	assert.ErrorIs(t, err, ErrNoSampleableDistribution)
}

func TestSeededSource_IsReproducible(t *testing.T) {
	a, b := NewSeededSource(99), NewSeededSource(99)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestSample_FrequenciesFollowProbabilities(t *testing.T) {
	src := NewSeededSource(2024)
	counts := map[uint]int{}
	const draws = 20000
	for i := 0; i < draws; i++ {
		draw, err := Sample(abcTable(), src)
		require.NoError(t, err)
		counts[draw.Selected.ItemID]++
	}
	assert.InDelta(t, 0.60, float64(counts[1])/draws, 0.02)
	assert.InDelta(t, 0.30, float64(counts[2])/draws, 0.02)
	assert.InDelta(t, 0.10, float64(counts[3])/draws, 0.02)
}
