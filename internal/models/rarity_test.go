package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRarity(t *testing.T) {
	cases := map[string]Rarity{
		"common":     RarityCommon,
		"Rare":       RarityRare,
		" epic ":     RarityEpic,
		"ultra_rare": RarityUltraRare,
		"secret":     RarityUltraRare,
	}
	for in, want := range cases {
		got, ok := ParseRarity(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	got, ok := ParseRarity("legendary")
	assert.False(t, ok)
	assert.False(t, got.Valid())
}

func TestRarity_Ordering(t *testing.T) {
	assert.Less(t, RarityCommon, RarityRare)
	assert.Less(t, RarityRare, RarityEpic)
	assert.Less(t, RarityEpic, RarityUltraRare)
}

func TestRarity_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Rarity Rarity `json:"rarity"`
	}{RarityEpic})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"rarity":"epic"}`, string(data))

	var decoded struct {
		Rarity Rarity `json:"rarity"`
	}
	assert.NoError(t, json.Unmarshal([]byte(`{"rarity":"mythic"}`), &decoded))
	assert.False(t, decoded.Rarity.Valid())
}

func TestRarity_ValueRejectsUnknownTier(t *testing.T) {
	_, err := Rarity(0).Value()
	assert.Error(t, err)

	var r Rarity
	assert.NoError(t, r.Scan([]byte("ultra_rare")))
	assert.Equal(t, RarityUltraRare, r)
	assert.Error(t, r.Scan(42))
}
