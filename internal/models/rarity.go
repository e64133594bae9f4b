package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Rarity is the ordered tier of a box item. The zero value is not a valid tier.
type Rarity uint8

const (
	RarityCommon Rarity = iota + 1
	RarityRare
	RarityEpic
	RarityUltraRare
)

// Rarities lists every known tier from most to least common.
var Rarities = [...]Rarity{RarityCommon, RarityRare, RarityEpic, RarityUltraRare}

func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "common"
	case RarityRare:
		return "rare"
	case RarityEpic:
		return "epic"
	case RarityUltraRare:
		return "ultra_rare"
	default:
		return fmt.Sprintf("rarity(%d)", uint8(r))
	}
}

// Valid reports whether r is one of the four known tiers.
func (r Rarity) Valid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityUltraRare:
		return true
	default:
		return false
	}
}

// ParseRarity maps a tier name to its Rarity. Unknown names yield the zero value.
func ParseRarity(s string) (Rarity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "common":
		return RarityCommon, true
	case "rare":
		return RarityRare, true
	case "epic":
		return RarityEpic, true
	case "ultra_rare", "ultrarare", "ultra-rare", "secret":
		return RarityUltraRare, true
	default:
		return 0, false
	}
}

func (r Rarity) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Rarity) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, _ := ParseRarity(s)
	*r = parsed
	return nil
}

func (r Rarity) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid rarity %d", uint8(r))
	}
	return r.String(), nil
}

func (r *Rarity) Scan(value interface{}) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Rarity", value)
	}
	parsed, ok := ParseRarity(s)
	if !ok {
		return fmt.Errorf("unknown rarity %q", s)
	}
	*r = parsed
	return nil
}
