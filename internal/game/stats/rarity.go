package stats

// Rarity is a character's rarity tier.
type Rarity string

const (
	Rare      Rarity = "rare"
	Epic      Rarity = "epic"
	Legendary Rarity = "legendary"
	Mythic    Rarity = "mythic"
	UR        Rarity = "UR"
	Ascended  Rarity = "Ascended"
)

type rarityRow struct {
	mult     float64
	actives  int
	passives int
}

var rarityTable = map[Rarity]rarityRow{
	Rare:      {1.0, 1, 0},
	Epic:      {1.25, 2, 0},
	Legendary: {1.5, 2, 1},
	Mythic:    {1.7, 3, 1},
	UR:        {1.85, 3, 2},
	Ascended:  {2.0, 4, 3},
}

// Known reports whether r is one of the defined tiers.
func (r Rarity) Known() bool {
	_, ok := rarityTable[r]
	return ok
}

// Multiplier returns the stat multiplier for r; unknown tiers scale by 1.
func (r Rarity) Multiplier() float64 {
	if row, ok := rarityTable[r]; ok {
		return row.mult
	}
	return 1.0
}

// AbilityCounts returns how many active and passive skills r may retain.
// Unknown tiers get one active and no passives.
func (r Rarity) AbilityCounts() (actives, passives int) {
	if row, ok := rarityTable[r]; ok {
		return row.actives, row.passives
	}
	return 1, 0
}
