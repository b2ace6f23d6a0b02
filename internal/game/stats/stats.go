// Package stats derives a character's in-battle stat block from its base
// stats, level, star count, rarity, and awakening flag.
package stats

import "math"

// Stat names used across the engine.
const (
	HP          = "hp"
	MaxHP       = "max_hp"
	Attack      = "attack"
	Defense     = "defense"
	CritRate    = "crit_rate"
	CritDmg     = "crit_dmg"
	Speed       = "speed"
	Dodge       = "dodge"
	Accuracy    = "accuracy"
	ArmorPierce = "armor_pierce"
	Energy      = "energy"
)

// BaseKeys lists the base stats every definition is expected to carry.
var BaseKeys = []string{HP, Attack, Defense, CritRate, CritDmg, Speed, Dodge, Accuracy, ArmorPierce, Energy}

// Fallbacks are substituted for base stats missing from a definition.
var Fallbacks = map[string]float64{
	HP:          100,
	Attack:      100,
	Defense:     50,
	CritRate:    0.05,
	CritDmg:     1.5,
	Speed:       100,
	Dodge:       0,
	Accuracy:    1.0,
	ArmorPierce: 0,
	Energy:      0,
}

// DefaultAwakenedMultiplier is applied to hp, attack, defense and speed of an awakened character.
const DefaultAwakenedMultiplier = 1.30

// awakenedStats are the stats boosted by awakening.
var awakenedStats = []string{HP, Attack, Defense, Speed}

// IsPercentStat reports whether name scales linearly with level rather than geometrically.
func IsPercentStat(name string) bool {
	switch name {
	case CritRate, CritDmg, Dodge, Accuracy:
		return true
	}
	return false
}

// Block is a flat stat-name to value mapping.
type Block map[string]float64

// Get returns the value for name, or its fallback when absent.
func (b Block) Get(name string) float64 {
	if v, ok := b[name]; ok {
		return v
	}
	return Fallbacks[name]
}

// Clone returns an independent copy of b.
func (b Block) Clone() Block {
	out := make(Block, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Input is everything the derivation needs from a character definition.
type Input struct {
	Base     Block
	Level    int
	Stars    int
	Rarity   Rarity
	Awakened bool
	// AwakenedMultiplier overrides DefaultAwakenedMultiplier when > 0.
	AwakenedMultiplier float64
}

// StarMultiplier returns 1 + 0.15*(stars-1).
func StarMultiplier(stars int) float64 {
	return 1 + 0.15*float64(stars-1)
}

// Derive computes the battle-entry stat block for in.
// Levels and stars below 1 are treated as 1. Missing base stats take their
// Fallbacks value before scaling.
//
// Postcondition: out[MaxHP] == out[HP]; in.Base is not modified.
func Derive(in Input) Block {
	level := max(in.Level, 1)
	stars := max(in.Stars, 1)
	star := StarMultiplier(stars)
	rarity := in.Rarity.Multiplier()

	base := in.Base.Clone()
	for _, k := range BaseKeys {
		if _, ok := base[k]; !ok {
			base[k] = Fallbacks[k]
		}
	}

	out := make(Block, len(base)+1)
	for k, v := range base {
		if IsPercentStat(k) {
			out[k] = v * (1 + 0.01*float64(level-1)) * star * rarity
		} else {
			out[k] = v * math.Pow(1.03, float64(level-1)) * star * rarity
		}
	}

	if in.Awakened {
		mult := in.AwakenedMultiplier
		if mult <= 0 {
			mult = DefaultAwakenedMultiplier
		}
		for _, k := range awakenedStats {
			out[k] *= mult
		}
	}

	out[MaxHP] = out[HP]
	out[HP] = out[MaxHP]
	return out
}
