// Package character defines roster character templates and the catalog they are loaded into.
package character

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/skirmish/internal/game/skill"
	"github.com/cory-johannsen/skirmish/internal/game/stats"
)

// ErrUnknownCharacter is returned when a catalog lookup misses.
var ErrUnknownCharacter = errors.New("unknown character")

// Definition is an immutable character template. The engine never mutates it.
type Definition struct {
	ID        string              `yaml:"id"`
	Name      string              `yaml:"name"`
	Rarity    stats.Rarity        `yaml:"rarity"`
	Class     string              `yaml:"class"`
	Level     int                 `yaml:"level"`
	Stars     int                 `yaml:"stars"`
	Awakened  bool                `yaml:"awakened"`
	BaseStats stats.Block         `yaml:"base_stats"`
	Skills    []*skill.Definition `yaml:"skills"`

	// AwakenedMultiplier is copied from the identity's override; zero means the default.
	AwakenedMultiplier float64 `yaml:"-"`
}

// Validate checks that the template satisfies basic invariants.
//
// Precondition: d must not be nil.
// Postcondition: Returns nil iff ID is non-empty, Level >= 1, Stars >= 1,
// every base stat key is known, and every skill validates.
func (d *Definition) Validate() error {
	if d.ID == "" {
		return errors.New("character: id must not be empty")
	}
	if d.Level < 1 {
		return fmt.Errorf("character %q: level must be >= 1", d.ID)
	}
	if d.Stars < 1 {
		return fmt.Errorf("character %q: stars must be >= 1", d.ID)
	}
	for k := range d.BaseStats {
		if !isBaseKey(k) {
			return fmt.Errorf("character %q: unknown base stat %q", d.ID, k)
		}
	}
	for i, s := range d.Skills {
		if s == nil {
			return fmt.Errorf("character %q: skill %d is empty", d.ID, i)
		}
		if err := s.Validate(); err != nil {
			return fmt.Errorf("character %q: %w", d.ID, err)
		}
	}
	return nil
}

// DisplayName returns Name, falling back to ID.
func (d *Definition) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.ID
}

// DeriveStats computes the battle-entry stat block for d.
//
// Postcondition: the result is a fresh map; d.BaseStats is not modified.
func (d *Definition) DeriveStats() stats.Block {
	return stats.Derive(stats.Input{
		Base:               d.BaseStats,
		Level:              d.Level,
		Stars:              d.Stars,
		Rarity:             d.Rarity,
		Awakened:           d.Awakened,
		AwakenedMultiplier: d.AwakenedMultiplier,
	})
}

// Actives returns the active skills in catalog order.
func (d *Definition) Actives() []*skill.Definition {
	return d.filter(skill.KindActive)
}

// Passives returns the passive skills in catalog order.
func (d *Definition) Passives() []*skill.Definition {
	return d.filter(skill.KindPassive)
}

func (d *Definition) filter(kind skill.Kind) []*skill.Definition {
	var out []*skill.Definition
	for _, s := range d.Skills {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

func isBaseKey(k string) bool {
	for _, b := range stats.BaseKeys {
		if b == k {
			return true
		}
	}
	return false
}
