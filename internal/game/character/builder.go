package character

import (
	"fmt"

	"github.com/cory-johannsen/skirmish/internal/game/skill"
)

// New validates def and returns a copy whose skill list is trimmed to the
// ability allowance of its rarity, or of its identity override when one exists.
// Retained skills are ordered actives first, then passives, each in catalog order.
//
// Precondition: def must not be nil.
// Postcondition: Returns a new *Definition sharing no slices with def, or a non-nil error.
func New(def *Definition, overrides Overrides) (*Definition, error) {
	if def == nil {
		return nil, fmt.Errorf("character: definition must not be nil")
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}

	wantActives, wantPassives := def.Rarity.AbilityCounts()
	out := *def
	if ov, ok := overrides[def.ID]; ok {
		if ov.Actives != nil {
			wantActives = *ov.Actives
		}
		if ov.Passives != nil {
			wantPassives = *ov.Passives
		}
		out.AwakenedMultiplier = ov.AwakenedMultiplier
	}

	out.BaseStats = def.BaseStats.Clone()

	actives := def.Actives()
	passives := def.Passives()
	actives = actives[:min(len(actives), wantActives)]
	passives = passives[:min(len(passives), wantPassives)]
	out.Skills = make([]*skill.Definition, 0, len(actives)+len(passives))
	out.Skills = append(out.Skills, actives...)
	out.Skills = append(out.Skills, passives...)
	return &out, nil
}
