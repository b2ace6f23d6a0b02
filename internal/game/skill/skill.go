// Package skill defines skill templates, their tagged effects, and the
// per-battle instances that carry cooldown state.
package skill

import (
	"errors"
	"fmt"
)

// ErrUnknownEffect is returned when a skill carries an effect tag outside the closed set.
var ErrUnknownEffect = errors.New("unknown effect")

// Kind distinguishes cast skills from passive hooks.
type Kind string

const (
	KindActive  Kind = "active"
	KindPassive Kind = "passive"
)

// BasicAttackName is the display name of the fallback attack every combatant owns.
const BasicAttackName = "Basic Attack"

// Definition is an immutable skill template.
type Definition struct {
	Name        string
	Kind        Kind
	Description string
	Effect      Effect
	// EnergyCost is only meaningful for active skills.
	EnergyCost float64
	// Cooldown is the number of the caster's following turns on which the skill
	// cannot be cast.
	Cooldown int
}

// IsActive reports whether d can be cast.
func (d *Definition) IsActive() bool { return d.Kind == KindActive }

// Validate checks the template's invariants.
//
// Postcondition: nil return guarantees a non-empty name, a known kind, a
// non-nil effect from the closed set whose shape matches the kind, and
// non-negative cost and cooldown.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return errors.New("skill: name must not be empty")
	}
	if d.Kind != KindActive && d.Kind != KindPassive {
		return fmt.Errorf("skill %q: type must be active or passive, got %q", d.Name, d.Kind)
	}
	if d.EnergyCost < 0 {
		return fmt.Errorf("skill %q: energy_cost must be >= 0", d.Name)
	}
	if d.Cooldown < 0 {
		return fmt.Errorf("skill %q: cooldown must be >= 0", d.Name)
	}
	if err := validateEffect(d.Effect); err != nil {
		return fmt.Errorf("skill %q: %w", d.Name, err)
	}
	_, passive := d.Effect.(PassiveHook)
	if passive != (d.Kind == KindPassive) {
		return fmt.Errorf("skill %q: %s skills cannot carry a %q effect", d.Name, d.Kind, d.Effect.Action())
	}
	return nil
}

func validateEffect(e Effect) error {
	switch eff := e.(type) {
	case Damage:
		if eff.Mult < 0 {
			return errors.New("damage mult must be >= 0")
		}
	case Heal:
		if eff.Mult < 0 {
			return errors.New("heal mult must be >= 0")
		}
	case Buff:
		if eff.Stat == "" {
			return errors.New("buff stat must not be empty")
		}
		if eff.Turns < 1 {
			return errors.New("buff turns must be >= 1")
		}
		switch eff.Target {
		case TargetSelf, TargetAllyAll, TargetAllySingle:
		default:
			return fmt.Errorf("buff target %q is not supported", eff.Target)
		}
	case Debuff:
		if eff.Stat == "" {
			return errors.New("debuff stat must not be empty")
		}
		if eff.Turns < 1 {
			return errors.New("debuff turns must be >= 1")
		}
		if eff.Target != TargetEnemyAll {
			return fmt.Errorf("debuff target %q is not supported", eff.Target)
		}
	case EnergyGrant:
		if eff.Amount < 0 {
			return errors.New("energy amount must be >= 0")
		}
	case Taunt:
		if eff.Turns < 1 {
			return errors.New("taunt turns must be >= 1")
		}
	case Ultimate:
		if eff.Mult < 0 || eff.Stun < 0 || eff.StealEnergy < 0 {
			return errors.New("ultimate mult, stun and steal_energy must be >= 0")
		}
	case PassiveHook:
		if eff.IgnoreDefenseChance < 0 || eff.IgnoreDefenseChance > 1 {
			return errors.New("passive chance must be within [0, 1]")
		}
		if eff.IgnoreDefenseChance > 0 && eff.CritDmgMultOnIgnore <= 0 {
			return errors.New("passive crit_dmg_mult must be > 0 when defense can be ignored")
		}
	case nil:
		return fmt.Errorf("%w: effect is missing", ErrUnknownEffect)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownEffect, e)
	}
	return nil
}

// BasicAttack returns the template-only fallback attack: single target, multiplier 1, no cost.
func BasicAttack() *Definition {
	return &Definition{
		Name:        BasicAttackName,
		Kind:        KindActive,
		Description: "auto",
		Effect:      Damage{Mult: 1.0},
	}
}

// Instance is a battle-scoped copy of a skill carrying its cooldown.
//
// Invariant: remaining >= 0.
type Instance struct {
	Def       *Definition
	remaining int
}

// NewInstance creates a ready Instance for def.
//
// Precondition: def must not be nil.
func NewInstance(def *Definition) *Instance {
	return &Instance{Def: def}
}

// Ready reports whether the cooldown has elapsed.
func (i *Instance) Ready() bool { return i.remaining == 0 }

// Remaining returns the number of ticks until the skill is ready.
func (i *Instance) Remaining() int { return i.remaining }

// Trigger starts the cooldown. The caster ticks before choosing a skill, so a
// cooldown of N needs N+1 ticks to block N turns.
//
// Postcondition: Remaining() == Def.Cooldown+1, or 0 when Def.Cooldown == 0.
func (i *Instance) Trigger() {
	if i.Def.Cooldown > 0 {
		i.remaining = i.Def.Cooldown + 1
	}
}

// Tick advances the cooldown by one turn.
//
// Postcondition: Remaining() >= 0.
func (i *Instance) Tick() {
	if i.remaining > 0 {
		i.remaining--
	}
}

// Affordable reports whether energy covers the instance's cost. Free skills are always affordable.
func (i *Instance) Affordable(energy float64) bool {
	return i.Def.EnergyCost == 0 || energy >= i.Def.EnergyCost
}
