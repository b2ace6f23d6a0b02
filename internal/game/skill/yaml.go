package skill

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// definitionYAML is the on-disk form of a skill.
type definitionYAML struct {
	Name       string     `yaml:"name"`
	Type       Kind       `yaml:"type"`
	Desc       string     `yaml:"desc"`
	EnergyCost float64    `yaml:"energy_cost"`
	Cooldown   int        `yaml:"cooldown"`
	Effect     effectYAML `yaml:"effect"`
}

// effectYAML is the flat on-disk form shared by every effect tag. Only the
// keys meaningful to the tagged action are read.
type effectYAML struct {
	Action string `yaml:"action"`

	Mult    *float64 `yaml:"mult"`
	AoE     bool     `yaml:"aoe"`
	Pierce  float64  `yaml:"pierce"`
	Add     float64  `yaml:"add"`
	ExtraVs string   `yaml:"extra_vs"`

	Stat      string  `yaml:"stat"`
	Amount    float64 `yaml:"amount"`
	Turns     int     `yaml:"turns"`
	Target    string  `yaml:"target"`
	IsPercent *bool   `yaml:"is_percent"`

	Stun        int     `yaml:"stun"`
	EnergyDrain bool    `yaml:"energy_drain"`
	StealEnergy float64 `yaml:"steal_energy"`

	Chance           float64  `yaml:"chance"`
	IgnoreDef        bool     `yaml:"ignore_def"`
	CritDmgMult      *float64 `yaml:"crit_dmg_mult"`
	FirstStrikeBonus float64  `yaml:"first_strike_bonus"`
	AllyAttackPct    float64  `yaml:"ally_attack_pct"`
	AllyDefPct       float64  `yaml:"ally_def_pct"`
	Regen            float64  `yaml:"regen"`
	BonusCritDmg     float64  `yaml:"bonus_crit_dmg"`
	BonusClass       string   `yaml:"bonus_class"`
}

var (
	definitionKeys = []string{"name", "type", "desc", "energy_cost", "cooldown", "effect"}
	effectKeys     = []string{
		"action", "mult", "aoe", "pierce", "add", "extra_vs",
		"stat", "amount", "turns", "target", "is_percent",
		"stun", "energy_drain", "steal_energy",
		"chance", "ignore_def", "crit_dmg_mult", "first_strike_bonus",
		"ally_attack_pct", "ally_def_pct", "regen", "bonus_crit_dmg", "bonus_class",
	}
)

// UnmarshalYAML decodes and validates a skill from its catalog form.
//
// Postcondition: on success *d satisfies Validate; unknown keys and unknown
// effect actions are rejected.
func (d *Definition) UnmarshalYAML(node *yaml.Node) error {
	if err := checkKeys(node, definitionKeys); err != nil {
		return fmt.Errorf("skill: %w", err)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == "effect" {
			if err := checkKeys(node.Content[i+1], effectKeys); err != nil {
				return fmt.Errorf("skill effect: %w", err)
			}
		}
	}

	var raw definitionYAML
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("decoding skill: %w", err)
	}
	eff, err := raw.Effect.toEffect()
	if err != nil {
		return fmt.Errorf("skill %q: %w", raw.Name, err)
	}
	*d = Definition{
		Name:        raw.Name,
		Kind:        raw.Type,
		Description: raw.Desc,
		Effect:      eff,
		EnergyCost:  raw.EnergyCost,
		Cooldown:    raw.Cooldown,
	}
	return d.Validate()
}

func (e effectYAML) mult() float64 {
	if e.Mult == nil {
		return 1.0
	}
	return *e.Mult
}

func (e effectYAML) isPercent() bool {
	return e.IsPercent == nil || *e.IsPercent
}

func (e effectYAML) toEffect() (Effect, error) {
	switch e.Action {
	case ActionDamage:
		return Damage{Mult: e.mult(), AoE: e.AoE, Pierce: e.Pierce, FlatAdd: e.Add, ExtraVsClass: e.ExtraVs}, nil
	case ActionHeal:
		return Heal{Mult: e.mult(), AoE: e.AoE}, nil
	case ActionBuff:
		target, err := buffTarget(e.Target)
		if err != nil {
			return nil, err
		}
		return Buff{Stat: e.Stat, Amount: e.Amount, Turns: turnsOrOne(e.Turns), Target: target, IsPercent: e.isPercent()}, nil
	case ActionDebuff:
		switch e.Target {
		case "", "enemy", string(TargetEnemyAll):
		default:
			return nil, fmt.Errorf("debuff target %q is not supported", e.Target)
		}
		return Debuff{Stat: e.Stat, Amount: e.Amount, Turns: turnsOrOne(e.Turns), Target: TargetEnemyAll, IsPercent: e.isPercent()}, nil
	case ActionEnergy:
		return EnergyGrant{Amount: e.Amount}, nil
	case ActionTaunt:
		return Taunt{Turns: turnsOrOne(e.Turns)}, nil
	case ActionUltimate:
		var mult float64
		if e.Mult != nil {
			mult = *e.Mult
		}
		return Ultimate{Mult: mult, Stun: e.Stun, EnergyDrain: e.EnergyDrain, StealEnergy: e.StealEnergy, AoE: e.AoE}, nil
	case ActionPassive:
		hook := PassiveHook{
			FirstStrikeBonus:  e.FirstStrikeBonus,
			AllyAttackPct:     e.AllyAttackPct,
			AllyDefensePct:    e.AllyDefPct,
			RegenPerTurn:      e.Regen,
			ExtraVsClassBonus: e.BonusCritDmg,
			BonusClass:        e.BonusClass,
		}
		if e.IgnoreDef {
			hook.IgnoreDefenseChance = e.Chance
			hook.CritDmgMultOnIgnore = 1
			if e.CritDmgMult != nil {
				hook.CritDmgMultOnIgnore = *e.CritDmgMult
			}
		}
		return hook, nil
	default:
		return nil, fmt.Errorf("%w: action %q", ErrUnknownEffect, e.Action)
	}
}

func buffTarget(s string) (BuffTarget, error) {
	switch s {
	case "self":
		return TargetSelf, nil
	case "", "ally", "ally_all", "ally_team":
		return TargetAllyAll, nil
	case "ally_single", "ally_target":
		return TargetAllySingle, nil
	default:
		return "", fmt.Errorf("buff target %q is not supported", s)
	}
}

func turnsOrOne(n int) int {
	if n == 0 {
		return 1
	}
	return n
}

func checkKeys(node *yaml.Node, allowed []string) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		known := false
		for _, a := range allowed {
			if key.Value == a {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("line %d: field %s not found", key.Line, key.Value)
		}
	}
	return nil
}
