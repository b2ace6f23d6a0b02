package combat

import (
	"fmt"
	"math"

	"github.com/cory-johannsen/skirmish/internal/game/condition"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/skill"
	"github.com/cory-johannsen/skirmish/internal/game/stats"
)

const (
	minHitChance = 0.05
	maxHitChance = 0.99
	maxPierce    = 0.95
	// mitigationScale is the defense value at which half the damage is absorbed.
	mitigationScale = 1000.0
)

// HitChance returns clamp(accuracy - dodge, 0.05, 0.99).
func HitChance(attacker, target *Combatant) float64 {
	return clamp(attacker.EffectiveStat(stats.Accuracy)-target.EffectiveStat(stats.Dodge), minHitChance, maxHitChance)
}

// Mitigation returns defense/(defense+1000), the fraction of damage absorbed.
//
// Precondition: defense >= 0.
func Mitigation(defense float64) float64 {
	return defense / (defense + mitigationScale)
}

// DamageRoll is the outcome of one damage calculation.
type DamageRoll struct {
	Amount int
	Crit   bool
}

// CalcDamage computes damage from attacker to target. Draws happen in a fixed
// order: crit, then each passive's ignore-defense chance.
//
// Postcondition: Amount >= 0.
func CalcDamage(attacker, target *Combatant, mult, pierce, flatAdd, extraMult float64, src dice.Source) DamageRoll {
	atk := attacker.EffectiveStat(stats.Attack)
	def := math.Max(0, target.EffectiveStat(stats.Defense))
	pierceTotal := clamp(attacker.EffectiveStat(stats.ArmorPierce)+pierce, 0, maxPierce)
	eff := Mitigation(def) * (1 - pierceTotal)
	dmg := (atk*mult*extraMult + flatAdd) * (1 - eff)

	crit := dice.Chance(src, attacker.EffectiveStat(stats.CritRate))
	if crit {
		dmg *= attacker.EffectiveStat(stats.CritDmg)
	}

	for _, p := range attacker.Passives() {
		if p.Hook.IgnoreDefenseChance > 0 && dice.Chance(src, p.Hook.IgnoreDefenseChance) {
			dmg = atk * mult * p.Hook.CritDmgMultOnIgnore
		}
		if p.Hook.FirstStrikeBonus > 0 && !attacker.FirstStrikeUsed {
			dmg *= 1 + p.Hook.FirstStrikeBonus
		}
	}
	return DamageRoll{Amount: int(math.Max(0, math.Floor(dmg))), Crit: crit}
}

// ResolveSkill applies def's effect for user against target and returns one
// human-readable line per sub-event. A dead or missing target re-resolves to
// the first living valid target; when none exists a skip line is returned.
//
// Precondition: user and def must not be nil; def.Effect must be one of the
// closed set of effects (guaranteed by skill.Definition.Validate).
func ResolveSkill(user, target *Combatant, def *skill.Definition, allies, enemies []*Combatant, src dice.Source) []string {
	switch eff := def.Effect.(type) {
	case skill.Damage:
		return resolveDamage(user, target, def.Name, eff, enemies, src)
	case skill.Heal:
		return resolveHeal(user, target, eff, allies)
	case skill.Buff:
		return resolveBuff(user, target, def.Name, eff, allies)
	case skill.Debuff:
		return resolveDebuff(user, def.Name, eff, enemies)
	case skill.EnergyGrant:
		for _, a := range living(allies) {
			a.GainEnergy(eff.Amount)
		}
		return []string{fmt.Sprintf("%s granted %g energy to allies.", user.Name, eff.Amount)}
	case skill.Taunt:
		user.Taunted = eff.Turns
		return []string{fmt.Sprintf("%s taunts enemies for %d turns.", user.Name, eff.Turns)}
	case skill.Ultimate:
		return resolveUltimate(user, target, eff, enemies, src)
	case skill.PassiveHook:
		return []string{fmt.Sprintf("%s cannot cast passive %s.", user.Name, def.Name)}
	default:
		panic(fmt.Sprintf("combat: unhandled effect %T in skill %q", def.Effect, def.Name))
	}
}

func resolveDamage(user, target *Combatant, name string, eff skill.Damage, enemies []*Combatant, src dice.Source) []string {
	var log []string
	hit := func(t *Combatant) {
		if !dice.Chance(src, HitChance(user, t)) {
			log = append(log, fmt.Sprintf("%s's %s missed %s!", user.Name, name, t.Name))
			return
		}
		extra := 1.0
		if eff.ExtraVsClass != "" && t.Class == eff.ExtraVsClass {
			extra = skill.ExtraVsClassMult
		}
		roll := CalcDamage(user, t, eff.Mult, eff.Pierce, eff.FlatAdd, extra, src)
		t.TakeDamage(roll.Amount)
		log = append(log, fmt.Sprintf("%s used %s on %s for %d%s.", user.Name, name, t.Name, roll.Amount, critTag(roll.Crit)))
	}

	if eff.AoE {
		for _, e := range living(enemies) {
			hit(e)
		}
		if len(log) == 0 {
			log = append(log, fmt.Sprintf("%s's %s found no targets.", user.Name, name))
		}
		return log
	}
	t := resolveTarget(user, target, enemies)
	if t == nil {
		return []string{fmt.Sprintf("%s's %s found no target.", user.Name, name)}
	}
	hit(t)
	return log
}

func resolveHeal(user, target *Combatant, eff skill.Heal, allies []*Combatant) []string {
	// Debuffs can drive effective attack below zero; a heal never wounds.
	amount := max(0, int(user.EffectiveStat(stats.Attack)*eff.Mult))
	if eff.AoE {
		var log []string
		for _, a := range living(allies) {
			a.Heal(amount)
			log = append(log, fmt.Sprintf("%s healed %s for %d.", user.Name, a.Name, amount))
		}
		return log
	}
	t := user
	if target != nil && target.IsAlive() && target.Side == user.Side {
		t = target
	}
	t.Heal(amount)
	return []string{fmt.Sprintf("%s healed %s for %d.", user.Name, t.Name, amount)}
}

func resolveBuff(user, target *Combatant, name string, eff skill.Buff, allies []*Combatant) []string {
	m := condition.Modifier{Source: name, Kind: condition.Buff, Stat: eff.Stat, Amount: eff.Amount, IsPercent: eff.IsPercent}
	desc := describeMod("+", eff.Stat, eff.Amount, eff.IsPercent, eff.Turns)
	switch eff.Target {
	case skill.TargetSelf:
		_ = user.Conditions.Apply(m, eff.Turns)
		return []string{fmt.Sprintf("%s gains %s.", user.Name, desc)}
	case skill.TargetAllySingle:
		t := target
		if t == nil || !t.IsAlive() || t.Side != user.Side {
			t = user
		}
		_ = t.Conditions.Apply(m, eff.Turns)
		return []string{fmt.Sprintf("%s buffed %s: %s.", user.Name, t.Name, desc)}
	default:
		for _, a := range living(allies) {
			_ = a.Conditions.Apply(m, eff.Turns)
		}
		return []string{fmt.Sprintf("%s buffed allies: %s.", user.Name, desc)}
	}
}

func resolveDebuff(user *Combatant, name string, eff skill.Debuff, enemies []*Combatant) []string {
	m := condition.Modifier{Source: name, Kind: condition.Debuff, Stat: eff.Stat, Amount: eff.Amount, IsPercent: eff.IsPercent}
	for _, e := range living(enemies) {
		_ = e.Conditions.Apply(m, eff.Turns)
	}
	return []string{fmt.Sprintf("%s applied debuff %s to enemies.", user.Name, describeMod("-", eff.Stat, eff.Amount, eff.IsPercent, eff.Turns))}
}

func resolveUltimate(user, target *Combatant, eff skill.Ultimate, enemies []*Combatant, src dice.Source) []string {
	var log []string
	t := resolveTarget(user, target, enemies)

	if eff.EnergyDrain && t != nil {
		t.DrainEnergy(t.Energy)
		log = append(log, fmt.Sprintf("%s drains %s's energy to 0.", user.Name, t.Name))
	}
	if eff.Stun > 0 && t != nil {
		t.Stunned = eff.Stun
		log = append(log, fmt.Sprintf("%s stunned for %d turns.", t.Name, eff.Stun))
	}
	if eff.Mult > 0 {
		if eff.AoE {
			for _, e := range living(enemies) {
				roll := CalcDamage(user, e, eff.Mult, 0, 0, 1, src)
				e.TakeDamage(roll.Amount)
				log = append(log, fmt.Sprintf("%s ultimate hit %s for %d%s.", user.Name, e.Name, roll.Amount, critTag(roll.Crit)))
			}
		} else if t != nil {
			roll := CalcDamage(user, t, eff.Mult, 0, 0, 1, src)
			t.TakeDamage(roll.Amount)
			log = append(log, fmt.Sprintf("%s ultimate hit %s for %d%s.", user.Name, t.Name, roll.Amount, critTag(roll.Crit)))
		}
	}
	if eff.StealEnergy > 0 {
		var stolen float64
		for _, e := range living(enemies) {
			stolen += e.DrainEnergy(eff.StealEnergy)
		}
		gained := user.GainEnergy(stolen)
		log = append(log, fmt.Sprintf("%s stole %g energy.", user.Name, gained))
	}
	if len(log) == 0 {
		log = append(log, fmt.Sprintf("%s's ultimate found no target.", user.Name))
	}
	return log
}

// resolveTarget returns target when it is a living opponent of user, otherwise
// the first living member of group.
func resolveTarget(user, target *Combatant, group []*Combatant) *Combatant {
	if target != nil && target.IsAlive() && target.Side != user.Side {
		return target
	}
	return firstLiving(group)
}

func firstLiving(group []*Combatant) *Combatant {
	for _, c := range group {
		if c.IsAlive() {
			return c
		}
	}
	return nil
}

func living(group []*Combatant) []*Combatant {
	var out []*Combatant
	for _, c := range group {
		if c.IsAlive() {
			out = append(out, c)
		}
	}
	return out
}

func critTag(crit bool) string {
	if crit {
		return " (CRIT)"
	}
	return ""
}

func describeMod(sign, stat string, amount float64, isPercent bool, turns int) string {
	if isPercent {
		return fmt.Sprintf("%s %s%.4g%% for %d turns", stat, sign, amount*100, turns)
	}
	return fmt.Sprintf("%s %s%g for %d turns", stat, sign, amount, turns)
}
