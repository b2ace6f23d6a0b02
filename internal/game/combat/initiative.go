package combat

import (
	"sort"

	"github.com/cory-johannsen/skirmish/internal/game/skill"
	"github.com/cory-johannsen/skirmish/internal/game/stats"
)

// TurnOrder returns the living combatants sorted by effective speed, highest
// first. Ties keep allies before enemies, each in slot order.
//
// Postcondition: every returned combatant is alive.
func TurnOrder(allies, enemies []*Combatant) []*Combatant {
	order := append(living(allies), living(enemies)...)
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].EffectiveStat(stats.Speed) > order[j].EffectiveStat(stats.Speed)
	})
	return order
}

// ChooseTarget nominates the target for def. Single-target heals and ally_single
// buffs pick the living ally with the lowest hp fraction. Everything else picks
// a living taunting opponent, or the first living opponent.
//
// Postcondition: returns nil only when the nominated group has no living member.
func ChooseTarget(actor *Combatant, def *skill.Definition, friends, foes []*Combatant) *Combatant {
	if supportsAlly(def) {
		return mostWounded(friends)
	}
	for _, f := range foes {
		if f.IsAlive() && f.Taunted > 0 {
			return f
		}
	}
	return firstLiving(foes)
}

func supportsAlly(def *skill.Definition) bool {
	switch eff := def.Effect.(type) {
	case skill.Heal:
		return !eff.AoE
	case skill.Buff:
		return eff.Target == skill.TargetAllySingle
	}
	return false
}

func mostWounded(group []*Combatant) *Combatant {
	var best *Combatant
	for _, c := range group {
		if !c.IsAlive() {
			continue
		}
		if best == nil || c.HPFraction() < best.HPFraction() {
			best = c
		}
	}
	return best
}
