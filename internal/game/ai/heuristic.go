// Package ai provides skill selectors for combatants: the fixed enemy
// heuristic, the player fixed-priority selector, and a Lua-scripted selector
// layered over either.
package ai

import (
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/skill"
)

// Heuristic is the fixed enemy selector. In priority order it casts a ready,
// affordable Ultimate; the ready, affordable Damage skill with the highest
// multiplier; the first ready, affordable active; otherwise nil, which the
// engine resolves to the basic attack.
type Heuristic struct{}

// Choose implements combat.Selector.
//
// Postcondition: a non-nil result is ready and affordable for actor.
func (Heuristic) Choose(actor *combat.Combatant, _, _ []*combat.Combatant) *skill.Instance {
	usable := usableActives(actor)

	for _, s := range usable {
		if _, ok := s.Def.Effect.(skill.Ultimate); ok {
			return s
		}
	}

	var best *skill.Instance
	var bestMult float64
	for _, s := range usable {
		d, ok := s.Def.Effect.(skill.Damage)
		if !ok {
			continue
		}
		if best == nil || d.Mult > bestMult {
			best, bestMult = s, d.Mult
		}
	}
	if best != nil {
		return best
	}

	if len(usable) > 0 {
		return usable[0]
	}
	return nil
}

// FirstReady is the player fixed-priority selector: the first ready,
// affordable active in definition order, otherwise nil.
type FirstReady struct{}

// Choose implements combat.Selector.
func (FirstReady) Choose(actor *combat.Combatant, _, _ []*combat.Combatant) *skill.Instance {
	if usable := usableActives(actor); len(usable) > 0 {
		return usable[0]
	}
	return nil
}

// usableActives returns actor's actives that are off cooldown and affordable,
// in definition order.
func usableActives(actor *combat.Combatant) []*skill.Instance {
	var out []*skill.Instance
	for _, s := range actor.Actives() {
		if s.Ready() && s.Affordable(actor.Energy) {
			out = append(out, s)
		}
	}
	return out
}
