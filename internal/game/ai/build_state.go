package ai

import (
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/skill"
)

// BuildWorldState snapshots actor and both groups for a selection decision.
//
// Precondition: actor must not be nil.
// Postcondition: ws.Actor.ID == actor.ID; every active skill of actor is represented in order.
func BuildWorldState(actor *combat.Combatant, allies, enemies []*combat.Combatant) *WorldState {
	ws := &WorldState{Actor: combatantState(actor)}
	for _, s := range actor.Actives() {
		ws.Skills = append(ws.Skills, &SkillState{
			Name:       s.Def.Name,
			Action:     s.Def.Effect.Action(),
			Cost:       s.Def.EnergyCost,
			Cooldown:   s.Def.Cooldown,
			Remaining:  s.Remaining(),
			Mult:       effectMult(s.Def.Effect),
			AoE:        effectAoE(s.Def.Effect),
			Ready:      s.Ready(),
			Affordable: s.Affordable(actor.Energy),
		})
	}
	for _, c := range allies {
		ws.Allies = append(ws.Allies, combatantState(c))
	}
	for _, c := range enemies {
		ws.Enemies = append(ws.Enemies, combatantState(c))
	}
	return ws
}

func combatantState(c *combat.Combatant) *CombatantState {
	return &CombatantState{
		ID:      c.ID,
		Name:    c.Name,
		Class:   c.Class,
		HP:      c.HP(),
		MaxHP:   c.MaxHP(),
		Energy:  c.Energy,
		Stunned: c.Stunned,
		Taunted: c.Taunted,
		Alive:   c.IsAlive(),
	}
}

// effectMult reports the damage or heal multiplier of e, or 0 for effects without one.
func effectMult(e skill.Effect) float64 {
	switch eff := e.(type) {
	case skill.Damage:
		return eff.Mult
	case skill.Heal:
		return eff.Mult
	case skill.Ultimate:
		return eff.Mult
	}
	return 0
}

func effectAoE(e skill.Effect) bool {
	switch eff := e.(type) {
	case skill.Damage:
		return eff.AoE
	case skill.Heal:
		return eff.AoE
	case skill.Ultimate:
		return eff.AoE
	}
	return false
}
