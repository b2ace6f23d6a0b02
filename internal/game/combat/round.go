package combat

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// Round is the transcript of one round. Round 0 holds battle-start effects.
type Round struct {
	Number int      `json:"number"`
	Lines  []string `json:"lines"`
}

// playRound runs one full round of turns.
//
// Postcondition: b.round is incremented; the round stops early once either side is wiped.
func (b *Battle) playRound() Round {
	b.round++
	r := Round{Number: b.round}
	for _, actor := range TurnOrder(b.Allies, b.Enemies) {
		if !actor.IsAlive() {
			continue
		}
		r.Lines = append(r.Lines, b.takeTurn(actor)...)
		if firstLiving(b.Allies) == nil || firstLiving(b.Enemies) == nil {
			break
		}
	}
	return r
}

// takeTurn resolves one combatant's turn.
//
// Precondition: actor is alive.
func (b *Battle) takeTurn(actor *Combatant) []string {
	friends, foes := b.sides(actor)
	var lines []string

	// Stun is read before the tick so a stun of N skips exactly N turns.
	stunned := actor.Stunned > 0
	for _, m := range actor.Tick() {
		b.logger.Debug("modifier expired",
			zap.String("combatant", actor.Name),
			zap.Stringer("kind", m.Kind),
			zap.String("source", m.Source),
		)
	}
	if heal := regenFor(actor, friends); heal > 0 {
		before := actor.HP()
		actor.Heal(heal)
		if gained := int(actor.HP() - before); gained > 0 {
			lines = append(lines, fmt.Sprintf("%s regenerates %d HP.", actor.Name, gained))
		}
	}
	if stunned {
		return append(lines, fmt.Sprintf("%s is stunned, skips turn.", actor.Name))
	}

	actor.GainEnergy(b.eng.cfg.EnergyPerTurn)

	inst := b.selectorFor(actor).Choose(actor, friends, foes)
	if inst == nil || !inst.Def.IsActive() || !inst.Ready() || !inst.Affordable(actor.Energy) {
		inst = actor.BasicAttack()
	}
	if inst.Def.EnergyCost > 0 {
		actor.SpendEnergy(inst.Def.EnergyCost)
	}
	target := ChooseTarget(actor, inst.Def, friends, foes)

	b.logger.Debug("turn",
		zap.Int("round", b.round),
		zap.String("actor", actor.Name),
		zap.Stringer("side", actor.Side),
		zap.String("skill", inst.Def.Name),
		zap.Float64("energy", actor.Energy),
	)

	lines = append(lines, ResolveSkill(actor, target, inst.Def, friends, foes, b.eng.src)...)
	inst.Trigger()
	actor.FirstStrikeUsed = true
	return lines
}

// regenFor sums the regen passives of living members of friends and returns
// the heal owed to actor this turn.
func regenFor(actor *Combatant, friends []*Combatant) int {
	var pct float64
	for _, f := range living(friends) {
		for _, p := range f.Passives() {
			pct += p.Hook.RegenPerTurn
		}
	}
	if pct <= 0 {
		return 0
	}
	return int(math.Floor(pct * actor.MaxHP()))
}

func (b *Battle) sides(c *Combatant) (friends, foes []*Combatant) {
	if c.Side == SidePlayer {
		return b.Allies, b.Enemies
	}
	return b.Enemies, b.Allies
}

func (b *Battle) selectorFor(c *Combatant) Selector {
	if c.Side == SidePlayer {
		return b.eng.players
	}
	return b.eng.enemies
}

// decide reports the outcome implied by the living members of each side. The
// ally wipe is checked first, so a simultaneous wipe is a player loss.
func decide(allies, enemies []*Combatant) Outcome {
	if firstLiving(allies) == nil {
		return PlayerLoss
	}
	if firstLiving(enemies) == nil {
		return PlayerWin
	}
	return Undecided
}
