package combat_test

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/config"
	"github.com/cory-johannsen/skirmish/internal/game/character"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/skill"
	"github.com/cory-johannsen/skirmish/internal/game/stats"
)

// fixedSrc is a deterministic Source returning the same draw every time.
// 0 makes every chance succeed; values >= 0.99 make every hit roll miss.
type fixedSrc struct{ f float64 }

func (s fixedSrc) Intn(int) int     { return 0 }
func (s fixedSrc) Float64() float64 { return s.f }

func charDef(id, class string, base stats.Block, skills ...*skill.Definition) *character.Definition {
	return &character.Definition{
		ID:        id,
		Name:      id,
		Class:     class,
		Rarity:    stats.Rare,
		Level:     1,
		Stars:     1,
		BaseStats: base,
		Skills:    skills,
	}
}

func newCombatant(id string, side combat.Side, base stats.Block, skills ...*skill.Definition) *combat.Combatant {
	return combat.New(charDef(id, "Warrior", base, skills...), side)
}

func active(name string, eff skill.Effect, cost float64, cooldown int) *skill.Definition {
	return &skill.Definition{Name: name, Kind: skill.KindActive, Effect: eff, EnergyCost: cost, Cooldown: cooldown}
}

func passive(name string, hook skill.PassiveHook) *skill.Definition {
	return &skill.Definition{Name: name, Kind: skill.KindPassive, Effect: hook}
}

// basicOnly always defers to the basic attack.
var basicOnly = combat.SelectorFunc(func(*combat.Combatant, []*combat.Combatant, []*combat.Combatant) *skill.Instance {
	return nil
})

// firstReady casts the first ready, affordable active skill.
var firstReady = combat.SelectorFunc(func(actor *combat.Combatant, _, _ []*combat.Combatant) *skill.Instance {
	for _, s := range actor.Actives() {
		if s.Ready() && s.Affordable(actor.Energy) {
			return s
		}
	}
	return nil
})

func battleConfig() config.BattleConfig {
	return config.BattleConfig{MaxRounds: 80, EnergyPerTurn: 10, TeamSize: 5}
}

func newEngine(src dice.Source, sel combat.Selector) *combat.Engine {
	return combat.NewEngine(battleConfig(), sel, sel, src, zap.NewNop())
}
