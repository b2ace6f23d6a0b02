package ai_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/skirmish/internal/game/ai"
	"github.com/cory-johannsen/skirmish/internal/game/character"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/skill"
	"github.com/cory-johannsen/skirmish/internal/game/stats"
)

func active(name string, eff skill.Effect, cost float64, cooldown int) *skill.Definition {
	return &skill.Definition{Name: name, Kind: skill.KindActive, Effect: eff, EnergyCost: cost, Cooldown: cooldown}
}

func combatant(energy float64, skills ...*skill.Definition) *combat.Combatant {
	def := &character.Definition{
		ID:        "unit",
		Name:      "Unit",
		Class:     "Fighter",
		Rarity:    stats.Rare,
		Level:     1,
		Stars:     1,
		BaseStats: stats.Block{stats.HP: 1000, stats.Energy: energy},
		Skills:    skills,
	}
	return combat.New(def, combat.SideEnemy)
}

func chosenName(s *skill.Instance) string {
	if s == nil {
		return ""
	}
	return s.Def.Name
}

func TestHeuristic_PrefersAffordableUltimate(t *testing.T) {
	c := combatant(100,
		active("Big Hit", skill.Damage{Mult: 3}, 0, 0),
		active("Ruyi", skill.Ultimate{Mult: 6, Stun: 2}, 100, 6),
	)
	assert.Equal(t, "Ruyi", chosenName(ai.Heuristic{}.Choose(c, nil, nil)))
}

func TestHeuristic_SkipsUnaffordableOrCoolingUltimate(t *testing.T) {
	c := combatant(50,
		active("Small Hit", skill.Damage{Mult: 1.2}, 0, 0),
		active("Big Hit", skill.Damage{Mult: 2.5}, 40, 0),
		active("Ruyi", skill.Ultimate{Mult: 6}, 100, 6),
	)
	assert.Equal(t, "Big Hit", chosenName(ai.Heuristic{}.Choose(c, nil, nil)))

	c = combatant(100, active("Ruyi", skill.Ultimate{Mult: 6}, 100, 6), active("Jab", skill.Damage{Mult: 1}, 0, 0))
	c.Actives()[0].Trigger()
	assert.Equal(t, "Jab", chosenName(ai.Heuristic{}.Choose(c, nil, nil)))
}

func TestHeuristic_HighestMultDamageFirstOnTies(t *testing.T) {
	c := combatant(0,
		active("Heal", skill.Heal{Mult: 5}, 0, 0),
		active("A", skill.Damage{Mult: 1.5}, 0, 0),
		active("B", skill.Damage{Mult: 2.0}, 0, 0),
		active("C", skill.Damage{Mult: 2.0}, 0, 0),
	)
	assert.Equal(t, "B", chosenName(ai.Heuristic{}.Choose(c, nil, nil)))
}

func TestHeuristic_FallsBackToFirstUsableActive(t *testing.T) {
	c := combatant(0,
		active("Rally", skill.Buff{Stat: stats.Attack, Amount: 0.2, Turns: 2, Target: skill.TargetAllyAll, IsPercent: true}, 30, 0),
		active("Mend", skill.Heal{Mult: 1.5}, 0, 0),
	)
	assert.Equal(t, "Mend", chosenName(ai.Heuristic{}.Choose(c, nil, nil)))
}

func TestHeuristic_NilWhenNothingUsable(t *testing.T) {
	c := combatant(0, active("Nuke", skill.Damage{Mult: 4}, 80, 0))
	assert.Nil(t, ai.Heuristic{}.Choose(c, nil, nil))
	assert.Nil(t, ai.Heuristic{}.Choose(combatant(0), nil, nil))
}

func TestFirstReady_DefinitionOrder(t *testing.T) {
	c := combatant(20,
		active("Costly", skill.Damage{Mult: 3}, 50, 0),
		active("Rally", skill.Buff{Stat: stats.Speed, Amount: 0.1, Turns: 1, Target: skill.TargetSelf, IsPercent: true}, 10, 1),
		active("Jab", skill.Damage{Mult: 1}, 0, 0),
	)
	assert.Equal(t, "Rally", chosenName(ai.FirstReady{}.Choose(c, nil, nil)))

	c.Actives()[1].Trigger()
	assert.Equal(t, "Jab", chosenName(ai.FirstReady{}.Choose(c, nil, nil)))
	assert.Nil(t, ai.FirstReady{}.Choose(combatant(0), nil, nil))
}

func TestProperty_SelectorsOnlyReturnUsableSkills(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 6).Draw(rt, "skills")
		var defs []*skill.Definition
		for i := 0; i < n; i++ {
			var eff skill.Effect = skill.Damage{Mult: rapid.Float64Range(0.5, 5).Draw(rt, "mult")}
			if rapid.Bool().Draw(rt, "ultimate") {
				eff = skill.Ultimate{Mult: 2}
			}
			defs = append(defs, active(
				rapid.StringMatching(`[A-Z][a-z]{2,6}`).Draw(rt, "name"),
				eff,
				float64(rapid.IntRange(0, 100).Draw(rt, "cost")),
				rapid.IntRange(0, 3).Draw(rt, "cooldown"),
			))
		}
		c := combatant(float64(rapid.IntRange(0, 100).Draw(rt, "energy")), defs...)
		for _, s := range c.Actives() {
			if rapid.Bool().Draw(rt, "cooling") {
				s.Trigger()
			}
		}
		for _, sel := range []combat.Selector{ai.Heuristic{}, ai.FirstReady{}} {
			got := sel.Choose(c, nil, nil)
			if got == nil {
				continue
			}
			require.True(rt, got.Ready(), "%s not ready", got.Def.Name)
			require.True(rt, got.Affordable(c.Energy), "%s not affordable", got.Def.Name)
		}
	})
}
