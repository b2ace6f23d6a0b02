package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/condition"
	"github.com/cory-johannsen/skirmish/internal/game/skill"
	"github.com/cory-johannsen/skirmish/internal/game/stats"
)

func TestNew_CopiesDerivedStats(t *testing.T) {
	def := charDef("a", "Fighter", stats.Block{stats.HP: 500, stats.Energy: 140},
		active("Strike", skill.Damage{Mult: 1}, 0, 2),
		passive("Ambush", skill.PassiveHook{FirstStrikeBonus: 0.4}),
	)
	c := combat.New(def, combat.SidePlayer)

	assert.True(t, c.IsAlive())
	assert.Equal(t, 500.0, c.HP())
	assert.Equal(t, 500.0, c.MaxHP())
	assert.Equal(t, combat.MaxEnergy, c.Energy, "starting energy clamps to the ceiling")
	assert.Equal(t, stats.Fallbacks[stats.Attack], c.Stats[stats.Attack])
	require.Len(t, c.Actives(), 1)
	require.Len(t, c.Passives(), 1)
	assert.Equal(t, "Ambush", c.Passives()[0].Name)

	c.TakeDamage(100)
	assert.Equal(t, 500.0, def.DeriveStats()[stats.HP], "definition unaffected")
}

func TestNew_SkillInstancesAreIndependent(t *testing.T) {
	def := charDef("a", "Fighter", nil, active("Strike", skill.Damage{Mult: 1}, 0, 2))
	c1 := combat.New(def, combat.SidePlayer)
	c2 := combat.New(def, combat.SidePlayer)
	c1.Actives()[0].Trigger()
	assert.True(t, c2.Actives()[0].Ready())
}

func TestTakeDamage_ClampsAndKills(t *testing.T) {
	c := newCombatant("a", combat.SidePlayer, stats.Block{stats.HP: 100})
	c.TakeDamage(40)
	assert.Equal(t, 60.0, c.HP())
	assert.True(t, c.IsAlive())

	c.TakeDamage(1000)
	assert.Equal(t, 0.0, c.HP())
	assert.False(t, c.IsAlive())
}

func TestHeal_CapsAndRevives(t *testing.T) {
	c := newCombatant("a", combat.SidePlayer, stats.Block{stats.HP: 100})
	c.TakeDamage(30)
	c.Heal(500)
	assert.Equal(t, 100.0, c.HP())

	c.TakeDamage(100)
	require.False(t, c.IsAlive())
	c.Heal(10)
	assert.True(t, c.IsAlive(), "heal revives a fallen combatant")
	assert.Equal(t, 10.0, c.HP())
}

func TestHeal_NonPositiveAmountIgnored(t *testing.T) {
	c := newCombatant("a", combat.SidePlayer, stats.Block{stats.HP: 100})
	c.TakeDamage(60)
	c.Heal(-500)
	assert.Equal(t, 40.0, c.HP())
	assert.True(t, c.IsAlive())

	c.TakeDamage(40)
	c.Heal(0)
	assert.False(t, c.IsAlive())
}

func TestTick_CountersFloorAtZero(t *testing.T) {
	c := newCombatant("a", combat.SidePlayer, nil, active("Strike", skill.Damage{Mult: 1}, 0, 1))
	c.Stunned = 1
	c.Taunted = 1
	c.Actives()[0].Trigger()

	c.Tick()
	c.Tick()
	assert.Equal(t, 0, c.Stunned)
	assert.Equal(t, 0, c.Taunted)
	assert.True(t, c.Actives()[0].Ready())
}

func TestTick_ExpiresConditions(t *testing.T) {
	c := newCombatant("a", combat.SidePlayer, stats.Block{stats.Speed: 100})
	require.NoError(t, c.Conditions.Apply(condition.Modifier{Source: "Dash", Kind: condition.Buff, Stat: stats.Speed, Amount: 0.3, IsPercent: true}, 1))
	assert.InDelta(t, 130.0, c.EffectiveStat(stats.Speed), 1e-9)

	expired := c.Tick()
	require.Len(t, expired, 1)
	assert.Equal(t, 100.0, c.EffectiveStat(stats.Speed))
}

func TestEffectiveStat_BuffThenDebuff(t *testing.T) {
	c := newCombatant("a", combat.SidePlayer, stats.Block{stats.Defense: 100})
	require.NoError(t, c.Conditions.Apply(condition.Modifier{Source: "Sunder", Kind: condition.Debuff, Stat: stats.Defense, Amount: 0.5, IsPercent: true}, 2))
	require.NoError(t, c.Conditions.Apply(condition.Modifier{Source: "Guard", Kind: condition.Buff, Stat: stats.Defense, Amount: 1.0, IsPercent: true}, 2))
	assert.InDelta(t, 100.0, c.EffectiveStat(stats.Defense), 1e-9)
}

func TestModStat(t *testing.T) {
	c := newCombatant("a", combat.SidePlayer, stats.Block{stats.Attack: 100, stats.HP: 100})
	c.ModStat(stats.Attack, 0.1, true)
	assert.InDelta(t, 110.0, c.Stats[stats.Attack], 1e-9)
	c.ModStat(stats.Attack, 5, false)
	assert.InDelta(t, 115.0, c.Stats[stats.Attack], 1e-9)

	c.ModStat(stats.HP, 50, false)
	assert.Equal(t, 100.0, c.HP(), "hp stays capped at max_hp")
}

func TestEnergyHelpers(t *testing.T) {
	c := newCombatant("a", combat.SidePlayer, stats.Block{stats.Energy: 90})
	assert.Equal(t, 10.0, c.GainEnergy(25))
	assert.Equal(t, 100.0, c.Energy)

	assert.False(t, c.SpendEnergy(101))
	assert.True(t, c.SpendEnergy(60))
	assert.Equal(t, 40.0, c.Energy)

	assert.Equal(t, 40.0, c.DrainEnergy(70))
	assert.Equal(t, 0.0, c.Energy)
	assert.Equal(t, 0.0, c.DrainEnergy(-5))
}

func TestSnapshot(t *testing.T) {
	c := newCombatant("a", combat.SideEnemy, stats.Block{stats.HP: 100})
	require.NoError(t, c.Conditions.Apply(condition.Modifier{Source: "Hex", Kind: condition.Debuff, Stat: stats.Dodge, Amount: 0.3, IsPercent: true}, 2))
	c.TakeDamage(25)

	snap := c.Snapshot()
	assert.Equal(t, combat.SideEnemy, snap.Side)
	assert.Equal(t, 75.0, snap.HP)
	assert.True(t, snap.Alive)
	assert.Equal(t, []string{"Hex"}, snap.Debuffs)
	assert.Empty(t, snap.Buffs)
}
