package ai

import lua "github.com/yuin/gopher-lua"

// CombatantState captures a combatant's decision-relevant state at selection time.
type CombatantState struct {
	ID      string
	Name    string
	Class   string
	HP      float64
	MaxHP   float64
	Energy  float64
	Stunned int
	Taunted int
	Alive   bool
}

// HPPercent returns current HP as a percentage of MaxHP; 0 if MaxHP == 0.
func (c *CombatantState) HPPercent() float64 {
	if c.MaxHP <= 0 {
		return 0
	}
	return c.HP / c.MaxHP * 100
}

// SkillState describes one of the actor's active skills.
type SkillState struct {
	Name       string
	Action     string
	Cost       float64
	Cooldown   int
	Remaining  int
	Mult       float64
	AoE        bool
	Ready      bool
	Affordable bool
}

// WorldState is the snapshot handed to a scripted selector for one turn.
//
// Invariant: Actor must not be nil.
type WorldState struct {
	Actor   *CombatantState
	Skills  []*SkillState
	Allies  []*CombatantState
	Enemies []*CombatantState
}

// LivingAllies returns the number of living allies, the actor included.
func (ws *WorldState) LivingAllies() int { return countLiving(ws.Allies) }

// LivingEnemies returns the number of living enemies.
func (ws *WorldState) LivingEnemies() int { return countLiving(ws.Enemies) }

func countLiving(group []*CombatantState) int {
	n := 0
	for _, c := range group {
		if c.Alive {
			n++
		}
	}
	return n
}

// Table converts ws into the Lua table passed to the selection hook:
//
//	{ name, class, energy, hp, max_hp, hp_pct,
//	  skills = { {name, action, cost, cooldown, remaining, mult, aoe, ready, affordable}, ... },
//	  allies = { {name, class, hp, max_hp, hp_pct, energy, alive, stunned, taunted}, ... },
//	  enemies = { ... },
//	  living_allies, living_enemies }
//
// Postcondition: the returned table is not bound to any LState.
func (ws *WorldState) Table() *lua.LTable {
	t := combatantTable(ws.Actor)

	skills := &lua.LTable{}
	for _, s := range ws.Skills {
		st := &lua.LTable{}
		st.RawSetString("name", lua.LString(s.Name))
		st.RawSetString("action", lua.LString(s.Action))
		st.RawSetString("cost", lua.LNumber(s.Cost))
		st.RawSetString("cooldown", lua.LNumber(s.Cooldown))
		st.RawSetString("remaining", lua.LNumber(s.Remaining))
		st.RawSetString("mult", lua.LNumber(s.Mult))
		st.RawSetString("aoe", lua.LBool(s.AoE))
		st.RawSetString("ready", lua.LBool(s.Ready))
		st.RawSetString("affordable", lua.LBool(s.Affordable))
		skills.Append(st)
	}
	t.RawSetString("skills", skills)
	t.RawSetString("allies", groupTable(ws.Allies))
	t.RawSetString("enemies", groupTable(ws.Enemies))
	t.RawSetString("living_allies", lua.LNumber(ws.LivingAllies()))
	t.RawSetString("living_enemies", lua.LNumber(ws.LivingEnemies()))
	return t
}

func combatantTable(c *CombatantState) *lua.LTable {
	t := &lua.LTable{}
	t.RawSetString("name", lua.LString(c.Name))
	t.RawSetString("class", lua.LString(c.Class))
	t.RawSetString("hp", lua.LNumber(c.HP))
	t.RawSetString("max_hp", lua.LNumber(c.MaxHP))
	t.RawSetString("hp_pct", lua.LNumber(c.HPPercent()))
	t.RawSetString("energy", lua.LNumber(c.Energy))
	t.RawSetString("alive", lua.LBool(c.Alive))
	t.RawSetString("stunned", lua.LNumber(c.Stunned))
	t.RawSetString("taunted", lua.LNumber(c.Taunted))
	return t
}

func groupTable(group []*CombatantState) *lua.LTable {
	t := &lua.LTable{}
	for _, c := range group {
		t.Append(combatantTable(c))
	}
	return t
}
