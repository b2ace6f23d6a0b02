package combat

import (
	"math"

	"github.com/cory-johannsen/skirmish/internal/game/character"
	"github.com/cory-johannsen/skirmish/internal/game/condition"
	"github.com/cory-johannsen/skirmish/internal/game/skill"
	"github.com/cory-johannsen/skirmish/internal/game/stats"
)

// MaxEnergy is the energy ceiling for every combatant.
const MaxEnergy = 100.0

// Combatant is the battle-scoped state of one character.
//
// Invariants: 0 <= hp <= max_hp; alive iff hp > 0; 0 <= Energy <= MaxEnergy;
// Stunned >= 0; Taunted >= 0.
type Combatant struct {
	ID    string
	Name  string
	Class string
	Side  Side

	// Stats is the live stat snapshot. hp and max_hp live here.
	Stats  stats.Block
	Energy float64

	// Conditions holds timed buffs and debuffs keyed by the applying skill's name.
	Conditions *condition.ActiveSet
	// Stunned is the number of the combatant's own turns still to be skipped.
	Stunned int
	// Taunted is the number of turns opposing default targeting is forced onto this combatant.
	Taunted int
	// FirstStrikeUsed is set once the combatant has completed a turn.
	FirstStrikeUsed bool

	actives  []*skill.Instance
	passives []Passive
	basic    *skill.Instance
	alive    bool
}

// New creates a fresh combatant from def. Stats are derived once and copied;
// skills get independent cooldown state.
//
// Precondition: def must not be nil.
// Postcondition: the combatant is alive iff its derived hp > 0; def is not mutated.
func New(def *character.Definition, side Side) *Combatant {
	c := &Combatant{
		ID:         def.ID,
		Name:       def.DisplayName(),
		Class:      def.Class,
		Side:       side,
		Stats:      def.DeriveStats(),
		Conditions: condition.NewActiveSet(),
		basic:      skill.NewInstance(skill.BasicAttack()),
	}
	c.Energy = clamp(c.Stats.Get(stats.Energy), 0, MaxEnergy)
	for _, s := range def.Skills {
		switch {
		case s.IsActive():
			c.actives = append(c.actives, skill.NewInstance(s))
		default:
			if hook, ok := s.Effect.(skill.PassiveHook); ok {
				c.passives = append(c.passives, Passive{Name: s.Name, Hook: hook})
			}
		}
	}
	c.alive = c.HP() > 0
	return c
}

// IsAlive reports whether the combatant can still act and be targeted.
func (c *Combatant) IsAlive() bool { return c.alive }

// HP returns current hit points.
func (c *Combatant) HP() float64 { return c.Stats[stats.HP] }

// MaxHP returns the hit point ceiling.
func (c *Combatant) MaxHP() float64 { return c.Stats[stats.MaxHP] }

// HPFraction returns hp/max_hp, or 0 when max_hp is 0.
func (c *Combatant) HPFraction() float64 {
	if c.MaxHP() <= 0 {
		return 0
	}
	return c.HP() / c.MaxHP()
}

// Actives returns the combatant's castable skills in definition order.
func (c *Combatant) Actives() []*skill.Instance { return c.actives }

// Passive is a named passive hook held by a combatant.
type Passive struct {
	Name string
	Hook skill.PassiveHook
}

// Passives returns the combatant's passive hooks in definition order.
func (c *Combatant) Passives() []Passive { return c.passives }

// BasicAttack returns the combatant's fallback attack.
func (c *Combatant) BasicAttack() *skill.Instance { return c.basic }

// EffectiveStat returns the snapshot value for name adjusted by buffs, then debuffs.
// Missing stats fall back to their documented defaults.
func (c *Combatant) EffectiveStat(name string) float64 {
	return condition.Effective(c.Conditions, name, c.Stats.Get(name))
}

// TakeDamage subtracts amount from hp, flooring at zero.
//
// Precondition: amount >= 0.
// Postcondition: hp >= 0; IsAlive() is false iff hp == 0.
func (c *Combatant) TakeDamage(amount int) {
	hp := c.HP() - float64(amount)
	if hp <= 0 {
		hp = 0
		c.alive = false
	}
	c.Stats[stats.HP] = hp
}

// Heal adds amount to hp, capped at max_hp. A positive result revives the combatant.
// Non-positive amounts are ignored.
//
// Postcondition: 0 <= hp <= max_hp.
func (c *Combatant) Heal(amount int) {
	if amount <= 0 {
		return
	}
	c.Stats[stats.HP] = math.Min(c.HP()+float64(amount), c.MaxHP())
	if c.HP() > 0 {
		c.alive = true
	}
}

// Tick advances cooldowns, stun, taunt and condition durations by one turn.
//
// Postcondition: Stunned >= 0; Taunted >= 0; no condition has zero turns remaining.
func (c *Combatant) Tick() []condition.Modifier {
	for _, s := range c.actives {
		s.Tick()
	}
	if c.Stunned > 0 {
		c.Stunned--
	}
	if c.Taunted > 0 {
		c.Taunted--
	}
	return c.Conditions.Tick()
}

// ModStat permanently changes the snapshot value of stat: multiplied by
// (1+amount) when isPercent, otherwise increased by amount. hp stays within [0, max_hp].
func (c *Combatant) ModStat(stat string, amount float64, isPercent bool) {
	v := c.Stats.Get(stat)
	if isPercent {
		v *= 1 + amount
	} else {
		v += amount
	}
	c.Stats[stat] = v
	if stat == stats.HP || stat == stats.MaxHP {
		c.Stats[stats.HP] = clamp(c.HP(), 0, c.MaxHP())
		c.alive = c.HP() > 0
	}
}

// GainEnergy adds amount, capped at MaxEnergy, and returns the energy actually gained.
func (c *Combatant) GainEnergy(amount float64) float64 {
	before := c.Energy
	c.Energy = clamp(c.Energy+amount, 0, MaxEnergy)
	return c.Energy - before
}

// SpendEnergy deducts cost when affordable.
//
// Postcondition: returns false and leaves Energy unchanged when cost > Energy.
func (c *Combatant) SpendEnergy(cost float64) bool {
	if cost > c.Energy {
		return false
	}
	c.Energy = clamp(c.Energy-cost, 0, MaxEnergy)
	return true
}

// DrainEnergy removes up to amount and returns how much was removed.
func (c *Combatant) DrainEnergy(amount float64) float64 {
	taken := math.Min(c.Energy, math.Max(amount, 0))
	c.Energy -= taken
	return taken
}

// Snapshot is the value copy of a combatant reported in battle results.
type Snapshot struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Class   string   `json:"class"`
	Side    Side     `json:"side"`
	HP      float64  `json:"hp"`
	MaxHP   float64  `json:"max_hp"`
	Energy  float64  `json:"energy"`
	Alive   bool     `json:"alive"`
	Stunned int      `json:"stunned,omitempty"`
	Taunted int      `json:"taunted,omitempty"`
	Buffs   []string `json:"buffs,omitempty"`
	Debuffs []string `json:"debuffs,omitempty"`
}

// Snapshot returns the combatant's current state as plain data.
func (c *Combatant) Snapshot() Snapshot {
	return Snapshot{
		ID:      c.ID,
		Name:    c.Name,
		Class:   c.Class,
		Side:    c.Side,
		HP:      c.HP(),
		MaxHP:   c.MaxHP(),
		Energy:  c.Energy,
		Alive:   c.alive,
		Stunned: c.Stunned,
		Taunted: c.Taunted,
		Buffs:   condition.Sources(c.Conditions, condition.Buff),
		Debuffs: condition.Sources(c.Conditions, condition.Debuff),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
