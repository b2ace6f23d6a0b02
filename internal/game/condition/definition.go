// Package condition tracks timed stat modifiers (buffs and debuffs) on a combatant.
package condition

import "fmt"

// Kind separates beneficial modifiers from harmful ones.
type Kind int

const (
	Buff Kind = iota
	Debuff
)

// String returns "buff" or "debuff".
func (k Kind) String() string {
	if k == Debuff {
		return "debuff"
	}
	return "buff"
}

// Modifier is a single stat adjustment keyed by the skill that applied it.
type Modifier struct {
	// Source is the applying skill's name; re-applying the same source refreshes instead of stacking.
	Source    string
	Kind      Kind
	Stat      string
	Amount    float64
	IsPercent bool
}

// Validate checks that the modifier can be applied.
func (m Modifier) Validate() error {
	if m.Source == "" {
		return fmt.Errorf("condition: source must not be empty")
	}
	if m.Stat == "" {
		return fmt.Errorf("condition %q: stat must not be empty", m.Source)
	}
	if m.Kind != Buff && m.Kind != Debuff {
		return fmt.Errorf("condition %q: unknown kind %d", m.Source, m.Kind)
	}
	return nil
}

// Apply returns base adjusted by m: a percent buff multiplies by (1+Amount),
// a flat buff adds Amount, and debuffs do the opposite.
func (m Modifier) Apply(base float64) float64 {
	switch {
	case m.Kind == Buff && m.IsPercent:
		return base * (1 + m.Amount)
	case m.Kind == Buff:
		return base + m.Amount
	case m.IsPercent:
		return base * (1 - m.Amount)
	default:
		return base - m.Amount
	}
}
