package condition

import "fmt"

// ActiveModifier tracks one applied modifier.
type ActiveModifier struct {
	Modifier
	TurnsRemaining int
}

type key struct {
	kind   Kind
	source string
}

// ActiveSet tracks all modifiers currently applied to one combatant in the
// order they were first applied.
// It is not safe for concurrent use; the caller must serialise access.
type ActiveSet struct {
	entries []*ActiveModifier
}

// NewActiveSet creates an empty ActiveSet.
func NewActiveSet() *ActiveSet {
	return &ActiveSet{}
}

// Apply adds m for turns ticks. Re-applying the same kind and source replaces
// the values and duration but keeps the original position.
//
// Precondition: turns >= 1.
// Postcondition: Has(m.Kind, m.Source) is true and Remaining(m.Kind, m.Source) == turns.
func (s *ActiveSet) Apply(m Modifier, turns int) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if turns < 1 {
		return fmt.Errorf("condition %q: turns must be >= 1, got %d", m.Source, turns)
	}
	if existing := s.find(key{m.Kind, m.Source}); existing != nil {
		existing.Modifier = m
		existing.TurnsRemaining = turns
		return nil
	}
	s.entries = append(s.entries, &ActiveModifier{Modifier: m, TurnsRemaining: turns})
	return nil
}

// Remove deletes the modifier with the given kind and source. Missing entries are a no-op.
//
// Postcondition: Has(kind, source) is false.
func (s *ActiveSet) Remove(kind Kind, source string) {
	k := key{kind, source}
	for i, e := range s.entries {
		if (key{e.Kind, e.Source}) == k {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

// Tick decrements every modifier by one turn and drops those that reach 0.
// A modifier applied for N turns is therefore present for exactly N ticks.
//
// Postcondition: every remaining entry has TurnsRemaining >= 1; the returned
// slice names the expired modifiers in application order.
func (s *ActiveSet) Tick() []Modifier {
	var expired []Modifier
	kept := s.entries[:0]
	for _, e := range s.entries {
		e.TurnsRemaining--
		if e.TurnsRemaining <= 0 {
			expired = append(expired, e.Modifier)
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(s.entries); i++ {
		s.entries[i] = nil
	}
	s.entries = kept
	return expired
}

// Has reports whether the modifier is currently active.
func (s *ActiveSet) Has(kind Kind, source string) bool {
	return s.find(key{kind, source}) != nil
}

// Remaining returns the turns left on the modifier, or 0 if not present.
func (s *ActiveSet) Remaining(kind Kind, source string) int {
	if e := s.find(key{kind, source}); e != nil {
		return e.TurnsRemaining
	}
	return 0
}

// Len returns the number of active modifiers.
func (s *ActiveSet) Len() int { return len(s.entries) }

// All returns a copy of the active modifiers in application order.
func (s *ActiveSet) All() []ActiveModifier {
	out := make([]ActiveModifier, len(s.entries))
	for i, e := range s.entries {
		out[i] = *e
	}
	return out
}

func (s *ActiveSet) find(k key) *ActiveModifier {
	for _, e := range s.entries {
		if (key{e.Kind, e.Source}) == k {
			return e
		}
	}
	return nil
}
