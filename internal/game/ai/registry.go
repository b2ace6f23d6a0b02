package ai

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
)

// Selector names registered by NewRegistry.
const (
	HeuristicName  = "heuristic"
	FirstReadyName = "first_ready"
	ScriptedName   = "scripted"
)

// Registry indexes selectors by name so commands can pick one per side.
//
// Invariant: each name is registered at most once.
type Registry struct {
	selectors map[string]combat.Selector
}

// NewRegistry returns a Registry holding the built-in heuristic and first_ready selectors.
func NewRegistry() *Registry {
	return &Registry{selectors: map[string]combat.Selector{
		HeuristicName:  Heuristic{},
		FirstReadyName: FirstReady{},
	}}
}

// Register stores sel under name.
//
// Precondition: sel must not be nil.
// Postcondition: returns error on name collision.
func (r *Registry) Register(name string, sel combat.Selector) error {
	if sel == nil {
		return fmt.Errorf("ai.Registry: selector %q must not be nil", name)
	}
	if _, exists := r.selectors[name]; exists {
		return fmt.Errorf("ai.Registry: selector %q already registered", name)
	}
	r.selectors[name] = sel
	return nil
}

// SelectorFor returns the selector registered under name, or false if none is.
func (r *Registry) SelectorFor(name string) (combat.Selector, bool) {
	s, ok := r.selectors[name]
	return s, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.selectors))
	for name := range r.selectors {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
