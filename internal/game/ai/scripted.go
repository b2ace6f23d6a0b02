package ai

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/skill"
)

// ScriptVM is the scripting VM name AI scripts are loaded under.
const ScriptVM = "ai"

// ScriptCaller is the interface required by Scripted to consult a Lua hook.
type ScriptCaller interface {
	// CallHook calls a named Lua function in the named VM.
	// Returns (LNil, nil) if the function is not defined.
	CallHook(vm, hook string, args ...lua.LValue) (lua.LValue, error)
}

// Scripted asks a Lua hook for a skill name and falls back to another
// selector when the hook declines, errors, or names a skill that cannot be
// cast this turn.
//
// Invariant: caller, fallback and logger are non-nil.
type Scripted struct {
	caller   ScriptCaller
	vm       string
	hook     string
	fallback combat.Selector
	logger   *zap.Logger
}

// NewScripted constructs a Scripted selector.
//
// Precondition: caller, fallback and logger must not be nil; hook must be non-empty.
func NewScripted(caller ScriptCaller, vm, hook string, fallback combat.Selector, logger *zap.Logger) *Scripted {
	if caller == nil {
		panic("ai.NewScripted: caller must not be nil")
	}
	if fallback == nil {
		panic("ai.NewScripted: fallback must not be nil")
	}
	if logger == nil {
		panic("ai.NewScripted: logger must not be nil")
	}
	if hook == "" {
		panic("ai.NewScripted: hook must not be empty")
	}
	return &Scripted{caller: caller, vm: vm, hook: hook, fallback: fallback, logger: logger}
}

// Choose implements combat.Selector.
//
// Postcondition: a skill named by the hook is returned only if it is one of
// actor's actives and is ready and affordable.
func (s *Scripted) Choose(actor *combat.Combatant, allies, enemies []*combat.Combatant) *skill.Instance {
	ws := BuildWorldState(actor, allies, enemies)
	ret, err := s.caller.CallHook(s.vm, s.hook, ws.Table())
	if err != nil {
		s.logger.Warn("ai: script hook failed", zap.String("hook", s.hook), zap.String("actor", actor.Name), zap.Error(err))
		return s.fallback.Choose(actor, allies, enemies)
	}
	name, ok := ret.(lua.LString)
	if !ok {
		return s.fallback.Choose(actor, allies, enemies)
	}
	for _, inst := range actor.Actives() {
		if inst.Def.Name == string(name) && inst.Ready() && inst.Affordable(actor.Energy) {
			return inst
		}
	}
	s.logger.Debug("ai: script chose an unusable skill",
		zap.String("actor", actor.Name),
		zap.String("skill", string(name)),
	)
	return s.fallback.Choose(actor, allies, enemies)
}
