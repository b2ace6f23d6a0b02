package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// vm is one loaded sandbox. LStates are single-threaded, so every use holds mu.
type vm struct {
	mu    sync.Mutex
	L     *lua.LState
	limit int
}

// Manager owns named sandboxed LStates and exposes hook dispatch.
//
// Manager is safe for concurrent use. Calls into the same VM are serialized;
// different VMs run concurrently.
type Manager struct {
	mu     sync.RWMutex
	vms    map[string]*vm
	logger *zap.Logger
}

// NewManager creates a Manager.
//
// Precondition: logger must be non-nil.
// Postcondition: Returns a non-nil Manager with no VMs loaded.
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		panic("scripting.NewManager: logger must not be nil")
	}
	return &Manager{
		vms:    make(map[string]*vm),
		logger: logger,
	}
}

// LoadDir creates a sandboxed VM named name, registers the engine.* modules,
// then executes every *.lua file in scriptDir in lexicographic order. An
// existing VM with the same name is replaced only after the new one loads.
//
// Precondition: name must be non-empty; scriptDir must be a readable directory.
// Postcondition: VM is registered; returns error on read or Lua load failure.
func (m *Manager) LoadDir(name, scriptDir string, instLimit int) error {
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q for %q: %w", scriptDir, name, err)
	}
	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	return m.load(name, instLimit, func(L *lua.LState) error {
		for _, path := range luaFiles {
			if err := L.DoFile(path); err != nil {
				return fmt.Errorf("scripting: loading %q for %q: %w", path, name, err)
			}
		}
		return nil
	})
}

// LoadString creates a sandboxed VM named name from a single chunk of source.
//
// Precondition: name must be non-empty.
// Postcondition: VM is registered; returns error on Lua load failure.
func (m *Manager) LoadString(name, src string, instLimit int) error {
	return m.load(name, instLimit, func(L *lua.LState) error {
		if err := L.DoString(src); err != nil {
			return fmt.Errorf("scripting: loading source for %q: %w", name, err)
		}
		return nil
	})
}

func (m *Manager) load(name string, instLimit int, run func(L *lua.LState) error) error {
	if name == "" {
		return fmt.Errorf("scripting: vm name must not be empty")
	}
	L := NewSandboxedState(instLimit)
	m.RegisterModules(L, name)

	cancel := resetBudget(L, instLimit)
	err := run(L)
	cancel()
	if err != nil {
		L.Close()
		return err
	}

	m.mu.Lock()
	old := m.vms[name]
	m.vms[name] = &vm{L: L, limit: instLimit}
	m.mu.Unlock()

	if old != nil {
		old.mu.Lock()
		old.L.Close()
		old.mu.Unlock()
	}
	m.logger.Debug("scripting: vm loaded", zap.String("vm", name))
	return nil
}

// Has reports whether a VM named name is loaded.
func (m *Manager) Has(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.vms[name]
	return ok
}

// CallHook calls the named Lua global function in the VM called name with a
// fresh instruction budget. Returns (LNil, nil) if the VM or the hook does not
// exist. Lua runtime errors, including an exhausted budget, are logged at Warn
// level and never propagated.
//
// Precondition: args must be valid lua.LValue instances not bound to another VM's functions.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(name, hook string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.RLock()
	v, ok := m.vms[name]
	m.mu.RUnlock()

	if !ok {
		m.logger.Info("scripting: no VM loaded",
			zap.String("vm", name),
			zap.String("hook", hook),
		)
		return lua.LNil, nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	fn := v.L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, nil
	}

	cancel := resetBudget(v.L, v.limit)
	defer cancel()

	if err := v.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("vm", name),
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, nil
	}

	ret := v.L.Get(-1)
	v.L.Pop(1)
	return ret, nil
}

// Close releases every loaded VM.
//
// Postcondition: Has reports false for every name.
func (m *Manager) Close() {
	m.mu.Lock()
	vms := m.vms
	m.vms = make(map[string]*vm)
	m.mu.Unlock()

	for _, v := range vms {
		v.mu.Lock()
		v.L.Close()
		v.mu.Unlock()
	}
}
