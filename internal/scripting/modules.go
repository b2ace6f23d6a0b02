package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules registers the engine.* Lua tables into L. Scripts loaded
// into the VM named name log through engine.log with a "vm" field.
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine and engine.log globals are defined in L.
func (m *Manager) RegisterModules(L *lua.LState, name string) {
	engine := L.NewTable()
	L.SetGlobal("engine", engine)

	logger := m.logger.With(zap.String("vm", name))
	logTbl := L.NewTable()
	for level, fn := range map[string]func(string, ...zap.Field){
		"debug": logger.Debug,
		"info":  logger.Info,
		"warn":  logger.Warn,
	} {
		fn := fn
		L.SetField(logTbl, level, L.NewFunction(func(L *lua.LState) int {
			fn("lua: " + L.CheckString(1))
			return 0
		}))
	}
	L.SetField(engine, "log", logTbl)
}
