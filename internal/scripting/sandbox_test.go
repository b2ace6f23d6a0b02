package scripting_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/skirmish/internal/scripting"
)

func TestNewSandboxedState_Globals(t *testing.T) {
	L := scripting.NewSandboxedState(0)
	require.NotNil(t, L)
	defer L.Close()

	for _, name := range []string{"os", "io", "debug", "channel", "coroutine",
		"dofile", "loadfile", "load", "loadstring", "collectgarbage", "require"} {
		assert.Equal(t, lua.LNil, L.GetGlobal(name), "%s must not be reachable from AI scripts", name)
	}
	for _, name := range []string{"math", "string", "table", "pairs", "ipairs", "pcall", "tostring"} {
		assert.NotEqual(t, lua.LNil, L.GetGlobal(name), "%s should be available", name)
	}
}

func TestNewSandboxedState_Scripts(t *testing.T) {
	tests := []struct {
		name    string
		limit   int
		src     string
		wantErr bool
	}{
		{name: "skill table helpers", src: `
			local skills = {{name = "Cleave", mult = 1.5}, {name = "Strike", mult = 2.0}}
			table.sort(skills, function(a, b) return a.mult > b.mult end)
			assert(skills[1].name == "Strike")`},
		{name: "hp percent math", src: `assert(math.floor(2500 / 10000 * 100) == 25)`},
		{name: "string formatting", src: `assert(string.format("%s:%d", "heal", 3) == "heal:3")`},
		{name: "protected call", src: `assert(pcall(function() error("x") end) == false)`},
		{name: "bounded loop under small limit", limit: 1_000, src: `local n = 0 for i = 1, 10 do n = n + i end`},
		{name: "os is absent", src: `os.exit(1)`, wantErr: true},
		{name: "io is absent", src: `io.open("/etc/passwd")`, wantErr: true},
		{name: "require is absent", src: `require("socket")`, wantErr: true},
		{name: "runaway loop", limit: 10, src: `while true do end`, wantErr: true},
		{name: "runaway loop under default limit", src: `while true do end`, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			L := scripting.NewSandboxedState(tc.limit)
			defer L.Close()
			err := L.DoString(tc.src)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProperty_InstructionLimitAlwaysErrors(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		limit := rapid.IntRange(1, 50).Draw(t, "limit")
		L := scripting.NewSandboxedState(limit)
		defer L.Close()
		if err := L.DoString(`while true do end`); err == nil {
			t.Fatalf("expected error with limit=%d but got nil", limit)
		}
	})
}

func TestProperty_ShortLoopsFitDefaultLimit(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 500).Draw(t, "iterations")
		L := scripting.NewSandboxedState(0)
		defer L.Close()
		src := fmt.Sprintf(`local s = 0 for i = 1, %d do s = s + i end assert(s == %d)`, n, n*(n+1)/2)
		if err := L.DoString(src); err != nil {
			t.Fatalf("loop of %d iterations failed: %v", n, err)
		}
	})
}
