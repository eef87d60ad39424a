// Package scripting provides a sandboxed GopherLua execution environment
// for agent behavior preconditions. It has no dependency on game domain
// packages; all game interactions are injected via Manager callback fields.
package scripting

import (
	"context"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit is the maximum number of Lua opcodes allowed per
// hook call or script load when no override is configured.
const DefaultInstructionLimit = 100_000

// strippedGlobals are removed from every sandboxed state.
var strippedGlobals = []string{"dofile", "loadfile", "load", "collectgarbage", "require"}

// opBudget is a context that cancels itself once Done has been polled more
// than its allowance. GopherLua polls Done once per opcode, so the allowance
// is an instruction count.
type opBudget struct {
	context.Context
	cancel context.CancelFunc
	left   int64
}

func (b *opBudget) Done() <-chan struct{} {
	b.left--
	if b.left <= 0 {
		b.cancel()
	}
	return b.Context.Done()
}

// NewSandboxedState creates a GopherLua state with only the base, table,
// string, and math libraries, and without the file and module loaders.
//
// Postcondition: Returns a non-nil LState owned by the caller, who must Close it.
func NewSandboxedState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, open := range []lua.LGFunction{lua.OpenBase, lua.OpenTable, lua.OpenString, lua.OpenMath} {
		open(L)
	}
	for _, name := range strippedGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

// withBudget runs fn against L with a fresh allowance of limit opcodes.
//
// Precondition: limit > 0.
func withBudget(L *lua.LState, limit int, fn func() error) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	L.SetContext(&opBudget{Context: ctx, cancel: cancel, left: int64(limit)})
	defer L.RemoveContext()
	return fn()
}
