package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/dice"
)

// GlobalScope is the reserved key for shared scripts loaded via LoadGlobal.
// CallHook falls back to this VM when no scope VM is found.
const GlobalScope = "__global__"

// AgentInfo is a snapshot of an actor's state passed to Lua callbacks.
type AgentInfo struct {
	UID         string
	Name        string
	HP          int
	MaxHP       int
	X, Y        int
	SightRadius int
	Conditions  []string
}

// Manager owns one sandboxed LState per scope and exposes hook dispatch.
// Scopes are behavior domain IDs.
//
// Manager is safe for concurrent CallHook after all Load calls complete.
// Each LState is single-threaded; the mutex serializes calls into the VMs.
type Manager struct {
	mu     sync.Mutex
	states map[string]*lua.LState
	limit  int
	roller *dice.Roller
	logger *zap.Logger

	// Injected after construction. nil = engine.* lookups return nil.
	GetAgent  func(uid string) *AgentInfo
	GetTarget func(uid string) *AgentInfo
}

// NewManager creates a Manager. instLimit <= 0 uses DefaultInstructionLimit.
//
// Precondition: roller and logger must be non-nil.
// Postcondition: Returns a non-nil Manager with no loaded scopes.
func NewManager(roller *dice.Roller, logger *zap.Logger, instLimit int) *Manager {
	if roller == nil {
		panic("scripting.NewManager: roller must not be nil")
	}
	if logger == nil {
		panic("scripting.NewManager: logger must not be nil")
	}
	if instLimit <= 0 {
		instLimit = DefaultInstructionLimit
	}
	return &Manager{
		states: make(map[string]*lua.LState),
		limit:  instLimit,
		roller: roller,
		logger: logger,
	}
}

// InstructionLimit returns the per-call opcode budget.
func (m *Manager) InstructionLimit() int { return m.limit }

// Load creates a sandboxed VM for scope, registers all engine.* modules,
// then executes every *.lua file in scriptDir in lexicographic order.
//
// Precondition: scope must be non-empty; scriptDir must be a readable directory.
// Postcondition: Scope VM is registered, replacing any previous one; returns
// error on Lua load failure.
func (m *Manager) Load(scope, scriptDir string) error {
	return m.loadInto(scope, scriptDir)
}

// LoadGlobal creates the GlobalScope VM for shared scripts accessible
// as a CallHook fallback from any scope.
//
// Precondition: scriptDir must be a readable directory.
// Postcondition: Global VM is registered; returns error on Lua load failure.
func (m *Manager) LoadGlobal(scriptDir string) error {
	return m.loadInto(GlobalScope, scriptDir)
}

// LoadString creates a VM for scope from a single chunk of source.
//
// Postcondition: Scope VM is registered; returns error on Lua load failure.
func (m *Manager) LoadString(scope, source string) error {
	L := NewSandboxedState()
	m.RegisterModules(L)
	if err := withBudget(L, m.limit, func() error { return L.DoString(source) }); err != nil {
		L.Close()
		return fmt.Errorf("scripting: loading source for %q: %w", scope, err)
	}
	m.install(scope, L)
	return nil
}

func (m *Manager) loadInto(key, scriptDir string) error {
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q for %q: %w", scriptDir, key, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	L := NewSandboxedState()
	m.RegisterModules(L)
	for _, path := range luaFiles {
		if err := withBudget(L, m.limit, func() error { return L.DoFile(path) }); err != nil {
			L.Close()
			return fmt.Errorf("scripting: loading %q for %q: %w", path, key, err)
		}
	}

	m.install(key, L)
	m.logger.Debug("scripts loaded",
		zap.String("scope", key),
		zap.Int("files", len(luaFiles)),
	)
	return nil
}

func (m *Manager) install(key string, L *lua.LState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.states[key]; ok {
		old.Close()
	}
	m.states[key] = L
}

// HasScope reports whether a VM is registered for scope.
func (m *Manager) HasScope(scope string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.states[scope]
	return ok
}

// CallHook calls the named Lua global function in scope's VM. If the scope has
// no VM, the GlobalScope VM is tried as a fallback. Returns (LNil, nil) if the
// hook is not defined or no VM exists. Lua runtime errors, including an
// exhausted instruction budget, are logged at Warn level and never propagated.
//
// Precondition: args must be valid lua.LValue instances.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(scope, hook string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	L, ok := m.states[scope]
	if !ok {
		L = m.states[GlobalScope]
	}
	if L == nil {
		m.logger.Debug("scripting: no VM for scope",
			zap.String("scope", scope),
			zap.String("hook", hook),
		)
		return lua.LNil, nil
	}

	fn := L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, nil
	}

	err := withBudget(L, m.limit, func() error {
		return L.CallByParam(lua.P{
			Fn:      fn,
			NRet:    1,
			Protect: true,
		}, args...)
	})
	if err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("scope", scope),
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, nil
	}

	ret := L.Get(-1)
	L.Pop(1)
	return ret, nil
}

// Close releases every VM.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, L := range m.states {
		L.Close()
		delete(m.states, key)
	}
}
