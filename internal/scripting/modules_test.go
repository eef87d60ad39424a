package scripting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"

	"github.com/cory-johannsen/delve/internal/scripting"
)

func TestEngineAgent_ReadsInjectedState(t *testing.T) {
	mgr, _ := newTestManager(t, 0)
	mgr.GetAgent = func(uid string) *scripting.AgentInfo {
		if uid != "rat-1" {
			return nil
		}
		return &scripting.AgentInfo{UID: uid, Name: "Rat", HP: 2, MaxHP: 9, X: 3, Y: 4, SightRadius: 6, Conditions: []string{"burning"}}
	}
	require.NoError(t, mgr.LoadString("s", `
		function wounded(uid)
			local a = engine.agent(uid)
			if a == nil then return false end
			return a.hp * 3 <= a.max_hp
		end
		function describe(uid)
			local a = engine.agent(uid)
			return a.name .. "@" .. a.x .. "," .. a.y .. ":" .. a.conditions[1] .. ":" .. a.sight
		end
	`))

	ret, err := mgr.CallHook("s", "wounded", lua.LString("rat-1"))
	require.NoError(t, err)
	assert.Equal(t, lua.LTrue, ret)

	ret, err = mgr.CallHook("s", "wounded", lua.LString("ghost"))
	require.NoError(t, err)
	assert.Equal(t, lua.LFalse, ret)

	ret, _ = mgr.CallHook("s", "describe", lua.LString("rat-1"))
	assert.Equal(t, lua.LString("Rat@3,4:burning:6"), ret)
}

func TestEngineTarget_NilWithoutCallback(t *testing.T) {
	mgr, _ := newTestManager(t, 0)
	require.NoError(t, mgr.LoadString("s", `function has_target(uid) return engine.target(uid) ~= nil end`))
	ret, err := mgr.CallHook("s", "has_target", lua.LString("rat-1"))
	require.NoError(t, err)
	assert.Equal(t, lua.LFalse, ret)

	mgr.GetTarget = func(uid string) *scripting.AgentInfo { return &scripting.AgentInfo{UID: "player", HP: 10, MaxHP: 10} }
	ret, _ = mgr.CallHook("s", "has_target", lua.LString("rat-1"))
	assert.Equal(t, lua.LTrue, ret)
}

func TestEngineRoll(t *testing.T) {
	mgr, logs := newTestManager(t, 0)
	require.NoError(t, mgr.LoadString("s", `
		function roll_d6() return engine.roll("1d6") end
		function roll_bad() return engine.roll("banana") end
	`))
	for range 20 {
		ret, err := mgr.CallHook("s", "roll_d6")
		require.NoError(t, err)
		n, ok := ret.(lua.LNumber)
		require.True(t, ok)
		assert.GreaterOrEqual(t, int(n), 1)
		assert.LessOrEqual(t, int(n), 6)
	}
	assert.Equal(t, 20, logs.FilterMessage("dice roll").Len())

	ret, err := mgr.CallHook("s", "roll_bad")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret, "a bad expression raises a Lua error")
}

func TestEngineLog(t *testing.T) {
	mgr, logs := newTestManager(t, 0)
	require.NoError(t, mgr.LoadString("s", `function speak() engine.log("hello") end`))
	_, err := mgr.CallHook("s", "speak")
	require.NoError(t, err)
	entries := logs.FilterMessage("lua").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "hello", entries[0].ContextMap()["msg"])
}
