package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules registers the engine table into L:
//
//	engine.agent(uid)   -> actor table or nil
//	engine.target(uid)  -> table for the actor uid is hunting, or nil
//	engine.roll(expr)   -> integer total of a dice expression
//	engine.log(msg)     -> writes msg to the debug log
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetField(engine, "agent", L.NewFunction(func(L *lua.LState) int {
		return m.pushInfo(L, m.GetAgent)
	}))
	L.SetField(engine, "target", L.NewFunction(func(L *lua.LState) int {
		return m.pushInfo(L, m.GetTarget)
	}))
	L.SetField(engine, "roll", L.NewFunction(func(L *lua.LState) int {
		expr := L.CheckString(1)
		res, err := m.roller.RollExpr(expr)
		if err != nil {
			L.RaiseError("engine.roll: %s", err.Error())
			return 0
		}
		L.Push(lua.LNumber(res.Total()))
		return 1
	}))
	L.SetField(engine, "log", L.NewFunction(func(L *lua.LState) int {
		m.logger.Debug("lua", zap.String("msg", L.CheckString(1)))
		return 0
	}))
	L.SetGlobal("engine", engine)
}

func (m *Manager) pushInfo(L *lua.LState, get func(uid string) *AgentInfo) int {
	uid := L.CheckString(1)
	if get == nil {
		L.Push(lua.LNil)
		return 1
	}
	info := get(uid)
	if info == nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(infoTable(L, info))
	return 1
}

func infoTable(L *lua.LState, info *AgentInfo) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "uid", lua.LString(info.UID))
	L.SetField(t, "name", lua.LString(info.Name))
	L.SetField(t, "hp", lua.LNumber(info.HP))
	L.SetField(t, "max_hp", lua.LNumber(info.MaxHP))
	L.SetField(t, "x", lua.LNumber(info.X))
	L.SetField(t, "y", lua.LNumber(info.Y))
	L.SetField(t, "sight", lua.LNumber(info.SightRadius))
	conds := L.NewTable()
	for _, c := range info.Conditions {
		conds.Append(lua.LString(c))
	}
	L.SetField(t, "conditions", conds)
	return t
}
