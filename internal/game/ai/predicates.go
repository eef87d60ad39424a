package ai

// Built-in precondition names. These are evaluated in Go before any Lua hook
// of the same name is consulted.
const (
	PredAlways         = "always"
	PredTargetVisible  = "target_visible"
	PredTargetAdjacent = "target_adjacent"
	PredLowHealth      = "low_health"
	PredTargetWeak     = "target_weak"
)

// LowHealthPercent is the HP percentage below which low_health and target_weak hold.
const LowHealthPercent = 30.0

var builtins = map[string]func(*WorldState) bool{
	PredAlways: func(*WorldState) bool { return true },
	PredTargetVisible: func(ws *WorldState) bool {
		return ws.Target != nil && ws.Visible
	},
	PredTargetAdjacent: func(ws *WorldState) bool {
		return ws.Target != nil && ws.Adjacent
	},
	PredLowHealth: func(ws *WorldState) bool {
		return ws.Agent.HPPercent() < LowHealthPercent
	},
	PredTargetWeak: func(ws *WorldState) bool {
		return ws.Target != nil && ws.Target.HPPercent() < LowHealthPercent
	},
}

// IsBuiltin reports whether name (without a leading "!") is a built-in predicate.
func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}
