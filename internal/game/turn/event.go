package turn

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/grid"
)

// EventKind classifies an Event.
type EventKind int

const (
	EventMove EventKind = iota
	EventBlocked
	EventWait
	EventAttack
	EventKill
	EventStatus
	EventConditionDamage
	EventConditionExpired
	EventSkip
	EventTaunt
	EventPlayerDeath
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventMove:
		return "move"
	case EventBlocked:
		return "blocked"
	case EventWait:
		return "wait"
	case EventAttack:
		return "attack"
	case EventKill:
		return "kill"
	case EventStatus:
		return "status"
	case EventConditionDamage:
		return "condition_damage"
	case EventConditionExpired:
		return "condition_expired"
	case EventSkip:
		return "skip"
	case EventTaunt:
		return "taunt"
	case EventPlayerDeath:
		return "player_death"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is one observable step of a turn.
type Event struct {
	Turn   int
	Kind   EventKind
	Actor  string
	Target string
	From   grid.Point
	To     grid.Point
	Damage int
	// Critical is set on attacks that rolled a critical hit.
	Critical bool
	// Status is the condition ID applied or expired.
	Status  string
	Message string
}

// String renders a one-line description for logs and transcripts.
func (e Event) String() string {
	switch e.Kind {
	case EventMove:
		return fmt.Sprintf("[%d] %s moves %s -> %s", e.Turn, e.Actor, e.From, e.To)
	case EventAttack:
		crit := ""
		if e.Critical {
			crit = " (critical)"
		}
		return fmt.Sprintf("[%d] %s hits %s for %d%s", e.Turn, e.Actor, e.Target, e.Damage, crit)
	case EventKill:
		return fmt.Sprintf("[%d] %s dies", e.Turn, e.Target)
	case EventStatus:
		return fmt.Sprintf("[%d] %s is %s", e.Turn, e.Target, e.Status)
	case EventConditionDamage:
		return fmt.Sprintf("[%d] %s takes %d from conditions", e.Turn, e.Target, e.Damage)
	case EventConditionExpired:
		return fmt.Sprintf("[%d] %s is no longer %s", e.Turn, e.Target, e.Status)
	case EventTaunt:
		return fmt.Sprintf("[%d] %s: %s", e.Turn, e.Actor, e.Message)
	default:
		if e.Message != "" {
			return fmt.Sprintf("[%d] %s %s: %s", e.Turn, e.Actor, e.Kind, e.Message)
		}
		return fmt.Sprintf("[%d] %s %s", e.Turn, e.Actor, e.Kind)
	}
}

func (e Event) fields() []zap.Field {
	fs := []zap.Field{
		zap.Int("turn", e.Turn),
		zap.Stringer("kind", e.Kind),
	}
	if e.Actor != "" {
		fs = append(fs, zap.String("actor", e.Actor))
	}
	if e.Target != "" {
		fs = append(fs, zap.String("target", e.Target))
	}
	if e.Kind == EventMove {
		fs = append(fs, zap.Stringer("from", e.From), zap.Stringer("to", e.To))
	}
	if e.Damage != 0 {
		fs = append(fs, zap.Int("damage", e.Damage), zap.Bool("critical", e.Critical))
	}
	if e.Status != "" {
		fs = append(fs, zap.String("status", e.Status))
	}
	if e.Message != "" {
		fs = append(fs, zap.String("message", e.Message))
	}
	return fs
}
