package autoplay

import (
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/turn"
)

// Outcome is how a run ended.
type Outcome string

const (
	OutcomeDied      Outcome = "died"
	OutcomeCleared   Outcome = "cleared"
	OutcomeTurnLimit Outcome = "turn_limit"
	OutcomeStopped   Outcome = "stopped"
)

// Summary totals a finished run.
type Summary struct {
	GameID   string
	Outcome  Outcome
	Turns    int
	Kills    int
	DamageIn int
	// DamageOut counts damage the player dealt with attacks.
	DamageOut int
	PlayerHP  int
}

// String renders the summary as one line.
func (s Summary) String() string {
	return fmt.Sprintf("game %s: %s after %d turns, %d kills, dealt %d, took %d, hp %d",
		s.GameID, s.Outcome, s.Turns, s.Kills, s.DamageOut, s.DamageIn, s.PlayerHP)
}

// RunnerConfig tunes a Runner.
type RunnerConfig struct {
	// MaxTurns caps the run; 0 means no cap.
	MaxTurns int
	// Delay pauses between player actions.
	Delay time.Duration
	// Out receives the event log and the final map; nil discards it.
	Out io.Writer
}

// Runner plays one Game to completion with a Policy. It satisfies
// lifecycle.Service.
type Runner struct {
	game   *turn.Game
	policy *Policy
	cfg    RunnerConfig
	logger *zap.Logger

	stopOnce sync.Once
	stop     chan struct{}

	mu      sync.Mutex
	summary Summary
}

// NewRunner creates a Runner.
//
// Precondition: game, policy, and logger must be non-nil.
func NewRunner(game *turn.Game, policy *Policy, cfg RunnerConfig, logger *zap.Logger) *Runner {
	if game == nil || policy == nil || logger == nil {
		panic("autoplay.NewRunner: game, policy, and logger are required")
	}
	if cfg.Out == nil {
		cfg.Out = io.Discard
	}
	return &Runner{
		game:   game,
		policy: policy,
		cfg:    cfg,
		logger: logger,
		stop:   make(chan struct{}),
	}
}

// Start plays until the player dies, no agents remain, the turn cap is hit,
// or Stop is called. Stop is honoured between turns.
func (r *Runner) Start() error {
	s := Summary{GameID: r.game.ID()}
	defer func() {
		s.Turns = r.game.Turn() - 1
		if r.game.Over() {
			s.Turns = r.game.Turn()
		}
		s.PlayerHP = r.game.Player().CurrentHP
		r.mu.Lock()
		r.summary = s
		r.mu.Unlock()
	}()

	for {
		switch {
		case r.game.Over():
			s.Outcome = OutcomeDied
			return r.finish(s)
		case r.game.Roster().Len() == 0:
			s.Outcome = OutcomeCleared
			return r.finish(s)
		case r.cfg.MaxTurns > 0 && r.game.Turn() > r.cfg.MaxTurns:
			s.Outcome = OutcomeTurnLimit
			return r.finish(s)
		}

		select {
		case <-r.stop:
			s.Outcome = OutcomeStopped
			return r.finish(s)
		default:
		}

		d := r.policy.Decide(r.game)
		res, err := r.game.Act(d.Action)
		if err != nil {
			return fmt.Errorf("autoplay: turn %d: %w", r.game.Turn(), err)
		}
		events := res.Events
		if !res.Consumed {
			// Refused moves fall back to waiting.
			if res, err = r.game.Act(turn.Wait()); err != nil {
				return fmt.Errorf("autoplay: turn %d: %w", r.game.Turn(), err)
			}
			events = append(events, res.Events...)
		}
		for _, e := range events {
			tally(&s, e)
			fmt.Fprintln(r.cfg.Out, e.String())
		}

		if r.cfg.Delay > 0 {
			select {
			case <-r.stop:
			case <-time.After(r.cfg.Delay):
			}
		}
	}
}

func (r *Runner) finish(s Summary) error {
	fmt.Fprintln(r.cfg.Out, r.game.Render())
	r.logger.Info("run finished",
		zap.String("game_id", s.GameID),
		zap.String("outcome", string(s.Outcome)),
		zap.Int("kills", s.Kills),
	)
	return nil
}

func tally(s *Summary, e turn.Event) {
	switch e.Kind {
	case turn.EventKill:
		s.Kills++
	case turn.EventAttack:
		if e.Actor == turn.PlayerID {
			s.DamageOut += e.Damage
		} else if e.Target == turn.PlayerID {
			s.DamageIn += e.Damage
		}
	case turn.EventConditionDamage:
		if e.Target == turn.PlayerID {
			s.DamageIn += e.Damage
		}
	}
}

// Stop asks Start to return before the next turn. It is safe to call more
// than once.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

// Summary returns the totals of the last completed Start.
func (r *Runner) Summary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.summary
}
