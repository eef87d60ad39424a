package combat

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// Source is the subset of dice.Source used by the resolver.
// Using a local interface avoids a circular import.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// Bonus is one named contribution to a modifier category.
type Bonus struct {
	Source string
	Value  float64
}

func sum(bs []Bonus) float64 {
	total := 0.0
	for _, b := range bs {
		total += b.Value
	}
	return total
}

// Modifiers are the external adjustments for one attack. Bonuses within a
// category add together; the resulting category factors multiply.
type Modifiers struct {
	// AttackDelta and DefenseDelta adjust the raw stats, typically negative
	// condition penalties.
	AttackDelta  int
	DefenseDelta int
	// CritChance bonuses add to the base critical probability.
	CritChance []Bonus
	// CritMultiplier bonuses add to the base critical multiplier.
	CritMultiplier []Bonus
	// Elemental bonuses add to a factor of 1.
	Elemental []Bonus
}

// Rules holds the tunable combat constants.
type Rules struct {
	CritChance     float64
	CritMultiplier float64
	VarianceMin    float64
	VarianceMax    float64
}

// DefaultRules returns the standard constants: 10% crits at 2x and a
// 0.85–1.15 variance window.
func DefaultRules() Rules {
	return Rules{
		CritChance:     0.10,
		CritMultiplier: 2.0,
		VarianceMin:    0.85,
		VarianceMax:    1.15,
	}
}

// Validate reports whether the rules are usable.
//
// Postcondition: Returns nil iff 0 <= CritChance <= 1, CritMultiplier >= 1,
// and 0 < VarianceMin <= VarianceMax.
func (r Rules) Validate() error {
	switch {
	case r.CritChance < 0 || r.CritChance > 1:
		return fmt.Errorf("crit chance %v outside [0,1]", r.CritChance)
	case r.CritMultiplier < 1:
		return fmt.Errorf("crit multiplier %v below 1", r.CritMultiplier)
	case r.VarianceMin <= 0:
		return fmt.Errorf("variance min %v must be positive", r.VarianceMin)
	case r.VarianceMin > r.VarianceMax:
		return fmt.Errorf("variance min %v exceeds max %v", r.VarianceMin, r.VarianceMax)
	}
	return nil
}

// AttackResult holds the outcome of a single attack.
type AttackResult struct {
	AttackerID string
	TargetID   string
	// Base is max(1, attack - defense/2) after modifiers.
	Base       int
	Variance   float64
	Critical   bool
	Multiplier float64
	Elemental  float64
	// Damage is the health removed from the target; zero only for a no-op.
	Damage int
	// Status is the condition ID inflicted by this hit, or "". A killing hit
	// inflicts nothing.
	Status string
	// Killed is true when this hit brought the target to zero health.
	Killed bool
}

// Landed reports whether the attack resolved against a living target.
func (r AttackResult) Landed() bool { return r.Damage > 0 }

// BaseDamage computes max(1, attack - defense/2) with integer division.
// Negative defense counts as zero.
//
// Postcondition: Returns >= 1.
func BaseDamage(attack, defense int) int {
	if defense < 0 {
		defense = 0
	}
	return max(1, attack-defense/2)
}

// Damage combines the category factors into final damage.
//
// Precondition: critMultiplier >= 1.
// Postcondition: Returns floor(max(1, base*variance*(crit ? critMultiplier : 1)*elemental)), never below 1.
func Damage(base int, variance float64, critical bool, critMultiplier, elemental float64) int {
	d := float64(base) * variance
	if critical {
		d *= critMultiplier
	}
	d *= elemental
	if d < 1 {
		d = 1
	}
	return int(math.Floor(d))
}

// Resolve performs one attack of attacker against defender, reducing the
// defender's health. Draws from src in order: variance, crit roll, and the
// status roll when the attacker's element has a status and its chance is
// positive. The status roll is drawn even on a killing hit so the draw count
// does not depend on the outcome.
//
// Precondition: attacker, defender, and src must be non-nil.
// Postcondition: A dead defender yields a zero result with no draws;
// otherwise Damage >= 1 and defender.CurrentHP >= 0. Status is "" when
// Killed is true.
func (r Rules) Resolve(attacker, defender *Combatant, mods Modifiers, src Source) AttackResult {
	res := AttackResult{AttackerID: attacker.ID, TargetID: defender.ID}
	if defender.IsDead() {
		return res
	}

	res.Base = BaseDamage(attacker.Attack+mods.AttackDelta, defender.Defense+mods.DefenseDelta)
	res.Variance = r.VarianceMin + src.Float64()*(r.VarianceMax-r.VarianceMin)

	chance := min(1, max(0, r.CritChance+sum(mods.CritChance)))
	res.Critical = src.Float64() < chance
	res.Multiplier = 1
	if res.Critical {
		res.Multiplier = max(1, r.CritMultiplier+sum(mods.CritMultiplier))
	}
	res.Elemental = max(0, 1+sum(mods.Elemental))

	res.Damage = Damage(res.Base, res.Variance, res.Critical, res.Multiplier, res.Elemental)
	defender.ApplyDamage(res.Damage)
	res.Killed = defender.IsDead()

	if status := attacker.Element.Status(); status != "" && attacker.StatusChance > 0 {
		if src.Float64() < attacker.StatusChance && !res.Killed {
			res.Status = status
		}
	}
	return res
}

// ResolveAttack resolves an attack with DefaultRules.
func ResolveAttack(attacker, defender *Combatant, mods Modifiers, src Source) AttackResult {
	return DefaultRules().Resolve(attacker, defender, mods, src)
}

// Resolver binds Rules to a logger.
type Resolver struct {
	rules  Rules
	logger *zap.Logger
}

// NewResolver creates a Resolver.
//
// Precondition: logger must be non-nil; rules must pass Validate.
func NewResolver(rules Rules, logger *zap.Logger) *Resolver {
	if logger == nil {
		panic("combat.NewResolver: logger must not be nil")
	}
	if err := rules.Validate(); err != nil {
		panic("combat.NewResolver: " + err.Error())
	}
	return &Resolver{rules: rules, logger: logger}
}

// Rules returns the bound constants.
func (r *Resolver) Rules() Rules { return r.rules }

// Resolve runs Rules.Resolve and logs the outcome at debug.
func (r *Resolver) Resolve(attacker, defender *Combatant, mods Modifiers, src Source) AttackResult {
	res := r.rules.Resolve(attacker, defender, mods, src)
	r.logger.Debug("attack resolved",
		zap.String("attacker", attacker.ID),
		zap.String("target", defender.ID),
		zap.Int("damage", res.Damage),
		zap.Bool("critical", res.Critical),
		zap.String("status", res.Status),
		zap.Int("target_hp", defender.CurrentHP),
	)
	return res
}
