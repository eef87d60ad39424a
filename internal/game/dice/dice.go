// Package dice provides the injectable randomness abstraction shared by level
// generation, combat, and agent behavior, plus dice expressions for content
// files (e.g. agent hit points "2d6+4").
package dice

import "fmt"

// Source is the randomness provider threaded through every random decision.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
	// Float64 returns a random float in [0.0, 1.0).
	Float64() float64
}

// Between returns a uniformly random int in [lo, hi]. It always consumes
// exactly one Intn draw.
//
// Precondition: lo <= hi.
func Between(src Source, lo, hi int) int {
	if hi < lo {
		panic(fmt.Sprintf("dice: Between called with lo %d > hi %d", lo, hi))
	}
	return lo + src.Intn(hi-lo+1)
}

// Chance reports true with probability p. Consumes one Float64 draw.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// RollResult holds the full audit trail for a single dice roll evaluation.
//
// Postcondition: Total() == sum(Dice) + Modifier.
type RollResult struct {
	Expression string // original expression string, e.g. "2d6+3"
	Dice       []int  // individual die results before modifier
	Modifier   int    // flat modifier (may be negative)
}

// Total returns the sum of all die results plus the modifier.
func (r RollResult) Total() int {
	total := r.Modifier
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// String returns an audit string such as "2d6+3 → [4 5] +3 = 12".
//
// Precondition: r.Expression is non-empty.
func (r RollResult) String() string {
	if r.Expression == "" {
		panic("dice: RollResult.String() precondition violated: Expression must be non-empty")
	}
	return fmt.Sprintf("%s → %v %+d = %d", r.Expression, r.Dice, r.Modifier, r.Total())
}
