package dice

import (
	"sort"

	"go.uber.org/zap"
)

// Roll evaluates an Expression using the given Source.
//
// Precondition: expr must come from Parse; src must be non-nil.
// Postcondition: len(result.Dice) == expr.Count, or expr.KeepHighest when set.
func Roll(expr Expression, src Source) RollResult {
	rolled := make([]int, expr.Count)
	for i := range rolled {
		rolled[i] = src.Intn(expr.Sides) + 1
	}
	if expr.KeepHighest > 0 {
		sort.Sort(sort.Reverse(sort.IntSlice(rolled)))
		rolled = rolled[:expr.KeepHighest]
	}
	return RollResult{
		Expression: expr.Raw,
		Dice:       rolled,
		Modifier:   expr.Modifier,
	}
}

// RollExpr parses expr and rolls it using src in a single call.
func RollExpr(expr string, src Source) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return Roll(e, src), nil
}

// MustParse parses expr and panics on error. Useful for package-level values.
func MustParse(expr string) Expression {
	e, err := Parse(expr)
	if err != nil {
		panic("dice: MustParse failed for expression " + expr + ": " + err.Error())
	}
	return e
}

// Roller wraps a Source and logger; every roll is logged at debug level with
// expression, dice values, modifier, and total.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	if src == nil || logger == nil {
		panic("dice.NewLoggedRoller: src and logger must not be nil")
	}
	return &Roller{src: src, logger: logger}
}

// Source returns the Source the roller draws from.
func (r *Roller) Source() Source { return r.src }

// Roll evaluates expr and logs the result.
func (r *Roller) Roll(expr Expression) RollResult {
	result := Roll(expr, r.src)
	r.logger.Debug("dice roll",
		zap.String("expression", result.Expression),
		zap.Ints("dice", result.Dice),
		zap.Int("modifier", result.Modifier),
		zap.Int("total", result.Total()),
	)
	return result
}

// RollExpr parses expr and rolls it, logging the result.
func (r *Roller) RollExpr(expr string) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return r.Roll(e), nil
}
