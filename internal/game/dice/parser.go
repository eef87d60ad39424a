package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// Expression is a parsed dice expression ready to be rolled.
//
// Invariant: Count >= 1 and Sides >= 2 after a successful Parse.
type Expression struct {
	Raw         string // original input string
	Count       int    // number of dice
	Sides       int    // faces per die
	Modifier    int    // flat modifier (may be negative)
	KeepHighest int    // if > 0, keep only the N highest dice (e.g. 4d6kh3)
}

// Parse parses a dice expression string into an Expression.
// Supported forms: "d20", "2d6", "2d6+3", "4d8-2", "4d6kh3", "4d6kh3+1".
//
// Postcondition: Returns a valid Expression or a descriptive error.
func Parse(expr string) (Expression, error) {
	if expr == "" {
		return Expression{}, fmt.Errorf("dice: empty expression")
	}
	s := strings.ToLower(strings.TrimSpace(expr))

	countPart, rest, found := strings.Cut(s, "d")
	if !found {
		return Expression{}, fmt.Errorf("dice: missing 'd' in expression %q", expr)
	}

	count := 1
	if countPart != "" {
		n, err := strconv.Atoi(countPart)
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid die count in %q: %w", expr, err)
		}
		if n <= 0 {
			return Expression{}, fmt.Errorf("dice: invalid die count in %q: must be >= 1", expr)
		}
		count = n
	}

	body, modifier, err := splitModifier(rest)
	if err != nil {
		return Expression{}, fmt.Errorf("dice: invalid modifier in %q: %w", expr, err)
	}

	sidesPart, keepPart, hasKeep := strings.Cut(body, "kh")
	sides, err := strconv.Atoi(sidesPart)
	if err != nil {
		return Expression{}, fmt.Errorf("dice: invalid die sides in %q: %w", expr, err)
	}
	if sides < 2 {
		return Expression{}, fmt.Errorf("dice: invalid die sides in %q: must be >= 2", expr)
	}

	keep := 0
	if hasKeep {
		keep, err = strconv.Atoi(keepPart)
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid kh value in %q: %w", expr, err)
		}
		if keep <= 0 || keep >= count {
			return Expression{}, fmt.Errorf("dice: kh value %d must be > 0 and < count %d in %q", keep, count, expr)
		}
	}

	return Expression{
		Raw:         expr,
		Count:       count,
		Sides:       sides,
		Modifier:    modifier,
		KeepHighest: keep,
	}, nil
}

// splitModifier separates a trailing "+N" or "-N" from s. A sign at position
// 0 is never treated as a modifier.
func splitModifier(s string) (string, int, error) {
	idx := strings.IndexAny(s, "+-")
	if idx <= 0 {
		return s, 0, nil
	}
	mod, err := strconv.Atoi(s[idx:])
	if err != nil {
		return "", 0, err
	}
	return s[:idx], mod, nil
}
