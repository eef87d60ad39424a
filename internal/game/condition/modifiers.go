package condition

// AttackDelta returns the net attack modifier from all active conditions.
// For stackable conditions the penalty is multiplied by the stack count.
//
// Postcondition: Returns <= 0.
func AttackDelta(s *ActiveSet) int {
	total := 0
	for _, ac := range s.conditions {
		total -= ac.Def.AttackPenalty * ac.Stacks
	}
	return total
}

// DefenseDelta returns the net defense modifier from all active conditions.
//
// Postcondition: Returns <= 0.
func DefenseDelta(s *ActiveSet) int {
	total := 0
	for _, ac := range s.conditions {
		total -= ac.Def.DefensePenalty * ac.Stacks
	}
	return total
}

// VisionPenalty returns the total sight radius reduction.
//
// Postcondition: Returns >= 0.
func VisionPenalty(s *ActiveSet) int {
	total := 0
	for _, ac := range s.conditions {
		total += ac.Def.VisionPenalty * ac.Stacks
	}
	return total
}

// DamagePerTurn returns the damage dealt by active conditions at the end of
// each turn.
//
// Postcondition: Returns >= 0.
func DamagePerTurn(s *ActiveSet) int {
	total := 0
	for _, ac := range s.conditions {
		total += ac.Def.DamagePerTurn * ac.Stacks
	}
	return total
}

// SkipsTurn reports whether any active condition prevents acting this turn.
func SkipsTurn(s *ActiveSet) bool {
	for _, ac := range s.conditions {
		if ac.Def.SkipsTurn {
			return true
		}
	}
	return false
}

// IsActionRestricted reports whether the given action name is blocked
// by any active condition's RestrictActions list.
func IsActionRestricted(s *ActiveSet, action string) bool {
	for _, ac := range s.conditions {
		for _, r := range ac.Def.RestrictActions {
			if r == action {
				return true
			}
		}
	}
	return false
}
