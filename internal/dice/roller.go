package dice

// Roller provides an interface for random draws so combat and narrative
// resolution can be driven deterministically in tests.
type Roller interface {
	// Roll rolls a number of dice with the given sides and adds a bonus
	Roll(count, sides, bonus int) (*RollResult, error)

	// Chance draws uniform [0,1) and reports whether it landed under p.
	// Used for critical-hit and dodge procs.
	Chance(p float64) (bool, error)
}

// RollResult holds the outcome of a dice roll
type RollResult struct {
	Total    int
	Rolls    []int
	Bonus    int
	Count    int
	Sides    int
	RawTotal int
	IsCrit   bool
	IsFumble bool
}

// D20 rolls a single twenty-sided die using the given roller.
func D20(r Roller) (int, error) {
	result, err := r.Roll(1, 20, 0)
	if err != nil {
		return 0, err
	}
	return result.Rolls[0], nil
}
