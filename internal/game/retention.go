package game

// QuitChance is the percent chance an employee quits this week: a step
// function of morale, shifted by the session's quit perk, floored at 0.
func QuitChance(morale, shift int) int {
	var base int
	switch {
	case morale >= 80:
		base = 2
	case morale >= 60:
		base = 5
	case morale >= 40:
		base = 15
	case morale >= 20:
		base = 30
	default:
		base = 50
	}
	chance := base + shift
	if chance < 0 {
		return 0
	}
	return chance
}

// EvaluateRetention rolls once per active employee, independently, and
// returns deactivated copies of those who quit. Inactive employees are
// skipped; callers persist the returned values.
func EvaluateRetention(rng RNG, employees []Employee, shift int) ([]Employee, error) {
	var quit []Employee
	for _, e := range employees {
		if !e.Active {
			continue
		}
		draw, err := rng.IntBetween(1, 100)
		if err != nil {
			return nil, err
		}
		if draw <= QuitChance(e.Morale, shift) {
			e.Active = false
			quit = append(quit, e)
		}
	}
	return quit, nil
}
