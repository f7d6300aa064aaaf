package game

// TotalScore is the session's running score: stakeholder value plus one
// point per thousand of budget, minus accumulated error penalties. Pure;
// safe to call repeatedly.
func TotalScore(s Session) int {
	return s.StakeholderValue + int(s.Budget/1000) - s.ErrorPenalties
}

// MinimumThreshold is the score a session must reach to survive the given
// quarter's review.
func MinimumThreshold(quarter int) int {
	switch quarter {
	case 1:
		return 100
	case 2:
		return 200
	case 3:
		return 350
	case 4:
		return 500
	default:
		return 500 + (quarter-4)*150
	}
}
