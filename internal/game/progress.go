package game

// AdvanceContract applies one week of assigned work to a contract and
// returns the updated value. Contracts not in progress pass through
// unchanged. The deadline countdown always drops by one, worked or not.
// Completion wins over the deadline check when both land the same week.
func AdvanceContract(c Contract, workers []Employee) Contract {
	if c.Status != ContractInProgress {
		return c
	}

	work := 0
	for _, w := range workers {
		work += w.EffectiveSpeed()
	}

	progress := c.CurrentProgress + work
	if progress > c.TotalWorkRequired {
		progress = c.TotalWorkRequired
	}
	c.CurrentProgress = progress
	c.WeeksRemaining--

	switch {
	case progress >= c.TotalWorkRequired:
		c.Status = ContractCompleted
		c.FinalReward = effectiveReward(c)
	case c.WeeksRemaining <= 0:
		c.Status = ContractFailed
	}
	return c
}

// effectiveReward settles the payout at completion time: the bonus
// multiplier if the quality gate was met, half the base reward otherwise.
func effectiveReward(c Contract) int64 {
	if c.CurrentAccuracy >= c.AccuracyRequirement {
		return int64(float64(c.BaseReward) * c.BonusMultiplier)
	}
	return c.BaseReward / 2
}
