package game

import "testing"

func workContract(total, weeks int) Contract {
	return Contract{
		ID:                  "c1",
		SessionID:           "s1",
		TotalWorkRequired:   total,
		DeadlineWeeks:       weeks,
		WeeksRemaining:      weeks,
		BaseReward:          6000,
		BonusMultiplier:     DefaultBonusMultiplier,
		Status:              ContractInProgress,
		AccuracyRequirement: DefaultAccuracyRequirement,
		CurrentAccuracy:     100,
	}
}

func TestAdvanceContractCompletesOverThreeWeeks(t *testing.T) {
	c := workContract(100, 5)
	worker := Employee{Speed: 40, Morale: 100, Level: 1, Active: true}

	c = AdvanceContract(c, []Employee{worker})
	if c.CurrentProgress != 40 || c.Status != ContractInProgress {
		t.Fatalf("week 1: progress=%d status=%s", c.CurrentProgress, c.Status)
	}
	c = AdvanceContract(c, []Employee{worker})
	if c.CurrentProgress != 80 || c.Status != ContractInProgress {
		t.Fatalf("week 2: progress=%d status=%s", c.CurrentProgress, c.Status)
	}
	c = AdvanceContract(c, []Employee{worker})
	if c.CurrentProgress != 100 {
		t.Fatalf("week 3: progress capped wrong: %d", c.CurrentProgress)
	}
	if c.Status != ContractCompleted {
		t.Fatalf("week 3: status %s", c.Status)
	}
	if c.FinalReward != 9000 {
		t.Fatalf("final reward %d, want 6000*1.5", c.FinalReward)
	}
}

func TestAdvanceContractProgressNeverExceedsTotal(t *testing.T) {
	c := workContract(50, 3)
	worker := Employee{Speed: 90, Morale: 100, Level: 3, Active: true}
	c = AdvanceContract(c, []Employee{worker})
	if c.CurrentProgress != 50 {
		t.Fatalf("progress %d exceeds total", c.CurrentProgress)
	}
	if c.Status != ContractCompleted {
		t.Fatalf("status %s", c.Status)
	}
}

func TestAdvanceContractFailsAtDeadline(t *testing.T) {
	c := workContract(100, 1)
	worker := Employee{Speed: 10, Morale: 100, Level: 1, Active: true}
	c = AdvanceContract(c, []Employee{worker})
	if c.Status != ContractFailed {
		t.Fatalf("status %s, want failed", c.Status)
	}
	if c.CurrentProgress != 10 {
		t.Fatalf("progress %d", c.CurrentProgress)
	}
	if c.FinalReward != 0 {
		t.Fatalf("failed contract has reward %d", c.FinalReward)
	}
}

func TestAdvanceContractCompletionWinsOnFinalWeek(t *testing.T) {
	c := workContract(40, 1)
	worker := Employee{Speed: 40, Morale: 100, Level: 1, Active: true}
	c = AdvanceContract(c, []Employee{worker})
	if c.Status != ContractCompleted {
		t.Fatalf("status %s, want completed when work lands on the last week", c.Status)
	}
}

func TestAdvanceContractAccuracyGateHalvesReward(t *testing.T) {
	c := workContract(40, 3)
	c.CurrentAccuracy = 50
	worker := Employee{Speed: 40, Morale: 100, Level: 1, Active: true}
	c = AdvanceContract(c, []Employee{worker})
	if c.Status != ContractCompleted {
		t.Fatalf("status %s", c.Status)
	}
	if c.FinalReward != 3000 {
		t.Fatalf("final reward %d, want base/2", c.FinalReward)
	}
}

func TestAdvanceContractIdleWeekStillBurnsDeadline(t *testing.T) {
	c := workContract(100, 3)
	c = AdvanceContract(c, nil)
	if c.CurrentProgress != 0 {
		t.Fatalf("progress %d with no workers", c.CurrentProgress)
	}
	if c.WeeksRemaining != 2 {
		t.Fatalf("weeks remaining %d", c.WeeksRemaining)
	}
}

func TestAdvanceContractPassThrough(t *testing.T) {
	c := workContract(100, 3)
	c.Status = ContractAvailable
	got := AdvanceContract(c, []Employee{{Speed: 40, Morale: 100, Level: 1}})
	if got != c {
		t.Fatalf("available contract mutated: %+v", got)
	}
}

func TestEffectiveSpeedScaling(t *testing.T) {
	e := Employee{Speed: 40, Morale: 100, Level: 1}
	if got := e.EffectiveSpeed(); got != 40 {
		t.Fatalf("full morale level 1: %d", got)
	}
	e.Morale = 50
	if got := e.EffectiveSpeed(); got != 20 {
		t.Fatalf("half morale: %d", got)
	}
	e.Morale = 0
	if got := e.EffectiveSpeed(); got != 1 {
		t.Fatalf("zero morale floor: %d", got)
	}
	e = Employee{Speed: 40, Morale: 100, Level: 3}
	if got := e.EffectiveSpeed(); got != 48 {
		t.Fatalf("level 3 bonus: %d", got)
	}
}

func TestEffectiveAccuracyClamp(t *testing.T) {
	e := Employee{Accuracy: 98, Morale: 100, Level: 3}
	if got := e.EffectiveAccuracy(); got != 100 {
		t.Fatalf("clamp high: %d", got)
	}
	e = Employee{Accuracy: 80, Morale: 0, Level: 1}
	if got := e.EffectiveAccuracy(); got != 1 {
		t.Fatalf("clamp low: %d", got)
	}
}
