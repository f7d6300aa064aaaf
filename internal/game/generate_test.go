package game

import "testing"

func TestGeneratedContractBounds(t *testing.T) {
	gen := NewGenerator(NewRand(7))
	contracts, err := gen.Contracts("sess", 1, 200)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, c := range contracts {
		if c.Status != ContractAvailable {
			t.Fatalf("new contract status %s", c.Status)
		}
		if c.CurrentProgress != 0 {
			t.Fatalf("new contract has progress %d", c.CurrentProgress)
		}
		if c.WeeksRemaining != c.DeadlineWeeks {
			t.Fatalf("weeks remaining %d != deadline %d", c.WeeksRemaining, c.DeadlineWeeks)
		}
		if c.AccuracyRequirement != DefaultAccuracyRequirement || c.CurrentAccuracy != 100 {
			t.Fatalf("accuracy fields wrong: req=%d cur=%d", c.AccuracyRequirement, c.CurrentAccuracy)
		}
		if c.BonusMultiplier != DefaultBonusMultiplier {
			t.Fatalf("bonus multiplier %v", c.BonusMultiplier)
		}
		switch c.Difficulty {
		case DifficultyEasy:
			assertBetween(t, "easy work", c.TotalWorkRequired, 50, 99)
			assertBetween(t, "easy deadline", c.DeadlineWeeks, 2, 3)
			assertBetween(t, "easy points", c.StakeholderPoints, 10, 24)
			if c.BaseReward != 5000+1000 {
				t.Fatalf("easy reward %d", c.BaseReward)
			}
		case DifficultyMedium:
			assertBetween(t, "medium work", c.TotalWorkRequired, 100, 199)
			assertBetween(t, "medium deadline", c.DeadlineWeeks, 3, 5)
			assertBetween(t, "medium points", c.StakeholderPoints, 25, 49)
			if c.BaseReward != 10000+1000 {
				t.Fatalf("medium reward %d", c.BaseReward)
			}
		case DifficultyHard:
			assertBetween(t, "hard work", c.TotalWorkRequired, 200, 349)
			assertBetween(t, "hard deadline", c.DeadlineWeeks, 5, 8)
			assertBetween(t, "hard points", c.StakeholderPoints, 50, 99)
			if c.BaseReward != 18000+1000 {
				t.Fatalf("hard reward %d", c.BaseReward)
			}
		default:
			t.Fatalf("unknown difficulty %s", c.Difficulty)
		}
	}
}

func TestRewardScalesWithQuarter(t *testing.T) {
	gen := NewGenerator(NewRand(8))
	contracts, err := gen.Contracts("sess", 3, 50)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, c := range contracts {
		var base int64
		switch c.Difficulty {
		case DifficultyEasy:
			base = 5000
		case DifficultyMedium:
			base = 10000
		default:
			base = 18000
		}
		if c.BaseReward != base+3*1000 {
			t.Fatalf("quarter 3 %s reward %d", c.Difficulty, c.BaseReward)
		}
	}
}

func TestGeneratedEmployeeBounds(t *testing.T) {
	gen := NewGenerator(NewRand(9))
	pool, err := gen.EmployeePool("sess", 100)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(pool) != 100 {
		t.Fatalf("pool size %d", len(pool))
	}
	for _, e := range pool {
		if e.Active {
			t.Fatalf("pool employee generated active")
		}
		if e.HiredAt != nil {
			t.Fatalf("pool employee has hire time")
		}
		if e.Morale != 100 {
			t.Fatalf("starting morale %d", e.Morale)
		}
		if e.Type != EmployeeAnalyst {
			t.Fatalf("employee type %s", e.Type)
		}
		assertBetween(t, "level", e.Level, 1, 3)
		// speed = base[15,29] + level*bonus[3,7]
		assertBetween(t, "speed", e.Speed, 15+1*3, 29+3*7)
		if e.Accuracy > 100 || e.Accuracy < 70+1*2 {
			t.Fatalf("accuracy %d out of bounds", e.Accuracy)
		}
		// salary = base[600,900) + level*bonus[100,300)
		if e.Salary < 600+1*100 || e.Salary > 899+3*299 {
			t.Fatalf("salary %d out of bounds", e.Salary)
		}
		if e.Name == "" {
			t.Fatalf("empty name")
		}
	}
}

func TestContractCountRanges(t *testing.T) {
	gen := NewGenerator(NewRand(10))
	for i := 0; i < 200; i++ {
		n, err := gen.InitialContractCount()
		if err != nil {
			t.Fatalf("initial count: %v", err)
		}
		assertBetween(t, "initial count", n, 2, 3)

		q, err := gen.QuarterlyContractCount()
		if err != nil {
			t.Fatalf("quarterly count: %v", err)
		}
		assertBetween(t, "quarterly count", q, 3, 5)
	}
}

func TestGenerationIsDeterministicBySeed(t *testing.T) {
	a := NewGenerator(NewRand(99))
	b := NewGenerator(NewRand(99))

	ca, err := a.Contracts("sess", 2, 30)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	cb, err := b.Contracts("sess", 2, 30)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for i := range ca {
		// IDs are fresh uuids; everything drawn must match.
		if ca[i].Difficulty != cb[i].Difficulty ||
			ca[i].TotalWorkRequired != cb[i].TotalWorkRequired ||
			ca[i].DeadlineWeeks != cb[i].DeadlineWeeks ||
			ca[i].BaseReward != cb[i].BaseReward ||
			ca[i].StakeholderPoints != cb[i].StakeholderPoints ||
			ca[i].Title != cb[i].Title {
			t.Fatalf("contract %d diverged:\n%+v\n%+v", i, ca[i], cb[i])
		}
	}
}

func assertBetween(t *testing.T, label string, v, min, max int) {
	t.Helper()
	if v < min || v > max {
		t.Fatalf("%s = %d, want [%d,%d]", label, v, min, max)
	}
}
