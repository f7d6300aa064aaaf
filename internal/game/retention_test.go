package game

import "testing"

func TestQuitChanceSteps(t *testing.T) {
	tests := []struct {
		morale int
		want   int
	}{
		{morale: 100, want: 2},
		{morale: 80, want: 2},
		{morale: 79, want: 5},
		{morale: 60, want: 5},
		{morale: 59, want: 15},
		{morale: 40, want: 15},
		{morale: 39, want: 30},
		{morale: 20, want: 30},
		{morale: 19, want: 50},
		{morale: 0, want: 50},
	}
	for _, tc := range tests {
		if got := QuitChance(tc.morale, 0); got != tc.want {
			t.Fatalf("morale=%d got=%d want=%d", tc.morale, got, tc.want)
		}
	}
}

func TestQuitChanceShiftFloorsAtZero(t *testing.T) {
	if got := QuitChance(100, -5); got != 0 {
		t.Fatalf("shifted chance %d, want 0", got)
	}
	if got := QuitChance(50, 10); got != 25 {
		t.Fatalf("shifted chance %d, want 25", got)
	}
}

func TestEvaluateRetentionSkipsInactive(t *testing.T) {
	rng := NewRand(5)
	employees := []Employee{
		{ID: "e1", Morale: 0, Active: false},
		{ID: "e2", Morale: 0, Active: false},
	}
	quit, err := EvaluateRetention(rng, employees, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quit) != 0 {
		t.Fatalf("inactive employees quit: %v", quit)
	}
}

func TestEvaluateRetentionReturnsDeactivatedCopies(t *testing.T) {
	rng := NewRand(6)
	employees := make([]Employee, 50)
	for i := range employees {
		employees[i] = Employee{ID: "e", Morale: 0, Active: true}
	}
	quit, err := EvaluateRetention(rng, employees, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quit) == 0 {
		t.Fatalf("expected quits at morale 0 over 50 rolls")
	}
	for _, q := range quit {
		if q.Active {
			t.Fatalf("returned quitter still active")
		}
	}
	// The input slice is untouched; deactivation happens on the copies.
	for _, e := range employees {
		if !e.Active {
			t.Fatalf("input slice mutated")
		}
	}
}

func TestRetentionRateNearFiftyPercentAtMoraleFifteen(t *testing.T) {
	rng := NewRand(11)
	employees := make([]Employee, 1000)
	for i := range employees {
		employees[i] = Employee{ID: "e", Morale: 15, Active: true}
	}
	quit, err := EvaluateRetention(rng, employees, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Morale 15 rolls at 50%; 1000 independent trials should land well
	// inside [450,550].
	if len(quit) < 450 || len(quit) > 550 {
		t.Fatalf("quit count %d outside binomial band", len(quit))
	}
}
