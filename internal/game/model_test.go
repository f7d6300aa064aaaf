package game

import (
	"strings"
	"testing"
)

func TestHiringCost(t *testing.T) {
	if got := HiringCost(800, NeutralPerks()); got != 1600 {
		t.Fatalf("cost %d, want two weeks of salary", got)
	}
	if got := HiringCost(800, Perks{CostMultiplier: 0.5, RewardMultiplier: 1}); got != 800 {
		t.Fatalf("discounted cost %d", got)
	}
	// Zero-value perks behave as neutral.
	if got := HiringCost(800, Perks{}); got != 1600 {
		t.Fatalf("zero perks cost %d", got)
	}
}

func TestValidateCompanyName(t *testing.T) {
	valid := []string{"Acme", "Ox", "  Padded Name  "}
	for _, name := range valid {
		if err := ValidateCompanyName(name); err != nil {
			t.Fatalf("expected %q valid: %v", name, err)
		}
	}
	invalid := []string{"", "A", "   ", strings.Repeat("x", 101)}
	for _, name := range invalid {
		if err := ValidateCompanyName(name); err == nil {
			t.Fatalf("expected %q to fail", name)
		}
	}
}

func TestAdjustMorale(t *testing.T) {
	e := Employee{Morale: 95}
	if got := AdjustMorale(e, 10).Morale; got != 100 {
		t.Fatalf("morale clamped high: %d", got)
	}
	if got := AdjustMorale(Employee{Morale: 3}, -10).Morale; got != 0 {
		t.Fatalf("morale clamped low: %d", got)
	}
	if got := AdjustMorale(Employee{Morale: 50}, -2).Morale; got != 48 {
		t.Fatalf("morale delta: %d", got)
	}
}

func TestClampMorale(t *testing.T) {
	if got := clampMorale(-5); got != 0 {
		t.Fatalf("clamp low: %d", got)
	}
	if got := clampMorale(120); got != 100 {
		t.Fatalf("clamp high: %d", got)
	}
	if got := clampMorale(55); got != 55 {
		t.Fatalf("clamp mid: %d", got)
	}
}
