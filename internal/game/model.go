package game

import (
	"errors"
	"strings"
)

const (
	StartingBudget int64 = 50_000

	WeeksPerQuarter = 13

	// Hiring costs two weeks of salary up front.
	HiringCostWeeks = 2

	InitialEmployeePool = 5

	DefaultAccuracyRequirement = 70
	DefaultBonusMultiplier     = 1.5
)

var (
	ErrSessionNotFound     = errors.New("game session not found")
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrContractNotFound    = errors.New("contract not found")
	ErrInvalidState        = errors.New("invalid state")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrInvalidRange        = errors.New("invalid range")
	ErrDuplicateAssignment = errors.New("employee already assigned to this contract this week")
)

// HiringCost is what it takes to put a template on payroll, after the
// session's cost perk.
func HiringCost(salary int64, perks Perks) int64 {
	p := perks.withDefaults()
	return int64(float64(salary*HiringCostWeeks) * p.CostMultiplier)
}

func ValidateCompanyName(name string) error {
	clean := strings.TrimSpace(name)
	if len(clean) < 2 {
		return errors.New("company name must be at least 2 characters")
	}
	if len(clean) > 100 {
		return errors.New("company name too long (max 100 chars)")
	}
	return nil
}

// AdjustMorale applies a delta to an employee's morale, clamped to [0,100].
func AdjustMorale(e Employee, delta int) Employee {
	e.Morale = clampMorale(e.Morale + delta)
	return e
}

func clampMorale(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
