package game

import "time"

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionFailed    SessionStatus = "failed"
	SessionPaused    SessionStatus = "paused"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type ContractStatus string

const (
	ContractAvailable  ContractStatus = "available"
	ContractInProgress ContractStatus = "in_progress"
	ContractCompleted  ContractStatus = "completed"
	ContractFailed     ContractStatus = "failed"
	ContractOverdue    ContractStatus = "overdue"
)

type EmployeeType string

const EmployeeAnalyst EmployeeType = "analyst"

// Perks are optional run modifiers applied to a session. The zero value is
// treated as neutral; use withDefaults before doing arithmetic with it.
type Perks struct {
	CostMultiplier    float64 `json:"cost_multiplier"`
	RewardMultiplier  float64 `json:"reward_multiplier"`
	WeeklyMoraleBonus int     `json:"weekly_morale_bonus"`
	QuitChanceShift   int     `json:"quit_chance_shift"`
}

func NeutralPerks() Perks {
	return Perks{CostMultiplier: 1, RewardMultiplier: 1}
}

func (p Perks) withDefaults() Perks {
	if p.CostMultiplier <= 0 {
		p.CostMultiplier = 1
	}
	if p.RewardMultiplier <= 0 {
		p.RewardMultiplier = 1
	}
	return p
}

// Session is one company run. Week stays within [1,13]; the quarter
// increments exactly when the week wraps.
type Session struct {
	ID               string        `json:"id"`
	CompanyName      string        `json:"company_name"`
	CurrentQuarter   int           `json:"current_quarter"`
	CurrentWeek      int           `json:"current_week"`
	Budget           int64         `json:"budget"`
	StakeholderValue int           `json:"stakeholder_value"`
	ErrorPenalties   int           `json:"error_penalties"`
	Status           SessionStatus `json:"status"`
	Perks            Perks         `json:"perks"`
	StartedAt        time.Time     `json:"started_at"`
	EndedAt          *time.Time    `json:"ended_at,omitempty"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

func (s Session) CanAfford(amount int64) bool {
	return s.Budget >= amount
}

// Employee is a hire belonging to one session. Pool templates are stored
// with Active=false and become active on hiring; deactivation (quit or
// fired) is terminal but the record persists.
type Employee struct {
	ID        string       `json:"id"`
	SessionID string       `json:"session_id"`
	Name      string       `json:"name"`
	Type      EmployeeType `json:"type"`
	Level     int          `json:"level"`
	Speed     int          `json:"speed"`
	Accuracy  int          `json:"accuracy"`
	Salary    int64        `json:"salary"`
	Morale    int          `json:"morale"`
	Active    bool         `json:"active"`
	HiredAt   *time.Time   `json:"hired_at,omitempty"`
}

// EffectiveSpeed scales base speed by morale and a 10% per-level bonus,
// never below 1 work point.
func (e Employee) EffectiveSpeed() int {
	moraleFrac := float64(e.Morale) / 100.0
	levelBonus := 1.0 + float64(e.Level-1)*0.1
	v := int(float64(e.Speed) * moraleFrac * levelBonus)
	if v < 1 {
		v = 1
	}
	return v
}

// EffectiveAccuracy scales base accuracy by morale and a 5% per-level
// bonus, clamped to [1,100].
func (e Employee) EffectiveAccuracy() int {
	moraleFrac := float64(e.Morale) / 100.0
	levelBonus := 1.0 + float64(e.Level-1)*0.05
	v := int(float64(e.Accuracy) * moraleFrac * levelBonus)
	if v < 1 {
		v = 1
	}
	if v > 100 {
		v = 100
	}
	return v
}

// Contract is a unit of work scoped to one session.
type Contract struct {
	ID                  string         `json:"id"`
	SessionID           string         `json:"session_id"`
	Title               string         `json:"title"`
	Description         string         `json:"description"`
	Difficulty          Difficulty     `json:"difficulty"`
	TotalWorkRequired   int            `json:"total_work_required"`
	CurrentProgress     int            `json:"current_progress"`
	DeadlineWeeks       int            `json:"deadline_weeks"`
	WeeksRemaining      int            `json:"weeks_remaining"`
	BaseReward          int64          `json:"base_reward"`
	StakeholderPoints   int            `json:"stakeholder_points"`
	BonusMultiplier     float64        `json:"bonus_multiplier"`
	Status              ContractStatus `json:"status"`
	AccuracyRequirement int            `json:"accuracy_requirement"`
	CurrentAccuracy     int            `json:"current_accuracy"`
	// FinalReward is the effective reward frozen at the moment of
	// completion; zero until then.
	FinalReward int64 `json:"final_reward"`
}

func (c Contract) IsComplete() bool {
	return c.CurrentProgress >= c.TotalWorkRequired
}

func (c Contract) CompletionPercentage() float64 {
	if c.TotalWorkRequired == 0 {
		return 0
	}
	return float64(c.CurrentProgress) / float64(c.TotalWorkRequired) * 100
}

// Assignment records that an employee contributed to a contract during a
// given week. At most one active assignment exists per
// (contract, employee, week).
type Assignment struct {
	ID         string `json:"id"`
	ContractID string `json:"contract_id"`
	EmployeeID string `json:"employee_id"`
	Week       int    `json:"week"`
	Active     bool   `json:"active"`
}

// InitResult is the outcome of starting a new game.
type InitResult struct {
	Session      Session    `json:"session"`
	Contracts    []Contract `json:"contracts"`
	EmployeePool []Employee `json:"employee_pool"`
}

// ContractResult describes one in-progress contract after a week of work.
type ContractResult struct {
	Contract    Contract `json:"contract"`
	WorkApplied int      `json:"work_applied"`
	Workers     int      `json:"workers"`
}

// TurnResult is the outcome of one processed week.
type TurnResult struct {
	Session            Session          `json:"session"`
	ContractResults    []ContractResult `json:"contract_results"`
	QuitEmployees      []Employee       `json:"quit_employees"`
	CompletedContracts []Contract       `json:"completed_contracts"`
	NewContracts       []Contract       `json:"new_contracts"`
}

// State is the full view of a session for callers.
type State struct {
	Session            Session    `json:"session"`
	ActiveEmployees    []Employee `json:"active_employees"`
	EmployeePool       []Employee `json:"employee_pool"`
	AvailableContracts []Contract `json:"available_contracts"`
	ActiveContracts    []Contract `json:"active_contracts"`
}
