package game

import (
	"context"
	"fmt"
)

// weeklyMoraleDecay is subtracted from every active employee's morale at
// the start of each week, before perk bonuses.
const weeklyMoraleDecay = 2

// turnSnapshot is everything a turn reads, loaded up front so the
// resolution itself touches no storage.
type turnSnapshot struct {
	session     Session
	employees   []Employee
	contracts   []Contract
	assignments map[string][]Assignment
}

// ProcessWeekTurn advances the session by one week: contracts progress,
// employees may quit, salaries are paid, rewards are credited, and at a
// quarter boundary the score is checked against the threshold. The whole
// outcome is committed in a single Apply.
func (e *Engine) ProcessWeekTurn(ctx context.Context, sessionID string) (TurnResult, error) {
	defer e.lockSession(sessionID)()

	snap, err := e.loadTurnSnapshot(ctx, sessionID)
	if err != nil {
		return TurnResult{}, err
	}
	if snap.session.Status != SessionActive {
		return TurnResult{}, fmt.Errorf("%w: session is %s", ErrInvalidState, snap.session.Status)
	}

	result, changes, err := e.resolveTurn(snap)
	if err != nil {
		return TurnResult{}, err
	}
	if err := e.store.Apply(ctx, changes); err != nil {
		return TurnResult{}, err
	}

	e.log.Info("week processed",
		"session_id", result.Session.ID,
		"quarter", result.Session.CurrentQuarter,
		"week", result.Session.CurrentWeek,
		"budget", result.Session.Budget,
		"completed", len(result.CompletedContracts),
		"quit", len(result.QuitEmployees),
		"status", result.Session.Status)
	return result, nil
}

func (e *Engine) loadTurnSnapshot(ctx context.Context, sessionID string) (turnSnapshot, error) {
	session, err := e.store.GetSession(ctx, sessionID)
	if err != nil {
		return turnSnapshot{}, err
	}
	employees, err := e.store.ListEmployees(ctx, sessionID)
	if err != nil {
		return turnSnapshot{}, err
	}
	contracts, err := e.store.ListContracts(ctx, sessionID)
	if err != nil {
		return turnSnapshot{}, err
	}
	snap := turnSnapshot{
		session:     session,
		employees:   employees,
		contracts:   contracts,
		assignments: make(map[string][]Assignment),
	}
	for _, c := range contracts {
		if c.Status != ContractInProgress {
			continue
		}
		as, err := e.store.ListAssignments(ctx, c.ID, session.CurrentWeek)
		if err != nil {
			return turnSnapshot{}, err
		}
		snap.assignments[c.ID] = as
	}
	return snap, nil
}

// resolveTurn computes the next state of the week from a snapshot. It
// draws from the RNG but performs no storage access; the caller commits
// the returned ChangeSet atomically.
func (e *Engine) resolveTurn(snap turnSnapshot) (TurnResult, ChangeSet, error) {
	session := snap.session
	now := e.clock.Now()

	byID := make(map[string]*Employee, len(snap.employees))
	employees := make([]Employee, len(snap.employees))
	copy(employees, snap.employees)
	for i := range employees {
		byID[employees[i].ID] = &employees[i]
	}

	// Salaries for the week are owed by everyone active at its start,
	// including anyone who quits during it.
	var startActive []*Employee
	for i := range employees {
		if employees[i].Active {
			startActive = append(startActive, &employees[i])
		}
	}

	for _, emp := range startActive {
		*emp = AdjustMorale(*emp, session.Perks.WeeklyMoraleBonus-weeklyMoraleDecay)
	}

	result := TurnResult{}
	var changedContracts []Contract
	for _, c := range snap.contracts {
		if c.Status != ContractInProgress {
			continue
		}
		var workers []Employee
		for _, a := range snap.assignments[c.ID] {
			if emp, ok := byID[a.EmployeeID]; ok && emp.Active {
				workers = append(workers, *emp)
			}
		}
		advanced := AdvanceContract(c, workers)
		changedContracts = append(changedContracts, advanced)
		result.ContractResults = append(result.ContractResults, ContractResult{
			Contract:    advanced,
			WorkApplied: advanced.CurrentProgress - c.CurrentProgress,
			Workers:     len(workers),
		})
		if advanced.Status == ContractCompleted {
			result.CompletedContracts = append(result.CompletedContracts, advanced)
		}
	}

	var activeNow []Employee
	for _, emp := range startActive {
		activeNow = append(activeNow, *emp)
	}
	quitters, err := EvaluateRetention(e.rng, activeNow, session.Perks.QuitChanceShift)
	if err != nil {
		return TurnResult{}, ChangeSet{}, err
	}
	for _, q := range quitters {
		byID[q.ID].Active = false
	}
	result.QuitEmployees = quitters

	for _, emp := range startActive {
		session.Budget -= emp.Salary
	}
	for _, c := range result.CompletedContracts {
		session.Budget += int64(float64(c.FinalReward) * session.Perks.RewardMultiplier)
		session.StakeholderValue += c.StakeholderPoints
	}

	session.CurrentWeek++
	if session.CurrentWeek > WeeksPerQuarter {
		session.CurrentWeek = 1
		session.CurrentQuarter++

		threshold := MinimumThreshold(session.CurrentQuarter)
		if TotalScore(session) < threshold {
			session.Status = SessionFailed
			session.EndedAt = &now
		} else {
			count, err := e.gen.QuarterlyContractCount()
			if err != nil {
				return TurnResult{}, ChangeSet{}, err
			}
			fresh, err := e.gen.Contracts(session.ID, session.CurrentQuarter, count)
			if err != nil {
				return TurnResult{}, ChangeSet{}, err
			}
			result.NewContracts = fresh
		}
	}
	session.UpdatedAt = now
	result.Session = session

	changes := ChangeSet{
		Sessions:  []Session{session},
		Contracts: append(changedContracts, result.NewContracts...),
	}
	for _, emp := range startActive {
		changes.Employees = append(changes.Employees, *emp)
	}
	return result, changes, nil
}
