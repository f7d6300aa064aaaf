package game

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Engine runs the simulation on top of a Store. Turns for one session are
// serialized through a per-session lock; different sessions proceed in
// parallel. The RNG is shared and safe for concurrent draws.
type Engine struct {
	store Store
	gen   *Generator
	rng   RNG
	clock Clock
	log   *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewEngine(store Store, rng RNG, clock Clock, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Engine{
		store: store,
		gen:   NewGenerator(rng),
		rng:   rng,
		clock: clock,
		log:   logger,
		locks: make(map[string]*sync.Mutex),
	}
}

func (e *Engine) lockSession(id string) func() {
	e.mu.Lock()
	l, ok := e.locks[id]
	if !ok {
		l = &sync.Mutex{}
		e.locks[id] = l
	}
	e.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// InitializeGame creates a new session with the starting budget, an opening
// set of contracts, and a pool of hireable employees.
func (e *Engine) InitializeGame(ctx context.Context, companyName string) (InitResult, error) {
	if err := ValidateCompanyName(companyName); err != nil {
		return InitResult{}, err
	}
	now := e.clock.Now()
	session := Session{
		ID:             uuid.NewString(),
		CompanyName:    strings.TrimSpace(companyName),
		CurrentQuarter: 1,
		CurrentWeek:    1,
		Budget:         StartingBudget,
		Status:         SessionActive,
		Perks:          NeutralPerks(),
		StartedAt:      now,
		UpdatedAt:      now,
	}

	count, err := e.gen.InitialContractCount()
	if err != nil {
		return InitResult{}, err
	}
	contracts, err := e.gen.Contracts(session.ID, 1, count)
	if err != nil {
		return InitResult{}, err
	}
	pool, err := e.gen.EmployeePool(session.ID, InitialEmployeePool)
	if err != nil {
		return InitResult{}, err
	}

	if err := e.store.Apply(ctx, ChangeSet{
		Sessions:  []Session{session},
		Contracts: contracts,
		Employees: pool,
	}); err != nil {
		return InitResult{}, err
	}

	e.log.Info("game initialized",
		"session_id", session.ID,
		"company", session.CompanyName,
		"contracts", len(contracts),
		"pool", len(pool))
	return InitResult{Session: session, Contracts: contracts, EmployeePool: pool}, nil
}

// HireEmployee activates a pool template, debiting the hiring cost. The
// budget is untouched when funds are short.
func (e *Engine) HireEmployee(ctx context.Context, sessionID, employeeID string) (Session, Employee, error) {
	defer e.lockSession(sessionID)()

	session, err := e.store.GetSession(ctx, sessionID)
	if err != nil {
		return Session{}, Employee{}, err
	}
	if session.Status != SessionActive {
		return Session{}, Employee{}, fmt.Errorf("%w: session is %s", ErrInvalidState, session.Status)
	}
	employee, err := e.store.GetEmployee(ctx, employeeID)
	if err != nil {
		return Session{}, Employee{}, err
	}
	if employee.SessionID != session.ID {
		return Session{}, Employee{}, ErrEmployeeNotFound
	}
	if employee.Active {
		return Session{}, Employee{}, fmt.Errorf("%w: employee already hired", ErrInvalidState)
	}

	cost := HiringCost(employee.Salary, session.Perks)
	if !session.CanAfford(cost) {
		return Session{}, Employee{}, ErrInsufficientFunds
	}

	now := e.clock.Now()
	employee.Active = true
	employee.Morale = clampMorale(employee.Morale)
	employee.HiredAt = &now
	session.Budget -= cost
	session.UpdatedAt = now

	if err := e.store.Apply(ctx, ChangeSet{
		Sessions:  []Session{session},
		Employees: []Employee{employee},
	}); err != nil {
		return Session{}, Employee{}, err
	}

	e.log.Info("employee hired",
		"session_id", session.ID,
		"employee_id", employee.ID,
		"cost", cost,
		"budget", session.Budget)
	return session, employee, nil
}

// FireEmployee deactivates an active employee. The record persists for
// history; deactivation is terminal.
func (e *Engine) FireEmployee(ctx context.Context, sessionID, employeeID string) (Employee, error) {
	defer e.lockSession(sessionID)()

	session, err := e.store.GetSession(ctx, sessionID)
	if err != nil {
		return Employee{}, err
	}
	if session.Status != SessionActive {
		return Employee{}, fmt.Errorf("%w: session is %s", ErrInvalidState, session.Status)
	}
	employee, err := e.store.GetEmployee(ctx, employeeID)
	if err != nil {
		return Employee{}, err
	}
	if employee.SessionID != session.ID {
		return Employee{}, ErrEmployeeNotFound
	}
	if !employee.Active {
		return Employee{}, fmt.Errorf("%w: employee is not active", ErrInvalidState)
	}

	employee.Active = false
	session.UpdatedAt = e.clock.Now()
	if err := e.store.Apply(ctx, ChangeSet{
		Sessions:  []Session{session},
		Employees: []Employee{employee},
	}); err != nil {
		return Employee{}, err
	}
	return employee, nil
}

// StartContract moves an available contract into progress.
func (e *Engine) StartContract(ctx context.Context, sessionID, contractID string) (Contract, error) {
	defer e.lockSession(sessionID)()

	session, err := e.store.GetSession(ctx, sessionID)
	if err != nil {
		return Contract{}, err
	}
	if session.Status != SessionActive {
		return Contract{}, fmt.Errorf("%w: session is %s", ErrInvalidState, session.Status)
	}
	contract, err := e.store.GetContract(ctx, contractID)
	if err != nil {
		return Contract{}, err
	}
	if contract.SessionID != session.ID {
		return Contract{}, ErrContractNotFound
	}
	if contract.Status != ContractAvailable {
		return Contract{}, fmt.Errorf("%w: contract is %s", ErrInvalidState, contract.Status)
	}

	contract.Status = ContractInProgress
	session.UpdatedAt = e.clock.Now()
	if err := e.store.Apply(ctx, ChangeSet{
		Sessions:  []Session{session},
		Contracts: []Contract{contract},
	}); err != nil {
		return Contract{}, err
	}
	return contract, nil
}

// AssignEmployee records that an employee works the contract during the
// session's current week. Reassigning the same pair in the same week fails
// with ErrDuplicateAssignment.
func (e *Engine) AssignEmployee(ctx context.Context, sessionID, contractID, employeeID string) (Assignment, error) {
	defer e.lockSession(sessionID)()

	session, err := e.store.GetSession(ctx, sessionID)
	if err != nil {
		return Assignment{}, err
	}
	if session.Status != SessionActive {
		return Assignment{}, fmt.Errorf("%w: session is %s", ErrInvalidState, session.Status)
	}
	contract, err := e.store.GetContract(ctx, contractID)
	if err != nil {
		return Assignment{}, err
	}
	if contract.SessionID != session.ID {
		return Assignment{}, ErrContractNotFound
	}
	if contract.Status != ContractInProgress {
		return Assignment{}, fmt.Errorf("%w: contract is %s", ErrInvalidState, contract.Status)
	}
	employee, err := e.store.GetEmployee(ctx, employeeID)
	if err != nil {
		return Assignment{}, err
	}
	if employee.SessionID != session.ID {
		return Assignment{}, ErrEmployeeNotFound
	}
	if !employee.Active {
		return Assignment{}, fmt.Errorf("%w: employee is not active", ErrInvalidState)
	}

	assignment := Assignment{
		ID:         uuid.NewString(),
		ContractID: contract.ID,
		EmployeeID: employee.ID,
		Week:       session.CurrentWeek,
		Active:     true,
	}
	session.UpdatedAt = e.clock.Now()
	if err := e.store.Apply(ctx, ChangeSet{
		Sessions:    []Session{session},
		Assignments: []Assignment{assignment},
	}); err != nil {
		return Assignment{}, err
	}
	return assignment, nil
}

// EndGame terminates an active session as completed.
func (e *Engine) EndGame(ctx context.Context, sessionID string) (Session, error) {
	defer e.lockSession(sessionID)()

	session, err := e.store.GetSession(ctx, sessionID)
	if err != nil {
		return Session{}, err
	}
	if session.Status != SessionActive {
		return Session{}, fmt.Errorf("%w: session is %s", ErrInvalidState, session.Status)
	}
	now := e.clock.Now()
	session.Status = SessionCompleted
	session.EndedAt = &now
	session.UpdatedAt = now
	if err := e.store.Apply(ctx, ChangeSet{Sessions: []Session{session}}); err != nil {
		return Session{}, err
	}
	e.log.Info("game ended",
		"session_id", session.ID,
		"quarter", session.CurrentQuarter,
		"score", TotalScore(session))
	return session, nil
}

// ResumeSession reactivates a paused session.
func (e *Engine) ResumeSession(ctx context.Context, sessionID string) (Session, error) {
	defer e.lockSession(sessionID)()

	session, err := e.store.GetSession(ctx, sessionID)
	if err != nil {
		return Session{}, err
	}
	if session.Status != SessionPaused {
		return Session{}, fmt.Errorf("%w: session is %s", ErrInvalidState, session.Status)
	}
	session.Status = SessionActive
	session.UpdatedAt = e.clock.Now()
	if err := e.store.Apply(ctx, ChangeSet{Sessions: []Session{session}}); err != nil {
		return Session{}, err
	}
	return session, nil
}

// GameState aggregates a session's entities for display.
func (e *Engine) GameState(ctx context.Context, sessionID string) (State, error) {
	session, err := e.store.GetSession(ctx, sessionID)
	if err != nil {
		return State{}, err
	}
	employees, err := e.store.ListEmployees(ctx, sessionID)
	if err != nil {
		return State{}, err
	}
	contracts, err := e.store.ListContracts(ctx, sessionID)
	if err != nil {
		return State{}, err
	}

	state := State{Session: session}
	for _, emp := range employees {
		if emp.Active {
			state.ActiveEmployees = append(state.ActiveEmployees, emp)
		} else if emp.HiredAt == nil {
			state.EmployeePool = append(state.EmployeePool, emp)
		}
	}
	for _, c := range contracts {
		switch c.Status {
		case ContractAvailable:
			state.AvailableContracts = append(state.AvailableContracts, c)
		case ContractInProgress:
			state.ActiveContracts = append(state.ActiveContracts, c)
		}
	}
	return state, nil
}

// PauseIdleSessions pauses active sessions untouched for longer than
// olderThan and returns how many were paused. Used by the sweeper, never
// by turn processing.
func (e *Engine) PauseIdleSessions(ctx context.Context, olderThan time.Duration) (int, error) {
	sessions, err := e.store.ListSessionsByStatus(ctx, SessionActive)
	if err != nil {
		return 0, err
	}
	cutoff := e.clock.Now().Add(-olderThan)
	paused := 0
	for _, s := range sessions {
		if !s.UpdatedAt.Before(cutoff) {
			continue
		}
		func() {
			defer e.lockSession(s.ID)()
			current, err := e.store.GetSession(ctx, s.ID)
			if err != nil || current.Status != SessionActive || !current.UpdatedAt.Before(cutoff) {
				return
			}
			current.Status = SessionPaused
			current.UpdatedAt = e.clock.Now()
			if err := e.store.Apply(ctx, ChangeSet{Sessions: []Session{current}}); err != nil {
				e.log.Error("pause idle session failed", "session_id", s.ID, "err", err)
				return
			}
			paused++
		}()
	}
	return paused, nil
}
