// Package storage provides the persistence backends for the simulation:
// an in-memory store for tests and single-process runs, and a Postgres
// store for production.
package storage

import (
	"context"
	"fmt"
	"sync"

	"mogul/internal/game"
)

// MemoryStore keeps all state in maps behind one mutex. Apply validates
// the whole change set before touching anything, so a failed Apply leaves
// the store unchanged.
type MemoryStore struct {
	mu          sync.RWMutex
	sessions    map[string]game.Session
	employees   map[string]game.Employee
	contracts   map[string]game.Contract
	assignments map[string]game.Assignment

	// insertion order per session, for stable listings
	sessionOrder  []string
	employeeOrder map[string][]string
	contractOrder map[string][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions:      make(map[string]game.Session),
		employees:     make(map[string]game.Employee),
		contracts:     make(map[string]game.Contract),
		assignments:   make(map[string]game.Assignment),
		employeeOrder: make(map[string][]string),
		contractOrder: make(map[string][]string),
	}
}

var _ game.Store = (*MemoryStore)(nil)

func (m *MemoryStore) GetSession(_ context.Context, id string) (game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return game.Session{}, game.ErrSessionNotFound
	}
	return s, nil
}

func (m *MemoryStore) ListSessionsByStatus(_ context.Context, status game.SessionStatus) ([]game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []game.Session
	for _, id := range m.sessionOrder {
		if s := m.sessions[id]; s.Status == status {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MemoryStore) GetEmployee(_ context.Context, id string) (game.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.employees[id]
	if !ok {
		return game.Employee{}, game.ErrEmployeeNotFound
	}
	return e, nil
}

func (m *MemoryStore) ListEmployees(_ context.Context, sessionID string) ([]game.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := m.employeeOrder[sessionID]
	out := make([]game.Employee, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.employees[id])
	}
	return out, nil
}

func (m *MemoryStore) GetContract(_ context.Context, id string) (game.Contract, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.contracts[id]
	if !ok {
		return game.Contract{}, game.ErrContractNotFound
	}
	return c, nil
}

func (m *MemoryStore) ListContracts(_ context.Context, sessionID string) ([]game.Contract, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := m.contractOrder[sessionID]
	out := make([]game.Contract, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.contracts[id])
	}
	return out, nil
}

func (m *MemoryStore) ListAssignments(_ context.Context, contractID string, week int) ([]game.Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []game.Assignment
	for _, a := range m.assignments {
		if a.Active && a.ContractID == contractID && a.Week == week {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MemoryStore) Apply(_ context.Context, cs game.ChangeSet) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Validate first: new assignments must not collide with an existing
	// active assignment for the same contract, employee, and week.
	taken := make(map[string]bool)
	for _, a := range m.assignments {
		if a.Active {
			taken[assignmentKey(a)] = true
		}
	}
	for _, a := range cs.Assignments {
		if _, exists := m.assignments[a.ID]; exists {
			continue
		}
		if a.Active && taken[assignmentKey(a)] {
			return fmt.Errorf("%w: contract %s employee %s week %d",
				game.ErrDuplicateAssignment, a.ContractID, a.EmployeeID, a.Week)
		}
		taken[assignmentKey(a)] = true
	}

	for _, s := range cs.Sessions {
		if _, exists := m.sessions[s.ID]; !exists {
			m.sessionOrder = append(m.sessionOrder, s.ID)
		}
		m.sessions[s.ID] = s
	}
	for _, e := range cs.Employees {
		if _, exists := m.employees[e.ID]; !exists {
			m.employeeOrder[e.SessionID] = append(m.employeeOrder[e.SessionID], e.ID)
		}
		m.employees[e.ID] = e
	}
	for _, c := range cs.Contracts {
		if _, exists := m.contracts[c.ID]; !exists {
			m.contractOrder[c.SessionID] = append(m.contractOrder[c.SessionID], c.ID)
		}
		m.contracts[c.ID] = c
	}
	for _, a := range cs.Assignments {
		m.assignments[a.ID] = a
	}
	return nil
}

func assignmentKey(a game.Assignment) string {
	return fmt.Sprintf("%s|%s|%d", a.ContractID, a.EmployeeID, a.Week)
}
