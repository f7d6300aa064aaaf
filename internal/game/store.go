package game

import "context"

// Store is the persistence surface the engine consumes. Implementations
// return the package's not-found sentinels for unresolved ids and must make
// Apply atomic: either every write in the change set lands or none do.
type Store interface {
	GetSession(ctx context.Context, id string) (Session, error)
	ListSessionsByStatus(ctx context.Context, status SessionStatus) ([]Session, error)

	GetEmployee(ctx context.Context, id string) (Employee, error)
	ListEmployees(ctx context.Context, sessionID string) ([]Employee, error)

	GetContract(ctx context.Context, id string) (Contract, error)
	ListContracts(ctx context.Context, sessionID string) ([]Contract, error)

	// ListAssignments returns the active assignments for a contract and week.
	ListAssignments(ctx context.Context, contractID string, week int) ([]Assignment, error)

	// Apply commits a change set as one unit. A new active assignment that
	// collides with an existing (contract, employee, week) triple fails the
	// whole set with ErrDuplicateAssignment.
	Apply(ctx context.Context, cs ChangeSet) error
}

// ChangeSet is the single commit point for every engine mutation: entities
// present are inserted or replaced wholesale.
type ChangeSet struct {
	Sessions    []Session
	Employees   []Employee
	Contracts   []Contract
	Assignments []Assignment
}
