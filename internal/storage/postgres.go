package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"mogul/internal/game"
)

// PostgresStore persists game state in Postgres. Apply runs as one
// Serializable transaction and retries on serialization conflicts.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

var _ game.Store = (*PostgresStore)(nil)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		company_name TEXT NOT NULL,
		current_quarter INT NOT NULL,
		current_week INT NOT NULL,
		budget BIGINT NOT NULL,
		stakeholder_value INT NOT NULL,
		error_penalties INT NOT NULL,
		status TEXT NOT NULL,
		cost_multiplier DOUBLE PRECISION NOT NULL,
		reward_multiplier DOUBLE PRECISION NOT NULL,
		weekly_morale_bonus INT NOT NULL,
		quit_chance_shift INT NOT NULL,
		started_at TIMESTAMPTZ NOT NULL,
		ended_at TIMESTAMPTZ,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS sessions_status_idx ON sessions (status)`,
	`CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES sessions(id),
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		level INT NOT NULL,
		speed INT NOT NULL,
		accuracy INT NOT NULL,
		salary BIGINT NOT NULL,
		morale INT NOT NULL,
		active BOOLEAN NOT NULL,
		hired_at TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS employees_session_idx ON employees (session_id)`,
	`CREATE TABLE IF NOT EXISTS contracts (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES sessions(id),
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		total_work INT NOT NULL,
		progress INT NOT NULL,
		deadline_weeks INT NOT NULL,
		weeks_remaining INT NOT NULL,
		reward BIGINT NOT NULL,
		stakeholder_points INT NOT NULL,
		bonus_multiplier DOUBLE PRECISION NOT NULL,
		status TEXT NOT NULL,
		accuracy_requirement INT NOT NULL,
		current_accuracy INT NOT NULL,
		final_reward BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS contracts_session_idx ON contracts (session_id)`,
	`CREATE TABLE IF NOT EXISTS assignments (
		id TEXT PRIMARY KEY,
		contract_id TEXT NOT NULL REFERENCES contracts(id),
		employee_id TEXT NOT NULL REFERENCES employees(id),
		week_assigned INT NOT NULL,
		active BOOLEAN NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS assignments_unique_idx
		ON assignments (contract_id, employee_id, week_assigned) WHERE active`,
}

// EnsureSchema creates the tables and indexes if they do not exist.
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := p.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (p *PostgresStore) GetSession(ctx context.Context, id string) (game.Session, error) {
	row := p.db.QueryRow(ctx, `
		SELECT id, company_name, current_quarter, current_week, budget,
		       stakeholder_value, error_penalties, status,
		       cost_multiplier, reward_multiplier, weekly_morale_bonus, quit_chance_shift,
		       started_at, ended_at, updated_at
		FROM sessions WHERE id = $1`, id)
	return scanSession(row)
}

func (p *PostgresStore) ListSessionsByStatus(ctx context.Context, status game.SessionStatus) ([]game.Session, error) {
	rows, err := p.db.Query(ctx, `
		SELECT id, company_name, current_quarter, current_week, budget,
		       stakeholder_value, error_penalties, status,
		       cost_multiplier, reward_multiplier, weekly_morale_bonus, quit_chance_shift,
		       started_at, ended_at, updated_at
		FROM sessions WHERE status = $1 ORDER BY started_at`, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []game.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (p *PostgresStore) GetEmployee(ctx context.Context, id string) (game.Employee, error) {
	row := p.db.QueryRow(ctx, `
		SELECT id, session_id, name, type, level, speed, accuracy, salary, morale, active, hired_at
		FROM employees WHERE id = $1`, id)
	e, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return game.Employee{}, game.ErrEmployeeNotFound
	}
	return e, err
}

func (p *PostgresStore) ListEmployees(ctx context.Context, sessionID string) ([]game.Employee, error) {
	rows, err := p.db.Query(ctx, `
		SELECT id, session_id, name, type, level, speed, accuracy, salary, morale, active, hired_at
		FROM employees WHERE session_id = $1 ORDER BY id`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []game.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (p *PostgresStore) GetContract(ctx context.Context, id string) (game.Contract, error) {
	row := p.db.QueryRow(ctx, `
		SELECT id, session_id, title, description, difficulty, total_work, progress,
		       deadline_weeks, weeks_remaining, reward, stakeholder_points, bonus_multiplier,
		       status, accuracy_requirement, current_accuracy, final_reward
		FROM contracts WHERE id = $1`, id)
	c, err := scanContract(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return game.Contract{}, game.ErrContractNotFound
	}
	return c, err
}

func (p *PostgresStore) ListContracts(ctx context.Context, sessionID string) ([]game.Contract, error) {
	rows, err := p.db.Query(ctx, `
		SELECT id, session_id, title, description, difficulty, total_work, progress,
		       deadline_weeks, weeks_remaining, reward, stakeholder_points, bonus_multiplier,
		       status, accuracy_requirement, current_accuracy, final_reward
		FROM contracts WHERE session_id = $1 ORDER BY id`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []game.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (p *PostgresStore) ListAssignments(ctx context.Context, contractID string, week int) ([]game.Assignment, error) {
	rows, err := p.db.Query(ctx, `
		SELECT id, contract_id, employee_id, week_assigned, active
		FROM assignments WHERE contract_id = $1 AND week_assigned = $2 AND active`, contractID, week)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []game.Assignment
	for rows.Next() {
		var a game.Assignment
		if err := rows.Scan(&a.ID, &a.ContractID, &a.EmployeeID, &a.Week, &a.Active); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Apply upserts the change set in a single Serializable transaction,
// retrying with backoff on 40001 conflicts.
func (p *PostgresStore) Apply(ctx context.Context, cs game.ChangeSet) error {
	const maxAttempts = 8
	retryDelay := 75 * time.Millisecond
	for attempt := 0; attempt < maxAttempts; attempt++ {
		tx, err := p.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
		if err != nil {
			return err
		}
		err = func() error {
			defer tx.Rollback(ctx)
			if err := applyTx(ctx, tx, cs); err != nil {
				return err
			}
			return tx.Commit(ctx)
		}()
		if err == nil {
			return nil
		}
		if !isSerializationError(err) {
			return err
		}
		if attempt == maxAttempts-1 {
			return err
		}
		if err := sleepWithContext(ctx, retryDelay); err != nil {
			return err
		}
		if retryDelay < 1200*time.Millisecond {
			retryDelay *= 2
		}
	}
	return nil
}

func applyTx(ctx context.Context, tx pgx.Tx, cs game.ChangeSet) error {
	for _, s := range cs.Sessions {
		_, err := tx.Exec(ctx, `
			INSERT INTO sessions (id, company_name, current_quarter, current_week, budget,
				stakeholder_value, error_penalties, status,
				cost_multiplier, reward_multiplier, weekly_morale_bonus, quit_chance_shift,
				started_at, ended_at, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
			ON CONFLICT (id) DO UPDATE SET
				current_quarter = EXCLUDED.current_quarter,
				current_week = EXCLUDED.current_week,
				budget = EXCLUDED.budget,
				stakeholder_value = EXCLUDED.stakeholder_value,
				error_penalties = EXCLUDED.error_penalties,
				status = EXCLUDED.status,
				cost_multiplier = EXCLUDED.cost_multiplier,
				reward_multiplier = EXCLUDED.reward_multiplier,
				weekly_morale_bonus = EXCLUDED.weekly_morale_bonus,
				quit_chance_shift = EXCLUDED.quit_chance_shift,
				ended_at = EXCLUDED.ended_at,
				updated_at = EXCLUDED.updated_at`,
			s.ID, s.CompanyName, s.CurrentQuarter, s.CurrentWeek, s.Budget,
			s.StakeholderValue, s.ErrorPenalties, string(s.Status),
			s.Perks.CostMultiplier, s.Perks.RewardMultiplier, s.Perks.WeeklyMoraleBonus, s.Perks.QuitChanceShift,
			s.StartedAt, s.EndedAt, s.UpdatedAt)
		if err != nil {
			return err
		}
	}
	for _, e := range cs.Employees {
		_, err := tx.Exec(ctx, `
			INSERT INTO employees (id, session_id, name, type, level, speed, accuracy, salary, morale, active, hired_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
			ON CONFLICT (id) DO UPDATE SET
				morale = EXCLUDED.morale,
				active = EXCLUDED.active,
				hired_at = EXCLUDED.hired_at`,
			e.ID, e.SessionID, e.Name, string(e.Type), e.Level, e.Speed, e.Accuracy,
			e.Salary, e.Morale, e.Active, e.HiredAt)
		if err != nil {
			return err
		}
	}
	for _, c := range cs.Contracts {
		_, err := tx.Exec(ctx, `
			INSERT INTO contracts (id, session_id, title, description, difficulty, total_work, progress,
				deadline_weeks, weeks_remaining, reward, stakeholder_points, bonus_multiplier,
				status, accuracy_requirement, current_accuracy, final_reward)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
			ON CONFLICT (id) DO UPDATE SET
				progress = EXCLUDED.progress,
				weeks_remaining = EXCLUDED.weeks_remaining,
				status = EXCLUDED.status,
				current_accuracy = EXCLUDED.current_accuracy,
				final_reward = EXCLUDED.final_reward`,
			c.ID, c.SessionID, c.Title, c.Description, string(c.Difficulty), c.TotalWorkRequired, c.CurrentProgress,
			c.DeadlineWeeks, c.WeeksRemaining, c.BaseReward, c.StakeholderPoints, c.BonusMultiplier,
			string(c.Status), c.AccuracyRequirement, c.CurrentAccuracy, c.FinalReward)
		if err != nil {
			return err
		}
	}
	for _, a := range cs.Assignments {
		tag, err := tx.Exec(ctx, `
			INSERT INTO assignments (id, contract_id, employee_id, week_assigned, active)
			VALUES ($1,$2,$3,$4,$5)
			ON CONFLICT (contract_id, employee_id, week_assigned) WHERE active DO NOTHING`,
			a.ID, a.ContractID, a.EmployeeID, a.Week, a.Active)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: contract %s employee %s week %d",
				game.ErrDuplicateAssignment, a.ContractID, a.EmployeeID, a.Week)
		}
	}
	return nil
}

func scanSession(row pgx.Row) (game.Session, error) {
	var s game.Session
	var status string
	err := row.Scan(&s.ID, &s.CompanyName, &s.CurrentQuarter, &s.CurrentWeek, &s.Budget,
		&s.StakeholderValue, &s.ErrorPenalties, &status,
		&s.Perks.CostMultiplier, &s.Perks.RewardMultiplier, &s.Perks.WeeklyMoraleBonus, &s.Perks.QuitChanceShift,
		&s.StartedAt, &s.EndedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return game.Session{}, game.ErrSessionNotFound
	}
	if err != nil {
		return game.Session{}, err
	}
	s.Status = game.SessionStatus(status)
	return s, nil
}

func scanEmployee(row pgx.Row) (game.Employee, error) {
	var e game.Employee
	var typ string
	err := row.Scan(&e.ID, &e.SessionID, &e.Name, &typ, &e.Level, &e.Speed, &e.Accuracy,
		&e.Salary, &e.Morale, &e.Active, &e.HiredAt)
	if err != nil {
		return game.Employee{}, err
	}
	e.Type = game.EmployeeType(typ)
	return e, nil
}

func scanContract(row pgx.Row) (game.Contract, error) {
	var c game.Contract
	var difficulty, status string
	err := row.Scan(&c.ID, &c.SessionID, &c.Title, &c.Description, &difficulty, &c.TotalWorkRequired, &c.CurrentProgress,
		&c.DeadlineWeeks, &c.WeeksRemaining, &c.BaseReward, &c.StakeholderPoints, &c.BonusMultiplier,
		&status, &c.AccuracyRequirement, &c.CurrentAccuracy, &c.FinalReward)
	if err != nil {
		return game.Contract{}, err
	}
	c.Difficulty = game.Difficulty(difficulty)
	c.Status = game.ContractStatus(status)
	return c, nil
}

func isSerializationError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "40001"
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
