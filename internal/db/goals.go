package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/leandre000/P-manager/internal/types"
)

const goalColumns = `id, user_id, title, description, completed, streak, created_at`

func scanGoal(row interface{ Scan(...any) error }) (types.Goal, error) {
	var goal types.Goal
	err := row.Scan(&goal.ID, &goal.UserID, &goal.Title, &goal.Description,
		&goal.Completed, &goal.Streak, &goal.CreatedAt)
	return goal, err
}

func (d *DB) Goals(ctx context.Context, userID string) ([]types.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1 ORDER BY created_at DESC`
	return d.queryGoals(ctx, query, userID)
}

// GoalsSince lists goals created at or after the given boundary,
// newest first.
func (d *DB) GoalsSince(ctx context.Context, userID string, since time.Time) ([]types.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1 AND created_at >= $2 ORDER BY created_at DESC`
	return d.queryGoals(ctx, query, userID, since)
}

func (d *DB) queryGoals(ctx context.Context, query string, args ...any) ([]types.Goal, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []types.Goal{}
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}

	return goals, rows.Err()
}

// CreateGoal inserts a goal unless the user already created maxPerDay
// goals since dayStart.
func (d *DB) CreateGoal(ctx context.Context, goal types.Goal, dayStart time.Time, maxPerDay int) (types.Goal, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return types.Goal{}, err
	}
	defer tx.Rollback()

	// A plain READ COMMITTED transaction does not serialize a
	// count-then-insert; the per-user advisory lock does. It is held
	// until the transaction ends.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, goal.UserID); err != nil {
		return types.Goal{}, err
	}

	var count int
	countQuery := `SELECT count(*) FROM goals WHERE user_id = $1 AND created_at >= $2`
	if err := tx.QueryRowContext(ctx, countQuery, goal.UserID, dayStart).Scan(&count); err != nil {
		return types.Goal{}, err
	}
	if count >= maxPerDay {
		return types.Goal{}, ErrGoalQuota
	}

	goal.ID = uuid.NewString()
	goal.Completed = false
	goal.Streak = 0

	insert := `INSERT INTO goals (id, user_id, title, description) VALUES ($1, $2, $3, $4) RETURNING created_at`
	if err := tx.QueryRowContext(ctx, insert, goal.ID, goal.UserID, goal.Title, goal.Description).Scan(&goal.CreatedAt); err != nil {
		return types.Goal{}, err
	}

	if err := tx.Commit(); err != nil {
		return types.Goal{}, err
	}
	return goal, nil
}

// UpdateGoal applies a partial update and, when the patch carries
// completed, the streak transition against the previous completed
// value. The row is locked for the read-modify-write so concurrent
// toggles cannot race on the streak.
func (d *DB) UpdateGoal(ctx context.Context, id, userID string, patch types.GoalPatch) (types.Goal, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return types.Goal{}, err
	}
	defer tx.Rollback()

	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = $1 AND user_id = $2 FOR UPDATE`
	goal, err := scanGoal(tx.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return types.Goal{}, ErrNotFound
		}
		return types.Goal{}, err
	}

	goal.Apply(patch)

	update := `UPDATE goals SET title = $1, description = $2, completed = $3, streak = $4 WHERE id = $5`
	if _, err := tx.ExecContext(ctx, update, goal.Title, goal.Description, goal.Completed, goal.Streak, goal.ID); err != nil {
		return types.Goal{}, err
	}

	if err := tx.Commit(); err != nil {
		return types.Goal{}, err
	}
	return goal, nil
}

func (d *DB) DeleteGoal(ctx context.Context, id, userID string) error {
	result, err := d.db.ExecContext(ctx, `DELETE FROM goals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
