package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/leandre000/P-manager/internal/types"
)

// taskWhere builds the WHERE clause for a task listing. The owner
// scope is always present; filter fields are AND-combined after it.
func taskWhere(userID string, filter types.TaskFilter) (string, []any) {
	clauses := []string{"user_id = $1"}
	args := []any{userID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Priority != "" {
		args = append(args, filter.Priority)
		clauses = append(clauses, fmt.Sprintf("priority = $%d", len(args)))
	}
	if filter.Tag != "" {
		args = append(args, filter.Tag)
		clauses = append(clauses, fmt.Sprintf("$%d = ANY(tags)", len(args)))
	}

	return strings.Join(clauses, " AND "), args
}

const taskColumns = `id, user_id, title, description, priority, due_date, status, tags, created_at`

func scanTask(row interface{ Scan(...any) error }) (types.Task, error) {
	var task types.Task
	var dueDate sql.NullTime

	err := row.Scan(&task.ID, &task.UserID, &task.Title, &task.Description,
		&task.Priority, &dueDate, &task.Status, &task.Tags, &task.CreatedAt)
	if err != nil {
		return types.Task{}, err
	}
	if dueDate.Valid {
		t := dueDate.Time
		task.DueDate = &t
	}
	return task, nil
}

func (d *DB) Tasks(ctx context.Context, userID string, filter types.TaskFilter) ([]types.Task, error) {
	where, args := taskWhere(userID, filter)
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE ` + where + ` ORDER BY created_at DESC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []types.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

func (d *DB) CreateTask(ctx context.Context, task types.Task) (types.Task, error) {
	task.ID = uuid.NewString()
	if task.Tags == nil {
		task.Tags = pq.StringArray{}
	}

	query := `INSERT INTO tasks (id, user_id, title, description, priority, due_date, status, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING created_at`
	err := d.db.QueryRowContext(ctx, query, task.ID, task.UserID, task.Title, task.Description,
		task.Priority, task.DueDate, task.Status, task.Tags).Scan(&task.CreatedAt)
	if err != nil {
		return types.Task{}, err
	}

	return task, nil
}

// UpdateTask applies a partial update. The owner scope on the locking
// read is the ownership check: a row owned by someone else reads as
// ErrNotFound. Nil patch fields leave columns unchanged.
func (d *DB) UpdateTask(ctx context.Context, id, userID string, patch types.TaskPatch) (types.Task, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return types.Task{}, err
	}
	defer tx.Rollback()

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND user_id = $2 FOR UPDATE`
	task, err := scanTask(tx.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return types.Task{}, ErrNotFound
		}
		return types.Task{}, err
	}

	task.Apply(patch)
	if task.Tags == nil {
		task.Tags = pq.StringArray{}
	}

	update := `UPDATE tasks SET title = $1, description = $2, priority = $3, due_date = $4, status = $5, tags = $6 WHERE id = $7`
	_, err = tx.ExecContext(ctx, update, task.Title, task.Description, task.Priority,
		task.DueDate, task.Status, task.Tags, task.ID)
	if err != nil {
		return types.Task{}, err
	}

	if err := tx.Commit(); err != nil {
		return types.Task{}, err
	}
	return task, nil
}

func (d *DB) DeleteTask(ctx context.Context, id, userID string) error {
	result, err := d.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
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
