package db

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/leandre000/P-manager/internal/types"
)

func (d *DB) Notes(ctx context.Context, userID string) ([]types.Note, error) {
	query := `SELECT id, user_id, title, content, created_at FROM notes WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := d.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []types.Note{}
	for rows.Next() {
		var note types.Note
		if err := rows.Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	return notes, rows.Err()
}

func (d *DB) CreateNote(ctx context.Context, note types.Note) (types.Note, error) {
	note.ID = uuid.NewString()

	query := `INSERT INTO notes (id, user_id, title, content) VALUES ($1, $2, $3, $4) RETURNING created_at`
	err := d.db.QueryRowContext(ctx, query, note.ID, note.UserID, note.Title, note.Content).Scan(&note.CreatedAt)
	if err != nil {
		return types.Note{}, err
	}

	return note, nil
}

// UpdateNote applies a partial update behind the same owner-scoped
// locking read as tasks; nil patch fields leave columns unchanged.
func (d *DB) UpdateNote(ctx context.Context, id, userID string, patch types.NotePatch) (types.Note, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return types.Note{}, err
	}
	defer tx.Rollback()

	var note types.Note
	query := `SELECT id, user_id, title, content, created_at FROM notes WHERE id = $1 AND user_id = $2 FOR UPDATE`
	row := tx.QueryRowContext(ctx, query, id, userID)
	if err := row.Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return types.Note{}, ErrNotFound
		}
		return types.Note{}, err
	}

	note.Apply(patch)

	if _, err := tx.ExecContext(ctx, `UPDATE notes SET title = $1, content = $2 WHERE id = $3`, note.Title, note.Content, note.ID); err != nil {
		return types.Note{}, err
	}

	if err := tx.Commit(); err != nil {
		return types.Note{}, err
	}
	return note, nil
}

func (d *DB) DeleteNote(ctx context.Context, id, userID string) error {
	result, err := d.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1 AND user_id = $2`, id, userID)
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
