package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/leandre000/P-manager/internal/types"
)

func (d *DB) CreateUser(ctx context.Context, email, passwordHash, name string) (types.User, error) {
	user := types.User{
		ID:       uuid.NewString(),
		Email:    email,
		Password: passwordHash,
		Name:     name,
	}

	query := `INSERT INTO users (id, email, password, name) VALUES ($1, $2, $3, $4) RETURNING created_at`
	err := d.db.QueryRowContext(ctx, query, user.ID, user.Email, user.Password, user.Name).Scan(&user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return types.User{}, ErrDuplicateEmail
		}
		return types.User{}, err
	}

	return user, nil
}

func (d *DB) UserByEmail(ctx context.Context, email string) (types.User, error) {
	var user types.User

	query := `SELECT id, email, password, name, created_at FROM users WHERE email = $1`
	row := d.db.QueryRowContext(ctx, query, email)
	if err := row.Scan(&user.ID, &user.Email, &user.Password, &user.Name, &user.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}

	return user, nil
}

func (d *DB) UserByID(ctx context.Context, id string) (types.User, error) {
	var user types.User

	query := `SELECT id, email, password, name, created_at FROM users WHERE id = $1`
	row := d.db.QueryRowContext(ctx, query, id)
	if err := row.Scan(&user.ID, &user.Email, &user.Password, &user.Name, &user.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}

	return user, nil
}

// UpdateUser overwrites email, password hash, and name for the given
// user id. Callers pass the merged record, not a partial one.
func (d *DB) UpdateUser(ctx context.Context, user types.User) (types.User, error) {
	query := `UPDATE users SET email = $1, password = $2, name = $3 WHERE id = $4 RETURNING created_at`
	var createdAt time.Time
	err := d.db.QueryRowContext(ctx, query, user.Email, user.Password, user.Name, user.ID).Scan(&createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.User{}, ErrNotFound
		}
		if isUniqueViolation(err) {
			return types.User{}, ErrDuplicateEmail
		}
		return types.User{}, err
	}
	user.CreatedAt = createdAt

	return user, nil
}
