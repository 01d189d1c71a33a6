package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a row does not exist or is owned by
	// another user; the two cases are indistinguishable on purpose.
	ErrNotFound = errors.New("db: not found")
	// ErrDuplicateEmail is returned when an insert or update would
	// violate the unique email index.
	ErrDuplicateEmail = errors.New("db: email already registered")
	// ErrGoalQuota is returned when a user already has five goals
	// created today.
	ErrGoalQuota = errors.New("db: daily goal quota reached")
)

type Config struct {
	User     string
	Password string
	DBName   string
	Host     string
	SSLMode  string
}

var defaultConfig = Config{
	User:    "postgres",
	DBName:  "pmanager",
	Host:    "localhost",
	SSLMode: "disable",
}

func DefaultConfig() Config {
	return defaultConfig
}

type DB struct {
	db *sql.DB
}

func Open(config Config) (*DB, error) {
	connStr := fmt.Sprintf("user=%s password=%s dbname=%s host=%s sslmode=%s",
		config.User, config.Password, config.DBName, config.Host, config.SSLMode)

	d := &DB{}

	var err error
	d.db, err = sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := d.db.Ping(); err != nil {
		return nil, err
	}
	log.Println("Connected to DB")

	return d, nil
}

func (d *DB) Close() {
	d.db.Close()
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id uuid PRIMARY KEY,
		email text NOT NULL UNIQUE,
		password text NOT NULL,
		name text NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id uuid PRIMARY KEY,
		user_id uuid NOT NULL REFERENCES users (id),
		title text NOT NULL,
		description text NOT NULL DEFAULT '',
		priority text NOT NULL DEFAULT '',
		due_date timestamptz,
		status text NOT NULL DEFAULT '',
		tags text[] NOT NULL DEFAULT '{}',
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS goals (
		id uuid PRIMARY KEY,
		user_id uuid NOT NULL REFERENCES users (id),
		title text NOT NULL,
		description text NOT NULL DEFAULT '',
		completed boolean NOT NULL DEFAULT FALSE,
		streak integer NOT NULL DEFAULT 0,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS notes (
		id uuid PRIMARY KEY,
		user_id uuid NOT NULL REFERENCES users (id),
		title text NOT NULL,
		content text NOT NULL DEFAULT '',
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
}

// Init creates the schema if it does not exist yet.
func (d *DB) Init(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := d.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// isUniqueViolation reports whether err is a Postgres unique-index
// violation (class 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
