// Package postgres implements the domain repositories using PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"weightgoal/internal/domain"

	_ "github.com/lib/pq"
)

// DB wraps a *sql.DB and implements domain repository interfaces.
type DB struct {
	sql *sql.DB
}

var (
	_ domain.WeightRepository  = (*DB)(nil)
	_ domain.GoalRepository    = (*DB)(nil)
	_ domain.UserRepository    = (*DB)(nil)
	_ domain.SessionRepository = (*SessionRepo)(nil)
)

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := New(s)
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// New wraps an already opened connection pool without migrating it.
func New(s *sql.DB) *DB {
	return &DB{sql: s}
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

var migrations = []string{
	"CREATE TABLE IF NOT EXISTS users (id BIGSERIAL PRIMARY KEY, username TEXT UNIQUE NOT NULL, password_hash TEXT NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
	"CREATE TABLE IF NOT EXISTS sessions (token TEXT PRIMARY KEY, user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, user_agent TEXT NOT NULL DEFAULT '', ip TEXT NOT NULL DEFAULT '', expires_at TIMESTAMPTZ NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
	"CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);",
	"CREATE TABLE IF NOT EXISTS goals (id BIGSERIAL PRIMARY KEY, user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, initial_weight DOUBLE PRECISION, current_weight DOUBLE PRECISION NOT NULL, target_weight DOUBLE PRECISION NOT NULL, height DOUBLE PRECISION NOT NULL DEFAULT 0, start_date DATE NOT NULL, target_date DATE NOT NULL, status TEXT NOT NULL CHECK(status IN ('active','achieved','discarded','expired')));",
	"CREATE INDEX IF NOT EXISTS idx_goals_user_status ON goals(user_id, status);",
	"CREATE TABLE IF NOT EXISTS weight_entries (id BIGSERIAL PRIMARY KEY, goal_id BIGINT NOT NULL REFERENCES goals(id) ON DELETE CASCADE, day DATE NOT NULL, weight DOUBLE PRECISION NOT NULL CHECK(weight > 0), notes TEXT NOT NULL DEFAULT '', created_at TIMESTAMPTZ NOT NULL);",
	"CREATE INDEX IF NOT EXISTS idx_weight_entries_goal_day ON weight_entries(goal_id, day);",
}

func (d *DB) migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
