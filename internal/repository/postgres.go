// Package repository persists parse and feedback logs to PostgreSQL.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"dealfinder/internal/model"
)

// PostgresRepository handles database operations
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	// Disable prepared statement caching to avoid "unnamed prepared statement does not exist" errors
	if !strings.Contains(dsn, "?") {
		dsn += "?prefer_simple_protocol=true"
	} else {
		dsn += "&prefer_simple_protocol=true"
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// EnsureSchema creates the log tables when they do not exist yet.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS parse_logs (
			id          BIGSERIAL PRIMARY KEY,
			parse_id    TEXT NOT NULL UNIQUE,
			query       TEXT NOT NULL,
			source      TEXT NOT NULL,
			record      JSONB NOT NULL,
			coverage    INT NOT NULL,
			took_ms     BIGINT NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS feedback_logs (
			id           BIGSERIAL PRIMARY KEY,
			parse_id     TEXT NOT NULL,
			prospect_id  TEXT NOT NULL,
			action       TEXT NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// LogParse records one completed parse with its canonical record.
func (r *PostgresRepository) LogParse(ctx context.Context, parseID, query, source string, record *model.UniversalParsed, coverage int, tookMS int64) error {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	logQuery := `
		INSERT INTO parse_logs (parse_id, query, source, record, coverage, took_ms)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := r.db.ExecContext(ctx, logQuery, parseID, query, source, recordJSON, coverage, tookMS); err != nil {
		return fmt.Errorf("failed to log parse: %w", err)
	}
	return nil
}

// LogFeedback records a user action on a prospect card.
func (r *PostgresRepository) LogFeedback(ctx context.Context, parseID, prospectID, action string) error {
	query := `
		INSERT INTO feedback_logs (parse_id, prospect_id, action)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.ExecContext(ctx, query, parseID, prospectID, action); err != nil {
		return fmt.Errorf("failed to log feedback: %w", err)
	}
	return nil
}
