// Package db provides PostgreSQL storage for per-user template configuration documents.
package db

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping checks the database is reachable
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Migration is a named, idempotent schema change
type Migration struct {
	Name string
	SQL  string
}

// Migrations lists the schema changes applied by Migrate, in order
var Migrations = []Migration{
	{
		Name: "create_template_configs",
		SQL: `CREATE TABLE IF NOT EXISTS template_configs (
			user_id    UUID        NOT NULL,
			variant    TEXT        NOT NULL,
			document   JSONB       NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (user_id, variant)
		)`,
	},
	{
		Name: "index_template_configs_updated_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_template_configs_updated_at ON template_configs (updated_at)`,
	},
}

// Migrate applies every migration. Each statement is idempotent.
func (db *DB) Migrate(ctx context.Context) error {
	for _, m := range Migrations {
		if _, err := db.pool.Exec(ctx, m.SQL); err != nil {
			return fmt.Errorf("migration %s failed: %w", m.Name, err)
		}
		log.Printf("[DB] migration %s applied", m.Name)
	}
	return nil
}
