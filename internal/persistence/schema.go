package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Schema is created at startup rather than via migration files: the
// model is two tables and both deployments expect a self-initializing
// store.

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS staff (
        id BIGSERIAL PRIMARY KEY,
        name VARCHAR(255) NOT NULL,
        email VARCHAR(255) UNIQUE NOT NULL,
        password_hash VARCHAR(255),
        external_id VARCHAR(255) UNIQUE,
        role VARCHAR(50) NOT NULL CHECK(role IN ('admin', 'staff')),
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS schedules (
        id BIGSERIAL PRIMARY KEY,
        staff_id BIGINT NOT NULL REFERENCES staff(id) ON DELETE CASCADE,
        title VARCHAR(255) NOT NULL,
        description TEXT NOT NULL DEFAULT '',
        date VARCHAR(50) NOT NULL,
        start_time VARCHAR(50) NOT NULL,
        end_time VARCHAR(50) NOT NULL,
        location VARCHAR(255) NOT NULL DEFAULT '',
        status VARCHAR(50) NOT NULL DEFAULT 'scheduled'
            CHECK(status IN ('scheduled', 'completed', 'cancelled')),
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS staff (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        name TEXT NOT NULL,
        email TEXT UNIQUE NOT NULL,
        password_hash TEXT,
        external_id TEXT UNIQUE,
        role TEXT NOT NULL CHECK(role IN ('admin', 'staff')),
        created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
    )`,
	`CREATE TABLE IF NOT EXISTS schedules (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        staff_id INTEGER NOT NULL REFERENCES staff(id) ON DELETE CASCADE,
        title TEXT NOT NULL,
        description TEXT NOT NULL DEFAULT '',
        date TEXT NOT NULL,
        start_time TEXT NOT NULL,
        end_time TEXT NOT NULL,
        location TEXT NOT NULL DEFAULT '',
        status TEXT NOT NULL DEFAULT 'scheduled'
            CHECK(status IN ('scheduled', 'completed', 'cancelled')),
        created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
    )`,
}

// BootstrapPostgres creates the schema on the hosted backend.
func BootstrapPostgres(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	for _, stmt := range postgresSchema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap postgres schema: %w", err)
		}
	}
	logger.Info("postgres schema ready")
	return nil
}

// BootstrapSQLite creates the schema on the embedded backend.
func BootstrapSQLite(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	for _, stmt := range sqliteSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap sqlite schema: %w", err)
		}
	}
	logger.Info("sqlite schema ready")
	return nil
}
