// Package sqlite provides a SQLite-backed implementation of the profile repository port.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously

	"github.com/ewilliams-labs/blendvoice/internal/core/domain"
	"github.com/ewilliams-labs/blendvoice/internal/core/ports"
)

// Adapter implements the profile repository for SQLite
type Adapter struct {
	db *sql.DB
}

var _ ports.ProfileRepository = (*Adapter)(nil)

// NewAdapter creates a connection and runs the schema migration
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	adapter := &Adapter{db: db}

	if err := adapter.migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully
func (a *Adapter) Close() error {
	return a.db.Close()
}

// Load returns the stored record for userID, or an empty record for a new user.
func (a *Adapter) Load(ctx context.Context, userID string) (*domain.UserRecord, error) {
	var raw string
	err := a.db.QueryRowContext(ctx, "SELECT record FROM user_records WHERE user_id = ?", userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewUserRecord(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user record: %w", err)
	}

	rec := domain.NewUserRecord()
	if err := json.Unmarshal([]byte(raw), rec); err != nil {
		return nil, fmt.Errorf("failed to decode user record: %w", err)
	}
	return rec, nil
}

// Save replaces the stored record for userID.
func (a *Adapter) Save(ctx context.Context, userID string, rec *domain.UserRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode user record: %w", err)
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO user_records (user_id, record, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id) DO UPDATE SET
			record=excluded.record,
			updated_at=CURRENT_TIMESTAMP;
	`
	if _, err := tx.ExecContext(ctx, query, userID, string(raw)); err != nil {
		return fmt.Errorf("failed to save user record: %w", err)
	}

	return tx.Commit()
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS user_records (
		user_id TEXT PRIMARY KEY,
		record TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := a.db.Exec(query)
	return err
}
