// Package store provides storage backends for Sampark.
//
// This file implements an SQLite-backed store for profiles and events.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "embed"

	"github.com/sampark-health/sampark/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

// Constants for SQLite store configuration
const (
	// DefaultDirPermissions defines the default permissions for database directories
	DefaultDirPermissions = 0755
)

//go:embed migrations_sqlite.sql
var sqliteMigrations string

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store with the given DSN.
// The DSN should be a file path to the SQLite database file.
// If the directory doesn't exist, it will be created.
func NewSQLiteStore(opts ...Option) (*SQLiteStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewSQLiteStore invoked", "DSN_set", cfg.DSN != "")

	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("SQLiteStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	dir := filepath.Dir(dsn)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		slog.Error("Failed to create database directory", "error", err, "dir", dir)
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		slog.Error("Failed to open SQLite connection", "error", err)
		return nil, err
	}

	if err := db.Ping(); err != nil {
		slog.Error("SQLite ping failed", "error", err)
		return nil, err
	}

	if _, err := db.Exec(sqliteMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("SQLite migrations applied successfully")

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) GetOrCreateProfile(phone string) (*models.UserProfile, error) {
	if phone == "" {
		return nil, models.ErrEmptyIdentity
	}
	now := time.Now()
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO profiles (phone, state, checkins, msg_count, created_at, updated_at) VALUES (?, ?, 0, 0, ?, ?)`,
		phone, string(models.StateNew), now, now,
	)
	if err != nil {
		slog.Error("SQLiteStore GetOrCreateProfile insert failed", "error", err, "phone", phone)
		return nil, fmt.Errorf("failed to ensure profile for %s: %w", phone, err)
	}
	return s.GetProfile(phone)
}

func (s *SQLiteStore) GetProfile(phone string) (*models.UserProfile, error) {
	row := s.db.QueryRow(`SELECT `+profileColumns+` FROM profiles WHERE phone = ?`, phone)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Debug("SQLiteStore GetProfile not found", "phone", phone)
			return nil, nil
		}
		slog.Error("SQLiteStore GetProfile failed", "error", err, "phone", phone)
		return nil, err
	}
	return &p, nil
}

func (s *SQLiteStore) SaveProfile(p models.UserProfile) error {
	if p.Phone == "" {
		return models.ErrEmptyIdentity
	}
	now := time.Now()
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	args := append([]interface{}{p.Phone}, profileArgs(p)...)
	args = append(args, createdAt, now)
	_, err := s.db.Exec(`
		INSERT INTO profiles (phone, name, age, height_cm, weight_kg, bmi, bmi_category, city, fam_name, fam_relation, family_member, checkins, state, msg_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(phone) DO UPDATE SET
			name = excluded.name, age = excluded.age, height_cm = excluded.height_cm,
			weight_kg = excluded.weight_kg, bmi = excluded.bmi, bmi_category = excluded.bmi_category,
			city = excluded.city, fam_name = excluded.fam_name, fam_relation = excluded.fam_relation,
			family_member = excluded.family_member, checkins = excluded.checkins,
			state = excluded.state, msg_count = excluded.msg_count, updated_at = excluded.updated_at`,
		args...,
	)
	if err != nil {
		slog.Error("SQLiteStore SaveProfile failed", "error", err, "phone", p.Phone)
		return fmt.Errorf("failed to save profile for %s: %w", p.Phone, err)
	}
	slog.Debug("SQLiteStore SaveProfile succeeded", "phone", p.Phone, "state", p.State)
	return nil
}

func (s *SQLiteStore) ListProfiles() ([]models.UserProfile, error) {
	rows, err := s.db.Query(`SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at`)
	if err != nil {
		slog.Error("SQLiteStore ListProfiles query failed", "error", err)
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.UserProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			slog.Error("SQLiteStore ListProfiles scan failed", "error", err)
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		slog.Error("SQLiteStore ListProfiles rows iteration failed", "error", err)
		return nil, fmt.Errorf("failed to iterate profile rows: %w", err)
	}
	slog.Debug("SQLiteStore ListProfiles succeeded", "count", len(profiles))
	return profiles, nil
}

func (s *SQLiteStore) AddEvent(e models.EngagementEvent) error {
	_, err := s.db.Exec(`INSERT INTO engagement_events (id, phone, kind, body, time) VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Phone, string(e.Kind), e.Body, e.Time)
	if err != nil {
		slog.Error("SQLiteStore AddEvent failed", "error", err, "phone", e.Phone)
		return fmt.Errorf("failed to insert event for %s: %w", e.Phone, err)
	}
	return nil
}

func (s *SQLiteStore) ListEvents(phone string) ([]models.EngagementEvent, error) {
	rows, err := s.db.Query(`SELECT id, phone, kind, body, time FROM engagement_events WHERE phone = ? ORDER BY time`, phone)
	if err != nil {
		slog.Error("SQLiteStore ListEvents query failed", "error", err, "phone", phone)
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []models.EngagementEvent
	for rows.Next() {
		var e models.EngagementEvent
		var kind string
		if err := rows.Scan(&e.ID, &e.Phone, &kind, &e.Body, &e.Time); err != nil {
			slog.Error("SQLiteStore ListEvents scan failed", "error", err)
			return nil, err
		}
		e.Kind = models.EventKind(kind)
		events = append(events, e)
	}
	return events, rows.Err()
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	slog.Debug("Closing SQLite database connection")
	return s.db.Close()
}
