// Package store provides storage backends for Sampark.
//
// This file implements a PostgreSQL-backed store for profiles and events.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "embed"

	"github.com/sampark-health/sampark/internal/models"
	_ "github.com/lib/pq"
)

// Database connection pool configuration constants
const (
	// DefaultMaxOpenConns is the default maximum number of open connections to the database
	DefaultMaxOpenConns = 25
	// DefaultMaxIdleConns is the default maximum number of idle connections in the pool
	DefaultMaxIdleConns = 25
	// DefaultConnMaxLifetime is the default maximum amount of time a connection may be reused
	DefaultConnMaxLifetime = 5 * time.Minute
)

//go:embed migrations_postgres.sql
var postgresMigrations string

type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new Postgres store based on provided options.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("PostgresStore.NewPostgresStore: creating Postgres store", "DSN_set", cfg.DSN != "")

	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("PostgresStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		slog.Error("Failed to open Postgres connection", "error", err)
		return nil, err
	}

	// Configure connection pool for better performance
	db.SetMaxOpenConns(DefaultMaxOpenConns)
	db.SetMaxIdleConns(DefaultMaxIdleConns)
	db.SetConnMaxLifetime(DefaultConnMaxLifetime)

	if err := db.Ping(); err != nil {
		slog.Error("Postgres ping failed", "error", err)
		return nil, err
	}

	if _, err := db.Exec(postgresMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("Postgres migrations applied successfully")
	return &PostgresStore{db: db}, nil
}

// newPostgresStoreWithDB wires an existing database handle. Used in tests.
func newPostgresStoreWithDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) GetOrCreateProfile(phone string) (*models.UserProfile, error) {
	if phone == "" {
		return nil, models.ErrEmptyIdentity
	}
	now := time.Now()
	_, err := s.db.Exec(
		`INSERT INTO profiles (phone, state, checkins, msg_count, created_at, updated_at) VALUES ($1, $2, 0, 0, $3, $4) ON CONFLICT (phone) DO NOTHING`,
		phone, string(models.StateNew), now, now,
	)
	if err != nil {
		slog.Error("PostgresStore GetOrCreateProfile insert failed", "error", err, "phone", phone)
		return nil, fmt.Errorf("failed to ensure profile for %s: %w", phone, err)
	}
	return s.GetProfile(phone)
}

func (s *PostgresStore) GetProfile(phone string) (*models.UserProfile, error) {
	row := s.db.QueryRow(`SELECT `+profileColumns+` FROM profiles WHERE phone = $1`, phone)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Debug("PostgresStore GetProfile not found", "phone", phone)
			return nil, nil
		}
		slog.Error("PostgresStore GetProfile failed", "error", err, "phone", phone)
		return nil, err
	}
	return &p, nil
}

func (s *PostgresStore) SaveProfile(p models.UserProfile) error {
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
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (phone) DO UPDATE SET
			name = EXCLUDED.name, age = EXCLUDED.age, height_cm = EXCLUDED.height_cm,
			weight_kg = EXCLUDED.weight_kg, bmi = EXCLUDED.bmi, bmi_category = EXCLUDED.bmi_category,
			city = EXCLUDED.city, fam_name = EXCLUDED.fam_name, fam_relation = EXCLUDED.fam_relation,
			family_member = EXCLUDED.family_member, checkins = EXCLUDED.checkins,
			state = EXCLUDED.state, msg_count = EXCLUDED.msg_count, updated_at = EXCLUDED.updated_at`,
		args...,
	)
	if err != nil {
		slog.Error("PostgresStore SaveProfile failed", "error", err, "phone", p.Phone)
		return fmt.Errorf("failed to save profile for %s: %w", p.Phone, err)
	}
	slog.Debug("PostgresStore SaveProfile succeeded", "phone", p.Phone, "state", p.State)
	return nil
}

func (s *PostgresStore) ListProfiles() ([]models.UserProfile, error) {
	rows, err := s.db.Query(`SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at`)
	if err != nil {
		slog.Error("PostgresStore ListProfiles query failed", "error", err)
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.UserProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			slog.Error("PostgresStore ListProfiles scan failed", "error", err)
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		slog.Error("PostgresStore ListProfiles rows iteration failed", "error", err)
		return nil, fmt.Errorf("failed to iterate profile rows: %w", err)
	}
	slog.Debug("PostgresStore ListProfiles succeeded", "count", len(profiles))
	return profiles, nil
}

func (s *PostgresStore) AddEvent(e models.EngagementEvent) error {
	_, err := s.db.Exec(`INSERT INTO engagement_events (id, phone, kind, body, time) VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.Phone, string(e.Kind), e.Body, e.Time)
	if err != nil {
		slog.Error("PostgresStore AddEvent failed", "error", err, "phone", e.Phone)
		return fmt.Errorf("failed to insert event for %s: %w", e.Phone, err)
	}
	return nil
}

func (s *PostgresStore) ListEvents(phone string) ([]models.EngagementEvent, error) {
	rows, err := s.db.Query(`SELECT id, phone, kind, body, time FROM engagement_events WHERE phone = $1 ORDER BY time`, phone)
	if err != nil {
		slog.Error("PostgresStore ListEvents query failed", "error", err, "phone", phone)
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []models.EngagementEvent
	for rows.Next() {
		var e models.EngagementEvent
		var kind string
		if err := rows.Scan(&e.ID, &e.Phone, &kind, &e.Body, &e.Time); err != nil {
			slog.Error("PostgresStore ListEvents scan failed", "error", err)
			return nil, err
		}
		e.Kind = models.EventKind(kind)
		events = append(events, e)
	}
	return events, rows.Err()
}

// Close closes the Postgres database connection.
func (s *PostgresStore) Close() error {
	slog.Debug("Closing Postgres database connection")
	return s.db.Close()
}
