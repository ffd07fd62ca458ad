// Package store provides storage backends for Sampark patient profiles.
//
// Three backends implement the same Store interface: an in-memory store for
// tests and local development, an SQLite store for single-node deployments,
// and a PostgreSQL store. The backend is selected from the DSN.
package store

import "github.com/sampark-health/sampark/internal/models"

// Store is the persistence seam for patient profiles and engagement events.
// GetOrCreateProfile is idempotent: the first call for an unseen identity
// creates a record in state "new"; later calls return the existing record.
type Store interface {
	// GetOrCreateProfile returns the profile for the identity, creating a
	// fresh one in state "new" if none exists yet.
	GetOrCreateProfile(phone string) (*models.UserProfile, error)

	// GetProfile returns the profile for the identity, or nil if none exists.
	GetProfile(phone string) (*models.UserProfile, error)

	// SaveProfile persists all mutable fields of the profile.
	SaveProfile(p models.UserProfile) error

	// ListProfiles returns all profiles. Used by the dashboard.
	ListProfiles() ([]models.UserProfile, error)

	// AddEvent appends one engagement event to the activity log.
	AddEvent(e models.EngagementEvent) error

	// ListEvents returns the engagement events for one identity, oldest first.
	ListEvents(phone string) ([]models.EngagementEvent, error)

	// Close releases any underlying resources.
	Close() error
}

// Opts holds configuration options for store backends.
type Opts struct {
	DSN string
}

// Option defines a configuration option for store backends.
type Option func(*Opts)

// WithSQLiteDSN sets a SQLite file path as the store DSN.
func WithSQLiteDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// WithPostgresDSN sets a PostgreSQL connection string as the store DSN.
func WithPostgresDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}
