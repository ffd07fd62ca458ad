// Package pharmacy implements the city-keyed pharmacy locator.
//
// Listings come from a flat CSV dataset (name, type, coordinates, dosage
// info). Only Bangalore is fully supported; other cities get an unsupported
// region message, and a missing dataset degrades to an explicit
// data-unavailable message rather than an error.
package pharmacy

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// MaxResults caps how many pharmacies one reply lists.
const MaxResults = 5

// SupportedCity is the only city the dataset currently covers.
const SupportedCity = "Bangalore"

// Opts holds configuration options for the locator.
type Opts struct {
	DataFile string
}

// Option defines a configuration option for the locator.
type Option func(*Opts)

// WithDataFile sets the CSV dataset path.
func WithDataFile(path string) Option {
	return func(o *Opts) { o.DataFile = path }
}

// DefaultDataFile is the dataset path used when none is configured.
const DefaultDataFile = "pharmacies_with_dosages.csv"

// Locator answers pharmacy lookups for a patient's stored city.
type Locator struct {
	dataFile string
}

// NewLocator creates a locator reading the configured CSV dataset.
func NewLocator(opts ...Option) *Locator {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.DataFile == "" {
		cfg.DataFile = DefaultDataFile
	}
	slog.Debug("pharmacy.NewLocator: locator created", "dataFile", cfg.DataFile)
	return &Locator{dataFile: cfg.DataFile}
}

// Locate returns the listing message for the given canonical city. The
// dataset is re-read on every call; it is tiny and may be replaced on disk.
func (l *Locator) Locate(city string) string {
	if city == "" {
		return "⚠️ City not set. Please complete onboarding."
	}
	if city != SupportedCity {
		return fmt.Sprintf("🌍 Pharmacy locator is currently available only for %s. (Your city: %s)", SupportedCity, city)
	}

	entries, err := l.load()
	if err != nil {
		slog.Warn("pharmacy.Locate: dataset unavailable", "error", err, "dataFile", l.dataFile)
		return "⚠️ Pharmacy data not available. Please upload " + DefaultDataFile
	}

	if len(entries) > MaxResults {
		entries = entries[:MaxResults]
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s (%s) — Dosages: %s", e.Name, e.Type, e.Dosages))
	}
	return "💊 Pharmacies in " + SupportedCity + ":\n" + strings.Join(lines, "\n")
}

// Entry is one pharmacy row from the dataset.
type Entry struct {
	Name      string
	Type      string
	Latitude  string
	Longitude string
	Dosages   string
}

// load reads and parses the CSV dataset. The first row is the header; rows
// are keyed by column name so column order does not matter.
func (l *Locator) load() ([]Entry, error) {
	f, err := os.Open(l.dataFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open pharmacy dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse pharmacy dataset: %w", err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("pharmacy dataset is empty")
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[strings.TrimSpace(name)] = i
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var entries []Entry
	for _, row := range records[1:] {
		e := Entry{
			Name:      field(row, "Name"),
			Type:      field(row, "Type"),
			Latitude:  field(row, "Latitude"),
			Longitude: field(row, "Longitude"),
			Dosages:   field(row, "Dosages"),
		}
		if e.Dosages == "" {
			e.Dosages = "N/A"
		}
		if e.Name == "" {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}
