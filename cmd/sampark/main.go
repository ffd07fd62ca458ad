package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/sampark-health/sampark/internal/api"
	"github.com/sampark-health/sampark/internal/flow"
	"github.com/sampark-health/sampark/internal/messaging"
	"github.com/sampark-health/sampark/internal/pharmacy"
	"github.com/sampark-health/sampark/internal/research"
	"github.com/sampark-health/sampark/internal/store"
	"github.com/sampark-health/sampark/internal/twiliowhatsapp"
	"github.com/sampark-health/sampark/internal/util"
)

// Default configuration constants
const (
	// DefaultStateDir is the default directory for Sampark state data
	DefaultStateDir = "/var/lib/sampark"
	// DefaultDBFileName is the default SQLite database filename
	DefaultDBFileName = "sampark.db"
)

func main() {
	initializeLogger()

	config := loadEnvironmentConfig()
	flags := parseCommandLineFlags(config)

	st, err := buildStore(flags)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	msgService := buildMessagingService()

	locator := pharmacy.NewLocator(pharmacy.WithDataFile(*flags.pharmacyFile))
	hub := research.NewHub()

	dispatcher := flow.NewDispatcher(locator, hub)
	engine := flow.NewEngine(st, dispatcher)

	server := api.NewServer(engine, st, msgService, api.WithAddr(*flags.apiAddr))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Bootstrapping Sampark with configured modules")
	if err := server.Start(ctx); err != nil {
		slog.Error("Sampark failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("Sampark exited successfully")
}

// Config holds environment configuration
type Config struct {
	DatabaseURL  string
	StateDir     string
	APIAddr      string
	PharmacyFile string
}

// Flags holds command line flag values
type Flags struct {
	dbDSN        *string
	apiAddr      *string
	pharmacyFile *string
}

// initializeLogger sets up structured logging. Debug level is enabled with
// SAMPARK_DEBUG.
func initializeLogger() {
	level := slog.LevelInfo
	if util.ParseBoolEnv("SAMPARK_DEBUG", false) {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	config := Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		StateDir:     util.GetenvDefault("SAMPARK_STATE_DIR", DefaultStateDir),
		APIAddr:      util.GetenvDefault("API_ADDR", api.DefaultAddr),
		PharmacyFile: util.GetenvDefault("PHARMACY_DATA_FILE", pharmacy.DefaultDataFile),
	}

	// If no database URL is provided, default to SQLite in the state directory.
	if config.DatabaseURL == "" {
		config.DatabaseURL = filepath.Join(config.StateDir, DefaultDBFileName)
		slog.Debug("No database DSN provided, defaulting to SQLite", "sqlite_path", config.DatabaseURL)
	}

	slog.Debug("environment variables loaded",
		"DATABASE_URL_SET", os.Getenv("DATABASE_URL") != "",
		"SAMPARK_STATE_DIR", config.StateDir,
		"API_ADDR", config.APIAddr,
		"PHARMACY_DATA_FILE", config.PharmacyFile)

	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		dbDSN:        flag.String("db-dsn", config.DatabaseURL, "database DSN for the profile store (overrides $DATABASE_URL)"),
		apiAddr:      flag.String("api-addr", config.APIAddr, "API server address (overrides $API_ADDR)"),
		pharmacyFile: flag.String("pharmacy-file", config.PharmacyFile, "pharmacy dataset CSV path (overrides $PHARMACY_DATA_FILE)"),
	}

	flag.Parse()

	slog.Debug("flags parsed",
		"dbDSN_set", *flags.dbDSN != "",
		"apiAddr", *flags.apiAddr,
		"pharmacyFile", *flags.pharmacyFile)

	return flags
}

// buildStore selects and initializes the store backend from the DSN.
func buildStore(flags Flags) (store.Store, error) {
	dsn := *flags.dbDSN
	if store.DetectDSNType(dsn) == "postgres" {
		slog.Debug("Detected PostgreSQL DSN, configuring PostgreSQL store", "dsn_type", "postgresql")
		return store.NewPostgresStore(store.WithPostgresDSN(dsn))
	}
	slog.Debug("Detected SQLite DSN, configuring SQLite store", "db_path", dsn)
	return store.NewSQLiteStore(store.WithSQLiteDSN(dsn))
}

// buildMessagingService wires the Twilio transport. Without credentials,
// outbound pushes go to a mock sender so local runs still work; webhook
// replies are unaffected either way.
func buildMessagingService() messaging.Service {
	client, err := twiliowhatsapp.NewClient()
	if err != nil {
		slog.Warn("Twilio credentials not configured, using mock sender for outbound pushes", "error", err)
		return messaging.NewTwilioService(twiliowhatsapp.NewMockClient())
	}
	return messaging.NewTwilioService(client)
}
