// loxwatch - Miniserver inventory analyzer and change-only state logger
//
// loxwatch downloads a miniserver's structure document, classifies every
// control by type and room, and lets the user pick a subset to monitor.
// While monitoring it samples live state once per interval and records
// only transitions (plus one baseline per control) to durable sinks:
// always a per-run CSV file, optionally SQLite, InfluxDB, and MQTT.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/nerrad567/loxwatch/migrations"

	"github.com/nerrad567/loxwatch/internal/infrastructure/config"
	"github.com/nerrad567/loxwatch/internal/infrastructure/database"
	"github.com/nerrad567/loxwatch/internal/infrastructure/influxdb"
	"github.com/nerrad567/loxwatch/internal/infrastructure/logging"
	"github.com/nerrad567/loxwatch/internal/infrastructure/mqtt"
	"github.com/nerrad567/loxwatch/internal/miniserver"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Cancel on interrupt signals (Ctrl+C, SIGTERM) for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting loxwatch",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings. Logs go to stderr by
	// default so they don't interleave with the stdout menu.
	log = logging.New(cfg.Logging, version)

	// Miniserver client: verify reachability and credentials up front so
	// the user gets an actionable error before the menu appears.
	client := miniserver.New(cfg.Miniserver)
	if err := client.HealthCheck(ctx); err != nil {
		return err
	}
	log.Info("miniserver reachable", "url", cfg.Miniserver.BaseURL())

	// Recording database (optional)
	var db *database.DB
	if cfg.Database.Enabled {
		db, err = database.Open(database.Config{
			Path:        cfg.Database.Path,
			WALMode:     cfg.Database.WALMode,
			BusyTimeout: cfg.Database.BusyTimeout,
		})
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer func() {
			if closeErr := db.Close(); closeErr != nil {
				log.Error("error closing database", "error", closeErr)
			}
		}()

		if migrateErr := db.Migrate(ctx); migrateErr != nil {
			return fmt.Errorf("running migrations: %w", migrateErr)
		}
		schemaVersion, versionErr := db.SchemaVersion(ctx)
		if versionErr != nil {
			return fmt.Errorf("reading schema version: %w", versionErr)
		}
		log.Info("recording database ready",
			"path", cfg.Database.Path,
			"schema", schemaVersion,
		)
	} else {
		log.Info("recording database disabled")
	}

	// MQTT publisher (optional)
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})
	} else {
		log.Info("MQTT disabled")
	}

	// InfluxDB sink (optional)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
	} else {
		log.Info("InfluxDB disabled")
	}

	a := &app{
		cfg:    cfg,
		log:    log,
		client: client,
		db:     db,
		mqtt:   mqttClient,
		influx: influxClient,
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	if err := a.menu(ctx); err != nil {
		return err
	}

	log.Info("loxwatch stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses LOXWATCH_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("LOXWATCH_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// app holds the wired dependencies for the interactive shell.
// The db, mqtt, and influx fields are nil when disabled in config.
type app struct {
	cfg    *config.Config
	log    *logging.Logger
	client *miniserver.Client
	db     *database.DB
	mqtt   *mqtt.Client
	influx *influxdb.Client

	in  *bufio.Reader
	out io.Writer
}
