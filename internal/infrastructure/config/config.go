package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for loxwatch.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Miniserver MiniserverConfig `yaml:"miniserver"`
	Monitor    MonitorConfig    `yaml:"monitor"`
	Database   DatabaseConfig   `yaml:"database"`
	InfluxDB   InfluxDBConfig   `yaml:"influxdb"`
	MQTT       MQTTConfig       `yaml:"mqtt"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// MiniserverConfig contains connection settings for the miniserver.
type MiniserverConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// StructureTimeout is the timeout for the structure download (seconds).
	// The structure document can be large on fully commissioned sites.
	StructureTimeout int `yaml:"structure_timeout"`

	// StateTimeout is the timeout for a single live-state read (seconds).
	StateTimeout int `yaml:"state_timeout"`
}

// MonitorConfig contains change-detection monitor settings.
type MonitorConfig struct {
	// Interval is the polling interval between sampling passes (seconds).
	Interval int `yaml:"interval"`

	// CSVDir is the directory where change-record CSV files are written.
	CSVDir string `yaml:"csv_dir"`

	// AnalysisPath is where the JSON analysis summary is saved.
	AnalysisPath string `yaml:"analysis_path"`
}

// DatabaseConfig contains SQLite record store settings.
type DatabaseConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// InfluxDBConfig contains InfluxDB record sink settings.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// MQTTConfig contains MQTT publisher settings.
type MQTTConfig struct {
	Enabled     bool           `yaml:"enabled"`
	Broker      MQTTBroker     `yaml:"broker"`
	Auth        MQTTAuthConfig `yaml:"auth"`
	QoS         int            `yaml:"qos"`
	TopicPrefix string         `yaml:"topic_prefix"`
}

// MQTTBroker contains MQTT broker connection details.
type MQTTBroker struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: LOXWATCH_SECTION_KEY
// For example: LOXWATCH_MINISERVER_HOST, LOXWATCH_MQTT_PASSWORD
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	// Start with defaults
	cfg := defaultConfig()

	// Read and parse YAML file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Miniserver: MiniserverConfig{
			Host:             "192.168.1.50",
			Port:             8050,
			Username:         "admin",
			StructureTimeout: 30,
			StateTimeout:     5,
		},
		Monitor: MonitorConfig{
			Interval:     1,
			CSVDir:       "./data",
			AnalysisPath: "./data/analysis.json",
		},
		Database: DatabaseConfig{
			Enabled:     false,
			Path:        "./data/loxwatch.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBroker{
				Host:     "localhost",
				Port:     1883,
				ClientID: "loxwatch",
			},
			QoS:         1,
			TopicPrefix: "loxwatch",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: LOXWATCH_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Miniserver
	if v := os.Getenv("LOXWATCH_MINISERVER_HOST"); v != "" {
		cfg.Miniserver.Host = v
	}
	if v := os.Getenv("LOXWATCH_MINISERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Miniserver.Port = port
		}
	}
	if v := os.Getenv("LOXWATCH_MINISERVER_USERNAME"); v != "" {
		cfg.Miniserver.Username = v
	}
	if v := os.Getenv("LOXWATCH_MINISERVER_PASSWORD"); v != "" {
		cfg.Miniserver.Password = v
	}

	// Monitor
	if v := os.Getenv("LOXWATCH_MONITOR_CSV_DIR"); v != "" {
		cfg.Monitor.CSVDir = v
	}

	// Database
	if v := os.Getenv("LOXWATCH_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// InfluxDB
	if v := os.Getenv("LOXWATCH_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}

	// MQTT
	if v := os.Getenv("LOXWATCH_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("LOXWATCH_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	// Miniserver validation
	if c.Miniserver.Host == "" {
		errs = append(errs, "miniserver.host is required")
	}
	if c.Miniserver.Port < 1 || c.Miniserver.Port > 65535 {
		errs = append(errs, "miniserver.port must be between 1 and 65535")
	}
	if c.Miniserver.Username == "" {
		errs = append(errs, "miniserver.username is required")
	}

	// Monitor validation
	if c.Monitor.Interval < 1 {
		errs = append(errs, "monitor.interval must be at least 1 second")
	}
	if c.Monitor.CSVDir == "" {
		errs = append(errs, "monitor.csv_dir is required")
	}

	// Database validation (only when enabled)
	if c.Database.Enabled && c.Database.Path == "" {
		errs = append(errs, "database.path is required when database is enabled")
	}

	// InfluxDB validation (only when enabled)
	if c.InfluxDB.Enabled {
		if c.InfluxDB.URL == "" {
			errs = append(errs, "influxdb.url is required when influxdb is enabled")
		}
		if c.InfluxDB.Bucket == "" {
			errs = append(errs, "influxdb.bucket is required when influxdb is enabled")
		}
	}

	// MQTT validation (only when enabled)
	if c.MQTT.Enabled {
		if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
			errs = append(errs, "mqtt.qos must be 0, 1, or 2")
		}
		if c.MQTT.Broker.Host == "" {
			errs = append(errs, "mqtt.broker.host is required when mqtt is enabled")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// BaseURL returns the miniserver base URL, omitting the port when it is 80.
// Mirrors how the miniserver's own clients construct URLs.
func (c *MiniserverConfig) BaseURL() string {
	if c.Port != 0 && c.Port != 80 {
		return fmt.Sprintf("http://%s:%d", c.Host, c.Port)
	}
	return fmt.Sprintf("http://%s", c.Host)
}

// GetStructureTimeout returns the structure download timeout as a Duration.
func (c *MiniserverConfig) GetStructureTimeout() time.Duration {
	return time.Duration(c.StructureTimeout) * time.Second
}

// GetStateTimeout returns the live-state read timeout as a Duration.
func (c *MiniserverConfig) GetStateTimeout() time.Duration {
	return time.Duration(c.StateTimeout) * time.Second
}

// GetInterval returns the monitor polling interval as a Duration.
func (c *MonitorConfig) GetInterval() time.Duration {
	return time.Duration(c.Interval) * time.Second
}
