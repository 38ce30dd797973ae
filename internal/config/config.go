package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMySQL  = "mysql"
)

// Config holds process configuration, read from EMITI_* environment
// variables. Command-line flags override individual fields.
type Config struct {
	Backend     string `envconfig:"BACKEND" default:"file"`
	DataDir     string `envconfig:"DATA_DIR" default:"data"`
	DBPath      string `envconfig:"DB_PATH" default:"emiti.sqlite3"`
	MySQLDSN    string `envconfig:"MYSQL_DSN"`
	SessionPath string `envconfig:"SESSION_PATH" default:"data/session.token"`
	LogPath     string `envconfig:"LOG_PATH"`
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("emiti", &cfg); err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite:
	case BackendMySQL:
		if c.MySQLDSN == "" {
			return fmt.Errorf("mysql backend requires a DSN")
		}
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	return nil
}
