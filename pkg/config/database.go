// pkg/config/database.go
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// PostgresConfig holds PostgreSQL connection parameters for one of the
// two databases the pipeline touches.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string

	// Connection pool settings
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration

	// Statement timeout
	StatementTimeout time.Duration
}

// credsFile mirrors the layout of the db_creds.yaml credential files.
type credsFile struct {
	Host     string `yaml:"HOST"`
	Port     int    `yaml:"PORT"`
	User     string `yaml:"USER"`
	Password string `yaml:"PASSWORD"`
	Database string `yaml:"DATABASE"`
}

// LoadPostgresConfig loads connection parameters for the named database
// role ("SOURCE" or "LOCAL"). A YAML credential file is preferred;
// <ROLE>_POSTGRES_* environment variables override individual fields,
// so a creds file is optional when the environment is complete.
func LoadPostgresConfig(credsPath, role string) (*PostgresConfig, error) {
	var creds credsFile

	data, err := os.ReadFile(credsPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &creds); err != nil {
			return nil, fmt.Errorf("failed to parse credentials file %s: %w", credsPath, err)
		}
	case os.IsNotExist(err):
		// Fall through to environment variables.
	default:
		return nil, fmt.Errorf("failed to read credentials file %s: %w", credsPath, err)
	}

	prefix := role + "_POSTGRES_"

	cfg := &PostgresConfig{
		Host:     getEnv(prefix+"HOST", creds.Host),
		Port:     getEnvAsInt(prefix+"PORT", creds.Port),
		User:     getEnv(prefix+"USER", creds.User),
		Password: getEnv(prefix+"PASSWORD", creds.Password),
		Database: getEnv(prefix+"DB", creds.Database),
		SSLMode:  getEnv(prefix+"SSLMODE", "disable"),

		MaxOpenConns:     getEnvAsInt(prefix+"MAX_OPEN_CONNS", 10),
		MaxIdleConns:     getEnvAsInt(prefix+"MAX_IDLE_CONNS", 5),
		ConnMaxLifetime:  time.Duration(getEnvAsInt(prefix+"CONN_MAX_LIFETIME_SECONDS", 1800)) * time.Second,
		ConnMaxIdleTime:  time.Duration(getEnvAsInt(prefix+"CONN_MAX_IDLE_TIME_SECONDS", 600)) * time.Second,
		StatementTimeout: time.Duration(getEnvAsInt(prefix+"STATEMENT_TIMEOUT_SECONDS", 300)) * time.Second,
	}

	if cfg.Port == 0 {
		cfg.Port = 5432
	}

	if cfg.Host == "" {
		return nil, fmt.Errorf("%s database host is not configured (file %s or %sHOST)", role, credsPath, prefix)
	}
	if cfg.User == "" {
		return nil, fmt.Errorf("%s database user is not configured (file %s or %sUSER)", role, credsPath, prefix)
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("%s database name is not configured (file %s or %sDB)", role, credsPath, prefix)
	}

	return cfg, nil
}

// ConnectionString returns a formatted PostgreSQL connection string.
func (c *PostgresConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.Database,
		c.SSLMode,
	)
}
