// pkg/config/database_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCredsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db_creds.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadPostgresConfigFromFile(t *testing.T) {
	path := writeCredsFile(t, `
HOST: db.example.com
PORT: 5433
USER: etl
PASSWORD: hunter2
DATABASE: sales_data
`)

	cfg, err := LoadPostgresConfig(path, "SOURCE")
	require.NoError(t, err)

	assert.Equal(t, "db.example.com", cfg.Host)
	assert.Equal(t, 5433, cfg.Port)
	assert.Equal(t, "etl", cfg.User)
	assert.Equal(t, "hunter2", cfg.Password)
	assert.Equal(t, "sales_data", cfg.Database)
	assert.Equal(t, "disable", cfg.SSLMode)
}

func TestLoadPostgresConfigEnvOverridesFile(t *testing.T) {
	path := writeCredsFile(t, `
HOST: db.example.com
USER: etl
DATABASE: sales_data
`)
	t.Setenv("LOCAL_POSTGRES_HOST", "localhost")
	t.Setenv("LOCAL_POSTGRES_DB", "sales_data_local")

	cfg, err := LoadPostgresConfig(path, "LOCAL")
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, "sales_data_local", cfg.Database)
	assert.Equal(t, "etl", cfg.User, "fields without an override keep the file value")
	assert.Equal(t, 5432, cfg.Port, "missing port defaults to 5432")
}

func TestLoadPostgresConfigFromEnvironmentOnly(t *testing.T) {
	t.Setenv("SOURCE_POSTGRES_HOST", "rds.example.com")
	t.Setenv("SOURCE_POSTGRES_USER", "reader")
	t.Setenv("SOURCE_POSTGRES_DB", "legacy")

	cfg, err := LoadPostgresConfig(filepath.Join(t.TempDir(), "missing.yaml"), "SOURCE")
	require.NoError(t, err)
	assert.Equal(t, "rds.example.com", cfg.Host)
}

func TestLoadPostgresConfigMissingHostFails(t *testing.T) {
	path := writeCredsFile(t, `
USER: etl
DATABASE: sales_data
`)

	_, err := LoadPostgresConfig(path, "SOURCE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "host")
}

func TestLoadPostgresConfigMalformedFileFails(t *testing.T) {
	path := writeCredsFile(t, "HOST: [unclosed")

	_, err := LoadPostgresConfig(path, "SOURCE")
	assert.Error(t, err)
}

func TestConnectionString(t *testing.T) {
	cfg := &PostgresConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "etl",
		Password: "pw",
		Database: "sales_data",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=etl password=pw dbname=sales_data sslmode=disable",
		cfg.ConnectionString())
}
