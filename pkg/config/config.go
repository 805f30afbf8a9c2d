// pkg/config/config.go
package config

import (
	"errors"
	"os"
	"strconv"
)

// Config represents the application configuration.
type Config struct {
	// Database connections
	Source *PostgresConfig // remote RDS holding the legacy tables
	Local  *PostgresConfig // local analytical database

	// Store details API
	API *APIConfig

	// Object storage
	S3 *S3Config

	// Remote documents
	CardDetailsPDFURL string

	// Logging
	LogLevel  string
	LogFormat string
}

// APIConfig holds the store-details API endpoints and key.
type APIConfig struct {
	Key            string
	NumberOfStores string
	StoreDetails   string
}

// S3Config holds object-storage settings and the fixed source objects.
type S3Config struct {
	Region       string
	ProductsURL  string
	DateTimesURL string
}

// LoadConfig loads configuration from credential files and environment
// variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		API: &APIConfig{
			Key:            os.Getenv("STORES_API_KEY"),
			NumberOfStores: getEnv("STORES_API_NUMBER_URL", "https://aqj7u5id95.execute-api.eu-west-1.amazonaws.com/prod/number_stores"),
			StoreDetails:   getEnv("STORES_API_DETAIL_URL", "https://aqj7u5id95.execute-api.eu-west-1.amazonaws.com/prod/store_details"),
		},
		S3: &S3Config{
			Region:       getEnv("AWS_REGION", "eu-west-1"),
			ProductsURL:  getEnv("S3_PRODUCTS_URL", "s3://data-handling-public/products.csv"),
			DateTimesURL: getEnv("S3_DATE_TIMES_URL", "https://data-handling-public.s3.eu-west-1.amazonaws.com/date_details.json"),
		},
		CardDetailsPDFURL: getEnv("CARD_DETAILS_PDF_URL", "https://data-handling-public.s3.eu-west-1.amazonaws.com/card_details.pdf"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
	}

	sourceCfg, err := LoadPostgresConfig(getEnv("DB_CREDS_FILE", "db_creds.yaml"), "SOURCE")
	if err != nil {
		return nil, errors.New("failed to load source database configuration: " + err.Error())
	}
	cfg.Source = sourceCfg

	localCfg, err := LoadPostgresConfig(getEnv("DB_CREDS_LOCAL_FILE", "db_creds_local.yaml"), "LOCAL")
	if err != nil {
		return nil, errors.New("failed to load local database configuration: " + err.Error())
	}
	cfg.Local = localCfg

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid.
func (c *Config) Validate() error {
	if c.Source == nil {
		return errors.New("source database configuration is required")
	}

	if c.Local == nil {
		return errors.New("local database configuration is required")
	}

	if c.API == nil || c.API.Key == "" {
		return errors.New("STORES_API_KEY environment variable is required")
	}

	return nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
