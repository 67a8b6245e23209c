package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Share     ShareConfig
	Scheduler SchedulerConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// ShareConfig holds share-token configuration. Key is the fernet key used
// to mint and verify read-only share tokens; TTL bounds their lifetime.
type ShareConfig struct {
	Key *fernet.Key
	TTL time.Duration
}

// SchedulerConfig holds the nightly recompute job configuration.
type SchedulerConfig struct {
	RecomputeSchedule    string // cron expression
	RecomputeConcurrency int    // max parallel recomputations
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	shareKey, err := loadShareKey()
	if err != nil {
		return nil, err
	}

	shareTTLHours, err := strconv.Atoi(getEnv("SHARE_TOKEN_TTL_HOURS", "72"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHARE_TOKEN_TTL_HOURS: %w", err)
	}

	concurrency, err := strconv.Atoi(getEnv("RECOMPUTE_CONCURRENCY", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECOMPUTE_CONCURRENCY: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/return_calculator.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Share: ShareConfig{
			Key: shareKey,
			TTL: time.Duration(shareTTLHours) * time.Hour,
		},
		Scheduler: SchedulerConfig{
			RecomputeSchedule:    getEnv("RECOMPUTE_SCHEDULE", "0 3 * * *"),
			RecomputeConcurrency: concurrency,
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// loadShareKey reads SHARE_TOKEN_KEY or generates an ephemeral key when
// none is configured. Tokens minted under an ephemeral key do not survive
// a restart, which is acceptable for local single-user deployments.
func loadShareKey() (*fernet.Key, error) {
	encoded := os.Getenv("SHARE_TOKEN_KEY")
	if encoded == "" {
		key := &fernet.Key{}
		if err := key.Generate(); err != nil {
			return nil, fmt.Errorf("failed to generate share token key: %w", err)
		}
		return key, nil
	}

	key, err := fernet.DecodeKey(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid SHARE_TOKEN_KEY: %w", err)
	}
	return key, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
