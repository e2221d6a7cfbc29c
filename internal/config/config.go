// Package config reads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/quizgame-accounts/internal/factory"
)

// Environment variable names
const (
	EnvHTTPPort    = "QUIZ_HTTP_PORT"
	EnvStorageType = "QUIZ_STORAGE_TYPE"
	EnvRedisURL    = "REDIS_URL"
	EnvDatabaseURL = "DATABASE_URL"
	EnvLogLevel    = "QUIZ_LOG_LEVEL"
	EnvLoginRate   = "QUIZ_LOGIN_RATE"
	EnvLoginBurst  = "QUIZ_LOGIN_BURST"
	EnvBcryptCost  = "QUIZ_BCRYPT_COST"
)

// Config holds server configuration
type Config struct {
	HTTPPort    int
	StorageType string
	RedisURL    string
	DatabaseURL string
	LogLevel    string

	// Login attempts allowed per second per client, and the burst on top
	LoginRate  float64
	LoginBurst int

	BcryptCost int
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		HTTPPort:    8080,
		StorageType: factory.StorageTypeMemory,
		LogLevel:    "info",
		LoginRate:   1,
		LoginBurst:  5,
		BcryptCost:  bcrypt.DefaultCost,
	}
}

// FromEnv reads the environment on top of Default without validating, so
// command line flags can still override it. On a parse error the settings
// read so far are returned with the error.
func FromEnv() (Config, error) {
	cfg := Default()
	var err error

	cfg.StorageType = strings.ToLower(getEnvOrDefault(EnvStorageType, cfg.StorageType))
	cfg.RedisURL = os.Getenv(EnvRedisURL)
	cfg.DatabaseURL = os.Getenv(EnvDatabaseURL)
	cfg.LogLevel = getEnvOrDefault(EnvLogLevel, cfg.LogLevel)

	if cfg.HTTPPort, err = getEnvInt(EnvHTTPPort, cfg.HTTPPort); err != nil {
		return cfg, err
	}
	if cfg.LoginBurst, err = getEnvInt(EnvLoginBurst, cfg.LoginBurst); err != nil {
		return cfg, err
	}
	if cfg.BcryptCost, err = getEnvInt(EnvBcryptCost, cfg.BcryptCost); err != nil {
		return cfg, err
	}
	if v := os.Getenv(EnvLoginRate); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvLoginRate, err)
		}
		cfg.LoginRate = rate
	}

	return cfg, nil
}

// Validate checks that the settings are usable together
func (c Config) Validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid http port %d", c.HTTPPort)
	}
	switch c.StorageType {
	case factory.StorageTypeMemory:
	case factory.StorageTypeRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL required when storage type is redis")
		}
	case factory.StorageTypePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL required when storage type is postgres")
		}
	default:
		return fmt.Errorf("invalid storage type %q: must be memory, redis or postgres", c.StorageType)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.LoginRate <= 0 || c.LoginBurst <= 0 {
		return errors.New("login rate and burst must be positive")
	}
	return nil
}

// SlogLevel parses LogLevel
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return level, nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
