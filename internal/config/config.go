// Package config loads the pipeline's configuration from a YAML file,
// environment variables, and defaults, in that precedence order.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the complete configuration tree.
type Config struct {
	Service    ServiceConfig    `mapstructure:"service"`
	Generate   GenerateConfig   `mapstructure:"generate"`
	Checkpoint CheckpointConfig `mapstructure:"checkpoint"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ServiceConfig describes the remote oncology service.
type ServiceConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	HealthPath    string        `mapstructure:"health_path"`
	ProbeInterval time.Duration `mapstructure:"probe_interval"`
	ProbeAttempts int           `mapstructure:"probe_attempts"`
	RateLimit     int           `mapstructure:"rate_limit"`
}

// GenerateConfig controls dataset size and reproducibility.
type GenerateConfig struct {
	Patients int   `mapstructure:"patients"`
	Seed     int64 `mapstructure:"seed"`
}

// CheckpointConfig selects and configures the checkpoint backend.
type CheckpointConfig struct {
	Backend              string `mapstructure:"backend"`
	Dir                  string `mapstructure:"dir"`
	PostgresURL          string `mapstructure:"postgres_url"`
	RedisURL             string `mapstructure:"redis_url"`
	InvalidateDownstream bool   `mapstructure:"invalidate_downstream"`
}

// LoggingConfig controls structured log output.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Manager loads and validates the configuration.
type Manager struct {
	config *Config
}

// NewManager creates a configuration manager.
func NewManager() (*Manager, error) {
	m := &Manager{}
	if err := m.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return m, nil
}

func (m *Manager) loadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/oncoseed/")

	viper.SetEnvPrefix("ONCOSEED")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	m.setDefaults()

	// Config file is optional; defaults and env vars suffice.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) setDefaults() {
	viper.SetDefault("service.base_url", "http://localhost:8080/api/v1")
	viper.SetDefault("service.timeout", "30s")
	viper.SetDefault("service.health_path", "/actuator/health")
	viper.SetDefault("service.probe_interval", "5s")
	viper.SetDefault("service.probe_attempts", 30)
	viper.SetDefault("service.rate_limit", 20)

	viper.SetDefault("generate.patients", 20)
	viper.SetDefault("generate.seed", 0)

	viper.SetDefault("checkpoint.backend", "file")
	viper.SetDefault("checkpoint.dir", "./checkpoints")
	viper.SetDefault("checkpoint.postgres_url", "")
	viper.SetDefault("checkpoint.redis_url", "redis://localhost:6379")
	viper.SetDefault("checkpoint.invalidate_downstream", false)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
}

// GetConfig returns the complete configuration.
func (m *Manager) GetConfig() *Config {
	return m.config
}

// Validate validates the configuration.
func (m *Manager) Validate() error {
	config := m.config

	if config.Service.BaseURL == "" {
		return fmt.Errorf("service base URL is required")
	}
	if config.Service.ProbeAttempts <= 0 {
		return fmt.Errorf("invalid probe attempt count: %d", config.Service.ProbeAttempts)
	}
	if config.Generate.Patients <= 0 {
		return fmt.Errorf("invalid patient count: %d", config.Generate.Patients)
	}

	switch config.Checkpoint.Backend {
	case "file", "sqlite":
		if config.Checkpoint.Dir == "" {
			return fmt.Errorf("checkpoint dir is required for the %s backend", config.Checkpoint.Backend)
		}
	case "postgres":
		if config.Checkpoint.PostgresURL == "" {
			return fmt.Errorf("checkpoint postgres URL is required")
		}
	case "redis":
		if config.Checkpoint.RedisURL == "" {
			return fmt.Errorf("checkpoint redis URL is required")
		}
	default:
		return fmt.Errorf("invalid checkpoint backend: %s", config.Checkpoint.Backend)
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(config.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	return nil
}
