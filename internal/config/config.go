package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Server struct {
		Port        string `yaml:"port" env:"SERVER_PORT"`
		Mode        string `yaml:"mode" env:"SERVER_MODE"`
		StoragePath string `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret" env:"JWT_SECRET"`
		Issuer string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	// Eligibility carries the business constants of the decision core.
	// These are policy values, not code: changing a bonus or a window bypass
	// must never require a rebuild.
	Eligibility struct {
		// BypassWindows disables all batch date-window gating. Explicit and
		// auditable; logged loudly at startup. Never inferred from Server.Mode.
		BypassWindows   bool    `yaml:"bypass_windows" env:"ELIGIBILITY_BYPASS_WINDOWS"`
		GPAWeight       float64 `yaml:"gpa_weight" env:"ELIGIBILITY_GPA_WEIGHT"`
		LowIncomeBonus  float64 `yaml:"low_income_bonus" env:"ELIGIBILITY_LOW_INCOME_BONUS"`
		HighIncomeBonus float64 `yaml:"high_income_bonus" env:"ELIGIBILITY_HIGH_INCOME_BONUS"`
		BachelorMinGPA  float64 `yaml:"bachelor_min_gpa" env:"ELIGIBILITY_BACHELOR_MIN_GPA"`
		MasterMinGPA    float64 `yaml:"master_min_gpa" env:"ELIGIBILITY_MASTER_MIN_GPA"`
		// Timezone is the calendar zone batch windows are interpreted in.
		Timezone string `yaml:"timezone" env:"ELIGIBILITY_TIMEZONE"`
	} `yaml:"eligibility"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Environment variables override file values.
	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.StoragePath = "uploads"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "scholarship"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.JWT.Issuer = "waqfisa.bh"

	config.Eligibility.GPAWeight = 0.7
	config.Eligibility.LowIncomeBonus = 20
	config.Eligibility.HighIncomeBonus = 10
	config.Eligibility.BachelorMinGPA = 88
	config.Eligibility.MasterMinGPA = 75
	config.Eligibility.Timezone = "Asia/Bahrain"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid.
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
		return fmt.Errorf("invalid connection max lifetime format: %w", err)
	}
	if config.Eligibility.GPAWeight <= 0 || config.Eligibility.GPAWeight > 1 {
		return fmt.Errorf("eligibility gpa_weight must be in (0, 1]")
	}
	if _, err := time.LoadLocation(config.Eligibility.Timezone); err != nil {
		return fmt.Errorf("invalid eligibility timezone: %w", err)
	}
	return nil
}

// GetPostgresConnectionString returns the postgres connection string.
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// BatchLocation returns the calendar zone batch windows are evaluated in.
// Validated at load time, so failure here means the config was mutated after
// validation.
func (c *Config) BatchLocation() *time.Location {
	loc, err := time.LoadLocation(c.Eligibility.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
