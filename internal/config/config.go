// Package config provides configuration loading and validation for the
// Nichirin relay. Values come from defaults, an optional YAML file, and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds the application configuration for all components of the
// relay: HTTP server, logging, storage, generation backends, the optional
// Telegram frontend, and the usage summary scheduler.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Database DatabaseConfig `mapstructure:"database"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Stats    StatsConfig    `mapstructure:"stats"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port int `mapstructure:"port" validate:"min=1,max=65535"`
}

// LoggerConfig configures slog output.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// DatabaseConfig configures the SQLite database holding the canned answers.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// GeminiConfig configures the primary generation backend. APIKey is optional:
// without it the relay degrades to canned answers only.
type GeminiConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model" validate:"required"`
	Temperature float32 `mapstructure:"temperature" validate:"min=0,max=2"`
}

// OpenAIConfig configures the OpenAI-compatible REST backend, used when no
// Gemini credential is present but a key for a compatible endpoint is.
type OpenAIConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
}

// TelegramConfig configures the optional Telegram frontend. An empty token
// disables it.
type TelegramConfig struct {
	Token string `mapstructure:"token"`
}

// StatsConfig configures the periodic usage summary job.
type StatsConfig struct {
	Interval time.Duration `mapstructure:"interval" validate:"min=1m"`
}

// LoadConfig reads configuration from the given YAML file (a missing file is
// tolerated), applies defaults and environment overrides, and validates the
// result. Environment variables use the NICHIRIN_ prefix with dots replaced
// by underscores; the Gemini credential, model, and server port additionally
// honor the bare GEMINI_API_KEY/GOOGLE_API_KEY/GOOGLE_CLOUD_API_KEY,
// GEMINI_MODEL, and PORT variables, first present wins.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	setDefaults(v)

	v.SetEnvPrefix("NICHIRIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Alternate credential names from the original deployment environment.
	if err := v.BindEnv("gemini.api_key", "NICHIRIN_GEMINI_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY", "GOOGLE_CLOUD_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind credential variables: %w", err)
	}
	if err := v.BindEnv("gemini.model", "NICHIRIN_GEMINI_MODEL", "GEMINI_MODEL"); err != nil {
		return nil, fmt.Errorf("failed to bind model variable: %w", err)
	}
	if err := v.BindEnv("server.port", "NICHIRIN_SERVER_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("failed to bind port variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Missing config file is fine, defaults and environment apply.
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5000)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.json", false)

	v.SetDefault("database.path", "nichirin.db")

	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("gemini.temperature", 1.0)

	v.SetDefault("openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("openai.model", "gpt-4o-mini")

	v.SetDefault("stats.interval", time.Hour)
}
