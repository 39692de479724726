package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the process configuration, loaded from the environment with an
// optional .env file. One API credential per provider; a missing credential
// degrades that provider to failures instead of preventing startup.
type Config struct {
	AppPort  int    `mapstructure:"APP_PORT"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	OpenAIAPIKey    string `mapstructure:"OPENAI_API_KEY"`
	AnthropicAPIKey string `mapstructure:"ANTHROPIC_API_KEY"`
	GoogleAPIKey    string `mapstructure:"GOOGLE_API_KEY"`
	XAIAPIKey       string `mapstructure:"XAI_API_KEY"`

	// Base URLs default to the real provider endpoints; tests point them at
	// stub servers.
	OpenAIBaseURL    string `mapstructure:"OPENAI_BASE_URL"`
	AnthropicBaseURL string `mapstructure:"ANTHROPIC_BASE_URL"`
	GoogleBaseURL    string `mapstructure:"GOOGLE_BASE_URL"`
	XAIBaseURL       string `mapstructure:"XAI_BASE_URL"`

	SessionTTL   time.Duration `mapstructure:"SESSION_TTL"`
	SessionSweep time.Duration `mapstructure:"SESSION_SWEEP"`
	SessionLimit int           `mapstructure:"SESSION_LIMIT"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 3000)
	viper.SetDefault("LOG_LEVEL", "INFO")

	viper.SetDefault("OPENAI_API_KEY", "")
	viper.SetDefault("ANTHROPIC_API_KEY", "")
	viper.SetDefault("GOOGLE_API_KEY", "")
	viper.SetDefault("XAI_API_KEY", "")

	viper.SetDefault("OPENAI_BASE_URL", "https://api.openai.com")
	viper.SetDefault("ANTHROPIC_BASE_URL", "https://api.anthropic.com")
	viper.SetDefault("GOOGLE_BASE_URL", "https://generativelanguage.googleapis.com")
	viper.SetDefault("XAI_BASE_URL", "https://api.x.ai")

	viper.SetDefault("SESSION_TTL", "1h")
	viper.SetDefault("SESSION_SWEEP", "5m")
	viper.SetDefault("SESSION_LIMIT", 10000)

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MissingCredentials names the providers that have no API key configured.
// Used for a startup warning; those providers stay registered and fail with
// a credential error when called.
func (c *Config) MissingCredentials() []string {
	var missing []string
	if c.OpenAIAPIKey == "" {
		missing = append(missing, "openai")
	}
	if c.AnthropicAPIKey == "" {
		missing = append(missing, "anthropic")
	}
	if c.GoogleAPIKey == "" {
		missing = append(missing, "google")
	}
	if c.XAIAPIKey == "" {
		missing = append(missing, "x")
	}
	return missing
}
