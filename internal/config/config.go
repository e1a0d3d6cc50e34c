package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	BindAddress        string        `yaml:"bind_address"`
	UnixSocketPath     string        `yaml:"unix_socket"`
	RequireBearerToken bool          `yaml:"require_token"`
	BearerToken        string        `yaml:"bearer_token"`
	RequestTimeout     time.Duration `yaml:"request_timeout"`
	LogLevel           string        `yaml:"log_level"`
	EnableTray         bool          `yaml:"enable_tray"`

	Suggester     string        `yaml:"suggester"`
	GeminiAPIKey  string        `yaml:"gemini_api_key"`
	GeminiModel   string        `yaml:"gemini_model"`
	GeminiBaseURL string        `yaml:"gemini_base_url"`
	LocalDelay    time.Duration `yaml:"local_delay"`

	CredentialsPath string `yaml:"credentials_path"`
	MasterPassword  string `yaml:"-"`
}

// Load builds the configuration from an optional YAML file
// (AICAL_CONFIG_FILE) overridden by AICAL_* environment variables.
//
// The Gemini API key is deliberately not required here: an unset key makes
// the remote call fail at the transport layer and degrade to fallback text.
func Load() (Config, error) {
	cfg := Config{
		BindAddress:    "127.0.0.1:8756",
		RequestTimeout: 10 * time.Second,
		LogLevel:       "info",
		Suggester:      "gemini",
		GeminiModel:    "gemini-2.0-flash",
		GeminiBaseURL:  "https://generativelanguage.googleapis.com",
		LocalDelay:     time.Second,
	}

	if path := strings.TrimSpace(os.Getenv("AICAL_CONFIG_FILE")); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.BindAddress = getenvDefault("AICAL_BIND_ADDRESS", cfg.BindAddress)
	cfg.UnixSocketPath = getenvDefault("AICAL_UNIX_SOCKET", cfg.UnixSocketPath)
	cfg.RequireBearerToken = getenvBool("AICAL_REQUIRE_TOKEN", cfg.RequireBearerToken)
	cfg.BearerToken = getenvDefault("AICAL_BEARER_TOKEN", cfg.BearerToken)
	cfg.RequestTimeout = getenvDuration("AICAL_REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.LogLevel = getenvDefault("AICAL_LOG_LEVEL", cfg.LogLevel)
	cfg.EnableTray = getenvBool("AICAL_ENABLE_TRAY", cfg.EnableTray)
	cfg.Suggester = getenvDefault("AICAL_SUGGESTER", cfg.Suggester)
	cfg.GeminiAPIKey = getenvDefault("AICAL_GEMINI_API_KEY", cfg.GeminiAPIKey)
	cfg.GeminiModel = getenvDefault("AICAL_GEMINI_MODEL", cfg.GeminiModel)
	cfg.GeminiBaseURL = getenvDefault("AICAL_GEMINI_BASE_URL", cfg.GeminiBaseURL)
	cfg.LocalDelay = getenvDuration("AICAL_LOCAL_DELAY", cfg.LocalDelay)
	cfg.CredentialsPath = getenvDefault("AICAL_CREDENTIALS_FILE", cfg.CredentialsPath)
	cfg.MasterPassword = getenvDefault("AICAL_MASTER_PASSWORD", cfg.MasterPassword)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Suggester {
	case "local", "gemini":
	default:
		return fmt.Errorf("invalid suggester: %s", c.Suggester)
	}
	if c.BindAddress == "" && c.UnixSocketPath == "" {
		return errors.New("either bind address or unix socket path must be configured")
	}
	if c.RequireBearerToken && c.BearerToken == "" {
		return errors.New("AICAL_BEARER_TOKEN is required when token auth is enabled")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request timeout must be > 0")
	}
	if c.LocalDelay < 0 {
		return errors.New("local delay must be >= 0")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}
	return nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func getenvDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(value)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
