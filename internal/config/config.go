package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort       = 2333
	defaultEnv        = "development"
	defaultDBPath     = ".data/platform.db"
	defaultTTLSeconds = 7200 // 2 hours of idle time before a session expires
	defaultStore      = StoreSQLite
)

const (
	// StoreSQLite keeps sessions in the embedded database (survives restarts).
	StoreSQLite = "sqlite"
	// StoreMemory keeps sessions in process memory (single-process demos).
	StoreMemory = "memory"
)

// SeedUser is an operator-provisioned account. PasswordHash is a bcrypt hash
// (see cmd/hashpw); ValidFrom/ValidUntil bound the account's usable window.
type SeedUser struct {
	Username     string `yaml:"username"`
	Name         string `yaml:"name"`
	PasswordHash string `yaml:"pwd_hash"`
	ValidFrom    string `yaml:"valid_from"`  // YYYY-MM-DD, optional
	ValidUntil   string `yaml:"valid_until"` // YYYY-MM-DD, optional
}

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port              int        `yaml:"port"`
	Env               string     `yaml:"env"` // "development" | "production"
	DatabasePath      string     `yaml:"database_path"`
	RedisURL          string     `yaml:"redis_url"` // empty disables login rate limiting
	AllowedOrigins    []string   `yaml:"allowed_origins"`
	SessionTTLSeconds int        `yaml:"session_ttl_seconds"`
	SessionStore      string     `yaml:"session_store"` // "sqlite" | "memory"
	Timezone          string     `yaml:"timezone"`
	Users             []SeedUser `yaml:"users"`
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port:              defaultPort,
		Env:               defaultEnv,
		DatabasePath:      defaultDBPath,
		SessionTTLSeconds: defaultTTLSeconds,
		SessionStore:      defaultStore,
	}
}

// Load reads and validates the YAML config file at path.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	cfg := defaultAppConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config file %q: %w", path, err)
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d in %q, expected 1-65535", cfg.Port, path)
	}
	if cfg.SessionTTLSeconds < 1 {
		return nil, fmt.Errorf("invalid session_ttl_seconds %d in %q, expected >= 1", cfg.SessionTTLSeconds, path)
	}
	switch cfg.SessionStore {
	case StoreSQLite, StoreMemory:
	default:
		return nil, fmt.Errorf("invalid session_store %q in %q, expected %q or %q",
			cfg.SessionStore, path, StoreSQLite, StoreMemory)
	}
	if strings.TrimSpace(cfg.DatabasePath) == "" {
		return nil, fmt.Errorf("database_path is required in %q", path)
	}
	for i, u := range cfg.Users {
		if strings.TrimSpace(u.Username) == "" {
			return nil, fmt.Errorf("users[%d]: username is required in %q", i, path)
		}
		if strings.TrimSpace(u.PasswordHash) == "" {
			return nil, fmt.Errorf("users[%d]: pwd_hash is required in %q", i, path)
		}
	}

	return &cfg, nil
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "development")
}

// SessionTTL returns the idle-expiry window as a duration.
func (c *AppConfig) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLSeconds) * time.Second
}
