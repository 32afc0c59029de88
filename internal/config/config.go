package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Storage backends
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config represents the application configuration
type Config struct {
	// Directory holding the blob store (defaults to <config dir>/data)
	DataDir string `json:"data_dir,omitempty"`

	// Storage backend: "json" or "sqlite"
	Backend string `json:"backend"`

	// Log level for the file logger (debug, info, warn, error)
	LogLevel string `json:"log_level"`

	// Unit used when a goal is added without --unit
	DefaultUnit string `json:"default_unit,omitempty"`

	// Seed for cell selection; 0 means seed from the clock
	Seed int64 `json:"seed,omitempty"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Backend:  BackendJSON,
		LogLevel: "info",
	}
}

// Load loads the configuration from the given file path
func Load(path string) (*Config, error) {
	// If config file doesn't exist, return default config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves the configuration to the given file path
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ResolveDataDir returns DataDir, falling back to <configDir>/data
func (c *Config) ResolveDataDir(configDir string) string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return filepath.Join(configDir, "data")
}

// GetGlobalConfigDir returns ~/.splitup, or $SPLITUP_HOME when set
func GetGlobalConfigDir() (string, error) {
	if dir := os.Getenv("SPLITUP_HOME"); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".splitup"), nil
}

// GetGlobalConfigPath returns the path to config.json in the global config directory
func GetGlobalConfigPath() (string, error) {
	dir, err := GetGlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadGlobalConfig loads config.json, then applies .env and environment overrides
func LoadGlobalConfig() (*Config, error) {
	dir, err := GetGlobalConfigDir()
	if err != nil {
		return nil, err
	}

	cfg, err := Load(filepath.Join(dir, "config.json"))
	if err != nil {
		return nil, err
	}

	if err := LoadEnvFile(filepath.Join(dir, ".env")); err != nil {
		return nil, err
	}
	OverrideFromEnv(cfg)

	return cfg, nil
}

// SaveGlobalConfig writes cfg to the global config path
func SaveGlobalConfig(cfg *Config) error {
	path, err := GetGlobalConfigPath()
	if err != nil {
		return err
	}
	return cfg.Save(path)
}

// LoadEnvFile loads variables from a .env file without overriding the real environment.
// A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// OverrideFromEnv applies SPLITUP_* environment variables on top of cfg
func OverrideFromEnv(cfg *Config) {
	if dir := os.Getenv("SPLITUP_DATA_DIR"); dir != "" {
		cfg.DataDir = dir
	}
	if backend := os.Getenv("SPLITUP_BACKEND"); backend != "" {
		cfg.Backend = backend
	}
	if level := os.Getenv("SPLITUP_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
	if unit := os.Getenv("SPLITUP_DEFAULT_UNIT"); unit != "" {
		cfg.DefaultUnit = unit
	}
	if seed := os.Getenv("SPLITUP_SEED"); seed != "" {
		if s, err := strconv.ParseInt(seed, 10, 64); err == nil {
			cfg.Seed = s
		}
	}
}
