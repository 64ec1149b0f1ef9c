package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Config is the global config file (~/.toolbar/config.json). Every field is
// optional; flags and environment variables take precedence.
type Config struct {
	// DBPath is the SQLite settings database. Defaults to
	// <config dir>/toolbar.sqlite.
	DBPath string `json:"dbPath,omitempty"`

	// Platform selects which saved toolbar is edited ("desktop", "mobile", ...).
	Platform string `json:"platform,omitempty"`

	// RegistryFile is an optional YAML overlay for the built-in tool registry.
	RegistryFile string `json:"registryFile,omitempty"`

	// LogFile enables structured logging to the given path.
	LogFile string `json:"logFile,omitempty"`
}

const DefaultPlatform = "desktop"

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.toolbar).
	if v := strings.TrimSpace(os.Getenv("TOOLBAR_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".toolbar"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DefaultDBPath is used when neither the flag, the environment nor the
// config file name a database.
func DefaultDBPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "toolbar.sqlite"), nil
}

func LoadConfig() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

func SaveConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("nil config")
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	// Unique temp names keep concurrent CLI and TUI writers from clobbering
	// each other.
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}
