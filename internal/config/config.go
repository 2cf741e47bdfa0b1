// Package config manages the local .todos/config.json: which store backend
// is active and the last category filter the user applied.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const configFile = ".todos/config.json"

// Backend names accepted in config.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRemote = "remote"
)

// Config is the persisted local configuration.
type Config struct {
	Backend    string `json:"backend,omitempty"`
	RemoteURL  string `json:"remote_url,omitempty"`
	APIKey     string `json:"api_key,omitempty"`
	LastFilter string `json:"last_filter,omitempty"`
}

// IsValidBackend checks whether name is a known backend.
func IsValidBackend(name string) bool {
	switch name {
	case BackendFile, BackendSQLite, BackendRemote:
		return true
	}
	return false
}

// Load reads the config from disk. A missing file yields a zero config.
func Load(baseDir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(baseDir, configFile))
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the config to disk using atomic write (temp file + rename).
func Save(baseDir string, cfg *Config) error {
	configPath := filepath.Join(baseDir, configFile)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "config-*.json.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, configPath)
}

// SetLastFilter persists the most recently applied category filter.
func SetLastFilter(baseDir, filter string) error {
	cfg, err := Load(baseDir)
	if err != nil {
		return err
	}
	cfg.LastFilter = filter
	return Save(baseDir, cfg)
}

// SetBackend persists the active backend, validating the name first.
func SetBackend(baseDir, name, remoteURL, apiKey string) error {
	if !IsValidBackend(name) {
		return fmt.Errorf("invalid backend: %s (valid: file, sqlite, remote)", name)
	}
	if name == BackendRemote && remoteURL == "" {
		return fmt.Errorf("remote backend requires a server URL")
	}

	cfg, err := Load(baseDir)
	if err != nil {
		return err
	}
	cfg.Backend = name
	if remoteURL != "" {
		cfg.RemoteURL = remoteURL
	}
	if apiKey != "" {
		cfg.APIKey = apiKey
	}
	return Save(baseDir, cfg)
}
