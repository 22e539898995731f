// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: JSON configuration for texelterm.
// Usage: Loaded once at startup from the user config directory; every field
// has a working default so a missing or broken file never blocks startup.

package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
)

const configName = "texelterm.json"

// Config holds the session settings.
type Config struct {
	// Shell overrides $SHELL as the child command.
	Shell string `json:"shell,omitempty"`
	// Term overrides the TERM value exported to the child.
	Term string `json:"term,omitempty"`
	// HistoryEnabled turns on the persistent scrollback index.
	HistoryEnabled bool `json:"history_enabled"`
	// HistoryPath overrides the default history database location.
	HistoryPath string `json:"history_path,omitempty"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{HistoryEnabled: true}
}

// Load reads the config file, falling back to defaults on any error.
func Load() Config {
	cfg := Default()
	path, err := Path()
	if err != nil {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("config: read %s: %v", path, err)
		}
		return cfg
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Printf("config: parse %s: %v", path, err)
		return Default()
	}
	return cfg
}

// Save writes the config to the user config directory.
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Path returns the config file location under the user config directory.
func Path() (string, error) {
	root, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "texelterm", configName), nil
}

// HistoryDBPath resolves the history database path, honoring the override.
func (c Config) HistoryDBPath() (string, error) {
	if c.HistoryPath != "" {
		return c.HistoryPath, nil
	}
	root, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "texelterm", "history.db"), nil
}
