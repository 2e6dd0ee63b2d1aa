// SPDX-FileCopyrightText: Copyright The Desktop Commander Authors
// SPDX-License-Identifier: Apache-2.0

// Package config persists the server configuration: the shell commands
// are spawned under, the blocked-command list, the allowed directories,
// and the session retention limits.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Config is the persisted configuration document.
type Config struct {
	// Shell is the interpreter used to spawn commands.
	Shell string `yaml:"shell"`
	// BlockedCommands are executable names execute_command refuses to
	// spawn. Matching is case-insensitive on the leading token of each
	// chained sub-command.
	BlockedCommands []string `yaml:"blockedCommands"`
	// AllowedDirectories restricts filesystem access and working
	// directories. Empty means unrestricted.
	AllowedDirectories []string `yaml:"allowedDirectories"`
	// MaxSessions bounds how many finished sessions stay queryable.
	MaxSessions int `yaml:"maxSessions"`
	// MaxOutputBytes bounds each retained per-session output stream.
	MaxOutputBytes int `yaml:"maxOutputBytes"`
}

// Default returns the configuration used when no file exists yet.
func Default() *Config {
	shell := "/bin/sh"
	if runtime.GOOS == "windows" {
		shell = "cmd"
	}
	return &Config{
		Shell: shell,
		BlockedCommands: []string{
			"mkfs", "format", "fdisk", "dd",
			"mount", "umount",
			"shutdown", "reboot", "halt", "poweroff", "init",
			"passwd", "adduser", "useradd", "usermod", "groupadd",
		},
		AllowedDirectories: nil,
		MaxSessions:        100,
		MaxOutputBytes:     1 << 20,
	}
}

// DefaultPath returns the default config file location,
// ~/.desktop-commander/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".desktop-commander", "config.yaml"), nil
}
