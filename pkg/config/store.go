// SPDX-FileCopyrightText: Copyright The Desktop Commander Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/goccy/go-yaml"
	"github.com/sirupsen/logrus"

	"github.com/DillionLowry/DesktopCommanderMCP/pkg/cmdguard"
	"github.com/DillionLowry/DesktopCommanderMCP/pkg/fspath"
)

// ErrUnknownKey is wrapped by SetValue for keys that do not exist.
var ErrUnknownKey = errors.New("unknown configuration key")

// Store owns the configuration document and its derived state (the
// command gate and the directory allowlist). All reads and writes are
// serialized through it; SetValue persists to disk. It also implements
// the session manager's Config interface.
type Store struct {
	mu    sync.RWMutex
	path  string
	cfg   *Config
	guard *cmdguard.Guard
	allow *fspath.Allowlist

	watcher *fsnotify.Watcher
	watchWG sync.WaitGroup
}

// Load reads the config file at path, creating it with defaults if it
// does not exist.
func Load(path string) (*Store, error) {
	s := &Store{path: path}
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		s.cfg = Default()
		if err := s.persistLocked(); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		var cfg Config
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		fillDefaults(&cfg)
		s.cfg = &cfg
	}
	if err := s.rebuildLocked(); err != nil {
		return nil, err
	}
	return s, nil
}

// fillDefaults fulfills unspecified fields with the default values.
func fillDefaults(cfg *Config) {
	def := Default()
	if cfg.Shell == "" {
		cfg.Shell = def.Shell
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = def.MaxSessions
	}
	if cfg.MaxOutputBytes <= 0 {
		cfg.MaxOutputBytes = def.MaxOutputBytes
	}
}

// rebuildLocked refreshes the derived gate and allowlist from cfg.
func (s *Store) rebuildLocked() error {
	allow, err := fspath.NewAllowlist(s.cfg.AllowedDirectories)
	if err != nil {
		return err
	}
	s.guard = cmdguard.New(s.cfg.BlockedCommands)
	s.allow = allow
	return nil
}

// persistLocked writes the document to disk, creating parent
// directories as needed.
func (s *Store) persistLocked() error {
	b, err := yaml.Marshal(s.cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o600)
}

// Config returns a copy of the current document.
func (s *Store) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg := *s.cfg
	cfg.BlockedCommands = append([]string(nil), s.cfg.BlockedCommands...)
	cfg.AllowedDirectories = append([]string(nil), s.cfg.AllowedDirectories...)
	return cfg
}

// SetValue updates one key, rebuilds derived state, and persists the
// document. Unknown keys yield ErrUnknownKey.
func (s *Store) SetValue(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	updated := *s.cfg
	switch key {
	case "shell":
		str, ok := value.(string)
		if !ok || str == "" {
			return fmt.Errorf("%s: expected a non-empty string", key)
		}
		updated.Shell = str
	case "blockedCommands":
		list, err := toStringList(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		updated.BlockedCommands = list
	case "allowedDirectories":
		list, err := toStringList(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		updated.AllowedDirectories = list
	case "maxSessions":
		n, err := toInt(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s: expected a positive integer", key)
		}
		updated.MaxSessions = n
	case "maxOutputBytes":
		n, err := toInt(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s: expected a positive integer", key)
		}
		updated.MaxOutputBytes = n
	default:
		return fmt.Errorf("%q: %w", key, ErrUnknownKey)
	}
	prev := s.cfg
	s.cfg = &updated
	if err := s.rebuildLocked(); err != nil {
		s.cfg = prev
		return err
	}
	return s.persistLocked()
}

func toStringList(value any) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return v, nil
	case []any:
		list := make([]string, 0, len(v))
		for _, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected a list of strings, got %T", item)
			}
			list = append(list, str)
		}
		return list, nil
	default:
		return nil, fmt.Errorf("expected a list of strings, got %T", value)
	}
}

func toInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		// JSON numbers arrive as float64.
		return int(v), nil
	default:
		return 0, fmt.Errorf("expected an integer, got %T", value)
	}
}

// Watch reloads the document when the file changes on disk, so external
// edits take effect without a restart. Stop it with Close.
func (s *Store) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return err
	}
	s.watcher = watcher
	s.watchWG.Add(1)
	go func() {
		defer s.watchWG.Done()
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Name != s.path || !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
					continue
				}
				if err := s.reload(); err != nil {
					logrus.WithError(err).Warn("failed to reload configuration")
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logrus.WithError(err).Warn("configuration watcher error")
			}
		}
	}()
	return nil
}

// Close stops the watcher, if any.
func (s *Store) Close() error {
	if s.watcher == nil {
		return nil
	}
	err := s.watcher.Close()
	s.watchWG.Wait()
	s.watcher = nil
	return err
}

func (s *Store) reload() error {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return err
	}
	fillDefaults(&cfg)
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.cfg
	s.cfg = &cfg
	if err := s.rebuildLocked(); err != nil {
		s.cfg = prev
		return err
	}
	logrus.Debug("configuration reloaded")
	return nil
}

// Shell implements shellsession.Config.
func (s *Store) Shell() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Shell
}

// Validate implements shellsession.Config.
func (s *Store) Validate(commandLine string) error {
	s.mu.RLock()
	guard := s.guard
	s.mu.RUnlock()
	return guard.Validate(commandLine)
}

// CheckWorkDir implements shellsession.Config.
func (s *Store) CheckWorkDir(dir string) (string, error) {
	return s.CheckPath(dir)
}

// CheckPath verifies path against the allowed directories and returns
// its cleaned absolute form.
func (s *Store) CheckPath(path string) (string, error) {
	s.mu.RLock()
	allow := s.allow
	s.mu.RUnlock()
	return allow.Check(path)
}

// MaxOutputBytes implements shellsession.Config.
func (s *Store) MaxOutputBytes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.MaxOutputBytes
}

// MaxSessions returns the session retention bound.
func (s *Store) MaxSessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.MaxSessions
}
