// SPDX-FileCopyrightText: Copyright The Desktop Commander Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/DillionLowry/DesktopCommanderMCP/pkg/cmdguard"
	"github.com/DillionLowry/DesktopCommanderMCP/pkg/fspath"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	s, err := Load(path)
	assert.NilError(t, err)
	return s
}

func TestLoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	s, err := Load(path)
	assert.NilError(t, err)

	// The file was created with the default document.
	_, err = os.Stat(path)
	assert.NilError(t, err)

	cfg := s.Config()
	assert.Assert(t, cfg.Shell != "")
	assert.Assert(t, len(cfg.BlockedCommands) > 0)
	assert.Assert(t, cfg.MaxOutputBytes > 0)
}

func TestLoadExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := "shell: /bin/bash\nblockedCommands: [rm]\nallowedDirectories: [/tmp]\n"
	assert.NilError(t, os.WriteFile(path, []byte(doc), 0o600))

	s, err := Load(path)
	assert.NilError(t, err)
	assert.Equal(t, "/bin/bash", s.Shell())
	assert.Assert(t, errors.Is(s.Validate("rm -rf /"), cmdguard.ErrBlocked))
	assert.NilError(t, s.Validate("ls"))

	_, err = s.CheckWorkDir("/tmp/project")
	assert.NilError(t, err)
	_, err = s.CheckWorkDir("/etc")
	assert.Assert(t, errors.Is(err, fspath.ErrNotAllowed))

	// Unspecified fields were defaulted.
	assert.Assert(t, s.MaxSessions() > 0)
	assert.Assert(t, s.MaxOutputBytes() > 0)
}

func TestSetValuePersists(t *testing.T) {
	s := tempStore(t)
	assert.NilError(t, s.SetValue("shell", "/bin/bash"))
	assert.NilError(t, s.SetValue("blockedCommands", []string{"rm"}))
	assert.NilError(t, s.SetValue("maxSessions", float64(7)))

	// A fresh Load sees the persisted values.
	reloaded, err := Load(s.path)
	assert.NilError(t, err)
	assert.Equal(t, "/bin/bash", reloaded.Shell())
	assert.Equal(t, 7, reloaded.MaxSessions())
	assert.Assert(t, errors.Is(reloaded.Validate("rm x"), cmdguard.ErrBlocked))
}

func TestSetValueRejectsBadInput(t *testing.T) {
	s := tempStore(t)
	assert.Assert(t, errors.Is(s.SetValue("noSuchKey", 1), ErrUnknownKey))
	assert.Assert(t, s.SetValue("shell", 42) != nil)
	assert.Assert(t, s.SetValue("maxSessions", -1) != nil)
	assert.Assert(t, s.SetValue("blockedCommands", "not-a-list") != nil)
}

func TestSetValueJSONShapes(t *testing.T) {
	s := tempStore(t)
	// Tool calls deliver lists as []any and numbers as float64.
	assert.NilError(t, s.SetValue("allowedDirectories", []any{"/tmp"}))
	assert.NilError(t, s.SetValue("maxOutputBytes", float64(4096)))

	_, err := s.CheckPath("/etc/passwd")
	assert.Assert(t, errors.Is(err, fspath.ErrNotAllowed))
	assert.Equal(t, 4096, s.MaxOutputBytes())
}
