// SPDX-FileCopyrightText: Copyright The Desktop Commander Authors
// SPDX-License-Identifier: Apache-2.0

package shellsession

import (
	"errors"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/DillionLowry/DesktopCommanderMCP/pkg/ptr"
)

func TestRegistryIDsMonotonic(t *testing.T) {
	r := NewRegistry(10)
	a := r.Register("echo a", "/bin/sh", "", DefaultMaxOutputBytes)
	b := r.Register("echo b", "/bin/sh", "", DefaultMaxOutputBytes)
	assert.Assert(t, b.ID > a.ID)

	got, err := r.Get(a.ID)
	assert.NilError(t, err)
	assert.Equal(t, a, got)
}

func TestRegistryGetUnknown(t *testing.T) {
	r := NewRegistry(10)
	_, err := r.Get(42)
	assert.Assert(t, errors.Is(err, ErrSessionNotFound))
}

func TestRegistryRunningSnapshot(t *testing.T) {
	r := NewRegistry(10)
	running := r.Register("sleep 30", "/bin/sh", "", DefaultMaxOutputBytes)
	finished := r.Register("echo done", "/bin/sh", "", DefaultMaxOutputBytes)
	finished.markTerminal(StatusCompleted, ptr.Of(0))

	infos := r.Running()
	assert.Equal(t, 1, len(infos))
	assert.Equal(t, running.ID, infos[0].ID)
	assert.Equal(t, StatusRunning, infos[0].Status)
}

func TestRegistryEvictsOnlyTerminal(t *testing.T) {
	r := NewRegistry(2)
	oldTerminal := r.Register("echo 1", "/bin/sh", "", DefaultMaxOutputBytes)
	oldTerminal.markTerminal(StatusCompleted, ptr.Of(0))
	running := r.Register("sleep 30", "/bin/sh", "", DefaultMaxOutputBytes)
	r.Register("echo 3", "/bin/sh", "", DefaultMaxOutputBytes)

	// The oldest terminal session was evicted, the running one kept.
	_, err := r.Get(oldTerminal.ID)
	assert.Assert(t, errors.Is(err, ErrSessionNotFound))
	_, err = r.Get(running.ID)
	assert.NilError(t, err)
}

func TestRegistryMarkTerminalOnce(t *testing.T) {
	r := NewRegistry(10)
	s := r.Register("echo", "/bin/sh", "", DefaultMaxOutputBytes)
	assert.Assert(t, s.markTerminal(StatusCompleted, ptr.Of(0)))
	assert.Assert(t, !s.markTerminal(StatusFailed, ptr.Of(1)))

	st, code := s.Status()
	assert.Equal(t, StatusCompleted, st)
	assert.Equal(t, 0, *code)
}
