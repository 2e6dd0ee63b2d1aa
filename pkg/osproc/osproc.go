// SPDX-FileCopyrightText: Copyright The Desktop Commander Authors
// SPDX-License-Identifier: Apache-2.0

// Package osproc inspects and signals arbitrary OS processes. It is
// independent of the session registry and may target processes this
// server never spawned.
package osproc

import (
	"context"
	"errors"
	"fmt"

	"github.com/shirou/gopsutil/v4/process"
)

// ErrProcessNotFound is wrapped when the target pid does not exist.
var ErrProcessNotFound = errors.New("process not found")

// ErrSignal is wrapped when signal delivery fails for a reason other
// than the process being gone, e.g. insufficient permission.
var ErrSignal = errors.New("failed to signal process")

// Info describes one process in an OS-wide snapshot.
type Info struct {
	PID        int32   `json:"pid"`
	Name       string  `json:"name"`
	CPUPercent float64 `json:"cpu_percent"`
	MemPercent float32 `json:"mem_percent"`
}

// List returns a snapshot of all processes visible to this user.
// Processes that disappear mid-enumeration are skipped.
func List(ctx context.Context) ([]Info, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumerating processes: %w", err)
	}
	infos := make([]Info, 0, len(procs))
	for _, p := range procs {
		info := Info{PID: p.Pid}
		name, err := p.NameWithContext(ctx)
		if err != nil {
			// Gone, or a kernel thread we may not inspect.
			continue
		}
		info.Name = name
		if cpu, err := p.CPUPercentWithContext(ctx); err == nil {
			info.CPUPercent = cpu
		}
		if mem, err := p.MemoryPercentWithContext(ctx); err == nil {
			info.MemPercent = mem
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Kill sends a termination signal to pid. A missing process yields
// ErrProcessNotFound; any other delivery failure yields ErrSignal.
func Kill(ctx context.Context, pid int) error {
	if pid <= 0 {
		return fmt.Errorf("pid %d: %w", pid, ErrProcessNotFound)
	}
	p, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return fmt.Errorf("pid %d: %w", pid, ErrProcessNotFound)
	}
	if err := p.TerminateWithContext(ctx); err != nil {
		if running, runErr := p.IsRunningWithContext(ctx); runErr == nil && !running {
			return fmt.Errorf("pid %d: %w", pid, ErrProcessNotFound)
		}
		return fmt.Errorf("pid %d: %v: %w", pid, err, ErrSignal)
	}
	return nil
}
