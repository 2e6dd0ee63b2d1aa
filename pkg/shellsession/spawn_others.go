// SPDX-FileCopyrightText: Copyright The Desktop Commander Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !windows

package shellsession

import (
	"errors"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// backgroundSysProcAttr places the spawned command in its own process
// group, so signals can target the whole process tree.
var backgroundSysProcAttr = &syscall.SysProcAttr{Setpgid: true}

// shellArgs returns the interpreter arguments that make shell run
// commandLine.
func shellArgs(_ string, commandLine string) []string {
	return []string{"-c", commandLine}
}

// terminateTree delivers SIGTERM to the process group of pid, falling
// back to the process itself if the group is gone.
func terminateTree(pid int) error {
	if err := unix.Kill(-pid, unix.SIGTERM); err == nil || !errors.Is(err, unix.ESRCH) {
		return err
	}
	return unix.Kill(pid, unix.SIGTERM)
}

// killTree delivers SIGKILL to the process group of pid, falling back to
// the process itself.
func killTree(pid int) error {
	if err := unix.Kill(-pid, unix.SIGKILL); err == nil || !errors.Is(err, unix.ESRCH) {
		return err
	}
	return unix.Kill(pid, unix.SIGKILL)
}

// isNoSuchProcess reports whether err means the target was already gone,
// which signal delivery treats as a benign race.
func isNoSuchProcess(err error) bool {
	return errors.Is(err, unix.ESRCH) || errors.Is(err, os.ErrProcessDone)
}
