// SPDX-FileCopyrightText: Copyright The Desktop Commander Authors
// SPDX-License-Identifier: Apache-2.0

package shellsession

import (
	"errors"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/sys/windows"
)

// backgroundSysProcAttr creates the spawned command in its own process
// group so it can be targeted as a tree.
var backgroundSysProcAttr = &syscall.SysProcAttr{
	CreationFlags: windows.CREATE_NEW_PROCESS_GROUP,
}

// shellArgs returns the interpreter arguments that make shell run
// commandLine. cmd.exe takes /c, PowerShell and Unix-style shells -c.
func shellArgs(shell, commandLine string) []string {
	base := strings.TrimSuffix(strings.ToLower(shell), ".exe")
	if strings.HasSuffix(base, "cmd") {
		return []string{"/c", commandLine}
	}
	return []string{"-c", commandLine}
}

// terminateTree asks taskkill to end the process tree of pid.
func terminateTree(pid int) error {
	return exec.Command("taskkill", "/T", "/PID", strconv.Itoa(pid)).Run()
}

// killTree forcefully ends the process tree of pid.
func killTree(pid int) error {
	return exec.Command("taskkill", "/T", "/F", "/PID", strconv.Itoa(pid)).Run()
}

// isNoSuchProcess reports whether err means the target was already gone.
func isNoSuchProcess(err error) bool {
	return errors.Is(err, os.ErrProcessDone) || errors.Is(err, windows.ERROR_NOT_FOUND)
}
