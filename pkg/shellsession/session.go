// SPDX-FileCopyrightText: Copyright The Desktop Commander Authors
// SPDX-License-Identifier: Apache-2.0

// Package shellsession tracks shell commands spawned on behalf of an AI
// assistant: it races command completion against a caller timeout, keeps
// long-running commands alive in the background, serves their output
// incrementally, and terminates them on request.
package shellsession

import (
	"os/exec"
	"sync"
	"time"
)

// Status is the lifecycle state of a Session. A session starts Running
// and transitions exactly once to one of the terminal states.
type Status string

const (
	StatusRunning    Status = "running"
	StatusCompleted  Status = "completed"
	StatusTerminated Status = "terminated"
	StatusFailed     Status = "failed"
)

// Terminal reports whether no further transitions occur from s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusTerminated || s == StatusFailed
}

// Session is one spawned command and its accumulated state. It is
// created by the Manager, owned by the Registry for its entire lifetime,
// and mutated only through its methods.
type Session struct {
	ID      int64
	Command string
	Shell   string
	WorkDir string

	stdout *Buffer
	stderr *Buffer

	mu           sync.Mutex
	pid          int
	status       Status
	exitCode     *int
	terminating  bool
	cmd          *exec.Cmd // released on the terminal transition
	startedAt    time.Time
	lastActivity time.Time
	stdoutCursor int64
	stderrCursor int64
	done         chan struct{} // closed exactly once, on the terminal transition
}

// Info is a point-in-time snapshot of a Session for enumeration.
type Info struct {
	ID       int64         `json:"id"`
	Command  string        `json:"command"`
	PID      int           `json:"pid"`
	Status   Status        `json:"status"`
	ExitCode *int          `json:"exit_code,omitempty"`
	Elapsed  time.Duration `json:"elapsed"`
}

func newSession(id int64, commandLine, shell, workDir string, maxOutputBytes int) *Session {
	now := time.Now()
	return &Session{
		ID:           id,
		Command:      commandLine,
		Shell:        shell,
		WorkDir:      workDir,
		stdout:       NewBuffer(maxOutputBytes),
		stderr:       NewBuffer(maxOutputBytes),
		status:       StatusRunning,
		startedAt:    now,
		lastActivity: now,
		done:         make(chan struct{}),
	}
}

// attach records the started process handle. Called once, after a
// successful spawn.
func (s *Session) attach(cmd *exec.Cmd) {
	s.mu.Lock()
	s.cmd = cmd
	s.pid = cmd.Process.Pid
	s.mu.Unlock()
}

// PID returns the OS process id, or 0 if the spawn failed.
func (s *Session) PID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pid
}

// Status returns the current status and, if terminal, the exit code.
func (s *Session) Status() (Status, *int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.exitCode
}

// Done returns a channel closed when the session reaches a terminal
// state. Observed by the execute race and by bounded output waits.
func (s *Session) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// beginTermination marks the session as being torn down so the exit
// waiter records Terminated rather than Failed, and returns the pid to
// signal. Returns 0 if the session is already terminal.
func (s *Session) beginTermination() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status.Terminal() {
		return 0
	}
	s.terminating = true
	return s.pid
}

// markTerminal performs the one-shot transition to a terminal state.
// The first caller wins; later calls are no-ops returning false. The
// process handle is released on transition.
func (s *Session) markTerminal(status Status, exitCode *int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status.Terminal() {
		return false
	}
	if s.terminating {
		status = StatusTerminated
		exitCode = nil
	}
	s.status = status
	s.exitCode = exitCode
	s.cmd = nil
	s.lastActivity = time.Now()
	close(s.done)
	return true
}

// consume returns the output accumulated strictly after the delivery
// cursors, advances the cursors to the buffer ends, and reports the
// current status. No byte is ever delivered twice.
func (s *Session) consume() *ReadResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	var res ReadResult
	res.Stdout, s.stdoutCursor = s.stdout.ReadFrom(s.stdoutCursor)
	res.Stderr, s.stderrCursor = s.stderr.ReadFrom(s.stderrCursor)
	res.Status = s.status
	res.ExitCode = s.exitCode
	s.lastActivity = time.Now()
	return &res
}

// hasNewOutput reports whether either stream holds undelivered bytes.
func (s *Session) hasNewOutput() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stdout.Total() > s.stdoutCursor || s.stderr.Total() > s.stderrCursor
}

// snapshot returns an Info for enumeration.
func (s *Session) snapshot() Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Info{
		ID:       s.ID,
		Command:  s.Command,
		PID:      s.pid,
		Status:   s.status,
		ExitCode: s.exitCode,
		Elapsed:  time.Since(s.startedAt),
	}
}
