// SPDX-FileCopyrightText: Copyright The Desktop Commander Authors
// SPDX-License-Identifier: Apache-2.0

package shellsession

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/DillionLowry/DesktopCommanderMCP/pkg/ptr"
)

const (
	// DefaultTimeout bounds the execute race when the caller passes none.
	DefaultTimeout = 30 * time.Second
	// DefaultGracePeriod is the wait between the graceful termination
	// signal and the forceful one.
	DefaultGracePeriod = 5 * time.Second
	// DefaultMaxOutputBytes bounds each retained output stream.
	DefaultMaxOutputBytes = 1 << 20
)

// Config supplies the facts the Manager consumes from the configuration
// collaborator. Implementations may change their answers between calls;
// each execution reads them once at spawn time.
type Config interface {
	// Shell is the interpreter commands are spawned under.
	Shell() string
	// Validate rejects blocked command lines before any spawn.
	Validate(commandLine string) error
	// CheckWorkDir verifies the working directory is allowed and
	// returns its cleaned absolute form.
	CheckWorkDir(dir string) (string, error)
	// MaxOutputBytes bounds each per-session output buffer.
	MaxOutputBytes() int
}

// Manager orchestrates command sessions: validate, spawn, race
// completion against the caller's timeout, serve incremental output,
// and terminate on request.
type Manager struct {
	reg   *Registry
	cfg   Config
	grace time.Duration
}

// Opt adjusts a Manager.
type Opt func(*Manager)

// WithGracePeriod overrides the wait between the graceful and the
// forceful termination signal.
func WithGracePeriod(d time.Duration) Opt {
	return func(m *Manager) {
		m.grace = d
	}
}

// NewManager returns a Manager over reg, consuming cfg.
func NewManager(reg *Registry, cfg Config, opts ...Opt) *Manager {
	m := &Manager{
		reg:   reg,
		cfg:   cfg,
		grace: DefaultGracePeriod,
	}
	for _, f := range opts {
		f(m)
	}
	return m
}

// Registry exposes the session store, e.g. for reconciling sessions
// whose process was killed through the process inspector.
func (m *Manager) Registry() *Registry {
	return m.reg
}

// ExecResult is the outcome of Execute: either a terminal status with
// the full captured output, or StatusRunning with the output so far and
// a session id to poll.
type ExecResult struct {
	SessionID int64
	PID       int
	Status    Status
	Stdout    string
	Stderr    string
	ExitCode  *int
}

// ReadResult is one increment of a session's output.
type ReadResult struct {
	Stdout   string
	Stderr   string
	Status   Status
	ExitCode *int
}

// Execute validates commandLine, spawns it under the configured shell,
// and races process completion against timeout. If the process exits
// first the result carries its full output and exit code; otherwise the
// result is StatusRunning and the command keeps running in the
// background, its output retrievable through ReadOutput. A spawn
// failure is reported as StatusFailed with a diagnostic, not an error.
func (m *Manager) Execute(ctx context.Context, commandLine string, timeout time.Duration, workDir string) (*ExecResult, error) {
	if strings.TrimSpace(commandLine) == "" {
		return nil, errors.New("command is empty")
	}
	if err := m.cfg.Validate(commandLine); err != nil {
		return nil, err
	}
	var err error
	if workDir != "" {
		if workDir, err = m.cfg.CheckWorkDir(workDir); err != nil {
			return nil, err
		}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	shell := m.cfg.Shell()
	// Registered before the spawn resolves, so the session is visible
	// to enumeration immediately.
	sess := m.reg.Register(commandLine, shell, workDir, m.cfg.MaxOutputBytes())

	cmd := exec.Command(shell, shellArgs(shell, commandLine)...)
	cmd.Dir = workDir
	cmd.SysProcAttr = backgroundSysProcAttr
	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return m.failSpawn(sess, err), nil
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return m.failSpawn(sess, err), nil
	}
	if err := cmd.Start(); err != nil {
		return m.failSpawn(sess, err), nil
	}
	sess.attach(cmd)
	logrus.Debugf("session %d: spawned pid %d for %q", sess.ID, sess.PID(), commandLine)

	go m.waitForExit(sess, cmd, stdoutPipe, stderrPipe)

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-sess.Done():
	case <-timer.C:
	case <-ctx.Done():
	}

	res := sess.consume()
	return &ExecResult{
		SessionID: sess.ID,
		PID:       sess.PID(),
		Status:    res.Status,
		Stdout:    res.Stdout,
		Stderr:    res.Stderr,
		ExitCode:  res.ExitCode,
	}, nil
}

// failSpawn records an OS-level spawn refusal as the session's terminal
// state so it stays visible to later reads.
func (m *Manager) failSpawn(sess *Session, err error) *ExecResult {
	diag := fmt.Sprintf("failed to start %q: %v", sess.Command, err)
	logrus.Debugf("session %d: %s", sess.ID, diag)
	fmt.Fprintln(sess.stderr, diag)
	sess.markTerminal(StatusFailed, nil)
	res := sess.consume()
	return &ExecResult{
		SessionID: sess.ID,
		Status:    res.Status,
		Stderr:    res.Stderr,
	}
}

// waitForExit drains both output pipes into the session buffers, waits
// for the process, and performs the terminal transition.
func (m *Manager) waitForExit(sess *Session, cmd *exec.Cmd, stdout, stderr io.Reader) {
	var g errgroup.Group
	g.Go(func() error {
		_, err := io.Copy(sess.stdout, stdout)
		return err
	})
	g.Go(func() error {
		_, err := io.Copy(sess.stderr, stderr)
		return err
	})
	if err := g.Wait(); err != nil {
		logrus.WithError(err).Debugf("session %d: output stream closed early", sess.ID)
	}

	err := cmd.Wait()
	status := StatusCompleted
	exitCode := 0
	if err != nil {
		status = StatusFailed
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			fmt.Fprintf(sess.stderr, "wait: %v\n", err)
			exitCode = -1
		}
	}
	sess.markTerminal(status, ptr.Of(exitCode))
	st, _ := sess.Status()
	logrus.Debugf("session %d: %s (exit code %d)", sess.ID, st, exitCode)
}

// ReadOutput returns the output accumulated since the previous read and
// advances the delivery cursor, so no byte is delivered twice. If the
// session is running, nothing new is buffered, and wait is positive, the
// call suspends up to wait for new output or the terminal transition,
// whichever comes first. Returns ErrSessionNotFound for unknown ids.
func (m *Manager) ReadOutput(ctx context.Context, id int64, wait time.Duration) (*ReadResult, error) {
	sess, err := m.reg.Get(id)
	if err != nil {
		return nil, err
	}
	if wait > 0 {
		// Take the notification channels before checking, so a write
		// landing in between cannot be missed.
		stdoutCh := sess.stdout.Wait()
		stderrCh := sess.stderr.Wait()
		if st, _ := sess.Status(); st == StatusRunning && !sess.hasNewOutput() {
			timer := time.NewTimer(wait)
			defer timer.Stop()
			select {
			case <-sess.Done():
			case <-stdoutCh:
			case <-stderrCh:
			case <-timer.C:
			case <-ctx.Done():
			}
		}
	}
	return sess.consume(), nil
}

// Terminate ends a running session: a graceful signal to the process
// tree, a bounded grace period, then a forceful kill. It is idempotent;
// terminating an already-finished session reports alreadyFinished
// without error. Signal failures against an already-gone process are a
// benign race and the session is reconciled to Terminated.
func (m *Manager) Terminate(ctx context.Context, id int64) (alreadyFinished bool, err error) {
	sess, e := m.reg.Get(id)
	if e != nil {
		return false, e
	}
	pid := sess.beginTermination()
	if pid == 0 {
		if st, _ := sess.Status(); st.Terminal() {
			return true, nil
		}
		// Running but with no live process to signal; reconcile.
		sess.markTerminal(StatusTerminated, nil)
		return false, nil
	}

	logrus.Debugf("session %d: sending graceful termination to process group %d", sess.ID, pid)
	if sigErr := terminateTree(pid); sigErr != nil && !isNoSuchProcess(sigErr) {
		logrus.WithError(sigErr).Warnf("session %d: graceful termination signal failed", sess.ID)
	}

	grace := time.NewTimer(m.grace)
	defer grace.Stop()
	select {
	case <-sess.Done():
		return false, nil
	case <-grace.C:
	case <-ctx.Done():
	}

	logrus.Debugf("session %d: escalating to forceful kill of process group %d", sess.ID, pid)
	if sigErr := killTree(pid); sigErr != nil && !isNoSuchProcess(sigErr) {
		logrus.WithError(sigErr).Warnf("session %d: forceful kill failed", sess.ID)
	}

	select {
	case <-sess.Done():
	case <-time.After(2 * time.Second):
		// The exit waiter did not observe the death; reconcile so the
		// session cannot stay Running forever.
		sess.markTerminal(StatusTerminated, nil)
	}
	return false, nil
}

// ListSessions returns a snapshot of the sessions that were Running at
// the moment of the call.
func (m *Manager) ListSessions() []Info {
	return m.reg.Running()
}
