// SPDX-FileCopyrightText: Copyright The Desktop Commander Authors
// SPDX-License-Identifier: Apache-2.0

package msi

import "github.com/modelcontextprotocol/go-sdk/mcp"

var ExecuteCommand = &mcp.Tool{
	Name: "execute_command",
	Description: `Executes a shell command with a completion timeout.
If the command finishes within the timeout, the full output and exit code are returned.
If it does not, the call returns status "running" with a session id and the output so far;
the command keeps running in the background and its output can be collected with read_output.
Sessions are not killed automatically; end them with force_terminate.`,
}

type ExecuteCommandParams struct {
	Command          string  `json:"command" jsonschema:"The command line to execute under the configured shell."`
	TimeoutMs        int     `json:"timeout_ms,omitempty" jsonschema:"How long to wait for completion before returning a running session, in milliseconds. Defaults to 30000."`
	WorkingDirectory *string `json:"working_directory,omitempty" jsonschema:"Directory to run the command in. Must be inside the allowed directories when those are configured."`
}

type ExecuteCommandResult struct {
	SessionID int64  `json:"session_id" jsonschema:"Identifier for polling the session with read_output."`
	PID       *int   `json:"pid,omitempty" jsonschema:"OS process id of the spawned command. Absent if the spawn failed."`
	Status    string `json:"status" jsonschema:"One of running, completed, terminated, failed."`
	Stdout    string `json:"stdout" jsonschema:"Captured standard output (so far, if still running)."`
	Stderr    string `json:"stderr" jsonschema:"Captured standard error (so far, if still running)."`
	ExitCode  *int   `json:"exit_code,omitempty" jsonschema:"Exit code, present once the command finished."`
}

var ReadOutput = &mcp.Tool{
	Name: "read_output",
	Description: `Reads the output a session produced since the previous read.
Each byte is delivered exactly once across any number of calls.
With wait_ms, the call waits up to that long for new output or for the session to finish.`,
}

type ReadOutputParams struct {
	SessionID int64 `json:"session_id" jsonschema:"Session id returned by execute_command."`
	WaitMs    int   `json:"wait_ms,omitempty" jsonschema:"Maximum time to wait for new output, in milliseconds. 0 returns immediately."`
}

type ReadOutputResult struct {
	Stdout   string `json:"stdout" jsonschema:"New standard output since the previous read."`
	Stderr   string `json:"stderr" jsonschema:"New standard error since the previous read."`
	Status   string `json:"status" jsonschema:"One of running, completed, terminated, failed."`
	ExitCode *int   `json:"exit_code,omitempty" jsonschema:"Exit code, present once the session is finished."`
}

var ForceTerminate = &mcp.Tool{
	Name: "force_terminate",
	Description: `Terminates a running session: a graceful signal to the whole process tree,
then a forceful kill if it has not exited within the grace period.
Terminating an already-finished session is not an error.`,
}

type ForceTerminateParams struct {
	SessionID int64 `json:"session_id" jsonschema:"Session id returned by execute_command."`
}

type ForceTerminateResult struct {
	AlreadyFinished bool `json:"already_finished" jsonschema:"True if the session had already reached a terminal state."`
}

var ListSessions = &mcp.Tool{
	Name: "list_sessions",
	Description: `Lists the command sessions that are currently running.
The snapshot may be stale by the time it is acted on; re-check with read_output or force_terminate.`,
}

type ListSessionsParams struct{}

type SessionInfo struct {
	SessionID int64  `json:"session_id"`
	Command   string `json:"command"`
	PID       int    `json:"pid"`
	Status    string `json:"status"`
	ElapsedMs int64  `json:"elapsed_ms" jsonschema:"Milliseconds since the session was spawned."`
}

type ListSessionsResult struct {
	Sessions []SessionInfo `json:"sessions"`
}
