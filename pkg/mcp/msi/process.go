// SPDX-FileCopyrightText: Copyright The Desktop Commander Authors
// SPDX-License-Identifier: Apache-2.0

package msi

import "github.com/modelcontextprotocol/go-sdk/mcp"

var ListProcesses = &mcp.Tool{
	Name: "list_processes",
	Description: `Lists all processes visible on this machine with CPU and memory usage,
including processes this server never spawned.`,
}

type ListProcessesParams struct{}

type ProcessInfo struct {
	PID        int32   `json:"pid"`
	Name       string  `json:"name"`
	CPUPercent float64 `json:"cpu_percent"`
	MemPercent float32 `json:"mem_percent"`
}

type ListProcessesResult struct {
	Processes []ProcessInfo `json:"processes"`
}

var KillProcess = &mcp.Tool{
	Name: "kill_process",
	Description: `Sends a termination signal to an arbitrary process by PID.
The process does not need to belong to a tracked session; if it does, the session is
reconciled to the terminated state.`,
}

type KillProcessParams struct {
	PID int `json:"pid" jsonschema:"Process id to signal."`
}

type KillProcessResult struct {
	Message string `json:"message"`
}
