// SPDX-FileCopyrightText: Copyright The Desktop Commander Authors
// SPDX-License-Identifier: Apache-2.0

package toolset

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DillionLowry/DesktopCommanderMCP/pkg/mcp/msi"
	"github.com/DillionLowry/DesktopCommanderMCP/pkg/osproc"
)

func (ts *ToolSet) ListProcesses(ctx context.Context,
	_ *mcp.CallToolRequest, _ msi.ListProcessesParams,
) (*mcp.CallToolResult, *msi.ListProcessesResult, error) {
	procs, err := osproc.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	res := &msi.ListProcessesResult{
		Processes: make([]msi.ProcessInfo, len(procs)),
	}
	for i, p := range procs {
		res.Processes[i] = msi.ProcessInfo{
			PID:        p.PID,
			Name:       p.Name,
			CPUPercent: p.CPUPercent,
			MemPercent: p.MemPercent,
		}
	}
	return &mcp.CallToolResult{
		StructuredContent: res,
	}, res, nil
}

func (ts *ToolSet) KillProcess(ctx context.Context,
	_ *mcp.CallToolRequest, args msi.KillProcessParams,
) (*mcp.CallToolResult, *msi.KillProcessResult, error) {
	if err := osproc.Kill(ctx, args.PID); err != nil {
		return nil, nil, err
	}
	// The PID may belong to a tracked session spawned by
	// execute_command; keep its bookkeeping truthful.
	ts.manager.Registry().ReconcilePID(args.PID)
	res := &msi.KillProcessResult{
		Message: fmt.Sprintf("sent termination signal to pid %d", args.PID),
	}
	return &mcp.CallToolResult{
		StructuredContent: res,
	}, res, nil
}
