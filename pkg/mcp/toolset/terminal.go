// SPDX-FileCopyrightText: Copyright The Desktop Commander Authors
// SPDX-License-Identifier: Apache-2.0

package toolset

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DillionLowry/DesktopCommanderMCP/pkg/mcp/msi"
	"github.com/DillionLowry/DesktopCommanderMCP/pkg/ptr"
)

func (ts *ToolSet) ExecuteCommand(ctx context.Context,
	_ *mcp.CallToolRequest, args msi.ExecuteCommandParams,
) (*mcp.CallToolResult, *msi.ExecuteCommandResult, error) {
	timeout := time.Duration(args.TimeoutMs) * time.Millisecond
	var workDir string
	if args.WorkingDirectory != nil {
		workDir = *args.WorkingDirectory
	}
	exec, err := ts.manager.Execute(ctx, args.Command, timeout, workDir)
	if err != nil {
		return nil, nil, err
	}
	res := &msi.ExecuteCommandResult{
		SessionID: exec.SessionID,
		Status:    string(exec.Status),
		Stdout:    exec.Stdout,
		Stderr:    exec.Stderr,
		ExitCode:  exec.ExitCode,
	}
	if exec.PID > 0 {
		res.PID = ptr.Of(exec.PID)
	}
	return &mcp.CallToolResult{
		StructuredContent: res,
	}, res, nil
}

func (ts *ToolSet) ReadOutput(ctx context.Context,
	_ *mcp.CallToolRequest, args msi.ReadOutputParams,
) (*mcp.CallToolResult, *msi.ReadOutputResult, error) {
	wait := time.Duration(args.WaitMs) * time.Millisecond
	read, err := ts.manager.ReadOutput(ctx, args.SessionID, wait)
	if err != nil {
		return nil, nil, err
	}
	res := &msi.ReadOutputResult{
		Stdout:   read.Stdout,
		Stderr:   read.Stderr,
		Status:   string(read.Status),
		ExitCode: read.ExitCode,
	}
	return &mcp.CallToolResult{
		StructuredContent: res,
	}, res, nil
}

func (ts *ToolSet) ForceTerminate(ctx context.Context,
	_ *mcp.CallToolRequest, args msi.ForceTerminateParams,
) (*mcp.CallToolResult, *msi.ForceTerminateResult, error) {
	alreadyFinished, err := ts.manager.Terminate(ctx, args.SessionID)
	if err != nil {
		return nil, nil, err
	}
	res := &msi.ForceTerminateResult{
		AlreadyFinished: alreadyFinished,
	}
	return &mcp.CallToolResult{
		StructuredContent: res,
	}, res, nil
}

func (ts *ToolSet) ListSessions(_ context.Context,
	_ *mcp.CallToolRequest, _ msi.ListSessionsParams,
) (*mcp.CallToolResult, *msi.ListSessionsResult, error) {
	infos := ts.manager.ListSessions()
	res := &msi.ListSessionsResult{
		Sessions: make([]msi.SessionInfo, len(infos)),
	}
	for i, info := range infos {
		res.Sessions[i] = msi.SessionInfo{
			SessionID: info.ID,
			Command:   info.Command,
			PID:       info.PID,
			Status:    string(info.Status),
			ElapsedMs: info.Elapsed.Milliseconds(),
		}
	}
	return &mcp.CallToolResult{
		StructuredContent: res,
	}, res, nil
}
