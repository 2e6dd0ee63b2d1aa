// SPDX-FileCopyrightText: Copyright The Desktop Commander Authors
// SPDX-License-Identifier: Apache-2.0

// Package toolset implements the MCP tool handlers declared in
// [github.com/DillionLowry/DesktopCommanderMCP/pkg/mcp/msi].
package toolset

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DillionLowry/DesktopCommanderMCP/pkg/config"
	"github.com/DillionLowry/DesktopCommanderMCP/pkg/mcp/msi"
	"github.com/DillionLowry/DesktopCommanderMCP/pkg/shellsession"
)

func New(store *config.Store, opts ...shellsession.Opt) *ToolSet {
	reg := shellsession.NewRegistry(store.MaxSessions())
	return &ToolSet{
		store:   store,
		manager: shellsession.NewManager(reg, store, opts...),
	}
}

type ToolSet struct {
	store   *config.Store
	manager *shellsession.Manager
}

// Manager exposes the session manager, e.g. for draining sessions on
// shutdown.
func (ts *ToolSet) Manager() *shellsession.Manager {
	return ts.manager
}

func (ts *ToolSet) RegisterServer(server *mcp.Server) error {
	mcp.AddTool(server, msi.ExecuteCommand, ts.ExecuteCommand)
	mcp.AddTool(server, msi.ReadOutput, ts.ReadOutput)
	mcp.AddTool(server, msi.ForceTerminate, ts.ForceTerminate)
	mcp.AddTool(server, msi.ListSessions, ts.ListSessions)
	mcp.AddTool(server, msi.ListProcesses, ts.ListProcesses)
	mcp.AddTool(server, msi.KillProcess, ts.KillProcess)
	mcp.AddTool(server, msi.ReadFile, ts.ReadFile)
	mcp.AddTool(server, msi.WriteFile, ts.WriteFile)
	mcp.AddTool(server, msi.CreateDirectory, ts.CreateDirectory)
	mcp.AddTool(server, msi.ListDirectory, ts.ListDirectory)
	mcp.AddTool(server, msi.MoveFile, ts.MoveFile)
	mcp.AddTool(server, msi.GetFileInfo, ts.GetFileInfo)
	mcp.AddTool(server, msi.SearchFiles, ts.SearchFiles)
	mcp.AddTool(server, msi.SearchCode, ts.SearchCode)
	mcp.AddTool(server, msi.EditBlock, ts.EditBlock)
	mcp.AddTool(server, msi.GetConfig, ts.GetConfig)
	mcp.AddTool(server, msi.SetConfigValue, ts.SetConfigValue)
	return nil
}
