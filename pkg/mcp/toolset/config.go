// SPDX-FileCopyrightText: Copyright The Desktop Commander Authors
// SPDX-License-Identifier: Apache-2.0

package toolset

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DillionLowry/DesktopCommanderMCP/pkg/config"
	"github.com/DillionLowry/DesktopCommanderMCP/pkg/mcp/msi"
)

func configResult(cfg config.Config) msi.GetConfigResult {
	return msi.GetConfigResult{
		Shell:              cfg.Shell,
		BlockedCommands:    cfg.BlockedCommands,
		AllowedDirectories: cfg.AllowedDirectories,
		MaxSessions:        cfg.MaxSessions,
		MaxOutputBytes:     cfg.MaxOutputBytes,
	}
}

func (ts *ToolSet) GetConfig(_ context.Context,
	_ *mcp.CallToolRequest, _ msi.GetConfigParams,
) (*mcp.CallToolResult, *msi.GetConfigResult, error) {
	res := configResult(ts.store.Config())
	return &mcp.CallToolResult{
		StructuredContent: &res,
	}, &res, nil
}

func (ts *ToolSet) SetConfigValue(_ context.Context,
	_ *mcp.CallToolRequest, args msi.SetConfigValueParams,
) (*mcp.CallToolResult, *msi.SetConfigValueResult, error) {
	if err := ts.store.SetValue(args.Key, args.Value); err != nil {
		return nil, nil, err
	}
	res := &msi.SetConfigValueResult{
		Config: configResult(ts.store.Config()),
	}
	return &mcp.CallToolResult{
		StructuredContent: res,
	}, res, nil
}
