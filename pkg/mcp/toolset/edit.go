// SPDX-FileCopyrightText: Copyright The Desktop Commander Authors
// SPDX-License-Identifier: Apache-2.0

package toolset

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DillionLowry/DesktopCommanderMCP/pkg/mcp/msi"
	"github.com/DillionLowry/DesktopCommanderMCP/pkg/textedit"
)

func (ts *ToolSet) EditBlock(_ context.Context,
	_ *mcp.CallToolRequest, args msi.EditBlockParams,
) (*mcp.CallToolResult, *msi.EditBlockResult, error) {
	path, err := ts.store.CheckPath(args.Path)
	if err != nil {
		return nil, nil, err
	}
	result, err := textedit.ReplaceInFile(path, args.OldText, args.NewText, args.ExpectedReplacements)
	if err != nil {
		return nil, nil, err
	}
	res := &msi.EditBlockResult{
		Replacements: result.Replacements,
	}
	return &mcp.CallToolResult{
		StructuredContent: res,
	}, res, nil
}
