// SPDX-FileCopyrightText: Copyright The Desktop Commander Authors
// SPDX-License-Identifier: Apache-2.0

package msi

import "github.com/modelcontextprotocol/go-sdk/mcp"

var EditBlock = &mcp.Tool{
	Name: "edit_block",
	Description: `Applies an exact search/replace edit to one file.
The edit is refused, and the file left untouched, unless the search text occurs exactly
expected_replacements times (default 1).`,
}

type EditBlockParams struct {
	Path                 string `json:"path" jsonschema:"The file to edit."`
	OldText              string `json:"old_text" jsonschema:"The exact text to search for."`
	NewText              string `json:"new_text" jsonschema:"The replacement text."`
	ExpectedReplacements int    `json:"expected_replacements,omitempty" jsonschema:"How many occurrences must exist. Defaults to 1."`
}

type EditBlockResult struct {
	Replacements int `json:"replacements"`
}
