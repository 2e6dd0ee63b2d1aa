// SPDX-FileCopyrightText: Copyright The Desktop Commander Authors
// SPDX-License-Identifier: Apache-2.0

package msi

import "github.com/modelcontextprotocol/go-sdk/mcp"

var GetConfig = &mcp.Tool{
	Name:        "get_config",
	Description: `Returns the server configuration: shell, blocked commands, allowed directories, and limits.`,
}

type GetConfigParams struct{}

type GetConfigResult struct {
	Shell              string   `json:"shell"`
	BlockedCommands    []string `json:"blocked_commands"`
	AllowedDirectories []string `json:"allowed_directories"`
	MaxSessions        int      `json:"max_sessions"`
	MaxOutputBytes     int      `json:"max_output_bytes"`
}

var SetConfigValue = &mcp.Tool{
	Name: "set_config_value",
	Description: `Sets one configuration value and persists it.
Keys: shell, blockedCommands, allowedDirectories, maxSessions, maxOutputBytes.`,
}

type SetConfigValueParams struct {
	Key   string `json:"key" jsonschema:"The configuration key to set."`
	Value any    `json:"value" jsonschema:"The new value. Lists for blockedCommands and allowedDirectories, a string for shell, integers for the limits."`
}

type SetConfigValueResult struct {
	Config GetConfigResult `json:"config" jsonschema:"The configuration after the update."`
}
