// SPDX-FileCopyrightText: Copyright The Desktop Commander Authors
// SPDX-License-Identifier: Apache-2.0

// Package msi declares the MCP tools exposed by the server, with their
// typed parameter and result shapes. The handlers live in
// pkg/mcp/toolset; this package is schema only.
package msi
