// SPDX-FileCopyrightText: Copyright The Desktop Commander Authors
// SPDX-License-Identifier: Apache-2.0

package msi

import (
	"io/fs"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var ReadFile = &mcp.Tool{
	Name:        "read_file",
	Description: `Reads and returns the content of a file. Large files are truncated.`,
}

type ReadFileParams struct {
	Path string `json:"path" jsonschema:"The path to the file to read."`
}

type ReadFileResult struct {
	Content   string `json:"content" jsonschema:"The content of the file."`
	Truncated bool   `json:"truncated,omitempty" jsonschema:"True if the file exceeded the read limit."`
}

var WriteFile = &mcp.Tool{
	Name:        "write_file",
	Description: `Writes content to a file, creating it (and any parent directories) if needed. Mode "append" appends instead of overwriting.`,
}

type WriteFileParams struct {
	Path    string  `json:"path" jsonschema:"The path to the file to write."`
	Content string  `json:"content" jsonschema:"The content to write."`
	Mode    *string `json:"mode,omitempty" jsonschema:"Either rewrite (default) or append."`
}

type WriteFileResult struct {
	BytesWritten int `json:"bytes_written"`
}

var CreateDirectory = &mcp.Tool{
	Name:        "create_directory",
	Description: `Creates a directory, including any missing parents. Succeeds if it already exists.`,
}

type CreateDirectoryParams struct {
	Path string `json:"path" jsonschema:"The path of the directory to create."`
}

type CreateDirectoryResult struct{}

var ListDirectory = &mcp.Tool{
	Name:        "list_directory",
	Description: `Lists the entries directly within a directory.`,
}

type ListDirectoryParams struct {
	Path string `json:"path" jsonschema:"The path to the directory to list."`
}

// ListDirectoryResultEntry is similar to [io/fs.FileInfo].
type ListDirectoryResultEntry struct {
	Name    string       `json:"name" jsonschema:"base name of the file"`
	Size    *int64       `json:"size,omitempty" jsonschema:"length in bytes for regular files; system-dependent for others"`
	Mode    *fs.FileMode `json:"mode,omitempty" jsonschema:"file mode bits"`
	ModTime *time.Time   `json:"mod_time,omitempty" jsonschema:"modification time"`
	IsDir   *bool        `json:"is_dir,omitempty" jsonschema:"true for a directory"`
}

type ListDirectoryResult struct {
	Entries []ListDirectoryResultEntry `json:"entries"`
}

var MoveFile = &mcp.Tool{
	Name:        "move_file",
	Description: `Moves or renames a file or directory. Fails if the destination already exists.`,
}

type MoveFileParams struct {
	Source      string `json:"source" jsonschema:"The path to move from."`
	Destination string `json:"destination" jsonschema:"The path to move to."`
}

type MoveFileResult struct{}

var GetFileInfo = &mcp.Tool{
	Name:        "get_file_info",
	Description: `Returns metadata for a file or directory.`,
}

type GetFileInfoParams struct {
	Path string `json:"path" jsonschema:"The path to inspect."`
}

type GetFileInfoResult struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	Mode    string    `json:"mode"`
	ModTime time.Time `json:"mod_time"`
	IsDir   bool      `json:"is_dir"`
}

var SearchFiles = &mcp.Tool{
	Name:        "search_files",
	Description: `Recursively finds files and directories whose name contains the pattern (case-insensitive).`,
}

type SearchFilesParams struct {
	Path    string `json:"path" jsonschema:"The directory to search under."`
	Pattern string `json:"pattern" jsonschema:"Case-insensitive substring to match against entry names."`
}

type SearchFilesResult struct {
	Matches []string `json:"matches" jsonschema:"Paths whose base name matched."`
}

var SearchCode = &mcp.Tool{
	Name:        "search_code",
	Description: `Searches file contents under a directory for a regular expression and returns matching lines.`,
}

type SearchCodeParams struct {
	Path    string  `json:"path" jsonschema:"The directory to search under."`
	Pattern string  `json:"pattern" jsonschema:"The regular expression to search for."`
	Include *string `json:"include,omitempty" jsonschema:"Glob filter on base names, e.g. '*.go'."`
}

type CodeMatch struct {
	File string `json:"file"`
	Line int    `json:"line"`
	Text string `json:"text"`
}

type SearchCodeResult struct {
	Matches   []CodeMatch `json:"matches"`
	Truncated bool        `json:"truncated,omitempty" jsonschema:"True if the result limit was hit before the search finished."`
}
