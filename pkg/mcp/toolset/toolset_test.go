// SPDX-FileCopyrightText: Copyright The Desktop Commander Authors
// SPDX-License-Identifier: Apache-2.0

package toolset

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"gotest.tools/v3/assert"

	"github.com/DillionLowry/DesktopCommanderMCP/pkg/config"
	"github.com/DillionLowry/DesktopCommanderMCP/pkg/mcp/msi"
	"github.com/DillionLowry/DesktopCommanderMCP/pkg/ptr"
	"github.com/DillionLowry/DesktopCommanderMCP/pkg/shellsession"
)

func newTestToolSet(t *testing.T) *ToolSet {
	t.Helper()
	store, err := config.Load(filepath.Join(t.TempDir(), "config.yaml"))
	assert.NilError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return New(store)
}

func TestRegisterServerListsTools(t *testing.T) {
	ctx := context.Background()
	ts := newTestToolSet(t)
	server := mcp.NewServer(&mcp.Implementation{Name: "test"}, nil)
	assert.NilError(t, ts.RegisterServer(server))

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	assert.NilError(t, err)
	client := mcp.NewClient(&mcp.Implementation{Name: "client"}, nil)
	clientSession, err := client.Connect(ctx, clientTransport, nil)
	assert.NilError(t, err)

	toolsResult, err := clientSession.ListTools(ctx, &mcp.ListToolsParams{})
	assert.NilError(t, err)
	var names []string
	for _, tool := range toolsResult.Tools {
		names = append(names, tool.Name)
	}
	for _, want := range []string{
		"execute_command", "read_output", "force_terminate", "list_sessions",
		"list_processes", "kill_process",
		"read_file", "write_file", "create_directory", "list_directory",
		"move_file", "get_file_info", "search_files", "search_code",
		"edit_block", "get_config", "set_config_value",
	} {
		assert.Assert(t, slices.Contains(names, want), "tool %q is not registered", want)
	}

	assert.NilError(t, clientSession.Close())
	assert.NilError(t, serverSession.Wait())
}

func TestExecuteCommandCompletes(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test command assumes a POSIX shell")
	}
	ctx := context.Background()
	ts := newTestToolSet(t)
	_, res, err := ts.ExecuteCommand(ctx, nil, msi.ExecuteCommandParams{
		Command:   "echo hello",
		TimeoutMs: 10000,
	})
	assert.NilError(t, err)
	assert.Equal(t, res.Status, string(shellsession.StatusCompleted))
	assert.Equal(t, res.Stdout, "hello\n")
	assert.Assert(t, res.ExitCode != nil)
	assert.Equal(t, *res.ExitCode, 0)
}

func TestExecuteCommandBlocked(t *testing.T) {
	ctx := context.Background()
	ts := newTestToolSet(t)
	_, _, err := ts.ExecuteCommand(ctx, nil, msi.ExecuteCommandParams{
		Command: "shutdown -h now",
	})
	assert.ErrorContains(t, err, "blocked")
}

func TestReadOutputUnknownSession(t *testing.T) {
	ctx := context.Background()
	ts := newTestToolSet(t)
	_, _, err := ts.ReadOutput(ctx, nil, msi.ReadOutputParams{SessionID: 42})
	assert.ErrorIs(t, err, shellsession.ErrSessionNotFound)
}

func TestFileTools(t *testing.T) {
	ctx := context.Background()
	ts := newTestToolSet(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "hello.txt")

	_, wres, err := ts.WriteFile(ctx, nil, msi.WriteFileParams{
		Path:    path,
		Content: "hello world\n",
	})
	assert.NilError(t, err)
	assert.Equal(t, wres.BytesWritten, len("hello world\n"))

	_, wres, err = ts.WriteFile(ctx, nil, msi.WriteFileParams{
		Path:    path,
		Content: "again\n",
		Mode:    ptr.Of("append"),
	})
	assert.NilError(t, err)
	assert.Equal(t, wres.BytesWritten, len("again\n"))

	_, rres, err := ts.ReadFile(ctx, nil, msi.ReadFileParams{Path: path})
	assert.NilError(t, err)
	assert.Equal(t, rres.Content, "hello world\nagain\n")
	assert.Assert(t, !rres.Truncated)

	_, lres, err := ts.ListDirectory(ctx, nil, msi.ListDirectoryParams{Path: filepath.Dir(path)})
	assert.NilError(t, err)
	assert.Equal(t, len(lres.Entries), 1)
	assert.Equal(t, lres.Entries[0].Name, "hello.txt")

	_, ires, err := ts.GetFileInfo(ctx, nil, msi.GetFileInfoParams{Path: path})
	assert.NilError(t, err)
	assert.Equal(t, ires.Name, "hello.txt")
	assert.Assert(t, !ires.IsDir)

	dst := filepath.Join(dir, "moved.txt")
	_, _, err = ts.MoveFile(ctx, nil, msi.MoveFileParams{Source: path, Destination: dst})
	assert.NilError(t, err)
	_, err = os.Stat(dst)
	assert.NilError(t, err)

	_, _, err = ts.MoveFile(ctx, nil, msi.MoveFileParams{Source: dst, Destination: dst})
	assert.ErrorContains(t, err, "already exists")
}

func TestSearchTools(t *testing.T) {
	ctx := context.Background()
	ts := newTestToolSet(t)
	dir := t.TempDir()
	assert.NilError(t, os.WriteFile(filepath.Join(dir, "alpha.go"), []byte("package alpha\n\nfunc Needle() {}\n"), 0o644))
	assert.NilError(t, os.WriteFile(filepath.Join(dir, "beta.txt"), []byte("nothing here\n"), 0o644))

	_, fres, err := ts.SearchFiles(ctx, nil, msi.SearchFilesParams{Path: dir, Pattern: "ALPHA"})
	assert.NilError(t, err)
	assert.Equal(t, len(fres.Matches), 1)
	assert.Equal(t, filepath.Base(fres.Matches[0]), "alpha.go")

	_, cres, err := ts.SearchCode(ctx, nil, msi.SearchCodeParams{
		Path:    dir,
		Pattern: `func \w+\(\)`,
		Include: ptr.Of("*.go"),
	})
	assert.NilError(t, err)
	assert.Equal(t, len(cres.Matches), 1)
	assert.Equal(t, cres.Matches[0].Line, 3)
	assert.Assert(t, !cres.Truncated)

	_, _, err = ts.SearchCode(ctx, nil, msi.SearchCodeParams{Path: dir, Pattern: "("})
	assert.ErrorContains(t, err, "invalid pattern")
}

func TestEditBlock(t *testing.T) {
	ctx := context.Background()
	ts := newTestToolSet(t)
	path := filepath.Join(t.TempDir(), "doc.txt")
	assert.NilError(t, os.WriteFile(path, []byte("one two one\n"), 0o644))

	_, res, err := ts.EditBlock(ctx, nil, msi.EditBlockParams{
		Path:                 path,
		OldText:              "one",
		NewText:              "three",
		ExpectedReplacements: 2,
	})
	assert.NilError(t, err)
	assert.Equal(t, res.Replacements, 2)
	b, err := os.ReadFile(path)
	assert.NilError(t, err)
	assert.Equal(t, string(b), "three two three\n")
}

func TestConfigTools(t *testing.T) {
	ctx := context.Background()
	ts := newTestToolSet(t)

	_, gres, err := ts.GetConfig(ctx, nil, msi.GetConfigParams{})
	assert.NilError(t, err)
	assert.Assert(t, gres.Shell != "")
	assert.Assert(t, len(gres.BlockedCommands) > 0)

	_, sres, err := ts.SetConfigValue(ctx, nil, msi.SetConfigValueParams{
		Key:   "maxSessions",
		Value: 7,
	})
	assert.NilError(t, err)
	assert.Equal(t, sres.Config.MaxSessions, 7)

	_, _, err = ts.SetConfigValue(ctx, nil, msi.SetConfigValueParams{
		Key:   "noSuchKey",
		Value: 1,
	})
	assert.ErrorIs(t, err, config.ErrUnknownKey)
}
