// SPDX-FileCopyrightText: Copyright The Desktop Commander Authors
// SPDX-License-Identifier: Apache-2.0

package toolset

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DillionLowry/DesktopCommanderMCP/pkg/mcp/msi"
	"github.com/DillionLowry/DesktopCommanderMCP/pkg/ptr"
)

const (
	// readFileLimitBytes bounds the content returned by a single read_file call.
	readFileLimitBytes = 32 * 1024 * 1024
	// searchCodeMaxMatches bounds a search_code result.
	searchCodeMaxMatches = 1000
	// searchCodeMaxFileBytes skips files too large to be worth scanning.
	searchCodeMaxFileBytes = 4 * 1024 * 1024
)

func (ts *ToolSet) ReadFile(_ context.Context,
	_ *mcp.CallToolRequest, args msi.ReadFileParams,
) (*mcp.CallToolResult, *msi.ReadFileResult, error) {
	path, err := ts.store.CheckPath(args.Path)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	lr := io.LimitReader(f, readFileLimitBytes)
	b, err := io.ReadAll(lr)
	if err != nil {
		return nil, nil, err
	}
	res := &msi.ReadFileResult{
		Content: string(b),
	}
	if len(b) == readFileLimitBytes {
		// One more byte distinguishes a file of exactly the limit from
		// a truncated one.
		if _, err := f.Read(make([]byte, 1)); err == nil {
			res.Truncated = true
		}
	}
	return &mcp.CallToolResult{
		StructuredContent: res,
	}, res, nil
}

func (ts *ToolSet) WriteFile(_ context.Context,
	_ *mcp.CallToolRequest, args msi.WriteFileParams,
) (*mcp.CallToolResult, *msi.WriteFileResult, error) {
	path, err := ts.store.CheckPath(args.Path)
	if err != nil {
		return nil, nil, err
	}
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if args.Mode != nil {
		switch *args.Mode {
		case "", "rewrite":
		case "append":
			flags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
		default:
			return nil, nil, fmt.Errorf("unknown write mode %q (expected rewrite or append)", *args.Mode)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, nil, err
	}
	n, err := f.Write([]byte(args.Content))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, nil, err
	}
	res := &msi.WriteFileResult{
		BytesWritten: n,
	}
	return &mcp.CallToolResult{
		StructuredContent: res,
	}, res, nil
}

func (ts *ToolSet) CreateDirectory(_ context.Context,
	_ *mcp.CallToolRequest, args msi.CreateDirectoryParams,
) (*mcp.CallToolResult, *msi.CreateDirectoryResult, error) {
	path, err := ts.store.CheckPath(args.Path)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, nil, err
	}
	res := &msi.CreateDirectoryResult{}
	return &mcp.CallToolResult{
		StructuredContent: res,
	}, res, nil
}

func (ts *ToolSet) ListDirectory(_ context.Context,
	_ *mcp.CallToolRequest, args msi.ListDirectoryParams,
) (*mcp.CallToolResult, *msi.ListDirectoryResult, error) {
	path, err := ts.store.CheckPath(args.Path)
	if err != nil {
		return nil, nil, err
	}
	ents, err := os.ReadDir(path)
	if err != nil {
		return nil, nil, err
	}
	res := &msi.ListDirectoryResult{
		Entries: make([]msi.ListDirectoryResultEntry, len(ents)),
	}
	for i, ent := range ents {
		res.Entries[i].Name = ent.Name()
		res.Entries[i].IsDir = ptr.Of(ent.IsDir())
		info, err := ent.Info()
		if err != nil {
			// Entry vanished between ReadDir and Info; name alone is
			// still useful.
			continue
		}
		res.Entries[i].Size = ptr.Of(info.Size())
		res.Entries[i].Mode = ptr.Of(info.Mode())
		res.Entries[i].ModTime = ptr.Of(info.ModTime())
	}
	return &mcp.CallToolResult{
		StructuredContent: res,
	}, res, nil
}

func (ts *ToolSet) MoveFile(_ context.Context,
	_ *mcp.CallToolRequest, args msi.MoveFileParams,
) (*mcp.CallToolResult, *msi.MoveFileResult, error) {
	src, err := ts.store.CheckPath(args.Source)
	if err != nil {
		return nil, nil, err
	}
	dst, err := ts.store.CheckPath(args.Destination)
	if err != nil {
		return nil, nil, err
	}
	if _, err := os.Lstat(dst); err == nil {
		return nil, nil, fmt.Errorf("destination already exists: %q", dst)
	}
	if err := os.Rename(src, dst); err != nil {
		return nil, nil, err
	}
	res := &msi.MoveFileResult{}
	return &mcp.CallToolResult{
		StructuredContent: res,
	}, res, nil
}

func (ts *ToolSet) GetFileInfo(_ context.Context,
	_ *mcp.CallToolRequest, args msi.GetFileInfoParams,
) (*mcp.CallToolResult, *msi.GetFileInfoResult, error) {
	path, err := ts.store.CheckPath(args.Path)
	if err != nil {
		return nil, nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}
	res := &msi.GetFileInfoResult{
		Name:    info.Name(),
		Size:    info.Size(),
		Mode:    info.Mode().String(),
		ModTime: info.ModTime(),
		IsDir:   info.IsDir(),
	}
	return &mcp.CallToolResult{
		StructuredContent: res,
	}, res, nil
}

func (ts *ToolSet) SearchFiles(ctx context.Context,
	_ *mcp.CallToolRequest, args msi.SearchFilesParams,
) (*mcp.CallToolResult, *msi.SearchFilesResult, error) {
	root, err := ts.store.CheckPath(args.Path)
	if err != nil {
		return nil, nil, err
	}
	pattern := strings.ToLower(args.Pattern)
	res := &msi.SearchFilesResult{
		Matches: []string{},
	}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // unreadable entries are skipped, not fatal
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() && d.Name() == ".git" {
			return filepath.SkipDir
		}
		if path != root && strings.Contains(strings.ToLower(d.Name()), pattern) {
			res.Matches = append(res.Matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		StructuredContent: res,
	}, res, nil
}

func (ts *ToolSet) SearchCode(ctx context.Context,
	_ *mcp.CallToolRequest, args msi.SearchCodeParams,
) (*mcp.CallToolResult, *msi.SearchCodeResult, error) {
	root, err := ts.store.CheckPath(args.Path)
	if err != nil {
		return nil, nil, err
	}
	re, err := regexp.Compile(args.Pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid pattern: %w", err)
	}
	res := &msi.SearchCodeResult{
		Matches: []msi.CodeMatch{},
	}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // unreadable entries are skipped, not fatal
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if args.Include != nil && *args.Include != "" {
			ok, err := filepath.Match(*args.Include, d.Name())
			if err != nil || !ok {
				return err
			}
		}
		if info, err := d.Info(); err != nil || info.Size() > searchCodeMaxFileBytes {
			return nil
		}
		if err := searchFile(path, re, res); err != nil {
			return err
		}
		if len(res.Matches) >= searchCodeMaxMatches {
			res.Truncated = true
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		StructuredContent: res,
	}, res, nil
}

func searchFile(path string, re *regexp.Regexp, res *msi.SearchCodeResult) error {
	f, err := os.Open(path)
	if err != nil {
		return nil //nolint:nilerr // the file may have vanished mid-walk
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if strings.ContainsRune(text, '\x00') {
			// Binary file; stop scanning it.
			return nil
		}
		if re.MatchString(text) {
			res.Matches = append(res.Matches, msi.CodeMatch{
				File: path,
				Line: line,
				Text: text,
			})
			if len(res.Matches) >= searchCodeMaxMatches {
				return nil
			}
		}
	}
	// Scanner errors (e.g. a line above the buffer cap) end the file
	// scan without failing the whole search.
	return nil
}
