// SPDX-FileCopyrightText: Copyright The Desktop Commander Authors
// SPDX-License-Identifier: Apache-2.0

// Package fspath restricts filesystem access to a configured set of
// directory prefixes.
package fspath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotAllowed is wrapped when a path falls outside the allowed set.
var ErrNotAllowed = errors.New("path is outside the allowed directories")

// Expand resolves a leading "~" to the current user's home directory and
// returns the cleaned absolute path.
func Expand(path string) (string, error) {
	if path == "" {
		return "", errors.New("path is empty")
	}
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return filepath.Abs(path)
}

// Allowlist is a set of directory prefixes access is restricted to.
// An empty Allowlist is unrestricted.
type Allowlist struct {
	prefixes []string
}

// NewAllowlist expands and absolutizes dirs. An empty or nil dirs yields
// an unrestricted Allowlist.
func NewAllowlist(dirs []string) (*Allowlist, error) {
	a := &Allowlist{}
	for _, d := range dirs {
		abs, err := Expand(d)
		if err != nil {
			return nil, fmt.Errorf("allowed directory %q: %w", d, err)
		}
		a.prefixes = append(a.prefixes, abs)
	}
	return a, nil
}

// Unrestricted reports whether the Allowlist permits every path.
func (a *Allowlist) Unrestricted() bool {
	return len(a.prefixes) == 0
}

// Check expands path and verifies it is equal to, or contained in, one
// of the allowed directories. It returns the cleaned absolute path, or
// an error wrapping ErrNotAllowed.
func (a *Allowlist) Check(path string) (string, error) {
	abs, err := Expand(path)
	if err != nil {
		return "", err
	}
	if a.Unrestricted() {
		return abs, nil
	}
	for _, prefix := range a.prefixes {
		if abs == prefix || strings.HasPrefix(abs, prefix+string(filepath.Separator)) {
			return abs, nil
		}
	}
	return "", fmt.Errorf("%q: %w", path, ErrNotAllowed)
}
