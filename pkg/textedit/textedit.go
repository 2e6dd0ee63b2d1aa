// SPDX-FileCopyrightText: Copyright The Desktop Commander Authors
// SPDX-License-Identifier: Apache-2.0

// Package textedit applies exact search/replace edits to files. The
// caller states how many occurrences it expects; nothing is written
// unless the actual count matches, so a stale expectation cannot
// corrupt a file.
package textedit

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNoMatch is wrapped when the search text does not occur in the file.
var ErrNoMatch = errors.New("search text not found")

// ErrCountMismatch is wrapped when the occurrence count differs from
// the caller's expectation.
var ErrCountMismatch = errors.New("unexpected number of occurrences")

// Result reports a successful edit.
type Result struct {
	Replacements int `json:"replacements"`
}

// ReplaceInFile replaces occurrences of oldText in the file at path
// with newText. expected is the number of occurrences the caller
// expects; zero means "exactly one". The file is rewritten in place
// with its original permissions.
func ReplaceInFile(path, oldText, newText string, expected int) (*Result, error) {
	if oldText == "" {
		return nil, errors.New("search text is empty")
	}
	if expected <= 0 {
		expected = 1
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	content := string(b)

	count := strings.Count(content, oldText)
	if count == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoMatch, path)
	}
	if count != expected {
		return nil, fmt.Errorf("%w: expected %d, found %d in %s",
			ErrCountMismatch, expected, count, path)
	}

	content = strings.ReplaceAll(content, oldText, newText)
	if err := os.WriteFile(path, []byte(content), info.Mode().Perm()); err != nil {
		return nil, err
	}
	return &Result{Replacements: count}, nil
}
