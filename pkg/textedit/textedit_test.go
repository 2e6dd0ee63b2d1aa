// SPDX-FileCopyrightText: Copyright The Desktop Commander Authors
// SPDX-License-Identifier: Apache-2.0

package textedit

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "file.txt")
	assert.NilError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReplaceSingle(t *testing.T) {
	path := writeTemp(t, "alpha beta gamma\n")
	res, err := ReplaceInFile(path, "beta", "BETA", 0)
	assert.NilError(t, err)
	assert.Equal(t, 1, res.Replacements)

	b, err := os.ReadFile(path)
	assert.NilError(t, err)
	assert.Equal(t, "alpha BETA gamma\n", string(b))
}

func TestReplaceExpectedCount(t *testing.T) {
	path := writeTemp(t, "x y x y x\n")
	res, err := ReplaceInFile(path, "x", "z", 3)
	assert.NilError(t, err)
	assert.Equal(t, 3, res.Replacements)

	b, err := os.ReadFile(path)
	assert.NilError(t, err)
	assert.Equal(t, "z y z y z\n", string(b))
}

func TestReplaceCountMismatchLeavesFileUntouched(t *testing.T) {
	original := "x y x\n"
	path := writeTemp(t, original)
	_, err := ReplaceInFile(path, "x", "z", 1)
	assert.Assert(t, errors.Is(err, ErrCountMismatch))

	b, err := os.ReadFile(path)
	assert.NilError(t, err)
	assert.Equal(t, original, string(b))
}

func TestReplaceNoMatch(t *testing.T) {
	path := writeTemp(t, "nothing here\n")
	_, err := ReplaceInFile(path, "absent", "x", 1)
	assert.Assert(t, errors.Is(err, ErrNoMatch))
}

func TestReplaceMissingFile(t *testing.T) {
	_, err := ReplaceInFile(filepath.Join(t.TempDir(), "missing"), "a", "b", 1)
	assert.Assert(t, errors.Is(err, os.ErrNotExist))
}
