// SPDX-FileCopyrightText: Copyright The Desktop Commander Authors
// SPDX-License-Identifier: Apache-2.0

package cmdguard

import (
	"errors"
	"testing"

	"gotest.tools/v3/assert"
)

func TestValidate(t *testing.T) {
	guard := New([]string{"rm", "DD", "mkfs"})

	tests := []struct {
		name        string
		commandLine string
		wantBlocked bool
	}{
		{
			name:        "plain blocked command",
			commandLine: "rm -rf /",
			wantBlocked: true,
		},
		{
			name:        "blocked behind sudo",
			commandLine: "sudo rm -rf /",
			wantBlocked: true,
		},
		{
			name:        "blocked after chain operator",
			commandLine: "echo hi && rm -rf /",
			wantBlocked: true,
		},
		{
			name:        "blocked after semicolon",
			commandLine: "ls; rm file",
			wantBlocked: true,
		},
		{
			name:        "blocked after pipe",
			commandLine: "cat list | rm",
			wantBlocked: true,
		},
		{
			name:        "blocked on second line",
			commandLine: "echo hi\nrm file",
			wantBlocked: true,
		},
		{
			name:        "blocked with path prefix",
			commandLine: "/bin/rm file",
			wantBlocked: true,
		},
		{
			name:        "case-insensitive match",
			commandLine: "dd if=/dev/zero of=/dev/sda",
			wantBlocked: true,
		},
		{
			name:        "blocked name as argument is allowed",
			commandLine: "echo rm",
			wantBlocked: false,
		},
		{
			name:        "allowed command",
			commandLine: "ls -la",
			wantBlocked: false,
		},
		{
			name:        "allowed chain",
			commandLine: "echo hi && echo bye",
			wantBlocked: false,
		},
		{
			name:        "prefix of blocked name is allowed",
			commandLine: "rmdir /tmp/x",
			wantBlocked: false,
		},
		{
			name:        "unbalanced quotes still checked",
			commandLine: `rm "unterminated`,
			wantBlocked: true,
		},
		{
			name:        "empty command line",
			commandLine: "",
			wantBlocked: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := guard.Validate(tt.commandLine)
			if tt.wantBlocked {
				assert.Assert(t, errors.Is(err, ErrBlocked), "expected ErrBlocked, got %v", err)
			} else {
				assert.NilError(t, err)
			}
		})
	}
}

func TestValidateEmptyBlocklist(t *testing.T) {
	guard := New(nil)
	assert.NilError(t, guard.Validate("rm -rf /"))
}
