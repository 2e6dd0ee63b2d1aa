// SPDX-FileCopyrightText: Copyright The Desktop Commander Authors
// SPDX-License-Identifier: Apache-2.0

package osproc

import (
	"context"
	"errors"
	"os"
	"testing"

	"gotest.tools/v3/assert"
)

func TestListIncludesSelf(t *testing.T) {
	infos, err := List(context.Background())
	assert.NilError(t, err)
	assert.Assert(t, len(infos) > 0)

	self := int32(os.Getpid())
	found := false
	for _, info := range infos {
		if info.PID == self {
			found = true
			assert.Assert(t, info.Name != "")
		}
	}
	assert.Assert(t, found, "snapshot does not contain this process")
}

func TestKillUnknownPID(t *testing.T) {
	// PIDs this large do not exist on any supported platform.
	err := Kill(context.Background(), 1<<22+12345)
	assert.Assert(t, errors.Is(err, ErrProcessNotFound), "got %v", err)
}

func TestKillInvalidPID(t *testing.T) {
	err := Kill(context.Background(), -1)
	assert.Assert(t, errors.Is(err, ErrProcessNotFound))
}
