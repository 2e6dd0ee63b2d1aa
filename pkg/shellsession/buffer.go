// SPDX-FileCopyrightText: Copyright The Desktop Commander Authors
// SPDX-License-Identifier: Apache-2.0

package shellsession

import "sync"

// truncationMarker is prepended to a read when bytes before the reader's
// cursor were dropped to honor the buffer bound.
const truncationMarker = "[earlier output truncated]\n"

// Buffer is an append-only output buffer bounded to a maximum retained
// size. It tracks the total number of bytes ever written so that readers
// can address output by absolute offset even after old content has been
// dropped. It is safe for one writer and any number of readers.
type Buffer struct {
	mu     sync.Mutex
	data   []byte
	max    int
	total  int64 // bytes ever written, including dropped ones
	notify chan struct{}
}

// NewBuffer returns a Buffer retaining at most max bytes.
func NewBuffer(max int) *Buffer {
	return &Buffer{
		max:    max,
		notify: make(chan struct{}),
	}
}

// Write implements io.Writer. It never fails; old content is dropped
// from the front once the bound is exceeded.
func (b *Buffer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	b.mu.Lock()
	b.data = append(b.data, p...)
	b.total += int64(len(p))
	if len(b.data) > b.max {
		excess := len(b.data) - b.max
		b.data = append(b.data[:0], b.data[excess:]...)
	}
	close(b.notify)
	b.notify = make(chan struct{})
	b.mu.Unlock()
	return len(p), nil
}

// ReadFrom returns the text strictly after the absolute offset cursor,
// and the new cursor (the current total). If content between cursor and
// the retained window was dropped, the result is prefixed with a
// truncation marker.
func (b *Buffer) ReadFrom(cursor int64) (string, int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	dropped := b.total - int64(len(b.data))
	pos := cursor - dropped
	marker := ""
	if pos < 0 {
		pos = 0
		marker = truncationMarker
	}
	if pos >= int64(len(b.data)) {
		return "", b.total
	}
	return marker + string(b.data[pos:]), b.total
}

// Total returns the number of bytes ever written.
func (b *Buffer) Total() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.total
}

// Wait returns a channel that is closed on the next write.
func (b *Buffer) Wait() <-chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.notify
}
