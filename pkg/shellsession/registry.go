// SPDX-FileCopyrightText: Copyright The Desktop Commander Authors
// SPDX-License-Identifier: Apache-2.0

package shellsession

import (
	"errors"
	"sort"
	"sync"
)

// ErrSessionNotFound is returned for unknown session ids.
var ErrSessionNotFound = errors.New("session not found")

// Registry is the single authoritative store of Sessions. Session ids
// are monotonically increasing and never reused for the lifetime of the
// process. Sessions remain queryable after their terminal transition;
// only the oldest terminal sessions are evicted, and only once the
// retention bound is exceeded. Running sessions are never evicted.
type Registry struct {
	mu          sync.Mutex
	nextID      int64
	sessions    map[int64]*Session
	order       []int64 // registration order, for eviction
	maxRetained int
}

// NewRegistry returns a Registry retaining at most maxRetained sessions.
func NewRegistry(maxRetained int) *Registry {
	if maxRetained <= 0 {
		maxRetained = 100
	}
	return &Registry{
		sessions:    make(map[int64]*Session),
		maxRetained: maxRetained,
	}
}

// Register creates and stores a new Session. The session is visible to
// enumeration immediately, before its process has been started.
func (r *Registry) Register(commandLine, shell, workDir string, maxOutputBytes int) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	sess := newSession(r.nextID, commandLine, shell, workDir, maxOutputBytes)
	r.sessions[sess.ID] = sess
	r.order = append(r.order, sess.ID)
	r.evictLocked()
	return sess
}

// Get returns the session with the given id, or ErrSessionNotFound.
func (r *Registry) Get(id int64) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Running returns a point-in-time snapshot of the sessions whose status
// is Running, ordered by id. The snapshot may be stale by the time the
// caller acts on it.
func (r *Registry) Running() []Info {
	r.mu.Lock()
	defer r.mu.Unlock()
	var infos []Info
	for _, sess := range r.sessions {
		if info := sess.snapshot(); info.Status == StatusRunning {
			infos = append(infos, info)
		}
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// ReconcilePID transitions the Running session backed by pid, if any, to
// Terminated. Used when the process was killed outside the session path.
func (r *Registry) ReconcilePID(pid int) bool {
	if pid <= 0 {
		return false
	}
	r.mu.Lock()
	var match *Session
	for _, sess := range r.sessions {
		if st, _ := sess.Status(); st == StatusRunning && sess.PID() == pid {
			match = sess
			break
		}
	}
	r.mu.Unlock()
	if match == nil {
		return false
	}
	match.beginTermination()
	return match.markTerminal(StatusTerminated, nil)
}

// evictLocked drops the oldest terminal sessions beyond the retention
// bound. Running sessions are skipped.
func (r *Registry) evictLocked() {
	if len(r.sessions) <= r.maxRetained {
		return
	}
	kept := r.order[:0]
	for _, id := range r.order {
		sess, ok := r.sessions[id]
		if !ok {
			continue
		}
		st, _ := sess.Status()
		if len(r.sessions) > r.maxRetained && st.Terminal() {
			delete(r.sessions, id)
			continue
		}
		kept = append(kept, id)
	}
	r.order = kept
}
