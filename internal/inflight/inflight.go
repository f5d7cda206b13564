// Package inflight tracks cancellable background tasks keyed by what they
// produce, so a newer request for the same key supersedes an older one.
package inflight

import (
	"context"
	"sync"
)

// Ticket identifies one started task.
type Ticket[K comparable] struct {
	Key K
	seq uint64
}

type task struct {
	seq    uint64
	cancel context.CancelFunc
}

// Tracker holds at most one live task per key.
type Tracker[K comparable] struct {
	mu    sync.Mutex
	seq   uint64
	tasks map[K]task
}

// New creates an empty Tracker.
func New[K comparable]() *Tracker[K] {
	return &Tracker[K]{tasks: make(map[K]task)}
}

// Start registers a task for key, cancelling any task already running for it.
// The returned context is cancelled when the task is superseded.
func (t *Tracker[K]) Start(parent context.Context, key K) (context.Context, Ticket[K]) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if prev, ok := t.tasks[key]; ok {
		prev.cancel()
	}
	t.seq++
	ctx, cancel := context.WithCancel(parent)
	t.tasks[key] = task{seq: t.seq, cancel: cancel}
	return ctx, Ticket[K]{Key: key, seq: t.seq}
}

// Finish releases the ticket and reports whether it was still the newest
// task for its key. Results of a stale ticket must be discarded.
func (t *Tracker[K]) Finish(tk Ticket[K]) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	cur, ok := t.tasks[tk.Key]
	if !ok || cur.seq != tk.seq {
		return false
	}
	cur.cancel()
	delete(t.tasks, tk.Key)
	return true
}

// Cancel aborts the task for key, if any.
func (t *Tracker[K]) Cancel(key K) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if cur, ok := t.tasks[key]; ok {
		cur.cancel()
		delete(t.tasks, key)
	}
}

// Pending reports whether a task is running for key.
func (t *Tracker[K]) Pending(key K) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.tasks[key]
	return ok
}

// CancelAll aborts every task.
func (t *Tracker[K]) CancelAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for k, cur := range t.tasks {
		cur.cancel()
		delete(t.tasks, k)
	}
}
