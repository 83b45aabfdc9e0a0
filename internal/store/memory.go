// internal/store/memory.go
//
// In-memory append-only log.
// Used as the backing store of the execution tracker.
//
// Characteristics:
//   - Entries are appended, never mutated or removed.
//   - Concurrency-safe via RWMutex, so a read-only inspector can iterate the
//     log from another goroutine while a game is running.
//   - All() is lazy and restartable: each range over it walks a snapshot of
//     the entries present when iteration started, in insertion order.
//   - State is lost when the process restarts.

package store

import (
	"iter"
	"sync"
)

// Log is an append-only, in-memory sequence of T.
type Log[T any] struct {
	mu      sync.RWMutex // guards entries
	entries []T
}

// NewLog constructs an empty Log.
func NewLog[T any]() *Log[T] {
	return &Log[T]{}
}

// Append adds v at the end of the log.
func (l *Log[T]) Append(v T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, v)
}

// Len returns the number of entries.
func (l *Log[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// All yields the entries in insertion order.
func (l *Log[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		l.mu.RLock()
		snapshot := l.entries[:len(l.entries):len(l.entries)]
		l.mu.RUnlock()
		for _, v := range snapshot {
			if !yield(v) {
				return
			}
		}
	}
}
