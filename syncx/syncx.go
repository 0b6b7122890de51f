// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package syncx contains the synchronization primitives used by the
// concurrent file workers.
package syncx

import (
	"sync"

	"github.com/go4org/hashtriemap"
)

// Protect wraps val into [Protected].
func Protect[T any](val T) Protected[T] { return Protected[T]{val: val} }

// Protected serializes access to a value of type T, such as a writer shared
// by several workers. It must not be copied after first use.
type Protected[T any] struct {
	mu  sync.Mutex
	val T
}

// WriteAccess calls f with the value while holding the lock.
func (p *Protected[T]) WriteAccess(f func(T)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	f(p.val)
}

// LimitedWaitGroup waits for a collection of goroutines, of which at most a
// fixed number run at the same time.
type LimitedWaitGroup struct {
	wg    sync.WaitGroup
	slots chan struct{}
}

// NewLimitedWaitGroup returns a [LimitedWaitGroup] running up to limit
// goroutines at once. A limit below one is treated as one.
func NewLimitedWaitGroup(limit int) *LimitedWaitGroup {
	return &LimitedWaitGroup{slots: make(chan struct{}, max(limit, 1))}
}

// Go calls f in a new goroutine. It blocks until a slot is free.
func (lwg *LimitedWaitGroup) Go(f func()) {
	lwg.slots <- struct{}{}
	lwg.wg.Go(func() {
		defer func() { <-lwg.slots }()
		f()
	})
}

// Wait blocks until every goroutine started by Go has returned.
func (lwg *LimitedWaitGroup) Wait() { lwg.wg.Wait() }

// Map is a concurrent map backed by a hash-trie. The zero Map is empty and
// ready to use.
type Map[K comparable, V any] struct{ m hashtriemap.HashTrieMap[K, V] }

// Load returns the value stored under key, if any.
func (m *Map[K, V]) Load(key K) (value V, ok bool) { return m.m.Load(key) }

// Store sets the value for key.
func (m *Map[K, V]) Store(key K, value V) { m.m.Store(key, value) }
