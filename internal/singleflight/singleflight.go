// Package singleflight shares in-flight clip fetches between requests.
package singleflight

import (
	"context"
	"sync"
)

// Group coalesces concurrent fetches for the same clip key K so that the
// supplied fn runs at most once at a time per key. Other callers arriving
// while it runs wait for the shared result.
//
// The loader relies on this when a clip is unloaded and loaded again while
// the first fetch is still running: the second request joins the running
// fetch instead of starting another one, and request tokens decide which
// caller may apply the result.
//
// Concurrency notes:
//   - The first caller for a key becomes the leader and runs fn.
//   - Followers wait on c.done. Publishing (val, err) happens-before
//     close(c.done), so reads after <-done observe the final values.
//   - Cancelling ctx in a follower unblocks only that follower; the leader's
//     fn keeps running. Thread ctx into fn to cancel the work itself.
type Group[K comparable, V any] struct {
	mu sync.Mutex
	m  map[K]*call[V]
}

type call[V any] struct {
	done    chan struct{} // closed when val/err are published
	val     V
	err     error
	waiters int // followers that joined this flight
}

// Do runs fn once for the given key. Concurrent calls with the same key wait
// for the shared result; shared reports whether the result was delivered to
// more than one caller. If ctx is cancelled in a follower, that follower
// returns ctx.Err() while the leader continues to run fn.
func (g *Group[K, V]) Do(ctx context.Context, key K, fn func() (V, error)) (v V, err error, shared bool) {
	g.mu.Lock()
	if g.m == nil {
		g.m = make(map[K]*call[V])
	}
	if c, ok := g.m[key]; ok {
		c.waiters++
		done := c.done
		g.mu.Unlock()

		select {
		case <-done:
			return c.val, c.err, true
		case <-ctx.Done():
			var zero V
			return zero, ctx.Err(), false
		}
	}

	// We are the leader for this key.
	c := &call[V]{done: make(chan struct{})}
	g.m[key] = c
	g.mu.Unlock()

	// Execute fn outside the lock.
	v, err = fn()

	// Remove the in-flight marker before waking followers so a caller that
	// observes the result and immediately asks again starts a fresh fetch.
	g.mu.Lock()
	delete(g.m, key)
	shared = c.waiters > 0
	g.mu.Unlock()

	c.val, c.err = v, err
	close(c.done)
	return v, err, shared
}

// InFlight reports whether a fetch for key is currently running.
func (g *Group[K, V]) InFlight(key K) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.m[key]
	return ok
}
