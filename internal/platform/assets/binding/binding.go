// Package binding exposes one asset to one consumer as a tri-state
// asynchronous result.
package binding

import (
	"context"
	"strings"
	"sync"
)

// Result is the tri-state outcome a consumer observes for a bound asset:
// in flight, settled with data, or settled with an error.
type Result[T any] struct {
	Data    T
	Loading bool
	Err     error
}

// FetchFunc loads the value for a bound asset name.
type FetchFunc[T any] func(ctx context.Context, name string) (T, error)

// Binding ties an asset name to a Result for the lifetime of one consumer.
//
// Rebinding while a fetch is in flight is safe: every fetch carries a
// generation, and completions from stale generations are discarded, so the
// observed state always reflects the most recently requested name.
type Binding[T any] struct {
	fetch    FetchFunc[T]
	fallback T

	mu         sync.Mutex
	settled    *sync.Cond
	generation uint64
	inflight   int
	name       string
	result     Result[T]
}

// New creates a binding in the idle state, holding the fallback value.
func New[T any](fetch FetchFunc[T], fallback T) *Binding[T] {
	b := &Binding[T]{
		fetch:    fetch,
		fallback: fallback,
		result:   Result[T]{Data: fallback},
	}
	b.settled = sync.NewCond(&b.mu)
	return b
}

// Bind points the binding at name and starts a fetch.
//
// An empty name settles synchronously to the fallback with no fetch. Any
// fetch already in flight keeps running but its completion is discarded.
func (b *Binding[T]) Bind(ctx context.Context, name string) {
	b.mu.Lock()
	b.generation++
	generation := b.generation
	b.name = name

	if strings.TrimSpace(name) == "" {
		b.result = Result[T]{Data: b.fallback}
		b.mu.Unlock()
		b.settled.Broadcast()
		return
	}

	b.result.Loading = true
	b.result.Err = nil
	b.inflight++
	b.mu.Unlock()

	go b.run(ctx, generation, name)
}

// Refetch re-runs the fetch for the currently bound name. The cache behind
// the fetch function is still consulted, so a warm cache settles instantly.
func (b *Binding[T]) Refetch(ctx context.Context) {
	b.mu.Lock()
	name := b.name
	b.mu.Unlock()
	b.Bind(ctx, name)
}

// Snapshot returns the current tri-state result without blocking.
func (b *Binding[T]) Snapshot() Result[T] {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.result
}

// Wait blocks until no fetch is in flight, then returns the settled result.
func (b *Binding[T]) Wait() Result[T] {
	b.mu.Lock()
	defer b.mu.Unlock()
	for b.inflight > 0 {
		b.settled.Wait()
	}
	return b.result
}

func (b *Binding[T]) run(ctx context.Context, generation uint64, name string) {
	value, err := b.fetch(ctx, name)

	b.mu.Lock()
	b.inflight--
	if generation == b.generation {
		if err != nil {
			b.result = Result[T]{Data: b.fallback, Err: err}
		} else {
			b.result = Result[T]{Data: value}
		}
	}
	b.mu.Unlock()
	b.settled.Broadcast()
}
