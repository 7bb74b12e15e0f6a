package controller

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Scope owns the tasks a controller starts. Closing it cancels their
// context and waits for them, after which no task writes state.
type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc

	tasks errgroup.Group
	bg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func NewScope(parent context.Context) *Scope {
	ctx, cancel := context.WithCancel(parent)
	return &Scope{ctx: ctx, cancel: cancel}
}

// Go runs fn as a task. It reports false, and does nothing, once the scope is closed.
func (s *Scope) Go(fn func(ctx context.Context)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.tasks.Go(func() error {
		fn(s.ctx)
		return nil
	})
	return true
}

// Background runs fn until the scope closes. Wait does not wait for it.
func (s *Scope) Background(fn func(ctx context.Context)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.bg.Add(1)
	go func() {
		defer s.bg.Done()
		fn(s.ctx)
	}()
	return true
}

// Wait blocks until every task started with Go has returned.
func (s *Scope) Wait() {
	_ = s.tasks.Wait()
}

// Alive reports whether the scope is still open.
func (s *Scope) Alive() bool {
	return s.ctx.Err() == nil
}

func (s *Scope) Context() context.Context {
	return s.ctx
}

// Close cancels all tasks and waits for them. It is safe to call more than once.
func (s *Scope) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.Wait()
	s.bg.Wait()
}

// Generation numbers requests of one kind so that only the newest may
// write its response.
type Generation struct {
	n atomic.Uint64
}

// Next starts a new request and returns its number.
func (g *Generation) Next() uint64 {
	return g.n.Add(1)
}

// Is reports whether n is still the newest request.
func (g *Generation) Is(n uint64) bool {
	return g.n.Load() == n
}

// commit applies fn to st when the scope is open and, if gen is set, n is
// still current. It reports whether the write happened.
func commit[T any](sc *Scope, st *State[T], gen *Generation, n uint64, fn func(T) T) bool {
	_, ok := st.apply(func(cur T) (T, bool) {
		if !sc.Alive() || (gen != nil && !gen.Is(n)) {
			return cur, false
		}
		return fn(cur), true
	})
	return ok
}
