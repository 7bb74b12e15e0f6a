package controller

import "sync"

// State holds one observable value. Subscribers get the current value on
// subscription and the latest value after each change; a reader that falls
// behind skips intermediate values.
type State[T any] struct {
	mu     sync.RWMutex
	value  T
	subs   map[int]chan T
	nextID int
}

func NewState[T any](initial T) *State[T] {
	return &State[T]{value: initial, subs: make(map[int]chan T)}
}

// Get returns the current value.
func (s *State[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Update replaces the value with fn(current) and publishes it.
func (s *State[T]) Update(fn func(T) T) T {
	v, _ := s.apply(func(cur T) (T, bool) { return fn(cur), true })
	return v
}

// apply publishes only when fn reports a change.
func (s *State[T]) apply(fn func(T) (T, bool)) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := fn(s.value)
	if !changed {
		return s.value, false
	}
	s.value = next
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- next
	}
	return next, true
}

// Subscribe returns a channel of values and a func that stops delivery and
// closes the channel.
func (s *State[T]) Subscribe() (<-chan T, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan T, 1)
	ch <- s.value
	id := s.nextID
	s.nextID++
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}
