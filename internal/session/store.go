// Package session keeps the signed-in identity and tells interested parties
// when it changes.
package session

import (
	"context"
	"fmt"
	"sync"

	"spese-client/internal/core"
	"spese-client/internal/log"
	"spese-client/internal/storage"
)

const (
	Namespace = "auth_prefs"

	keyUserID = "uid"
	keyEmail  = "email"
	keyToken  = "id_token"
)

// Store is the single owner of the persisted session. Reads are served from
// the last published value; writes go to storage first and publish after.
type Store struct {
	storage storage.Store
	logger  *log.Logger

	// writeMu orders save/clear so publications follow write order.
	writeMu sync.Mutex

	mu      sync.RWMutex
	current *core.Session
	subs    map[int]chan *core.Session
	nextID  int
}

// Open builds a Store over st and primes it from what is already persisted.
func Open(ctx context.Context, st storage.Store, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.Nop()
	}
	s := &Store{
		storage: st,
		logger:  logger.WithComponent(log.ComponentSession),
		subs:    make(map[int]chan *core.Session),
	}

	sess, ok, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		s.current = &sess
		s.logger.Debug("Restored session", log.FieldOperation, log.OpLoad, log.FieldUserID, sess.UserID)
	}
	return s, nil
}

// Load reads the persisted session. ok is false when any of the three
// fields is missing.
func (s *Store) Load(ctx context.Context) (core.Session, bool, error) {
	values, err := s.storage.Get(ctx, Namespace)
	if err != nil {
		return core.Session{}, false, fmt.Errorf("load session: %w", err)
	}

	sess := core.Session{
		UserID: values[keyUserID],
		Email:  values[keyEmail],
		Token:  values[keyToken],
	}
	if !sess.IsComplete() {
		return core.Session{}, false, nil
	}
	return sess, true, nil
}

// Save persists sess as one group write and then publishes it. A session
// missing any field is rejected, since Load would not return it.
func (s *Store) Save(ctx context.Context, sess core.Session) error {
	if !sess.IsComplete() {
		return fmt.Errorf("save session: %w", core.ErrIncompleteSession)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	err := s.storage.PutAll(ctx, Namespace, map[string]string{
		keyUserID: sess.UserID,
		keyEmail:  sess.Email,
		keyToken:  sess.Token,
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.publish(&sess)
	s.logger.DebugContext(ctx, "Saved session", log.FieldOperation, log.OpSave, log.FieldUserID, sess.UserID)
	return nil
}

// Clear removes the persisted session and publishes its absence.
func (s *Store) Clear(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.storage.DeleteAll(ctx, Namespace); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.publish(nil)
	s.logger.DebugContext(ctx, "Cleared session", log.FieldOperation, log.OpClear)
	return nil
}

// Current returns the published session, or nil when signed out.
func (s *Store) Current() *core.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySession(s.current)
}

// UserID returns the signed-in user's id, empty when signed out.
func (s *Store) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.UserID
}

// Token returns the bearer token of the session, empty when signed out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

func (s *Store) IsSignedIn() bool {
	return s.UserID() != ""
}

// Subscribe returns a channel that first carries the current value and then
// every later one. A slow reader only sees the most recent value. The
// returned func unsubscribes and closes the channel.
func (s *Store) Subscribe() (<-chan *core.Session, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan *core.Session, 1)
	ch <- copySession(s.current)

	id := s.nextID
	s.nextID++
	s.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

func (s *Store) publish(sess *core.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = copySession(sess)
	for _, ch := range s.subs {
		offerLatest(ch, copySession(sess))
	}
}

// offerLatest replaces any pending value in ch with v. Callers hold s.mu,
// so no other sender races on ch.
func offerLatest(ch chan *core.Session, v *core.Session) {
	select {
	case <-ch:
	default:
	}
	ch <- v
}

func copySession(s *core.Session) *core.Session {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
