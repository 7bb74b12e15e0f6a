package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"spese-client/internal/core"
	"spese-client/internal/storage"
	"spese-client/internal/storage/memory"
)

var alice = core.Session{UserID: "u1", Email: "alice@example.com", Token: "tok-1"}

func openMemory(t *testing.T) (*Store, *memory.Store) {
	t.Helper()
	st := memory.New()
	s, err := Open(context.Background(), st, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s, st
}

func receive(t *testing.T, ch <-chan *core.Session) *core.Session {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for session value")
		return nil
	}
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	backends := map[string]func(t *testing.T) storage.Store{
		"memory": func(t *testing.T) storage.Store { return memory.New() },
		"sqlite": func(t *testing.T) storage.Store {
			st, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "s.db"), nil)
			if err != nil {
				t.Fatalf("NewSQLiteStore: %v", err)
			}
			t.Cleanup(func() { st.Close() })
			return st
		},
	}

	for name, mk := range backends {
		t.Run(name, func(t *testing.T) {
			st := mk(t)
			s, err := Open(ctx, st, nil)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			if s.IsSignedIn() || s.Current() != nil {
				t.Fatal("fresh store should be signed out")
			}

			if err := s.Save(ctx, alice); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, ok, err := s.Load(ctx)
			if err != nil || !ok {
				t.Fatalf("Load = %v, %v, %v", got, ok, err)
			}
			if got != alice {
				t.Fatalf("Load = %+v, want %+v", got, alice)
			}
			if s.UserID() != "u1" || s.Token() != "tok-1" || !s.IsSignedIn() {
				t.Fatalf("published state mismatch: %+v", s.Current())
			}

			// a second store over the same storage sees the session
			reopened, err := Open(ctx, st, nil)
			if err != nil {
				t.Fatalf("reopen: %v", err)
			}
			if cur := reopened.Current(); cur == nil || *cur != alice {
				t.Fatalf("reopened Current = %+v", cur)
			}

			if err := s.Clear(ctx); err != nil {
				t.Fatalf("Clear: %v", err)
			}
			if _, ok, _ := s.Load(ctx); ok {
				t.Fatal("Load after Clear should report absent")
			}
			if s.IsSignedIn() {
				t.Fatal("store should be signed out after Clear")
			}
		})
	}
}

func TestStore_LoadPartialIsAbsent(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	if err := st.PutAll(ctx, Namespace, map[string]string{"uid": "u1", "email": "a@b.co"}); err != nil {
		t.Fatalf("PutAll: %v", err)
	}

	s, err := Open(ctx, st, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, ok, err := s.Load(ctx); ok || err != nil {
		t.Fatalf("Load with missing token = ok %v err %v, want absent", ok, err)
	}
	if s.IsSignedIn() {
		t.Fatal("partial session must not count as signed in")
	}
}

func TestStore_SaveFailureDoesNotPublish(t *testing.T) {
	ctx := context.Background()
	s, st := openMemory(t)
	boom := errors.New("disk full")
	st.FailWith(boom)

	if err := s.Save(ctx, alice); !errors.Is(err, boom) {
		t.Fatalf("Save = %v, want %v", err, boom)
	}
	if s.IsSignedIn() {
		t.Fatal("failed save must not publish a session")
	}
}

func TestStore_OpenPropagatesStorageError(t *testing.T) {
	st := memory.New()
	st.FailWith(errors.New("locked"))
	if _, err := Open(context.Background(), st, nil); err == nil {
		t.Fatal("expected Open to fail")
	}
}

func TestStore_Subscribe(t *testing.T) {
	ctx := context.Background()
	s, _ := openMemory(t)

	ch, cancel := s.Subscribe()
	defer cancel()

	if v := receive(t, ch); v != nil {
		t.Fatalf("initial value = %+v, want nil", v)
	}

	if err := s.Save(ctx, alice); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if v := receive(t, ch); v == nil || v.UserID != "u1" {
		t.Fatalf("after Save = %+v", v)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if v := receive(t, ch); v != nil {
		t.Fatalf("after Clear = %+v, want nil", v)
	}
}

func TestStore_SubscribeKeepsLatest(t *testing.T) {
	ctx := context.Background()
	s, _ := openMemory(t)

	ch, cancel := s.Subscribe()
	defer cancel()

	// nobody reads while three writes happen
	bob := core.Session{UserID: "u2", Email: "bob@example.com", Token: "tok-2"}
	_ = s.Save(ctx, alice)
	_ = s.Clear(ctx)
	_ = s.Save(ctx, bob)

	if v := receive(t, ch); v == nil || v.UserID != "u2" {
		t.Fatalf("slow subscriber got %+v, want latest (u2)", v)
	}
	select {
	case v := <-ch:
		t.Fatalf("unexpected extra value %+v", v)
	default:
	}
}

func TestStore_SubscribeCancel(t *testing.T) {
	s, _ := openMemory(t)
	ch, cancel := s.Subscribe()
	receive(t, ch)

	cancel()
	cancel()

	if _, open := <-ch; open {
		t.Fatal("channel should be closed after cancel")
	}
	if err := s.Save(context.Background(), alice); err != nil {
		t.Fatalf("Save after cancel: %v", err)
	}
}

func TestStore_CurrentIsACopy(t *testing.T) {
	s, _ := openMemory(t)
	if err := s.Save(context.Background(), alice); err != nil {
		t.Fatalf("Save: %v", err)
	}
	cur := s.Current()
	cur.UserID = "mallory"
	if s.UserID() != "u1" {
		t.Fatal("Current must not expose internal state")
	}
}

func TestStore_SaveRejectsIncomplete(t *testing.T) {
	ctx := context.Background()
	s, st := openMemory(t)

	tests := []struct {
		name string
		sess core.Session
	}{
		{name: "no token", sess: core.Session{UserID: "u1", Email: "a@b.co"}},
		{name: "no email", sess: core.Session{UserID: "u1", Token: "tok"}},
		{name: "no user", sess: core.Session{Email: "a@b.co", Token: "tok"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Save(ctx, tt.sess); !errors.Is(err, core.ErrIncompleteSession) {
				t.Fatalf("Save = %v, want ErrIncompleteSession", err)
			}
			if s.IsSignedIn() {
				t.Fatal("incomplete session must not be published")
			}
			if n := st.Len(Namespace); n != 0 {
				t.Fatalf("incomplete session wrote %d keys", n)
			}
		})
	}
}
