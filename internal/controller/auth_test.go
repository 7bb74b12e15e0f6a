package controller

import (
	"context"
	"testing"

	"spese-client/internal/api"
	"spese-client/internal/core"
	"spese-client/internal/gateway"
	"spese-client/internal/gateway/gatewaytest"
	"spese-client/internal/session"
	"spese-client/internal/storage/memory"
)

func newAuthController(t *testing.T, fake *gatewaytest.FakeAPI) (*AuthController, *session.Store) {
	t.Helper()
	sessions, err := session.Open(context.Background(), memory.New(), nil)
	if err != nil {
		t.Fatalf("session.Open: %v", err)
	}
	auth := gateway.NewAuthGateway(fake, sessions, nil)
	c := NewAuthController(context.Background(), auth, sessions, nil)
	t.Cleanup(c.Close)
	return c, sessions
}

func TestAuthController_SignInScenario(t *testing.T) {
	fake := &gatewaytest.FakeAPI{Auth: api.AuthResponse{UID: "u1", Email: "a@b.com", IDToken: "tok"}}
	c, sessions := newAuthController(t, fake)

	c.SignIn("a@b.com", "secret1")
	c.Wait()

	st := c.State()
	if !st.IsAuthenticated || st.IsLoading || st.Error != "" {
		t.Fatalf("unexpected state %+v", st)
	}
	want := core.Session{UserID: "u1", Email: "a@b.com", Token: "tok"}
	if st.User == nil || *st.User != want {
		t.Fatalf("User = %+v, want %+v", st.User, want)
	}
	stored, ok, err := sessions.Load(context.Background())
	if err != nil || !ok || stored != want {
		t.Fatalf("stored session = %+v ok=%v err=%v", stored, ok, err)
	}
}

func TestAuthController_ValidationSuppressesCall(t *testing.T) {
	tests := []struct {
		name    string
		signUp  bool
		email   string
		pass    string
		confirm string
		want    string
	}{
		{name: "blank email", email: " ", pass: "secret1", want: "Invalid email address"},
		{name: "malformed email", email: "not-an-email", pass: "secret1", want: "Invalid email address"},
		{name: "short password", email: "a@b.com", pass: "12345", want: "Password must be at least 6 characters"},
		{name: "mismatch", signUp: true, email: "a@b.com", pass: "secret1", confirm: "secret2", want: "Passwords do not match"},
		{name: "sign up short password first", signUp: true, email: "a@b.com", pass: "123", confirm: "456", want: "Password must be at least 6 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &gatewaytest.FakeAPI{}
			c, _ := newAuthController(t, fake)

			if tt.signUp {
				c.SignUp(tt.email, tt.pass, tt.confirm)
			} else {
				c.SignIn(tt.email, tt.pass)
			}
			c.Wait()

			if got := c.State().Error; got != tt.want {
				t.Errorf("Error = %q, want %q", got, tt.want)
			}
			if n := fake.TotalCalls(); n != 0 {
				t.Errorf("network called %d times despite validation failure", n)
			}
		})
	}
}

func TestAuthController_FailureKeepsSignedOut(t *testing.T) {
	fake := &gatewaytest.FakeAPI{Status: 401, ErrorBody: `{"detail":"Invalid credentials"}`}
	c, _ := newAuthController(t, fake)

	c.SignIn("a@b.com", "secret1")
	c.Wait()

	st := c.State()
	if st.IsAuthenticated || st.IsLoading {
		t.Fatalf("unexpected state %+v", st)
	}
	if st.Error != "Sign in failed: Invalid credentials" {
		t.Fatalf("Error = %q", st.Error)
	}

	c.ClearError()
	if c.State().Error != "" {
		t.Fatal("ClearError should reset the error")
	}
}

func TestAuthController_FollowsSessionStore(t *testing.T) {
	c, sessions := newAuthController(t, &gatewaytest.FakeAPI{})
	sub, cancel := c.Subscribe()
	defer cancel()

	if c.State().IsAuthenticated {
		t.Fatal("should start signed out")
	}

	// someone else signs in
	if err := sessions.Save(context.Background(), core.Session{UserID: "u9", Email: "z@z.io", Token: "t"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	st := waitFor(t, sub, func(s AuthState) bool { return s.IsAuthenticated })
	if st.User == nil || st.User.UserID != "u9" {
		t.Fatalf("User = %+v", st.User)
	}

	if err := sessions.Clear(context.Background()); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	waitFor(t, sub, func(s AuthState) bool { return !s.IsAuthenticated && s.User == nil })
}

func TestAuthController_StartsFromExistingSession(t *testing.T) {
	sessions, err := session.Open(context.Background(), memory.New(), nil)
	if err != nil {
		t.Fatalf("session.Open: %v", err)
	}
	if err := sessions.Save(context.Background(), core.Session{UserID: "u1", Email: "a@b.com", Token: "tok"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	c := NewAuthController(context.Background(), gateway.NewAuthGateway(&gatewaytest.FakeAPI{}, sessions, nil), sessions, nil)
	defer c.Close()

	if !c.State().IsAuthenticated {
		t.Fatal("controller should reflect the stored session immediately")
	}
}

func TestAuthController_SignOut(t *testing.T) {
	fake := &gatewaytest.FakeAPI{Auth: api.AuthResponse{UID: "u1", Email: "a@b.com", IDToken: "tok"}}
	c, sessions := newAuthController(t, fake)

	c.SignIn("a@b.com", "secret1")
	c.Wait()
	c.SignOut()

	st := c.State()
	if st.IsAuthenticated || st.User != nil || st.Error != "" {
		t.Fatalf("unexpected state after sign out %+v", st)
	}
	if sessions.IsSignedIn() {
		t.Fatal("session store should be cleared")
	}
}
