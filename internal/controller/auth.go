package controller

import (
	"context"
	"errors"

	"spese-client/internal/core"
	"spese-client/internal/log"
)

type AuthState struct {
	IsLoading       bool
	User            *core.Session
	Error           string
	IsAuthenticated bool
}

var authMessages = map[error]string{
	core.ErrInvalidEmail:     "Invalid email address",
	core.ErrPasswordTooShort: "Password must be at least 6 characters",
	core.ErrPasswordMismatch: "Passwords do not match",
}

// AuthController drives sign-in, sign-up and sign-out. Its authentication
// flags follow the session feed, whoever changes the session.
type AuthController struct {
	auth   AuthService
	state  *State[AuthState]
	scope  *Scope
	gen    Generation
	logger *log.Logger
}

func NewAuthController(parent context.Context, auth AuthService, feed SessionFeed, logger *log.Logger) *AuthController {
	if logger == nil {
		logger = log.Nop()
	}
	c := &AuthController{
		auth:   auth,
		state:  NewState(AuthState{}),
		scope:  NewScope(parent),
		logger: logger.WithComponent(log.ComponentController).With(log.FieldController, "auth"),
	}

	sessions, cancel := feed.Subscribe()
	// the first value is always there; apply it before anyone can read state
	c.applySession(<-sessions)
	c.scope.Background(func(ctx context.Context) {
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case s, ok := <-sessions:
				if !ok {
					return
				}
				c.applySession(s)
			}
		}
	})
	return c
}

func (c *AuthController) applySession(s *core.Session) {
	commit(c.scope, c.state, nil, 0, func(st AuthState) AuthState {
		st.User = s
		st.IsAuthenticated = s != nil
		return st
	})
}

// SignIn validates the credentials locally and, if they pass, signs in.
func (c *AuthController) SignIn(email, password string) {
	if err := core.ValidateCredentials(email, password); err != nil {
		c.setValidationError(err)
		return
	}
	c.run(log.OpSignIn, func(ctx context.Context) core.Result[core.Session] {
		return c.auth.SignIn(ctx, email, password)
	})
}

// SignUp validates the form locally, including the confirmation, and registers.
func (c *AuthController) SignUp(email, password, confirm string) {
	if err := core.ValidateSignUp(email, password, confirm); err != nil {
		c.setValidationError(err)
		return
	}
	c.run(log.OpSignUp, func(ctx context.Context) core.Result[core.Session] {
		return c.auth.SignUp(ctx, email, password)
	})
}

func (c *AuthController) run(op string, call func(ctx context.Context) core.Result[core.Session]) {
	n := c.gen.Next()
	commit(c.scope, c.state, nil, 0, func(st AuthState) AuthState {
		st.IsLoading = true
		st.Error = ""
		return st
	})

	c.scope.Go(func(ctx context.Context) {
		res := call(ctx)
		commit(c.scope, c.state, &c.gen, n, func(st AuthState) AuthState {
			st.IsLoading = false
			res.Match(
				func(s core.Session) {
					st.User = &s
					st.IsAuthenticated = true
					st.Error = ""
				},
				func(msg string, _ error) {
					st.Error = msg
				},
				nil,
			)
			return st
		})
		if res.IsError() {
			c.logger.DebugContext(ctx, "Authentication failed", log.FieldOperation, op, log.FieldError, res.Message())
		}
	})
}

// SignOut clears the session and resets the state.
func (c *AuthController) SignOut() {
	c.gen.Next()
	if err := c.auth.SignOut(c.scope.Context()); err != nil {
		commit(c.scope, c.state, nil, 0, func(st AuthState) AuthState {
			st.Error = err.Error()
			return st
		})
		return
	}
	commit(c.scope, c.state, nil, 0, func(AuthState) AuthState {
		return AuthState{}
	})
}

func (c *AuthController) setValidationError(err error) {
	msg, ok := authMessages[err]
	if !ok {
		for sentinel, m := range authMessages {
			if errors.Is(err, sentinel) {
				msg = m
				break
			}
		}
	}
	if msg == "" {
		msg = err.Error()
	}
	c.state.Update(func(st AuthState) AuthState {
		st.Error = msg
		return st
	})
}

// ClearError resets only the error message.
func (c *AuthController) ClearError() {
	c.state.Update(func(st AuthState) AuthState {
		st.Error = ""
		return st
	})
}

func (c *AuthController) State() AuthState { return c.state.Get() }

func (c *AuthController) Subscribe() (<-chan AuthState, func()) { return c.state.Subscribe() }

func (c *AuthController) Wait() { c.scope.Wait() }

func (c *AuthController) Close() { c.scope.Close() }
