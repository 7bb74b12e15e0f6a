package gateway

import (
	"context"

	"spese-client/internal/api"
	"spese-client/internal/core"
	"spese-client/internal/log"
)

// AuthGateway signs users in and out and is the only writer of the session.
type AuthGateway struct {
	api      AuthAPI
	sessions SessionStore
	logger   *log.Logger
}

func NewAuthGateway(a AuthAPI, sessions SessionStore, logger *log.Logger) *AuthGateway {
	if logger == nil {
		logger = log.Nop()
	}
	return &AuthGateway{
		api:      a,
		sessions: sessions,
		logger:   logger.WithComponent(log.ComponentAuth),
	}
}

// SignIn logs in and stores the resulting session.
func (g *AuthGateway) SignIn(ctx context.Context, email, password string) core.Result[core.Session] {
	return g.authenticate(ctx, log.OpSignIn, "Sign in failed: ", g.api.Login, api.Credentials{Email: email, Password: password})
}

// SignUp registers and stores the resulting session.
func (g *AuthGateway) SignUp(ctx context.Context, email, password string) core.Result[core.Session] {
	return g.authenticate(ctx, log.OpSignUp, "Sign up failed: ", g.api.SignUp, api.Credentials{Email: email, Password: password})
}

type authCall func(context.Context, api.Credentials) (*api.Response[api.AuthResponse], error)

func (g *AuthGateway) authenticate(ctx context.Context, op, prefix string, call authCall, creds api.Credentials) core.Result[core.Session] {
	resp, err := call(ctx, creds)
	if err != nil {
		g.logger.WarnContext(ctx, "Authentication request failed", log.FieldOperation, op, log.FieldError, err)
		return core.Failure[core.Session](prefix+err.Error(), err)
	}

	if !resp.IsSuccessful() || resp.Body == nil {
		msg := msgUnknownError
		if !resp.IsSuccessful() {
			if detail, ok := resp.Detail(); ok {
				msg = detail
			} else if raw := resp.RawError(); raw != "" {
				msg = raw
			}
		}
		g.logger.WarnContext(ctx, "Authentication rejected",
			log.FieldOperation, op,
			log.FieldStatusCode, resp.StatusCode,
			log.FieldError, msg)
		return core.Failure[core.Session](prefix+msg, nil)
	}

	sess := resp.Body.Session()
	if !sess.IsComplete() {
		g.logger.WarnContext(ctx, "Authentication response missing fields",
			log.FieldOperation, op,
			log.FieldUserID, sess.UserID)
		return core.Failure[core.Session](prefix+msgIncompleteAuth, core.ErrIncompleteSession)
	}
	if err := g.sessions.Save(ctx, sess); err != nil {
		log.NewStructuredLogger(g.logger).LogError(ctx, "Failed to persist session", err,
			log.ComponentAuth, op, log.NewFields().WithUserID(sess.UserID))
		return core.Failure[core.Session](prefix+err.Error(), err)
	}

	g.logger.InfoContext(ctx, "Signed in", log.FieldOperation, op, log.FieldUserID, sess.UserID)
	return core.Success(sess)
}

// SignOut forgets the stored session.
func (g *AuthGateway) SignOut(ctx context.Context) error {
	if err := g.sessions.Clear(ctx); err != nil {
		g.logger.ErrorContext(ctx, "Failed to clear session", log.FieldOperation, log.OpSignOut, log.FieldError, err)
		return err
	}
	g.logger.InfoContext(ctx, "Signed out")
	return nil
}

func (g *AuthGateway) CurrentUser() *core.Session {
	return g.sessions.Current()
}

func (g *AuthGateway) CurrentUserID() string {
	return g.sessions.UserID()
}

func (g *AuthGateway) IsSignedIn() bool {
	return g.sessions.IsSignedIn()
}
