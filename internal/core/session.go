package core

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the authenticated identity held by the client.
type Session struct {
	UserID string
	Email  string
	Token  string
}

// IsComplete reports whether every field needed to act as the user is present.
func (s Session) IsComplete() bool {
	return s.UserID != "" && s.Email != "" && s.Token != ""
}

// ExpiresAt returns the expiry encoded in the token, when the token is a JWT
// carrying an exp claim. The signature is not checked; the server does that.
func (s Session) ExpiresAt() (time.Time, bool) {
	if s.Token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
