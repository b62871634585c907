// Package session holds the authenticated state of a dashboard user: the
// remote API token and the user it belongs to. Sessions live in a Store on
// the server and travel to the browser as a sealed cookie (see Codec), so a
// restarted BFA can restore them.
package session

import (
	"context"
	"time"

	"github.com/boddenberg/finance-dashboard-bfa-go/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Session is the explicit auth context of one logged-in user.
type Session struct {
	ID        string      `json:"id"`
	Token     string      `json:"token"`
	User      domain.User `json:"user"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// Expired reports whether the session is no longer usable at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Info returns the part of the session that is safe to show to the UI.
func (s *Session) Info() *domain.SessionInfo {
	return &domain.SessionInfo{User: s.User, ExpiresAt: s.ExpiresAt}
}

type ctxKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session stored in ctx, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}

// TokenFromContext returns the bearer token of the session in ctx, or "".
func TokenFromContext(ctx context.Context) string {
	if s, ok := FromContext(ctx); ok {
		return s.Token
	}
	return ""
}

// TokenExpiry reads the exp claim of a remote API token. The signature is not
// verified here; the remote API does that on every call. Tokens that are not
// JWTs or carry no exp expire after fallback.
func TokenExpiry(token string, now time.Time, fallback time.Duration) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			return exp.Time
		}
	}
	return now.Add(fallback)
}
