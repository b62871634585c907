package handler

import (
	"net/http"
	"time"

	"github.com/boddenberg/finance-dashboard-bfa-go/internal/service"
	"github.com/boddenberg/finance-dashboard-bfa-go/internal/session"

	"go.uber.org/zap"
)

// SessionCookie describes the cookie that carries the sealed session.
type SessionCookie struct {
	Name   string
	Secure bool
	Codec  *session.Codec
}

// set writes the sealed session into the response.
func (c SessionCookie) set(w http.ResponseWriter, sess *session.Session) error {
	value, err := c.Codec.Seal(sess)
	if err != nil {
		return err
	}
	cookie := &http.Cookie{
		Name:     c.Name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if !sess.ExpiresAt.IsZero() {
		cookie.Expires = sess.ExpiresAt
		cookie.MaxAge = int(time.Until(sess.ExpiresAt).Seconds())
	}
	http.SetCookie(w, cookie)
	return nil
}

// clear tells the browser to drop the cookie.
func (c SessionCookie) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}

// SessionMiddleware restores the session from the cookie and puts it in the
// request context. Requests without a usable session get 401.
func SessionMiddleware(authSvc *service.AuthService, cookie SessionCookie, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(cookie.Name)
			if err != nil || c.Value == "" {
				logger.Debug("auth: missing session cookie", zap.String("path", r.URL.Path))
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			decoded, err := cookie.Codec.Open(c.Value)
			if err != nil {
				logger.Warn("auth: invalid session cookie",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				cookie.clear(w)
				writeError(w, http.StatusUnauthorized, "invalid session")
				return
			}

			sess, ok := authSvc.Restore(decoded)
			if !ok {
				logger.Debug("auth: session expired or closed", zap.String("user_id", decoded.User.ID))
				cookie.clear(w)
				writeError(w, http.StatusUnauthorized, "session expired")
				return
			}

			next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), sess)))
		})
	}
}
