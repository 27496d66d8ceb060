package session

import (
	"context"
	"net/http"
	"time"

	"github.com/gofrs/uuid"
	"github.com/gorilla/mux"
)

type sessionKey string

var sessionContextKey sessionKey = "session"

// NewID returns a fresh random session identifier.
func NewID() (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// FromContext returns the session ID attached by Middleware.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionContextKey).(string)
	return id, ok && id != ""
}

// NewContext returns a copy of ctx carrying the session ID.
func NewContext(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionContextKey, sessionID)
}

// Middleware attaches the session ID from the named cookie to the request
// context, issuing a new session when the cookie is missing or invalid.
// The cookie is refreshed on every request so it lives as long as the
// stored views.
func Middleware(cookieName string, ttl time.Duration) mux.MiddlewareFunc {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sessionID string
			if c, err := r.Cookie(cookieName); err == nil {
				if id, err := uuid.FromString(c.Value); err == nil {
					sessionID = id.String()
				}
			}
			if sessionID == "" {
				id, err := NewID()
				if err != nil {
					http.Error(w, "Error creating session", http.StatusInternalServerError)
					return
				}
				sessionID = id
			}

			cookie := &http.Cookie{
				Name:     cookieName,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				Secure:   r.TLS != nil,
				SameSite: http.SameSiteLaxMode,
			}
			if ttl > 0 {
				cookie.MaxAge = int(ttl / time.Second)
			}
			http.SetCookie(w, cookie)

			h.ServeHTTP(w, r.WithContext(NewContext(r.Context(), sessionID)))
		})
	}
}
