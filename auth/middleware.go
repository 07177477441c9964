package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/placemate/placemate/util"
)

type contextKey struct{}

var userKey = contextKey{}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(h, "Bearer "); ok {
		return token
	}
	return ""
}

// Handler rejects requests that do not carry a valid token.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			util.WriteError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		user, err := m.ParseToken(raw)
		if err != nil {
			util.WriteError(w, http.StatusUnauthorized, "invalid bearer token")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	})
}

// NonBlockingHandler decodes the caller's identity when a token is present
// but lets anonymous requests through. Read-only routes use it.
func (m *Middleware) NonBlockingHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if raw := bearerToken(r); raw != "" {
			if user, err := m.ParseToken(raw); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), userKey, user))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// GetUser returns the authenticated caller, or ErrInvalidToken if the
// request went through the non-blocking chain without one.
func GetUser(r *http.Request) (*User, error) {
	user, ok := r.Context().Value(userKey).(*User)
	if !ok {
		return nil, ErrInvalidToken
	}
	return user, nil
}

// MustGetUser returns the authenticated caller on a route guarded by
// Handler. It panics if the middleware did not run.
func MustGetUser(r *http.Request) *User {
	user, err := GetUser(r)
	if err != nil {
		panic("auth: no user in request context")
	}
	return user
}
