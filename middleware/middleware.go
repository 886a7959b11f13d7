package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
)

// TokenValidator checks a bearer token and returns the user id it was
// issued for.
type TokenValidator interface {
	Validate(token string) (string, error)
}

type contextKey string

const userIDKey contextKey = "userId"

// UserID returns the authenticated user id stored by Authenticate, or
// "" when the request carried no valid token.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

type Auth struct {
	Tokens TokenValidator
}

func NewAuth(tokens TokenValidator) *Auth {
	return &Auth{Tokens: tokens}
}

func (a *Auth) Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		header := r.Header.Get("Authorization")
		if header == "" {
			http.Error(w, "Missing token", http.StatusUnauthorized)
			return
		}

		if !strings.HasPrefix(header, "Bearer ") {
			http.Error(w, "Invalid token format", http.StatusUnauthorized)
			return
		}

		userID, err := a.Tokens.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		// Store the subject in context for the handlers downstream.
		next(w, r.WithContext(WithUserID(r.Context(), userID)), ps)
	}
}

// OptionalAuth resolves the user when a valid token is present but
// lets the request through either way.
func (a *Auth) OptionalAuth(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		header := r.Header.Get("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			if userID, err := a.Tokens.Validate(strings.TrimPrefix(header, "Bearer ")); err == nil {
				r = r.WithContext(WithUserID(r.Context(), userID))
			}
		}
		next(w, r, ps)
	}
}
