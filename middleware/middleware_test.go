package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
)

type stubValidator struct {
	userID string
	err    error
}

func (s stubValidator) Validate(token string) (string, error) {
	return s.userID, s.err
}

func record(mw func(httprouter.Handle) httprouter.Handle, header string) (*httptest.ResponseRecorder, string) {
	var seenUserID string
	handler := mw(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		seenUserID = UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest("GET", "/api/auth/me", nil)
	if header != "" {
		r.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	handler(w, r, nil)
	return w, seenUserID
}

func TestAuthenticateValidToken(t *testing.T) {
	a := NewAuth(stubValidator{userID: "user-42"})

	w, userID := record(a.Authenticate, "Bearer some-token")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if userID != "user-42" {
		t.Fatalf("user id in context = %q, want user-42", userID)
	}
}

func TestAuthenticateMissingToken(t *testing.T) {
	a := NewAuth(stubValidator{userID: "user-42"})

	w, _ := record(a.Authenticate, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthenticateBadFormat(t *testing.T) {
	a := NewAuth(stubValidator{userID: "user-42"})

	w, _ := record(a.Authenticate, "Token abc")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthenticateRejectedToken(t *testing.T) {
	a := NewAuth(stubValidator{err: errors.New("token expired")})

	w, _ := record(a.Authenticate, "Bearer stale")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestOptionalAuth(t *testing.T) {
	valid := NewAuth(stubValidator{userID: "user-42"})
	broken := NewAuth(stubValidator{err: errors.New("token invalid")})

	w, userID := record(valid.OptionalAuth, "Bearer some-token")
	if w.Code != http.StatusOK || userID != "user-42" {
		t.Fatalf("valid token: status %d, user %q", w.Code, userID)
	}

	w, userID = record(broken.OptionalAuth, "Bearer junk")
	if w.Code != http.StatusOK || userID != "" {
		t.Fatalf("bad token should pass through anonymously: status %d, user %q", w.Code, userID)
	}

	w, userID = record(valid.OptionalAuth, "")
	if w.Code != http.StatusOK || userID != "" {
		t.Fatalf("no token should pass through anonymously: status %d, user %q", w.Code, userID)
	}
}
