package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestSessionMintsIdentityWhenHeaderMissing(t *testing.T) {
	var seen uuid.UUID
	handler := Session(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionIDFromContext(r.Context())
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	if seen == uuid.Nil {
		t.Fatal("expected a minted session id in context")
	}
	echoed := resp.Header().Get(SessionHeader)
	if echoed != seen.String() {
		t.Fatalf("response header %q does not match context id %q", echoed, seen)
	}
}

func TestSessionKeepsSuppliedIdentity(t *testing.T) {
	supplied := uuid.New()
	var seen uuid.UUID
	handler := Session(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set(SessionHeader, supplied.String())
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seen != supplied {
		t.Fatalf("expected supplied session %s, got %s", supplied, seen)
	}
}

func TestSessionReplacesMalformedHeader(t *testing.T) {
	var seen uuid.UUID
	handler := Session(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set(SessionHeader, "not-a-uuid")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seen == uuid.Nil {
		t.Fatal("expected a replacement session id")
	}
}
