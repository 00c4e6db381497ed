package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type fakeStore struct {
	data map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string]string)}
}

func (f *fakeStore) Get(_ context.Context, key string) (string, error) {
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return "", redis.Nil
}

func (f *fakeStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := f.data[key]; ok {
		return false, nil
	}
	str, _ := value.(string)
	f.data[key] = str
	return true, nil
}

func (f *fakeStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func (f *fakeStore) IdempotencyKey(scope, id string) string {
	return fmt.Sprintf("fake:%s:%s", scope, id)
}

func sessionRequest(method, url string, sessionID uuid.UUID, body string) *http.Request {
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	return req.WithContext(WithSessionID(req.Context(), sessionID))
}

func TestRouteTTLSelection(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		want   time.Duration
		ok     bool
	}{
		{"checkout", http.MethodPost, "/api/v1/checkout", criticalIdempotencyTTL, true},
		{"pickup submit", http.MethodPost, "/api/v1/pickups", defaultIdempotencyTTL, true},
		{"reward redeem", http.MethodPost, "/api/v1/rewards/redeem", defaultIdempotencyTTL, true},
		{"wizard step", http.MethodPost, "/api/v1/pickups/draft/details", 0, false},
		{"chat", http.MethodPost, "/api/v1/chat/messages", 0, false},
		{"get checkout", http.MethodGet, "/api/v1/checkout", 0, false},
	}

	for _, tt := range tests {
		ttl, ok := routeTTL(tt.method, tt.path)
		if ok != tt.ok {
			t.Fatalf("%s: expected ok=%v got %v", tt.name, tt.ok, ok)
		}
		if ok && ttl != tt.want {
			t.Fatalf("%s: expected ttl=%v got %v", tt.name, tt.want, ttl)
		}
	}
}

func TestIdempotencyMiddlewareRequiresHeader(t *testing.T) {
	store := newFakeStore()
	mw := Idempotency(store, nil)
	handlerCalled := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusCreated)
	})

	req := sessionRequest(http.MethodPost, "/api/v1/checkout", uuid.New(), `{"foo":"bar"}`)
	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if handlerCalled {
		t.Fatalf("handler should not run without idempotency key")
	}
}

func TestIdempotencyMiddlewareReplaysStoredResponse(t *testing.T) {
	store := newFakeStore()
	mw := Idempotency(store, nil)
	sessionID := uuid.New()
	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"data":{"call":%d}}`, calls)
	})

	send := func() *httptest.ResponseRecorder {
		req := sessionRequest(http.MethodPost, "/api/v1/pickups", sessionID, `{"contact":{"name":"Priya"}}`)
		req.Header.Set("Idempotency-Key", "abc-123")
		resp := httptest.NewRecorder()
		mw(handler).ServeHTTP(resp, req)
		return resp
	}

	first := send()
	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", first.Code)
	}

	second := send()
	if second.Code != http.StatusCreated {
		t.Fatalf("expected replayed 201 got %d", second.Code)
	}
	if calls != 1 {
		t.Fatalf("expected one handler call, got %d", calls)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("replayed body mismatch: %q vs %q", first.Body.String(), second.Body.String())
	}
}

func TestIdempotencyMiddlewareRejectsReusedKeyWithDifferentBody(t *testing.T) {
	store := newFakeStore()
	mw := Idempotency(store, nil)
	sessionID := uuid.New()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	first := sessionRequest(http.MethodPost, "/api/v1/rewards/redeem", sessionID, `{"reward_name":"Tote","cost":100}`)
	first.Header.Set("Idempotency-Key", "key-1")
	mw(handler).ServeHTTP(httptest.NewRecorder(), first)

	second := sessionRequest(http.MethodPost, "/api/v1/rewards/redeem", sessionID, `{"reward_name":"Mug","cost":250}`)
	second.Header.Set("Idempotency-Key", "key-1")
	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, second)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Error.Code != "IDEMPOTENCY_KEY_REUSED" {
		t.Fatalf("unexpected error code %q", envelope.Error.Code)
	}
}

func TestIdempotencyMiddlewareScopesBySession(t *testing.T) {
	store := newFakeStore()
	mw := Idempotency(store, nil)
	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	})

	for i := 0; i < 2; i++ {
		req := sessionRequest(http.MethodPost, "/api/v1/checkout", uuid.New(), `{"payment_method":"cod"}`)
		req.Header.Set("Idempotency-Key", "shared-key")
		mw(handler).ServeHTTP(httptest.NewRecorder(), req)
	}

	if calls != 2 {
		t.Fatalf("expected separate sessions to run separately, got %d calls", calls)
	}
}
