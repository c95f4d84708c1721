package identity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/club-backoffice/internal/platform/resilience"
	"github.com/riskibarqy/club-backoffice/internal/usecase"
)

func TestClientVerifyAccessToken_SendsBearerAndParsesUser(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/auth/v1/user" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token-abc" {
			t.Errorf("unexpected authorization: %s", got)
		}
		if got := r.Header.Get("apikey"); got != "anon-key" {
			t.Errorf("unexpected apikey: %s", got)
		}

		body, _ := sonic.Marshal(map[string]any{"id": "user-123", "email": "admin@example.com"})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		BaseURL:  srv.URL,
		UserPath: "/auth/v1/user",
		APIKey:   "anon-key",
		CacheTTL: time.Minute,
	})

	for range 2 {
		principal, err := client.VerifyAccessToken(context.Background(), "token-abc")
		if err != nil {
			t.Fatalf("verify token failed: %v", err)
		}
		if principal.UserID != "user-123" || principal.Email != "admin@example.com" {
			t.Fatalf("unexpected principal: %+v", principal)
		}
	}
	if calls.Load() != 1 {
		t.Fatalf("expected second call to be served from cache, got %d calls", calls.Load())
	}
}

func TestClientVerifyAccessToken_RejectedToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		BaseURL:        srv.URL,
		UserPath:       "/auth/v1/user",
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Minute, HalfOpenMaxReq: 1},
	})

	for range 2 {
		_, err := client.VerifyAccessToken(context.Background(), "bad-token")
		if !errors.Is(err, usecase.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	}
}

func TestClientVerifyAccessToken_EmptyToken(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{BaseURL: "http://127.0.0.1:1"})
	if _, err := client.VerifyAccessToken(context.Background(), "  "); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClientVerifyAccessToken_CircuitOpensOnServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		BaseURL:        srv.URL,
		UserPath:       "/auth/v1/user",
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 2, OpenTimeout: time.Minute, HalfOpenMaxReq: 1},
	})

	for range 3 {
		_, err := client.VerifyAccessToken(context.Background(), "token")
		if !errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
		}
	}
	if calls.Load() != 2 {
		t.Fatalf("expected breaker to stop the third call, got %d calls", calls.Load())
	}
}

func TestClientVerifyAccessToken_ServerErrorIsDependencyUnavailable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL, UserPath: "/auth/v1/user"})
	_, err := client.VerifyAccessToken(context.Background(), "token")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	if strings.Contains(err.Error(), srv.URL) {
		t.Fatalf("provider url leaked into error: %v", err)
	}
}

func TestClientVerifyAccessToken_NetworkFailureIsDependencyUnavailable(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second})
	_, err := client.VerifyAccessToken(context.Background(), "token")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestBuildURL(t *testing.T) {
	t.Parallel()

	cases := map[[2]string]string{
		{"http://id.local/", "auth/v1/user"}:             "http://id.local/auth/v1/user",
		{"http://id.local", ""}:                          "http://id.local",
		{"http://id.local", "https://other.local/user"}: "https://other.local/user",
	}
	for in, want := range cases {
		if got := buildURL(in[0], in[1]); got != want {
			t.Fatalf("buildURL(%q, %q) = %q, want %q", in[0], in[1], got, want)
		}
	}
}
