package server

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	const apiKey = "codex-api-key"
	handler := AuthMiddleware(apiKey, nil, NewAbuseMonitor())(okHandler())

	tests := []struct {
		name       string
		key        string
		path       string
		wantStatus int
	}{
		{"valid key", apiKey, "/items", http.StatusOK},
		{"wrong key", "not-the-key", "/items", http.StatusUnauthorized},
		{"missing key", "", "/recipes", http.StatusUnauthorized},
		{"healthz is public", "", "/healthz", http.StatusOK},
		{"metrics is public", "", "/metrics", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.key != "" {
				req.Header.Set(HeaderAPIKey, tt.key)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	monitor := NewAbuseMonitor()
	handler := RateLimitMiddleware(nil, monitor)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	req.RemoteAddr = "10.0.0.7:4455"

	for i := 0; i < requestLimitPerWin; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "request %d rejected early", i)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	t.Run("other clients unaffected", func(t *testing.T) {
		other := httptest.NewRequest(http.MethodGet, "/items", nil)
		other.RemoteAddr = "10.0.0.8:4455"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, other)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	handler := SecurityHeadersMiddleware()(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))
	assert.Equal(t, HeaderValueSameOrigin, rec.Header().Get(HeaderFrameOptions))
	assert.Equal(t, HeaderValueXSSBlock, rec.Header().Get(HeaderXSSProtection))
	assert.Equal(t, HeaderValueReferrerStrictOrigin, rec.Header().Get(HeaderReferrerPolicy))
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		trusted    []string
		want       string
	}{
		{"direct connection", "203.0.113.9:5000", "", nil, "203.0.113.9"},
		{"forwarded header ignored from untrusted peer", "203.0.113.9:5000", "198.51.100.1", nil, "203.0.113.9"},
		{"forwarded header honored from trusted proxy", "10.0.0.2:5000", "198.51.100.1", []string{"10.0.0.2"}, "198.51.100.1"},
		{"rightmost hop wins", "10.0.0.2:5000", "198.51.100.1, 198.51.100.2", []string{"10.0.0.2"}, "198.51.100.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/items", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set(HeaderForwardedFor, tt.forwarded)
			}
			assert.Equal(t, tt.want, clientIP(req, tt.trusted))
		})
	}
}

func TestLoggingMiddleware_RedactsCredentials(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	handler := loggingMiddleware(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	req.Header.Set(HeaderAPIKey, "codex-api-key")
	req.Header.Set(HeaderAuthorization, "Bearer topsecret")
	req.Header.Set("User-Agent", "codex-cli/1.0")

	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	require.Contains(t, out, LogMsgRequestHeaders)
	assert.NotContains(t, out, "codex-api-key")
	assert.NotContains(t, out, "topsecret")
	assert.Contains(t, out, "codex-cli/1.0")
}

func TestAbuseMonitor_WindowIsPerIP(t *testing.T) {
	monitor := NewAbuseMonitor()

	for i := 0; i < requestLimitPerWin; i++ {
		ip := fmt.Sprintf("172.16.0.%d", i%50)
		assert.True(t, monitor.Allow(ip))
	}
}
