package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"enrichment-app-api/infrastructure/ratelimit/memory"
	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func post(handler http.Handler, path, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitMiddleware_AllowsRequestsUnderLimit(t *testing.T) {
	handler := RateLimitMiddleware(memory.NewStore(5, time.Minute), nil)(okHandler())

	for i := 0; i < 5; i++ {
		rec := post(handler, "/api/enrich", "127.0.0.1:1234")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "OK", rec.Body.String())
		assert.Equal(t, "5", rec.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRateLimitMiddleware_Returns429ForExceededLimit(t *testing.T) {
	handler := RateLimitMiddleware(memory.NewStore(2, time.Minute), nil)(okHandler())

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, post(handler, "/api/enrich", "127.0.0.1:1234").Code)
	}

	rec := post(handler, "/api/enrich", "127.0.0.1:1234")

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":"Rate limit exceeded`)
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}

func TestRateLimitMiddleware_UsesIPAddressForLimiting(t *testing.T) {
	handler := RateLimitMiddleware(memory.NewStore(1, time.Minute), nil)(okHandler())

	assert.Equal(t, http.StatusOK, post(handler, "/api/enrich", "127.0.0.1:1234").Code)
	// Same host on another port shares the bucket
	assert.Equal(t, http.StatusTooManyRequests, post(handler, "/api/enrich", "127.0.0.1:5678").Code)
	assert.Equal(t, http.StatusOK, post(handler, "/api/enrich", "192.168.1.1:5678").Code)
}

func TestRateLimitMiddleware_ExemptPaths(t *testing.T) {
	handler := RateLimitMiddleware(memory.NewStore(1, time.Minute), nil, "/healthz")(okHandler())

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, post(handler, "/healthz", "127.0.0.1:1234").Code)
	}
	assert.Equal(t, http.StatusOK, post(handler, "/api/enrich", "127.0.0.1:1234").Code)
}

func TestRateLimitMiddleware_FailsOpenOnStoreError(t *testing.T) {
	logger := &MockLogger{}
	handler := RateLimitMiddleware(failingStore{}, logger)(okHandler())

	rec := post(handler, "/api/enrich", "127.0.0.1:1234")

	assert.Equal(t, http.StatusOK, rec.Code)
	if assert.Len(t, logger.logs, 1) {
		assert.Equal(t, "WARN", logger.logs[0].Level)
		assert.Contains(t, logger.logs[0].Fields["error"], "connection refused")
	}
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name       string
		setupReq   func(*http.Request)
		expectedIP string
	}{
		{
			name: "uses X-Forwarded-For header",
			setupReq: func(r *http.Request) {
				r.Header.Set("X-Forwarded-For", "203.0.113.1, 198.51.100.2")
				r.RemoteAddr = "10.0.0.1:1234"
			},
			expectedIP: "198.51.100.2",
		},
		{
			name: "uses X-Real-IP header",
			setupReq: func(r *http.Request) {
				r.Header.Set("X-Real-IP", "203.0.113.1")
				r.RemoteAddr = "10.0.0.1:1234"
			},
			expectedIP: "203.0.113.1",
		},
		{
			name: "falls back to RemoteAddr host",
			setupReq: func(r *http.Request) {
				r.RemoteAddr = "192.168.1.1:1234"
			},
			expectedIP: "192.168.1.1",
		},
		{
			name: "keeps RemoteAddr without port",
			setupReq: func(r *http.Request) {
				r.RemoteAddr = "192.168.1.1"
			},
			expectedIP: "192.168.1.1",
		},
		{
			name: "prefers X-Forwarded-For over X-Real-IP",
			setupReq: func(r *http.Request) {
				r.Header.Set("X-Forwarded-For", "203.0.113.1")
				r.Header.Set("X-Real-IP", "198.51.100.1")
				r.RemoteAddr = "10.0.0.1:1234"
			},
			expectedIP: "203.0.113.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", nil)
			tt.setupReq(req)

			assert.Equal(t, tt.expectedIP, extractIP(req))
		})
	}
}
