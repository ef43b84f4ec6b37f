package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyedRateLimiterAllowsBurstThenDenies(t *testing.T) {
	limiter := NewKeyedRateLimiter(2, time.Minute, 2, time.Minute)

	assert.True(t, limiter.Allow("user-1"))
	assert.True(t, limiter.Allow("user-1"))
	assert.False(t, limiter.Allow("user-1"))

	// a different key has its own budget
	assert.True(t, limiter.Allow("user-2"))
}

func TestKeyedRateLimiterEmptyKey(t *testing.T) {
	limiter := NewKeyedRateLimiter(1, time.Minute, 1, time.Minute)

	assert.True(t, limiter.Allow(""))
	assert.False(t, limiter.Allow(""))
}

type allowNone struct{}

func (allowNone) Allow(string) bool { return false }

type allowAll struct{}

func (allowAll) Allow(string) bool { return true }

func TestRateLimitMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/ai/smart-match", nil)
	req.Header.Set("X-User-ID", "user-1")

	rec := httptest.NewRecorder()
	RateLimit(allowAll{})(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	RateLimit(allowNone{})(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRateLimitKeysByHeaderThenRemoteAddr(t *testing.T) {
	limiter := NewKeyedRateLimiter(1, time.Minute, 1, time.Minute)
	handler := RateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	withHeader := httptest.NewRequest(http.MethodGet, "/", nil)
	withHeader.Header.Set("X-User-ID", "user-1")
	withHeader.RemoteAddr = "10.0.0.1:1234"

	withoutHeader := httptest.NewRequest(http.MethodGet, "/", nil)
	withoutHeader.RemoteAddr = "10.0.0.1:1234"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, withHeader)
	assert.Equal(t, http.StatusOK, rec.Code)

	// same address, different key: still allowed
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, withoutHeader)
	assert.Equal(t, http.StatusOK, rec.Code)

	// second hit on the header key is throttled
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, withHeader)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
