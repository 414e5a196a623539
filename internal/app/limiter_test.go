package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClientLimiter_PerClientBuckets(t *testing.T) {
	l := newClientLimiter(0.001, 2)

	assert.True(t, l.allow("10.0.0.1"))
	assert.True(t, l.allow("10.0.0.1"))
	assert.False(t, l.allow("10.0.0.1"))

	assert.True(t, l.allow("10.0.0.2"))
}

func TestClientLimiter_ExpiresIdleBuckets(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l := newClientLimiter(0.001, 1)
	l.now = func() time.Time { return now }

	assert.True(t, l.allow("10.0.0.1"))
	assert.False(t, l.allow("10.0.0.1"))

	now = now.Add(limiterIdleTTL / 2)
	assert.True(t, l.allow("10.0.0.2"))
	assert.Equal(t, 2, l.len())

	now = now.Add(limiterIdleTTL/2 + time.Second)
	assert.True(t, l.allow("10.0.0.3"))
	assert.Equal(t, 2, l.len(), "10.0.0.1 should have been swept")

	assert.True(t, l.allow("10.0.0.1"), "a swept client starts with a full bucket")
}

func TestClientLimiter_DisabledWhenZero(t *testing.T) {
	l := newClientLimiter(0, 0)

	for i := 0; i < 100; i++ {
		assert.True(t, l.allow("10.0.0.1"))
	}
}

func TestClientLimiter_Middleware(t *testing.T) {
	l := newClientLimiter(0.001, 1)
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	rejected := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTooManyRequests) })
	h := l.middleware(ok, rejected)

	req := httptest.NewRequest(http.MethodPost, "/quickfix", nil)
	req.RemoteAddr = "192.0.2.1:1234"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req.RemoteAddr = "192.0.2.1:5678"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestClientKey(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "[2001:db8::1]:443"
	assert.Equal(t, "2001:db8::1", clientKey(r))

	r.RemoteAddr = "unix"
	assert.Equal(t, "unix", clientKey(r))
}
