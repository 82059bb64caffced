package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	limiter := NewRateLimiter(3, time.Second)
	defer limiter.Close()

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("192.168.1.1"), "request %d should be allowed", i+1)
	}
	assert.False(t, limiter.Allow("192.168.1.1"), "4th request should be blocked")
	assert.True(t, limiter.Allow("192.168.1.2"), "different client should be allowed")
}

func TestRateLimiter_WindowExpiration(t *testing.T) {
	limiter := NewRateLimiter(2, 200*time.Millisecond)
	defer limiter.Close()

	limiter.Allow("192.168.1.1")
	limiter.Allow("192.168.1.1")
	assert.False(t, limiter.Allow("192.168.1.1"))

	time.Sleep(250 * time.Millisecond)

	assert.True(t, limiter.Allow("192.168.1.1"))
}

func TestRateLimiter_Cleanup(t *testing.T) {
	limiter := NewRateLimiter(5, 100*time.Millisecond)
	defer limiter.Close()

	limiter.Allow("192.168.1.1")
	limiter.Allow("192.168.1.2")
	limiter.Allow("192.168.1.3")

	limiter.mu.Lock()
	assert.Len(t, limiter.requests, 3)
	limiter.mu.Unlock()

	time.Sleep(150 * time.Millisecond)
	limiter.cleanup()

	limiter.mu.Lock()
	assert.Empty(t, limiter.requests)
	limiter.mu.Unlock()
}

func TestRateLimiter_ConcurrentAccess(t *testing.T) {
	limiter := NewRateLimiter(10, time.Second)
	defer limiter.Close()

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 3; j++ {
				limiter.Allow("192.168.1.1")
			}
		}()
	}
	wg.Wait()

	assert.False(t, limiter.Allow("192.168.1.1"), "15 requests should exceed a limit of 10")
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	defer limiter.Close()

	handler := RateLimitMiddleware(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	send := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/refresh", nil)
		req.RemoteAddr = remote
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusAccepted, send("10.0.0.1:5000").Code)

	// Same host on a different source port shares the budget.
	blocked := send("10.0.0.1:5001")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "60", blocked.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusAccepted, send("10.0.0.2:5000").Code)
}
