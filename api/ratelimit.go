package api

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

const (
	// Rolls are interactive but cheap to spam; one per second with a small
	// burst keeps a stuck client from draining its budget by accident.
	rollRateLimit = rate.Limit(1)
	rollRateBurst = 3
)

// userLimiter keeps one token bucket per user ID.
type userLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newUserLimiter(limit rate.Limit, burst int) *userLimiter {
	return &userLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		burst:    burst,
	}
}

func (u *userLimiter) allow(key string) bool {
	u.mu.Lock()
	l, ok := u.limiters[key]
	if !ok {
		l = rate.NewLimiter(u.limit, u.burst)
		u.limiters[key] = l
	}
	u.mu.Unlock()
	return l.Allow()
}

func (h *Handlers) rollRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.limiter.allow(chi.URLParam(r, "userID")) {
			respondJSON(w, http.StatusTooManyRequests, failureBody{
				Reason:  "RATE_LIMITED",
				Message: "too many rolls, slow down",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
