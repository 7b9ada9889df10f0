package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"

	"github.com/printlab/quote-api/internal/models"
	apperrors "github.com/printlab/quote-api/pkg/errors"
)

// SubmissionWindow enforces the form submission ceiling: at most max attempts
// per client address inside a sliding window. Requests over the ceiling are
// rejected before validation with a distinct retry-later response and never
// reach the store. Per-address attempt lists expire with the window, so idle
// addresses are evicted automatically.
type SubmissionWindow struct {
	attempts *gocache.Cache
	mu       sync.Mutex
	max      int
	window   time.Duration
}

// NewSubmissionWindow creates a sliding-window submission limiter.
func NewSubmissionWindow(max int, window time.Duration) *SubmissionWindow {
	return &SubmissionWindow{
		attempts: gocache.New(window, 2*window),
		max:      max,
		window:   window,
	}
}

// Middleware returns a Gin middleware enforcing the submission ceiling.
func (w *SubmissionWindow) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !w.Allow(c.ClientIP(), time.Now()) {
			// Attach the sentinel so the observability middleware logs the reason
			_ = c.Error(apperrors.ErrRateLimited) //nolint:errcheck
			c.JSON(http.StatusTooManyRequests, models.SubmitQuoteResponse{
				Success: false,
				Message: "Too many requests. Please try again later.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// Allow records an attempt for the address and reports whether it is within
// the ceiling. Attempts older than the window no longer count.
func (w *SubmissionWindow) Allow(addr string, now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	var times []time.Time
	if v, ok := w.attempts.Get(addr); ok {
		times = v.([]time.Time)
	}

	cutoff := now.Add(-w.window)
	recent := times[:0]
	for _, t := range times {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= w.max {
		w.attempts.Set(addr, recent, w.window)
		return false
	}

	recent = append(recent, now)
	w.attempts.Set(addr, recent, w.window)
	return true
}
