package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printlab/quote-api/internal/models"
	apperrors "github.com/printlab/quote-api/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSubmissionWindow_Allow(t *testing.T) {
	w := NewSubmissionWindow(5, 15*time.Minute)
	now := time.Now()

	for i := 0; i < 5; i++ {
		assert.True(t, w.Allow("203.0.113.7", now), "attempt %d should be allowed", i+1)
	}
	assert.False(t, w.Allow("203.0.113.7", now), "sixth attempt should be rejected")
}

func TestSubmissionWindow_SlidingWindowExpiry(t *testing.T) {
	w := NewSubmissionWindow(2, 15*time.Minute)
	now := time.Now()

	assert.True(t, w.Allow("203.0.113.7", now))
	assert.True(t, w.Allow("203.0.113.7", now.Add(time.Minute)))
	assert.False(t, w.Allow("203.0.113.7", now.Add(2*time.Minute)))

	// The first attempt has aged out, so one slot frees up
	assert.True(t, w.Allow("203.0.113.7", now.Add(16*time.Minute)))
}

func TestSubmissionWindow_PerAddressIsolation(t *testing.T) {
	w := NewSubmissionWindow(1, 15*time.Minute)
	now := time.Now()

	assert.True(t, w.Allow("203.0.113.7", now))
	assert.False(t, w.Allow("203.0.113.7", now))

	// A different address has its own budget
	assert.True(t, w.Allow("198.51.100.9", now))
}

func TestSubmissionWindow_RejectedAttemptDoesNotConsumeSlot(t *testing.T) {
	w := NewSubmissionWindow(2, 15*time.Minute)
	now := time.Now()

	assert.True(t, w.Allow("203.0.113.7", now))
	assert.True(t, w.Allow("203.0.113.7", now))

	// Hammering while over the ceiling must not extend the lockout
	for i := 0; i < 10; i++ {
		assert.False(t, w.Allow("203.0.113.7", now.Add(time.Duration(i)*time.Minute)))
	}
	assert.True(t, w.Allow("203.0.113.7", now.Add(16*time.Minute)))
}

func TestSubmissionWindow_Middleware(t *testing.T) {
	window := NewSubmissionWindow(2, 15*time.Minute)

	router := gin.New()
	router.POST("/submit", window.Middleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/submit", http.NoBody)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/submit", http.NoBody)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	var resp models.SubmitQuoteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Too many requests. Please try again later.", resp.Message)
}

func TestSubmissionWindow_Middleware_AttachesRateLimitedError(t *testing.T) {
	window := NewSubmissionWindow(1, 15*time.Minute)

	var attached []*gin.Error
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Next()
		attached = c.Errors
	})
	router.POST("/submit", window.Middleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/submit", http.NoBody)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, attached)

	w = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/submit", http.NoBody)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	require.Len(t, attached, 1)
	assert.True(t, apperrors.Is(attached[0].Err, apperrors.ErrRateLimited))
}
