package api

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhavenapp/bookhaven-server/internal/auth"
	"github.com/bookhavenapp/bookhaven-server/internal/ratelimit"
	"github.com/bookhavenapp/bookhaven-server/internal/service"
	"github.com/bookhavenapp/bookhaven-server/internal/store/sqlite"
)

func TestRateLimit(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := sqlite.Open(t.TempDir()+"/test.db", logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	tokenService, err := auth.NewTokenService(testKeyHex, 15*time.Minute)
	require.NoError(t, err)

	// Tiny refill rate so the burst is all a client gets during the test.
	limiter := ratelimit.New(0.001, 2)
	t.Cleanup(limiter.Stop)

	server := NewServer(
		service.NewAuthService(s, tokenService, logger),
		service.NewBookService(s, logger),
		service.NewReviewService(s, logger),
		service.NewUserService(s, logger),
		limiter,
		logger,
	)

	for i := range 2 {
		w := doRequest(server, http.MethodGet, "/health", "", nil)
		assert.Equal(t, http.StatusOK, w.Code, "request %d", i)
	}

	w := doRequest(server, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestSecureHeaders(t *testing.T) {
	server, _, _ := setupTestServer(t)

	w := doRequest(server, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "1; mode=block", w.Header().Get("X-XSS-Protection"))
	assert.Equal(t, "max-age=31536000; includeSubDomains", w.Header().Get("Strict-Transport-Security"))
}
