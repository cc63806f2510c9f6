package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhavenapp/bookhaven-server/internal/domain"
)

func TestETag_PresentAndQuoted(t *testing.T) {
	server, s, _ := setupTestServer(t)

	token := seedLogin(t, server, s, "reader", domain.RoleUser)

	w := doRequest(server, http.MethodGet, "/books", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	etag := w.Header().Get("ETag")
	require.NotEmpty(t, etag)
	assert.Equal(t, byte('"'), etag[0])
	assert.Equal(t, byte('"'), etag[len(etag)-1])
}

func TestETag_ConsistentAcrossRequests(t *testing.T) {
	server, s, _ := setupTestServer(t)

	token := seedLogin(t, server, s, "reader", domain.RoleUser)

	etags := make([]string, 3)
	for i := range etags {
		w := doRequest(server, http.MethodGet, "/books", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		etags[i] = w.Header().Get("ETag")
	}

	assert.Equal(t, etags[0], etags[1])
	assert.Equal(t, etags[1], etags[2])
}

func TestETag_NotModified(t *testing.T) {
	server, s, _ := setupTestServer(t)

	editorToken := seedLogin(t, server, s, "editor", domain.RoleEditor)
	w := doRequest(server, http.MethodPost, "/books", editorToken, map[string]any{
		"title": "Cached", "author": "Somebody",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// First request yields the tag.
	w1 := doRequest(server, http.MethodGet, "/books", editorToken, nil)
	require.Equal(t, http.StatusOK, w1.Code)
	etag := w1.Header().Get("ETag")
	require.NotEmpty(t, etag)

	// Replay with If-None-Match: empty 304.
	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	req.Header.Set("Authorization", "Bearer "+editorToken)
	req.Header.Set("If-None-Match", etag)
	w2 := httptest.NewRecorder()
	server.ServeHTTP(w2, req)

	assert.Equal(t, http.StatusNotModified, w2.Code)
	assert.Empty(t, w2.Body.Bytes())
}

func TestETag_ChangesWhenDataChanges(t *testing.T) {
	server, s, _ := setupTestServer(t)

	editorToken := seedLogin(t, server, s, "editor", domain.RoleEditor)

	w1 := doRequest(server, http.MethodGet, "/books", editorToken, nil)
	require.Equal(t, http.StatusOK, w1.Code)
	before := w1.Header().Get("ETag")

	w := doRequest(server, http.MethodPost, "/books", editorToken, map[string]any{
		"title": "New Arrival", "author": "Somebody",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// A stale tag no longer matches.
	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	req.Header.Set("Authorization", "Bearer "+editorToken)
	req.Header.Set("If-None-Match", before)
	w2 := httptest.NewRecorder()
	server.ServeHTTP(w2, req)

	assert.Equal(t, http.StatusOK, w2.Code)
	assert.NotEqual(t, before, w2.Header().Get("ETag"))
}

func TestETag_NotOnErrors(t *testing.T) {
	server, s, _ := setupTestServer(t)

	token := seedLogin(t, server, s, "reader", domain.RoleUser)

	w := doRequest(server, http.MethodGet, "/books/book-missing", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Header().Get("ETag"))
}

func TestETag_CoversAccountEndpoints(t *testing.T) {
	server, s, _ := setupTestServer(t)

	adminToken := seedLogin(t, server, s, "admin", domain.RoleAdmin)

	admin, err := s.GetUserByUsername(context.Background(), "admin")
	require.NoError(t, err)

	// The validator is attached router-wide, not just on catalog reads.
	for _, path := range []string{"/admin/users", "/admin/users/" + admin.ID, "/users/me", "/health"} {
		w := doRequest(server, http.MethodGet, path, adminToken, nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.NotEmpty(t, w.Header().Get("ETag"), path)
	}

	w1 := doRequest(server, http.MethodGet, "/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w1.Code)
	etag := w1.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	req.Header.Set("If-None-Match", etag)
	w2 := httptest.NewRecorder()
	server.ServeHTTP(w2, req)

	assert.Equal(t, http.StatusNotModified, w2.Code)
	assert.Empty(t, w2.Body.Bytes())
}
