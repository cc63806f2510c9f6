package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhavenapp/bookhaven-server/internal/domain"
)

func TestRegister(t *testing.T) {
	server, _, _ := setupTestServer(t)

	w := doRequest(server, http.MethodPost, "/register", "", map[string]string{
		"username": "margaret",
		"password": "correct-horse-battery",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Duplicate username conflicts.
	w = doRequest(server, http.MethodPost, "/register", "", map[string]string{
		"username": "Margaret",
		"password": "correct-horse-battery",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Short password is rejected.
	w = doRequest(server, http.MethodPost, "/register", "", map[string]string{
		"username": "harold",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_BasicAuth(t *testing.T) {
	server, s, _ := setupTestServer(t)

	seedLogin(t, server, s, "margaret", domain.RoleUser)

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.SetBasicAuth("margaret", "correct-horse-battery")
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)
}

func TestLogin_MissingHeader(t *testing.T) {
	server, _, _ := setupTestServer(t)

	// No Authorization header at all is a client error, not a 401.
	w := doRequest(server, http.MethodPost, "/login", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_MalformedHeader(t *testing.T) {
	server, _, _ := setupTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set("Authorization", "Basic not-base64!!!")
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_BadCredentials(t *testing.T) {
	server, s, _ := setupTestServer(t)

	seedLogin(t, server, s, "margaret", domain.RoleUser)

	// Wrong password and unknown user fail identically.
	for _, creds := range [][2]string{
		{"margaret", "wrong-password"},
		{"nobody", "correct-horse-battery"},
	} {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.SetBasicAuth(creds[0], creds[1])
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		env := decodeEnvelope(t, w)
		assert.Equal(t, "/login", env.Links["login"].Href)
	}
}
