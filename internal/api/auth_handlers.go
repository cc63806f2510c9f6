package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/bookhavenapp/bookhaven-server/internal/http/response"
	"github.com/bookhavenapp/bookhaven-server/internal/service"
)

// UserSummary is the account shape returned by authentication endpoints.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// LoginResponse is the payload returned on successful login.
type LoginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    UserSummary `json:"user"`
}

// handleRegister creates a new account.
// POST /register.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	resp, err := s.authService.Register(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, resp, s.logger)
}

// handleLogin authenticates with HTTP Basic credentials and returns a
// bearer token. A missing or malformed Authorization header is a client
// error; only rejected credentials produce a 401.
// POST /login.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") == "" {
		response.BadRequest(w, "Missing authorization header", s.logger)
		return
	}

	username, password, ok := r.BasicAuth()
	if !ok {
		response.BadRequest(w, "Invalid authorization header format", s.logger)
		return
	}

	result, err := s.authService.Login(r.Context(), username, password)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, LoginResponse{
		Message: "login successful",
		Token:   result.Token,
		User: UserSummary{
			ID:       result.User.ID,
			Username: result.User.Username,
		},
	}, s.logger)
}
