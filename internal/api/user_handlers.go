package api

import (
	"net/http"

	"github.com/bookhavenapp/bookhaven-server/internal/http/response"
)

// CurrentUserResponse is the authenticated identity as seen by the token.
type CurrentUserResponse struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Role     string   `json:"role"`
	Scopes   []string `json:"scopes"`
}

// handleGetCurrentUser returns the identity embedded in the presented
// token. No store lookup: this reflects what the token grants, which may
// lag the account record until the next login.
// GET /users/me.
func (s *Server) handleGetCurrentUser(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r.Context())
	if claims == nil {
		response.Unauthorized(w, "Authentication required", s.logger)
		return
	}

	response.Success(w, CurrentUserResponse{
		ID:       claims.UserID,
		Username: claims.Username,
		Role:     string(claims.Role),
		Scopes:   claims.Scopes,
	}, s.logger)
}
