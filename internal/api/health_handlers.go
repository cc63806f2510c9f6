package api

import (
	"net/http"
	"time"

	"github.com/bookhavenapp/bookhaven-server/internal/http/response"
)

var serverStart = time.Now()

// HealthResponse contains health check data.
type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

// handleHealthCheck reports liveness.
// GET /health.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, HealthResponse{
		Status: "healthy",
		Uptime: time.Since(serverStart).Round(time.Second).String(),
	}, s.logger)
}
