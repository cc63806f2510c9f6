package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookhavenapp/bookhaven-server/internal/http/response"
	"github.com/bookhavenapp/bookhaven-server/internal/service"
)

// handleListReviews returns a book's reviews, newest first.
// GET /books/{id}/reviews.
func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := s.reviewService.ListReviewsForBook(r.Context(), chi.URLParam(r, "id"), listParamsFromQuery(r))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, reviews, s.logger)
}

// handleCreateReview posts a review against a book.
// POST /books/{id}/reviews.
func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	var req service.CreateReviewRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	review, err := s.reviewService.CreateReview(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, review, s.logger)
}

// handleGetReview returns a single review.
// GET /reviews/{id}.
func (s *Server) handleGetReview(w http.ResponseWriter, r *http.Request) {
	review, err := s.reviewService.GetReview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, review, s.logger)
}

// handleUpdateReview applies a partial update to a review.
// PUT /reviews/{id}.
func (s *Server) handleUpdateReview(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateReviewRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	review, err := s.reviewService.UpdateReview(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, review, s.logger)
}

// handleDeleteReview removes a review.
// DELETE /reviews/{id}.
func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := s.reviewService.DeleteReview(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}
