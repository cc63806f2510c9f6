package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bookhavenapp/bookhaven-server/internal/domain"
	"github.com/bookhavenapp/bookhaven-server/internal/id"
	"github.com/bookhavenapp/bookhaven-server/internal/store"
)

// ReviewService manages reader reviews attached to catalog entries.
type ReviewService struct {
	store  store.Store
	logger *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(store store.Store, logger *slog.Logger) *ReviewService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ReviewService{store: store, logger: logger}
}

// CreateReviewRequest contains the fields accepted when posting a review.
type CreateReviewRequest struct {
	ReviewText string `json:"review_text" validate:"required,max=8192"`
	Rating     int    `json:"rating" validate:"required,gte=1,lte=5"`
}

// UpdateReviewRequest contains the fields accepted when editing a review.
type UpdateReviewRequest struct {
	ReviewText *string `json:"review_text" validate:"omitempty,min=1,max=8192"`
	Rating     *int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
}

// CreateReview posts a review against a book. The book must exist.
func (s *ReviewService) CreateReview(ctx context.Context, bookID string, req CreateReviewRequest) (*domain.Review, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	reviewID, err := id.Generate("review")
	if err != nil {
		return nil, fmt.Errorf("generate review ID: %w", err)
	}

	now := time.Now()
	review := &domain.Review{
		ID:         reviewID,
		BookID:     bookID,
		ReviewText: req.ReviewText,
		Rating:     req.Rating,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.store.CreateReview(ctx, review); err != nil {
		return nil, err
	}

	s.logger.Info("review created", "review_id", review.ID, "book_id", bookID)
	return review, nil
}

// GetReview returns a single review.
func (s *ReviewService) GetReview(ctx context.Context, reviewID string) (*domain.Review, error) {
	return s.store.GetReview(ctx, reviewID)
}

// ListReviewsForBook returns a book's reviews, newest first. The book must
// exist; listing an unknown book is an error rather than an empty page.
func (s *ReviewService) ListReviewsForBook(ctx context.Context, bookID string, params store.ListParams) ([]*domain.Review, error) {
	params.Validate()

	if _, err := s.store.GetBook(ctx, bookID); err != nil {
		return nil, err
	}
	return s.store.ListReviewsForBook(ctx, bookID, params)
}

// UpdateReview applies a partial update to a review.
func (s *ReviewService) UpdateReview(ctx context.Context, reviewID string, req UpdateReviewRequest) (*domain.Review, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	review, err := s.store.GetReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	if req.ReviewText != nil {
		review.ReviewText = *req.ReviewText
	}
	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	review.UpdatedAt = time.Now()

	if err := s.store.UpdateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}

	s.logger.Info("review updated", "review_id", review.ID)
	return review, nil
}

// DeleteReview removes a review.
func (s *ReviewService) DeleteReview(ctx context.Context, reviewID string) error {
	if err := s.store.DeleteReview(ctx, reviewID); err != nil {
		return err
	}
	s.logger.Info("review deleted", "review_id", reviewID)
	return nil
}
