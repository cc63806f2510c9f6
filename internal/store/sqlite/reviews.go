package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bookhavenapp/bookhaven-server/internal/domain"
	apperrors "github.com/bookhavenapp/bookhaven-server/internal/errors"
	"github.com/bookhavenapp/bookhaven-server/internal/store"
)

const reviewColumns = `id, created_at, updated_at, book_id, review_text, rating`

func scanReview(scanner interface{ Scan(dest ...any) error }) (*domain.Review, error) {
	var r domain.Review

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&r.ID,
		&createdAt,
		&updatedAt,
		&r.BookID,
		&r.ReviewText,
		&r.Rating,
	)
	if err != nil {
		return nil, err
	}

	r.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	r.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// CreateReview inserts a review. The referenced book must exist; the
// foreign key rejects orphan reviews.
func (s *Store) CreateReview(ctx context.Context, review *domain.Review) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reviews (id, created_at, updated_at, book_id, review_text, rating)
		VALUES (?, ?, ?, ?, ?, ?)`,
		review.ID,
		formatTime(review.CreatedAt),
		formatTime(review.UpdatedAt),
		review.BookID,
		review.ReviewText,
		review.Rating,
	)
	if err != nil && isForeignKeyViolation(err) {
		return apperrors.NotFound("book not found")
	}
	return err
}

// GetReview fetches a review by ID.
func (s *Store) GetReview(ctx context.Context, id string) (*domain.Review, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE id = ?`, id)

	review, err := scanReview(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("review not found")
		}
		return nil, err
	}
	return review, nil
}

// ListReviewsForBook returns a page of reviews for a book, newest first.
func (s *Store) ListReviewsForBook(ctx context.Context, bookID string, params store.ListParams) ([]*domain.Review, error) {
	params.Validate()

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE book_id = ?
		ORDER BY created_at DESC, id LIMIT ? OFFSET ?`,
		bookID, params.Limit, params.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*domain.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

// UpdateReview replaces a review's text and rating.
// Returns a not-found error if the review does not exist.
func (s *Store) UpdateReview(ctx context.Context, review *domain.Review) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE reviews SET review_text = ?, rating = ?, updated_at = ? WHERE id = ?`,
		review.ReviewText, review.Rating, formatTime(nowUTC()), review.ID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.NotFound("review not found")
	}
	return nil
}

// DeleteReview removes a review.
// Returns a not-found error if the review does not exist.
func (s *Store) DeleteReview(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.NotFound("review not found")
	}
	return nil
}
