package domain

import "time"

// Review rating bounds.
const (
	ReviewRatingMin = 1
	ReviewRatingMax = 5
)

// Review is a reader review attached to a book. Deleting the book deletes
// its reviews (enforced by the store via cascade).
type Review struct {
	ID         string    `json:"id"`
	BookID     string    `json:"book_id"`
	ReviewText string    `json:"review_text"`
	Rating     int       `json:"rating"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ValidRating reports whether a rating is within review bounds.
func ValidRating(rating int) bool {
	return rating >= ReviewRatingMin && rating <= ReviewRatingMax
}
