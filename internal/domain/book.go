package domain

import "time"

// Book is a catalog entry.
type Book struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	PublishedYear int       `json:"published_year"`
	CoverURL      string    `json:"book_picture,omitempty"`
	Description   string    `json:"book_description,omitempty"`
	Genre         string    `json:"genre,omitempty"`
	AverageRating float64   `json:"average_rating"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
