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

// BookService manages catalog entries.
type BookService struct {
	store  store.Store
	logger *slog.Logger
}

// NewBookService creates a new book service.
func NewBookService(store store.Store, logger *slog.Logger) *BookService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &BookService{store: store, logger: logger}
}

// CreateBookRequest contains the fields accepted when adding a book.
type CreateBookRequest struct {
	Title         string  `json:"title" validate:"required,max=512"`
	Author        string  `json:"author" validate:"required,max=256"`
	PublishedYear int     `json:"published_year" validate:"omitempty,gte=0,lte=9999"`
	CoverURL      string  `json:"book_picture" validate:"omitempty,max=2048"`
	Description   string  `json:"book_description" validate:"omitempty,max=8192"`
	Genre         string  `json:"genre" validate:"omitempty,max=128"`
	AverageRating float64 `json:"average_rating" validate:"omitempty,gte=0,lte=5"`
}

// UpdateBookRequest contains the fields accepted when editing a book.
// All fields are optional; absent fields keep their stored value.
type UpdateBookRequest struct {
	Title         *string  `json:"title" validate:"omitempty,min=1,max=512"`
	Author        *string  `json:"author" validate:"omitempty,min=1,max=256"`
	PublishedYear *int     `json:"published_year" validate:"omitempty,gte=0,lte=9999"`
	CoverURL      *string  `json:"book_picture" validate:"omitempty,max=2048"`
	Description   *string  `json:"book_description" validate:"omitempty,max=8192"`
	Genre         *string  `json:"genre" validate:"omitempty,max=128"`
	AverageRating *float64 `json:"average_rating" validate:"omitempty,gte=0,lte=5"`
}

// CreateBook adds a new catalog entry.
func (s *BookService) CreateBook(ctx context.Context, req CreateBookRequest) (*domain.Book, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	bookID, err := id.Generate("book")
	if err != nil {
		return nil, fmt.Errorf("generate book ID: %w", err)
	}

	now := time.Now()
	book := &domain.Book{
		ID:            bookID,
		Title:         req.Title,
		Author:        req.Author,
		PublishedYear: req.PublishedYear,
		CoverURL:      req.CoverURL,
		Description:   req.Description,
		Genre:         req.Genre,
		AverageRating: req.AverageRating,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.store.CreateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	s.logger.Info("book created", "book_id", book.ID, "title", book.Title)
	return book, nil
}

// GetBook returns a single catalog entry.
func (s *BookService) GetBook(ctx context.Context, bookID string) (*domain.Book, error) {
	return s.store.GetBook(ctx, bookID)
}

// ListBooks returns catalog entries ordered by title.
func (s *BookService) ListBooks(ctx context.Context, params store.ListParams) ([]*domain.Book, error) {
	params.Validate()
	return s.store.ListBooks(ctx, params)
}

// UpdateBook applies a partial update to a catalog entry.
func (s *BookService) UpdateBook(ctx context.Context, bookID string, req UpdateBookRequest) (*domain.Book, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.PublishedYear != nil {
		book.PublishedYear = *req.PublishedYear
	}
	if req.CoverURL != nil {
		book.CoverURL = *req.CoverURL
	}
	if req.Description != nil {
		book.Description = *req.Description
	}
	if req.Genre != nil {
		book.Genre = *req.Genre
	}
	if req.AverageRating != nil {
		book.AverageRating = *req.AverageRating
	}
	book.UpdatedAt = time.Now()

	if err := s.store.UpdateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}

	s.logger.Info("book updated", "book_id", book.ID)
	return book, nil
}

// DeleteBook removes a catalog entry along with its reviews.
func (s *BookService) DeleteBook(ctx context.Context, bookID string) error {
	if err := s.store.DeleteBook(ctx, bookID); err != nil {
		return err
	}
	s.logger.Info("book deleted", "book_id", bookID)
	return nil
}
