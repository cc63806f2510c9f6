package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bookhavenapp/bookhaven-server/internal/domain"
	apperrors "github.com/bookhavenapp/bookhaven-server/internal/errors"
	"github.com/bookhavenapp/bookhaven-server/internal/store"
)

const bookColumns = `id, created_at, updated_at, title, author, published_year,
	cover_url, description, genre, average_rating`

func scanBook(scanner interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var b domain.Book

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
		&b.Title,
		&b.Author,
		&b.PublishedYear,
		&b.CoverURL,
		&b.Description,
		&b.Genre,
		&b.AverageRating,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	b.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// CreateBook inserts a new catalog entry.
func (s *Store) CreateBook(ctx context.Context, book *domain.Book) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO books (id, created_at, updated_at, title, author, published_year,
			cover_url, description, genre, average_rating)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		book.ID,
		formatTime(book.CreatedAt),
		formatTime(book.UpdatedAt),
		book.Title,
		book.Author,
		book.PublishedYear,
		book.CoverURL,
		book.Description,
		book.Genre,
		book.AverageRating,
	)
	return err
}

// GetBook fetches a book by ID.
func (s *Store) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ?`, id)

	book, err := scanBook(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("book not found")
		}
		return nil, err
	}
	return book, nil
}

// ListBooks returns a page of books ordered by title.
func (s *Store) ListBooks(ctx context.Context, params store.ListParams) ([]*domain.Book, error) {
	params.Validate()

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books ORDER BY title, id LIMIT ? OFFSET ?`,
		params.Limit, params.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*domain.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

// UpdateBook replaces a book's mutable fields.
// Returns a not-found error if the book does not exist.
func (s *Store) UpdateBook(ctx context.Context, book *domain.Book) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE books
		SET title = ?, author = ?, published_year = ?, cover_url = ?,
			description = ?, genre = ?, average_rating = ?, updated_at = ?
		WHERE id = ?`,
		book.Title,
		book.Author,
		book.PublishedYear,
		book.CoverURL,
		book.Description,
		book.Genre,
		book.AverageRating,
		formatTime(nowUTC()),
		book.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.NotFound("book not found")
	}
	return nil
}

// DeleteBook removes a book. Reviews cascade via the schema's foreign key.
// Returns a not-found error if the book does not exist.
func (s *Store) DeleteBook(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.NotFound("book not found")
	}
	return nil
}
