// Package store defines the persistence interface consumed by the service layer.
package store

import (
	"context"

	"github.com/bookhavenapp/bookhaven-server/internal/domain"
)

// Store is the persistence contract for the catalog. The SQLite
// implementation lives in store/sqlite; tests may substitute fakes.
type Store interface {
	UserStore
	BookStore
	ReviewStore

	Close() error
}

// UserStore covers account persistence, including the credential lookup
// used by the login path and the role mutation used by admin endpoints.
type UserStore interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	// GetUserByUsername is the credential lookup: it returns the stored
	// password hash alongside the account record.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	// UpdateUserRole assigns a role to a user. Used both by the admin
	// role-assignment endpoint and by the token issuer's self-healing
	// default-role assignment.
	UpdateUserRole(ctx context.Context, userID string, role domain.Role) error
	DeleteUser(ctx context.Context, id string) error
}

// BookStore covers catalog entries.
type BookStore interface {
	CreateBook(ctx context.Context, book *domain.Book) error
	GetBook(ctx context.Context, id string) (*domain.Book, error)
	ListBooks(ctx context.Context, params ListParams) ([]*domain.Book, error)
	UpdateBook(ctx context.Context, book *domain.Book) error
	// DeleteBook removes a book; its reviews go with it (cascade).
	DeleteBook(ctx context.Context, id string) error
}

// ReviewStore covers reader reviews.
type ReviewStore interface {
	CreateReview(ctx context.Context, review *domain.Review) error
	GetReview(ctx context.Context, id string) (*domain.Review, error)
	ListReviewsForBook(ctx context.Context, bookID string, params ListParams) ([]*domain.Review, error)
	UpdateReview(ctx context.Context, review *domain.Review) error
	DeleteReview(ctx context.Context, id string) error
}
