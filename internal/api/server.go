// Package api provides the HTTP API server and handlers for the BookHaven catalog.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bookhavenapp/bookhaven-server/internal/domain"
	"github.com/bookhavenapp/bookhaven-server/internal/ratelimit"
	"github.com/bookhavenapp/bookhaven-server/internal/service"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	authService   *service.AuthService
	bookService   *service.BookService
	reviewService *service.ReviewService
	userService   *service.UserService
	limiter       ratelimit.Limiter
	router        *chi.Mux
	logger        *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	authService *service.AuthService,
	bookService *service.BookService,
	reviewService *service.ReviewService,
	userService *service.UserService,
	limiter ratelimit.Limiter,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		authService:   authService,
		bookService:   bookService,
		reviewService: reviewService,
		userService:   userService,
		limiter:       limiter,
		router:        chi.NewRouter(),
		logger:        logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the global middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(secureHeaders)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "If-None-Match"},
		ExposedHeaders:   []string{"ETag"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	s.router.Use(s.rateLimit)
	// Every GET response carries a body-hash validator, admin and account
	// endpoints included, so clients can revalidate any resource.
	s.router.Use(s.etag)
}

// setupRoutes configures all HTTP routes. Authorization is scope-based:
// each protected route names the scope a token must carry, so the route
// table is the single place where access rules live.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// Auth endpoints (public).
	s.router.Post("/register", s.handleRegister)
	s.router.Post("/login", s.handleLogin)

	// Catalog.
	s.router.Route("/books", func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Group(func(r chi.Router) {
			r.Use(s.requireScope(domain.ScopeBooksRead))
			r.Get("/", s.handleListBooks)
			r.Get("/{id}", s.handleGetBook)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.requireScope(domain.ScopeBooksWrite))
			r.Post("/", s.handleCreateBook)
			r.Put("/{id}", s.handleUpdateBook)
			r.Delete("/{id}", s.handleDeleteBook)
		})

		// Reviews nested under their book.
		r.With(s.requireScope(domain.ScopeReviewsRead)).
			Get("/{id}/reviews", s.handleListReviews)
		r.With(s.requireScope(domain.ScopeReviewsWrite)).
			Post("/{id}/reviews", s.handleCreateReview)
	})

	// Review access by review ID.
	s.router.Route("/reviews", func(r chi.Router) {
		r.Use(s.requireAuth)

		r.With(s.requireScope(domain.ScopeReviewsRead)).
			Get("/{id}", s.handleGetReview)
		r.With(s.requireScope(domain.ScopeReviewsWrite)).
			Put("/{id}", s.handleUpdateReview)
		r.With(s.requireScope(domain.ScopeReviewsDelete)).
			Delete("/{id}", s.handleDeleteReview)
	})

	// Current user.
	s.router.Route("/users", func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/me", s.handleGetCurrentUser)
	})

	// Admin account management.
	s.router.Route("/admin/users", func(r chi.Router) {
		r.Use(s.requireAuth)

		r.With(s.requireScope(domain.ScopeUsersRead)).
			Get("/", s.handleListUsers)
		r.With(s.requireScope(domain.ScopeUsersRead)).
			Get("/{id}", s.handleGetUser)
		// Role assignment is the one place both guards apply: the scope
		// proves the token grants user writes, the role check pins the
		// operation to administrators even if scope sets drift.
		r.With(s.requireScope(domain.ScopeUsersWrite), s.requireRole(domain.RoleAdmin)).
			Put("/{id}/role", s.handleAssignRole)
		r.With(s.requireScope(domain.ScopeUsersDelete)).
			Delete("/{id}", s.handleDeleteUser)
	})
}
