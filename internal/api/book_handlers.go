package api

import (
	"encoding/json/v2"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bookhavenapp/bookhaven-server/internal/domain"
	"github.com/bookhavenapp/bookhaven-server/internal/http/response"
	"github.com/bookhavenapp/bookhaven-server/internal/service"
	"github.com/bookhavenapp/bookhaven-server/internal/store"
)

// BookResource is a catalog entry plus its hypermedia references.
type BookResource struct {
	*domain.Book
	Links response.Links `json:"_links,omitempty"`
}

func bookResource(book *domain.Book) BookResource {
	return BookResource{
		Book: book,
		Links: response.Links{
			"self":    {Href: "/books/" + book.ID},
			"reviews": {Href: "/books/" + book.ID + "/reviews"},
		},
	}
}

func bookResources(books []*domain.Book) []BookResource {
	resources := make([]BookResource, len(books))
	for i, b := range books {
		resources[i] = bookResource(b)
	}
	return resources
}

// listParamsFromQuery reads pagination parameters from the query string.
// Out-of-range values fall back to defaults rather than erroring.
func listParamsFromQuery(r *http.Request) store.ListParams {
	params := store.DefaultListParams()
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			params.Limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			params.Offset = n
		}
	}
	params.Validate()
	return params
}

// handleListBooks returns the catalog ordered by title.
// GET /books.
func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.bookService.ListBooks(r.Context(), listParamsFromQuery(r))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, bookResources(books), s.logger)
}

// handleGetBook returns a single catalog entry.
// GET /books/{id}.
func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	book, err := s.bookService.GetBook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, bookResource(book), s.logger)
}

// handleCreateBook adds a catalog entry.
// POST /books.
func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	var req service.CreateBookRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	book, err := s.bookService.CreateBook(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, bookResource(book), s.logger)
}

// handleUpdateBook applies a partial update to a catalog entry.
// PUT /books/{id}.
func (s *Server) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateBookRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	book, err := s.bookService.UpdateBook(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, bookResource(book), s.logger)
}

// handleDeleteBook removes a catalog entry and its reviews.
// DELETE /books/{id}.
func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	if err := s.bookService.DeleteBook(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}
