package book

import (
	"errors"
	"log"
	"net/http"

	"libraryapi/internal/httpx"
	"libraryapi/internal/page"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type createReq struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
	ISBN   string `json:"isbn" validate:"required"`
}

type updateReq struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
}

// Create handles POST /api/books
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReq
	if !httpx.ReadJSON(w, r, &req) {
		return
	}
	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid book", details)
		return
	}

	log.Printf("book: creating isbn=%q", req.ISBN)
	saved, err := h.service.Save(r.Context(), &Book{Title: req.Title, Author: req.Author, ISBN: req.ISBN})
	if err != nil {
		if errors.Is(err, ErrDuplicateISBN) {
			httpx.JSONError(w, r, http.StatusBadRequest, "DUPLICATE_ISBN", "Isbn already registered", nil)
			return
		}
		internalError(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, r, saved)
}

// Get handles GET /api/books/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, ok := h.load(w, r)
	if !ok {
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// Update handles PUT /api/books/{id}. Only title and author change.
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateReq
	if !httpx.ReadJSON(w, r, &req) {
		return
	}
	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid book", details)
		return
	}

	b, ok := h.load(w, r)
	if !ok {
		return
	}
	b.Title = req.Title
	b.Author = req.Author

	updated, err := h.service.Update(r.Context(), &b)
	if err != nil {
		if errors.Is(err, ErrDuplicateISBN) {
			httpx.JSONError(w, r, http.StatusBadRequest, "DUPLICATE_ISBN", "Isbn already registered", nil)
			return
		}
		internalError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, updated, nil)
}

// Delete handles DELETE /api/books/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	b, ok := h.load(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), &b); err != nil {
		if errors.Is(err, ErrHasLoans) {
			httpx.JSONError(w, r, http.StatusBadRequest, "BOOK_HAS_LOANS", "Book has loans and cannot be deleted", nil)
			return
		}
		internalError(w, r, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

// Find handles GET /api/books?title=&author=&isbn=&page=&size=
func (h *HTTPHandler) Find(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var f Filter
	if query.Has("title") {
		v := query.Get("title")
		f.Title = &v
	}
	if query.Has("author") {
		v := query.Get("author")
		f.Author = &v
	}
	if query.Has("isbn") {
		v := query.Get("isbn")
		f.ISBN = &v
	}

	result, err := h.service.Find(r.Context(), f, page.FromQuery(query))
	if err != nil {
		internalError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, result.Content, result.Meta())
}

// load resolves the {id} path value, writing a 404 when there is no such book.
func (h *HTTPHandler) load(w http.ResponseWriter, r *http.Request) (Book, bool) {
	b, found, err := h.service.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		internalError(w, r, err)
		return Book{}, false
	}
	if !found {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		return Book{}, false
	}
	return b, true
}

func internalError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("book: request_id=%s error=%v", httpx.RequestIDFrom(r), err)
	httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
}
