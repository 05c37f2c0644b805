package loan

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"libraryapi/internal/book"
	"libraryapi/internal/httpx"
	"libraryapi/internal/page"
)

// BookLookup resolves the books that loans refer to.
type BookLookup interface {
	GetByID(ctx context.Context, id string) (book.Book, bool, error)
	GetByISBN(ctx context.Context, isbn string) (book.Book, bool, error)
}

type HTTPHandler struct {
	service *Service
	books   BookLookup
	now     func() time.Time
}

func NewHTTPHandler(service *Service, books BookLookup) *HTTPHandler {
	return &HTTPHandler{service: service, books: books, now: time.Now}
}

type createReq struct {
	ISBN     string `json:"isbn" validate:"required"`
	Customer string `json:"customer" validate:"required"`
}

type createResp struct {
	ID string `json:"id"`
}

type returnReq struct {
	Returned *bool `json:"returned" validate:"required"`
}

// Create handles POST /api/loans
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReq
	if !httpx.ReadJSON(w, r, &req) {
		return
	}
	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid loan", details)
		return
	}

	b, found, err := h.books.GetByISBN(r.Context(), req.ISBN)
	if err != nil {
		internalError(w, r, err)
		return
	}
	if !found {
		httpx.JSONError(w, r, http.StatusBadRequest, "BOOK_NOT_FOUND", "Book not found for passed isbn", nil)
		return
	}

	saved, err := h.service.Save(r.Context(), &Loan{
		Book:     b,
		Customer: req.Customer,
		LoanDate: Date(h.now()),
	})
	if err != nil {
		if errors.Is(err, ErrBookAlreadyLoaned) {
			httpx.JSONError(w, r, http.StatusBadRequest, "BOOK_ALREADY_LOANED", "Book already loaned", nil)
			return
		}
		internalError(w, r, err)
		return
	}
	log.Printf("loan: created id=%s isbn=%q customer=%q", saved.ID, b.ISBN, saved.Customer)
	httpx.JSONSuccessCreated(w, r, createResp{ID: saved.ID})
}

// Get handles GET /api/loans/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	l, ok := h.load(w, r)
	if !ok {
		return
	}
	httpx.JSONSuccess(w, r, l, nil)
}

// Return handles PATCH /api/loans/{id}
func (h *HTTPHandler) Return(w http.ResponseWriter, r *http.Request) {
	var req returnReq
	if !httpx.ReadJSON(w, r, &req) {
		return
	}
	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid loan", details)
		return
	}

	l, ok := h.load(w, r)
	if !ok {
		return
	}
	l.Returned = req.Returned

	updated, err := h.service.Update(r.Context(), &l)
	if err != nil {
		if errors.Is(err, ErrBookAlreadyLoaned) {
			httpx.JSONError(w, r, http.StatusBadRequest, "BOOK_ALREADY_LOANED", "Book already loaned", nil)
			return
		}
		internalError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, updated, nil)
}

// Find handles GET /api/loans?isbn=&customer=&page=&size=
func (h *HTTPHandler) Find(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	f := Filter{ISBN: query.Get("isbn"), Customer: query.Get("customer")}

	result, err := h.service.Find(r.Context(), f, page.FromQuery(query))
	if err != nil {
		internalError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, result.Content, result.Meta())
}

// ListByBook handles GET /api/books/{id}/loans
func (h *HTTPHandler) ListByBook(w http.ResponseWriter, r *http.Request) {
	b, found, err := h.books.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		internalError(w, r, err)
		return
	}
	if !found {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		return
	}

	result, err := h.service.GetLoanByBook(r.Context(), b, page.FromQuery(r.URL.Query()))
	if err != nil {
		internalError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, result.Content, result.Meta())
}

// Overdue handles GET /api/loans/overdue
func (h *HTTPHandler) Overdue(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	loans, err := h.service.LateLoans(r.Context(), now)
	if err != nil {
		internalError(w, r, err)
		return
	}
	if loans == nil {
		loans = []Loan{}
	}
	httpx.JSONSuccess(w, r, loans, map[string]interface{}{
		"cutoff": h.service.Cutoff(now).Format(time.DateOnly),
		"total":  len(loans),
	})
}

func (h *HTTPHandler) load(w http.ResponseWriter, r *http.Request) (Loan, bool) {
	l, found, err := h.service.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		internalError(w, r, err)
		return Loan{}, false
	}
	if !found {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Loan not found", nil)
		return Loan{}, false
	}
	return l, true
}

func internalError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("loan: request_id=%s error=%v", httpx.RequestIDFrom(r), err)
	httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
}
