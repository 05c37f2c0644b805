// Package memstore keeps books and loans in process memory. It enforces the
// same constraints as the Postgres schema: unique ISBNs, one outstanding loan
// per book and loans referring to existing books.
package memstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"libraryapi/internal/book"
	"libraryapi/internal/loan"
	"libraryapi/internal/page"

	"github.com/google/uuid"
)

type loanRow struct {
	id       string
	bookID   string
	customer string
	loanDate time.Time
	returned *bool
}

// Store is the shared state behind BookRepo and LoanRepo.
type Store struct {
	mu    sync.RWMutex
	books map[string]book.Book
	loans map[string]loanRow
	now   func() time.Time
}

func New() *Store {
	return &Store{
		books: make(map[string]book.Book),
		loans: make(map[string]loanRow),
		now:   time.Now,
	}
}

// Books returns the book repository view of the store.
func (s *Store) Books() *BookRepo {
	return &BookRepo{s: s}
}

// Loans returns the loan repository view of the store.
func (s *Store) Loans() *LoanRepo {
	return &LoanRepo{s: s}
}

// Ping always succeeds; it lets the store stand in for a database in
// readiness checks.
func (s *Store) Ping(context.Context) error {
	return nil
}

type BookRepo struct {
	s *Store
}

var _ book.Repository = (*BookRepo)(nil)

func (r *BookRepo) Save(_ context.Context, b *book.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, other := range r.s.books {
		if other.ISBN == b.ISBN && id != b.ID {
			return book.ErrDuplicateISBN
		}
	}

	now := r.s.now().UTC()
	if b.IsNew() {
		b.ID = uuid.NewString()
		b.CreatedAt = now
	} else if existing, ok := r.s.books[b.ID]; ok {
		b.CreatedAt = existing.CreatedAt
	} else {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
	r.s.books[b.ID] = *b
	return nil
}

func (r *BookRepo) FindByID(_ context.Context, id string) (book.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.books[id]
	if !ok {
		return book.Book{}, book.ErrNotFound
	}
	return b, nil
}

func (r *BookRepo) FindByISBN(_ context.Context, isbn string) (book.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, b := range r.s.books {
		if b.ISBN == isbn {
			return b, nil
		}
	}
	return book.Book{}, book.ErrNotFound
}

func (r *BookRepo) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	_, err := r.FindByISBN(ctx, isbn)
	if errors.Is(err, book.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *BookRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, l := range r.s.loans {
		if l.bookID == id {
			return book.ErrHasLoans
		}
	}
	delete(r.s.books, id)
	return nil
}

func (r *BookRepo) Find(_ context.Context, f book.Filter, p page.Request) ([]book.Book, int, error) {
	r.s.mu.RLock()
	var matched []book.Book
	for _, b := range r.s.books {
		if containsFold(b.Title, f.Title) && containsFold(b.Author, f.Author) && containsFold(b.ISBN, f.ISBN) {
			matched = append(matched, b)
		}
	}
	r.s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Title != matched[j].Title {
			return matched[i].Title < matched[j].Title
		}
		return matched[i].ID < matched[j].ID
	})
	return page.Slice(matched, p), len(matched), nil
}

// containsFold treats a nil needle as a match.
func containsFold(value string, needle *string) bool {
	if needle == nil {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(*needle))
}

type LoanRepo struct {
	s *Store
}

var _ loan.Repository = (*LoanRepo)(nil)

func (r *LoanRepo) Save(_ context.Context, l *loan.Loan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.books[l.Book.ID]
	if !ok {
		return fmt.Errorf("save loan: book %q does not exist", l.Book.ID)
	}
	if l.IsOutstanding() {
		for id, other := range r.s.loans {
			if id != l.ID && other.bookID == l.Book.ID && outstanding(other.returned) {
				return loan.ErrBookAlreadyLoaned
			}
		}
	}

	if l.IsNew() {
		l.ID = uuid.NewString()
	}
	l.Book = b
	l.LoanDate = loan.Date(l.LoanDate)
	r.s.loans[l.ID] = loanRow{
		id:       l.ID,
		bookID:   l.Book.ID,
		customer: l.Customer,
		loanDate: l.LoanDate,
		returned: copyBool(l.Returned),
	}
	return nil
}

func (r *LoanRepo) FindByID(_ context.Context, id string) (loan.Loan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.loans[id]
	if !ok {
		return loan.Loan{}, loan.ErrNotFound
	}
	return r.toLoan(row), nil
}

func (r *LoanRepo) ExistsByBookAndNotReturned(_ context.Context, bookID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, row := range r.s.loans {
		if row.bookID == bookID && outstanding(row.returned) {
			return true, nil
		}
	}
	return false, nil
}

func (r *LoanRepo) FindByBookISBNOrCustomer(_ context.Context, f loan.Filter, p page.Request) ([]loan.Loan, int, error) {
	all := r.filter(func(l loan.Loan) bool {
		if f.ISBN == "" && f.Customer == "" {
			return true
		}
		return (f.ISBN != "" && l.Book.ISBN == f.ISBN) || (f.Customer != "" && l.Customer == f.Customer)
	})
	sortNewestFirst(all)
	return page.Slice(all, p), len(all), nil
}

func (r *LoanRepo) FindByBook(_ context.Context, bookID string, p page.Request) ([]loan.Loan, int, error) {
	all := r.filter(func(l loan.Loan) bool { return l.Book.ID == bookID })
	sortNewestFirst(all)
	return page.Slice(all, p), len(all), nil
}

func (r *LoanRepo) FindByLoanDateBeforeAndNotReturned(_ context.Context, cutoff time.Time) ([]loan.Loan, error) {
	cutoff = loan.Date(cutoff)
	late := r.filter(func(l loan.Loan) bool {
		return l.IsOutstanding() && l.LoanDate.Before(cutoff)
	})
	sort.Slice(late, func(i, j int) bool {
		if !late[i].LoanDate.Equal(late[j].LoanDate) {
			return late[i].LoanDate.Before(late[j].LoanDate)
		}
		return late[i].ID < late[j].ID
	})
	return late, nil
}

func (r *LoanRepo) filter(keep func(loan.Loan) bool) []loan.Loan {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []loan.Loan
	for _, row := range r.s.loans {
		if l := r.toLoan(row); keep(l) {
			out = append(out, l)
		}
	}
	return out
}

// toLoan must be called with the store lock held.
func (r *LoanRepo) toLoan(row loanRow) loan.Loan {
	return loan.Loan{
		ID:       row.id,
		Book:     r.s.books[row.bookID],
		Customer: row.customer,
		LoanDate: row.loanDate,
		Returned: copyBool(row.returned),
	}
}

func sortNewestFirst(loans []loan.Loan) {
	sort.Slice(loans, func(i, j int) bool {
		if !loans[i].LoanDate.Equal(loans[j].LoanDate) {
			return loans[i].LoanDate.After(loans[j].LoanDate)
		}
		return loans[i].ID < loans[j].ID
	})
}

func outstanding(returned *bool) bool {
	return returned == nil || !*returned
}

func copyBool(v *bool) *bool {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
