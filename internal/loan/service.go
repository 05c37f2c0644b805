package loan

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"libraryapi/internal/book"
	"libraryapi/internal/page"
)

// DefaultLoanPeriodDays is how long a book may stay out before its loan is late.
const DefaultLoanPeriodDays = 4

// Service provides the loan lifecycle.
type Service struct {
	repo           Repository
	loanPeriodDays int
}

// NewService creates a loan service. A non-positive loanPeriodDays falls back
// to DefaultLoanPeriodDays.
func NewService(repo Repository, loanPeriodDays int) *Service {
	if loanPeriodDays <= 0 {
		loanPeriodDays = DefaultLoanPeriodDays
	}
	return &Service{repo: repo, loanPeriodDays: loanPeriodDays}
}

// Save opens a loan. A book can only have one outstanding loan at a time.
func (s *Service) Save(ctx context.Context, l *Loan) (*Loan, error) {
	if l == nil {
		return nil, ErrInvalidArgument
	}
	loaned, err := s.repo.ExistsByBookAndNotReturned(ctx, l.Book.ID)
	if err != nil {
		return nil, fmt.Errorf("check outstanding loan: %w", err)
	}
	if loaned {
		log.Printf("loan: rejected book_id=%s customer=%q, book already loaned", l.Book.ID, l.Customer)
		return nil, ErrBookAlreadyLoaned
	}
	if err := s.repo.Save(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// GetByID returns the loan with the given id. found is false when there is
// no such loan.
func (s *Service) GetByID(ctx context.Context, id string) (Loan, bool, error) {
	l, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return Loan{}, false, nil
	}
	if err != nil {
		return Loan{}, false, err
	}
	return l, true, nil
}

// Update overwrites a persisted loan, typically to mark it returned.
func (s *Service) Update(ctx context.Context, l *Loan) (*Loan, error) {
	if l == nil || l.IsNew() {
		return nil, ErrInvalidArgument
	}
	if err := s.repo.Save(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Find returns loans whose book ISBN or customer matches the filter.
func (s *Service) Find(ctx context.Context, f Filter, p page.Request) (page.Page[Loan], error) {
	loans, total, err := s.repo.FindByBookISBNOrCustomer(ctx, f, p)
	if err != nil {
		return page.Page[Loan]{}, err
	}
	return page.New(loans, p, total), nil
}

// GetLoanByBook returns every loan, past and outstanding, of the book.
func (s *Service) GetLoanByBook(ctx context.Context, b book.Book, p page.Request) (page.Page[Loan], error) {
	loans, total, err := s.repo.FindByBook(ctx, b.ID, p)
	if err != nil {
		return page.Page[Loan]{}, err
	}
	return page.New(loans, p, total), nil
}

// Overdue lists outstanding loans whose loan date is before cutoff.
func (s *Service) Overdue(ctx context.Context, cutoff time.Time) ([]Loan, error) {
	return s.repo.FindByLoanDateBeforeAndNotReturned(ctx, Date(cutoff))
}

// LateLoans lists outstanding loans older than the loan period, as of now.
func (s *Service) LateLoans(ctx context.Context, now time.Time) ([]Loan, error) {
	return s.Overdue(ctx, s.Cutoff(now))
}

// Cutoff is the first loan date that is not yet late as of now.
func (s *Service) Cutoff(now time.Time) time.Time {
	return Date(now).AddDate(0, 0, -s.loanPeriodDays)
}
