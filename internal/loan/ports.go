package loan

import (
	"context"
	"time"

	"libraryapi/internal/page"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=loan

// Repository defines the contract for loan data storage.
type Repository interface {
	// Save inserts a new loan, assigning its ID, or overwrites the loan with
	// the same ID.
	Save(ctx context.Context, l *Loan) error
	FindByID(ctx context.Context, id string) (Loan, error)
	// ExistsByBookAndNotReturned reports whether the book has a loan whose
	// Returned flag is nil or false.
	ExistsByBookAndNotReturned(ctx context.Context, bookID string) (bool, error)
	FindByBookISBNOrCustomer(ctx context.Context, f Filter, p page.Request) ([]Loan, int, error)
	FindByBook(ctx context.Context, bookID string, p page.Request) ([]Loan, int, error)
	// FindByLoanDateBeforeAndNotReturned lists outstanding loans started
	// strictly before cutoff.
	FindByLoanDateBeforeAndNotReturned(ctx context.Context, cutoff time.Time) ([]Loan, error)
}
