package loan

import (
	"errors"
	"time"

	"libraryapi/internal/book"
)

var (
	// ErrNotFound is returned by repositories when a loan is not found.
	ErrNotFound = errors.New("loan not found")

	// ErrBookAlreadyLoaned is returned when the book still has an outstanding loan.
	ErrBookAlreadyLoaned = errors.New("book already loaned")

	// ErrInvalidArgument is returned for a nil loan, and when an update
	// targets a loan that has never been persisted.
	ErrInvalidArgument = errors.New("loan is missing or has no id")
)

// Loan records a customer borrowing one book from LoanDate until Returned
// becomes true. A nil Returned means the outcome is not known yet and counts
// as outstanding.
type Loan struct {
	ID       string    `json:"id"`
	Book     book.Book `json:"book"`
	Customer string    `json:"customer"`
	LoanDate time.Time `json:"loan_date"`
	Returned *bool     `json:"returned"`
}

func (l *Loan) IsNew() bool {
	return l.ID == ""
}

// IsOutstanding reports whether the loan still holds its book.
func (l *Loan) IsOutstanding() bool {
	return l.Returned == nil || !*l.Returned
}

// Filter selects loans whose book ISBN or customer equals the given value.
// Empty fields are not part of the match; an empty filter matches every loan.
type Filter struct {
	ISBN     string
	Customer string
}

// Date truncates t to midnight UTC of its calendar day.
func Date(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
