package book

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by repositories when a book is not found.
	ErrNotFound = errors.New("book not found")

	// ErrDuplicateISBN is returned when another book already carries the ISBN.
	ErrDuplicateISBN = errors.New("isbn already registered")

	// ErrHasLoans is returned when deleting a book that loans still refer to.
	ErrHasLoans = errors.New("book has loans")

	// ErrInvalidArgument is returned for a nil book, and when an update or
	// delete targets a book that has never been persisted.
	ErrInvalidArgument = errors.New("book is missing or has no id")
)

// Book represents a catalog entry.
type Book struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	ISBN      string    `json:"isbn"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsNew reports whether the book has not been saved yet.
func (b *Book) IsNew() bool {
	return b.ID == ""
}

// Filter narrows a catalog search. Every non-nil field must be a
// case-insensitive substring of the matching book field; nil fields match all.
type Filter struct {
	Title  *string
	Author *string
	ISBN   *string
}

func (f Filter) IsEmpty() bool {
	return f.Title == nil && f.Author == nil && f.ISBN == nil
}
