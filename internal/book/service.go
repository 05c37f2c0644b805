package book

import (
	"context"
	"errors"
	"fmt"
	"log"

	"libraryapi/internal/page"
)

// Service provides book catalog business logic.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Save registers a new book. The ISBN must not be used by any other book;
// the comparison is exact.
func (s *Service) Save(ctx context.Context, b *Book) (*Book, error) {
	if b == nil {
		return nil, ErrInvalidArgument
	}
	exists, err := s.repo.ExistsByISBN(ctx, b.ISBN)
	if err != nil {
		return nil, fmt.Errorf("check isbn: %w", err)
	}
	if exists {
		log.Printf("book: rejected duplicate isbn=%q", b.ISBN)
		return nil, ErrDuplicateISBN
	}
	if err := s.repo.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// GetByID returns the book with the given id. found is false when there is
// no such book.
func (s *Service) GetByID(ctx context.Context, id string) (b Book, found bool, err error) {
	return lookup(s.repo.FindByID(ctx, id))
}

// GetByISBN returns the book carrying exactly the given ISBN.
func (s *Service) GetByISBN(ctx context.Context, isbn string) (Book, bool, error) {
	return lookup(s.repo.FindByISBN(ctx, isbn))
}

// Update overwrites a persisted book.
func (s *Service) Update(ctx context.Context, b *Book) (*Book, error) {
	if b == nil || b.IsNew() {
		return nil, ErrInvalidArgument
	}
	if err := s.repo.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Delete removes a persisted book.
func (s *Service) Delete(ctx context.Context, b *Book) error {
	if b == nil || b.IsNew() {
		return ErrInvalidArgument
	}
	return s.repo.Delete(ctx, b.ID)
}

// Find returns the page of books matching the filter.
func (s *Service) Find(ctx context.Context, f Filter, p page.Request) (page.Page[Book], error) {
	books, total, err := s.repo.Find(ctx, f, p)
	if err != nil {
		return page.Page[Book]{}, err
	}
	return page.New(books, p, total), nil
}

func lookup(b Book, err error) (Book, bool, error) {
	if errors.Is(err, ErrNotFound) {
		return Book{}, false, nil
	}
	if err != nil {
		return Book{}, false, err
	}
	return b, true, nil
}
