package book

import (
	"context"

	"libraryapi/internal/page"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

// Repository defines the contract for book data storage.
type Repository interface {
	// Save inserts a new book, assigning its ID, or overwrites the book with
	// the same ID.
	Save(ctx context.Context, b *Book) error
	FindByID(ctx context.Context, id string) (Book, error)
	FindByISBN(ctx context.Context, isbn string) (Book, error)
	ExistsByISBN(ctx context.Context, isbn string) (bool, error)
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, f Filter, p page.Request) ([]Book, int, error)
}
