package main

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"libraryapi/internal/book"
	"libraryapi/internal/loan"
	"libraryapi/internal/memstore"
	"libraryapi/internal/page"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeeder_Run(t *testing.T) {
	store := memstore.New()
	s := seeder{
		books: book.NewService(store.Books()),
		loans: loan.NewService(store.Loans(), 0),
		rnd:   rand.New(rand.NewSource(1)),
		now:   func() time.Time { return time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC) },
	}
	ctx := context.Background()

	res, err := s.run(ctx, 5, 3)
	require.NoError(t, err)
	assert.Equal(t, seedResult{books: 5, loans: 3}, res)

	again, err := s.run(ctx, 5, 3)
	require.NoError(t, err)
	assert.Equal(t, seedResult{skippedBooks: 5, skippedLoans: 3}, again)

	_, total, err := store.Loans().FindByBookISBNOrCustomer(ctx, loan.Filter{}, page.Request{Number: 0, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}
