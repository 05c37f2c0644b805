package loan_test

import (
	"context"
	"testing"
	"time"

	"libraryapi/internal/book"
	"libraryapi/internal/loan"
	"libraryapi/internal/page"
	"libraryapi/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresRepo(t *testing.T) {
	pool := testutil.PostgresPool(t)
	books := book.NewPostgresRepo(pool, 2*time.Second)
	repo := loan.NewPostgresRepo(pool, 2*time.Second)
	ctx := context.Background()
	today := loan.Date(time.Now())

	b1 := &book.Book{Title: "A", Author: "X", ISBN: "001"}
	b2 := &book.Book{Title: "B", Author: "Y", ISBN: "002"}
	require.NoError(t, books.Save(ctx, b1))
	require.NoError(t, books.Save(ctx, b2))

	late := &loan.Loan{Book: *b1, Customer: "Fulano", LoanDate: today.AddDate(0, 0, -5)}
	require.NoError(t, repo.Save(ctx, late))
	require.NotEmpty(t, late.ID)
	require.NoError(t, repo.Save(ctx, &loan.Loan{Book: *b2, Customer: "Ciclano", LoanDate: today}))

	t.Run("one outstanding loan per book", func(t *testing.T) {
		loaned, err := repo.ExistsByBookAndNotReturned(ctx, b1.ID)
		require.NoError(t, err)
		assert.True(t, loaned)

		err = repo.Save(ctx, &loan.Loan{Book: *b1, Customer: "Beltrano", LoanDate: today})
		assert.ErrorIs(t, err, loan.ErrBookAlreadyLoaned)
	})

	t.Run("find by isbn or customer", func(t *testing.T) {
		loans, total, err := repo.FindByBookISBNOrCustomer(ctx, loan.Filter{ISBN: "001", Customer: "Ciclano"}, page.Request{Number: 0, Size: 10})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Equal(t, "Ciclano", loans[0].Customer)
		assert.Equal(t, "002", loans[0].Book.ISBN)
	})

	t.Run("overdue", func(t *testing.T) {
		overdue, err := repo.FindByLoanDateBeforeAndNotReturned(ctx, today.AddDate(0, 0, -4))
		require.NoError(t, err)
		require.Len(t, overdue, 1)
		assert.Equal(t, late.ID, overdue[0].ID)
	})

	t.Run("return frees the book", func(t *testing.T) {
		returned := true
		late.Returned = &returned
		require.NoError(t, repo.Save(ctx, late))

		got, err := repo.FindByID(ctx, late.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Returned)
		assert.True(t, *got.Returned)

		require.NoError(t, repo.Save(ctx, &loan.Loan{Book: *b1, Customer: "Beltrano", LoanDate: today}))

		history, total, err := repo.FindByBook(ctx, b1.ID, page.Request{Number: 0, Size: 10})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Len(t, history, 2)
	})
}
