package memstore_test

import (
	"context"
	"testing"
	"time"

	"libraryapi/internal/book"
	"libraryapi/internal/loan"
	"libraryapi/internal/memstore"
	"libraryapi/internal/page"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServices() (*book.Service, *loan.Service) {
	store := memstore.New()
	return book.NewService(store.Books()), loan.NewService(store.Loans(), loan.DefaultLoanPeriodDays)
}

func TestScenario_DuplicateISBN(t *testing.T) {
	books, _ := newServices()
	ctx := context.Background()

	saved, err := books.Save(ctx, &book.Book{ISBN: "001", Title: "As aventuras", Author: "Artur"})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	_, err = books.Save(ctx, &book.Book{ISBN: "001", Title: "As aventuras", Author: "Artur"})
	assert.ErrorIs(t, err, book.ErrDuplicateISBN)
}

func TestScenario_LoanReturnLoanAgain(t *testing.T) {
	books, loans := newServices()
	ctx := context.Background()
	today := loan.Date(time.Now())

	b, err := books.Save(ctx, &book.Book{ISBN: "001", Title: "As aventuras", Author: "Artur"})
	require.NoError(t, err)

	first, err := loans.Save(ctx, &loan.Loan{Book: *b, Customer: "Fulano", LoanDate: today})
	require.NoError(t, err)

	_, err = loans.Save(ctx, &loan.Loan{Book: *b, Customer: "Ciclano", LoanDate: today})
	assert.ErrorIs(t, err, loan.ErrBookAlreadyLoaned)

	returned := true
	first.Returned = &returned
	_, err = loans.Update(ctx, first)
	require.NoError(t, err)

	third, err := loans.Save(ctx, &loan.Loan{Book: *b, Customer: "Ciclano", LoanDate: today})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)

	history, err := loans.GetLoanByBook(ctx, *b, page.Request{Number: 0, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, history.TotalElements)
}

func TestScenario_Overdue(t *testing.T) {
	books, loans := newServices()
	ctx := context.Background()
	today := loan.Date(time.Now())

	old, err := books.Save(ctx, &book.Book{ISBN: "001", Title: "As aventuras", Author: "Artur"})
	require.NoError(t, err)
	fresh, err := books.Save(ctx, &book.Book{ISBN: "002", Title: "Memorias", Author: "Machado"})
	require.NoError(t, err)

	late, err := loans.Save(ctx, &loan.Loan{Book: *old, Customer: "Fulano", LoanDate: today.AddDate(0, 0, -5)})
	require.NoError(t, err)
	_, err = loans.Save(ctx, &loan.Loan{Book: *fresh, Customer: "Ciclano", LoanDate: today})
	require.NoError(t, err)

	overdue, err := loans.Overdue(ctx, today.AddDate(0, 0, -4))
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, late.ID, overdue[0].ID)

	viaPeriod, err := loans.LateLoans(ctx, time.Now())
	require.NoError(t, err)
	assert.Len(t, viaPeriod, 1)
}

func TestScenario_FindBooks(t *testing.T) {
	books, _ := newServices()
	ctx := context.Background()
	_, err := books.Save(ctx, &book.Book{ISBN: "001", Title: "Aventuras", Author: "Artur"})
	require.NoError(t, err)

	title := "aven"
	result, err := books.Find(ctx, book.Filter{Title: &title}, page.Request{Number: 0, Size: 10})

	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalElements)
	assert.Equal(t, 0, result.PageNumber)
	assert.Equal(t, 10, result.PageSize)
}
