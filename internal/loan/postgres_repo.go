package loan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"libraryapi/internal/page"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

var dialect = goqu.Dialect("postgres")

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// selectLoans joins every loan with its book.
func selectLoans() *goqu.SelectDataset {
	return dialect.
		From(goqu.T("loans").As("l")).
		Join(goqu.T("books").As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("l.book_id")))).
		Select(
			"l.id", "l.customer", "l.loan_date", "l.returned",
			"b.id", "b.title", "b.author", "b.isbn", "b.created_at", "b.updated_at",
		)
}

func notReturned(column string) exp.Expression {
	return goqu.I(column).IsNotTrue()
}

func (r *PostgresRepo) Save(ctx context.Context, l *Loan) error {
	var returned interface{}
	if l.Returned != nil {
		returned = *l.Returned
	}
	record := goqu.Record{
		"book_id":   l.Book.ID,
		"customer":  l.Customer,
		"loan_date": Date(l.LoanDate),
		"returned":  returned,
	}

	ds := dialect.Insert("loans")
	if l.IsNew() {
		ds = ds.Rows(record)
	} else {
		record["id"] = l.ID
		ds = ds.Rows(record).OnConflict(goqu.DoUpdate("id", goqu.Record{
			"book_id":    goqu.I("excluded.book_id"),
			"customer":   goqu.I("excluded.customer"),
			"loan_date":  goqu.I("excluded.loan_date"),
			"returned":   goqu.I("excluded.returned"),
			"updated_at": goqu.L("NOW()"),
		}))
	}
	query, args, err := ds.Returning("id").Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("build save loan: %w", err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, query, args...).Scan(&l.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrBookAlreadyLoaned
		}
		return fmt.Errorf("save loan: %w", err)
	}
	return nil
}

func (r *PostgresRepo) FindByID(ctx context.Context, id string) (Loan, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Loan{}, ErrNotFound
	}
	query, args, err := selectLoans().Where(goqu.I("l.id").Eq(id)).Limit(1).Prepared(true).ToSQL()
	if err != nil {
		return Loan{}, fmt.Errorf("build find loan: %w", err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	l, err := scanLoan(r.db.QueryRow(timeoutCtx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Loan{}, ErrNotFound
		}
		return Loan{}, err
	}
	return l, nil
}

func (r *PostgresRepo) ExistsByBookAndNotReturned(ctx context.Context, bookID string) (bool, error) {
	if _, err := uuid.Parse(bookID); err != nil {
		return false, nil
	}
	query, args, err := dialect.From("loans").
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.C("book_id").Eq(bookID), notReturned("returned")).
		Prepared(true).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build outstanding loan check: %w", err)
	}

	var n int
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, query, args...).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresRepo) FindByBookISBNOrCustomer(ctx context.Context, f Filter, p page.Request) ([]Loan, int, error) {
	var conds []exp.Expression
	if f.ISBN != "" {
		conds = append(conds, goqu.I("b.isbn").Eq(f.ISBN))
	}
	if f.Customer != "" {
		conds = append(conds, goqu.I("l.customer").Eq(f.Customer))
	}

	ds := selectLoans()
	if len(conds) > 0 {
		ds = ds.Where(goqu.Or(conds...))
	}
	return r.findPage(ctx, ds, p)
}

func (r *PostgresRepo) FindByBook(ctx context.Context, bookID string, p page.Request) ([]Loan, int, error) {
	if _, err := uuid.Parse(bookID); err != nil {
		return nil, 0, nil
	}
	return r.findPage(ctx, selectLoans().Where(goqu.I("l.book_id").Eq(bookID)), p)
}

func (r *PostgresRepo) FindByLoanDateBeforeAndNotReturned(ctx context.Context, cutoff time.Time) ([]Loan, error) {
	query, args, err := selectLoans().
		Where(goqu.I("l.loan_date").Lt(Date(cutoff)), notReturned("l.returned")).
		Order(goqu.I("l.loan_date").Asc(), goqu.I("l.id").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build overdue loans: %w", err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.queryLoans(timeoutCtx, query, args)
}

func (r *PostgresRepo) findPage(ctx context.Context, ds *goqu.SelectDataset, p page.Request) ([]Loan, int, error) {
	countSQL, countArgs, err := ds.ClearSelect().Select(goqu.COUNT(goqu.Star())).Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build loan count: %w", err)
	}
	dataSQL, dataArgs, err := ds.
		Order(goqu.I("l.loan_date").Desc(), goqu.I("l.id").Asc()).
		Limit(uint(p.Size)).
		Offset(uint(p.Offset())).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build loan page: %w", err)
	}

	var total int
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	timeoutCtx2, cancel2 := r.withTimeout(ctx)
	defer cancel2()
	loans, err := r.queryLoans(timeoutCtx2, dataSQL, dataArgs)
	if err != nil {
		return nil, 0, err
	}
	return loans, total, nil
}

func (r *PostgresRepo) queryLoans(ctx context.Context, query string, args []interface{}) ([]Loan, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func scanLoan(row pgx.Row) (Loan, error) {
	var l Loan
	err := row.Scan(
		&l.ID, &l.Customer, &l.LoanDate, &l.Returned,
		&l.Book.ID, &l.Book.Title, &l.Book.Author, &l.Book.ISBN, &l.Book.CreatedAt, &l.Book.UpdatedAt,
	)
	return l, err
}
