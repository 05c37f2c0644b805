package book

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"libraryapi/internal/page"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

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

func (r *PostgresRepo) Save(ctx context.Context, b *Book) error {
	const insertSQL = `
		INSERT INTO books (title, author, isbn, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	const upsertSQL = `
		INSERT INTO books (id, title, author, isbn, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			author = EXCLUDED.author,
			isbn = EXCLUDED.isbn,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var row pgx.Row
	if b.IsNew() {
		row = r.db.QueryRow(timeoutCtx, insertSQL, b.Title, b.Author, b.ISBN)
	} else {
		row = r.db.QueryRow(timeoutCtx, upsertSQL, b.ID, b.Title, b.Author, b.ISBN)
	}
	if err := row.Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateISBN
		}
		return fmt.Errorf("save book: %w", err)
	}
	return nil
}

func (r *PostgresRepo) FindByID(ctx context.Context, id string) (Book, error) {
	const query = `
		SELECT id, title, author, isbn, created_at, updated_at
		FROM books
		WHERE id = $1
		LIMIT 1
	`
	if _, err := uuid.Parse(id); err != nil {
		return Book{}, ErrNotFound
	}
	return r.findOne(ctx, query, id)
}

func (r *PostgresRepo) FindByISBN(ctx context.Context, isbn string) (Book, error) {
	const query = `
		SELECT id, title, author, isbn, created_at, updated_at
		FROM books
		WHERE isbn = $1
		LIMIT 1
	`
	return r.findOne(ctx, query, isbn)
}

func (r *PostgresRepo) findOne(ctx context.Context, query string, arg any) (Book, error) {
	var b Book
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, arg).Scan(
		&b.ID, &b.Title, &b.Author, &b.ISBN, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM books WHERE isbn = $1)`
	var exists bool
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, query, isbn).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if _, err := r.db.Exec(timeoutCtx, `DELETE FROM books WHERE id = $1`, id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return ErrHasLoans
		}
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}

func (r *PostgresRepo) Find(ctx context.Context, f Filter, p page.Request) ([]Book, int, error) {
	clauses := []string{"1=1"}
	args := []any{}
	argn := 1

	for _, c := range []struct {
		column string
		value  *string
	}{
		{"title", f.Title},
		{"author", f.Author},
		{"isbn", f.ISBN},
	} {
		if c.value == nil {
			continue
		}
		clauses = append(clauses, fmt.Sprintf("%s ILIKE $%d", c.column, argn))
		args = append(args, "%"+escapeLike(*c.value)+"%")
		argn++
	}

	where := "WHERE " + strings.Join(clauses, " AND ")

	countSQL := fmt.Sprintf("SELECT COUNT(*) FROM books %s", where)
	var total int
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := fmt.Sprintf(`
		SELECT id, title, author, isbn, created_at, updated_at
		FROM books
		%s
		ORDER BY title ASC, id ASC
		LIMIT $%d OFFSET $%d`,
		where, argn, argn+1)

	argsWithPage := append([]any{}, args...)
	argsWithPage = append(argsWithPage, p.Size, p.Offset())
	timeoutCtx2, cancel2 := r.withTimeout(ctx)
	defer cancel2()
	rows, err := r.db.Query(timeoutCtx2, dataSQL, argsWithPage...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	return out, total, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
