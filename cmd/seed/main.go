package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"libraryapi/internal/book"
	"libraryapi/internal/config"
	"libraryapi/internal/loan"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	var (
		bookCount = flag.Int("books", 200, "Number of books to create")
		loanCount = flag.Int("loans", 50, "Number of loans to open")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	books := book.NewService(book.NewPostgresRepo(pool, cfg.DBTimeout))
	loans := loan.NewService(loan.NewPostgresRepo(pool, cfg.DBTimeout), cfg.LoanPeriodDays)

	s := seeder{books: books, loans: loans, rnd: rand.New(rand.NewSource(time.Now().UnixNano())), now: time.Now}
	result, err := s.run(ctx, *bookCount, *loanCount)
	if err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	log.Printf("seed done books=%d skipped_books=%d loans=%d skipped_loans=%d",
		result.books, result.skippedBooks, result.loans, result.skippedLoans)
}

type seedResult struct {
	books        int
	skippedBooks int
	loans        int
	skippedLoans int
}

type seeder struct {
	books *book.Service
	loans *loan.Service
	rnd   *rand.Rand
	now   func() time.Time
}

// run creates bookCount books with ISBNs 978-00000001.. and opens loans on
// the first loanCount of them. Rerunning skips whatever already exists.
func (s seeder) run(ctx context.Context, bookCount, loanCount int) (seedResult, error) {
	var res seedResult
	var saved []book.Book

	for i := 0; i < bookCount; i++ {
		isbn := fmt.Sprintf("978-%08d", i+1)
		b, err := s.books.Save(ctx, &book.Book{
			Title:  fmt.Sprintf("Book Title %d - %s", i+1, s.word()),
			Author: authors[s.rnd.Intn(len(authors))],
			ISBN:   isbn,
		})
		if errors.Is(err, book.ErrDuplicateISBN) {
			res.skippedBooks++
			existing, found, err := s.books.GetByISBN(ctx, isbn)
			if err != nil {
				return res, err
			}
			if found {
				saved = append(saved, existing)
			}
			continue
		}
		if err != nil {
			return res, fmt.Errorf("book %s: %w", isbn, err)
		}
		saved = append(saved, *b)
		res.books++

		if (i+1)%100 == 0 {
			log.Printf("Generated %d/%d books", i+1, bookCount)
		}
	}

	today := loan.Date(s.now())
	for i := 0; i < loanCount && i < len(saved); i++ {
		// Spread loan dates over the last two weeks so some are late.
		_, err := s.loans.Save(ctx, &loan.Loan{
			Book:     saved[i],
			Customer: customers[s.rnd.Intn(len(customers))],
			LoanDate: today.AddDate(0, 0, -s.rnd.Intn(14)),
		})
		if errors.Is(err, loan.ErrBookAlreadyLoaned) {
			res.skippedLoans++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("loan for %s: %w", saved[i].ISBN, err)
		}
		res.loans++
	}
	return res, nil
}

var authors = []string{
	"Machado de Assis", "Clarice Lispector", "Jorge Amado", "Cecilia Meireles",
	"Graciliano Ramos", "Rachel de Queiroz", "Erico Verissimo", "Lygia Fagundes Telles",
}

var customers = []string{"Fulano", "Ciclano", "Beltrano", "Maria", "Jose", "Ana", "Joao", "Paula"}

func (s seeder) word() string {
	words := []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Love", "War", "Peace", "Science", "Nature", "Technology", "History", "Future",
		"Past", "Present", "Reality", "Imagination", "Wisdom", "Life", "Death",
		"Light", "Darkness", "World", "Universe", "Time", "Space", "Mind", "Soul",
	}
	return words[s.rnd.Intn(len(words))]
}
