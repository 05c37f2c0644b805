package loan

import (
	"context"
	"log"
	"time"
)

// LateLoanLister is the part of Service the reporter needs.
type LateLoanLister interface {
	LateLoans(ctx context.Context, now time.Time) ([]Loan, error)
}

// OverdueReporter periodically logs every loan that is past its loan period.
type OverdueReporter struct {
	loans    LateLoanLister
	interval time.Duration
	now      func() time.Time
}

func NewOverdueReporter(loans LateLoanLister, interval time.Duration) *OverdueReporter {
	return &OverdueReporter{loans: loans, interval: interval, now: time.Now}
}

// Run reports once per interval until ctx is cancelled.
func (r *OverdueReporter) Run(ctx context.Context) {
	if r.interval <= 0 {
		return
	}
	log.Printf("overdue: reporter started interval=%s", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Printf("overdue: reporter stopped")
			return
		case <-ticker.C:
			if _, err := r.Report(ctx); err != nil {
				log.Printf("overdue: report failed: %v", err)
			}
		}
	}
}

// Report logs one line per late loan and returns how many there were.
func (r *OverdueReporter) Report(ctx context.Context) (int, error) {
	now := r.now()
	late, err := r.loans.LateLoans(ctx, now)
	if err != nil {
		return 0, err
	}
	today := Date(now)
	for _, l := range late {
		days := int(today.Sub(Date(l.LoanDate)).Hours() / 24)
		log.Printf("overdue: loan_id=%s customer=%q isbn=%q title=%q days=%d",
			l.ID, l.Customer, l.Book.ISBN, l.Book.Title, days)
	}
	if len(late) > 0 {
		log.Printf("overdue: %d late loans", len(late))
	}
	return len(late), nil
}
