package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/makrochain/loan-service/internal/domain/model"
)

// RepaymentRepo reads the append-only repayment ledger. Entries are inserted
// only inside LoanRepo.SaveWithRepayment; this repo never writes.
type RepaymentRepo struct {
	pool *pgxpool.Pool
}

// NewRepaymentRepo creates a new PostgreSQL-backed repayment reader.
func NewRepaymentRepo(pool *pgxpool.Pool) *RepaymentRepo {
	return &RepaymentRepo{pool: pool}
}

// ListByLoanID returns a loan's ledger entries in insertion order.
func (r *RepaymentRepo) ListByLoanID(ctx context.Context, loanID string) ([]model.Repayment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, loan_id, amount, payment_date, notes, sequence, created_at
		FROM repayments
		WHERE loan_id = $1
		ORDER BY sequence
	`, loanID)
	if err != nil {
		return nil, mapError("list repayments", err)
	}
	defer rows.Close()

	var entries []model.Repayment
	for rows.Next() {
		var (
			id, lID, notes string
			amount         decimal.Decimal
			paymentDate    time.Time
			sequence       int64
			createdAt      time.Time
		)
		if err := rows.Scan(&id, &lID, &amount, &paymentDate, &notes, &sequence, &createdAt); err != nil {
			return nil, mapError("scan repayment", err)
		}
		entries = append(entries, model.ReconstructRepayment(id, lID, amount, paymentDate, notes, sequence, createdAt))
	}
	return entries, rows.Err()
}
