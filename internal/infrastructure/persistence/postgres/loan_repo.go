package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/makrochain/loan-service/internal/domain/model"
	"github.com/makrochain/loan-service/internal/domain/port"
	"github.com/makrochain/loan-service/internal/domain/valueobject"
	pkgpostgres "github.com/makrochain/loan-service/pkg/postgres"
)

// scannable covers pgx.Row and pgx.Rows.
type scannable interface {
	Scan(dest ...any) error
}

const loanColumns = `
	id, farmer_id, principal, interest_rate, term_months,
	repayment_frequency, loan_type, currency, issued_date, due_date,
	status, approved_by, approved_at, disbursed_at, rejection_reason,
	last_payment_at, amount_paid, remaining_balance,
	version, created_at, updated_at`

// LoanRepo implements port.LoanRepository on PostgreSQL. Writes carry an
// optimistic version guard as a backstop beneath the service-level per-loan
// lock; a stale write affects zero rows and surfaces as ErrVersionConflict.
type LoanRepo struct {
	pool *pgxpool.Pool
}

// NewLoanRepo creates a new PostgreSQL-backed loan repository.
func NewLoanRepo(pool *pgxpool.Pool) *LoanRepo {
	return &LoanRepo{pool: pool}
}

const loanUpsert = `
	INSERT INTO loans (
		id, farmer_id, principal, interest_rate, term_months,
		repayment_frequency, loan_type, currency, issued_date, due_date,
		status, approved_by, approved_at, disbursed_at, rejection_reason,
		last_payment_at, amount_paid, remaining_balance,
		version, created_at, updated_at
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
	ON CONFLICT (id) DO UPDATE SET
		status           = EXCLUDED.status,
		approved_by      = EXCLUDED.approved_by,
		approved_at      = EXCLUDED.approved_at,
		disbursed_at     = EXCLUDED.disbursed_at,
		rejection_reason = EXCLUDED.rejection_reason,
		last_payment_at  = EXCLUDED.last_payment_at,
		amount_paid      = EXCLUDED.amount_paid,
		remaining_balance = EXCLUDED.remaining_balance,
		version          = loans.version + 1,
		updated_at       = EXCLUDED.updated_at
	WHERE loans.version = $19
`

// Save persists a loan.
func (r *LoanRepo) Save(ctx context.Context, loan model.Loan) error {
	tag, err := r.pool.Exec(ctx, loanUpsert, loanArgs(loan)...)
	if err != nil {
		return mapError("save loan", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("save loan %s: %w", loan.ID(), valueobject.ErrVersionConflict)
	}
	return nil
}

// SaveWithRepayment persists the updated loan fields and appends the ledger
// entry in a single transaction. Either both land or neither does.
func (r *LoanRepo) SaveWithRepayment(ctx context.Context, loan model.Loan, entry model.Repayment) error {
	err := pkgpostgres.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, loanUpsert, loanArgs(loan)...)
		if err != nil {
			return fmt.Errorf("update loan: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("update loan %s: %w", loan.ID(), valueobject.ErrVersionConflict)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO repayments (id, loan_id, amount, payment_date, notes, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, entry.ID(), entry.LoanID(), entry.Amount(), entry.PaymentDate(), entry.Notes(), entry.CreatedAt())
		if err != nil {
			return fmt.Errorf("append repayment: %w", err)
		}
		return nil
	})
	if err != nil {
		return mapError("save loan with repayment", err)
	}
	return nil
}

// FindByID retrieves a loan by ID.
func (r *LoanRepo) FindByID(ctx context.Context, id string) (model.Loan, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+loanColumns+` FROM loans WHERE id = $1`, id)
	loan, err := scanLoanRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Loan{}, fmt.Errorf("loan %s: %w", id, valueobject.ErrNotFound)
		}
		return model.Loan{}, mapError("find loan", err)
	}
	return loan, nil
}

// Search retrieves loans matching the filter, newest first.
func (r *LoanRepo) Search(ctx context.Context, filter port.LoanSearchFilter) ([]model.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans`
	var (
		where []string
		args  []any
	)
	if filter.FarmerID != "" {
		args = append(args, filter.FarmerID)
		where = append(where, "farmer_id = $"+strconv.Itoa(len(args)))
	}
	if filter.Status != nil {
		args = append(args, filter.Status.String())
		where = append(where, "status = $"+strconv.Itoa(len(args)))
	}
	if filter.LoanType != "" {
		args = append(args, filter.LoanType)
		where = append(where, "loan_type = $"+strconv.Itoa(len(args)))
	}
	for i, cond := range where {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += " LIMIT $" + strconv.Itoa(len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += " OFFSET $" + strconv.Itoa(len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError("search loans", err)
	}
	defer rows.Close()

	var loans []model.Loan
	for rows.Next() {
		loan, err := scanLoanRow(rows)
		if err != nil {
			return nil, mapError("search loans", err)
		}
		loans = append(loans, loan)
	}
	return loans, rows.Err()
}

// FindActivePastDueIDs returns ids of ACTIVE loans whose due date has passed,
// bounded by limit. Candidates only; the sweep re-checks state under the lock.
func (r *LoanRepo) FindActivePastDueIDs(ctx context.Context, asOf time.Time, limit int) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id FROM loans
		WHERE status = $1 AND due_date < $2
		ORDER BY due_date
		LIMIT $3
	`, valueobject.LoanStatusActive.String(), asOf, limit)
	if err != nil {
		return nil, mapError("find past-due loans", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, mapError("scan past-due loan id", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ---------------------------------------------------------------------------
// internal helpers
// ---------------------------------------------------------------------------

func loanArgs(loan model.Loan) []any {
	return []any{
		loan.ID(), loan.FarmerID(), loan.Principal(), loan.InterestRate(), loan.TermMonths(),
		string(loan.RepaymentFrequency()), string(loan.LoanType()), loan.Currency(),
		loan.IssuedDate(), loan.DueDate(),
		loan.Status().String(), loan.ApprovedBy(), loan.ApprovedAt(), loan.DisbursedAt(),
		loan.RejectionReason(), loan.LastPaymentAt(), loan.AmountPaid(), loan.RemainingBalance(),
		loan.Version(), loan.CreatedAt(), loan.UpdatedAt(),
	}
}

func scanLoanRow(s scannable) (model.Loan, error) {
	var (
		id, farmerID                string
		principal, interestRate     decimal.Decimal
		termMonths                  int
		frequency, loanType         string
		currency                    string
		issuedDate, dueDate         time.Time
		statusStr, approvedBy       string
		approvedAt, disbursedAt     *time.Time
		rejectionReason             string
		lastPaymentAt               *time.Time
		amountPaid, remaining       decimal.Decimal
		version                     int
		createdAt, updatedAt        time.Time
	)

	err := s.Scan(
		&id, &farmerID, &principal, &interestRate, &termMonths,
		&frequency, &loanType, &currency, &issuedDate, &dueDate,
		&statusStr, &approvedBy, &approvedAt, &disbursedAt, &rejectionReason,
		&lastPaymentAt, &amountPaid, &remaining,
		&version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.Loan{}, err
	}

	status, err := valueobject.NewLoanStatus(statusStr)
	if err != nil {
		return model.Loan{}, fmt.Errorf("parse loan status: %w", err)
	}

	return model.ReconstructLoan(
		id, farmerID,
		principal, interestRate,
		termMonths,
		model.RepaymentFrequency(frequency),
		model.LoanType(loanType),
		currency,
		issuedDate, dueDate,
		status,
		approvedBy,
		approvedAt, disbursedAt,
		rejectionReason,
		lastPaymentAt,
		amountPaid, remaining,
		version,
		createdAt, updatedAt,
	), nil
}

// mapError translates driver-level failures into the domain taxonomy: lock
// waits that exceed lock_timeout become ErrBusy, everything else stays a
// persistence failure with context attached.
func mapError(op string, err error) error {
	if pkgpostgres.IsLockTimeout(err) {
		return fmt.Errorf("%s: %w", op, valueobject.ErrBusy)
	}
	return fmt.Errorf("%s: %w", op, err)
}
