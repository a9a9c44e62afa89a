package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/makrochain/loan-service/internal/domain/valueobject"
)

// Repayment is one immutable entry in a loan's append-only repayment ledger.
// The sum of a loan's entries equals its amountPaid. Sequence is assigned by
// the store and is strictly increasing per loan.
type Repayment struct {
	id          string
	loanID      string
	amount      decimal.Decimal
	paymentDate time.Time
	notes       string
	sequence    int64
	createdAt   time.Time
}

// NewRepayment creates a ledger entry for a settled payment. The amount is the
// full submitted amount, even when the loan clamps an overpayment.
func NewRepayment(loanID string, amount decimal.Decimal, paymentDate time.Time, notes string, now time.Time) (Repayment, error) {
	if loanID == "" {
		return Repayment{}, valueobject.NewValidationError("loanId", "is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return Repayment{}, valueobject.NewValidationError("amount", "must be positive")
	}

	return Repayment{
		id:          uuid.New().String(),
		loanID:      loanID,
		amount:      amount,
		paymentDate: paymentDate,
		notes:       notes,
		createdAt:   now,
	}, nil
}

// ReconstructRepayment rebuilds a ledger entry from persistence.
func ReconstructRepayment(id, loanID string, amount decimal.Decimal, paymentDate time.Time, notes string, sequence int64, createdAt time.Time) Repayment {
	return Repayment{
		id:          id,
		loanID:      loanID,
		amount:      amount,
		paymentDate: paymentDate,
		notes:       notes,
		sequence:    sequence,
		createdAt:   createdAt,
	}
}

func (r Repayment) ID() string                { return r.id }
func (r Repayment) LoanID() string            { return r.loanID }
func (r Repayment) Amount() decimal.Decimal   { return r.amount }
func (r Repayment) PaymentDate() time.Time    { return r.paymentDate }
func (r Repayment) Notes() string             { return r.notes }
func (r Repayment) Sequence() int64           { return r.sequence }
func (r Repayment) CreatedAt() time.Time      { return r.createdAt }
