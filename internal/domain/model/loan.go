package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/makrochain/loan-service/internal/domain/event"
	"github.com/makrochain/loan-service/internal/domain/valueobject"
	"github.com/makrochain/loan-service/pkg/money"
)

// RepaymentFrequency enumerates how often repayments are expected.
type RepaymentFrequency string

const (
	FrequencyWeekly    RepaymentFrequency = "WEEKLY"
	FrequencyMonthly   RepaymentFrequency = "MONTHLY"
	FrequencyQuarterly RepaymentFrequency = "QUARTERLY"
	FrequencyLumpSum   RepaymentFrequency = "LUMP_SUM"
)

var validFrequencies = map[RepaymentFrequency]bool{
	FrequencyWeekly:    true,
	FrequencyMonthly:   true,
	FrequencyQuarterly: true,
	FrequencyLumpSum:   true,
}

// LoanType enumerates the credit products offered to farmers.
type LoanType string

const (
	LoanTypeSeasonal  LoanType = "SEASONAL"
	LoanTypeEquipment LoanType = "EQUIPMENT"
	LoanTypeInput     LoanType = "INPUT_FINANCING"
	LoanTypeStorage   LoanType = "STORAGE"
)

var validLoanTypes = map[LoanType]bool{
	LoanTypeSeasonal:  true,
	LoanTypeEquipment: true,
	LoanTypeInput:     true,
	LoanTypeStorage:   true,
}

// ---------------------------------------------------------------------------
// Loan aggregate root
// ---------------------------------------------------------------------------

// Loan is an immutable aggregate. Mutations return a new copy; the pure
// transition methods never touch persistence. Terms are fixed at creation,
// only lifecycle fields change afterwards.
type Loan struct {
	id                 string
	farmerID           string
	principal          decimal.Decimal
	interestRate       decimal.Decimal // simple interest, percent
	termMonths         int
	repaymentFrequency RepaymentFrequency
	loanType           LoanType
	currency           string
	issuedDate         time.Time
	dueDate            time.Time

	status           valueobject.LoanStatus
	approvedBy       string
	approvedAt       *time.Time
	disbursedAt      *time.Time
	rejectionReason  string
	lastPaymentAt    *time.Time
	amountPaid       decimal.Decimal
	remainingBalance decimal.Decimal

	version      int
	createdAt    time.Time
	updatedAt    time.Time
	domainEvents []event.DomainEvent
}

// NewLoan creates a loan application in PENDING status. The remaining balance
// starts at the total repayment amount: principal plus simple, non-compounding
// interest, rounded once to cents.
func NewLoan(
	farmerID string,
	principal, interestRate decimal.Decimal,
	termMonths int,
	frequency RepaymentFrequency,
	loanType LoanType,
	currency string,
	issuedDate, dueDate time.Time,
	now time.Time,
) (Loan, error) {
	if farmerID == "" {
		return Loan{}, valueobject.NewValidationError("farmerId", "is required")
	}
	if principal.LessThanOrEqual(decimal.Zero) {
		return Loan{}, valueobject.NewValidationError("principal", "must be positive")
	}
	if interestRate.IsNegative() {
		return Loan{}, valueobject.NewValidationError("interestRate", "must not be negative")
	}
	if termMonths <= 0 {
		return Loan{}, valueobject.NewValidationError("durationMonths", "must be positive")
	}
	if !validFrequencies[frequency] {
		return Loan{}, valueobject.NewValidationError("repaymentFrequency", "unknown value")
	}
	if !validLoanTypes[loanType] {
		return Loan{}, valueobject.NewValidationError("loanType", "unknown value")
	}
	if currency == "" {
		return Loan{}, valueobject.NewValidationError("currency", "is required")
	}
	if dueDate.Before(issuedDate) {
		return Loan{}, valueobject.NewValidationError("dueDate", "must not precede issuedDate")
	}

	id := uuid.New().String()
	total := totalRepayment(principal, interestRate)

	loan := Loan{
		id:                 id,
		farmerID:           farmerID,
		principal:          principal,
		interestRate:       interestRate,
		termMonths:         termMonths,
		repaymentFrequency: frequency,
		loanType:           loanType,
		currency:           currency,
		issuedDate:         issuedDate,
		dueDate:            dueDate,
		status:             valueobject.LoanStatusPending,
		amountPaid:         decimal.Zero,
		remainingBalance:   total,
		version:            1,
		createdAt:          now,
		updatedAt:          now,
	}

	loan.domainEvents = append(loan.domainEvents, event.NewLoanCreated(
		id, farmerID, principal, interestRate, currency, termMonths, dueDate,
	))

	return loan, nil
}

// ReconstructLoan rebuilds a Loan aggregate from persistence.
func ReconstructLoan(
	id, farmerID string,
	principal, interestRate decimal.Decimal,
	termMonths int,
	frequency RepaymentFrequency,
	loanType LoanType,
	currency string,
	issuedDate, dueDate time.Time,
	status valueobject.LoanStatus,
	approvedBy string,
	approvedAt, disbursedAt *time.Time,
	rejectionReason string,
	lastPaymentAt *time.Time,
	amountPaid, remainingBalance decimal.Decimal,
	version int,
	createdAt, updatedAt time.Time,
) Loan {
	return Loan{
		id:                 id,
		farmerID:           farmerID,
		principal:          principal,
		interestRate:       interestRate,
		termMonths:         termMonths,
		repaymentFrequency: frequency,
		loanType:           loanType,
		currency:           currency,
		issuedDate:         issuedDate,
		dueDate:            dueDate,
		status:             status,
		approvedBy:         approvedBy,
		approvedAt:         approvedAt,
		disbursedAt:        disbursedAt,
		rejectionReason:    rejectionReason,
		lastPaymentAt:      lastPaymentAt,
		amountPaid:         amountPaid,
		remainingBalance:   remainingBalance,
		version:            version,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// totalRepayment computes principal * (1 + rate/100), rounded once.
func totalRepayment(principal, rate decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(rate.Div(decimal.NewFromInt(100)))
	return money.Round(principal.Mul(factor))
}

// TotalRepaymentAmount is the ledger's repayment target: principal plus
// simple interest.
func (l Loan) TotalRepaymentAmount() decimal.Decimal {
	return totalRepayment(l.principal, l.interestRate)
}

// ---------------------------------------------------------------------------
// State transitions
// ---------------------------------------------------------------------------

// Approve transitions PENDING -> APPROVED, recording who approved and when.
func (l Loan) Approve(approverID string, approvedAt time.Time) (Loan, error) {
	if approverID == "" {
		return l, valueobject.NewValidationError("approverId", "is required")
	}
	if !l.status.Equal(valueobject.LoanStatusPending) {
		return l, valueobject.NewInvalidTransition(l.status, "approve")
	}

	next := l
	next.status = valueobject.LoanStatusApproved
	next.approvedBy = approverID
	at := approvedAt
	next.approvedAt = &at
	next.updatedAt = approvedAt
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanApproved(l.id, approverID, approvedAt))
	return next, nil
}

// Reject transitions PENDING -> REJECTED with a mandatory reason.
func (l Loan) Reject(reason string, now time.Time) (Loan, error) {
	if reason == "" {
		return l, valueobject.NewValidationError("rejectionReason", "is required")
	}
	if !l.status.Equal(valueobject.LoanStatusPending) {
		return l, valueobject.NewInvalidTransition(l.status, "reject")
	}

	next := l
	next.status = valueobject.LoanStatusRejected
	next.rejectionReason = reason
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanRejected(l.id, reason))
	return next, nil
}

// Cancel transitions PENDING or APPROVED -> CANCELLED.
func (l Loan) Cancel(now time.Time) (Loan, error) {
	if !l.status.CanTransitionTo(valueobject.LoanStatusCancelled) {
		return l, valueobject.NewInvalidTransition(l.status, "cancel")
	}

	next := l
	next.status = valueobject.LoanStatusCancelled
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanCancelled(l.id))
	return next, nil
}

// Disburse transitions APPROVED -> ACTIVE, recording the disbursement date.
func (l Loan) Disburse(disbursedAt time.Time) (Loan, error) {
	if !l.status.Equal(valueobject.LoanStatusApproved) {
		return l, valueobject.NewInvalidTransition(l.status, "disburse")
	}

	next := l
	next.status = valueobject.LoanStatusActive
	at := disbursedAt
	next.disbursedAt = &at
	next.updatedAt = disbursedAt
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanDisbursed(
		l.id, l.farmerID, l.principal, l.currency, disbursedAt,
	))
	return next, nil
}

// ApplyPayment applies a settled payment against the running balance. The
// loan must be ACTIVE or OVERDUE. Overpayment is clamped to a zero balance:
// the ledger still records the full submitted amount for audit, and the
// excess is not refunded here. When the balance reaches zero the loan
// transitions to REPAID.
func (l Loan) ApplyPayment(amount decimal.Decimal, paymentDate time.Time) (Loan, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return l, valueobject.NewValidationError("amount", "must be positive")
	}
	if !l.status.Equal(valueobject.LoanStatusActive) && !l.status.Equal(valueobject.LoanStatusOverdue) {
		return l, valueobject.NewInvalidTransition(l.status, "record a payment on")
	}

	total := l.TotalRepaymentAmount()
	newPaid := money.Round(l.amountPaid.Add(amount))
	newRemaining := total.Sub(newPaid)
	if newRemaining.IsNegative() {
		newRemaining = decimal.Zero
	}

	next := l
	next.amountPaid = newPaid
	next.remainingBalance = newRemaining
	at := paymentDate
	next.lastPaymentAt = &at
	next.updatedAt = paymentDate
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewPaymentRecorded(
		l.id, amount, l.currency, newPaid, newRemaining, paymentDate,
	))

	if newRemaining.IsZero() {
		next.status = valueobject.LoanStatusRepaid
		next.domainEvents = append(next.domainEvents, event.NewLoanRepaid(l.id))
	}

	return next, nil
}

// MarkOverdue transitions ACTIVE -> OVERDUE. Only legal once the due date has
// passed with an outstanding balance; the sweep and interactive callers go
// through the same check.
func (l Loan) MarkOverdue(now time.Time) (Loan, error) {
	if !l.status.Equal(valueobject.LoanStatusActive) {
		return l, valueobject.NewInvalidTransition(l.status, "mark overdue")
	}
	if !now.After(l.dueDate) || !l.remainingBalance.IsPositive() {
		return l, valueobject.NewInvalidTransition(l.status, "mark overdue")
	}

	next := l
	next.status = valueobject.LoanStatusOverdue
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanOverdue(l.id, l.dueDate, l.remainingBalance))
	return next, nil
}

// MarkDefaulted transitions OVERDUE -> DEFAULTED on an operator decision.
func (l Loan) MarkDefaulted(now time.Time) (Loan, error) {
	if !l.status.Equal(valueobject.LoanStatusOverdue) {
		return l, valueobject.NewInvalidTransition(l.status, "mark default")
	}

	next := l
	next.status = valueobject.LoanStatusDefaulted
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanDefaulted(l.id, l.remainingBalance))
	return next, nil
}

// Restructure transitions ACTIVE or OVERDUE -> RESTRUCTURED. The record keeps
// the renegotiated due date and rate for audit; a successor loan carries the
// new obligation.
func (l Loan) Restructure(newDueDate time.Time, newRate decimal.Decimal, now time.Time) (Loan, error) {
	if newRate.IsNegative() {
		return l, valueobject.NewValidationError("interestRate", "must not be negative")
	}
	if newDueDate.Before(l.issuedDate) {
		return l, valueobject.NewValidationError("dueDate", "must not precede issuedDate")
	}
	if !l.status.CanTransitionTo(valueobject.LoanStatusRestructured) {
		return l, valueobject.NewInvalidTransition(l.status, "restructure")
	}

	next := l
	next.status = valueobject.LoanStatusRestructured
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanRestructured(l.id, newDueDate, newRate))
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (l Loan) ID() string                             { return l.id }
func (l Loan) FarmerID() string                       { return l.farmerID }
func (l Loan) Principal() decimal.Decimal             { return l.principal }
func (l Loan) InterestRate() decimal.Decimal          { return l.interestRate }
func (l Loan) TermMonths() int                        { return l.termMonths }
func (l Loan) RepaymentFrequency() RepaymentFrequency { return l.repaymentFrequency }
func (l Loan) LoanType() LoanType                     { return l.loanType }
func (l Loan) Currency() string                       { return l.currency }
func (l Loan) IssuedDate() time.Time                  { return l.issuedDate }
func (l Loan) DueDate() time.Time                     { return l.dueDate }
func (l Loan) Status() valueobject.LoanStatus         { return l.status }
func (l Loan) ApprovedBy() string                     { return l.approvedBy }
func (l Loan) ApprovedAt() *time.Time                 { return l.approvedAt }
func (l Loan) DisbursedAt() *time.Time                { return l.disbursedAt }
func (l Loan) RejectionReason() string                { return l.rejectionReason }
func (l Loan) LastPaymentAt() *time.Time              { return l.lastPaymentAt }
func (l Loan) AmountPaid() decimal.Decimal            { return l.amountPaid }
func (l Loan) RemainingBalance() decimal.Decimal      { return l.remainingBalance }
func (l Loan) Version() int                           { return l.version }
func (l Loan) CreatedAt() time.Time                   { return l.createdAt }
func (l Loan) UpdatedAt() time.Time                   { return l.updatedAt }
func (l Loan) DomainEvents() []event.DomainEvent      { return l.domainEvents }

// IsPastDue reports whether the loan is beyond its due date with money owed.
func (l Loan) IsPastDue(now time.Time) bool {
	return now.After(l.dueDate) && l.remainingBalance.IsPositive()
}

// ClearEvents returns a copy with an empty event list.
func (l Loan) ClearEvents() Loan {
	next := l
	next.domainEvents = nil
	return next
}

func copyEvents(evts []event.DomainEvent) []event.DomainEvent {
	if evts == nil {
		return nil
	}
	out := make([]event.DomainEvent, len(evts))
	copy(out, evts)
	return out
}
