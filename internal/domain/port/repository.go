package port

import (
	"context"
	"time"

	"github.com/makrochain/loan-service/internal/domain/event"
	"github.com/makrochain/loan-service/internal/domain/model"
	"github.com/makrochain/loan-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// LoanSearchFilter narrows and pages a loan search. A zero filter matches
// everything, newest first.
type LoanSearchFilter struct {
	FarmerID string
	Status   *valueobject.LoanStatus
	LoanType string
	Limit    int
	Offset   int
}

// LoanRepository persists and retrieves loans and their repayment ledger.
// Save and SaveWithRepayment must reject stale writes with
// valueobject.ErrVersionConflict when the stored version differs from the
// aggregate's.
type LoanRepository interface {
	Save(ctx context.Context, loan model.Loan) error

	// SaveWithRepayment persists the updated loan fields and appends the
	// ledger entry as a single atomic unit.
	SaveWithRepayment(ctx context.Context, loan model.Loan, entry model.Repayment) error

	FindByID(ctx context.Context, id string) (model.Loan, error)
	Search(ctx context.Context, filter LoanSearchFilter) ([]model.Loan, error)

	// FindActivePastDueIDs returns ids of loans with status ACTIVE and a due
	// date before asOf, bounded by limit. Used by the overdue sweep.
	FindActivePastDueIDs(ctx context.Context, asOf time.Time, limit int) ([]string, error)
}

// RepaymentRepository reads the append-only repayment ledger. Entries are
// written only through LoanRepository.SaveWithRepayment.
type RepaymentRepository interface {
	ListByLoanID(ctx context.Context, loanID string) ([]model.Repayment, error)
}

// HarvestRepository persists and retrieves harvests.
type HarvestRepository interface {
	Save(ctx context.Context, h model.Harvest) error
	FindByID(ctx context.Context, id string) (model.Harvest, error)
	FindByFarmerID(ctx context.Context, farmerID string) ([]model.Harvest, error)
}

// TokenRepository persists and retrieves harvest tokens.
type TokenRepository interface {
	Save(ctx context.Context, t model.Token) error
	FindByID(ctx context.Context, id string) (model.Token, error)
	FindByHarvestID(ctx context.Context, harvestID string) (model.Token, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}
