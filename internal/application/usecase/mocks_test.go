package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/makrochain/loan-service/internal/domain/event"
	"github.com/makrochain/loan-service/internal/domain/model"
	"github.com/makrochain/loan-service/internal/domain/port"
	"github.com/makrochain/loan-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Function-field mocks
// ---------------------------------------------------------------------------

type mockLoanRepository struct {
	mu sync.Mutex

	findByIDFunc             func(ctx context.Context, id string) (model.Loan, error)
	saveFunc                 func(ctx context.Context, loan model.Loan) error
	saveWithRepaymentFunc    func(ctx context.Context, loan model.Loan, entry model.Repayment) error
	searchFunc               func(ctx context.Context, filter port.LoanSearchFilter) ([]model.Loan, error)
	findActivePastDueIDsFunc func(ctx context.Context, asOf time.Time, limit int) ([]string, error)

	savedLoans      []model.Loan
	savedRepayments []model.Repayment
}

func (m *mockLoanRepository) Save(ctx context.Context, loan model.Loan) error {
	if m.saveFunc != nil {
		if err := m.saveFunc(ctx, loan); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.savedLoans = append(m.savedLoans, loan)
	m.mu.Unlock()
	return nil
}

func (m *mockLoanRepository) SaveWithRepayment(ctx context.Context, loan model.Loan, entry model.Repayment) error {
	if m.saveWithRepaymentFunc != nil {
		if err := m.saveWithRepaymentFunc(ctx, loan, entry); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.savedLoans = append(m.savedLoans, loan)
	m.savedRepayments = append(m.savedRepayments, entry)
	m.mu.Unlock()
	return nil
}

func (m *mockLoanRepository) FindByID(ctx context.Context, id string) (model.Loan, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Loan{}, valueobject.ErrNotFound
}

func (m *mockLoanRepository) Search(ctx context.Context, filter port.LoanSearchFilter) ([]model.Loan, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockLoanRepository) FindActivePastDueIDs(ctx context.Context, asOf time.Time, limit int) ([]string, error) {
	if m.findActivePastDueIDsFunc != nil {
		return m.findActivePastDueIDsFunc(ctx, asOf, limit)
	}
	return nil, nil
}

type mockRepaymentRepository struct {
	listByLoanIDFunc func(ctx context.Context, loanID string) ([]model.Repayment, error)
}

func (m *mockRepaymentRepository) ListByLoanID(ctx context.Context, loanID string) ([]model.Repayment, error) {
	if m.listByLoanIDFunc != nil {
		return m.listByLoanIDFunc(ctx, loanID)
	}
	return nil, nil
}

type mockHarvestRepository struct {
	mu sync.Mutex

	findByIDFunc func(ctx context.Context, id string) (model.Harvest, error)
	saveFunc     func(ctx context.Context, h model.Harvest) error

	savedHarvests []model.Harvest
}

func (m *mockHarvestRepository) Save(ctx context.Context, h model.Harvest) error {
	if m.saveFunc != nil {
		if err := m.saveFunc(ctx, h); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.savedHarvests = append(m.savedHarvests, h)
	m.mu.Unlock()
	return nil
}

func (m *mockHarvestRepository) FindByID(ctx context.Context, id string) (model.Harvest, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Harvest{}, valueobject.ErrNotFound
}

func (m *mockHarvestRepository) FindByFarmerID(context.Context, string) ([]model.Harvest, error) {
	return nil, nil
}

type mockTokenRepository struct {
	mu sync.Mutex

	findByIDFunc func(ctx context.Context, id string) (model.Token, error)

	savedTokens []model.Token
}

func (m *mockTokenRepository) Save(_ context.Context, t model.Token) error {
	m.mu.Lock()
	m.savedTokens = append(m.savedTokens, t)
	m.mu.Unlock()
	return nil
}

func (m *mockTokenRepository) FindByID(ctx context.Context, id string) (model.Token, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Token{}, valueobject.ErrNotFound
}

func (m *mockTokenRepository) FindByHarvestID(context.Context, string) (model.Token, error) {
	return model.Token{}, valueobject.ErrNotFound
}

type mockEventPublisher struct {
	mu sync.Mutex

	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	if m.publishFunc != nil {
		if err := m.publishFunc(ctx, events...); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.publishedEvents = append(m.publishedEvents, events...)
	m.mu.Unlock()
	return nil
}

func (m *mockEventPublisher) eventTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, 0, len(m.publishedEvents))
	for _, evt := range m.publishedEvents {
		types = append(types, evt.EventType())
	}
	return types
}

// ---------------------------------------------------------------------------
// In-memory loan store for sweep and concurrency tests
// ---------------------------------------------------------------------------

// memoryLoanRepo is a thread-safe LoanRepository that behaves like the real
// store: reads return current state and writes replace it whole.
type memoryLoanRepo struct {
	mu         sync.Mutex
	loans      map[string]model.Loan
	repayments map[string][]model.Repayment
}

func newMemoryLoanRepo() *memoryLoanRepo {
	return &memoryLoanRepo{
		loans:      make(map[string]model.Loan),
		repayments: make(map[string][]model.Repayment),
	}
}

func (r *memoryLoanRepo) put(loan model.Loan) {
	r.mu.Lock()
	r.loans[loan.ID()] = loan.ClearEvents()
	r.mu.Unlock()
}

func (r *memoryLoanRepo) Save(_ context.Context, loan model.Loan) error {
	r.put(loan)
	return nil
}

func (r *memoryLoanRepo) SaveWithRepayment(_ context.Context, loan model.Loan, entry model.Repayment) error {
	r.mu.Lock()
	r.loans[loan.ID()] = loan.ClearEvents()
	r.repayments[loan.ID()] = append(r.repayments[loan.ID()], entry)
	r.mu.Unlock()
	return nil
}

func (r *memoryLoanRepo) FindByID(_ context.Context, id string) (model.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	loan, ok := r.loans[id]
	if !ok {
		return model.Loan{}, valueobject.ErrNotFound
	}
	return loan, nil
}

func (r *memoryLoanRepo) Search(_ context.Context, _ port.LoanSearchFilter) ([]model.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Loan, 0, len(r.loans))
	for _, loan := range r.loans {
		out = append(out, loan)
	}
	return out, nil
}

func (r *memoryLoanRepo) FindActivePastDueIDs(_ context.Context, asOf time.Time, limit int) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for id, loan := range r.loans {
		if loan.Status().Equal(valueobject.LoanStatusActive) && loan.IsPastDue(asOf) {
			ids = append(ids, id)
			if len(ids) == limit {
				break
			}
		}
	}
	return ids, nil
}

func (r *memoryLoanRepo) repaymentCount(loanID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.repayments[loanID])
}

// ---------------------------------------------------------------------------
// Aggregate fixtures
// ---------------------------------------------------------------------------

var (
	fixtureIssued = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	fixtureDue    = time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
)

// activeTestLoan builds an ACTIVE loan of 1000 at 10% simple interest, so the
// total owed is 1100.
func activeTestLoan(t *testing.T) model.Loan {
	t.Helper()
	loan, err := model.NewLoan("farmer-1",
		decimal.NewFromInt(1000), decimal.NewFromInt(10),
		6, model.FrequencyMonthly, model.LoanTypeSeasonal,
		"USD", fixtureIssued, fixtureDue, fixtureIssued)
	require.NoError(t, err)
	loan, err = loan.Approve("approver-1", fixtureIssued)
	require.NoError(t, err)
	loan, err = loan.Disburse(fixtureIssued)
	require.NoError(t, err)
	return loan.ClearEvents()
}

func pendingTestLoan(t *testing.T) model.Loan {
	t.Helper()
	loan, err := model.NewLoan("farmer-1",
		decimal.NewFromInt(1000), decimal.NewFromInt(10),
		6, model.FrequencyMonthly, model.LoanTypeSeasonal,
		"USD", fixtureIssued, fixtureDue, fixtureIssued)
	require.NoError(t, err)
	return loan.ClearEvents()
}
