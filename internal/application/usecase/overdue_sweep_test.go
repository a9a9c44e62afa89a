package usecase_test

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makrochain/loan-service/internal/application/usecase"
	"github.com/makrochain/loan-service/internal/domain/model"
	"github.com/makrochain/loan-service/internal/domain/valueobject"
)

// pastDueActiveLoan builds an ACTIVE loan whose due date is long past, so the
// sweep always sees it as a candidate regardless of wall time.
func pastDueActiveLoan(t *testing.T) model.Loan {
	t.Helper()
	issued := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	due := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
	loan, err := model.NewLoan("farmer-1",
		decimal.NewFromInt(1000), decimal.NewFromInt(10),
		6, model.FrequencyMonthly, model.LoanTypeSeasonal,
		"USD", issued, due, issued)
	require.NoError(t, err)
	loan, err = loan.Approve("approver-1", issued)
	require.NoError(t, err)
	loan, err = loan.Disburse(issued)
	require.NoError(t, err)
	return loan.ClearEvents()
}

// futureDueActiveLoan builds an ACTIVE loan that is nowhere near due.
func futureDueActiveLoan(t *testing.T) model.Loan {
	t.Helper()
	issued := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	due := time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)
	loan, err := model.NewLoan("farmer-2",
		decimal.NewFromInt(500), decimal.NewFromInt(5),
		12, model.FrequencyQuarterly, model.LoanTypeEquipment,
		"USD", issued, due, issued)
	require.NoError(t, err)
	loan, err = loan.Approve("approver-1", issued)
	require.NoError(t, err)
	loan, err = loan.Disburse(issued)
	require.NoError(t, err)
	return loan.ClearEvents()
}

func TestOverdueSweep_Execute(t *testing.T) {
	logger := slog.Default()

	t.Run("transitions past-due active loans", func(t *testing.T) {
		repo := newMemoryLoanRepo()
		pastDue1 := pastDueActiveLoan(t)
		pastDue2 := pastDueActiveLoan(t)
		current := futureDueActiveLoan(t)
		repo.put(pastDue1)
		repo.put(pastDue2)
		repo.put(current)

		publisher := &mockEventPublisher{}
		uc := usecase.NewOverdueSweepUseCase(repo, publisher, newLocks(), logger, 0)

		result, err := uc.Execute(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 2, result.Transitioned)
		assert.Equal(t, 0, result.Failed)

		for _, id := range []string{pastDue1.ID(), pastDue2.ID()} {
			loan, err := repo.FindByID(context.Background(), id)
			require.NoError(t, err)
			assert.True(t, loan.Status().Equal(valueobject.LoanStatusOverdue))
		}
		assert.Contains(t, publisher.eventTypes(), "loan.overdue")
	})

	t.Run("is idempotent", func(t *testing.T) {
		repo := newMemoryLoanRepo()
		repo.put(pastDueActiveLoan(t))

		publisher := &mockEventPublisher{}
		uc := usecase.NewOverdueSweepUseCase(repo, publisher, newLocks(), logger, 0)

		first, err := uc.Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, first.Transitioned)

		second, err := uc.Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, second.Scanned)
		assert.Equal(t, 0, second.Transitioned)
	})

	t.Run("a loan repaid between the scan and the lock is skipped silently", func(t *testing.T) {
		candidate := pastDueActiveLoan(t)
		repaid, err := candidate.ApplyPayment(decimal.NewFromInt(1100), time.Now().UTC())
		require.NoError(t, err)

		loanRepo := &mockLoanRepository{
			findActivePastDueIDsFunc: func(_ context.Context, _ time.Time, _ int) ([]string, error) {
				return []string{candidate.ID()}, nil
			},
			findByIDFunc: func(_ context.Context, _ string) (model.Loan, error) {
				// The candidate query was stale; by lock time the loan is REPAID.
				return repaid.ClearEvents(), nil
			},
		}
		publisher := &mockEventPublisher{}
		uc := usecase.NewOverdueSweepUseCase(loanRepo, publisher, newLocks(), logger, 0)

		result, err := uc.Execute(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, result.Scanned)
		assert.Equal(t, 0, result.Transitioned)
		assert.Equal(t, 0, result.Failed)
		assert.Empty(t, loanRepo.savedLoans)
	})

	t.Run("counts persistence failures without aborting the batch", func(t *testing.T) {
		bad := pastDueActiveLoan(t)
		good := pastDueActiveLoan(t)

		repo := newMemoryLoanRepo()
		repo.put(bad)
		repo.put(good)

		failing := &failingSaveRepo{memoryLoanRepo: repo, failID: bad.ID()}
		publisher := &mockEventPublisher{}
		uc := usecase.NewOverdueSweepUseCase(failing, publisher, newLocks(), logger, 0)

		result, err := uc.Execute(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 2, result.Scanned)
		assert.Equal(t, 1, result.Transitioned)
		assert.Equal(t, 1, result.Failed)
	})

	t.Run("stops at the batch limit", func(t *testing.T) {
		repo := newMemoryLoanRepo()
		for i := 0; i < 5; i++ {
			repo.put(pastDueActiveLoan(t))
		}

		publisher := &mockEventPublisher{}
		uc := usecase.NewOverdueSweepUseCase(repo, publisher, newLocks(), logger, 3)

		result, err := uc.Execute(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 3, result.Scanned)
		assert.Equal(t, 3, result.Transitioned)
	})

	t.Run("cancellation returns the partial result", func(t *testing.T) {
		repo := newMemoryLoanRepo()
		repo.put(pastDueActiveLoan(t))
		repo.put(pastDueActiveLoan(t))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		publisher := &mockEventPublisher{}
		uc := usecase.NewOverdueSweepUseCase(repo, publisher, newLocks(), logger, 0)

		result, err := uc.Execute(ctx)

		// The candidate query itself may fail under a cancelled context with
		// a real store; the in-memory one returns candidates, so the loop's
		// cancellation check fires before the first transition.
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, result.Transitioned)
	})
}

// failingSaveRepo wraps the in-memory repo and fails saves for one loan id.
type failingSaveRepo struct {
	*memoryLoanRepo
	failID string
}

func (r *failingSaveRepo) Save(ctx context.Context, loan model.Loan) error {
	if loan.ID() == r.failID {
		return fmt.Errorf("write failed for %s", loan.ID())
	}
	return r.memoryLoanRepo.Save(ctx, loan)
}
