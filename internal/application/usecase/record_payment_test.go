package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makrochain/loan-service/internal/application/dto"
	"github.com/makrochain/loan-service/internal/application/usecase"
	"github.com/makrochain/loan-service/internal/domain/model"
	"github.com/makrochain/loan-service/internal/domain/valueobject"
	"github.com/makrochain/loan-service/pkg/keyedmutex"
)

func newLocks() *keyedmutex.KeyedMutex {
	return keyedmutex.New(time.Second)
}

func TestRecordPayment_Execute(t *testing.T) {
	t.Run("applies a partial payment", func(t *testing.T) {
		loan := activeTestLoan(t)
		loanRepo := &mockLoanRepository{
			findByIDFunc: func(_ context.Context, _ string) (model.Loan, error) {
				return loan, nil
			},
		}
		publisher := &mockEventPublisher{}

		uc := usecase.NewRecordPaymentUseCase(loanRepo, publisher, newLocks())

		resp, err := uc.Execute(context.Background(), dto.RecordPaymentRequest{
			LoanID: loan.ID(),
			Amount: decimal.NewFromInt(400),
		})

		require.NoError(t, err)
		assert.Equal(t, loan.ID(), resp.LoanID)
		assert.True(t, decimal.NewFromInt(400).Equal(resp.Amount))
		assert.True(t, decimal.NewFromInt(400).Equal(resp.AmountPaid))
		assert.True(t, decimal.NewFromInt(700).Equal(resp.RemainingBalance),
			"1100 owed minus 400 paid should leave 700, got %s", resp.RemainingBalance)
		assert.Equal(t, "ACTIVE", resp.Status)

		require.Len(t, loanRepo.savedLoans, 1)
		require.Len(t, loanRepo.savedRepayments, 1)
		assert.True(t, loanRepo.savedRepayments[0].Amount().Equal(decimal.NewFromInt(400)))
		assert.Contains(t, publisher.eventTypes(), "loan.payment_recorded")
	})

	t.Run("full payoff transitions to repaid", func(t *testing.T) {
		loan := activeTestLoan(t)
		loanRepo := &mockLoanRepository{
			findByIDFunc: func(_ context.Context, _ string) (model.Loan, error) {
				return loan, nil
			},
		}
		publisher := &mockEventPublisher{}

		uc := usecase.NewRecordPaymentUseCase(loanRepo, publisher, newLocks())

		resp, err := uc.Execute(context.Background(), dto.RecordPaymentRequest{
			LoanID: loan.ID(),
			Amount: decimal.NewFromInt(1100),
		})

		require.NoError(t, err)
		assert.Equal(t, "REPAID", resp.Status)
		assert.True(t, resp.RemainingBalance.IsZero())
		assert.Contains(t, publisher.eventTypes(), "loan.repaid")
	})

	t.Run("overpayment clamps the balance and keeps the full amount in the ledger", func(t *testing.T) {
		loan := activeTestLoan(t)
		loanRepo := &mockLoanRepository{
			findByIDFunc: func(_ context.Context, _ string) (model.Loan, error) {
				return loan, nil
			},
		}
		publisher := &mockEventPublisher{}

		uc := usecase.NewRecordPaymentUseCase(loanRepo, publisher, newLocks())

		resp, err := uc.Execute(context.Background(), dto.RecordPaymentRequest{
			LoanID: loan.ID(),
			Amount: decimal.NewFromInt(2000),
		})

		require.NoError(t, err)
		assert.True(t, resp.RemainingBalance.IsZero())
		assert.True(t, decimal.NewFromInt(2000).Equal(resp.AmountPaid))
		assert.Equal(t, "REPAID", resp.Status)

		require.Len(t, loanRepo.savedRepayments, 1)
		assert.True(t, loanRepo.savedRepayments[0].Amount().Equal(decimal.NewFromInt(2000)))
	})

	t.Run("rejects payment on a pending loan without touching the ledger", func(t *testing.T) {
		loan := pendingTestLoan(t)
		loanRepo := &mockLoanRepository{
			findByIDFunc: func(_ context.Context, _ string) (model.Loan, error) {
				return loan, nil
			},
		}
		publisher := &mockEventPublisher{}

		uc := usecase.NewRecordPaymentUseCase(loanRepo, publisher, newLocks())

		_, err := uc.Execute(context.Background(), dto.RecordPaymentRequest{
			LoanID: loan.ID(),
			Amount: decimal.NewFromInt(100),
		})

		require.Error(t, err)
		var transitionErr *valueobject.InvalidTransitionError
		assert.ErrorAs(t, err, &transitionErr)
		assert.Empty(t, loanRepo.savedLoans)
		assert.Empty(t, loanRepo.savedRepayments)
		assert.Empty(t, publisher.publishedEvents)
	})

	t.Run("validates input before taking the lock", func(t *testing.T) {
		loanRepo := &mockLoanRepository{}
		publisher := &mockEventPublisher{}
		uc := usecase.NewRecordPaymentUseCase(loanRepo, publisher, newLocks())

		_, err := uc.Execute(context.Background(), dto.RecordPaymentRequest{
			LoanID: "",
			Amount: decimal.NewFromInt(100),
		})
		var validationErr *valueobject.ValidationError
		assert.ErrorAs(t, err, &validationErr)

		_, err = uc.Execute(context.Background(), dto.RecordPaymentRequest{
			LoanID: "loan-1",
			Amount: decimal.Zero,
		})
		assert.ErrorAs(t, err, &validationErr)

		_, err = uc.Execute(context.Background(), dto.RecordPaymentRequest{
			LoanID: "loan-1",
			Amount: decimal.NewFromInt(-5),
		})
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("fails when loan not found", func(t *testing.T) {
		loanRepo := &mockLoanRepository{}
		publisher := &mockEventPublisher{}
		uc := usecase.NewRecordPaymentUseCase(loanRepo, publisher, newLocks())

		_, err := uc.Execute(context.Background(), dto.RecordPaymentRequest{
			LoanID: "missing",
			Amount: decimal.NewFromInt(100),
		})
		assert.ErrorIs(t, err, valueobject.ErrNotFound)
	})

	t.Run("reports busy when the loan is locked", func(t *testing.T) {
		loan := activeTestLoan(t)
		loanRepo := &mockLoanRepository{
			findByIDFunc: func(_ context.Context, _ string) (model.Loan, error) {
				return loan, nil
			},
		}
		publisher := &mockEventPublisher{}

		locks := keyedmutex.New(20 * time.Millisecond)
		require.NoError(t, locks.Acquire(context.Background(), loan.ID()))
		defer locks.Release(loan.ID())

		uc := usecase.NewRecordPaymentUseCase(loanRepo, publisher, locks)

		_, err := uc.Execute(context.Background(), dto.RecordPaymentRequest{
			LoanID: loan.ID(),
			Amount: decimal.NewFromInt(100),
		})

		assert.ErrorIs(t, err, valueobject.ErrBusy)
		assert.Empty(t, loanRepo.savedLoans)
	})
}
