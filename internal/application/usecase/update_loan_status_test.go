package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makrochain/loan-service/internal/application/dto"
	"github.com/makrochain/loan-service/internal/application/usecase"
	"github.com/makrochain/loan-service/internal/domain/model"
	"github.com/makrochain/loan-service/internal/domain/valueobject"
)

func newUpdateStatusUC(loan model.Loan) (*usecase.UpdateLoanStatusUseCase, *mockLoanRepository, *mockEventPublisher) {
	loanRepo := &mockLoanRepository{
		findByIDFunc: func(_ context.Context, _ string) (model.Loan, error) {
			return loan, nil
		},
	}
	publisher := &mockEventPublisher{}
	return usecase.NewUpdateLoanStatusUseCase(loanRepo, publisher, newLocks()), loanRepo, publisher
}

func TestUpdateLoanStatus_Execute(t *testing.T) {
	t.Run("approves a pending loan", func(t *testing.T) {
		loan := pendingTestLoan(t)
		uc, loanRepo, publisher := newUpdateStatusUC(loan)

		resp, err := uc.Execute(context.Background(), dto.UpdateLoanStatusRequest{
			LoanID:     loan.ID(),
			Status:     "APPROVED",
			ApproverID: "approver-9",
		})

		require.NoError(t, err)
		assert.Equal(t, "APPROVED", resp.Status)
		assert.Equal(t, "approver-9", resp.ApprovedBy)
		require.Len(t, loanRepo.savedLoans, 1)
		assert.Contains(t, publisher.eventTypes(), "loan.approved")
	})

	t.Run("approval requires an approver", func(t *testing.T) {
		loan := pendingTestLoan(t)
		uc, loanRepo, _ := newUpdateStatusUC(loan)

		_, err := uc.Execute(context.Background(), dto.UpdateLoanStatusRequest{
			LoanID: loan.ID(),
			Status: "APPROVED",
		})

		require.Error(t, err)
		var validationErr *valueobject.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Empty(t, loanRepo.savedLoans)
	})

	t.Run("rejection requires a reason", func(t *testing.T) {
		loan := pendingTestLoan(t)
		uc, loanRepo, publisher := newUpdateStatusUC(loan)

		_, err := uc.Execute(context.Background(), dto.UpdateLoanStatusRequest{
			LoanID: loan.ID(),
			Status: "REJECTED",
		})

		require.Error(t, err)
		var validationErr *valueobject.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Empty(t, loanRepo.savedLoans)
		assert.Empty(t, publisher.publishedEvents)
	})

	t.Run("rejects with a reason", func(t *testing.T) {
		loan := pendingTestLoan(t)
		uc, _, publisher := newUpdateStatusUC(loan)

		resp, err := uc.Execute(context.Background(), dto.UpdateLoanStatusRequest{
			LoanID:          loan.ID(),
			Status:          "REJECTED",
			RejectionReason: "no credit history",
		})

		require.NoError(t, err)
		assert.Equal(t, "REJECTED", resp.Status)
		assert.Equal(t, "no credit history", resp.RejectionReason)
		assert.Contains(t, publisher.eventTypes(), "loan.rejected")
	})

	t.Run("disburses an approved loan", func(t *testing.T) {
		loan := pendingTestLoan(t)
		loan, err := loan.Approve("approver-1", fixtureIssued)
		require.NoError(t, err)
		uc, _, publisher := newUpdateStatusUC(loan.ClearEvents())

		disbursedAt := fixtureIssued.AddDate(0, 0, 3)
		resp, err := uc.Execute(context.Background(), dto.UpdateLoanStatusRequest{
			LoanID:        loan.ID(),
			Status:        "ACTIVE",
			DisbursedDate: &disbursedAt,
		})

		require.NoError(t, err)
		assert.Equal(t, "ACTIVE", resp.Status)
		require.NotNil(t, resp.DisbursedDate)
		assert.Equal(t, disbursedAt, *resp.DisbursedDate)
		assert.Contains(t, publisher.eventTypes(), "loan.disbursed")
	})

	t.Run("cancels an approved loan", func(t *testing.T) {
		loan := pendingTestLoan(t)
		loan, err := loan.Approve("approver-1", fixtureIssued)
		require.NoError(t, err)
		uc, _, _ := newUpdateStatusUC(loan.ClearEvents())

		resp, err := uc.Execute(context.Background(), dto.UpdateLoanStatusRequest{
			LoanID: loan.ID(),
			Status: "CANCELLED",
		})

		require.NoError(t, err)
		assert.Equal(t, "CANCELLED", resp.Status)
	})

	t.Run("defaults an overdue loan", func(t *testing.T) {
		loan := activeTestLoan(t)
		loan, err := loan.MarkOverdue(fixtureDue.AddDate(0, 0, 1))
		require.NoError(t, err)
		uc, _, publisher := newUpdateStatusUC(loan.ClearEvents())

		resp, err := uc.Execute(context.Background(), dto.UpdateLoanStatusRequest{
			LoanID: loan.ID(),
			Status: "DEFAULTED",
		})

		require.NoError(t, err)
		assert.Equal(t, "DEFAULTED", resp.Status)
		assert.Contains(t, publisher.eventTypes(), "loan.defaulted")
	})

	t.Run("cannot default an active loan", func(t *testing.T) {
		loan := activeTestLoan(t)
		uc, loanRepo, _ := newUpdateStatusUC(loan)

		_, err := uc.Execute(context.Background(), dto.UpdateLoanStatusRequest{
			LoanID: loan.ID(),
			Status: "DEFAULTED",
		})

		require.Error(t, err)
		var transitionErr *valueobject.InvalidTransitionError
		assert.ErrorAs(t, err, &transitionErr)
		assert.Empty(t, loanRepo.savedLoans)
	})

	t.Run("restructure requires a new due date", func(t *testing.T) {
		loan := activeTestLoan(t)
		uc, _, _ := newUpdateStatusUC(loan)

		_, err := uc.Execute(context.Background(), dto.UpdateLoanStatusRequest{
			LoanID: loan.ID(),
			Status: "RESTRUCTURED",
		})

		require.Error(t, err)
		var validationErr *valueobject.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("restructures with new terms", func(t *testing.T) {
		loan := activeTestLoan(t)
		uc, _, publisher := newUpdateStatusUC(loan)

		newDueDate := fixtureDue.AddDate(0, 6, 0)
		newRate := decimal.NewFromInt(8)
		resp, err := uc.Execute(context.Background(), dto.UpdateLoanStatusRequest{
			LoanID:          loan.ID(),
			Status:          "RESTRUCTURED",
			NewDueDate:      &newDueDate,
			NewInterestRate: &newRate,
		})

		require.NoError(t, err)
		assert.Equal(t, "RESTRUCTURED", resp.Status)
		assert.Contains(t, publisher.eventTypes(), "loan.restructured")
	})

	t.Run("repaid is never a direct target", func(t *testing.T) {
		loan := activeTestLoan(t)
		uc, loanRepo, _ := newUpdateStatusUC(loan)

		_, err := uc.Execute(context.Background(), dto.UpdateLoanStatusRequest{
			LoanID: loan.ID(),
			Status: "REPAID",
		})

		require.Error(t, err)
		var transitionErr *valueobject.InvalidTransitionError
		assert.ErrorAs(t, err, &transitionErr)
		assert.Empty(t, loanRepo.savedLoans)
	})

	t.Run("unknown status is a validation error", func(t *testing.T) {
		loan := pendingTestLoan(t)
		uc, _, _ := newUpdateStatusUC(loan)

		_, err := uc.Execute(context.Background(), dto.UpdateLoanStatusRequest{
			LoanID: loan.ID(),
			Status: "FROZEN",
		})

		require.Error(t, err)
		var validationErr *valueobject.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}
