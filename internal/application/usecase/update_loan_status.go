package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/makrochain/loan-service/internal/application/dto"
	"github.com/makrochain/loan-service/internal/domain/model"
	"github.com/makrochain/loan-service/internal/domain/port"
	"github.com/makrochain/loan-service/internal/domain/valueobject"
	"github.com/makrochain/loan-service/pkg/keyedmutex"
)

// UpdateLoanStatusUseCase drives the loan state machine for approver and
// operator actions. Precondition validation happens before any mutation; the
// transition itself is a pure function on the aggregate and persistence runs
// only after it succeeds.
type UpdateLoanStatusUseCase struct {
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
	locks     *keyedmutex.KeyedMutex
}

// NewUpdateLoanStatusUseCase wires dependencies.
func NewUpdateLoanStatusUseCase(
	loanRepo port.LoanRepository,
	publisher port.EventPublisher,
	locks *keyedmutex.KeyedMutex,
) *UpdateLoanStatusUseCase {
	return &UpdateLoanStatusUseCase{
		loanRepo:  loanRepo,
		publisher: publisher,
		locks:     locks,
	}
}

// Execute applies the status-change event named by req.Status. REPAID is not
// reachable here: the only path to it is recording a payment that clears the
// balance.
func (uc *UpdateLoanStatusUseCase) Execute(ctx context.Context, req dto.UpdateLoanStatusRequest) (dto.LoanResponse, error) {
	if req.LoanID == "" {
		return dto.LoanResponse{}, valueobject.NewValidationError("loanId", "is required")
	}
	target, err := valueobject.NewLoanStatus(req.Status)
	if err != nil {
		return dto.LoanResponse{}, valueobject.NewValidationError("status", err.Error())
	}

	if err := uc.locks.Acquire(ctx, req.LoanID); err != nil {
		if errors.Is(err, keyedmutex.ErrBusy) {
			return dto.LoanResponse{}, fmt.Errorf("lock loan %s: %w", req.LoanID, valueobject.ErrBusy)
		}
		return dto.LoanResponse{}, fmt.Errorf("lock loan %s: %w", req.LoanID, err)
	}
	defer uc.locks.Release(req.LoanID)

	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find loan: %w", err)
	}

	now := time.Now().UTC()

	updated, err := uc.applyTransition(loan, target, req, now)
	if err != nil {
		return dto.LoanResponse{}, err
	}

	if err := uc.loanRepo.Save(ctx, updated); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("save loan: %w", err)
	}

	if err := uc.publisher.Publish(ctx, updated.DomainEvents()...); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toLoanResponse(updated), nil
}

func (uc *UpdateLoanStatusUseCase) applyTransition(
	loan model.Loan,
	target valueobject.LoanStatus,
	req dto.UpdateLoanStatusRequest,
	now time.Time,
) (model.Loan, error) {
	switch {
	case target.Equal(valueobject.LoanStatusApproved):
		approvedAt := now
		if req.ApprovedDate != nil {
			approvedAt = *req.ApprovedDate
		}
		return loan.Approve(req.ApproverID, approvedAt)

	case target.Equal(valueobject.LoanStatusRejected):
		return loan.Reject(req.RejectionReason, now)

	case target.Equal(valueobject.LoanStatusCancelled):
		return loan.Cancel(now)

	case target.Equal(valueobject.LoanStatusActive):
		disbursedAt := now
		if req.DisbursedDate != nil {
			disbursedAt = *req.DisbursedDate
		}
		return loan.Disburse(disbursedAt)

	case target.Equal(valueobject.LoanStatusOverdue):
		return loan.MarkOverdue(now)

	case target.Equal(valueobject.LoanStatusDefaulted):
		return loan.MarkDefaulted(now)

	case target.Equal(valueobject.LoanStatusRestructured):
		if req.NewDueDate == nil {
			return loan, valueobject.NewValidationError("newDueDate", "is required")
		}
		newRate := loan.InterestRate()
		if req.NewInterestRate != nil {
			newRate = *req.NewInterestRate
		}
		return loan.Restructure(*req.NewDueDate, newRate, now)

	default:
		// PENDING and REPAID are never targets of a direct status update.
		return loan, valueobject.NewInvalidTransition(loan.Status(), "set status "+target.String())
	}
}
