package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/makrochain/loan-service/internal/application/dto"
	"github.com/makrochain/loan-service/internal/domain/model"
	"github.com/makrochain/loan-service/internal/domain/port"
	"github.com/makrochain/loan-service/internal/domain/valueobject"
	"github.com/makrochain/loan-service/pkg/keyedmutex"
)

// RecordPaymentUseCase applies a settled payment to a loan's running balance
// and appends the matching repayment ledger entry atomically. Mutations to a
// given loan id are serialized through the per-loan lock, so two concurrent
// payments are applied in arrival order with no lost update.
type RecordPaymentUseCase struct {
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
	locks     *keyedmutex.KeyedMutex
}

// NewRecordPaymentUseCase wires dependencies.
func NewRecordPaymentUseCase(
	loanRepo port.LoanRepository,
	publisher port.EventPublisher,
	locks *keyedmutex.KeyedMutex,
) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{
		loanRepo:  loanRepo,
		publisher: publisher,
		locks:     locks,
	}
}

// Execute processes a payment against a loan. The loan must be ACTIVE or
// OVERDUE. On any failure the loan and its ledger are left exactly as they
// were before the call.
func (uc *RecordPaymentUseCase) Execute(ctx context.Context, req dto.RecordPaymentRequest) (dto.PaymentResponse, error) {
	if req.LoanID == "" {
		return dto.PaymentResponse{}, valueobject.NewValidationError("loanId", "is required")
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return dto.PaymentResponse{}, valueobject.NewValidationError("amount", "must be positive")
	}

	paymentDate := time.Now().UTC()
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	if err := uc.locks.Acquire(ctx, req.LoanID); err != nil {
		if errors.Is(err, keyedmutex.ErrBusy) {
			return dto.PaymentResponse{}, fmt.Errorf("lock loan %s: %w", req.LoanID, valueobject.ErrBusy)
		}
		return dto.PaymentResponse{}, fmt.Errorf("lock loan %s: %w", req.LoanID, err)
	}
	defer uc.locks.Release(req.LoanID)

	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("find loan: %w", err)
	}

	loan, err = loan.ApplyPayment(req.Amount, paymentDate)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("apply payment: %w", err)
	}

	entry, err := model.NewRepayment(loan.ID(), req.Amount, paymentDate, req.Notes, paymentDate)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("build ledger entry: %w", err)
	}

	if err := uc.loanRepo.SaveWithRepayment(ctx, loan, entry); err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("save loan: %w", err)
	}

	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return dto.PaymentResponse{
		LoanID:           loan.ID(),
		Amount:           req.Amount,
		AmountPaid:       loan.AmountPaid(),
		RemainingBalance: loan.RemainingBalance(),
		Status:           loan.Status().String(),
	}, nil
}
