package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/makrochain/loan-service/internal/application/dto"
	"github.com/makrochain/loan-service/internal/domain/model"
	"github.com/makrochain/loan-service/internal/domain/port"
)

// CreateLoanUseCase registers a farmer's loan application in PENDING status.
type CreateLoanUseCase struct {
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
}

// NewCreateLoanUseCase wires dependencies.
func NewCreateLoanUseCase(loanRepo port.LoanRepository, publisher port.EventPublisher) *CreateLoanUseCase {
	return &CreateLoanUseCase{loanRepo: loanRepo, publisher: publisher}
}

// Execute validates the application terms and persists a new PENDING loan.
func (uc *CreateLoanUseCase) Execute(ctx context.Context, req dto.CreateLoanRequest) (dto.LoanResponse, error) {
	now := time.Now().UTC()

	loan, err := model.NewLoan(
		req.FarmerID,
		req.Principal, req.InterestRate,
		req.TermMonths,
		model.RepaymentFrequency(req.RepaymentFrequency),
		model.LoanType(req.LoanType),
		req.Currency,
		req.IssuedDate, req.DueDate,
		now,
	)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("create loan: %w", err)
	}

	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("save loan: %w", err)
	}

	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toLoanResponse(loan), nil
}
