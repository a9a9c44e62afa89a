package usecase

import (
	"context"
	"fmt"

	"github.com/makrochain/loan-service/internal/application/dto"
	"github.com/makrochain/loan-service/internal/domain/port"
)

// GetLoanUseCase retrieves a loan, optionally with its repayment ledger.
// Reads do not take the per-loan lock; the repository serves a consistent
// snapshot.
type GetLoanUseCase struct {
	loanRepo      port.LoanRepository
	repaymentRepo port.RepaymentRepository
}

// NewGetLoanUseCase wires dependencies.
func NewGetLoanUseCase(loanRepo port.LoanRepository, repaymentRepo port.RepaymentRepository) *GetLoanUseCase {
	return &GetLoanUseCase{loanRepo: loanRepo, repaymentRepo: repaymentRepo}
}

// Execute returns a loan response for the given ID.
func (uc *GetLoanUseCase) Execute(ctx context.Context, req dto.GetLoanRequest) (dto.LoanResponse, error) {
	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find loan: %w", err)
	}

	resp := toLoanResponse(loan)

	if req.IncludeLedger {
		entries, err := uc.repaymentRepo.ListByLoanID(ctx, req.LoanID)
		if err != nil {
			return dto.LoanResponse{}, fmt.Errorf("list repayments: %w", err)
		}
		resp.Ledger = toRepaymentResponses(entries)
	}

	return resp, nil
}
