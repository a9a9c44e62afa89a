package usecase

import (
	"context"
	"fmt"

	"github.com/makrochain/loan-service/internal/application/dto"
	"github.com/makrochain/loan-service/internal/domain/port"
	"github.com/makrochain/loan-service/internal/domain/valueobject"
)

const defaultSearchLimit = 50

// SearchLoansUseCase is a read-only filtered, paginated loan listing. It has
// no lifecycle impact and never blocks on per-loan locks.
type SearchLoansUseCase struct {
	loanRepo port.LoanRepository
}

// NewSearchLoansUseCase wires dependencies.
func NewSearchLoansUseCase(loanRepo port.LoanRepository) *SearchLoansUseCase {
	return &SearchLoansUseCase{loanRepo: loanRepo}
}

// Execute returns loans matching the filter, newest first.
func (uc *SearchLoansUseCase) Execute(ctx context.Context, req dto.SearchLoansRequest) ([]dto.LoanResponse, error) {
	filter := port.LoanSearchFilter{
		FarmerID: req.FarmerID,
		LoanType: req.LoanType,
		Limit:    req.Limit,
		Offset:   req.Offset,
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultSearchLimit
	}
	if req.Status != "" {
		status, err := valueobject.NewLoanStatus(req.Status)
		if err != nil {
			return nil, valueobject.NewValidationError("status", err.Error())
		}
		filter.Status = &status
	}

	loans, err := uc.loanRepo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search loans: %w", err)
	}

	out := make([]dto.LoanResponse, len(loans))
	for i, loan := range loans {
		out[i] = toLoanResponse(loan)
	}
	return out, nil
}
