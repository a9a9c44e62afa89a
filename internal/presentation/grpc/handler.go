package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/makrochain/loan-service/internal/application/dto"
	"github.com/makrochain/loan-service/internal/application/usecase"
	"github.com/makrochain/loan-service/internal/domain/valueobject"
)

// LoanHandler implements LoanServiceServer on top of the loan use cases.
type LoanHandler struct {
	UnimplementedLoanServiceServer

	createLoan    *usecase.CreateLoanUseCase
	getLoan       *usecase.GetLoanUseCase
	searchLoans   *usecase.SearchLoansUseCase
	updateStatus  *usecase.UpdateLoanStatusUseCase
	recordPayment *usecase.RecordPaymentUseCase
	overdueSweep  *usecase.OverdueSweepUseCase
}

// NewLoanHandler creates a new handler with all use-case dependencies.
func NewLoanHandler(
	createLoan *usecase.CreateLoanUseCase,
	getLoan *usecase.GetLoanUseCase,
	searchLoans *usecase.SearchLoansUseCase,
	updateStatus *usecase.UpdateLoanStatusUseCase,
	recordPayment *usecase.RecordPaymentUseCase,
	overdueSweep *usecase.OverdueSweepUseCase,
) *LoanHandler {
	return &LoanHandler{
		createLoan:    createLoan,
		getLoan:       getLoan,
		searchLoans:   searchLoans,
		updateStatus:  updateStatus,
		recordPayment: recordPayment,
		overdueSweep:  overdueSweep,
	}
}

// CreateLoan handles a new loan application.
func (h *LoanHandler) CreateLoan(ctx context.Context, req *CreateLoanRequest) (*LoanReply, error) {
	principal, err := parseDecimal("principal", req.Principal)
	if err != nil {
		return nil, err
	}
	rate, err := parseDecimal("interest_rate", req.InterestRate)
	if err != nil {
		return nil, err
	}
	issuedDate, err := parseTime("issued_date", req.IssuedDate)
	if err != nil {
		return nil, err
	}
	dueDate, err := parseTime("due_date", req.DueDate)
	if err != nil {
		return nil, err
	}

	resp, err := h.createLoan.Execute(ctx, dto.CreateLoanRequest{
		FarmerID:           req.FarmerId,
		Principal:          principal,
		InterestRate:       rate,
		TermMonths:         req.DurationMonths,
		RepaymentFrequency: req.RepaymentFrequency,
		LoanType:           req.LoanType,
		Currency:           req.Currency,
		IssuedDate:         issuedDate,
		DueDate:            dueDate,
	})
	if err != nil {
		return nil, statusFromError(err)
	}
	return &LoanReply{Loan: resp}, nil
}

// GetLoan retrieves a loan, optionally with its repayment ledger.
func (h *LoanHandler) GetLoan(ctx context.Context, req *GetLoanRequest) (*LoanReply, error) {
	resp, err := h.getLoan.Execute(ctx, dto.GetLoanRequest{
		LoanID:        req.LoanId,
		IncludeLedger: req.IncludeLedger,
	})
	if err != nil {
		return nil, statusFromError(err)
	}
	return &LoanReply{Loan: resp}, nil
}

// SearchLoans lists loans matching the filter.
func (h *LoanHandler) SearchLoans(ctx context.Context, req *SearchLoansRequest) (*SearchLoansReply, error) {
	loans, err := h.searchLoans.Execute(ctx, dto.SearchLoansRequest{
		FarmerID: req.FarmerId,
		Status:   req.Status,
		LoanType: req.LoanType,
		Limit:    req.Limit,
		Offset:   req.Offset,
	})
	if err != nil {
		return nil, statusFromError(err)
	}
	return &SearchLoansReply{Loans: loans}, nil
}

// UpdateLoanStatus applies a status-change event to a loan.
func (h *LoanHandler) UpdateLoanStatus(ctx context.Context, req *UpdateLoanStatusRequest) (*LoanReply, error) {
	approvedDate, err := parseOptionalTime("approved_date", req.ApprovedDate)
	if err != nil {
		return nil, err
	}
	disbursedDate, err := parseOptionalTime("disbursed_date", req.DisbursedDate)
	if err != nil {
		return nil, err
	}
	newDueDate, err := parseOptionalTime("new_due_date", req.NewDueDate)
	if err != nil {
		return nil, err
	}
	newRate, err := parseOptionalDecimal("new_interest_rate", req.NewInterestRate)
	if err != nil {
		return nil, err
	}

	resp, err := h.updateStatus.Execute(ctx, dto.UpdateLoanStatusRequest{
		LoanID:          req.LoanId,
		Status:          req.Status,
		ApproverID:      req.ApproverId,
		ApprovedDate:    approvedDate,
		DisbursedDate:   disbursedDate,
		RejectionReason: req.RejectionReason,
		NewDueDate:      newDueDate,
		NewInterestRate: newRate,
	})
	if err != nil {
		return nil, statusFromError(err)
	}
	return &LoanReply{Loan: resp}, nil
}

// RecordPayment applies a settled payment to a loan.
func (h *LoanHandler) RecordPayment(ctx context.Context, req *RecordPaymentRequest) (*RecordPaymentReply, error) {
	amount, err := parseDecimal("amount", req.Amount)
	if err != nil {
		return nil, err
	}
	paymentDate, err := parseOptionalTime("payment_date", req.PaymentDate)
	if err != nil {
		return nil, err
	}

	resp, err := h.recordPayment.Execute(ctx, dto.RecordPaymentRequest{
		LoanID:      req.LoanId,
		Amount:      amount,
		PaymentDate: paymentDate,
		Notes:       req.Notes,
	})
	if err != nil {
		return nil, statusFromError(err)
	}
	return &RecordPaymentReply{Payment: resp}, nil
}

// RunOverdueSweep transitions past-due ACTIVE loans to OVERDUE.
func (h *LoanHandler) RunOverdueSweep(ctx context.Context, _ *RunOverdueSweepRequest) (*RunOverdueSweepReply, error) {
	result, err := h.overdueSweep.Execute(ctx)
	if err != nil {
		return nil, statusFromError(err)
	}
	return &RunOverdueSweepReply{
		Scanned:      result.Scanned,
		Transitioned: result.Transitioned,
		Failed:       result.Failed,
	}, nil
}

// MarketplaceHandler implements MarketplaceServiceServer on top of the
// harvest and token use cases.
type MarketplaceHandler struct {
	UnimplementedMarketplaceServiceServer

	harvests *usecase.HarvestLifecycleUseCase
	tokens   *usecase.TokenLifecycleUseCase
}

// NewMarketplaceHandler creates a new handler with all use-case dependencies.
func NewMarketplaceHandler(
	harvests *usecase.HarvestLifecycleUseCase,
	tokens *usecase.TokenLifecycleUseCase,
) *MarketplaceHandler {
	return &MarketplaceHandler{
		harvests: harvests,
		tokens:   tokens,
	}
}

// RegisterHarvest lists a new harvest on the marketplace.
func (h *MarketplaceHandler) RegisterHarvest(ctx context.Context, req *RegisterHarvestRequest) (*HarvestReply, error) {
	quantity, err := parseDecimal("quantity_kg", req.QuantityKg)
	if err != nil {
		return nil, err
	}
	unitPrice, err := parseDecimal("unit_price", req.UnitPrice)
	if err != nil {
		return nil, err
	}
	harvestDate, err := parseTime("harvest_date", req.HarvestDate)
	if err != nil {
		return nil, err
	}

	resp, err := h.harvests.Register(ctx, dto.RegisterHarvestRequest{
		FarmerID:    req.FarmerId,
		Crop:        req.Crop,
		QuantityKg:  quantity,
		UnitPrice:   unitPrice,
		Currency:    req.Currency,
		HarvestDate: harvestDate,
	})
	if err != nil {
		return nil, statusFromError(err)
	}
	return &HarvestReply{Harvest: resp}, nil
}

// ReserveHarvest holds a harvest for a buyer.
func (h *MarketplaceHandler) ReserveHarvest(ctx context.Context, req *ReserveHarvestRequest) (*HarvestReply, error) {
	resp, err := h.harvests.Reserve(ctx, req.HarvestId, req.BuyerId)
	if err != nil {
		return nil, statusFromError(err)
	}
	return &HarvestReply{Harvest: resp}, nil
}

// ReleaseHarvest returns a reserved harvest to the market.
func (h *MarketplaceHandler) ReleaseHarvest(ctx context.Context, req *ReleaseHarvestRequest) (*HarvestReply, error) {
	resp, err := h.harvests.Release(ctx, req.HarvestId)
	if err != nil {
		return nil, statusFromError(err)
	}
	return &HarvestReply{Harvest: resp}, nil
}

// SellHarvest settles a reserved harvest.
func (h *MarketplaceHandler) SellHarvest(ctx context.Context, req *SellHarvestRequest) (*HarvestReply, error) {
	resp, err := h.harvests.Sell(ctx, req.HarvestId)
	if err != nil {
		return nil, statusFromError(err)
	}
	return &HarvestReply{Harvest: resp}, nil
}

// MintToken records a mint confirmation from the settlement system.
func (h *MarketplaceHandler) MintToken(ctx context.Context, req *MintTokenRequest) (*TokenReply, error) {
	resp, err := h.tokens.Mint(ctx, req.TokenId, req.BlockchainHash)
	if err != nil {
		return nil, statusFromError(err)
	}
	return &TokenReply{Token: resp}, nil
}

// RedeemToken records a redemption confirmation from the settlement system.
func (h *MarketplaceHandler) RedeemToken(ctx context.Context, req *RedeemTokenRequest) (*TokenReply, error) {
	resp, err := h.tokens.Redeem(ctx, req.TokenId)
	if err != nil {
		return nil, statusFromError(err)
	}
	return &TokenReply{Token: resp}, nil
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func parseDecimal(field, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, status.Errorf(codes.InvalidArgument, "invalid %s: %q", field, raw)
	}
	return d, nil
}

func parseOptionalDecimal(field, raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := parseDecimal(field, raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func parseTime(field, raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, status.Errorf(codes.InvalidArgument, "invalid %s: %q", field, raw)
	}
	return t, nil
}

func parseOptionalTime(field, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := parseTime(field, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// statusFromError maps the domain error taxonomy onto gRPC status codes.
func statusFromError(err error) error {
	var validationErr *valueobject.ValidationError
	var transitionErr *valueobject.InvalidTransitionError

	switch {
	case errors.As(err, &validationErr):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.As(err, &transitionErr):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, valueobject.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, valueobject.ErrBusy):
		return status.Error(codes.ResourceExhausted, err.Error())
	case errors.Is(err, valueobject.ErrVersionConflict):
		return status.Error(codes.Aborted, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
