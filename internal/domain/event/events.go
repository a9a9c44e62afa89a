package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/makrochain/loan-service/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// ---------------------------------------------------------------------------
// Loan events
// ---------------------------------------------------------------------------

// LoanCreated is raised when a farmer's loan application enters the system.
type LoanCreated struct {
	events.BaseEvent
	FarmerID     string          `json:"farmer_id"`
	Principal    decimal.Decimal `json:"principal"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	Currency     string          `json:"currency"`
	TermMonths   int             `json:"term_months"`
	DueDate      time.Time       `json:"due_date"`
}

func NewLoanCreated(loanID, farmerID string, principal, rate decimal.Decimal, currency string, termMonths int, dueDate time.Time) LoanCreated {
	return LoanCreated{
		BaseEvent:    events.NewBaseEvent("loan.created", loanID, "Loan"),
		FarmerID:     farmerID,
		Principal:    principal,
		InterestRate: rate,
		Currency:     currency,
		TermMonths:   termMonths,
		DueDate:      dueDate,
	}
}

// LoanApproved is raised when an approver accepts a pending loan.
type LoanApproved struct {
	events.BaseEvent
	ApprovedBy string    `json:"approved_by"`
	ApprovedAt time.Time `json:"approved_at"`
}

func NewLoanApproved(loanID, approvedBy string, approvedAt time.Time) LoanApproved {
	return LoanApproved{
		BaseEvent:  events.NewBaseEvent("loan.approved", loanID, "Loan"),
		ApprovedBy: approvedBy,
		ApprovedAt: approvedAt,
	}
}

// LoanRejected is raised when a pending loan is rejected.
type LoanRejected struct {
	events.BaseEvent
	Reason string `json:"reason"`
}

func NewLoanRejected(loanID, reason string) LoanRejected {
	return LoanRejected{
		BaseEvent: events.NewBaseEvent("loan.rejected", loanID, "Loan"),
		Reason:    reason,
	}
}

// LoanCancelled is raised when a loan is withdrawn before disbursement.
type LoanCancelled struct {
	events.BaseEvent
}

func NewLoanCancelled(loanID string) LoanCancelled {
	return LoanCancelled{
		BaseEvent: events.NewBaseEvent("loan.cancelled", loanID, "Loan"),
	}
}

// LoanDisbursed is raised when funds are released to the farmer.
type LoanDisbursed struct {
	events.BaseEvent
	FarmerID    string          `json:"farmer_id"`
	Principal   decimal.Decimal `json:"principal"`
	Currency    string          `json:"currency"`
	DisbursedAt time.Time       `json:"disbursed_at"`
}

func NewLoanDisbursed(loanID, farmerID string, principal decimal.Decimal, currency string, disbursedAt time.Time) LoanDisbursed {
	return LoanDisbursed{
		BaseEvent:   events.NewBaseEvent("loan.disbursed", loanID, "Loan"),
		FarmerID:    farmerID,
		Principal:   principal,
		Currency:    currency,
		DisbursedAt: disbursedAt,
	}
}

// PaymentRecorded is raised when a settled payment is applied to a loan.
type PaymentRecorded struct {
	events.BaseEvent
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	AmountPaid       decimal.Decimal `json:"amount_paid"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	PaymentDate      time.Time       `json:"payment_date"`
}

func NewPaymentRecorded(loanID string, amount decimal.Decimal, currency string, amountPaid, remaining decimal.Decimal, paymentDate time.Time) PaymentRecorded {
	return PaymentRecorded{
		BaseEvent:        events.NewBaseEvent("loan.payment_recorded", loanID, "Loan"),
		Amount:           amount,
		Currency:         currency,
		AmountPaid:       amountPaid,
		RemainingBalance: remaining,
		PaymentDate:      paymentDate,
	}
}

// LoanRepaid is raised when the remaining balance reaches zero.
type LoanRepaid struct {
	events.BaseEvent
}

func NewLoanRepaid(loanID string) LoanRepaid {
	return LoanRepaid{
		BaseEvent: events.NewBaseEvent("loan.repaid", loanID, "Loan"),
	}
}

// LoanOverdue is raised when the overdue sweep moves a loan past its due date.
type LoanOverdue struct {
	events.BaseEvent
	DueDate          time.Time       `json:"due_date"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

func NewLoanOverdue(loanID string, dueDate time.Time, remaining decimal.Decimal) LoanOverdue {
	return LoanOverdue{
		BaseEvent:        events.NewBaseEvent("loan.overdue", loanID, "Loan"),
		DueDate:          dueDate,
		RemainingBalance: remaining,
	}
}

// LoanDefaulted is raised when an operator marks an overdue loan as defaulted.
type LoanDefaulted struct {
	events.BaseEvent
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

func NewLoanDefaulted(loanID string, remaining decimal.Decimal) LoanDefaulted {
	return LoanDefaulted{
		BaseEvent:        events.NewBaseEvent("loan.defaulted", loanID, "Loan"),
		RemainingBalance: remaining,
	}
}

// LoanRestructured is raised when a loan's terms are renegotiated.
type LoanRestructured struct {
	events.BaseEvent
	NewDueDate      time.Time       `json:"new_due_date"`
	NewInterestRate decimal.Decimal `json:"new_interest_rate"`
}

func NewLoanRestructured(loanID string, newDueDate time.Time, newRate decimal.Decimal) LoanRestructured {
	return LoanRestructured{
		BaseEvent:       events.NewBaseEvent("loan.restructured", loanID, "Loan"),
		NewDueDate:      newDueDate,
		NewInterestRate: newRate,
	}
}

// ---------------------------------------------------------------------------
// Harvest events
// ---------------------------------------------------------------------------

// HarvestReserved is raised when a buyer reserves an available harvest.
type HarvestReserved struct {
	events.BaseEvent
	BuyerID string `json:"buyer_id"`
}

func NewHarvestReserved(harvestID, buyerID string) HarvestReserved {
	return HarvestReserved{
		BaseEvent: events.NewBaseEvent("harvest.reserved", harvestID, "Harvest"),
		BuyerID:   buyerID,
	}
}

// HarvestReleased is raised when a reservation is released back to the market.
type HarvestReleased struct {
	events.BaseEvent
}

func NewHarvestReleased(harvestID string) HarvestReleased {
	return HarvestReleased{
		BaseEvent: events.NewBaseEvent("harvest.released", harvestID, "Harvest"),
	}
}

// HarvestSold is raised when a reserved harvest is settled.
type HarvestSold struct {
	events.BaseEvent
	BuyerID    string          `json:"buyer_id"`
	SalePrice  decimal.Decimal `json:"sale_price"`
	Currency   string          `json:"currency"`
}

func NewHarvestSold(harvestID, buyerID string, salePrice decimal.Decimal, currency string) HarvestSold {
	return HarvestSold{
		BaseEvent: events.NewBaseEvent("harvest.sold", harvestID, "Harvest"),
		BuyerID:   buyerID,
		SalePrice: salePrice,
		Currency:  currency,
	}
}

// ---------------------------------------------------------------------------
// Token events
// ---------------------------------------------------------------------------

// TokenMinted is raised when the external settlement system confirms a mint.
type TokenMinted struct {
	events.BaseEvent
	HarvestID      string `json:"harvest_id"`
	BlockchainHash string `json:"blockchain_hash"`
}

func NewTokenMinted(tokenID, harvestID, blockchainHash string) TokenMinted {
	return TokenMinted{
		BaseEvent:      events.NewBaseEvent("token.minted", tokenID, "Token"),
		HarvestID:      harvestID,
		BlockchainHash: blockchainHash,
	}
}

// TokenRedeemed is raised when a minted token is redeemed.
type TokenRedeemed struct {
	events.BaseEvent
	HarvestID string `json:"harvest_id"`
}

func NewTokenRedeemed(tokenID, harvestID string) TokenRedeemed {
	return TokenRedeemed{
		BaseEvent: events.NewBaseEvent("token.redeemed", tokenID, "Token"),
		HarvestID: harvestID,
	}
}
