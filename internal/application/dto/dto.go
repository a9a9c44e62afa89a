package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// CreateLoanRequest carries the data for a farmer's loan application.
type CreateLoanRequest struct {
	FarmerID           string          `json:"farmer_id"`
	Principal          decimal.Decimal `json:"principal"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	TermMonths         int             `json:"duration_months"`
	RepaymentFrequency string          `json:"repayment_frequency"`
	LoanType           string          `json:"loan_type"`
	Currency           string          `json:"currency"`
	IssuedDate         time.Time       `json:"issued_date"`
	DueDate            time.Time       `json:"due_date"`
}

// GetLoanRequest identifies a loan to retrieve.
type GetLoanRequest struct {
	LoanID         string `json:"loan_id"`
	IncludeLedger  bool   `json:"include_ledger"`
}

// UpdateLoanStatusRequest carries a status-change event. Which auxiliary
// fields are required depends on the target status: APPROVED needs ApproverID,
// REJECTED needs RejectionReason, RESTRUCTURED needs NewDueDate/NewInterestRate.
type UpdateLoanStatusRequest struct {
	LoanID          string           `json:"loan_id"`
	Status          string           `json:"status"`
	ApproverID      string           `json:"approver_id,omitempty"`
	ApprovedDate    *time.Time       `json:"approved_date,omitempty"`
	DisbursedDate   *time.Time       `json:"disbursed_date,omitempty"`
	RejectionReason string           `json:"rejection_reason,omitempty"`
	NewDueDate      *time.Time       `json:"new_due_date,omitempty"`
	NewInterestRate *decimal.Decimal `json:"new_interest_rate,omitempty"`
}

// RecordPaymentRequest carries a settled payment to apply to a loan.
type RecordPaymentRequest struct {
	LoanID      string          `json:"loan_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate *time.Time      `json:"payment_date,omitempty"`
	Notes       string          `json:"notes,omitempty"`
}

// SearchLoansRequest filters and pages a read-only loan search.
type SearchLoansRequest struct {
	FarmerID string `json:"farmer_id,omitempty"`
	Status   string `json:"status,omitempty"`
	LoanType string `json:"loan_type,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Offset   int    `json:"offset,omitempty"`
}

// RegisterHarvestRequest carries a new harvest registration.
type RegisterHarvestRequest struct {
	FarmerID    string          `json:"farmer_id"`
	Crop        string          `json:"crop"`
	QuantityKg  decimal.Decimal `json:"quantity_kg"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Currency    string          `json:"currency"`
	HarvestDate time.Time       `json:"harvest_date"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// RepaymentResponse is one ledger entry.
type RepaymentResponse struct {
	ID          string          `json:"id"`
	LoanID      string          `json:"loan_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
	Notes       string          `json:"notes,omitempty"`
	Sequence    int64           `json:"sequence"`
}

// LoanResponse is the external representation of a loan.
type LoanResponse struct {
	ID                   string              `json:"id"`
	FarmerID             string              `json:"farmer_id"`
	Principal            decimal.Decimal     `json:"principal"`
	InterestRate         decimal.Decimal     `json:"interest_rate"`
	TermMonths           int                 `json:"duration_months"`
	RepaymentFrequency   string              `json:"repayment_frequency"`
	LoanType             string              `json:"loan_type"`
	Currency             string              `json:"currency"`
	IssuedDate           time.Time           `json:"issued_date"`
	DueDate              time.Time           `json:"due_date"`
	Status               string              `json:"status"`
	ApprovedBy           string              `json:"approved_by,omitempty"`
	ApprovedDate         *time.Time          `json:"approved_date,omitempty"`
	DisbursedDate        *time.Time          `json:"disbursed_date,omitempty"`
	RejectionReason      string              `json:"rejection_reason,omitempty"`
	LastPaymentDate      *time.Time          `json:"last_payment_date,omitempty"`
	TotalRepaymentAmount decimal.Decimal     `json:"total_repayment_amount"`
	AmountPaid           decimal.Decimal     `json:"amount_paid"`
	RemainingBalance     decimal.Decimal     `json:"remaining_balance"`
	Ledger               []RepaymentResponse `json:"ledger,omitempty"`
	CreatedAt            time.Time           `json:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at"`
}

// PaymentResponse is the result of applying a payment.
type PaymentResponse struct {
	LoanID           string          `json:"loan_id"`
	Amount           decimal.Decimal `json:"amount"`
	AmountPaid       decimal.Decimal `json:"amount_paid"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	Status           string          `json:"status"`
}

// SweepResult reports one overdue-sweep invocation.
type SweepResult struct {
	Scanned      int `json:"scanned"`
	Transitioned int `json:"transitioned"`
	Failed       int `json:"failed"`
}

// HarvestResponse is the external representation of a harvest.
type HarvestResponse struct {
	ID          string          `json:"id"`
	FarmerID    string          `json:"farmer_id"`
	Crop        string          `json:"crop"`
	QuantityKg  decimal.Decimal `json:"quantity_kg"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	Currency    string          `json:"currency"`
	HarvestDate time.Time       `json:"harvest_date"`
	Status      string          `json:"status"`
	BuyerID     string          `json:"buyer_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TokenResponse is the external representation of a harvest token.
type TokenResponse struct {
	ID             string     `json:"id"`
	HarvestID      string     `json:"harvest_id"`
	BlockchainHash string     `json:"blockchain_hash,omitempty"`
	Status         string     `json:"status"`
	MintedAt       *time.Time `json:"minted_at,omitempty"`
	RedeemedAt     *time.Time `json:"redeemed_at,omitempty"`
}
