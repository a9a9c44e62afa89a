package valueobject

import (
	"fmt"
)

// ---------------------------------------------------------------------------
// LoanStatus – immutable value object
// ---------------------------------------------------------------------------

// LoanStatus represents the lifecycle stage of a loan.
type LoanStatus struct {
	value string
}

const (
	loanStatusPending      = "PENDING"
	loanStatusApproved     = "APPROVED"
	loanStatusRejected     = "REJECTED"
	loanStatusActive       = "ACTIVE"
	loanStatusOverdue      = "OVERDUE"
	loanStatusRepaid       = "REPAID"
	loanStatusDefaulted    = "DEFAULTED"
	loanStatusRestructured = "RESTRUCTURED"
	loanStatusCancelled    = "CANCELLED"
)

var (
	LoanStatusPending      = LoanStatus{value: loanStatusPending}
	LoanStatusApproved     = LoanStatus{value: loanStatusApproved}
	LoanStatusRejected     = LoanStatus{value: loanStatusRejected}
	LoanStatusActive       = LoanStatus{value: loanStatusActive}
	LoanStatusOverdue      = LoanStatus{value: loanStatusOverdue}
	LoanStatusRepaid       = LoanStatus{value: loanStatusRepaid}
	LoanStatusDefaulted    = LoanStatus{value: loanStatusDefaulted}
	LoanStatusRestructured = LoanStatus{value: loanStatusRestructured}
	LoanStatusCancelled    = LoanStatus{value: loanStatusCancelled}
)

var validLoanStatuses = map[string]LoanStatus{
	loanStatusPending:      LoanStatusPending,
	loanStatusApproved:     LoanStatusApproved,
	loanStatusRejected:     LoanStatusRejected,
	loanStatusActive:       LoanStatusActive,
	loanStatusOverdue:      LoanStatusOverdue,
	loanStatusRepaid:       LoanStatusRepaid,
	loanStatusDefaulted:    LoanStatusDefaulted,
	loanStatusRestructured: LoanStatusRestructured,
	loanStatusCancelled:    LoanStatusCancelled,
}

// loanTransitions is the complete set of legal status edges. Any edge not
// listed here is rejected with an InvalidTransitionError.
var loanTransitions = map[string]map[string]bool{
	loanStatusPending: {
		loanStatusApproved:  true,
		loanStatusRejected:  true,
		loanStatusCancelled: true,
	},
	loanStatusApproved: {
		loanStatusActive:    true,
		loanStatusCancelled: true,
	},
	loanStatusActive: {
		loanStatusRepaid:       true,
		loanStatusOverdue:      true,
		loanStatusRestructured: true,
	},
	loanStatusOverdue: {
		loanStatusRepaid:       true,
		loanStatusDefaulted:    true,
		loanStatusRestructured: true,
	},
}

// NewLoanStatus creates a LoanStatus from a raw string.
func NewLoanStatus(s string) (LoanStatus, error) {
	v, ok := validLoanStatuses[s]
	if !ok {
		return LoanStatus{}, fmt.Errorf("invalid loan status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s LoanStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s LoanStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s LoanStatus) Equal(other LoanStatus) bool { return s.value == other.value }

// IsTerminal reports whether the status admits no further transitions.
func (s LoanStatus) IsTerminal() bool {
	return len(loanTransitions[s.value]) == 0 && !s.IsZero()
}

// CanTransitionTo reports whether the edge from s to target is legal.
func (s LoanStatus) CanTransitionTo(target LoanStatus) bool {
	return loanTransitions[s.value][target.value]
}
