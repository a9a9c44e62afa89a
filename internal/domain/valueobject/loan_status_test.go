package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoanStatus(t *testing.T) {
	s, err := NewLoanStatus("ACTIVE")
	require.NoError(t, err)
	assert.True(t, s.Equal(LoanStatusActive))

	_, err = NewLoanStatus("active")
	require.Error(t, err)

	_, err = NewLoanStatus("")
	require.Error(t, err)
}

func TestLoanStatus_TransitionTable(t *testing.T) {
	allowed := []struct {
		from, to LoanStatus
	}{
		{LoanStatusPending, LoanStatusApproved},
		{LoanStatusPending, LoanStatusRejected},
		{LoanStatusPending, LoanStatusCancelled},
		{LoanStatusApproved, LoanStatusActive},
		{LoanStatusApproved, LoanStatusCancelled},
		{LoanStatusActive, LoanStatusRepaid},
		{LoanStatusActive, LoanStatusOverdue},
		{LoanStatusActive, LoanStatusRestructured},
		{LoanStatusOverdue, LoanStatusRepaid},
		{LoanStatusOverdue, LoanStatusDefaulted},
		{LoanStatusOverdue, LoanStatusRestructured},
	}
	for _, edge := range allowed {
		assert.True(t, edge.from.CanTransitionTo(edge.to),
			"%s -> %s should be legal", edge.from, edge.to)
	}

	forbidden := []struct {
		from, to LoanStatus
	}{
		{LoanStatusPending, LoanStatusActive},
		{LoanStatusPending, LoanStatusRepaid},
		{LoanStatusApproved, LoanStatusRejected},
		{LoanStatusActive, LoanStatusDefaulted},
		{LoanStatusActive, LoanStatusCancelled},
		{LoanStatusOverdue, LoanStatusActive},
		{LoanStatusRepaid, LoanStatusActive},
		{LoanStatusDefaulted, LoanStatusOverdue},
		{LoanStatusCancelled, LoanStatusPending},
		{LoanStatusRestructured, LoanStatusActive},
	}
	for _, edge := range forbidden {
		assert.False(t, edge.from.CanTransitionTo(edge.to),
			"%s -> %s should be rejected", edge.from, edge.to)
	}
}

func TestLoanStatus_IsTerminal(t *testing.T) {
	terminal := []LoanStatus{
		LoanStatusRejected, LoanStatusRepaid, LoanStatusDefaulted,
		LoanStatusRestructured, LoanStatusCancelled,
	}
	for _, s := range terminal {
		assert.True(t, s.IsTerminal(), "%s should be terminal", s)
	}

	open := []LoanStatus{
		LoanStatusPending, LoanStatusApproved, LoanStatusActive, LoanStatusOverdue,
	}
	for _, s := range open {
		assert.False(t, s.IsTerminal(), "%s should not be terminal", s)
	}

	assert.False(t, LoanStatus{}.IsTerminal(), "zero value is not a real status")
}
