package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// TokenStatus – immutable value object
// ---------------------------------------------------------------------------

// TokenStatus represents the settlement stage of a harvest token.
type TokenStatus struct {
	value string
}

const (
	tokenStatusUnminted = "UNMINTED"
	tokenStatusMinted   = "MINTED"
	tokenStatusRedeemed = "REDEEMED"
)

var (
	TokenStatusUnminted = TokenStatus{value: tokenStatusUnminted}
	TokenStatusMinted   = TokenStatus{value: tokenStatusMinted}
	TokenStatusRedeemed = TokenStatus{value: tokenStatusRedeemed}
)

var validTokenStatuses = map[string]TokenStatus{
	tokenStatusUnminted: TokenStatusUnminted,
	tokenStatusMinted:   TokenStatusMinted,
	tokenStatusRedeemed: TokenStatusRedeemed,
}

// NewTokenStatus creates a TokenStatus from a raw string.
func NewTokenStatus(s string) (TokenStatus, error) {
	v, ok := validTokenStatuses[s]
	if !ok {
		return TokenStatus{}, fmt.Errorf("invalid token status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s TokenStatus) String() string { return s.value }

// IsZero returns true when not initialised.
func (s TokenStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses match.
func (s TokenStatus) Equal(other TokenStatus) bool { return s.value == other.value }
