package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// HarvestStatus – immutable value object
// ---------------------------------------------------------------------------

// HarvestStatus represents the lifecycle stage of a registered harvest.
type HarvestStatus struct {
	value string
}

const (
	harvestStatusAvailable = "AVAILABLE"
	harvestStatusReserved  = "RESERVED"
	harvestStatusSold      = "SOLD"
)

var (
	HarvestStatusAvailable = HarvestStatus{value: harvestStatusAvailable}
	HarvestStatusReserved  = HarvestStatus{value: harvestStatusReserved}
	HarvestStatusSold      = HarvestStatus{value: harvestStatusSold}
)

var validHarvestStatuses = map[string]HarvestStatus{
	harvestStatusAvailable: HarvestStatusAvailable,
	harvestStatusReserved:  HarvestStatusReserved,
	harvestStatusSold:      HarvestStatusSold,
}

// NewHarvestStatus creates a HarvestStatus from a raw string.
func NewHarvestStatus(s string) (HarvestStatus, error) {
	v, ok := validHarvestStatuses[s]
	if !ok {
		return HarvestStatus{}, fmt.Errorf("invalid harvest status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s HarvestStatus) String() string { return s.value }

// IsZero returns true when not initialised.
func (s HarvestStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses match.
func (s HarvestStatus) Equal(other HarvestStatus) bool { return s.value == other.value }
