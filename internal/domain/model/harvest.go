package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/makrochain/loan-service/internal/domain/event"
	"github.com/makrochain/loan-service/internal/domain/valueobject"
)

// Harvest is a registered crop lot offered on the marketplace. Its lifecycle
// (AVAILABLE -> RESERVED -> SOLD) carries far fewer invariants than Loan: no
// running balance, no interest arithmetic, no time-based decay.
type Harvest struct {
	id          string
	farmerID    string
	crop        string
	quantityKg  decimal.Decimal
	unitPrice   decimal.Decimal
	currency    string
	harvestDate time.Time
	status      valueobject.HarvestStatus
	buyerID     string

	version      int
	createdAt    time.Time
	updatedAt    time.Time
	domainEvents []event.DomainEvent
}

// NewHarvest registers a harvest in AVAILABLE status.
func NewHarvest(farmerID, crop string, quantityKg, unitPrice decimal.Decimal, currency string, harvestDate, now time.Time) (Harvest, error) {
	if farmerID == "" {
		return Harvest{}, valueobject.NewValidationError("farmerId", "is required")
	}
	if crop == "" {
		return Harvest{}, valueobject.NewValidationError("crop", "is required")
	}
	if quantityKg.LessThanOrEqual(decimal.Zero) {
		return Harvest{}, valueobject.NewValidationError("quantityKg", "must be positive")
	}
	if unitPrice.LessThanOrEqual(decimal.Zero) {
		return Harvest{}, valueobject.NewValidationError("unitPrice", "must be positive")
	}

	return Harvest{
		id:          uuid.New().String(),
		farmerID:    farmerID,
		crop:        crop,
		quantityKg:  quantityKg,
		unitPrice:   unitPrice,
		currency:    currency,
		harvestDate: harvestDate,
		status:      valueobject.HarvestStatusAvailable,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructHarvest rebuilds a Harvest aggregate from persistence.
func ReconstructHarvest(
	id, farmerID, crop string,
	quantityKg, unitPrice decimal.Decimal,
	currency string,
	harvestDate time.Time,
	status valueobject.HarvestStatus,
	buyerID string,
	version int,
	createdAt, updatedAt time.Time,
) Harvest {
	return Harvest{
		id:          id,
		farmerID:    farmerID,
		crop:        crop,
		quantityKg:  quantityKg,
		unitPrice:   unitPrice,
		currency:    currency,
		harvestDate: harvestDate,
		status:      status,
		buyerID:     buyerID,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Reserve transitions AVAILABLE -> RESERVED for the given buyer.
func (h Harvest) Reserve(buyerID string, now time.Time) (Harvest, error) {
	if buyerID == "" {
		return h, valueobject.NewValidationError("buyerId", "is required")
	}
	if !h.status.Equal(valueobject.HarvestStatusAvailable) {
		return h, valueobject.NewValidationError("status", "harvest is not available")
	}

	next := h
	next.status = valueobject.HarvestStatusReserved
	next.buyerID = buyerID
	next.updatedAt = now
	next.domainEvents = copyEvents(h.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewHarvestReserved(h.id, buyerID))
	return next, nil
}

// Release transitions RESERVED -> AVAILABLE, dropping the buyer.
func (h Harvest) Release(now time.Time) (Harvest, error) {
	if !h.status.Equal(valueobject.HarvestStatusReserved) {
		return h, valueobject.NewValidationError("status", "harvest is not reserved")
	}

	next := h
	next.status = valueobject.HarvestStatusAvailable
	next.buyerID = ""
	next.updatedAt = now
	next.domainEvents = copyEvents(h.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewHarvestReleased(h.id))
	return next, nil
}

// MarkSold transitions RESERVED -> SOLD once the sale settles.
func (h Harvest) MarkSold(now time.Time) (Harvest, error) {
	if !h.status.Equal(valueobject.HarvestStatusReserved) {
		return h, valueobject.NewValidationError("status", "harvest is not reserved")
	}

	next := h
	next.status = valueobject.HarvestStatusSold
	next.updatedAt = now
	next.domainEvents = copyEvents(h.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewHarvestSold(h.id, h.buyerID, h.SalePrice(), h.currency))
	return next, nil
}

// SalePrice is quantity times unit price, rounded once to cents.
func (h Harvest) SalePrice() decimal.Decimal {
	return h.quantityKg.Mul(h.unitPrice).Round(2)
}

func (h Harvest) ID() string                         { return h.id }
func (h Harvest) FarmerID() string                   { return h.farmerID }
func (h Harvest) Crop() string                       { return h.crop }
func (h Harvest) QuantityKg() decimal.Decimal        { return h.quantityKg }
func (h Harvest) UnitPrice() decimal.Decimal         { return h.unitPrice }
func (h Harvest) Currency() string                   { return h.currency }
func (h Harvest) HarvestDate() time.Time             { return h.harvestDate }
func (h Harvest) Status() valueobject.HarvestStatus  { return h.status }
func (h Harvest) BuyerID() string                    { return h.buyerID }
func (h Harvest) Version() int                       { return h.version }
func (h Harvest) CreatedAt() time.Time               { return h.createdAt }
func (h Harvest) UpdatedAt() time.Time               { return h.updatedAt }
func (h Harvest) DomainEvents() []event.DomainEvent  { return h.domainEvents }

// ClearEvents returns a copy with an empty event list.
func (h Harvest) ClearEvents() Harvest {
	next := h
	next.domainEvents = nil
	return next
}
