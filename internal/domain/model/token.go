package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/makrochain/loan-service/internal/domain/event"
	"github.com/makrochain/loan-service/internal/domain/valueobject"
)

// Token represents a harvest's claim on the external settlement system. The
// blockchain hash is an opaque identifier passed through verbatim; nothing is
// settled locally.
type Token struct {
	id             string
	harvestID      string
	blockchainHash string
	status         valueobject.TokenStatus
	mintedAt       *time.Time
	redeemedAt     *time.Time

	version      int
	createdAt    time.Time
	updatedAt    time.Time
	domainEvents []event.DomainEvent
}

// NewToken creates a token in UNMINTED status for a harvest.
func NewToken(harvestID string, now time.Time) (Token, error) {
	if harvestID == "" {
		return Token{}, valueobject.NewValidationError("harvestId", "is required")
	}

	return Token{
		id:        uuid.New().String(),
		harvestID: harvestID,
		status:    valueobject.TokenStatusUnminted,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructToken rebuilds a Token aggregate from persistence.
func ReconstructToken(
	id, harvestID, blockchainHash string,
	status valueobject.TokenStatus,
	mintedAt, redeemedAt *time.Time,
	version int,
	createdAt, updatedAt time.Time,
) Token {
	return Token{
		id:             id,
		harvestID:      harvestID,
		blockchainHash: blockchainHash,
		status:         status,
		mintedAt:       mintedAt,
		redeemedAt:     redeemedAt,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// Mint transitions UNMINTED -> MINTED with the settlement system's hash.
func (t Token) Mint(blockchainHash string, now time.Time) (Token, error) {
	if blockchainHash == "" {
		return t, valueobject.NewValidationError("blockchainHash", "is required")
	}
	if !t.status.Equal(valueobject.TokenStatusUnminted) {
		return t, valueobject.NewValidationError("status", "token is not unminted")
	}

	next := t
	next.status = valueobject.TokenStatusMinted
	next.blockchainHash = blockchainHash
	at := now
	next.mintedAt = &at
	next.updatedAt = now
	next.domainEvents = copyEvents(t.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewTokenMinted(t.id, t.harvestID, blockchainHash))
	return next, nil
}

// Redeem transitions MINTED -> REDEEMED.
func (t Token) Redeem(now time.Time) (Token, error) {
	if !t.status.Equal(valueobject.TokenStatusMinted) {
		return t, valueobject.NewValidationError("status", "token is not minted")
	}

	next := t
	next.status = valueobject.TokenStatusRedeemed
	at := now
	next.redeemedAt = &at
	next.updatedAt = now
	next.domainEvents = copyEvents(t.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewTokenRedeemed(t.id, t.harvestID))
	return next, nil
}

func (t Token) ID() string                        { return t.id }
func (t Token) HarvestID() string                 { return t.harvestID }
func (t Token) BlockchainHash() string            { return t.blockchainHash }
func (t Token) Status() valueobject.TokenStatus   { return t.status }
func (t Token) MintedAt() *time.Time              { return t.mintedAt }
func (t Token) RedeemedAt() *time.Time            { return t.redeemedAt }
func (t Token) Version() int                      { return t.version }
func (t Token) CreatedAt() time.Time              { return t.createdAt }
func (t Token) UpdatedAt() time.Time              { return t.updatedAt }
func (t Token) DomainEvents() []event.DomainEvent { return t.domainEvents }

// ClearEvents returns a copy with an empty event list.
func (t Token) ClearEvents() Token {
	next := t
	next.domainEvents = nil
	return next
}
