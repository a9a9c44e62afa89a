package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/makrochain/loan-service/internal/application/dto"
	"github.com/makrochain/loan-service/internal/domain/model"
	"github.com/makrochain/loan-service/internal/domain/port"
	"github.com/makrochain/loan-service/internal/domain/valueobject"
	"github.com/makrochain/loan-service/pkg/keyedmutex"
)

// HarvestLifecycleUseCase drives the marketplace side: registering harvests,
// reserving them for buyers, and settling sales. A settled sale creates an
// UNMINTED token for the external settlement system.
type HarvestLifecycleUseCase struct {
	harvestRepo port.HarvestRepository
	tokenRepo   port.TokenRepository
	publisher   port.EventPublisher
	locks       *keyedmutex.KeyedMutex
}

// NewHarvestLifecycleUseCase wires dependencies.
func NewHarvestLifecycleUseCase(
	harvestRepo port.HarvestRepository,
	tokenRepo port.TokenRepository,
	publisher port.EventPublisher,
	locks *keyedmutex.KeyedMutex,
) *HarvestLifecycleUseCase {
	return &HarvestLifecycleUseCase{
		harvestRepo: harvestRepo,
		tokenRepo:   tokenRepo,
		publisher:   publisher,
		locks:       locks,
	}
}

// Register creates a harvest in AVAILABLE status.
func (uc *HarvestLifecycleUseCase) Register(ctx context.Context, req dto.RegisterHarvestRequest) (dto.HarvestResponse, error) {
	now := time.Now().UTC()

	h, err := model.NewHarvest(req.FarmerID, req.Crop, req.QuantityKg, req.UnitPrice, req.Currency, req.HarvestDate, now)
	if err != nil {
		return dto.HarvestResponse{}, fmt.Errorf("register harvest: %w", err)
	}

	if err := uc.harvestRepo.Save(ctx, h); err != nil {
		return dto.HarvestResponse{}, fmt.Errorf("save harvest: %w", err)
	}
	return toHarvestResponse(h), nil
}

// Reserve holds an AVAILABLE harvest for a buyer.
func (uc *HarvestLifecycleUseCase) Reserve(ctx context.Context, harvestID, buyerID string) (dto.HarvestResponse, error) {
	return uc.mutate(ctx, harvestID, func(h model.Harvest, now time.Time) (model.Harvest, error) {
		return h.Reserve(buyerID, now)
	})
}

// Release returns a RESERVED harvest to the market.
func (uc *HarvestLifecycleUseCase) Release(ctx context.Context, harvestID string) (dto.HarvestResponse, error) {
	return uc.mutate(ctx, harvestID, func(h model.Harvest, now time.Time) (model.Harvest, error) {
		return h.Release(now)
	})
}

// Sell settles a RESERVED harvest and creates its token.
func (uc *HarvestLifecycleUseCase) Sell(ctx context.Context, harvestID string) (dto.HarvestResponse, error) {
	resp, err := uc.mutate(ctx, harvestID, func(h model.Harvest, now time.Time) (model.Harvest, error) {
		return h.MarkSold(now)
	})
	if err != nil {
		return dto.HarvestResponse{}, err
	}

	now := time.Now().UTC()
	token, err := model.NewToken(harvestID, now)
	if err != nil {
		return dto.HarvestResponse{}, fmt.Errorf("create token: %w", err)
	}
	if err := uc.tokenRepo.Save(ctx, token); err != nil {
		return dto.HarvestResponse{}, fmt.Errorf("save token: %w", err)
	}

	return resp, nil
}

func (uc *HarvestLifecycleUseCase) mutate(
	ctx context.Context,
	harvestID string,
	fn func(model.Harvest, time.Time) (model.Harvest, error),
) (dto.HarvestResponse, error) {
	if harvestID == "" {
		return dto.HarvestResponse{}, valueobject.NewValidationError("harvestId", "is required")
	}

	if err := uc.locks.Acquire(ctx, harvestID); err != nil {
		if errors.Is(err, keyedmutex.ErrBusy) {
			return dto.HarvestResponse{}, fmt.Errorf("lock harvest %s: %w", harvestID, valueobject.ErrBusy)
		}
		return dto.HarvestResponse{}, fmt.Errorf("lock harvest %s: %w", harvestID, err)
	}
	defer uc.locks.Release(harvestID)

	h, err := uc.harvestRepo.FindByID(ctx, harvestID)
	if err != nil {
		return dto.HarvestResponse{}, fmt.Errorf("find harvest: %w", err)
	}

	now := time.Now().UTC()
	updated, err := fn(h, now)
	if err != nil {
		return dto.HarvestResponse{}, err
	}

	if err := uc.harvestRepo.Save(ctx, updated); err != nil {
		return dto.HarvestResponse{}, fmt.Errorf("save harvest: %w", err)
	}

	if err := uc.publisher.Publish(ctx, updated.DomainEvents()...); err != nil {
		return dto.HarvestResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toHarvestResponse(updated), nil
}
