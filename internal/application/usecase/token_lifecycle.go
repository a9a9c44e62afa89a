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

// TokenLifecycleUseCase records mint and redeem confirmations from the
// external settlement system. The blockchain hash is stored verbatim.
type TokenLifecycleUseCase struct {
	tokenRepo port.TokenRepository
	publisher port.EventPublisher
	locks     *keyedmutex.KeyedMutex
}

// NewTokenLifecycleUseCase wires dependencies.
func NewTokenLifecycleUseCase(
	tokenRepo port.TokenRepository,
	publisher port.EventPublisher,
	locks *keyedmutex.KeyedMutex,
) *TokenLifecycleUseCase {
	return &TokenLifecycleUseCase{
		tokenRepo: tokenRepo,
		publisher: publisher,
		locks:     locks,
	}
}

// Mint records the settlement system's mint confirmation.
func (uc *TokenLifecycleUseCase) Mint(ctx context.Context, tokenID, blockchainHash string) (dto.TokenResponse, error) {
	return uc.mutate(ctx, tokenID, func(t model.Token, now time.Time) (model.Token, error) {
		return t.Mint(blockchainHash, now)
	})
}

// Redeem records the settlement system's redemption confirmation.
func (uc *TokenLifecycleUseCase) Redeem(ctx context.Context, tokenID string) (dto.TokenResponse, error) {
	return uc.mutate(ctx, tokenID, func(t model.Token, now time.Time) (model.Token, error) {
		return t.Redeem(now)
	})
}

func (uc *TokenLifecycleUseCase) mutate(
	ctx context.Context,
	tokenID string,
	fn func(model.Token, time.Time) (model.Token, error),
) (dto.TokenResponse, error) {
	if tokenID == "" {
		return dto.TokenResponse{}, valueobject.NewValidationError("tokenId", "is required")
	}

	if err := uc.locks.Acquire(ctx, tokenID); err != nil {
		if errors.Is(err, keyedmutex.ErrBusy) {
			return dto.TokenResponse{}, fmt.Errorf("lock token %s: %w", tokenID, valueobject.ErrBusy)
		}
		return dto.TokenResponse{}, fmt.Errorf("lock token %s: %w", tokenID, err)
	}
	defer uc.locks.Release(tokenID)

	t, err := uc.tokenRepo.FindByID(ctx, tokenID)
	if err != nil {
		return dto.TokenResponse{}, fmt.Errorf("find token: %w", err)
	}

	now := time.Now().UTC()
	updated, err := fn(t, now)
	if err != nil {
		return dto.TokenResponse{}, err
	}

	if err := uc.tokenRepo.Save(ctx, updated); err != nil {
		return dto.TokenResponse{}, fmt.Errorf("save token: %w", err)
	}

	if err := uc.publisher.Publish(ctx, updated.DomainEvents()...); err != nil {
		return dto.TokenResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toTokenResponse(updated), nil
}
