package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makrochain/loan-service/internal/application/usecase"
	"github.com/makrochain/loan-service/internal/domain/model"
	"github.com/makrochain/loan-service/internal/domain/valueobject"
)

func unmintedTestToken(t *testing.T) model.Token {
	t.Helper()
	token, err := model.NewToken("harvest-1", fixtureIssued)
	require.NoError(t, err)
	return token
}

func newTokenUC(token model.Token) (*usecase.TokenLifecycleUseCase, *mockTokenRepository, *mockEventPublisher) {
	tokenRepo := &mockTokenRepository{
		findByIDFunc: func(_ context.Context, _ string) (model.Token, error) {
			return token, nil
		},
	}
	publisher := &mockEventPublisher{}
	return usecase.NewTokenLifecycleUseCase(tokenRepo, publisher, newLocks()), tokenRepo, publisher
}

func TestTokenLifecycle_Execute(t *testing.T) {
	t.Run("mints an unminted token", func(t *testing.T) {
		token := unmintedTestToken(t)
		uc, tokenRepo, publisher := newTokenUC(token)

		resp, err := uc.Mint(context.Background(), token.ID(), "0xabc123")

		require.NoError(t, err)
		assert.Equal(t, "MINTED", resp.Status)
		assert.Equal(t, "0xabc123", resp.BlockchainHash)
		require.NotNil(t, resp.MintedAt)
		require.Len(t, tokenRepo.savedTokens, 1)
		assert.Contains(t, publisher.eventTypes(), "token.minted")
	})

	t.Run("mint requires a hash", func(t *testing.T) {
		token := unmintedTestToken(t)
		uc, tokenRepo, _ := newTokenUC(token)

		_, err := uc.Mint(context.Background(), token.ID(), "")

		require.Error(t, err)
		var validationErr *valueobject.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Empty(t, tokenRepo.savedTokens)
	})

	t.Run("redeems a minted token", func(t *testing.T) {
		token := unmintedTestToken(t)
		minted, err := token.Mint("0xabc123", fixtureIssued)
		require.NoError(t, err)
		uc, _, publisher := newTokenUC(minted.ClearEvents())

		resp, err := uc.Redeem(context.Background(), token.ID())

		require.NoError(t, err)
		assert.Equal(t, "REDEEMED", resp.Status)
		require.NotNil(t, resp.RedeemedAt)
		assert.Contains(t, publisher.eventTypes(), "token.redeemed")
	})

	t.Run("cannot redeem before minting", func(t *testing.T) {
		token := unmintedTestToken(t)
		uc, tokenRepo, _ := newTokenUC(token)

		_, err := uc.Redeem(context.Background(), token.ID())

		require.Error(t, err)
		var validationErr *valueobject.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Empty(t, tokenRepo.savedTokens)
	})

	t.Run("cannot mint twice", func(t *testing.T) {
		token := unmintedTestToken(t)
		minted, err := token.Mint("0xabc123", fixtureIssued)
		require.NoError(t, err)
		uc, _, _ := newTokenUC(minted.ClearEvents())

		_, err = uc.Mint(context.Background(), token.ID(), "0xdef456")

		require.Error(t, err)
		var validationErr *valueobject.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("empty id is rejected", func(t *testing.T) {
		uc := usecase.NewTokenLifecycleUseCase(&mockTokenRepository{}, &mockEventPublisher{}, newLocks())

		_, err := uc.Mint(context.Background(), "", "0xabc123")

		require.Error(t, err)
		var validationErr *valueobject.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("not found", func(t *testing.T) {
		uc := usecase.NewTokenLifecycleUseCase(&mockTokenRepository{}, &mockEventPublisher{}, newLocks())

		_, err := uc.Redeem(context.Background(), "missing")
		assert.ErrorIs(t, err, valueobject.ErrNotFound)
	})
}
