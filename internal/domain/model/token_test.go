package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makrochain/loan-service/internal/domain/model"
	"github.com/makrochain/loan-service/internal/domain/valueobject"
)

func TestToken_Lifecycle(t *testing.T) {
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	token, err := model.NewToken("harvest-1", now)
	require.NoError(t, err)
	assert.True(t, token.Status().Equal(valueobject.TokenStatusUnminted))
	assert.Empty(t, token.BlockchainHash())

	minted, err := token.Mint("0xabc123", now)
	require.NoError(t, err)
	assert.True(t, minted.Status().Equal(valueobject.TokenStatusMinted))
	assert.Equal(t, "0xabc123", minted.BlockchainHash())
	require.NotNil(t, minted.MintedAt())

	redeemed, err := minted.Redeem(now)
	require.NoError(t, err)
	assert.True(t, redeemed.Status().Equal(valueobject.TokenStatusRedeemed))
	require.NotNil(t, redeemed.RedeemedAt())
}

func TestToken_InvalidTransitions(t *testing.T) {
	now := time.Now().UTC()
	token, err := model.NewToken("harvest-1", now)
	require.NoError(t, err)

	t.Run("mint requires hash", func(t *testing.T) {
		_, err := token.Mint("", now)
		require.Error(t, err)
	})

	t.Run("redeem before mint", func(t *testing.T) {
		_, err := token.Redeem(now)
		require.Error(t, err)
	})

	t.Run("double mint", func(t *testing.T) {
		minted, err := token.Mint("0xabc", now)
		require.NoError(t, err)
		_, err = minted.Mint("0xdef", now)
		require.Error(t, err)
	})
}
