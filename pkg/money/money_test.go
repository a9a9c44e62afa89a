package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makrochain/loan-service/pkg/money"
)

func TestRound(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2.344", "2.34"},
		{"2.345", "2.35"},
		{"2.5", "2.5"},
		{"1074.98925", "1074.99"},
		{"0.005", "0.01"},
		{"100", "100"},
	}
	for _, tc := range cases {
		in, err := decimal.NewFromString(tc.in)
		require.NoError(t, err)
		want, err := decimal.NewFromString(tc.want)
		require.NoError(t, err)
		assert.True(t, money.Round(in).Equal(want),
			"Round(%s) should be %s, got %s", tc.in, tc.want, money.Round(in))
	}
}

func TestNewCurrency(t *testing.T) {
	c, err := money.NewCurrency("KES")
	require.NoError(t, err)
	assert.Equal(t, "KES", c.Code())

	for _, bad := range []string{"", "usd", "US", "USDT", "U$D"} {
		_, err := money.NewCurrency(bad)
		assert.Error(t, err, "currency %q should be rejected", bad)
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	a, err := money.NewFromString("100.50", "USD")
	require.NoError(t, err)
	b, err := money.NewFromString("24.50", "USD")
	require.NoError(t, err)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "125.00 USD", sum.String())

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.Equal(t, "76.00 USD", diff.String())
}

func TestMoney_CurrencyMismatch(t *testing.T) {
	usd := money.New(decimal.NewFromInt(10), money.USD)
	kes := money.New(decimal.NewFromInt(10), money.KES)

	_, err := usd.Add(kes)
	require.Error(t, err)

	_, err = usd.Subtract(kes)
	require.Error(t, err)
}

func TestMoney_Zero(t *testing.T) {
	z := money.Zero(money.ZMW)
	assert.True(t, z.IsZero())
	assert.False(t, z.IsPositive())
	assert.Equal(t, "0.00 ZMW", z.String())
}
