package clmm_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yimingwow/suniswap-go/pkg/clmm"
)

func TestPriceFromSqrtPriceX64(t *testing.T) {
	// sqrt price 2^64 is raw price 1.0; with a 9-decimal token A against a
	// 6-decimal token B the human price is 1000.
	q64 := mustInt(t, "18446744073709551616")
	price, err := clmm.PriceFromSqrtPriceX64(q64, 9, 6, 6)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(1000)), "got %s", price)

	// Equal decimals: raw price passes through.
	price, err = clmm.PriceFromSqrtPriceX64(q64, 6, 6, 6)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(1)), "got %s", price)

	// Reversed decimal gap scales the other way.
	price, err = clmm.PriceFromSqrtPriceX64(q64, 6, 9, 6)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.RequireFromString("0.001")), "got %s", price)
}

func TestPriceFromSqrtPriceX64OutOfRange(t *testing.T) {
	_, err := clmm.PriceFromSqrtPriceX64(clmm.MinSqrtPriceX64.SubRaw(1), 9, 6, 6)
	var rangeErr *clmm.RangeError
	require.ErrorAs(t, err, &rangeErr)

	_, err = clmm.PriceFromSqrtPriceX64(clmm.MaxSqrtPriceX64.AddRaw(1), 9, 6, 6)
	require.ErrorAs(t, err, &rangeErr)
}

func TestSqrtPriceX64FromPrice(t *testing.T) {
	// Price 1000 with 9/6 decimals is raw price 1.0, so exactly 2^64.
	got, err := clmm.SqrtPriceX64FromPrice(decimal.NewFromInt(1000), 9, 6)
	require.NoError(t, err)
	assert.Equal(t, "18446744073709551616", got.String())

	// floor(sqrt(1.01) * 2^64) with equal decimals.
	got, err = clmm.SqrtPriceX64FromPrice(decimal.RequireFromString("1.01"), 6, 6)
	require.NoError(t, err)
	assert.Equal(t, "18538748355542988169", got.String())
}

func TestSqrtPriceX64FromPriceRejectsNonPositive(t *testing.T) {
	var rangeErr *clmm.RangeError
	_, err := clmm.SqrtPriceX64FromPrice(decimal.Zero, 6, 6)
	require.ErrorAs(t, err, &rangeErr)
	_, err = clmm.SqrtPriceX64FromPrice(decimal.NewFromInt(-1), 6, 6)
	require.ErrorAs(t, err, &rangeErr)
}

func TestTickFromPrice(t *testing.T) {
	// 1.0001^99 <= 1.01 < 1.0001^100
	tick, err := clmm.TickFromPrice(decimal.RequireFromString("1.01"), 6, 6)
	require.NoError(t, err)
	assert.Equal(t, int32(99), tick)

	// Raw price exactly 1.0 is tick 0.
	tick, err = clmm.TickFromPrice(decimal.NewFromInt(1000), 9, 6)
	require.NoError(t, err)
	assert.Equal(t, int32(0), tick)
}

func TestPriceFromTickRoundTrip(t *testing.T) {
	for _, tick := range []int32{-1000, -120, -1, 0, 1, 120, 1000, 39122} {
		price, err := clmm.PriceFromTick(tick, 6, 6, 18)
		require.NoError(t, err)
		got, err := clmm.TickFromPrice(price, 6, 6)
		require.NoError(t, err)
		// Rounding the decimal at 18 digits can land a hair under the exact
		// tick price, flooring to the tick below.
		assert.InDelta(t, tick, got, 1, "tick %d", tick)
	}
}

func TestInvertedPrice(t *testing.T) {
	inv, err := clmm.InvertedPrice(decimal.RequireFromString("0.001"), 6)
	require.NoError(t, err)
	assert.True(t, inv.Equal(decimal.NewFromInt(1000)), "got %s", inv)

	inv, err = clmm.InvertedPrice(decimal.NewFromInt(8), 6)
	require.NoError(t, err)
	assert.True(t, inv.Equal(decimal.RequireFromString("0.125")), "got %s", inv)

	var rangeErr *clmm.RangeError
	_, err = clmm.InvertedPrice(decimal.Zero, 6)
	require.ErrorAs(t, err, &rangeErr)
}
