package suniswap_test

import (
	"testing"

	cosmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yimingwow/suniswap-go/pkg/clmm"
	"github.com/yimingwow/suniswap-go/pkg/suniswap"
	"lukechampine.com/uint128"
)

// Pool at tick 0 (sqrt price exactly 2^64), spacing 60.
func quotePool() *suniswap.Pool {
	return &suniswap.Pool{
		SqrtPriceX64: uint128.New(0, 1),
		TickCurrent:  0,
		TickSpacing:  60,
	}
}

func TestQuoteDeposit(t *testing.T) {
	quote, err := suniswap.QuoteDeposit(quotePool(), -60, 60, 2995354955, 2995354955)
	require.NoError(t, err)

	assert.Equal(t, "999999999695", quote.Liquidity.String())
	assert.Equal(t, uint64(2995354955), quote.AmountA)
	assert.Equal(t, uint64(2995354955), quote.AmountB)
	assert.Equal(t, []int32{-480, 0}, quote.TickArrayStarts)

	// Deposit amounts never exceed budget by more than one base unit.
	assert.LessOrEqual(t, quote.AmountA, uint64(2995354955+1))
	assert.LessOrEqual(t, quote.AmountB, uint64(2995354955+1))
}

func TestQuoteDepositSingleSided(t *testing.T) {
	// Range entirely above the current price: token A only.
	quote, err := suniswap.QuoteDeposit(quotePool(), 60, 120, 1_000_000_000, 0)
	require.NoError(t, err)
	assert.True(t, quote.Liquidity.IsPositive())
	assert.NotZero(t, quote.AmountA)
	assert.Zero(t, quote.AmountB)

	// Range entirely below: token B only.
	quote, err = suniswap.QuoteDeposit(quotePool(), -120, -60, 0, 1_000_000_000)
	require.NoError(t, err)
	assert.True(t, quote.Liquidity.IsPositive())
	assert.Zero(t, quote.AmountA)
	assert.NotZero(t, quote.AmountB)
}

func TestQuoteDepositValidation(t *testing.T) {
	paused := quotePool()
	paused.IsPaused = true
	_, err := suniswap.QuoteDeposit(paused, -60, 60, 1, 1)
	assert.ErrorIs(t, err, suniswap.ErrPoolPaused)

	// Ticks misaligned to the pool spacing.
	var rangeErr *clmm.RangeError
	_, err = suniswap.QuoteDeposit(quotePool(), -61, 60, 1, 1)
	require.ErrorAs(t, err, &rangeErr)

	// Inverted range.
	_, err = suniswap.QuoteDeposit(quotePool(), 60, -60, 1, 1)
	require.Error(t, err)
}

func TestQuoteWithdrawInversionBound(t *testing.T) {
	pool := quotePool()
	deposit, err := suniswap.QuoteDeposit(pool, -60, 60, 2995354955, 2995354955)
	require.NoError(t, err)

	withdraw, err := suniswap.QuoteWithdraw(pool, -60, 60, deposit.Liquidity)
	require.NoError(t, err)

	// Withdrawal floors, deposit ceils: a round trip never pays out more
	// than it pulled in.
	assert.LessOrEqual(t, withdraw.AmountA, deposit.AmountA)
	assert.LessOrEqual(t, withdraw.AmountB, deposit.AmountB)
}

func TestQuotePositionIncludesOwedFees(t *testing.T) {
	pool := quotePool()
	position := &suniswap.Position{
		Liquidity:   uint128.From64(1_000_000_000_000),
		TickLower:   -60,
		TickUpper:   60,
		TokensOwedA: 10,
		TokensOwedB: 20,
	}

	bare, err := suniswap.QuoteWithdraw(pool, -60, 60, cosmath.NewInt(1_000_000_000_000))
	require.NoError(t, err)
	full, err := suniswap.QuotePosition(pool, position)
	require.NoError(t, err)

	assert.Equal(t, bare.AmountA+10, full.AmountA)
	assert.Equal(t, bare.AmountB+20, full.AmountB)
}

func TestQuotePositionOwedFeesOverflow(t *testing.T) {
	position := &suniswap.Position{
		Liquidity:   uint128.From64(1_000_000_000_000),
		TickLower:   -60,
		TickUpper:   60,
		TokensOwedA: ^uint64(0),
	}

	var overflowErr *clmm.OverflowError
	_, err := suniswap.QuotePosition(quotePool(), position)
	require.ErrorAs(t, err, &overflowErr)
	assert.Equal(t, 64, overflowErr.Width)
}
