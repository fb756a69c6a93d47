package suniswap

import (
	"errors"

	cosmath "cosmossdk.io/math"

	"github.com/yimingwow/suniswap-go/pkg/clmm"
)

// ErrPoolPaused is returned when quoting against a paused pool; the program
// would reject the liquidity change.
var ErrPoolPaused = errors.New("pool is paused")

// DepositQuote is a preview of opening or growing a position: the liquidity
// the budgets can back and the exact amounts the program will pull for it.
// Deposit amounts round up, so each can exceed its budget by one base unit.
type DepositQuote struct {
	TickLower int32
	TickUpper int32

	Liquidity cosmath.Int
	AmountA   uint64
	AmountB   uint64

	// Start indexes of the tick arrays the position's bounds live in, the
	// accounts an open-position transaction must reference.
	TickArrayStarts []int32
}

// QuoteDeposit previews adding liquidity to pool between two ticks given
// token budgets. Ticks must be aligned to the pool's spacing.
func QuoteDeposit(pool *Pool, tickLower, tickUpper int32, budgetA, budgetB uint64) (*DepositQuote, error) {
	if pool.IsPaused {
		return nil, ErrPoolPaused
	}
	if err := clmm.ValidateTick(tickLower, pool.TickSpacing); err != nil {
		return nil, err
	}
	if err := clmm.ValidateTick(tickUpper, pool.TickSpacing); err != nil {
		return nil, err
	}

	sqrtLower, err := clmm.SqrtPriceX64FromTick(tickLower)
	if err != nil {
		return nil, err
	}
	sqrtUpper, err := clmm.SqrtPriceX64FromTick(tickUpper)
	if err != nil {
		return nil, err
	}

	liquidity, err := clmm.LiquidityForAmounts(pool.SqrtPrice(), sqrtLower, sqrtUpper, budgetA, budgetB)
	if err != nil {
		return nil, err
	}
	amountA, amountB, err := clmm.AmountsForLiquidity(pool.SqrtPrice(), sqrtLower, sqrtUpper, liquidity, clmm.RoundUp)
	if err != nil {
		return nil, err
	}
	starts, err := clmm.StartIndexesForRange(tickLower, tickUpper, pool.TickSpacing)
	if err != nil {
		return nil, err
	}

	return &DepositQuote{
		TickLower:       tickLower,
		TickUpper:       tickUpper,
		Liquidity:       liquidity,
		AmountA:         amountA,
		AmountB:         amountB,
		TickArrayStarts: starts,
	}, nil
}

// WithdrawQuote is a preview of removing liquidity: the amounts the program
// will pay out, rounded down in the withdrawer's disfavor.
type WithdrawQuote struct {
	AmountA uint64
	AmountB uint64
}

// QuoteWithdraw previews removing liquidity from pool between two ticks.
// Pass a partial amount or the full position liquidity.
func QuoteWithdraw(pool *Pool, tickLower, tickUpper int32, liquidity cosmath.Int) (*WithdrawQuote, error) {
	if pool.IsPaused {
		return nil, ErrPoolPaused
	}
	if err := clmm.ValidateTick(tickLower, pool.TickSpacing); err != nil {
		return nil, err
	}
	if err := clmm.ValidateTick(tickUpper, pool.TickSpacing); err != nil {
		return nil, err
	}

	sqrtLower, err := clmm.SqrtPriceX64FromTick(tickLower)
	if err != nil {
		return nil, err
	}
	sqrtUpper, err := clmm.SqrtPriceX64FromTick(tickUpper)
	if err != nil {
		return nil, err
	}

	amountA, amountB, err := clmm.AmountsForLiquidity(pool.SqrtPrice(), sqrtLower, sqrtUpper, liquidity, clmm.RoundDown)
	if err != nil {
		return nil, err
	}
	return &WithdrawQuote{AmountA: amountA, AmountB: amountB}, nil
}

// QuotePosition previews the full withdrawal of an existing position,
// uncollected fees included.
func QuotePosition(pool *Pool, position *Position) (*WithdrawQuote, error) {
	quote, err := QuoteWithdraw(pool, position.TickLower, position.TickUpper, position.LiquidityInt())
	if err != nil {
		return nil, err
	}
	quote.AmountA, err = addOwed("add owed tokens A", quote.AmountA, position.TokensOwedA)
	if err != nil {
		return nil, err
	}
	quote.AmountB, err = addOwed("add owed tokens B", quote.AmountB, position.TokensOwedB)
	if err != nil {
		return nil, err
	}
	return quote, nil
}

// addOwed adds uncollected fees to a withdrawal amount. Owed tokens come
// straight off the ledger, so the sum is checked rather than trusted.
func addOwed(op string, amount, owed uint64) (uint64, error) {
	total := cosmath.NewIntFromUint64(amount).Add(cosmath.NewIntFromUint64(owed))
	if !total.IsUint64() {
		return 0, &clmm.OverflowError{Op: op, Value: total.String(), Width: 64}
	}
	return total.Uint64(), nil
}
