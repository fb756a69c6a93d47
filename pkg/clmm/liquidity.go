package clmm

import (
	cosmath "cosmossdk.io/math"
)

// Rounding selects the direction a token amount is rounded. The settlement
// program rounds amounts the pool receives up and amounts it pays out down;
// callers state the direction explicitly on every conversion.
type Rounding uint8

const (
	RoundDown Rounding = iota + 1
	RoundUp
)

func (r Rounding) validate() error {
	if r != RoundDown && r != RoundUp {
		return &RoundingModeError{Mode: r}
	}
	return nil
}

// mulDivFloor returns floor(a*b/denominator).
func mulDivFloor(a, b, denominator cosmath.Int) cosmath.Int {
	return a.Mul(b).Quo(denominator)
}

// mulDivCeil returns ceil(a*b/denominator).
func mulDivCeil(a, b, denominator cosmath.Int) cosmath.Int {
	numerator := a.Mul(b).Add(denominator.Sub(cosmath.OneInt()))
	return numerator.Quo(denominator)
}

func mulDiv(a, b, denominator cosmath.Int, rounding Rounding) cosmath.Int {
	if rounding == RoundUp {
		return mulDivCeil(a, b, denominator)
	}
	return mulDivFloor(a, b, denominator)
}

func sortSqrtPrices(a, b cosmath.Int) (cosmath.Int, cosmath.Int) {
	if a.GT(b) {
		return b, a
	}
	return a, b
}

func narrowUint64(op string, v cosmath.Int) (uint64, error) {
	if !v.IsUint64() {
		return 0, &OverflowError{Op: op, Value: v.String(), Width: 64}
	}
	return v.Uint64(), nil
}

// AmountADelta returns the token A amount backing liquidity between two sqrt
// prices. The bounds may be passed in either order.
//
// amountA = L * 2^64 * (upper - lower) / (upper * lower)
//
// Computed in two mulDiv steps so intermediates stay narrow; both steps round
// in the requested direction.
func AmountADelta(sqrtPriceAX64, sqrtPriceBX64, liquidity cosmath.Int, rounding Rounding) (uint64, error) {
	if err := rounding.validate(); err != nil {
		return 0, err
	}
	lower, upper := sortSqrtPrices(sqrtPriceAX64, sqrtPriceBX64)
	if !lower.IsPositive() {
		return 0, &RangeError{
			Name:  "sqrtPriceX64",
			Value: lower.String(),
			Min:   MinSqrtPriceX64.String(),
			Max:   MaxSqrtPriceX64.String(),
		}
	}
	diff := upper.Sub(lower)
	intermediate := mulDiv(liquidity, diff, upper, rounding)
	result := mulDiv(intermediate, Q64Int, lower, rounding)
	return narrowUint64("amount A delta", result)
}

// AmountBDelta returns the token B amount backing liquidity between two sqrt
// prices. The bounds may be passed in either order.
//
// amountB = L * (upper - lower) / 2^64
func AmountBDelta(sqrtPriceAX64, sqrtPriceBX64, liquidity cosmath.Int, rounding Rounding) (uint64, error) {
	if err := rounding.validate(); err != nil {
		return 0, err
	}
	lower, upper := sortSqrtPrices(sqrtPriceAX64, sqrtPriceBX64)
	diff := upper.Sub(lower)
	result := mulDiv(liquidity, diff, Q64Int, rounding)
	return narrowUint64("amount B delta", result)
}

// AmountsForLiquidity returns the token amounts a position with the given
// liquidity holds at the current price. Below range the position is all
// token A, above range all token B, in range a mix split at the current
// price.
func AmountsForLiquidity(sqrtPriceCurrentX64, sqrtPriceLowerX64, sqrtPriceUpperX64, liquidity cosmath.Int, rounding Rounding) (amountA, amountB uint64, err error) {
	if err := rounding.validate(); err != nil {
		return 0, 0, err
	}
	if sqrtPriceLowerX64.GTE(sqrtPriceUpperX64) {
		return 0, 0, &RangeError{
			Name:  "sqrtPriceLowerX64",
			Value: sqrtPriceLowerX64.String(),
			Min:   MinSqrtPriceX64.String(),
			Max:   sqrtPriceUpperX64.String(),
		}
	}

	switch {
	case sqrtPriceCurrentX64.LTE(sqrtPriceLowerX64):
		amountA, err = AmountADelta(sqrtPriceLowerX64, sqrtPriceUpperX64, liquidity, rounding)
	case sqrtPriceCurrentX64.LT(sqrtPriceUpperX64):
		amountA, err = AmountADelta(sqrtPriceCurrentX64, sqrtPriceUpperX64, liquidity, rounding)
		if err != nil {
			return 0, 0, err
		}
		amountB, err = AmountBDelta(sqrtPriceLowerX64, sqrtPriceCurrentX64, liquidity, rounding)
	default:
		amountB, err = AmountBDelta(sqrtPriceLowerX64, sqrtPriceUpperX64, liquidity, rounding)
	}
	if err != nil {
		return 0, 0, err
	}
	return amountA, amountB, nil
}

// LiquidityForAmountA returns the greatest liquidity fully backed by amountA
// between two sqrt prices (floor; the inverse of AmountADelta).
func LiquidityForAmountA(sqrtPriceAX64, sqrtPriceBX64 cosmath.Int, amountA uint64) (cosmath.Int, error) {
	lower, upper := sortSqrtPrices(sqrtPriceAX64, sqrtPriceBX64)
	if !lower.IsPositive() || lower.Equal(upper) {
		return cosmath.Int{}, &RangeError{
			Name:  "sqrtPriceX64",
			Value: lower.String(),
			Min:   MinSqrtPriceX64.String(),
			Max:   MaxSqrtPriceX64.String(),
		}
	}
	diff := upper.Sub(lower)
	intermediate := mulDivFloor(cosmath.NewIntFromUint64(amountA), upper, diff)
	return mulDivFloor(intermediate, lower, Q64Int), nil
}

// LiquidityForAmountB returns the greatest liquidity fully backed by amountB
// between two sqrt prices (floor; the inverse of AmountBDelta).
func LiquidityForAmountB(sqrtPriceAX64, sqrtPriceBX64 cosmath.Int, amountB uint64) (cosmath.Int, error) {
	lower, upper := sortSqrtPrices(sqrtPriceAX64, sqrtPriceBX64)
	if lower.Equal(upper) {
		return cosmath.Int{}, &RangeError{
			Name:  "sqrtPriceX64",
			Value: lower.String(),
			Min:   MinSqrtPriceX64.String(),
			Max:   MaxSqrtPriceX64.String(),
		}
	}
	diff := upper.Sub(lower)
	return mulDivFloor(cosmath.NewIntFromUint64(amountB), Q64Int, diff), nil
}

// LiquidityForAmounts returns the greatest liquidity both token budgets can
// back at the current price. In range it takes the binding side, so the
// round trip through AmountsForLiquidity with RoundDown never exceeds the
// budgets.
func LiquidityForAmounts(sqrtPriceCurrentX64, sqrtPriceLowerX64, sqrtPriceUpperX64 cosmath.Int, amountA, amountB uint64) (cosmath.Int, error) {
	if sqrtPriceLowerX64.GTE(sqrtPriceUpperX64) {
		return cosmath.Int{}, &RangeError{
			Name:  "sqrtPriceLowerX64",
			Value: sqrtPriceLowerX64.String(),
			Min:   MinSqrtPriceX64.String(),
			Max:   sqrtPriceUpperX64.String(),
		}
	}

	if sqrtPriceCurrentX64.LTE(sqrtPriceLowerX64) {
		return LiquidityForAmountA(sqrtPriceLowerX64, sqrtPriceUpperX64, amountA)
	}
	if sqrtPriceCurrentX64.LT(sqrtPriceUpperX64) {
		liquidityA, err := LiquidityForAmountA(sqrtPriceCurrentX64, sqrtPriceUpperX64, amountA)
		if err != nil {
			return cosmath.Int{}, err
		}
		liquidityB, err := LiquidityForAmountB(sqrtPriceLowerX64, sqrtPriceCurrentX64, amountB)
		if err != nil {
			return cosmath.Int{}, err
		}
		if liquidityA.LT(liquidityB) {
			return liquidityA, nil
		}
		return liquidityB, nil
	}
	return LiquidityForAmountB(sqrtPriceLowerX64, sqrtPriceUpperX64, amountB)
}

// AddLiquidityDelta applies a signed liquidity delta to a u128 liquidity
// value, failing on under- or overflow instead of wrapping.
func AddLiquidityDelta(liquidity, delta cosmath.Int) (cosmath.Int, error) {
	result := liquidity.Add(delta)
	if result.IsNegative() || result.GT(MaxUint128Int) {
		return cosmath.Int{}, &OverflowError{Op: "add liquidity delta", Value: result.String(), Width: 128}
	}
	return result, nil
}
