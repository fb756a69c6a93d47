package clmm

import (
	"math/big"

	cosmath "cosmossdk.io/math"
	"github.com/shopspring/decimal"
)

// Price conversions between the Q64.64 sqrt representation and human-unit
// decimal prices (token B per token A). Decimal scale is always explicit;
// nothing here touches decimal.DivisionPrecision or any other global.

var q128Decimal = decimal.NewFromBigInt(Q128, 0)

// PriceFromSqrtPriceX64 converts a Q64.64 sqrt price to a human-unit price,
// rounded half away from zero to scale fractional digits.
//
// price = (sqrtPriceX64 / 2^64)^2 * 10^(decimalsA - decimalsB)
func PriceFromSqrtPriceX64(sqrtPriceX64 cosmath.Int, decimalsA, decimalsB uint8, scale int32) (decimal.Decimal, error) {
	if err := validateSqrtPrice(sqrtPriceX64); err != nil {
		return decimal.Decimal{}, err
	}
	sq := new(big.Int).Mul(sqrtPriceX64.BigInt(), sqrtPriceX64.BigInt())
	num := decimal.NewFromBigInt(sq, int32(decimalsA)-int32(decimalsB))
	return num.DivRound(q128Decimal, scale), nil
}

// SqrtPriceX64FromPrice converts a human-unit price to the greatest Q64.64
// sqrt price not exceeding it. The result must land inside the sqrt price
// domain or a RangeError is returned.
func SqrtPriceX64FromPrice(price decimal.Decimal, decimalsA, decimalsB uint8) (cosmath.Int, error) {
	if price.Sign() <= 0 {
		return cosmath.Int{}, &RangeError{
			Name:  "price",
			Value: price.String(),
			Min:   ">0",
			Max:   "+inf",
		}
	}

	// target = price * 10^(decimalsB-decimalsA) * 2^128; the wanted result is
	// floor(sqrt(target)) since sqrt(raw price) * 2^64 = sqrt(raw * 2^128).
	target := new(big.Rat).SetFrac(price.Coefficient(), big.NewInt(1))
	applyPow10(target, price.Exponent()+int32(decimalsB)-int32(decimalsA))
	target.Mul(target, new(big.Rat).SetInt(Q128))

	root := floatSqrtEstimate(target)
	exactFloorSqrt(root, target)

	out := cosmath.NewIntFromBigInt(root)
	if err := validateSqrtPrice(out); err != nil {
		return cosmath.Int{}, err
	}
	return out, nil
}

// PriceFromTick is PriceFromSqrtPriceX64 over the tick codec.
func PriceFromTick(tick int32, decimalsA, decimalsB uint8, scale int32) (decimal.Decimal, error) {
	sqrtPrice, err := SqrtPriceX64FromTick(tick)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return PriceFromSqrtPriceX64(sqrtPrice, decimalsA, decimalsB, scale)
}

// TickFromPrice returns the greatest tick whose price does not exceed the
// given human-unit price.
func TickFromPrice(price decimal.Decimal, decimalsA, decimalsB uint8) (int32, error) {
	sqrtPrice, err := SqrtPriceX64FromPrice(price, decimalsA, decimalsB)
	if err != nil {
		return 0, err
	}
	return TickFromSqrtPriceX64(sqrtPrice)
}

// InvertedPrice flips a B-per-A price into A-per-B, rounded half away from
// zero to scale fractional digits. Used after OrderMints reports a reversed
// pair.
func InvertedPrice(price decimal.Decimal, scale int32) (decimal.Decimal, error) {
	if price.Sign() <= 0 {
		return decimal.Decimal{}, &RangeError{
			Name:  "price",
			Value: price.String(),
			Min:   ">0",
			Max:   "+inf",
		}
	}
	return decimal.New(1, 0).DivRound(price, scale), nil
}

func validateSqrtPrice(sqrtPriceX64 cosmath.Int) error {
	if sqrtPriceX64.IsNil() || sqrtPriceX64.LT(MinSqrtPriceX64) || sqrtPriceX64.GT(MaxSqrtPriceX64) {
		value := "nil"
		if !sqrtPriceX64.IsNil() {
			value = sqrtPriceX64.String()
		}
		return &RangeError{
			Name:  "sqrtPriceX64",
			Value: value,
			Min:   MinSqrtPriceX64.String(),
			Max:   MaxSqrtPriceX64.String(),
		}
	}
	return nil
}

func applyPow10(r *big.Rat, exp int32) {
	if exp == 0 {
		return
	}
	abs := exp
	if abs < 0 {
		abs = -abs
	}
	pow := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(abs)), nil)
	if exp > 0 {
		r.Mul(r, new(big.Rat).SetInt(pow))
	} else {
		r.Quo(r, new(big.Rat).SetInt(pow))
	}
}

// floatSqrtEstimate returns an integer close to floor(sqrt(target)) using a
// 256-bit mantissa big.Float. The caller fixes the last ulps exactly.
func floatSqrtEstimate(target *big.Rat) *big.Int {
	f := new(big.Float).SetPrec(256).SetRat(target)
	root := new(big.Float).SetPrec(256).Sqrt(f)
	out, _ := root.Int(nil)
	return out
}

// exactFloorSqrt adjusts root in place until root = floor(sqrt(target)),
// comparing root^2 against the rational target without any float rounding.
func exactFloorSqrt(root *big.Int, target *big.Rat) {
	if root.Sign() < 0 {
		root.SetInt64(0)
	}
	num, den := target.Num(), target.Denom()
	one := big.NewInt(1)
	// root^2 * den <= num  <=>  root <= sqrt(target)
	square := func(v *big.Int) *big.Int {
		s := new(big.Int).Mul(v, v)
		return s.Mul(s, den)
	}
	for root.Sign() > 0 && square(root).Cmp(num) > 0 {
		root.Sub(root, one)
	}
	for {
		next := new(big.Int).Add(root, one)
		if square(next).Cmp(num) > 0 {
			return
		}
		root.Set(next)
	}
}
