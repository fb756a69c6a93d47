package clmm

import (
	"math/big"

	cosmath "cosmossdk.io/math"
)

const (
	// Tick domain of the settlement program
	MinTick int32 = -443636
	MaxTick int32 = 443636

	// Ticks per tick array account
	TickArraySize int32 = 8

	MaxTickSpacing uint16 = 16384

	// Fee rates are expressed in hundredths of a basis point
	FeeRateDenominator uint32 = 1_000_000

	// Tick array accounts a swap instruction carries
	DefaultSwapTickArrays = 3
)

// Standard fee tiers
const (
	FeeTier100   uint32 = 100   // 0.01%
	FeeTier500   uint32 = 500   // 0.05%
	FeeTier3000  uint32 = 3000  // 0.30%
	FeeTier10000 uint32 = 10000 // 1.00%

	TickSpacing100   uint16 = 1
	TickSpacing500   uint16 = 10
	TickSpacing3000  uint16 = 60
	TickSpacing10000 uint16 = 200
)

var (
	// Q64 = 2^64, the Q64.64 fixed-point unit
	Q64 = new(big.Int).Lsh(big.NewInt(1), 64)
	// Q128 = 2^128
	Q128 = new(big.Int).Lsh(big.NewInt(1), 128)

	Q64Int  = cosmath.NewIntFromBigInt(Q64)
	Q128Int = cosmath.NewIntFromBigInt(Q128)

	MaxUint64Int  = cosmath.NewIntFromUint64(^uint64(0))
	MaxUint128    = new(big.Int).Sub(Q128, big.NewInt(1))
	MaxUint128Int = cosmath.NewIntFromBigInt(MaxUint128)

	// Sqrt prices of MinTick and MaxTick. Every value the tick codec can
	// produce lies inside [MinSqrtPriceX64, MaxSqrtPriceX64].
	MinSqrtPriceX64 = cosmath.NewInt(4295048017)
	MaxSqrtPriceX64 = mustInt("79226673515401279992447579062")
)

func mustInt(s string) cosmath.Int {
	v, ok := cosmath.NewIntFromString(s)
	if !ok {
		panic("invalid integer literal: " + s)
	}
	return v
}
