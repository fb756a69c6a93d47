package clmm

import (
	"math/big"
	"strconv"

	cosmath "cosmossdk.io/math"
)

// Per-bit multipliers for 1.0001^(-2^i) in Q128.128, i = 1..18. Bit 0 is
// special-cased in SqrtPriceX64FromTick. These match the settlement program,
// so the codec agrees with it bit-for-bit over the whole tick domain.
var tickMultipliers = [18]*big.Int{
	hexInt("fff97272373d413259a46990580e213a"),
	hexInt("fff2e50f5f656932ef12357cf3c7fdcc"),
	hexInt("ffe5caca7e10e4e61c3624eaa0941cd0"),
	hexInt("ffcb9843d60f6159c9db58835c926644"),
	hexInt("ff973b41fa98c081472e6896dfb254c0"),
	hexInt("ff2ea16466c96a3843ec78b326b52861"),
	hexInt("fe5dee046a99a2a811c461f1969c3053"),
	hexInt("fcbe86c7900a88aedcffc83b479aa3a4"),
	hexInt("f987a7253ac413176f2b074cf7815e54"),
	hexInt("f3392b0822b70005940c7a398e4b70f3"),
	hexInt("e7159475a2c29b7443b29c7fa6e889d9"),
	hexInt("d097f3bdfd2022b8845ad8f792aa5825"),
	hexInt("a9f746462d870fdf8a65dc1f90e061e5"),
	hexInt("70d869a156d2a1b890bb3df62baf32f7"),
	hexInt("31be135f97d08fd981231505542fcfa6"),
	hexInt("9aa508b5b7a84e1c677de54f3e99bc9"),
	hexInt("5d6af8dedb81196699c329225ee604"),
	hexInt("2216e584f5fa1ea926041bedfe98"),
}

var (
	tickMultiplierBit0 = hexInt("fffcb933bd6fad37aa2d162d1a594001")
	pow192             = new(big.Int).Lsh(big.NewInt(1), 192)
	maskLow64          = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 64), big.NewInt(1))
)

func hexInt(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("invalid hex literal: " + s)
	}
	return v
}

func tickRangeError(tick int32) error {
	return &RangeError{
		Name:  "tick",
		Value: strconv.FormatInt(int64(tick), 10),
		Min:   strconv.FormatInt(int64(MinTick), 10),
		Max:   strconv.FormatInt(int64(MaxTick), 10),
	}
}

// SqrtPriceX64FromTick returns sqrt(1.0001^tick) as a Q64.64 fixed-point
// value. The result is strictly increasing in tick.
func SqrtPriceX64FromTick(tick int32) (cosmath.Int, error) {
	if tick < MinTick || tick > MaxTick {
		return cosmath.Int{}, tickRangeError(tick)
	}

	absTick := uint32(tick)
	if tick < 0 {
		absTick = uint32(-tick)
	}

	// ratio accumulates 1.0001^(-|tick|) in Q128.128. The bit-0 base for an
	// even |tick| is 2^128-1, the closest representable value to 1.0.
	ratio := new(big.Int)
	if absTick&0x1 != 0 {
		ratio.Set(tickMultiplierBit0)
	} else {
		ratio.Set(MaxUint128)
	}
	for i, mul := range tickMultipliers {
		if absTick&(1<<(uint(i)+1)) != 0 {
			ratio.Mul(ratio, mul)
			ratio.Rsh(ratio, 128)
		}
	}

	// The multipliers give 1.0001^(-|tick|); a positive tick needs the
	// inverse, folded with the Q128.128 -> Q64.64 narrowing: 2^192/ratio.
	if tick > 0 {
		out := new(big.Int).Quo(pow192, ratio)
		out.Add(out, big.NewInt(1))
		return cosmath.NewIntFromBigInt(out), nil
	}

	// Negative or zero tick: shift down to Q64.64, rounding up.
	out := new(big.Int).Rsh(ratio, 64)
	if new(big.Int).And(ratio, maskLow64).Sign() != 0 {
		out.Add(out, big.NewInt(1))
	}
	return cosmath.NewIntFromBigInt(out), nil
}

const tickBitPrecision = 14

var tickLogB2X32 = cosmath.NewInt(59543866431248) // 2^32 / log2(sqrt(1.0001))

// TickFromSqrtPriceX64 returns the greatest tick whose sqrt price does not
// exceed sqrtPriceX64. Inputs outside [MinSqrtPriceX64, MaxSqrtPriceX64]
// yield a RangeError.
func TickFromSqrtPriceX64(sqrtPriceX64 cosmath.Int) (int32, error) {
	if sqrtPriceX64.IsNil() || sqrtPriceX64.LT(MinSqrtPriceX64) || sqrtPriceX64.GT(MaxSqrtPriceX64) {
		value := "nil"
		if !sqrtPriceX64.IsNil() {
			value = sqrtPriceX64.String()
		}
		return 0, &RangeError{
			Name:  "sqrtPriceX64",
			Value: value,
			Min:   MinSqrtPriceX64.String(),
			Max:   MaxSqrtPriceX64.String(),
		}
	}

	// Fixed-point log2 estimate: integer part from the msb, fraction from
	// fourteen squaring iterations, then rebased to log base sqrt(1.0001).
	price := sqrtPriceX64.BigInt()
	msb := price.BitLen() - 1
	log2IntegerX32 := new(big.Int).Lsh(big.NewInt(int64(msb-64)), 32)

	var r *big.Int
	if msb >= 64 {
		r = new(big.Int).Rsh(price, uint(msb-63))
	} else {
		r = new(big.Int).Lsh(price, uint(63-msb))
	}

	bit := new(big.Int).Lsh(big.NewInt(1), 63)
	log2FractionX64 := new(big.Int)
	for precision := 0; bit.Sign() > 0 && precision < tickBitPrecision; precision++ {
		r.Mul(r, r)
		overTwo := new(big.Int).Rsh(r, 127)
		r.Rsh(r, uint(63+overTwo.Int64()))
		log2FractionX64.Add(log2FractionX64, new(big.Int).Mul(bit, overTwo))
		bit.Rsh(bit, 1)
	}

	log2X32 := new(big.Int).Add(log2IntegerX32, new(big.Int).Rsh(log2FractionX64, 32))
	logBX64 := new(big.Int).Mul(log2X32, tickLogB2X32.BigInt())
	estimate := new(big.Int).Rsh(logBX64, 64) // arithmetic shift, floors negatives

	tick := int32(estimate.Int64())
	if tick < MinTick {
		tick = MinTick
	}
	if tick > MaxTick {
		tick = MaxTick
	}

	// The estimate is within a couple of ticks; settle the exact floor
	// against the forward map.
	for tick > MinTick {
		sp, err := SqrtPriceX64FromTick(tick)
		if err != nil {
			return 0, err
		}
		if sp.GT(sqrtPriceX64) {
			tick--
			continue
		}
		break
	}
	for tick < MaxTick {
		sp, err := SqrtPriceX64FromTick(tick + 1)
		if err != nil {
			return 0, err
		}
		if sp.LTE(sqrtPriceX64) {
			tick++
			continue
		}
		break
	}
	return tick, nil
}

// ValidateTick reports whether tick is inside the domain and aligned to the
// given spacing.
func ValidateTick(tick int32, tickSpacing uint16) error {
	if tick < MinTick || tick > MaxTick {
		return tickRangeError(tick)
	}
	if err := validateSpacing(tickSpacing); err != nil {
		return err
	}
	if tick%int32(tickSpacing) != 0 {
		return &RangeError{
			Name:  "tick",
			Value: strconv.FormatInt(int64(tick), 10),
			Min:   "multiple of spacing " + strconv.FormatUint(uint64(tickSpacing), 10),
			Max:   "multiple of spacing " + strconv.FormatUint(uint64(tickSpacing), 10),
		}
	}
	return nil
}

// NextInitializableTick snaps tick to a spacing-aligned index. With lte set
// the result is the greatest aligned tick <= tick; otherwise the least
// aligned tick strictly greater than any aligned tick at or below tick.
func NextInitializableTick(tick int32, tickSpacing uint16, lte bool) (int32, error) {
	if tick < MinTick || tick > MaxTick {
		return 0, tickRangeError(tick)
	}
	if err := validateSpacing(tickSpacing); err != nil {
		return 0, err
	}
	spacing := int32(tickSpacing)
	var compressed int32
	if lte {
		compressed = tick / spacing
		if tick < 0 && tick%spacing != 0 {
			compressed--
		}
	} else {
		if tick < 0 && tick%spacing != 0 {
			compressed = tick / spacing
		} else {
			compressed = tick/spacing + 1
		}
	}
	return compressed * spacing, nil
}

func validateSpacing(tickSpacing uint16) error {
	if tickSpacing == 0 || tickSpacing > MaxTickSpacing {
		return &RangeError{
			Name:  "tickSpacing",
			Value: strconv.FormatUint(uint64(tickSpacing), 10),
			Min:   "1",
			Max:   strconv.FormatUint(uint64(MaxTickSpacing), 10),
		}
	}
	return nil
}
