package clmm_test

import (
	"testing"

	cosmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yimingwow/suniswap-go/pkg/clmm"
)

func mustInt(t *testing.T, s string) cosmath.Int {
	t.Helper()
	v, ok := cosmath.NewIntFromString(s)
	require.True(t, ok, "bad int literal %s", s)
	return v
}

func TestSqrtPriceX64FromTick(t *testing.T) {
	cases := []struct {
		tick int32
		want string
	}{
		{0, "18446744073709551616"}, // exactly 2^64, price 1.0
		{1, "18447666387855959851"},
		{-1, "18445821805675392312"},
		{2, "18448588748116922572"},
		{-2, "18444899583751176499"},
		{10, "18455969290605290428"},
		{-10, "18437523468038800959"},
		{60, "18502164624211761448"},
		{-60, "18391489527427947883"},
		{100, "18539204128674405813"},
		{-100, "18354745142194483564"},
		{120, "18557751677670031988"},
		{-120, "18336400488125385353"},
		{1000, "19392480388906836278"},
		{-1000, "17547129613991598782"},
		{39122, "130436965028139282803"},
		{-39122, "2608787829796017141"},
		{200000, "406113483393643373014940"},
		{-200000, "837899702510259"},
		{clmm.MaxTick, "79226673515401279992447579062"},
		{clmm.MinTick, "4295048017"},
	}
	for _, tc := range cases {
		got, err := clmm.SqrtPriceX64FromTick(tc.tick)
		require.NoError(t, err, "tick %d", tc.tick)
		assert.Equal(t, tc.want, got.String(), "tick %d", tc.tick)
	}
}

func TestSqrtPriceX64FromTickOutOfRange(t *testing.T) {
	for _, tick := range []int32{clmm.MinTick - 1, clmm.MaxTick + 1, -1000000, 1000000} {
		_, err := clmm.SqrtPriceX64FromTick(tick)
		require.Error(t, err, "tick %d", tick)
		var rangeErr *clmm.RangeError
		require.ErrorAs(t, err, &rangeErr)
		assert.Equal(t, "tick", rangeErr.Name)
	}
}

func TestSqrtPriceX64FromTickMonotonic(t *testing.T) {
	ticks := []int32{
		clmm.MinTick, -400000, -200000, -39122, -1000, -120, -2, -1,
		0, 1, 2, 120, 1000, 39122, 200000, 400000, clmm.MaxTick,
	}
	prev, err := clmm.SqrtPriceX64FromTick(ticks[0])
	require.NoError(t, err)
	for _, tick := range ticks[1:] {
		cur, err := clmm.SqrtPriceX64FromTick(tick)
		require.NoError(t, err)
		assert.True(t, prev.LT(cur), "sqrt price must increase at tick %d", tick)
		prev = cur
	}
}

func TestTickFromSqrtPriceX64RoundTrip(t *testing.T) {
	ticks := []int32{
		clmm.MinTick, -443635, -200000, -39122, -1000, -120, -60, -2, -1,
		0, 1, 2, 60, 120, 1000, 39122, 200000, 443635, clmm.MaxTick,
	}
	for _, tick := range ticks {
		sqrtPrice, err := clmm.SqrtPriceX64FromTick(tick)
		require.NoError(t, err)
		got, err := clmm.TickFromSqrtPriceX64(sqrtPrice)
		require.NoError(t, err)
		assert.Equal(t, tick, got, "round trip at tick %d", tick)
	}
}

func TestTickFromSqrtPriceX64Floors(t *testing.T) {
	// Any value strictly between two consecutive tick prices maps to the
	// lower tick.
	for _, tick := range []int32{-39122, -120, -1, 0, 1, 120, 39122} {
		lower, err := clmm.SqrtPriceX64FromTick(tick)
		require.NoError(t, err)
		upper, err := clmm.SqrtPriceX64FromTick(tick + 1)
		require.NoError(t, err)

		mid := lower.Add(upper).QuoRaw(2)
		got, err := clmm.TickFromSqrtPriceX64(mid)
		require.NoError(t, err)
		assert.Equal(t, tick, got, "midpoint above tick %d", tick)

		justBelow := upper.SubRaw(1)
		got, err = clmm.TickFromSqrtPriceX64(justBelow)
		require.NoError(t, err)
		assert.Equal(t, tick, got, "one below tick %d", tick+1)
	}
}

func TestTickFromSqrtPriceX64OutOfRange(t *testing.T) {
	for _, v := range []cosmath.Int{
		cosmath.ZeroInt(),
		clmm.MinSqrtPriceX64.SubRaw(1),
		clmm.MaxSqrtPriceX64.AddRaw(1),
	} {
		_, err := clmm.TickFromSqrtPriceX64(v)
		require.Error(t, err, "value %s", v)
		var rangeErr *clmm.RangeError
		require.ErrorAs(t, err, &rangeErr)
		assert.Equal(t, "sqrtPriceX64", rangeErr.Name)
	}
}

func TestTickDomainEdgesAccepted(t *testing.T) {
	got, err := clmm.TickFromSqrtPriceX64(clmm.MinSqrtPriceX64)
	require.NoError(t, err)
	assert.Equal(t, clmm.MinTick, got)

	got, err = clmm.TickFromSqrtPriceX64(clmm.MaxSqrtPriceX64)
	require.NoError(t, err)
	assert.Equal(t, clmm.MaxTick, got)
}

func TestValidateTick(t *testing.T) {
	assert.NoError(t, clmm.ValidateTick(0, 60))
	assert.NoError(t, clmm.ValidateTick(-480, 60))
	assert.NoError(t, clmm.ValidateTick(443520, 60))

	assert.Error(t, clmm.ValidateTick(61, 60))
	assert.Error(t, clmm.ValidateTick(-61, 60))
	assert.Error(t, clmm.ValidateTick(clmm.MaxTick+1, 60))
	assert.Error(t, clmm.ValidateTick(0, 0))
}

func TestNextInitializableTick(t *testing.T) {
	cases := []struct {
		tick    int32
		spacing uint16
		lte     bool
		want    int32
	}{
		{50, 60, true, 0},
		{60, 60, true, 60},
		{-50, 60, true, -60},
		{-60, 60, true, -60},
		{50, 60, false, 60},
		{60, 60, false, 120},
		{-50, 60, false, 0},
		{-60, 60, false, 0},
		{0, 60, true, 0},
		{0, 60, false, 60},
	}
	for _, tc := range cases {
		got, err := clmm.NextInitializableTick(tc.tick, tc.spacing, tc.lte)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "tick=%d spacing=%d lte=%v", tc.tick, tc.spacing, tc.lte)
	}

	_, err := clmm.NextInitializableTick(clmm.MaxTick+1, 60, true)
	assert.Error(t, err)
	_, err = clmm.NextInitializableTick(0, 0, true)
	assert.Error(t, err)
}
