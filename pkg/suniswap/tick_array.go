package suniswap

import (
	"encoding/binary"
	"fmt"

	cosmath "cosmossdk.io/math"
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"lukechampine.com/uint128"

	"github.com/yimingwow/suniswap-go/pkg/clmm"
)

// TickArraySpan is the tick array account size: 8-byte discriminator plus a
// 48-byte header and eight 96-byte ticks.
const TickArraySpan = 8 + 48 + int(clmm.TickArraySize)*tickSpan

const tickSpan = 96

// Tick mirrors one entry of the program's tick array.
type Tick struct {
	LiquidityNet                  cosmath.Int // i128, signed crossing delta
	LiquidityGross                uint128.Uint128
	FeeGrowthOutsideAX128         uint128.Uint128
	FeeGrowthOutsideBX128         uint128.Uint128
	SecondsPerLiquidityOutsideX64 uint128.Uint128
	TickCumulativeOutside         int64
	SecondsOutside                uint32
	Initialized                   bool
}

// TickArray mirrors the program's zero-copy tick array account.
type TickArray struct {
	Address solana.PublicKey

	Pool              solana.PublicKey
	StartTickIndex    int32
	InitializedBitmap uint8
	Bump              uint8
	Ticks             [clmm.TickArraySize]Tick
}

func (t *TickArray) Decode(data []byte) error {
	if len(data) < TickArraySpan {
		return fmt.Errorf("tick array account too short: %d bytes, want %d", len(data), TickArraySpan)
	}

	decoder := bin.NewBinDecoder(data)

	var discriminator [8]byte
	if err := decoder.Decode(&discriminator); err != nil {
		return fmt.Errorf("failed to decode discriminator: %w", err)
	}
	if err := decoder.Decode(&t.Pool); err != nil {
		return fmt.Errorf("failed to decode pool: %w", err)
	}
	if err := decoder.Decode(&t.StartTickIndex); err != nil {
		return fmt.Errorf("failed to decode startTickIndex: %w", err)
	}

	t.InitializedBitmap = data[44]
	t.Bump = data[45]

	// Ticks start 48 bytes into the state, after 10 bytes of alignment pad.
	offset := 8 + 48
	for i := range t.Ticks {
		t.Ticks[i].LiquidityNet = parseInt128LE(data[offset:])
		offset += 16

		t.Ticks[i].LiquidityGross = parseUint128LE(data[offset:])
		offset += 16

		t.Ticks[i].FeeGrowthOutsideAX128 = parseUint128LE(data[offset:])
		offset += 16

		t.Ticks[i].FeeGrowthOutsideBX128 = parseUint128LE(data[offset:])
		offset += 16

		t.Ticks[i].SecondsPerLiquidityOutsideX64 = parseUint128LE(data[offset:])
		offset += 16

		t.Ticks[i].TickCumulativeOutside = int64(binary.LittleEndian.Uint64(data[offset : offset+8]))
		offset += 8

		t.Ticks[i].SecondsOutside = binary.LittleEndian.Uint32(data[offset : offset+4])
		offset += 4

		t.Ticks[i].Initialized = data[offset] != 0
		offset += 4 // flag byte plus 3 bytes padding
	}

	return nil
}

// ContainsTick reports whether tickIndex falls inside this array's window.
func (t *TickArray) ContainsTick(tickIndex int32, tickSpacing uint16) bool {
	per := int32(tickSpacing) * clmm.TickArraySize
	return tickIndex >= t.StartTickIndex && tickIndex < t.StartTickIndex+per
}

// TickAt returns the tick entry for an absolute tick index.
func (t *TickArray) TickAt(tickIndex int32, tickSpacing uint16) (*Tick, error) {
	if !t.ContainsTick(tickIndex, tickSpacing) {
		return nil, fmt.Errorf("tick %d outside array starting at %d", tickIndex, t.StartTickIndex)
	}
	offset := (tickIndex - t.StartTickIndex) / int32(tickSpacing)
	return &t.Ticks[offset], nil
}

// IsTickInitialized consults the array's bitmap for an absolute tick index.
func (t *TickArray) IsTickInitialized(tickIndex int32, tickSpacing uint16) (bool, error) {
	if !t.ContainsTick(tickIndex, tickSpacing) {
		return false, fmt.Errorf("tick %d outside array starting at %d", tickIndex, t.StartTickIndex)
	}
	offset := (tickIndex - t.StartTickIndex) / int32(tickSpacing)
	return (t.InitializedBitmap>>uint(offset))&1 == 1, nil
}

// NextInitializedTick scans the bitmap from tickIndex in crossing order and
// returns the first initialized tick, or the array boundary with found=false.
func (t *TickArray) NextInitializedTick(tickIndex int32, tickSpacing uint16, aToB bool) (tick int32, found bool, err error) {
	if !t.ContainsTick(tickIndex, tickSpacing) {
		return 0, false, fmt.Errorf("tick %d outside array starting at %d", tickIndex, t.StartTickIndex)
	}
	offset := (tickIndex - t.StartTickIndex) / int32(tickSpacing)
	spacing := int32(tickSpacing)

	if aToB {
		for i := offset; i >= 0; i-- {
			if (t.InitializedBitmap>>uint(i))&1 == 1 {
				return t.StartTickIndex + i*spacing, true, nil
			}
		}
		return t.StartTickIndex, false, nil
	}
	for i := offset; i < clmm.TickArraySize; i++ {
		if (t.InitializedBitmap>>uint(i))&1 == 1 {
			return t.StartTickIndex + i*spacing, true, nil
		}
	}
	return t.StartTickIndex + (clmm.TickArraySize-1)*spacing, false, nil
}
