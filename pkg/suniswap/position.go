package suniswap

import (
	"encoding/binary"
	"fmt"

	cosmath "cosmossdk.io/math"
	"github.com/gagliardetto/solana-go"
	"lukechampine.com/uint128"
)

// PositionSpan is the position account size: 8-byte discriminator + 208-byte
// state.
const PositionSpan = 216

// Position mirrors the program's zero-copy position account.
type Position struct {
	Address solana.PublicKey

	Liquidity                uint128.Uint128
	FeeGrowthInsideALastX128 uint128.Uint128
	FeeGrowthInsideBLastX128 uint128.Uint128
	TokensOwedA              uint64
	TokensOwedB              uint64
	TickLower                int32
	TickUpper                int32
	Bump                     uint8

	Pool         solana.PublicKey
	Owner        solana.PublicKey
	PositionMint solana.PublicKey
}

func (p *Position) Decode(data []byte) error {
	if len(data) < PositionSpan {
		return fmt.Errorf("position account too short: %d bytes, want %d", len(data), PositionSpan)
	}
	// Skip 8 bytes discriminator
	data = data[8:]

	offset := 0

	p.Liquidity = parseUint128LE(data[offset:])
	offset += 16

	p.FeeGrowthInsideALastX128 = parseUint128LE(data[offset:])
	offset += 16

	p.FeeGrowthInsideBLastX128 = parseUint128LE(data[offset:])
	offset += 16

	p.TokensOwedA = binary.LittleEndian.Uint64(data[offset : offset+8])
	offset += 8

	p.TokensOwedB = binary.LittleEndian.Uint64(data[offset : offset+8])
	offset += 8

	p.TickLower = int32(binary.LittleEndian.Uint32(data[offset : offset+4]))
	offset += 4

	p.TickUpper = int32(binary.LittleEndian.Uint32(data[offset : offset+4]))
	offset += 4

	p.Bump = data[offset]
	offset += 1

	// 7 bytes alignment padding
	offset += 7

	p.Pool = solana.PublicKeyFromBytes(data[offset : offset+32])
	offset += 32

	p.Owner = solana.PublicKeyFromBytes(data[offset : offset+32])
	offset += 32

	p.PositionMint = solana.PublicKeyFromBytes(data[offset : offset+32])

	return nil
}

// LiquidityInt returns the position's liquidity as a wide integer.
func (p *Position) LiquidityInt() cosmath.Int {
	return cosmath.NewIntFromBigInt(p.Liquidity.Big())
}

// IsEmpty reports whether the position holds no liquidity and no owed fees.
func (p *Position) IsEmpty() bool {
	return p.Liquidity.IsZero() && p.TokensOwedA == 0 && p.TokensOwedB == 0
}
