// Package suniswap reads the on-ledger accounts of the Suniswap CLMM program
// and seeds the numeric helpers in pkg/clmm from them. Everything here is
// read-only; decoding never mutates chain state and nothing signs or sends.
package suniswap

import (
	"encoding/binary"
	"fmt"
	"math/big"

	cosmath "cosmossdk.io/math"
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"lukechampine.com/uint128"

	"github.com/yimingwow/suniswap-go/pkg/clmm"
)

// PoolSpan is the pool account size: 8-byte discriminator + 384-byte state.
const PoolSpan = 392

// Pool mirrors the program's zero-copy pool account.
type Pool struct {
	Address solana.PublicKey

	SqrtPriceX64         uint128.Uint128
	Liquidity            uint128.Uint128
	FeeGrowthGlobalAX128 uint128.Uint128
	FeeGrowthGlobalBX128 uint128.Uint128
	ProtocolFeesA        uint64
	ProtocolFeesB        uint64
	TickCurrent          int32
	TickSpacing          uint16

	ObservationIndex           uint16
	ObservationCardinality     uint16
	ObservationCardinalityNext uint16

	ProtocolFeeRate uint8
	IsPaused        bool
	Bump            uint8
	HookFlags       uint8

	Config      solana.PublicKey
	TokenMintA  solana.PublicKey
	TokenMintB  solana.PublicKey
	TokenVaultA solana.PublicKey
	TokenVaultB solana.PublicKey
	FeeTier     solana.PublicKey
	HookProgram solana.PublicKey
	Oracle      solana.PublicKey
}

// Field offsets inside the pool account, counted after the discriminator.
const (
	poolMintAOffset = 128
	poolMintBOffset = 160
)

func (p *Pool) Decode(data []byte) error {
	if len(data) < PoolSpan {
		return fmt.Errorf("pool account too short: %d bytes, want %d", len(data), PoolSpan)
	}
	// Skip 8 bytes discriminator
	data = data[8:]

	offset := 0

	p.SqrtPriceX64 = parseUint128LE(data[offset:])
	offset += 16

	p.Liquidity = parseUint128LE(data[offset:])
	offset += 16

	p.FeeGrowthGlobalAX128 = parseUint128LE(data[offset:])
	offset += 16

	p.FeeGrowthGlobalBX128 = parseUint128LE(data[offset:])
	offset += 16

	p.ProtocolFeesA = binary.LittleEndian.Uint64(data[offset : offset+8])
	offset += 8

	p.ProtocolFeesB = binary.LittleEndian.Uint64(data[offset : offset+8])
	offset += 8

	p.TickCurrent = int32(binary.LittleEndian.Uint32(data[offset : offset+4]))
	offset += 4

	p.TickSpacing = binary.LittleEndian.Uint16(data[offset : offset+2])
	offset += 2

	p.ObservationIndex = binary.LittleEndian.Uint16(data[offset : offset+2])
	offset += 2

	p.ObservationCardinality = binary.LittleEndian.Uint16(data[offset : offset+2])
	offset += 2

	p.ObservationCardinalityNext = binary.LittleEndian.Uint16(data[offset : offset+2])
	offset += 2

	p.ProtocolFeeRate = data[offset]
	offset += 1

	p.IsPaused = data[offset] != 0
	offset += 1

	p.Bump = data[offset]
	offset += 1

	p.HookFlags = data[offset]
	offset += 1

	p.Config = solana.PublicKeyFromBytes(data[offset : offset+32])
	offset += 32

	p.TokenMintA = solana.PublicKeyFromBytes(data[offset : offset+32])
	offset += 32

	p.TokenMintB = solana.PublicKeyFromBytes(data[offset : offset+32])
	offset += 32

	p.TokenVaultA = solana.PublicKeyFromBytes(data[offset : offset+32])
	offset += 32

	p.TokenVaultB = solana.PublicKeyFromBytes(data[offset : offset+32])
	offset += 32

	p.FeeTier = solana.PublicKeyFromBytes(data[offset : offset+32])
	offset += 32

	p.HookProgram = solana.PublicKeyFromBytes(data[offset : offset+32])
	offset += 32

	p.Oracle = solana.PublicKeyFromBytes(data[offset : offset+32])

	return nil
}

// SqrtPrice returns the current sqrt price as a wide integer.
func (p *Pool) SqrtPrice() cosmath.Int {
	return cosmath.NewIntFromBigInt(p.SqrtPriceX64.Big())
}

// LiquidityInt returns the current in-range liquidity as a wide integer.
func (p *Pool) LiquidityInt() cosmath.Int {
	return cosmath.NewIntFromBigInt(p.Liquidity.Big())
}

// CurrentPrice returns the pool's price in human units (token B per token A).
func (p *Pool) CurrentPrice(decimalsA, decimalsB uint8, scale int32) (decimal.Decimal, error) {
	return clmm.PriceFromSqrtPriceX64(p.SqrtPrice(), decimalsA, decimalsB, scale)
}

// HasHooks reports whether any hook callback is live on this pool.
func (p *Pool) HasHooks() bool {
	return !p.HookProgram.IsZero() && p.HookFlags != 0
}

func parseUint128LE(data []byte) uint128.Uint128 {
	lo := binary.LittleEndian.Uint64(data[:8])
	hi := binary.LittleEndian.Uint64(data[8:16])
	return uint128.New(lo, hi)
}

// parseInt128LE reads a two's-complement little-endian i128.
func parseInt128LE(data []byte) cosmath.Int {
	v := parseUint128LE(data).Big()
	if data[15]&0x80 != 0 {
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), 128))
	}
	return cosmath.NewIntFromBigInt(v)
}
