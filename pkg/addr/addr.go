// Package addr derives the deterministic account addresses of the Suniswap
// CLMM program. Every address is a PDA over a type-tag seed plus the entity's
// identifying fields; given the same inputs the program arrives at the same
// address on-chain, so nothing here ever needs a network round trip.
package addr

import (
	"bytes"
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

// ProgramID is the deployed Suniswap CLMM settlement program.
var ProgramID = solana.MustPublicKeyFromBase58("859DmKSfDQxnHY7dbYdFNwUE7QWhnb1WiBbXwbq1ktky")

var (
	configSeed    = []byte("config")
	feeTierSeed   = []byte("fee_tier")
	poolSeed      = []byte("pool")
	poolVaultSeed = []byte("pool_vault")
	tickArraySeed = []byte("tick_array")
	positionSeed  = []byte("position")
	oracleSeed    = []byte("oracle")
)

// OrderMints returns the pair in canonical (byte-lexicographic) order and
// whether the inputs were swapped. A reversed pair means prices quoted
// against the derived pool are the inverse of prices quoted in input order.
func OrderMints(a, b solana.PublicKey) (mintA, mintB solana.PublicKey, reversed bool, err error) {
	switch bytes.Compare(a.Bytes(), b.Bytes()) {
	case 0:
		return solana.PublicKey{}, solana.PublicKey{}, false, &IdentityError{Mint: a}
	case 1:
		return b, a, true, nil
	default:
		return a, b, false, nil
	}
}

// OrderMintsBase58 is OrderMints at the string boundary. The returned
// strings are the inputs verbatim, only reordered; no re-encoding.
func OrderMintsBase58(a, b string) (mintA, mintB string, reversed bool, err error) {
	rawA, err := base58.Decode(a)
	if err != nil {
		return "", "", false, err
	}
	rawB, err := base58.Decode(b)
	if err != nil {
		return "", "", false, err
	}
	keyA := solana.PublicKeyFromBytes(rawA)
	keyB := solana.PublicKeyFromBytes(rawB)
	if _, _, reversed, err = OrderMints(keyA, keyB); err != nil {
		return "", "", false, err
	}
	if reversed {
		return b, a, true, nil
	}
	return a, b, false, nil
}

// ConfigAddress derives the singleton protocol config account.
func ConfigAddress() (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{configSeed}, ProgramID)
}

// FeeTierAddress derives the fee tier account for a fee rate in hundredths
// of a basis point.
func FeeTierAddress(feeRate uint32) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{feeTierSeed, u32LE(feeRate)}, ProgramID)
}

// PoolAddress derives the pool for a canonically ordered mint pair and fee
// rate. Mints out of order fail with OrderingError, never a silent reorder.
func PoolAddress(mintA, mintB solana.PublicKey, feeRate uint32) (solana.PublicKey, uint8, error) {
	if err := requireCanonical(mintA, mintB); err != nil {
		return solana.PublicKey{}, 0, err
	}
	seeds := [][]byte{poolSeed, mintA.Bytes(), mintB.Bytes(), u32LE(feeRate)}
	return solana.FindProgramAddress(seeds, ProgramID)
}

// VaultAddress derives the pool's token vault for one of its mints.
func VaultAddress(pool, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	seeds := [][]byte{poolVaultSeed, pool.Bytes(), mint.Bytes()}
	return solana.FindProgramAddress(seeds, ProgramID)
}

// TickArrayAddress derives the tick array account at a start tick index.
func TickArrayAddress(pool solana.PublicKey, startTickIndex int32) (solana.PublicKey, uint8, error) {
	seeds := [][]byte{tickArraySeed, pool.Bytes(), i32LE(startTickIndex)}
	return solana.FindProgramAddress(seeds, ProgramID)
}

// PositionAddress derives an owner's position in a pool over a tick range.
func PositionAddress(pool, owner solana.PublicKey, tickLower, tickUpper int32) (solana.PublicKey, uint8, error) {
	seeds := [][]byte{positionSeed, pool.Bytes(), owner.Bytes(), i32LE(tickLower), i32LE(tickUpper)}
	return solana.FindProgramAddress(seeds, ProgramID)
}

// OracleAddress derives the pool's observation oracle account.
func OracleAddress(pool solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{oracleSeed, pool.Bytes()}, ProgramID)
}

// PoolKeys bundles every per-pool address a client touches.
type PoolKeys struct {
	MintA    solana.PublicKey
	MintB    solana.PublicKey
	Reversed bool // inputs were swapped to reach canonical order

	Pool     solana.PublicKey
	PoolBump uint8
	VaultA   solana.PublicKey
	VaultB   solana.PublicKey
	FeeTier  solana.PublicKey
	Oracle   solana.PublicKey
}

// DerivePoolKeys orders the mints and derives the full per-pool key set.
func DerivePoolKeys(mintX, mintY solana.PublicKey, feeRate uint32) (*PoolKeys, error) {
	mintA, mintB, reversed, err := OrderMints(mintX, mintY)
	if err != nil {
		return nil, err
	}
	pool, bump, err := PoolAddress(mintA, mintB, feeRate)
	if err != nil {
		return nil, err
	}
	vaultA, _, err := VaultAddress(pool, mintA)
	if err != nil {
		return nil, err
	}
	vaultB, _, err := VaultAddress(pool, mintB)
	if err != nil {
		return nil, err
	}
	feeTier, _, err := FeeTierAddress(feeRate)
	if err != nil {
		return nil, err
	}
	oracle, _, err := OracleAddress(pool)
	if err != nil {
		return nil, err
	}
	return &PoolKeys{
		MintA:    mintA,
		MintB:    mintB,
		Reversed: reversed,
		Pool:     pool,
		PoolBump: bump,
		VaultA:   vaultA,
		VaultB:   vaultB,
		FeeTier:  feeTier,
		Oracle:   oracle,
	}, nil
}

func requireCanonical(mintA, mintB solana.PublicKey) error {
	switch bytes.Compare(mintA.Bytes(), mintB.Bytes()) {
	case 0:
		return &IdentityError{Mint: mintA}
	case 1:
		return &OrderingError{MintA: mintA, MintB: mintB}
	}
	return nil
}

func u32LE(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func i32LE(v int32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(v))
	return b
}
