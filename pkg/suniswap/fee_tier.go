package suniswap

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/gagliardetto/solana-go"

	"github.com/yimingwow/suniswap-go/pkg/clmm"
)

// FeeTierSpan is the fee tier account size.
const FeeTierSpan = 8 + 32 + 4 + 2 + 1 + 32

// FeeTier mirrors the program's fee tier account.
type FeeTier struct {
	Address solana.PublicKey

	Config      solana.PublicKey
	FeeRate     uint32 // hundredths of a basis point
	TickSpacing uint16
	Bump        uint8
}

func (f *FeeTier) Decode(data []byte) error {
	if len(data) < FeeTierSpan {
		return fmt.Errorf("fee tier account too short: %d bytes, want %d", len(data), FeeTierSpan)
	}
	// Skip 8 bytes discriminator
	data = data[8:]

	f.Config = solana.PublicKeyFromBytes(data[:32])
	f.FeeRate = binary.LittleEndian.Uint32(data[32:36])
	f.TickSpacing = binary.LittleEndian.Uint16(data[36:38])
	f.Bump = data[38]

	return nil
}

// Fee returns the swap fee charged on amount at this tier, floored. The fee
// is always below amount, so the narrowing back to uint64 cannot overflow.
func (f *FeeTier) Fee(amount uint64) uint64 {
	fee := new(big.Int).SetUint64(amount)
	fee.Mul(fee, big.NewInt(int64(f.FeeRate)))
	fee.Quo(fee, big.NewInt(int64(clmm.FeeRateDenominator)))
	return fee.Uint64()
}
