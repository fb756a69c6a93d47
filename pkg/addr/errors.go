package addr

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// IdentityError reports a pool derivation attempted over a single mint.
type IdentityError struct {
	Mint solana.PublicKey
}

func (e *IdentityError) Error() string {
	return fmt.Sprintf("identical mints %s: a pool needs two distinct tokens", e.Mint)
}

// OrderingError reports mints handed to a derivation in non-canonical order.
// Derivations never reorder silently; callers go through OrderMints first so
// the reversed flag is always observed.
type OrderingError struct {
	MintA solana.PublicKey
	MintB solana.PublicKey
}

func (e *OrderingError) Error() string {
	return fmt.Sprintf("mints %s, %s not in canonical order: call OrderMints first", e.MintA, e.MintB)
}
