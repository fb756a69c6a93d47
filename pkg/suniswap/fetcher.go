package suniswap

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/yimingwow/suniswap-go/pkg/addr"
	"github.com/yimingwow/suniswap-go/pkg/clmm"
	"github.com/yimingwow/suniswap-go/pkg/sol"
)

// ErrAccountNotFound is returned when a derived address has no account on
// the ledger, e.g. a pool that was never initialized.
var ErrAccountNotFound = errors.New("account not found")

// Fetcher loads Suniswap accounts over RPC and decodes them. It only ever
// reads; computed amounts and addresses feed a transaction builder elsewhere.
type Fetcher struct {
	client *sol.Client
}

func NewFetcher(client *sol.Client) *Fetcher {
	return &Fetcher{client: client}
}

func (f *Fetcher) accountData(ctx context.Context, key solana.PublicKey) ([]byte, error) {
	result, err := f.client.GetAccountInfoWithOpts(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get account %s: %w", key, err)
	}
	if result == nil || result.Value == nil {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, key)
	}
	return result.Value.Data.GetBinary(), nil
}

// Pool fetches the pool for a mint pair and fee rate. The mints may come in
// either order; the returned keys carry the Reversed flag for price
// orientation.
func (f *Fetcher) Pool(ctx context.Context, mintX, mintY solana.PublicKey, feeRate uint32) (*Pool, *addr.PoolKeys, error) {
	keys, err := addr.DerivePoolKeys(mintX, mintY, feeRate)
	if err != nil {
		return nil, nil, err
	}
	pool, err := f.PoolByAddress(ctx, keys.Pool)
	if err != nil {
		return nil, nil, err
	}
	return pool, keys, nil
}

// PoolByAddress fetches and decodes a pool account at a known address.
func (f *Fetcher) PoolByAddress(ctx context.Context, key solana.PublicKey) (*Pool, error) {
	data, err := f.accountData(ctx, key)
	if err != nil {
		return nil, err
	}
	pool := &Pool{Address: key}
	if err := pool.Decode(data); err != nil {
		return nil, fmt.Errorf("decode pool %s: %w", key, err)
	}
	return pool, nil
}

// FeeTier fetches the fee tier account for a fee rate.
func (f *Fetcher) FeeTier(ctx context.Context, feeRate uint32) (*FeeTier, error) {
	key, _, err := addr.FeeTierAddress(feeRate)
	if err != nil {
		return nil, err
	}
	data, err := f.accountData(ctx, key)
	if err != nil {
		return nil, err
	}
	tier := &FeeTier{Address: key}
	if err := tier.Decode(data); err != nil {
		return nil, fmt.Errorf("decode fee tier %s: %w", key, err)
	}
	return tier, nil
}

// Position fetches an owner's position over a tick range in a pool.
func (f *Fetcher) Position(ctx context.Context, pool, owner solana.PublicKey, tickLower, tickUpper int32) (*Position, error) {
	key, _, err := addr.PositionAddress(pool, owner, tickLower, tickUpper)
	if err != nil {
		return nil, err
	}
	data, err := f.accountData(ctx, key)
	if err != nil {
		return nil, err
	}
	position := &Position{Address: key}
	if err := position.Decode(data); err != nil {
		return nil, fmt.Errorf("decode position %s: %w", key, err)
	}
	return position, nil
}

// TickArray fetches the tick array of a pool at a start index.
func (f *Fetcher) TickArray(ctx context.Context, pool solana.PublicKey, startTickIndex int32) (*TickArray, error) {
	key, _, err := addr.TickArrayAddress(pool, startTickIndex)
	if err != nil {
		return nil, err
	}
	data, err := f.accountData(ctx, key)
	if err != nil {
		return nil, err
	}
	array := &TickArray{Address: key}
	if err := array.Decode(data); err != nil {
		return nil, fmt.Errorf("decode tick array %s: %w", key, err)
	}
	return array, nil
}

// TickArraysForSwap fetches the tick arrays a swap in the given direction
// will cross, in crossing order. Arrays that were never initialized on the
// ledger are skipped, so the result can be shorter than the requested walk.
func (f *Fetcher) TickArraysForSwap(ctx context.Context, pool *Pool, aToB bool) ([]*TickArray, error) {
	starts, err := clmm.StartIndexesForSwap(pool.TickCurrent, pool.TickSpacing, aToB, clmm.DefaultSwapTickArrays)
	if err != nil {
		return nil, err
	}

	keys := make([]solana.PublicKey, 0, len(starts))
	for _, start := range starts {
		key, _, err := addr.TickArrayAddress(pool.Address, start)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	accounts, err := f.client.GetMultipleAccountsWithOpts(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("get tick arrays: %w", err)
	}

	arrays := make([]*TickArray, 0, len(keys))
	for i, account := range accounts.Value {
		if account == nil {
			continue
		}
		array := &TickArray{Address: keys[i]}
		if err := array.Decode(account.Data.GetBinary()); err != nil {
			return nil, fmt.Errorf("decode tick array %s: %w", keys[i], err)
		}
		arrays = append(arrays, array)
	}
	return arrays, nil
}

// VaultBalances returns the pool's token reserves in base units, read from
// the two vault token accounts.
func (f *Fetcher) VaultBalances(ctx context.Context, pool *Pool) (uint64, uint64, error) {
	balanceA, err := f.client.GetTokenAccountBalance(ctx, pool.TokenVaultA, rpc.CommitmentProcessed)
	if err != nil {
		return 0, 0, fmt.Errorf("get vault %s balance: %w", pool.TokenVaultA, err)
	}
	balanceB, err := f.client.GetTokenAccountBalance(ctx, pool.TokenVaultB, rpc.CommitmentProcessed)
	if err != nil {
		return 0, 0, fmt.Errorf("get vault %s balance: %w", pool.TokenVaultB, err)
	}
	amountA, err := strconv.ParseUint(balanceA.Value.Amount, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse vault balance %q: %w", balanceA.Value.Amount, err)
	}
	amountB, err := strconv.ParseUint(balanceB.Value.Amount, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse vault balance %q: %w", balanceB.Value.Amount, err)
	}
	return amountA, amountB, nil
}

// PoolsForPair scans the program for every pool over a mint pair, one per
// fee tier. The mints may come in either order.
func (f *Fetcher) PoolsForPair(ctx context.Context, mintX, mintY solana.PublicKey) ([]*Pool, error) {
	mintA, mintB, _, err := addr.OrderMints(mintX, mintY)
	if err != nil {
		return nil, err
	}

	result, err := f.client.GetProgramAccountsWithOpts(ctx, addr.ProgramID, &rpc.GetProgramAccountsOpts{
		Filters: []rpc.RPCFilter{
			{
				DataSize: uint64(PoolSpan),
			},
			{
				Memcmp: &rpc.RPCFilterMemcmp{
					Offset: 8 + poolMintAOffset,
					Bytes:  mintA.Bytes(),
				},
			},
			{
				Memcmp: &rpc.RPCFilterMemcmp{
					Offset: 8 + poolMintBOffset,
					Bytes:  mintB.Bytes(),
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get pools: %w", err)
	}

	pools := make([]*Pool, 0, len(result))
	for _, item := range result {
		pool := &Pool{Address: item.Pubkey}
		if err := pool.Decode(item.Account.Data.GetBinary()); err != nil {
			return nil, fmt.Errorf("decode pool %s: %w", item.Pubkey, err)
		}
		pools = append(pools, pool)
	}
	return pools, nil
}
