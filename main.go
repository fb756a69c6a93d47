package main

import (
	"context"
	"log"

	"github.com/gagliardetto/solana-go"
	"github.com/yimingwow/suniswap-go/pkg/addr"
	"github.com/yimingwow/suniswap-go/pkg/clmm"
	"github.com/yimingwow/suniswap-go/pkg/sol"
	"github.com/yimingwow/suniswap-go/pkg/suniswap"
)

var (
	rpcEndpoint = "https://api.mainnet-beta.solana.com"

	// Token addresses
	wsolMint = solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")
	usdcMint = solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")

	wsolDecimals = uint8(9)
	usdcDecimals = uint8(6)

	// Position parameters
	feeRate        = uint32(3000) // 0.30%, spacing 60
	budgetA        = uint64(1_000_000_000)
	budgetB        = uint64(150_000_000)
	rangeHalfWidth = int32(10) // tick spacings on each side of the current tick
)

func main() {
	log.Printf("deriving pool addresses for WSOL/USDC at fee rate %d...", feeRate)

	keys, err := addr.DerivePoolKeys(wsolMint, usdcMint, feeRate)
	if err != nil {
		log.Fatalf("Failed to derive pool keys: %v", err)
	}
	log.Printf("pool: %v (mints reversed: %v)", keys.Pool, keys.Reversed)
	log.Printf("vaults: %v / %v, oracle: %v", keys.VaultA, keys.VaultB, keys.Oracle)

	ctx := context.Background()
	solClient := sol.NewClient(rpcEndpoint, 20) // 20 requests per second
	fetcher := suniswap.NewFetcher(solClient)

	pool, err := fetcher.PoolByAddress(ctx, keys.Pool)
	if err != nil {
		log.Fatalf("Failed to fetch pool: %v", err)
	}

	decimalsA, decimalsB := wsolDecimals, usdcDecimals
	if keys.Reversed {
		decimalsA, decimalsB = decimalsB, decimalsA
	}
	price, err := pool.CurrentPrice(decimalsA, decimalsB, 6)
	if err != nil {
		log.Fatalf("Failed to compute price: %v", err)
	}
	log.Printf("current tick %d, price %v", pool.TickCurrent, price)

	reserveA, reserveB, err := fetcher.VaultBalances(ctx, pool)
	if err != nil {
		log.Fatalf("Failed to fetch vault balances: %v", err)
	}
	log.Printf("vault reserves: %d / %d", reserveA, reserveB)

	// Quote a deposit centered on the current tick.
	center, err := clmm.NextInitializableTick(pool.TickCurrent, pool.TickSpacing, true)
	if err != nil {
		log.Fatalf("Failed to align tick: %v", err)
	}
	tickLower := center - rangeHalfWidth*int32(pool.TickSpacing)
	tickUpper := center + rangeHalfWidth*int32(pool.TickSpacing)

	quote, err := suniswap.QuoteDeposit(pool, tickLower, tickUpper, budgetA, budgetB)
	if err != nil {
		log.Fatalf("Failed to quote deposit: %v", err)
	}
	log.Printf("deposit [%d, %d): liquidity %v for %d / %d",
		quote.TickLower, quote.TickUpper, quote.Liquidity, quote.AmountA, quote.AmountB)
	for _, start := range quote.TickArrayStarts {
		key, _, err := addr.TickArrayAddress(keys.Pool, start)
		if err != nil {
			log.Fatalf("Failed to derive tick array address: %v", err)
		}
		log.Printf("tick array %d: %v", start, key)
	}

	// Tick arrays a sell of token A from the current tick would cross.
	arrays, err := fetcher.TickArraysForSwap(ctx, pool, true)
	if err != nil {
		log.Fatalf("Failed to fetch swap tick arrays: %v", err)
	}
	for _, array := range arrays {
		log.Printf("swap tick array %d: %v (bitmap %08b)",
			array.StartTickIndex, array.Address, array.InitializedBitmap)
	}
}
