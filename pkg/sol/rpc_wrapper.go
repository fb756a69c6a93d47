package sol

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// RPC wrapper methods with rate limiting

// GetAccountInfoWithOpts wraps the RPC call with rate limiting
func (c *Client) GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey) (*rpc.GetAccountInfoResult, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}
	opts := &rpc.GetAccountInfoOpts{
		Commitment: rpc.CommitmentProcessed,
	}
	return c.rpcClient.GetAccountInfoWithOpts(ctx, account, opts)
}

// GetMultipleAccountsWithOpts wraps the RPC call with rate limiting
func (c *Client) GetMultipleAccountsWithOpts(ctx context.Context, accounts []solana.PublicKey) (*rpc.GetMultipleAccountsResult, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}
	opts := &rpc.GetMultipleAccountsOpts{
		Commitment: rpc.CommitmentProcessed,
	}
	return c.rpcClient.GetMultipleAccountsWithOpts(ctx, accounts, opts)
}

// GetProgramAccountsWithOpts wraps the RPC call with rate limiting
func (c *Client) GetProgramAccountsWithOpts(ctx context.Context, programID solana.PublicKey, opts *rpc.GetProgramAccountsOpts) (rpc.GetProgramAccountsResult, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}
	return c.rpcClient.GetProgramAccountsWithOpts(ctx, programID, opts)
}

// GetTokenAccountBalance wraps the RPC call with rate limiting
func (c *Client) GetTokenAccountBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetTokenAccountBalanceResult, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}
	return c.rpcClient.GetTokenAccountBalance(ctx, account, commitment)
}
