package sol

import (
	"github.com/gagliardetto/solana-go/rpc"
)

// Client is a rate-limited Solana RPC client. It exposes the read-only
// query surface; transaction building and submission live outside this
// library.
type Client struct {
	rpcClient   *rpc.Client
	rateLimiter *RateLimiter
}

// NewClient creates a new Solana client with custom rate limiting
func NewClient(endpoint string, reqLimitPerSecond int) *Client {
	return &Client{
		rpcClient:   rpc.New(endpoint),
		rateLimiter: NewRateLimiter(reqLimitPerSecond),
	}
}
