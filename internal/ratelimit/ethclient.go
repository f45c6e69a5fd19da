package ratelimit

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/time/rate"

	"github.com/feral-file/ff-rights-ledger/internal/adapter"
)

// Config holds the RPC rate limit. A zero RequestsPerSecond disables limiting.
type Config struct {
	RequestsPerSecond float64
	Burst             int
	// MaxQueueTime bounds how long a call waits for a token
	MaxQueueTime time.Duration
}

// limitedEthClient throttles every RPC round trip of the wrapped client
type limitedEthClient struct {
	inner        adapter.EthClient
	limiter      *rate.Limiter
	maxQueueTime time.Duration
}

// NewEthClient wraps an Ethereum client with a token bucket
func NewEthClient(inner adapter.EthClient, cfg Config) adapter.EthClient {
	if cfg.RequestsPerSecond <= 0 {
		return inner
	}

	burst := max(cfg.Burst, 1)
	return &limitedEthClient{
		inner:        inner,
		limiter:      rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst),
		maxQueueTime: cfg.MaxQueueTime,
	}
}

// acquire blocks until a token is available, the queue time elapses or ctx is done
func (c *limitedEthClient) acquire(ctx context.Context) error {
	if c.maxQueueTime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.maxQueueTime)
		defer cancel()
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rpc rate limit: %w", err)
	}
	return nil
}

func (c *limitedEthClient) ChainID(ctx context.Context) (*big.Int, error) {
	if err := c.acquire(ctx); err != nil {
		return nil, err
	}
	return c.inner.ChainID(ctx)
}

func (c *limitedEthClient) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	if err := c.acquire(ctx); err != nil {
		return nil, err
	}
	return c.inner.CallContract(ctx, msg, blockNumber)
}

func (c *limitedEthClient) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	if err := c.acquire(ctx); err != nil {
		return 0, err
	}
	return c.inner.PendingNonceAt(ctx, account)
}

func (c *limitedEthClient) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	if err := c.acquire(ctx); err != nil {
		return nil, err
	}
	return c.inner.SuggestGasPrice(ctx)
}

func (c *limitedEthClient) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	if err := c.acquire(ctx); err != nil {
		return 0, err
	}
	return c.inner.EstimateGas(ctx, msg)
}

func (c *limitedEthClient) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	if err := c.acquire(ctx); err != nil {
		return err
	}
	return c.inner.SendTransaction(ctx, tx)
}

func (c *limitedEthClient) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	if err := c.acquire(ctx); err != nil {
		return nil, err
	}
	return c.inner.TransactionReceipt(ctx, txHash)
}

func (c *limitedEthClient) Close() {
	c.inner.Close()
}
