package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/feral-file/ff-rights-ledger/internal/adapter"
	"github.com/feral-file/ff-rights-ledger/internal/chain"
	"github.com/feral-file/ff-rights-ledger/internal/domain"
	"github.com/feral-file/ff-rights-ledger/internal/logger"
)

const (
	defaultReceiptPollInterval = time.Second
	maxReceiptPollInterval     = 5 * time.Second

	// gasLimitBufferPercent is added on top of the node's gas estimate
	gasLimitBufferPercent = 20
)

var errReceiptPending = errors.New("receipt pending")

// Config holds the registry client configuration
type Config struct {
	ChainID             domain.Chain
	ContractAddress     string
	ReceiptPollInterval time.Duration
}

type client struct {
	chain        domain.Chain
	chainID      *big.Int
	contract     common.Address
	pollInterval time.Duration
	registryABI  abi.ABI
	client       adapter.EthClient
	wallet       chain.Wallet
}

// NewClient creates the registry gateway. wallet may be nil for a read-only gateway,
// in which case every write fails with domain.ErrWalletUnavailable.
func NewClient(cfg Config, ethClient adapter.EthClient, wallet chain.Wallet) (chain.Gateway, error) {
	chainID, err := cfg.ChainID.ChainID()
	if err != nil {
		return nil, err
	}

	registryABI, err := abi.JSON(strings.NewReader(registryABIJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI: %w", err)
	}

	var contract common.Address
	if cfg.ContractAddress != "" {
		if !common.IsHexAddress(cfg.ContractAddress) {
			return nil, fmt.Errorf("invalid contract address: %s", cfg.ContractAddress)
		}
		contract = common.HexToAddress(cfg.ContractAddress)
	}

	pollInterval := cfg.ReceiptPollInterval
	if pollInterval <= 0 {
		pollInterval = defaultReceiptPollInterval
	}

	return &client{
		chain:        cfg.ChainID,
		chainID:      chainID,
		contract:     contract,
		pollInterval: pollInterval,
		registryABI:  registryABI,
		client:       ethClient,
		wallet:       wallet,
	}, nil
}

// VerifyNetwork checks that the node behind ethClient serves the expected chain
func VerifyNetwork(ctx context.Context, ethClient adapter.EthClient, expected domain.Chain) error {
	expectedID, err := expected.ChainID()
	if err != nil {
		return err
	}

	nodeID, err := ethClient.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to read chain id: %v", domain.ErrRegistryUnavailable, err)
	}

	if nodeID.Cmp(expectedID) != 0 {
		return fmt.Errorf("%w: node serves %s, expected %s", domain.ErrWrongNetwork, domain.ChainFromID(nodeID), expected)
	}

	return nil
}

func (c *client) Chain() domain.Chain {
	return c.chain
}

func (c *client) ContractAddress() common.Address {
	return c.contract
}

// Account returns the first wallet account, asking the wallet to switch network when needed
func (c *client) Account(ctx context.Context) (common.Address, error) {
	if c.wallet == nil {
		return common.Address{}, domain.ErrWalletUnavailable
	}

	accounts, err := c.wallet.Accounts(ctx)
	if err != nil {
		return common.Address{}, walletError(err)
	}
	if len(accounts) == 0 {
		return common.Address{}, fmt.Errorf("%w: no connected account", domain.ErrWalletUnavailable)
	}

	walletChainID, err := c.wallet.ChainID(ctx)
	if err != nil {
		return common.Address{}, walletError(err)
	}

	if walletChainID.Cmp(c.chainID) != 0 {
		logger.WarnCtx(ctx, "Wallet on a different network, requesting switch",
			zap.String("walletChain", string(domain.ChainFromID(walletChainID))),
			zap.String("expectedChain", string(c.chain)))

		if err := c.wallet.SwitchChain(ctx, c.chainID); err != nil {
			return common.Address{}, fmt.Errorf("%w: wallet on %s, expected %s: %v",
				domain.ErrWrongNetwork, domain.ChainFromID(walletChainID), c.chain, err)
		}
	}

	return accounts[0], nil
}

// BalanceOf reads the ERC-1155 balance of owner for tokenID
func (c *client) BalanceOf(ctx context.Context, owner common.Address, tokenID *big.Int) (*big.Int, error) {
	out, err := c.call(ctx, "balanceOf", owner, tokenID)
	if err != nil {
		return nil, err
	}

	balance, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected balanceOf output", domain.ErrRegistryUnavailable)
	}

	return balance, nil
}

// NextTokenID reads the id the registry will assign to the next film
func (c *client) NextTokenID(ctx context.Context) (*big.Int, error) {
	out, err := c.call(ctx, "nextTokenId")
	if err != nil {
		return nil, err
	}

	next, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected nextTokenId output", domain.ErrRegistryUnavailable)
	}

	return next, nil
}

// Film reads a registry slot, empty slots (no film id) return nil
func (c *client) Film(ctx context.Context, tokenID *big.Int) (*domain.Film, error) {
	out, err := c.call(ctx, "films", tokenID)
	if err != nil {
		return nil, err
	}
	if len(out) != 5 {
		return nil, fmt.Errorf("%w: unexpected films output length %d", domain.ErrRegistryUnavailable, len(out))
	}

	filmID, _ := out[0].(string)
	if filmID == "" {
		return nil, nil
	}

	title, _ := out[1].(string)
	supply, _ := out[2].(*big.Int)
	price, _ := out[3].(*big.Int)
	creator, _ := out[4].(common.Address)

	return &domain.Film{
		TokenID:       new(big.Int).Set(tokenID),
		FilmID:        filmID,
		Title:         title,
		Supply:        supply,
		PricePerToken: price,
		Creator:       creator,
	}, nil
}

// RightsThresholds reads the on-chain thresholds of a token, sorted ascending
func (c *client) RightsThresholds(ctx context.Context, tokenID *big.Int) ([]domain.RightsThreshold, error) {
	out, err := c.call(ctx, "getRightsThresholds", tokenID)
	if err != nil {
		return nil, err
	}

	tuples := *abi.ConvertType(out[0], new([]thresholdTuple)).(*[]thresholdTuple)

	thresholds := make([]domain.RightsThreshold, 0, len(tuples))
	for _, t := range tuples {
		if t.Quantity == nil || !t.Quantity.IsUint64() {
			return nil, fmt.Errorf("%w: threshold quantity out of range", domain.ErrRegistryUnavailable)
		}
		thresholds = append(thresholds, domain.RightsThreshold{
			Quantity: t.Quantity.Uint64(),
			Label:    t.Label,
		})
	}
	domain.SortThresholds(thresholds)

	return thresholds, nil
}

// CreateFilm submits a createFilm transaction
func (c *client) CreateFilm(ctx context.Context, params chain.CreateFilmParams) (common.Hash, error) {
	thresholds := make([]thresholdTuple, 0, len(params.Thresholds))
	for _, t := range params.Thresholds {
		thresholds = append(thresholds, thresholdTuple{
			Quantity: new(big.Int).SetUint64(t.Quantity),
			Label:    t.Label,
		})
	}

	recipients := make([]common.Address, 0, len(params.RoyaltySplits))
	bps := make([]*big.Int, 0, len(params.RoyaltySplits))
	for _, split := range params.RoyaltySplits {
		recipients = append(recipients, common.HexToAddress(split.Recipient))
		bps = append(bps, big.NewInt(int64(split.BasisPoints)))
	}

	data, err := c.registryABI.Pack("createFilm",
		params.FilmID.String(),
		params.Title,
		new(big.Int).SetUint64(params.Supply),
		params.PricePerToken,
		thresholds,
		recipients,
		bps,
	)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: failed to pack createFilm: %v", domain.ErrInvalidParameters, err)
	}

	return c.transact(ctx, data, nil)
}

// SetFilmMetadata submits a setFilmMetadata transaction
func (c *client) SetFilmMetadata(ctx context.Context, tokenID *big.Int, metadataURI string) (common.Hash, error) {
	data, err := c.registryABI.Pack("setFilmMetadata", tokenID, metadataURI)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: failed to pack setFilmMetadata: %v", domain.ErrInvalidParameters, err)
	}

	return c.transact(ctx, data, nil)
}

// PurchaseTokens submits a payable purchaseTokens transaction carrying value
func (c *client) PurchaseTokens(ctx context.Context, tokenID *big.Int, quantity uint64, value *big.Int) (common.Hash, error) {
	data, err := c.registryABI.Pack("purchaseTokens", tokenID, new(big.Int).SetUint64(quantity))
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: failed to pack purchaseTokens: %v", domain.ErrInvalidParameters, err)
	}

	return c.transact(ctx, data, value)
}

// WaitForReceipt polls for the receipt with exponential backoff until timeout
func (c *client) WaitForReceipt(ctx context.Context, txHash common.Hash, timeout time.Duration) (*types.Receipt, error) {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.pollInterval
	b.MaxInterval = maxReceiptPollInterval
	b.MaxElapsedTime = 0 // bounded by waitCtx

	var receipt *types.Receipt
	operation := func() error {
		r, err := c.client.TransactionReceipt(waitCtx, txHash)
		if err != nil {
			if errors.Is(err, ethereum.NotFound) {
				return errReceiptPending
			}
			return err
		}
		receipt = r
		return nil
	}

	notify := func(err error, d time.Duration) {
		if !errors.Is(err, errReceiptPending) {
			logger.WarnCtx(ctx, "Failed to fetch receipt, retrying",
				zap.String("txHash", txHash.Hex()),
				zap.Error(err),
				zap.Duration("retryIn", d))
		}
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(b, waitCtx), notify); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if waitCtx.Err() != nil {
			return nil, fmt.Errorf("%w: %s not mined after %s", domain.ErrConfirmationTimeout, txHash.Hex(), timeout)
		}
		return nil, err
	}

	return receipt, nil
}

// call packs and executes a read-only contract call, unpacking its outputs
func (c *client) call(ctx context.Context, method string, args ...any) ([]any, error) {
	if c.contract == (common.Address{}) {
		return nil, domain.ErrContractNotConfigured
	}

	data, err := c.registryABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}

	contract := c.contract
	result, err := c.client.CallContract(ctx, ethereum.CallMsg{
		To:   &contract,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrRegistryUnavailable, method, err)
	}

	out, err := c.registryABI.Unpack(method, result)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to unpack %s: %v", domain.ErrRegistryUnavailable, method, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty %s output", domain.ErrRegistryUnavailable, method)
	}

	return out, nil
}

// transact builds, signs and broadcasts a legacy transaction to the registry
func (c *client) transact(ctx context.Context, data []byte, value *big.Int) (common.Hash, error) {
	if c.contract == (common.Address{}) {
		return common.Hash{}, domain.ErrContractNotConfigured
	}

	from, err := c.Account(ctx)
	if err != nil {
		return common.Hash{}, err
	}

	if value == nil {
		value = big.NewInt(0)
	}

	nonce, err := c.client.PendingNonceAt(ctx, from)
	if err != nil {
		return common.Hash{}, chain.ClassifyError(fmt.Errorf("failed to get nonce: %w", err))
	}

	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, chain.ClassifyError(fmt.Errorf("failed to suggest gas price: %w", err))
	}

	contract := c.contract
	gas, err := c.client.EstimateGas(ctx, ethereum.CallMsg{
		From:  from,
		To:    &contract,
		Value: value,
		Data:  data,
	})
	if err != nil {
		return common.Hash{}, chain.ClassifyError(fmt.Errorf("failed to estimate gas: %w", err))
	}
	gas += gas * gasLimitBufferPercent / 100

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &contract,
		Value:    value,
		Gas:      gas,
		GasPrice: gasPrice,
		Data:     data,
	})

	signed, err := c.wallet.SignTx(ctx, from, tx)
	if err != nil {
		return common.Hash{}, walletError(err)
	}

	if err := c.client.SendTransaction(ctx, signed); err != nil {
		// a payable transaction may have been broadcast even though the send failed
		if value.Sign() > 0 && chain.IsBroadcastAmbiguous(err) {
			logger.WarnCtx(ctx, "Payable transaction broadcast is ambiguous",
				zap.String("txHash", signed.Hash().Hex()),
				zap.Error(err))
			return signed.Hash(), fmt.Errorf("%w: %s: %v", domain.ErrPartialSuccessPaymentOnly, signed.Hash().Hex(), err)
		}
		return common.Hash{}, chain.ClassifyError(fmt.Errorf("failed to send transaction: %w", err))
	}

	logger.InfoCtx(ctx, "Transaction submitted",
		zap.String("txHash", signed.Hash().Hex()),
		zap.String("from", from.Hex()),
		zap.Uint64("nonce", nonce))

	return signed.Hash(), nil
}

// walletError classifies a wallet failure, defaulting to ErrWalletUnavailable
func walletError(err error) error {
	classified := chain.ClassifyError(err)
	if domain.ErrorClass(classified) == "unknown" {
		return fmt.Errorf("%w: %v", domain.ErrWalletUnavailable, err)
	}
	return classified
}
