package chain

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/feral-file/ff-rights-ledger/internal/domain"
)

// CreateFilmParams are the arguments of the registry's createFilm call
type CreateFilmParams struct {
	FilmID        domain.ContentID
	Title         string
	Supply        uint64
	PricePerToken *big.Int
	Thresholds    []domain.RightsThreshold
	RoyaltySplits []domain.RoyaltySplit
}

// Gateway is the single access point to the registry contract and the signing wallet.
// Every method classifies failures into the domain error taxonomy.
//
//go:generate mockgen -source=gateway.go -destination=../mocks/gateway.go -package=mocks -mock_names=Gateway=MockGateway
type Gateway interface {
	// Chain returns the network the gateway is configured for
	Chain() domain.Chain

	// ContractAddress returns the registry contract address, zero when not configured
	ContractAddress() common.Address

	// Account returns the connected wallet account on the configured network
	Account(ctx context.Context) (common.Address, error)

	// BalanceOf reads the ERC-1155 balance of owner for tokenID
	BalanceOf(ctx context.Context, owner common.Address, tokenID *big.Int) (*big.Int, error)

	// NextTokenID reads the id the registry will assign to the next film
	NextTokenID(ctx context.Context) (*big.Int, error)

	// Film reads the registry record of a token, nil when the slot is empty
	Film(ctx context.Context, tokenID *big.Int) (*domain.Film, error)

	// RightsThresholds reads the on-chain rights thresholds of a token
	RightsThresholds(ctx context.Context, tokenID *big.Int) ([]domain.RightsThreshold, error)

	// CreateFilm submits a createFilm transaction and returns its hash
	CreateFilm(ctx context.Context, params CreateFilmParams) (common.Hash, error)

	// SetFilmMetadata submits a setFilmMetadata transaction and returns its hash
	SetFilmMetadata(ctx context.Context, tokenID *big.Int, metadataURI string) (common.Hash, error)

	// PurchaseTokens submits a payable purchaseTokens transaction and returns its hash.
	// domain.ErrPartialSuccessPaymentOnly is returned with the hash when the payment may
	// have been broadcast but the submission could not be confirmed.
	PurchaseTokens(ctx context.Context, tokenID *big.Int, quantity uint64, value *big.Int) (common.Hash, error)

	// WaitForReceipt polls for the receipt of txHash until it is mined or timeout elapses.
	// A timeout returns domain.ErrConfirmationTimeout and never cancels the transaction.
	WaitForReceipt(ctx context.Context, txHash common.Hash, timeout time.Duration) (*types.Receipt, error)
}
