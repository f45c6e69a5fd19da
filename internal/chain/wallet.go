package chain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// WalletEventType is the kind of change a wallet reports
type WalletEventType string

const (
	WalletEventAccountsChanged WalletEventType = "accounts_changed"
	WalletEventNetworkChanged  WalletEventType = "network_changed"
)

// WalletEvent is an account or network change notification
type WalletEvent struct {
	Type WalletEventType
	// Previous holds the accounts that were connected before the change
	Previous []common.Address
	Accounts []common.Address
	ChainID  *big.Int
}

// Wallet is the signing wallet consumed as a black box
//
//go:generate mockgen -source=wallet.go -destination=../mocks/wallet.go -package=mocks -mock_names=Wallet=MockWallet
type Wallet interface {
	// Accounts returns the connected accounts, empty when the wallet is locked
	Accounts(ctx context.Context) ([]common.Address, error)

	// ChainID returns the network the wallet signs for
	ChainID(ctx context.Context) (*big.Int, error)

	// SwitchChain asks the wallet to move to another network
	SwitchChain(ctx context.Context, chainID *big.Int) error

	// SignTx signs a transaction with the given account
	SignTx(ctx context.Context, account common.Address, tx *types.Transaction) (*types.Transaction, error)

	// Subscribe returns a channel of account and network changes, closed when ctx is done
	Subscribe(ctx context.Context) <-chan WalletEvent
}
