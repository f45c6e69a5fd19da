package ethereum

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/feral-file/ff-rights-ledger/internal/chain"
	"github.com/feral-file/ff-rights-ledger/internal/domain"
	"github.com/feral-file/ff-rights-ledger/internal/logger"
)

const walletEventBuffer = 8

// keyedWallet is a chain.Wallet backed by a single private key
type keyedWallet struct {
	mu          sync.RWMutex
	key         *ecdsa.PrivateKey
	address     common.Address
	chainID     *big.Int
	subscribers map[chan chain.WalletEvent]struct{}
}

// NewKeyedWallet creates a wallet from a hex encoded private key
func NewKeyedWallet(hexKey string, chainID domain.Chain) (chain.Wallet, error) {
	id, err := chainID.ChainID()
	if err != nil {
		return nil, err
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid signer private key: %w", err)
	}

	return &keyedWallet{
		key:         key,
		address:     crypto.PubkeyToAddress(key.PublicKey),
		chainID:     id,
		subscribers: make(map[chan chain.WalletEvent]struct{}),
	}, nil
}

func (w *keyedWallet) Accounts(_ context.Context) ([]common.Address, error) {
	return []common.Address{w.address}, nil
}

func (w *keyedWallet) ChainID(_ context.Context) (*big.Int, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return new(big.Int).Set(w.chainID), nil
}

// SwitchChain moves the wallet to another network and notifies subscribers
func (w *keyedWallet) SwitchChain(_ context.Context, chainID *big.Int) error {
	if chainID == nil || chainID.Sign() <= 0 {
		return fmt.Errorf("%w: invalid chain id", domain.ErrWrongNetwork)
	}

	w.mu.Lock()
	if w.chainID.Cmp(chainID) == 0 {
		w.mu.Unlock()
		return nil
	}
	w.chainID = new(big.Int).Set(chainID)
	w.mu.Unlock()

	w.broadcast(chain.WalletEvent{
		Type:     chain.WalletEventNetworkChanged,
		Previous: []common.Address{w.address},
		Accounts: []common.Address{w.address},
		ChainID:  new(big.Int).Set(chainID),
	})

	return nil
}

// SignTx signs tx with the wallet key for its current network
func (w *keyedWallet) SignTx(_ context.Context, account common.Address, tx *types.Transaction) (*types.Transaction, error) {
	if account != w.address {
		return nil, fmt.Errorf("%w: unknown account %s", domain.ErrWalletUnavailable, account.Hex())
	}

	w.mu.RLock()
	signer := types.LatestSignerForChainID(w.chainID)
	w.mu.RUnlock()

	return types.SignTx(tx, signer, w.key)
}

// Subscribe registers a listener, the channel is closed once ctx is done
func (w *keyedWallet) Subscribe(ctx context.Context) <-chan chain.WalletEvent {
	ch := make(chan chain.WalletEvent, walletEventBuffer)

	w.mu.Lock()
	w.subscribers[ch] = struct{}{}
	w.mu.Unlock()

	go func() {
		<-ctx.Done()
		w.mu.Lock()
		delete(w.subscribers, ch)
		close(ch)
		w.mu.Unlock()
	}()

	return ch
}

// broadcast delivers the event without blocking. A listener whose buffer is full has
// its backlog replaced by a single network change, so it drops everything it cached.
func (w *keyedWallet) broadcast(event chain.WalletEvent) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for ch := range w.subscribers {
		select {
		case ch <- event:
			continue
		default:
		}

		logger.Warn("Wallet subscriber is full, collapsing pending events",
			zap.String("type", string(event.Type)))

	drain:
		for {
			select {
			case <-ch:
			default:
				break drain
			}
		}

		select {
		case ch <- chain.WalletEvent{
			Type:     chain.WalletEventNetworkChanged,
			Previous: []common.Address{w.address},
			Accounts: []common.Address{w.address},
			ChainID:  new(big.Int).Set(w.chainID),
		}:
		default:
		}
	}
}
