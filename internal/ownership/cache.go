package ownership

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/ff-rights-ledger/internal/adapter"
	"github.com/feral-file/ff-rights-ledger/internal/chain"
	"github.com/feral-file/ff-rights-ledger/internal/domain"
	"github.com/feral-file/ff-rights-ledger/internal/identity"
	"github.com/feral-file/ff-rights-ledger/internal/logger"
	"github.com/feral-file/ff-rights-ledger/internal/store"
)

// Cache provides cached ownership checks backed by on-chain balances.
// Chain failures fail open to the last known ledger quantity.
//
//go:generate mockgen -source=cache.go -destination=../mocks/ownership_cache.go -package=mocks -mock_names=Cache=MockOwnershipCache
type Cache interface {
	// CheckOwnership returns the ownership of contentID by wallet, from cache when fresh
	CheckOwnership(ctx context.Context, wallet string, contentID domain.ContentID, forceRefresh bool) (domain.OwnershipRecord, error)

	// Invalidate drops the cached entry of one wallet and content item
	Invalidate(wallet string, contentID domain.ContentID)

	// InvalidateWallet drops every cached entry of a wallet
	InvalidateWallet(wallet string)

	// InvalidateAll drops every cached entry
	InvalidateAll()

	// Bump optimistically adds quantity to a cached entry
	Bump(wallet string, contentID domain.ContentID, quantity uint64)

	// WatchWallet invalidates entries on wallet account and network changes until ctx is done
	WatchWallet(ctx context.Context, events <-chan chain.WalletEvent)
}

// Config holds ownership cache configuration
type Config struct {
	// TTL is how long a chain-verified check is served from cache
	TTL time.Duration
}

type cacheKey struct {
	wallet    string
	contentID domain.ContentID
}

type cacheEntry struct {
	record   domain.OwnershipRecord
	cachedAt time.Time
}

type cache struct {
	identity identity.Identity
	gateway  chain.Gateway
	store    store.Store
	clock    adapter.Clock
	ttl      time.Duration

	mu      sync.RWMutex
	entries map[cacheKey]*cacheEntry
	// generation counters; a refresh only writes back if none moved while it ran
	global  uint64
	wallets map[string]uint64
	keys    map[cacheKey]uint64
}

// NewCache creates an ownership cache
func NewCache(cfg Config, identity identity.Identity, gateway chain.Gateway, store store.Store, clock adapter.Clock) Cache {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = domain.DEFAULT_OWNERSHIP_TTL
	}

	return &cache{
		identity: identity,
		gateway:  gateway,
		store:    store,
		clock:    clock,
		ttl:      ttl,
		entries:  make(map[cacheKey]*cacheEntry),
		wallets:  make(map[string]uint64),
		keys:     make(map[cacheKey]uint64),
	}
}

func keyOf(wallet string, contentID domain.ContentID) cacheKey {
	return cacheKey{wallet: domain.NormalizeAddress(wallet), contentID: contentID}
}

// generation must be called with mu held
func (c *cache) generation(key cacheKey) uint64 {
	return c.global + c.wallets[key.wallet] + c.keys[key]
}

// CheckOwnership returns the ownership record of wallet for contentID
func (c *cache) CheckOwnership(ctx context.Context, wallet string, contentID domain.ContentID, forceRefresh bool) (domain.OwnershipRecord, error) {
	if !domain.ValidAddress(wallet) {
		return domain.OwnershipRecord{}, fmt.Errorf("%w: invalid wallet address %q", domain.ErrInvalidParameters, wallet)
	}
	if !contentID.Valid() {
		return domain.OwnershipRecord{}, fmt.Errorf("%w: empty content id", domain.ErrInvalidParameters)
	}

	key := keyOf(wallet, contentID)
	now := c.clock.Now()

	c.mu.RLock()
	cached := c.entries[key]
	generation := c.generation(key)
	c.mu.RUnlock()

	if !forceRefresh && cached != nil && now.Sub(cached.cachedAt) < c.ttl {
		logger.DebugCtx(ctx, "Using cached ownership",
			zap.String("wallet", key.wallet),
			zap.String("contentID", contentID.String()))
		return cached.record, nil
	}

	balance, err := c.chainBalance(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidParameters) {
			return domain.OwnershipRecord{}, err
		}
		logger.WarnCtx(ctx, "Ownership check failed on chain, using last known ownership",
			zap.Error(err),
			zap.String("wallet", key.wallet),
			zap.String("contentID", contentID.String()))
		return c.lastKnown(ctx, key, now), nil
	}

	record := domain.OwnershipRecord{
		Wallet:          key.wallet,
		ContentID:       contentID,
		Quantity:        balance,
		VerifiedOnChain: true,
		LastCheckedAt:   now,
	}

	purchase, err := c.store.GetPurchase(ctx, key.wallet, contentID)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to read purchase ledger", zap.Error(err), zap.String("contentID", contentID.String()))
	} else if purchase != nil &&
		purchase.ReconciliationStatus == domain.ReconciliationStatusPaidButUnverified &&
		purchase.Quantity > balance {
		// paid access is kept until re-verification catches up
		record.Quantity = purchase.Quantity
		record.VerifiedOnChain = false
	}
	record.Owned = record.Quantity > 0

	if err := c.store.UpsertOwnership(ctx, record); err != nil {
		logger.WarnCtx(ctx, "Failed to persist ownership", zap.Error(err), zap.String("contentID", contentID.String()))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generation(key) != generation {
		if current := c.entries[key]; current != nil {
			return current.record, nil
		}
		return record, nil
	}
	c.entries[key] = &cacheEntry{record: record, cachedAt: now}

	return record, nil
}

// chainBalance reads the balance of the key's wallet. A content item without a
// registered token is owned by nobody.
func (c *cache) chainBalance(ctx context.Context, key cacheKey) (uint64, error) {
	tokenID, err := c.identity.Resolve(ctx, key.contentID)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return 0, nil
		}
		return 0, err
	}

	balance, err := c.gateway.BalanceOf(ctx, common.HexToAddress(key.wallet), tokenID)
	if err != nil {
		return 0, err
	}

	return domain.QuantityFromBig(balance), nil
}

// lastKnown builds an unverified record from the ledger, or the last persisted ownership
func (c *cache) lastKnown(ctx context.Context, key cacheKey, now time.Time) domain.OwnershipRecord {
	record := domain.OwnershipRecord{
		Wallet:        key.wallet,
		ContentID:     key.contentID,
		LastCheckedAt: now,
	}

	purchase, err := c.store.GetPurchase(ctx, key.wallet, key.contentID)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to read purchase ledger", zap.Error(err), zap.String("contentID", key.contentID.String()))
	}
	if purchase != nil {
		record.Quantity = purchase.Quantity
	} else {
		persisted, err := c.store.GetOwnership(ctx, key.wallet, key.contentID)
		if err != nil {
			logger.WarnCtx(ctx, "Failed to read persisted ownership", zap.Error(err), zap.String("contentID", key.contentID.String()))
		}
		if persisted != nil {
			record.Quantity = persisted.Quantity
		}
	}
	record.Owned = record.Quantity > 0

	return record
}

// Invalidate drops the cached entry of one wallet and content item
func (c *cache) Invalidate(wallet string, contentID domain.ContentID) {
	key := keyOf(wallet, contentID)

	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	c.keys[key]++
}

// InvalidateWallet drops every cached entry of a wallet
func (c *cache) InvalidateWallet(wallet string) {
	wallet = domain.NormalizeAddress(wallet)

	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if key.wallet == wallet {
			delete(c.entries, key)
		}
	}
	c.wallets[wallet]++
}

// InvalidateAll drops every cached entry
func (c *cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[cacheKey]*cacheEntry)
	c.global++
}

// Bump adds quantity to a cached entry and marks it unverified. Without an entry the
// next check reads the chain and the ledger.
func (c *cache) Bump(wallet string, contentID domain.ContentID, quantity uint64) {
	key := keyOf(wallet, contentID)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.keys[key]++

	entry := c.entries[key]
	if entry == nil {
		return
	}

	record := entry.record
	if record.Quantity > math.MaxUint64-quantity {
		record.Quantity = math.MaxUint64
	} else {
		record.Quantity += quantity
	}
	record.Owned = record.Quantity > 0
	record.VerifiedOnChain = false
	c.entries[key] = &cacheEntry{record: record, cachedAt: c.clock.Now()}
}

// WatchWallet consumes wallet events until ctx is done or the channel closes
func (c *cache) WatchWallet(ctx context.Context, events <-chan chain.WalletEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}

			switch event.Type {
			case chain.WalletEventNetworkChanged:
				logger.InfoCtx(ctx, "Wallet network changed, invalidating ownership cache",
					zap.Stringer("chainID", event.ChainID))
				c.InvalidateAll()
			case chain.WalletEventAccountsChanged:
				for _, account := range event.Previous {
					c.InvalidateWallet(account.Hex())
				}
				for _, account := range event.Accounts {
					c.InvalidateWallet(account.Hex())
				}
				logger.InfoCtx(ctx, "Wallet accounts changed, invalidated ownership entries",
					zap.Int("previous", len(event.Previous)),
					zap.Int("current", len(event.Accounts)))
			default:
				logger.WarnCtx(ctx, "Unknown wallet event", zap.String("type", string(event.Type)))
			}
		}
	}
}
