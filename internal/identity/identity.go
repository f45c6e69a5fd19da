package identity

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/feral-file/ff-rights-ledger/internal/chain"
	"github.com/feral-file/ff-rights-ledger/internal/domain"
	"github.com/feral-file/ff-rights-ledger/internal/logger"
)

// ResolveTokenID derives the token id of a content item as keccak256 of its UTF-8 id,
// read as a big-endian unsigned integer. It never touches the chain.
func ResolveTokenID(contentID domain.ContentID) *big.Int {
	return new(big.Int).SetBytes(crypto.Keccak256([]byte(contentID)))
}

// Config holds token identity configuration
type Config struct {
	// HashKeyedRegistry is set when the registry keys films by ResolveTokenID
	HashKeyedRegistry bool
}

// Memo persists resolved registry token ids across restarts
type Memo interface {
	GetRegisteredTokenID(ctx context.Context, contentID domain.ContentID) (*big.Int, error)
	SetRegisteredTokenID(ctx context.Context, contentID domain.ContentID, tokenID *big.Int) error
}

// Identity maps content ids to the token ids of the registry
//
//go:generate mockgen -source=identity.go -destination=../mocks/identity.go -package=mocks -mock_names=Identity=MockIdentity,Memo=MockMemo
type Identity interface {
	// HashKeyed reports whether token ids are derived rather than assigned by the registry
	HashKeyed() bool

	// Resolve returns the token id that purchase and ownership logic must use
	Resolve(ctx context.Context, contentID domain.ContentID) (*big.Int, error)

	// LookupRegisteredToken scans the registry for the film created for contentID
	LookupRegisteredToken(ctx context.Context, contentID domain.ContentID) (*big.Int, error)

	// Remember records the token id of a content item
	Remember(ctx context.Context, contentID domain.ContentID, tokenID *big.Int)

	// Film returns the registry metadata of a token
	Film(ctx context.Context, tokenID *big.Int) (*domain.Film, error)
}

// Service maps content ids to registry token ids
type Service struct {
	gateway   chain.Gateway
	memo      Memo
	hashKeyed bool

	mu         sync.RWMutex
	registered map[domain.ContentID]*big.Int
}

// New creates a token identity service. memo is optional.
func New(cfg Config, gateway chain.Gateway, memo Memo) *Service {
	return &Service{
		gateway:    gateway,
		memo:       memo,
		hashKeyed:  cfg.HashKeyedRegistry,
		registered: make(map[domain.ContentID]*big.Int),
	}
}

func (s *Service) HashKeyed() bool {
	return s.hashKeyed
}

// Resolve returns the token id that purchase and ownership logic must use
func (s *Service) Resolve(ctx context.Context, contentID domain.ContentID) (*big.Int, error) {
	if !contentID.Valid() {
		return nil, fmt.Errorf("%w: empty content id", domain.ErrInvalidParameters)
	}

	if s.hashKeyed {
		return ResolveTokenID(contentID), nil
	}

	return s.LookupRegisteredToken(ctx, contentID)
}

// LookupRegisteredToken scans the registry for the film created for contentID.
// The first matching slot wins and is remembered, a content id is never re-assigned.
func (s *Service) LookupRegisteredToken(ctx context.Context, contentID domain.ContentID) (*big.Int, error) {
	if !contentID.Valid() {
		return nil, fmt.Errorf("%w: empty content id", domain.ErrInvalidParameters)
	}

	s.mu.RLock()
	tokenID, ok := s.registered[contentID]
	s.mu.RUnlock()
	if ok {
		return new(big.Int).Set(tokenID), nil
	}

	if s.memo != nil {
		tokenID, err := s.memo.GetRegisteredTokenID(ctx, contentID)
		if err != nil {
			logger.WarnCtx(ctx, "Failed to read token id memo", zap.Error(err), zap.String("contentID", contentID.String()))
		} else if tokenID != nil {
			s.remember(contentID, tokenID)
			return new(big.Int).Set(tokenID), nil
		}
	}

	next, err := s.gateway.NextTokenID(ctx)
	if err != nil {
		return nil, registryError(err)
	}

	for i := big.NewInt(0); i.Cmp(next) < 0; i = new(big.Int).Add(i, big.NewInt(1)) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		film, err := s.gateway.Film(ctx, i)
		if err != nil {
			return nil, registryError(err)
		}
		if film == nil || film.FilmID != contentID.String() {
			continue
		}

		s.Remember(ctx, contentID, i)
		logger.DebugCtx(ctx, "Resolved registered token",
			zap.String("contentID", contentID.String()),
			zap.String("tokenID", i.String()))

		return new(big.Int).Set(i), nil
	}

	return nil, fmt.Errorf("%w: %s", domain.ErrTokenNotFound, contentID)
}

// Remember records the token id of a content item, e.g. one learned from a mint log.
// The first id recorded for a content item is kept.
func (s *Service) Remember(ctx context.Context, contentID domain.ContentID, tokenID *big.Int) {
	if !s.remember(contentID, tokenID) || s.memo == nil {
		return
	}

	if err := s.memo.SetRegisteredTokenID(ctx, contentID, tokenID); err != nil {
		logger.WarnCtx(ctx, "Failed to persist token id memo", zap.Error(err), zap.String("contentID", contentID.String()))
	}
}

func (s *Service) remember(contentID domain.ContentID, tokenID *big.Int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.registered[contentID]; ok {
		return false
	}
	s.registered[contentID] = new(big.Int).Set(tokenID)
	return true
}

// Film returns the registry metadata of a token
func (s *Service) Film(ctx context.Context, tokenID *big.Int) (*domain.Film, error) {
	film, err := s.gateway.Film(ctx, tokenID)
	if err != nil {
		return nil, registryError(err)
	}
	if film == nil {
		return nil, fmt.Errorf("%w: token %s", domain.ErrTokenNotFound, tokenID)
	}
	return film, nil
}

func registryError(err error) error {
	if domain.ErrorClass(err) == "unknown" {
		return fmt.Errorf("%w: %v", domain.ErrRegistryUnavailable, err)
	}
	return err
}
