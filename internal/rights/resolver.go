package rights

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"github.com/feral-file/ff-rights-ledger/internal/catalog"
	"github.com/feral-file/ff-rights-ledger/internal/chain"
	"github.com/feral-file/ff-rights-ledger/internal/domain"
	"github.com/feral-file/ff-rights-ledger/internal/identity"
	"github.com/feral-file/ff-rights-ledger/internal/logger"
)

// Source names where a threshold list came from
type Source string

const (
	SourceChain   Source = "chain"
	SourceCatalog Source = "catalog"
	SourceDefault Source = "default"
)

// Resolution is the threshold list in effect for a content item
type Resolution struct {
	Thresholds []domain.RightsThreshold `json:"thresholds"`
	Source     Source                   `json:"source"`
	// TokenID is set when the content is registered on chain
	TokenID *big.Int `json:"token_id,omitempty"`
}

// Effective returns the thresholds with the implied default tier filled in
func (r Resolution) Effective() []domain.RightsThreshold {
	if len(r.Thresholds) == 0 {
		return []domain.RightsThreshold{domain.DefaultThreshold}
	}
	return r.Thresholds
}

// Rights returns the labels unlocked by owning the given quantity
func (r Resolution) Rights(owned uint64) []string {
	return RightsFor(owned, r.Thresholds)
}

// ThresholdResolver resolves the rights thresholds in effect for a content item
//
//go:generate mockgen -source=resolver.go -destination=../mocks/rights_resolver.go -package=mocks -mock_names=ThresholdResolver=MockThresholdResolver
type ThresholdResolver interface {
	ResolveThresholds(ctx context.Context, contentID domain.ContentID) (Resolution, error)
}

// Resolver resolves thresholds with a fixed precedence: the chain value of a registered
// token, then the catalog fallback, then the implied default tier
type Resolver struct {
	identity identity.Identity
	gateway  chain.Gateway
	catalog  catalog.Catalog
}

// NewResolver creates a thresholds resolver
func NewResolver(identity identity.Identity, gateway chain.Gateway, catalog catalog.Catalog) *Resolver {
	return &Resolver{
		identity: identity,
		gateway:  gateway,
		catalog:  catalog,
	}
}

// ResolveThresholds returns the thresholds in effect for contentID.
// Chain read failures fall through to the catalog; an empty chain list is a valid value.
func (r *Resolver) ResolveThresholds(ctx context.Context, contentID domain.ContentID) (Resolution, error) {
	if !contentID.Valid() {
		return Resolution{}, fmt.Errorf("%w: empty content id", domain.ErrInvalidParameters)
	}

	tokenID, registered := r.registeredToken(ctx, contentID)
	if registered {
		thresholds, err := r.gateway.RightsThresholds(ctx, tokenID)
		if err == nil {
			return Resolution{Thresholds: Normalize(thresholds), Source: SourceChain, TokenID: tokenID}, nil
		}
		logger.WarnCtx(ctx, "Failed to read rights thresholds from chain, using catalog",
			zap.Error(err),
			zap.String("contentID", contentID.String()),
			zap.String("tokenID", tokenID.String()))
	}

	resolution := Resolution{Thresholds: []domain.RightsThreshold{}, Source: SourceDefault}
	if registered {
		resolution.TokenID = tokenID
	}

	thresholds, err := r.catalog.GetRightsThresholdsFallback(ctx, contentID)
	if err != nil {
		if errors.Is(err, domain.ErrContentNotFound) {
			return resolution, nil
		}
		return Resolution{}, err
	}
	if len(thresholds) > 0 {
		resolution.Thresholds = Normalize(thresholds)
		resolution.Source = SourceCatalog
	}

	return resolution, nil
}

// registeredToken returns the token id of contentID when it is known to exist on chain.
// A hash-keyed registry is asked for the film record since the id alone proves nothing.
func (r *Resolver) registeredToken(ctx context.Context, contentID domain.ContentID) (*big.Int, bool) {
	tokenID, err := r.identity.Resolve(ctx, contentID)
	if err != nil {
		if !errors.Is(err, domain.ErrTokenNotFound) {
			logger.WarnCtx(ctx, "Failed to resolve token id", zap.Error(err), zap.String("contentID", contentID.String()))
		}
		return nil, false
	}

	if !r.identity.HashKeyed() {
		return tokenID, true
	}

	if _, err := r.identity.Film(ctx, tokenID); err != nil {
		if !errors.Is(err, domain.ErrTokenNotFound) {
			logger.WarnCtx(ctx, "Failed to confirm token registration", zap.Error(err), zap.String("contentID", contentID.String()))
		}
		return nil, false
	}

	return tokenID, true
}
