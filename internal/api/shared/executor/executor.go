package executor

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-rights-ledger/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-rights-ledger/internal/api/shared/errors"
	"github.com/feral-file/ff-rights-ledger/internal/domain"
	"github.com/feral-file/ff-rights-ledger/internal/identity"
	"github.com/feral-file/ff-rights-ledger/internal/logger"
	"github.com/feral-file/ff-rights-ledger/internal/ownership"
	"github.com/feral-file/ff-rights-ledger/internal/purchase"
	"github.com/feral-file/ff-rights-ledger/internal/rights"
	"github.com/feral-file/ff-rights-ledger/internal/tokenization"
)

// Executor is the interface for the API executor
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/mock_api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// GetToken returns the derived and registered token ids of a content item
	GetToken(ctx context.Context, contentID domain.ContentID) (*dto.TokenResponse, error)

	// Tokenize tokenizes a content item
	Tokenize(ctx context.Context, contentID domain.ContentID, req dto.TokenizeRequest) (*dto.TokenizationResponse, error)

	// RecoverTokenization finishes a pending tokenization
	RecoverTokenization(ctx context.Context, contentID domain.ContentID) (*dto.TokenizationResponse, error)

	// GetTokenization returns the tokenization state and failure flag of a content item
	GetTokenization(ctx context.Context, contentID domain.ContentID) (*dto.TokenizationStatusResponse, error)

	// Purchase purchases tokens of a content item
	Purchase(ctx context.Context, contentID domain.ContentID, req dto.PurchaseRequest) (*dto.PurchaseResponse, error)

	// GetPurchase returns the ledger record of a wallet, nil when the wallet never purchased
	GetPurchase(ctx context.Context, contentID domain.ContentID, wallet string) (*dto.PurchaseRecordResponse, error)

	// GetOwnership checks the ownership of a content item by a wallet
	GetOwnership(ctx context.Context, contentID domain.ContentID, wallet string, refresh bool) (*dto.OwnershipResponse, error)

	// GetRights returns the rights a wallet holds for a content item
	GetRights(ctx context.Context, contentID domain.ContentID, wallet string, refresh bool) (*dto.RightsResponse, error)
}

type executor struct {
	identity     identity.Identity
	resolver     rights.ThresholdResolver
	ownership    ownership.Cache
	purchases    purchase.Coordinator
	tokenization tokenization.Coordinator
}

func NewExecutor(
	identity identity.Identity,
	resolver rights.ThresholdResolver,
	ownership ownership.Cache,
	purchases purchase.Coordinator,
	tokenization tokenization.Coordinator,
) Executor {
	return &executor{
		identity:     identity,
		resolver:     resolver,
		ownership:    ownership,
		purchases:    purchases,
		tokenization: tokenization,
	}
}

func validContent(contentID domain.ContentID) error {
	if !contentID.Valid() {
		return apierrors.NewValidationError("content id is required")
	}
	return nil
}

func validWallet(wallet string) error {
	if !domain.ValidAddress(wallet) {
		return apierrors.NewValidationError(fmt.Sprintf("invalid wallet address: %s", wallet))
	}
	return nil
}

func (e *executor) GetToken(ctx context.Context, contentID domain.ContentID) (*dto.TokenResponse, error) {
	if err := validContent(contentID); err != nil {
		return nil, err
	}

	derived := identity.ResolveTokenID(contentID)
	resp := &dto.TokenResponse{
		ContentID:      contentID,
		DerivedTokenID: derived.String(),
		HashKeyed:      e.identity.HashKeyed(),
	}

	if resp.HashKeyed {
		resp.RegisteredTokenID = dto.TokenID(derived)
		return resp, nil
	}

	registered, err := e.identity.LookupRegisteredToken(ctx, contentID)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return resp, nil
		}
		return nil, err
	}
	resp.RegisteredTokenID = dto.TokenID(registered)

	return resp, nil
}

func (e *executor) Tokenize(ctx context.Context, contentID domain.ContentID, req dto.TokenizeRequest) (*dto.TokenizationResponse, error) {
	if err := validContent(contentID); err != nil {
		return nil, err
	}
	input, err := req.ToInput(contentID)
	if err != nil {
		return nil, err
	}

	result, err := e.tokenization.Tokenize(ctx, input)
	if err != nil {
		return nil, err
	}

	return dto.MapTokenizationResult(contentID, result), nil
}

func (e *executor) RecoverTokenization(ctx context.Context, contentID domain.ContentID) (*dto.TokenizationResponse, error) {
	if err := validContent(contentID); err != nil {
		return nil, err
	}

	result, err := e.tokenization.Recover(ctx, contentID)
	if err != nil {
		return nil, err
	}

	return dto.MapTokenizationResult(contentID, result), nil
}

func (e *executor) GetTokenization(ctx context.Context, contentID domain.ContentID) (*dto.TokenizationStatusResponse, error) {
	if err := validContent(contentID); err != nil {
		return nil, err
	}

	record, err := e.tokenization.Record(ctx, contentID)
	if err != nil {
		return nil, err
	}
	failure, err := e.tokenization.Failure(ctx, contentID)
	if err != nil {
		return nil, err
	}

	return dto.MapTokenizationStatus(contentID, record, failure), nil
}

func (e *executor) Purchase(ctx context.Context, contentID domain.ContentID, req dto.PurchaseRequest) (*dto.PurchaseResponse, error) {
	if err := validContent(contentID); err != nil {
		return nil, err
	}
	input, err := req.ToInput(contentID)
	if err != nil {
		return nil, err
	}

	result, err := e.purchases.Purchase(ctx, input)
	if err != nil {
		return nil, err
	}
	if result.Warning != "" {
		logger.WarnCtx(ctx, "Purchase completed with a warning",
			zap.String("contentID", contentID.String()),
			zap.String("state", string(result.State)),
			zap.String("txHash", result.TxHash))
	}

	return dto.MapPurchaseResult(input, result), nil
}

func (e *executor) GetPurchase(ctx context.Context, contentID domain.ContentID, wallet string) (*dto.PurchaseRecordResponse, error) {
	if err := validContent(contentID); err != nil {
		return nil, err
	}
	if err := validWallet(wallet); err != nil {
		return nil, err
	}

	record, err := e.purchases.Record(ctx, wallet, contentID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	return dto.MapPurchaseRecord(record), nil
}

func (e *executor) GetOwnership(ctx context.Context, contentID domain.ContentID, wallet string, refresh bool) (*dto.OwnershipResponse, error) {
	if err := validContent(contentID); err != nil {
		return nil, err
	}
	if err := validWallet(wallet); err != nil {
		return nil, err
	}

	record, err := e.ownership.CheckOwnership(ctx, wallet, contentID, refresh)
	if err != nil {
		return nil, err
	}

	resp := dto.MapOwnership(record)
	return &resp, nil
}

func (e *executor) GetRights(ctx context.Context, contentID domain.ContentID, wallet string, refresh bool) (*dto.RightsResponse, error) {
	if err := validContent(contentID); err != nil {
		return nil, err
	}
	if err := validWallet(wallet); err != nil {
		return nil, err
	}

	record, err := e.ownership.CheckOwnership(ctx, wallet, contentID, refresh)
	if err != nil {
		return nil, err
	}

	resolution, err := e.resolver.ResolveThresholds(ctx, contentID)
	if err != nil {
		return nil, err
	}

	return dto.MapRights(record, resolution), nil
}
