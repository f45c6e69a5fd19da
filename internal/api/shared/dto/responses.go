package dto

import (
	"math/big"
	"time"

	"github.com/feral-file/ff-rights-ledger/internal/domain"
	"github.com/feral-file/ff-rights-ledger/internal/purchase"
	"github.com/feral-file/ff-rights-ledger/internal/rights"
	"github.com/feral-file/ff-rights-ledger/internal/tokenization"
)

// TokenResponse represents the token identity of a content item
type TokenResponse struct {
	ContentID         domain.ContentID `json:"content_id"`
	DerivedTokenID    string           `json:"derived_token_id"`
	RegisteredTokenID *string          `json:"registered_token_id,omitempty"`
	HashKeyed         bool             `json:"hash_keyed"`
}

// TokenizationResponse represents the outcome of a tokenization request
type TokenizationResponse struct {
	ContentID      domain.ContentID         `json:"content_id"`
	State          domain.TokenizationState `json:"state"`
	TokenID        *string                  `json:"token_id,omitempty"`
	TxHash         string                   `json:"tx_hash,omitempty"`
	MetadataTxHash string                   `json:"metadata_tx_hash,omitempty"`
	Warnings       []string                 `json:"warnings,omitempty"`
}

// TokenizationFailure represents the persisted failure flag of a content item
type TokenizationFailure struct {
	Class    string    `json:"class"`
	Message  string    `json:"message"`
	FailedAt time.Time `json:"failed_at"`
}

// TokenizationStatusResponse represents the tokenization state of a content item
type TokenizationStatusResponse struct {
	ContentID     domain.ContentID         `json:"content_id"`
	State         domain.TokenizationState `json:"state"`
	TokenID       *string                  `json:"token_id,omitempty"`
	Creator       string                   `json:"creator,omitempty"`
	Supply        uint64                   `json:"supply,omitempty"`
	PricePerToken *string                  `json:"price_per_token,omitempty"`
	Thresholds    []Threshold              `json:"thresholds,omitempty"`
	TxHash        string                   `json:"tx_hash,omitempty"`
	UpdatedAt     *time.Time               `json:"updated_at,omitempty"`
	Failure       *TokenizationFailure     `json:"failure,omitempty"`
}

// PurchaseResponse represents the outcome of a purchase request
type PurchaseResponse struct {
	ContentID            domain.ContentID            `json:"content_id"`
	Wallet               string                      `json:"wallet"`
	State                purchase.State              `json:"state"`
	TokenID              *string                     `json:"token_id,omitempty"`
	TxHash               string                      `json:"tx_hash,omitempty"`
	Quantity             uint64                      `json:"quantity"`
	ReconciliationStatus domain.ReconciliationStatus `json:"reconciliation_status,omitempty"`
	Rights               []string                    `json:"rights"`
	Warning              string                      `json:"warning,omitempty"`
}

// PurchaseRecordResponse represents the ledger record of a wallet for a content item
type PurchaseRecordResponse struct {
	ContentID            domain.ContentID            `json:"content_id"`
	Wallet               string                      `json:"wallet"`
	Quantity             uint64                      `json:"quantity"`
	PricePerToken        *string                     `json:"price_per_token,omitempty"`
	PurchasedAt          time.Time                   `json:"purchased_at"`
	ReconciliationStatus domain.ReconciliationStatus `json:"reconciliation_status"`
	TxHash               string                      `json:"tx_hash,omitempty"`
}

// OwnershipResponse represents the ownership of a content item by a wallet
type OwnershipResponse struct {
	ContentID       domain.ContentID `json:"content_id"`
	Wallet          string           `json:"wallet"`
	Owned           bool             `json:"owned"`
	Quantity        uint64           `json:"quantity"`
	VerifiedOnChain bool             `json:"verified_on_chain"`
	LastCheckedAt   time.Time        `json:"last_checked_at"`
}

// RightsResponse represents the rights a wallet holds for a content item
type RightsResponse struct {
	Ownership  OwnershipResponse `json:"ownership"`
	Rights     []string          `json:"rights"`
	Thresholds []Threshold       `json:"thresholds"`
	Source     rights.Source     `json:"source"`
	TokenID    *string           `json:"token_id,omitempty"`
}

func bigString(v *big.Int) *string {
	if v == nil {
		return nil
	}
	s := v.String()
	return &s
}

// MapThresholds maps rights thresholds to their API form
func MapThresholds(thresholds []domain.RightsThreshold) []Threshold {
	out := make([]Threshold, 0, len(thresholds))
	for _, t := range thresholds {
		out = append(out, Threshold{Quantity: t.Quantity, Label: t.Label})
	}
	return out
}

// MapTokenizationResult maps a tokenization result to its API form
func MapTokenizationResult(contentID domain.ContentID, result tokenization.Result) *TokenizationResponse {
	return &TokenizationResponse{
		ContentID:      contentID,
		State:          result.State,
		TokenID:        bigString(result.TokenID),
		TxHash:         result.TxHash,
		MetadataTxHash: result.MetadataTxHash,
		Warnings:       result.Warnings,
	}
}

// MapTokenizationStatus maps a tokenization record and failure flag to their API form.
// A nil record is reported as not tokenized.
func MapTokenizationStatus(contentID domain.ContentID, record *domain.TokenizationRecord, failure *domain.TokenizationFailure) *TokenizationStatusResponse {
	resp := &TokenizationStatusResponse{
		ContentID: contentID,
		State:     domain.TokenizationStateNotTokenized,
	}

	if record != nil {
		updatedAt := record.UpdatedAt
		resp.State = record.State
		resp.TokenID = bigString(record.TokenID)
		resp.Creator = record.Creator
		resp.Supply = record.Supply
		resp.PricePerToken = bigString(record.PricePerToken)
		resp.Thresholds = MapThresholds(record.Thresholds)
		resp.TxHash = record.TxHash
		resp.UpdatedAt = &updatedAt
	}

	if failure != nil {
		resp.Failure = &TokenizationFailure{
			Class:    failure.Class,
			Message:  failure.Message,
			FailedAt: failure.FailedAt,
		}
	}

	return resp
}

// MapPurchaseResult maps a purchase result to its API form
func MapPurchaseResult(input purchase.Input, result purchase.Result) *PurchaseResponse {
	resp := &PurchaseResponse{
		ContentID: input.ContentID,
		Wallet:    domain.NormalizeAddress(input.Wallet),
		State:     result.State,
		TokenID:   bigString(result.TokenID),
		TxHash:    result.TxHash,
		Rights:    result.Rights,
		Warning:   result.Warning,
	}
	if resp.Rights == nil {
		resp.Rights = []string{}
	}
	if result.Record != nil {
		resp.Quantity = result.Record.Quantity
		resp.ReconciliationStatus = result.Record.ReconciliationStatus
	}
	return resp
}

// MapPurchaseRecord maps a ledger record to its API form
func MapPurchaseRecord(record *domain.PurchaseRecord) *PurchaseRecordResponse {
	return &PurchaseRecordResponse{
		ContentID:            record.ContentID,
		Wallet:               record.Wallet,
		Quantity:             record.Quantity,
		PricePerToken:        bigString(record.PricePerToken),
		PurchasedAt:          record.PurchasedAt,
		ReconciliationStatus: record.ReconciliationStatus,
		TxHash:               record.TxHash,
	}
}

// MapOwnership maps an ownership record to its API form
func MapOwnership(record domain.OwnershipRecord) OwnershipResponse {
	return OwnershipResponse{
		ContentID:       record.ContentID,
		Wallet:          record.Wallet,
		Owned:           record.Owned,
		Quantity:        record.Quantity,
		VerifiedOnChain: record.VerifiedOnChain,
		LastCheckedAt:   record.LastCheckedAt,
	}
}

// MapRights maps an ownership record and the thresholds in effect to the rights response
func MapRights(record domain.OwnershipRecord, resolution rights.Resolution) *RightsResponse {
	return &RightsResponse{
		Ownership:  MapOwnership(record),
		Rights:     resolution.Rights(record.Quantity),
		Thresholds: MapThresholds(resolution.Effective()),
		Source:     resolution.Source,
		TokenID:    bigString(resolution.TokenID),
	}
}

// TokenID formats a token id for API responses
func TokenID(v *big.Int) *string {
	return bigString(v)
}
