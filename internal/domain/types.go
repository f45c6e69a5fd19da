package domain

import (
	"fmt"
	"math"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Chain represents the blockchain network identifier using CAIP-2 format
type Chain string

const (
	ChainEthereumMainnet Chain = "eip155:1"
	ChainEthereumSepolia Chain = "eip155:11155111"
	ChainPolygonMainnet  Chain = "eip155:137"
	ChainPolygonAmoy     Chain = "eip155:80002"
)

// IsValidChain checks if a chain is an EIP-155 chain with a numeric reference
func IsValidChain(chain Chain) bool {
	_, err := chain.ChainID()
	return err == nil
}

// ChainID returns the numeric EIP-155 chain id of the chain
func (c Chain) ChainID() (*big.Int, error) {
	namespace, reference, ok := strings.Cut(string(c), ":")
	if !ok || namespace != "eip155" {
		return nil, fmt.Errorf("unsupported chain: %s", c)
	}

	id, ok := new(big.Int).SetString(reference, 10)
	if !ok || id.Sign() <= 0 {
		return nil, fmt.Errorf("invalid chain reference: %s", c)
	}

	return id, nil
}

// ChainFromID builds the CAIP-2 identifier for an EIP-155 chain id
func ChainFromID(id *big.Int) Chain {
	return Chain(fmt.Sprintf("eip155:%s", id.String()))
}

// ContentID is the externally assigned identifier of a content item
type ContentID string

// String returns the string representation of the ContentID
func (c ContentID) String() string {
	return string(c)
}

// Valid checks if the content id is usable as a token identity source
func (c ContentID) Valid() bool {
	return strings.TrimSpace(string(c)) != ""
}

// RightsThreshold is a quantity-gated license tier
type RightsThreshold struct {
	Quantity uint64 `json:"quantity"`
	Label    string `json:"label"`
}

// RoyaltySplit assigns a share of secondary royalties to a recipient
type RoyaltySplit struct {
	Recipient   string `json:"recipient"`
	BasisPoints uint16 `json:"basis_points"`
}

// TokenizationState is the lifecycle state of a content item's tokenization
type TokenizationState string

const (
	TokenizationStateNotTokenized     TokenizationState = "not_tokenized"
	TokenizationStatePending          TokenizationState = "pending"
	TokenizationStateVerified         TokenizationState = "verified"
	TokenizationStateFailedUnverified TokenizationState = "failed_unverified"
)

// ReconciliationStatus describes how far a purchase record agrees with the chain
type ReconciliationStatus string

const (
	ReconciliationStatusConfirmed         ReconciliationStatus = "confirmed"
	ReconciliationStatusPaidButUnverified ReconciliationStatus = "paid_but_unverified"
)

// Merge returns the status of a record after merging in another purchase.
// An unverified portion keeps the whole record unverified until re-verification.
func (s ReconciliationStatus) Merge(other ReconciliationStatus) ReconciliationStatus {
	if s == ReconciliationStatusPaidButUnverified || other == ReconciliationStatusPaidButUnverified {
		return ReconciliationStatusPaidButUnverified
	}
	return ReconciliationStatusConfirmed
}

// PurchaseRecord is the local ledger entry for a wallet's purchases of a content item
type PurchaseRecord struct {
	ID                   string               `json:"id"`
	ContentID            ContentID            `json:"content_id"`
	Wallet               string               `json:"wallet"`
	Quantity             uint64               `json:"quantity"`
	PricePerToken        *big.Int             `json:"price_per_token"`
	PurchasedAt          time.Time            `json:"purchased_at"`
	ReconciliationStatus ReconciliationStatus `json:"reconciliation_status"`
	TxHash               string               `json:"tx_hash,omitempty"`
}

// OwnershipRecord is the last known ownership of a content item by a wallet
type OwnershipRecord struct {
	Wallet          string    `json:"wallet"`
	ContentID       ContentID `json:"content_id"`
	Owned           bool      `json:"owned"`
	Quantity        uint64    `json:"quantity"`
	VerifiedOnChain bool      `json:"verified_on_chain"`
	LastCheckedAt   time.Time `json:"last_checked_at"`
}

// TokenizationRecord is the local state of a content item's tokenization
type TokenizationRecord struct {
	ContentID     ContentID         `json:"content_id"`
	State         TokenizationState `json:"state"`
	TokenID       *big.Int          `json:"token_id,omitempty"`
	Creator       string            `json:"creator"`
	Supply        uint64            `json:"supply"`
	PricePerToken *big.Int          `json:"price_per_token,omitempty"`
	Thresholds    []RightsThreshold `json:"thresholds"`
	TxHash        string            `json:"tx_hash,omitempty"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// TokenizationFailure is the persisted failure flag for a content item
type TokenizationFailure struct {
	ContentID ContentID `json:"content_id"`
	Class     string    `json:"class"`
	Message   string    `json:"message"`
	FailedAt  time.Time `json:"failed_at"`
}

// Content is the subset of a catalog item the core reads
type Content struct {
	ID            ContentID         `json:"id"`
	Title         string            `json:"title"`
	Creator       string            `json:"creator"`
	PricePerToken *big.Int          `json:"price_per_token,omitempty"`
	Tokenized     bool              `json:"tokenized"`
	TokenID       *big.Int          `json:"token_id,omitempty"`
	Thresholds    []RightsThreshold `json:"thresholds,omitempty"`
}

// Film is the registry contract's record of a tokenized content item
type Film struct {
	TokenID       *big.Int
	FilmID        string
	Title         string
	Supply        *big.Int
	PricePerToken *big.Int
	Creator       common.Address
}

// IsZeroAddress checks if an address is empty or the zero address
func IsZeroAddress(address string) bool {
	return address == "" || common.HexToAddress(address) == (common.Address{})
}

// ValidAddress checks if the string is a non-zero hex address
func ValidAddress(address string) bool {
	return common.IsHexAddress(address) && !IsZeroAddress(address)
}

// NormalizeAddress normalizes a hex address, with or without the 0x prefix, to its
// checksummed form. Anything else is returned unchanged.
func NormalizeAddress(address string) string {
	if common.IsHexAddress(address) {
		return common.HexToAddress(address).Hex()
	}
	return address
}

// SortThresholds sorts thresholds by quantity ascending in place
func SortThresholds(thresholds []RightsThreshold) {
	sort.SliceStable(thresholds, func(i, j int) bool {
		return thresholds[i].Quantity < thresholds[j].Quantity
	})
}

// QuantityFromBig converts an on-chain balance to a quantity, saturating at MaxUint64.
// nil and negative values are zero.
func QuantityFromBig(v *big.Int) uint64 {
	if v == nil || v.Sign() <= 0 {
		return 0
	}
	if !v.IsUint64() {
		return math.MaxUint64
	}
	return v.Uint64()
}
