package dto

import (
	"fmt"
	"math/big"
	"strings"

	apierrors "github.com/feral-file/ff-rights-ledger/internal/api/shared/errors"
	"github.com/feral-file/ff-rights-ledger/internal/domain"
	"github.com/feral-file/ff-rights-ledger/internal/purchase"
	"github.com/feral-file/ff-rights-ledger/internal/tokenization"
)

const (
	MAX_THRESHOLDS_PER_REQUEST     = 32
	MAX_ROYALTY_SPLITS_PER_REQUEST = 16
)

// Threshold is a rights tier in API requests and responses
type Threshold struct {
	Quantity uint64 `json:"quantity"`
	Label    string `json:"label"`
}

// RoyaltySplit is a royalty recipient in API requests
type RoyaltySplit struct {
	Recipient   string `json:"recipient"`
	BasisPoints uint16 `json:"basis_points"`
}

// TokenizeRequest represents the request body for tokenizing a content item
type TokenizeRequest struct {
	Creator       string         `json:"creator"`
	Supply        uint64         `json:"supply"`
	PricePerToken string         `json:"price_per_token"` // in wei, decimal
	Thresholds    []Threshold    `json:"thresholds"`
	RoyaltySplits []RoyaltySplit `json:"royalty_splits"`
	MetadataURI   string         `json:"metadata_uri,omitempty"`
	Force         bool           `json:"force,omitempty"`
}

// Validate validates the request body
func (r *TokenizeRequest) Validate() error {
	if !domain.ValidAddress(r.Creator) {
		return apierrors.NewValidationError(fmt.Sprintf("invalid creator address: %s", r.Creator))
	}
	if r.Supply == 0 {
		return apierrors.NewValidationError("supply must be positive")
	}
	if _, err := parseWei(r.PricePerToken); err != nil {
		return err
	}
	if len(r.Thresholds) > MAX_THRESHOLDS_PER_REQUEST {
		return apierrors.NewValidationError(fmt.Sprintf("maximum %d thresholds allowed", MAX_THRESHOLDS_PER_REQUEST))
	}
	if len(r.RoyaltySplits) > MAX_ROYALTY_SPLITS_PER_REQUEST {
		return apierrors.NewValidationError(fmt.Sprintf("maximum %d royalty splits allowed", MAX_ROYALTY_SPLITS_PER_REQUEST))
	}
	return nil
}

// ToInput converts the request to a tokenization input
func (r *TokenizeRequest) ToInput(contentID domain.ContentID) (tokenization.Input, error) {
	price, err := parseWei(r.PricePerToken)
	if err != nil {
		return tokenization.Input{}, err
	}

	thresholds := make([]domain.RightsThreshold, 0, len(r.Thresholds))
	for _, t := range r.Thresholds {
		thresholds = append(thresholds, domain.RightsThreshold{Quantity: t.Quantity, Label: t.Label})
	}
	splits := make([]domain.RoyaltySplit, 0, len(r.RoyaltySplits))
	for _, s := range r.RoyaltySplits {
		splits = append(splits, domain.RoyaltySplit{Recipient: s.Recipient, BasisPoints: s.BasisPoints})
	}

	return tokenization.Input{
		ContentID:     contentID,
		Creator:       r.Creator,
		Supply:        r.Supply,
		PricePerToken: price,
		Thresholds:    thresholds,
		RoyaltySplits: splits,
		MetadataURI:   strings.TrimSpace(r.MetadataURI),
		Force:         r.Force,
	}, nil
}

// PurchaseRequest represents the request body for purchasing tokens of a content item
type PurchaseRequest struct {
	Wallet        string `json:"wallet"`
	Quantity      uint64 `json:"quantity"`
	PricePerToken string `json:"price_per_token"` // in wei, decimal
}

// Validate validates the request body
func (r *PurchaseRequest) Validate() error {
	if !domain.ValidAddress(r.Wallet) {
		return apierrors.NewValidationError(fmt.Sprintf("invalid wallet address: %s", r.Wallet))
	}
	if r.Quantity == 0 {
		return apierrors.NewValidationError("quantity must be at least 1")
	}
	_, err := parseWei(r.PricePerToken)
	return err
}

// ToInput converts the request to a purchase input
func (r *PurchaseRequest) ToInput(contentID domain.ContentID) (purchase.Input, error) {
	price, err := parseWei(r.PricePerToken)
	if err != nil {
		return purchase.Input{}, err
	}

	return purchase.Input{
		ContentID:     contentID,
		Wallet:        r.Wallet,
		Quantity:      r.Quantity,
		PricePerToken: price,
	}, nil
}

func parseWei(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok || v.Sign() <= 0 {
		return nil, apierrors.NewValidationError(fmt.Sprintf("invalid price_per_token: %q must be a positive integer amount of wei", s))
	}
	return v, nil
}
