package store

import (
	"fmt"
	"math"
	"math/big"

	"github.com/feral-file/ff-rights-ledger/internal/domain"
)

// maxQuantity is the largest quantity a bigint column holds
const maxQuantity = uint64(math.MaxInt64)

func bigToString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

func stringToBig(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid integer: %q", s)
	}
	return v, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func thresholdsOrEmpty(thresholds []domain.RightsThreshold) []domain.RightsThreshold {
	if thresholds == nil {
		return []domain.RightsThreshold{}
	}
	return thresholds
}

func registeredTokenKey(contentID domain.ContentID) string {
	return fmt.Sprintf("registered_token_id:%s", contentID)
}

// limitOrAll maps a non-positive limit to gorm's "no limit"
func limitOrAll(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}
