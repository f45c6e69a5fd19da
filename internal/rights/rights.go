package rights

import (
	"fmt"
	"slices"
	"strings"

	"github.com/feral-file/ff-rights-ledger/internal/domain"
)

// RightsFor returns the labels of every tier unlocked by owning the given quantity,
// ascending by threshold quantity. Tiers are cumulative.
func RightsFor(owned uint64, thresholds []domain.RightsThreshold) []string {
	labels := make([]string, 0, len(thresholds))

	if len(thresholds) == 0 {
		if owned >= domain.DefaultThreshold.Quantity {
			labels = append(labels, domain.DefaultThreshold.Label)
		}
		return labels
	}

	for _, t := range Normalize(thresholds) {
		if t.Quantity <= owned {
			labels = append(labels, t.Label)
		}
	}

	return labels
}

// Normalize returns a copy of thresholds sorted by quantity ascending
func Normalize(thresholds []domain.RightsThreshold) []domain.RightsThreshold {
	normalized := slices.Clone(thresholds)
	if normalized == nil {
		normalized = []domain.RightsThreshold{}
	}
	domain.SortThresholds(normalized)
	return normalized
}

// Validate checks that every threshold has a positive quantity within supply and a label,
// and that no two thresholds share a quantity
func Validate(thresholds []domain.RightsThreshold, supply uint64) error {
	seen := make(map[uint64]struct{}, len(thresholds))
	for _, t := range thresholds {
		if t.Quantity == 0 {
			return fmt.Errorf("%w: threshold %q has zero quantity", domain.ErrInvalidParameters, t.Label)
		}
		if strings.TrimSpace(t.Label) == "" {
			return fmt.Errorf("%w: threshold at quantity %d has no label", domain.ErrInvalidParameters, t.Quantity)
		}
		if supply > 0 && t.Quantity > supply {
			return fmt.Errorf("%w: threshold %q quantity %d exceeds supply %d", domain.ErrInvalidParameters, t.Label, t.Quantity, supply)
		}
		if _, ok := seen[t.Quantity]; ok {
			return fmt.Errorf("%w: duplicate threshold quantity %d", domain.ErrInvalidParameters, t.Quantity)
		}
		seen[t.Quantity] = struct{}{}
	}

	return nil
}
