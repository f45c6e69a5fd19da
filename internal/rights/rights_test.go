package rights_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/feral-file/ff-rights-ledger/internal/domain"
	"github.com/feral-file/ff-rights-ledger/internal/rights"
)

var filmThresholds = []domain.RightsThreshold{
	{Quantity: 100, Label: "Commercial Distribution"},
	{Quantity: 1, Label: "Personal Viewing"},
	{Quantity: 10, Label: "Public Screening"},
}

func TestRightsFor(t *testing.T) {
	tests := []struct {
		name       string
		owned      uint64
		thresholds []domain.RightsThreshold
		expected   []string
	}{
		{
			name:       "default tier with one token",
			owned:      1,
			thresholds: nil,
			expected:   []string{"Personal Viewing"},
		},
		{
			name:       "default tier with nothing owned",
			owned:      0,
			thresholds: []domain.RightsThreshold{},
			expected:   []string{},
		},
		{
			name:       "nothing owned",
			owned:      0,
			thresholds: filmThresholds,
			expected:   []string{},
		},
		{
			name:       "between tiers",
			owned:      12,
			thresholds: filmThresholds,
			expected:   []string{"Personal Viewing", "Public Screening"},
		},
		{
			name:       "exact threshold",
			owned:      100,
			thresholds: filmThresholds,
			expected:   []string{"Personal Viewing", "Public Screening", "Commercial Distribution"},
		},
		{
			name:       "first tier above one",
			owned:      4,
			thresholds: []domain.RightsThreshold{{Quantity: 5, Label: "Festival"}},
			expected:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, rights.RightsFor(tt.owned, tt.thresholds))
		})
	}
}

func TestRightsFor_Monotonic(t *testing.T) {
	var previous []string
	for owned := uint64(0); owned <= 150; owned++ {
		current := rights.RightsFor(owned, filmThresholds)
		assert.GreaterOrEqual(t, len(current), len(previous))
		assert.Subset(t, current, previous)
		previous = current
	}
}

func TestRightsFor_DoesNotReorderInput(t *testing.T) {
	input := []domain.RightsThreshold{
		{Quantity: 10, Label: "b"},
		{Quantity: 1, Label: "a"},
	}

	rights.RightsFor(10, input)

	assert.Equal(t, "b", input[0].Label)
}

func TestNormalize(t *testing.T) {
	normalized := rights.Normalize(filmThresholds)

	assert.Equal(t, []domain.RightsThreshold{
		{Quantity: 1, Label: "Personal Viewing"},
		{Quantity: 10, Label: "Public Screening"},
		{Quantity: 100, Label: "Commercial Distribution"},
	}, normalized)
	assert.Equal(t, uint64(100), filmThresholds[0].Quantity)

	assert.NotNil(t, rights.Normalize(nil))
	assert.Empty(t, rights.Normalize(nil))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		thresholds []domain.RightsThreshold
		supply     uint64
		wantErr    bool
	}{
		{name: "valid", thresholds: filmThresholds, supply: 100},
		{name: "empty", thresholds: nil, supply: 1},
		{name: "zero quantity", thresholds: []domain.RightsThreshold{{Quantity: 0, Label: "x"}}, supply: 10, wantErr: true},
		{name: "blank label", thresholds: []domain.RightsThreshold{{Quantity: 1, Label: " "}}, supply: 10, wantErr: true},
		{name: "exceeds supply", thresholds: filmThresholds, supply: 99, wantErr: true},
		{
			name:       "duplicate quantity",
			thresholds: []domain.RightsThreshold{{Quantity: 2, Label: "a"}, {Quantity: 2, Label: "b"}},
			supply:     10,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rights.Validate(tt.thresholds, tt.supply)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidParameters)
				return
			}
			assert.NoError(t, err)
		})
	}
}
