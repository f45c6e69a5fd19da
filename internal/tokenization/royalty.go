package tokenization

import (
	"fmt"

	"github.com/feral-file/ff-rights-ledger/internal/domain"
)

// RoyaltyPolicy is the platform fee appended to every royalty split
type RoyaltyPolicy struct {
	PlatformRecipient   string
	PlatformBasisPoints uint16
}

// Validate checks that the platform share can be appended to a split
func (p RoyaltyPolicy) Validate() error {
	if !domain.ValidAddress(p.PlatformRecipient) {
		return fmt.Errorf("platform royalty recipient is not configured: %q", p.PlatformRecipient)
	}
	if p.PlatformBasisPoints == 0 || p.PlatformBasisPoints >= domain.MAX_BASIS_POINTS {
		return fmt.Errorf("platform royalty share out of range: %d bps", p.PlatformBasisPoints)
	}
	return nil
}

// Augment returns the royalty splits sent to the registry: the creator first with the
// remainder of the shares, then the other recipients in input order, then the platform.
// A creator entry in splits is folded into the remainder. Splits naming the platform
// recipient are rejected.
func (p RoyaltyPolicy) Augment(creator string, splits []domain.RoyaltySplit) ([]domain.RoyaltySplit, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if !domain.ValidAddress(creator) {
		return nil, fmt.Errorf("%w: invalid creator address %q", domain.ErrInvalidParameters, creator)
	}
	creator = domain.NormalizeAddress(creator)
	platform := domain.NormalizeAddress(p.PlatformRecipient)
	if platform == creator {
		return nil, fmt.Errorf("%w: the creator cannot be the platform royalty recipient", domain.ErrInvalidParameters)
	}

	assigned := uint32(p.PlatformBasisPoints)

	seen := make(map[string]struct{}, len(splits))
	others := make([]domain.RoyaltySplit, 0, len(splits))
	for _, split := range splits {
		if !domain.ValidAddress(split.Recipient) {
			return nil, fmt.Errorf("%w: invalid royalty recipient %q", domain.ErrInvalidParameters, split.Recipient)
		}
		recipient := domain.NormalizeAddress(split.Recipient)

		if recipient == platform {
			return nil, fmt.Errorf("%w: the platform royalty recipient cannot be set", domain.ErrInvalidParameters)
		}
		if recipient == creator {
			continue
		}
		if split.BasisPoints == 0 {
			return nil, fmt.Errorf("%w: royalty share of %s is zero", domain.ErrInvalidParameters, recipient)
		}
		if _, ok := seen[recipient]; ok {
			return nil, fmt.Errorf("%w: duplicate royalty recipient %s", domain.ErrInvalidParameters, recipient)
		}
		seen[recipient] = struct{}{}

		assigned += uint32(split.BasisPoints)
		others = append(others, domain.RoyaltySplit{Recipient: recipient, BasisPoints: split.BasisPoints})
	}

	if assigned >= domain.MAX_BASIS_POINTS {
		return nil, fmt.Errorf("%w: royalty shares leave nothing for the creator (%d bps assigned)",
			domain.ErrInvalidParameters, assigned)
	}

	result := make([]domain.RoyaltySplit, 0, len(others)+2)
	result = append(result, domain.RoyaltySplit{
		Recipient:   creator,
		BasisPoints: uint16(domain.MAX_BASIS_POINTS - assigned),
	})
	result = append(result, others...)
	result = append(result, domain.RoyaltySplit{Recipient: platform, BasisPoints: p.PlatformBasisPoints})

	return result, nil
}
