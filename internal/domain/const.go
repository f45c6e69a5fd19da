package domain

import "time"

const (
	// DEFAULT_RIGHTS_LABEL is the implied tier of content with no configured thresholds
	DEFAULT_RIGHTS_LABEL = "Personal Viewing"

	// MAX_BASIS_POINTS is the total of all royalty shares
	MAX_BASIS_POINTS = 10000

	// DEFAULT_OWNERSHIP_TTL is how long a verified ownership check is served from cache
	DEFAULT_OWNERSHIP_TTL = 60 * time.Second

	// DEFAULT_CONFIRMATION_TIMEOUT bounds a single wait for a transaction receipt
	DEFAULT_CONFIRMATION_TIMEOUT = 45 * time.Second

	// DEFAULT_VERIFICATION_RETRY_DELAY is the settle time before re-verifying after a timeout
	DEFAULT_VERIFICATION_RETRY_DELAY = 5 * time.Second

	// ETHEREUM_ZERO_ADDRESS is the zero address
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"
)

// DefaultThreshold is the implied single tier for content without thresholds
var DefaultThreshold = RightsThreshold{Quantity: 1, Label: DEFAULT_RIGHTS_LABEL}
