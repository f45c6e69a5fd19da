package chain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/feral-file/ff-rights-ledger/internal/domain"
)

var errorPatterns = []struct {
	patterns []string
	err      error
}{
	{
		patterns: []string{"user rejected", "user denied", "rejected by user", "action_rejected", "request rejected"},
		err:      domain.ErrWalletRejected,
	},
	{
		patterns: []string{"insufficient funds", "insufficient balance for transfer"},
		err:      domain.ErrInsufficientFunds,
	},
	{
		patterns: []string{"invalid chain id", "chain id mismatch", "wrong network", "unsupported chain"},
		err:      domain.ErrWrongNetwork,
	},
	{
		patterns: []string{"no accounts", "wallet locked", "unknown account", "not connected"},
		err:      domain.ErrWalletUnavailable,
	},
}

// ClassifyError maps a raw RPC or wallet error into the domain taxonomy.
// Errors that already carry a domain class are returned unchanged, unknown errors
// are returned as they are.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}
	if domain.ErrorClass(err) != "unknown" {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	msg := strings.ToLower(err.Error())
	for _, p := range errorPatterns {
		for _, pattern := range p.patterns {
			if strings.Contains(msg, pattern) {
				return fmt.Errorf("%w: %v", p.err, err)
			}
		}
	}

	return err
}

var ambiguousBroadcastPatterns = []string{"already known", "known transaction", "eof", "connection reset", "broken pipe", "i/o timeout"}

// IsBroadcastAmbiguous reports whether a send error leaves it unknown if the
// transaction reached the network, e.g. a timeout after the request was written
func IsBroadcastAmbiguous(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range ambiguousBroadcastPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}

	return false
}
