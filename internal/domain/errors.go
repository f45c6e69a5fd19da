package domain

import "errors"

var (
	// ErrWalletUnavailable is returned when no wallet/account is connected
	ErrWalletUnavailable = errors.New("wallet unavailable")

	// ErrWalletRejected is returned when the user rejects the signing request
	ErrWalletRejected = errors.New("wallet rejected request")

	// ErrInsufficientFunds is returned when the wallet cannot cover value plus gas
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrWrongNetwork is returned when the wallet is connected to a different chain
	ErrWrongNetwork = errors.New("wrong network")

	// ErrContractNotConfigured is returned when the registry contract address is missing
	ErrContractNotConfigured = errors.New("contract not configured")

	// ErrRegistryUnavailable is returned when a registry read fails
	ErrRegistryUnavailable = errors.New("registry unavailable")

	// ErrConfirmationTimeout is returned when a transaction is not confirmed in time
	ErrConfirmationTimeout = errors.New("confirmation timeout")

	// ErrVerificationFailed is returned when a confirmed transaction's effect is not visible on chain
	ErrVerificationFailed = errors.New("verification failed")

	// ErrPartialSuccessPaymentOnly is returned when payment was sent but the transfer could not be confirmed
	ErrPartialSuccessPaymentOnly = errors.New("payment sent but transfer not confirmed")

	// ErrInvalidParameters is returned when the input fails local validation
	ErrInvalidParameters = errors.New("invalid parameters")

	// ErrTokenNotFound is returned when a content item has no registered token
	ErrTokenNotFound = errors.New("token not found")

	// ErrContentNotFound is returned when the catalog has no such content item
	ErrContentNotFound = errors.New("content not found")

	// ErrAlreadyTokenized is returned when tokenizing verified content without force
	ErrAlreadyTokenized = errors.New("content already tokenized")
)

// classes is ordered so that the most specific class wins when an error wraps several
var classes = []struct {
	err   error
	class string
}{
	{ErrPartialSuccessPaymentOnly, "partial_success_payment_only"},
	{ErrInvalidParameters, "invalid_parameters"},
	{ErrWalletRejected, "wallet_rejected"},
	{ErrInsufficientFunds, "insufficient_funds"},
	{ErrWrongNetwork, "wrong_network"},
	{ErrContractNotConfigured, "contract_not_configured"},
	{ErrWalletUnavailable, "wallet_unavailable"},
	{ErrConfirmationTimeout, "confirmation_timeout"},
	{ErrVerificationFailed, "verification_failed"},
	{ErrRegistryUnavailable, "registry_unavailable"},
	{ErrTokenNotFound, "token_not_found"},
	{ErrContentNotFound, "content_not_found"},
	{ErrAlreadyTokenized, "already_tokenized"},
}

// ErrorClass returns a stable identifier for the error's class in the taxonomy
func ErrorClass(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range classes {
		if errors.Is(err, c.err) {
			return c.class
		}
	}
	return "unknown"
}
