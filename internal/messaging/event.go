package messaging

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/feral-file/ff-rights-ledger/internal/domain"
)

// EventType is the kind of ledger event
type EventType string

const (
	EventTypePurchaseConfirmed       EventType = "purchase.confirmed"
	EventTypePurchasePaidUnverified  EventType = "purchase.paid_but_unverified"
	EventTypePurchaseReconciled      EventType = "purchase.reconciled"
	EventTypeTokenizationVerified    EventType = "tokenization.verified"
	EventTypeTokenizationFailed      EventType = "tokenization.failed"
	EventTypeTokenizationMetadataSet EventType = "tokenization.metadata_set"
)

// Event is a ledger state change published to downstream consumers
type Event struct {
	ID         string           `json:"id"`
	Type       EventType        `json:"type"`
	Chain      domain.Chain     `json:"chain"`
	ContentID  domain.ContentID `json:"content_id"`
	TokenID    string           `json:"token_id,omitempty"`
	Wallet     string           `json:"wallet,omitempty"`
	Quantity   uint64           `json:"quantity,omitempty"`
	TxHash     string           `json:"tx_hash,omitempty"`
	ErrorClass string           `json:"error_class,omitempty"`
	Message    string           `json:"message,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// NewEvent creates an event with a fresh ULID id
func NewEvent(eventType EventType, chain domain.Chain, contentID domain.ContentID, tokenID *big.Int, occurredAt time.Time) Event {
	event := Event{
		ID:         ulid.MustNew(ulid.Timestamp(occurredAt), rand.Reader).String(),
		Type:       eventType,
		Chain:      chain,
		ContentID:  contentID,
		OccurredAt: occurredAt.UTC(),
	}
	if tokenID != nil {
		event.TokenID = tokenID.String()
	}
	return event
}
