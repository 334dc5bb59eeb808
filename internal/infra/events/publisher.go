// Package events publishes billing events to a message broker so other
// systems (mailers, accounting sync) can react to document lifecycle
// changes without being called inline.
package events

import (
	"context"
	"encoding/json"
	"time"
)

const (
	TypeInvoiceCreated    = "invoice.created"
	TypeQuotationAccepted = "quotation.accepted"
	TypePaymentRecorded   = "payment.recorded"
)

type Envelope struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
	Close() error
}

// Nop is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }
func (Nop) Close() error                               { return nil }

func marshal(eventType string, payload any) ([]byte, error) {
	return json.Marshal(Envelope{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	})
}
