package events

import (
	"context"
	"encoding/json"
	"testing"
)

func TestNopPublisher(t *testing.T) {
	var p Publisher = Nop{}
	if err := p.Publish(context.Background(), TypeInvoiceCreated, map[string]int{"id": 1}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestMarshalEnvelope(t *testing.T) {
	data, err := marshal(TypePaymentRecorded, map[string]string{"number": "REC-00001"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if env.Type != TypePaymentRecorded {
		t.Errorf("type = %s", env.Type)
	}
	if env.OccurredAt.IsZero() {
		t.Error("occurred_at not set")
	}
}
