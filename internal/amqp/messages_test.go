package amqp

import (
	"strings"
	"testing"
	"time"
)

func TestTransactionEventRoundTrip(t *testing.T) {
	ev := NewTransactionEvent(ActionCreated, "tx-1", "alice")

	data, err := ev.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	got, err := TransactionEventFromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if got.Action != ActionCreated || got.TxID != "tx-1" || got.Customer != "alice" {
		t.Errorf("round-trip changed fields: %+v", got)
	}
	if got.Timestamp.IsZero() || time.Since(got.Timestamp) > time.Minute {
		t.Errorf("timestamp not carried: %v", got.Timestamp)
	}
}

func TestClearedEventOmitsTxID(t *testing.T) {
	ev := NewTransactionEvent(ActionCleared, "", "alice")
	data, err := ev.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	if strings.Contains(string(data), `"tx_id"`) {
		t.Errorf("cleared event should omit tx_id: %s", data)
	}
}

func TestTransactionEventFromJSONRejectsGarbage(t *testing.T) {
	if _, err := TransactionEventFromJSON([]byte("not json")); err == nil {
		t.Error("expected error for malformed payload")
	}
}
