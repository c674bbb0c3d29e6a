package amqp

import (
	"encoding/json"
	"time"
)

// Event actions. "cleared" means every row owned by the customer was
// removed, so TxID is empty for it.
const (
	ActionCreated = "created"
	ActionDeleted = "deleted"
	ActionCleared = "cleared"
)

// TransactionEvent notifies the mirror worker that the ledger changed.
// It carries only identifiers; the worker re-reads the table itself.
type TransactionEvent struct {
	Action    string    `json:"action"`
	TxID      string    `json:"tx_id,omitempty"`
	Customer  string    `json:"customer"`
	Timestamp time.Time `json:"timestamp"`
}

func NewTransactionEvent(action, txID, customer string) *TransactionEvent {
	return &TransactionEvent{
		Action:    action,
		TxID:      txID,
		Customer:  customer,
		Timestamp: time.Now(),
	}
}

func (e *TransactionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func TransactionEventFromJSON(data []byte) (*TransactionEvent, error) {
	var ev TransactionEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
