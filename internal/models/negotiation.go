package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// NegotiationEvent is one entry in a contract's negotiation ledger.
// Trader ids stay integers and timestamps stay ISO-8601 strings across
// the encode/decode round trip. Duplicate events per trader are allowed;
// the ledger keeps insertion order.
type NegotiationEvent struct {
	TraderID  uint              `json:"trader_id"`
	Type      NegotiationType   `json:"type"`
	Status    NegotiationStatus `json:"status"`
	Timestamp string            `json:"timestamp"`
}

// NegotiationList is the ledger stored inline on the contract row as a
// JSON text blob. The column is schemaless, so decoding is lenient:
// NULL, empty or malformed blobs scan to an empty ledger instead of
// failing the contract read path.
type NegotiationList []NegotiationEvent

func (n NegotiationList) Value() (driver.Value, error) {
	if n == nil {
		return "[]", nil
	}
	b, err := json.Marshal(n)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (n *NegotiationList) Scan(value interface{}) error {
	*n = NegotiationList{}
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("type assertion to []byte failed")
	}

	if len(bytes) == 0 {
		return nil
	}

	var events []NegotiationEvent
	if err := json.Unmarshal(bytes, &events); err != nil {
		// Corrupt or legacy-shaped blobs degrade to "no history".
		return nil
	}
	*n = events
	return nil
}
