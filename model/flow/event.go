package flow

import (
	"fmt"
	"time"

	"github.com/onflow/cadence"
	jsoncdc "github.com/onflow/cadence/encoding/json"
)

// List of built-in event types.
const (
	EventAccountCreated       EventType = "flow.AccountCreated"
	EventAccountKeyAdded      EventType = "flow.AccountKeyAdded"
	EventAccountContractAdded EventType = "flow.AccountContractAdded"
)

type EventType string

// Event is an event emitted by a transaction. The payload is always held in
// its JSON-Cadence encoding; CCF payloads are converted when read from the
// access API.
type Event struct {
	// Type is the qualified event type.
	Type EventType
	// TransactionID is the ID of the transaction this event was emitted from.
	TransactionID Identifier
	// TransactionIndex defines the index of the transaction this event was emitted from within the block.
	// The first transaction has index 0, the second has index 1, and so on.
	TransactionIndex uint32
	// EventIndex defines the ordering of events in a transaction.
	// The first event emitted has index 0, the second has index 1, and so on.
	EventIndex uint32
	// Payload contains the JSON-Cadence encoded event data.
	Payload []byte
}

// String returns the string representation of this event.
func (e Event) String() string {
	return fmt.Sprintf("%s: %s/%d", e.Type, e.TransactionID, e.EventIndex)
}

// Value parses the payload into a cadence value tree.
func (e Event) Value() (cadence.Value, error) {
	value, err := jsoncdc.Decode(nil, e.Payload)
	if err != nil {
		return nil, fmt.Errorf("could not decode payload of event %s: %w", e.Type, err)
	}
	return value, nil
}

// BlockEvents contains events emitted in a single block.
type BlockEvents struct {
	BlockID        Identifier
	BlockHeight    uint64
	BlockTimestamp time.Time
	Events         []Event
}

type EventsList []Event

// ByteSize returns an approximate number of bytes needed to store the events.
func (el EventsList) ByteSize() int {
	size := 0
	for _, event := range el {
		size += IdentifierLen + // txID
			4 + // EventIndex
			len(event.Type) +
			4 + // TransactionIndex
			len(event.Payload)
	}
	return size
}
