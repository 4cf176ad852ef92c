package convert

import (
	"fmt"

	"github.com/onflow/flow/protobuf/go/flow/access"
	"github.com/onflow/flow/protobuf/go/flow/entities"

	"github.com/onflow/flow-client-go/model/flow"
	"github.com/onflow/flow-client-go/model/values"
)

// EventToMessage converts a flow.Event to a protobuf message. The payload is
// kept in its JSON-Cadence encoding.
func EventToMessage(e flow.Event) *entities.Event {
	return &entities.Event{
		Type:             string(e.Type),
		TransactionId:    e.TransactionID[:],
		TransactionIndex: e.TransactionIndex,
		EventIndex:       e.EventIndex,
		Payload:          e.Payload,
	}
}

// MessageToEvent converts a protobuf message carrying a JSON-Cadence payload
// to a flow.Event.
func MessageToEvent(m *entities.Event) (flow.Event, error) {
	return MessageToEventFromVersion(m, entities.EventEncodingVersion_JSON_CDC_V0)
}

// MessageToEventFromVersion converts a protobuf message to a flow.Event. CCF
// payloads are converted to JSON-Cadence.
func MessageToEventFromVersion(m *entities.Event, version entities.EventEncodingVersion) (flow.Event, error) {
	if m == nil {
		return flow.Event{}, ErrEmptyMessage
	}

	txID, err := optionalIdentifier("transaction id", m.GetTransactionId())
	if err != nil {
		return flow.Event{}, err
	}

	encoding, err := eventEncoding(version)
	if err != nil {
		return flow.Event{}, err
	}

	payload, err := values.ConvertPayload(m.GetPayload(), encoding)
	if err != nil {
		return flow.Event{}, fmt.Errorf("could not convert payload of event %s: %w", m.GetType(), err)
	}

	return flow.Event{
		Type:             flow.EventType(m.GetType()),
		TransactionID:    txID,
		TransactionIndex: m.GetTransactionIndex(),
		EventIndex:       m.GetEventIndex(),
		Payload:          payload,
	}, nil
}

// MessagesToEventsFromVersion converts a slice of protobuf messages to a
// slice of flow.Events.
func MessagesToEventsFromVersion(l []*entities.Event, version entities.EventEncodingVersion) ([]flow.Event, error) {
	events := make([]flow.Event, len(l))
	for i, m := range l {
		event, err := MessageToEventFromVersion(m, version)
		if err != nil {
			return nil, fmt.Errorf("could not convert event %d: %w", i, err)
		}
		events[i] = event
	}
	return events, nil
}

// EventsToMessages converts a slice of flow.Events to a slice of protobuf
// messages.
func EventsToMessages(flowEvents []flow.Event) []*entities.Event {
	events := make([]*entities.Event, len(flowEvents))
	for i, e := range flowEvents {
		events[i] = EventToMessage(e)
	}
	return events
}

// MessagesToBlockEvents converts the results of an events request to a slice
// of flow.BlockEvents.
func MessagesToBlockEvents(results []*access.EventsResponse_Result, version entities.EventEncodingVersion) ([]flow.BlockEvents, error) {
	blockEvents := make([]flow.BlockEvents, len(results))
	for i, result := range results {
		if result == nil {
			return nil, ErrEmptyMessage
		}

		blockID, err := optionalIdentifier("block id", result.GetBlockId())
		if err != nil {
			return nil, err
		}

		events, err := MessagesToEventsFromVersion(result.GetEvents(), version)
		if err != nil {
			return nil, fmt.Errorf("could not convert events of block %s: %w", blockID, err)
		}

		blockEvents[i] = flow.BlockEvents{
			BlockID:        blockID,
			BlockHeight:    result.GetBlockHeight(),
			BlockTimestamp: MessageToTime(result.GetBlockTimestamp()),
			Events:         events,
		}
	}
	return blockEvents, nil
}

func eventEncoding(version entities.EventEncodingVersion) (values.EventEncoding, error) {
	switch version {
	case entities.EventEncodingVersion_JSON_CDC_V0:
		return values.EventEncodingJSONCDC, nil
	case entities.EventEncodingVersion_CCF_V0:
		return values.EventEncodingCCF, nil
	default:
		return 0, fmt.Errorf("unsupported event encoding version %s", version)
	}
}
