package values

import (
	"fmt"

	"github.com/onflow/cadence"
	"github.com/onflow/cadence/encoding/ccf"
	jsoncdc "github.com/onflow/cadence/encoding/json"
)

// EventEncoding identifies the wire encoding of an event payload.
type EventEncoding int

const (
	EventEncodingJSONCDC EventEncoding = iota
	EventEncodingCCF
)

func (e EventEncoding) String() string {
	switch e {
	case EventEncodingJSONCDC:
		return "JSON-CDC"
	case EventEncodingCCF:
		return "CCF"
	}
	return fmt.Sprintf("EventEncoding(%d)", int(e))
}

// DecodePayload parses an event payload in the given encoding.
func DecodePayload(b []byte, encoding EventEncoding) (cadence.Value, error) {
	var (
		value cadence.Value
		err   error
	)

	switch encoding {
	case EventEncodingJSONCDC:
		value, err = jsoncdc.Decode(nil, b)
	case EventEncodingCCF:
		value, err = ccf.Decode(nil, b)
	default:
		return nil, fmt.Errorf("unsupported event encoding: %s", encoding)
	}

	if err != nil {
		return nil, fmt.Errorf("could not decode %s payload: %w", encoding, err)
	}

	return value, nil
}

// ConvertPayload re-encodes a CCF payload as JSON-CDC. JSON-CDC payloads are
// returned unchanged.
func ConvertPayload(b []byte, encoding EventEncoding) ([]byte, error) {
	if encoding == EventEncodingJSONCDC {
		return b, nil
	}

	value, err := DecodePayload(b, encoding)
	if err != nil {
		return nil, err
	}

	converted, err := jsoncdc.Encode(value)
	if err != nil {
		return nil, fmt.Errorf("could not encode payload as JSON-CDC: %w", err)
	}

	return converted, nil
}
