// Package convert translates between the access API protobuf messages and
// the client model types.
package convert

import (
	"errors"
	"fmt"

	"github.com/onflow/flow-client-go/model/flow"
)

var ErrEmptyMessage = errors.New("protobuf message is empty")

// IdentifierToMessage converts a flow.Identifier to a protobuf message
func IdentifierToMessage(i flow.Identifier) []byte {
	return i[:]
}

// MessageToIdentifier converts a message of exactly 32 bytes to a flow.Identifier.
func MessageToIdentifier(b []byte) (flow.Identifier, error) {
	return flow.BytesToID(b)
}

// optionalIdentifier converts a message to a flow.Identifier. An empty
// message yields the zero identifier.
func optionalIdentifier(kind string, b []byte) (flow.Identifier, error) {
	if len(b) == 0 {
		return flow.ZeroID, nil
	}
	id, err := flow.BytesToID(b)
	if err != nil {
		return flow.ZeroID, fmt.Errorf("could not convert %s: %w", kind, err)
	}
	return id, nil
}

// IsNonEmptyAddress returns whether the message holds any non-zero byte.
func IsNonEmptyAddress(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return true
		}
	}
	return false
}
