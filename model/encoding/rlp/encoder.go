// Package rlp is the canonical encoder of the client: transactions, their
// signatures and every other structure whose bytes are hashed or signed are
// serialized with the Ethereum RLP rules, so that other SDKs for the chain
// produce byte-identical output.
package rlp

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/onflow/flow-client-go/model/encoding"
)

var _ encoding.Encoder = (*Encoder)(nil)

// Encoder encodes and decodes values with RLP. Supported field types are byte
// slices, unsigned integers, strings, structs and slices of those; structs are
// encoded as lists of their fields in declaration order.
type Encoder struct{}

// NewEncoder returns a new RLP encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encode encodes a value as RLP bytes.
func (e *Encoder) Encode(val interface{}) ([]byte, error) {
	b, err := rlp.EncodeToBytes(val)
	if err != nil {
		return nil, fmt.Errorf("could not rlp encode %T: %w", val, err)
	}
	return b, nil
}

// Decode decodes RLP bytes into the value pointed to by val.
func (e *Encoder) Decode(b []byte, val interface{}) error {
	if err := rlp.DecodeBytes(b, val); err != nil {
		return fmt.Errorf("could not rlp decode into %T: %w", val, err)
	}
	return nil
}

// MustEncode encodes a value as RLP bytes and panics on failure.
func (e *Encoder) MustEncode(val interface{}) []byte {
	b, err := e.Encode(val)
	if err != nil {
		panic(err)
	}
	return b
}

// MustDecode decodes RLP bytes into val and panics on failure.
func (e *Encoder) MustDecode(b []byte, val interface{}) {
	if err := e.Decode(b, val); err != nil {
		panic(err)
	}
}
