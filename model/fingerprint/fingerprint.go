package fingerprint

import (
	"github.com/onflow/flow-client-go/model/encoding/rlp"
)

// Fingerprinter is an entity that provides its own canonical form.
type Fingerprinter interface {
	Fingerprint() []byte
}

var encoder = rlp.NewEncoder()

// Fingerprint returns the canonical byte representation of an entity: the
// entity's own Fingerprint if it implements Fingerprinter, otherwise the RLP
// encoding of the value.
func Fingerprint(entity interface{}) []byte {
	if fingerprinter, ok := entity.(Fingerprinter); ok {
		return fingerprinter.Fingerprint()
	}

	return encoder.MustEncode(entity)
}
