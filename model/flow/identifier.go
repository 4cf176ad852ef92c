package flow

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/onflow/crypto/hash"
)

// IdentifierLen is the size of an identifier in bytes.
const IdentifierLen = 32

// Identifier represents a 32-byte unique identifier for an entity: a block,
// a collection or a transaction.
type Identifier [IdentifierLen]byte

// ZeroID is the lowest value in the 32-byte ID space.
var ZeroID = Identifier{}

// HexStringToIdentifier converts a hex string to an identifier. Short input is
// left-padded with zeros; more than 64 hex digits is rejected.
func HexStringToIdentifier(hexString string) (Identifier, error) {
	var id Identifier
	b, err := decodePaddedHex("identifier", hexString, IdentifierLen)
	if err != nil {
		return id, err
	}
	copy(id[:], b)
	return id, nil
}

// MustHexStringToIdentifier is like HexStringToIdentifier but panics on
// invalid input.
func MustHexStringToIdentifier(hexString string) Identifier {
	id, err := HexStringToIdentifier(hexString)
	if err != nil {
		panic(err)
	}
	return id
}

// BytesToID converts a byte slice of exactly 32 bytes to an identifier.
func BytesToID(b []byte) (Identifier, error) {
	var id Identifier
	if len(b) != IdentifierLen {
		return id, InvalidLengthError{Kind: "identifier", Expected: IdentifierLen, Actual: len(b)}
	}
	copy(id[:], b)
	return id, nil
}

// HashToID converts a 32-byte hash to an identifier.
func HashToID(h hash.Hash) Identifier {
	var id Identifier
	copy(id[:], h)
	return id
}

// MakeIDFromFingerPrint hashes the given fingerprint with SHA3-256.
func MakeIDFromFingerPrint(fingerPrint []byte) Identifier {
	hasher := hash.NewSHA3_256()
	return HashToID(hasher.ComputeHash(fingerPrint))
}

// Bytes returns the byte representation of the identifier.
func (id Identifier) Bytes() []byte {
	return id[:]
}

// Hex returns the hex string representation of the identifier.
func (id Identifier) Hex() string {
	return hex.EncodeToString(id[:])
}

// String returns the hex string representation of the identifier.
func (id Identifier) String() string {
	return id.Hex()
}

// Format handles formatting of id for different verbs. This is called when
// formatting an identifier with fmt.
func (id Identifier) Format(state fmt.State, verb rune) {
	switch verb {
	case 'x', 's', 'v':
		_, _ = state.Write([]byte(id.Hex()))
	default:
		_, _ = state.Write([]byte(fmt.Sprintf("%%!%c(%s)", verb, id.Hex())))
	}
}

func (id Identifier) MarshalText() ([]byte, error) {
	return []byte(id.Hex()), nil
}

func (id *Identifier) UnmarshalText(text []byte) error {
	parsed, err := HexStringToIdentifier(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
