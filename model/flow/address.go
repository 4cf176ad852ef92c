package flow

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Address represents the 8 byte address of an account.
type Address [AddressLength]byte

const (
	// AddressLength is the size of an account address in bytes.
	AddressLength = 8
)

// EmptyAddress is the zero value of an address. It is never a valid signer.
var EmptyAddress = Address{}

// HexToAddress converts a hex string to an Address.
//
// The optional "0x" prefix is stripped and short input is left-padded with
// zeros, so "1" and "0000000000000001" produce the same address. Input longer
// than 16 hex digits is rejected with an InvalidLengthError, input with
// non-hex characters with an InvalidFormatError.
func HexToAddress(h string) (Address, error) {
	b, err := decodePaddedHex("address", h, AddressLength)
	if err != nil {
		return EmptyAddress, err
	}

	var a Address
	copy(a[:], b)
	return a, nil
}

// MustHexToAddress is like HexToAddress but panics on invalid input. It is meant
// for constants and tests.
func MustHexToAddress(h string) Address {
	a, err := HexToAddress(h)
	if err != nil {
		panic(err)
	}
	return a
}

// BytesToAddress returns the Address with value b.
//
// b must be exactly 8 bytes long; it is never cropped or padded.
func BytesToAddress(b []byte) (Address, error) {
	var a Address
	if len(b) != AddressLength {
		return a, InvalidLengthError{Kind: "address", Expected: AddressLength, Actual: len(b)}
	}
	copy(a[:], b)
	return a, nil
}

// Bytes returns the byte representation of the address.
func (a Address) Bytes() []byte { return a[:] }

// Hex returns the hex string representation of the address.
func (a Address) Hex() string {
	return hex.EncodeToString(a.Bytes())
}

// String returns the 0x-prefixed hex representation of the address.
func (a Address) String() string {
	return "0x" + a.Hex()
}

// Short returns the string representation of the address with leading zeros
// removed.
func (a Address) Short() string {
	trimmed := strings.TrimLeft(a.Hex(), "0")
	if len(trimmed)%2 != 0 {
		trimmed = "0" + trimmed
	}
	return trimmed
}

func (a Address) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("\"%s\"", a.Hex())), nil
}

func (a *Address) UnmarshalJSON(data []byte) error {
	address, err := HexToAddress(strings.Trim(string(data), "\""))
	if err != nil {
		return err
	}
	*a = address
	return nil
}

// decodePaddedHex decodes h into exactly size bytes, left-padding with zeros.
func decodePaddedHex(kind string, h string, size int) ([]byte, error) {
	h = strings.TrimPrefix(strings.TrimPrefix(h, "0x"), "0X")

	if len(h) > size*2 {
		return nil, InvalidLengthError{Kind: kind, Expected: size * 2, Actual: len(h), Hex: true}
	}

	padded := strings.Repeat("0", size*2-len(h)) + h

	b, err := hex.DecodeString(padded)
	if err != nil {
		return nil, InvalidFormatError{Kind: kind, Input: h, Err: err}
	}

	return b, nil
}
