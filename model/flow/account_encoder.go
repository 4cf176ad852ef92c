package flow

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/onflow/cadence"
	"github.com/onflow/crypto"
	"github.com/onflow/crypto/hash"
)

// accountKeyWrapper is the RLP form of an account key as accepted by the
// account creation and key management functions of the Cadence runtime.
type accountKeyWrapper struct {
	PublicKey []byte
	SignAlgo  uint
	HashAlgo  uint
	Weight    uint
}

// storedAccountKeyWrapper additionally carries the key state kept on chain.
type storedAccountKeyWrapper struct {
	PublicKey []byte
	SignAlgo  uint
	HashAlgo  uint
	Weight    uint
	SeqNumber uint64
	Revoked   bool
}

// EncodeAccountKey returns the RLP encoding of the key without its index,
// sequence number or revocation state.
func EncodeAccountKey(a AccountKey) ([]byte, error) {
	if a.PublicKey == nil {
		return nil, fmt.Errorf("account key %d has no public key", a.Index)
	}
	if a.Weight < 0 {
		return nil, fmt.Errorf("account key %d has negative weight %d", a.Index, a.Weight)
	}

	w := accountKeyWrapper{
		PublicKey: a.PublicKey.Encode(),
		SignAlgo:  uint(a.SigAlgo),
		HashAlgo:  uint(a.HashAlgo),
		Weight:    uint(a.Weight),
	}

	return rlp.EncodeToBytes(&w)
}

// EncodeAccountKeyArgument encodes the key as a Cadence [UInt8] array, the
// argument form used by account creation transactions.
func EncodeAccountKeyArgument(a AccountKey) (cadence.Array, error) {
	b, err := EncodeAccountKey(a)
	if err != nil {
		return cadence.Array{}, err
	}

	values := make([]cadence.Value, len(b))
	for i, v := range b {
		values[i] = cadence.NewUInt8(v)
	}
	return cadence.NewArray(values), nil
}

// DecodeAccountKey decodes a key produced by EncodeAccountKey. The sequence
// number of the result is zero.
func DecodeAccountKey(b []byte, index uint32) (AccountKey, error) {
	var w accountKeyWrapper
	err := rlp.DecodeBytes(b, &w)
	if err != nil {
		return AccountKey{}, fmt.Errorf("could not decode account key: %w", err)
	}

	return newAccountKey(index, w.PublicKey, w.SignAlgo, w.HashAlgo, w.Weight, 0, false)
}

// EncodeStoredAccountKey returns the RLP encoding of the full key state.
func EncodeStoredAccountKey(a AccountKey) ([]byte, error) {
	if a.PublicKey == nil {
		return nil, fmt.Errorf("account key %d has no public key", a.Index)
	}
	if a.Weight < 0 {
		return nil, fmt.Errorf("account key %d has negative weight %d", a.Index, a.Weight)
	}

	w := storedAccountKeyWrapper{
		PublicKey: a.PublicKey.Encode(),
		SignAlgo:  uint(a.SigAlgo),
		HashAlgo:  uint(a.HashAlgo),
		Weight:    uint(a.Weight),
		SeqNumber: a.SequenceNumber,
		Revoked:   a.Revoked,
	}

	return rlp.EncodeToBytes(&w)
}

// DecodeStoredAccountKey decodes a key produced by EncodeStoredAccountKey.
func DecodeStoredAccountKey(b []byte, index uint32) (AccountKey, error) {
	var w storedAccountKeyWrapper
	err := rlp.DecodeBytes(b, &w)
	if err != nil {
		return AccountKey{}, fmt.Errorf("could not decode stored account key: %w", err)
	}

	return newAccountKey(index, w.PublicKey, w.SignAlgo, w.HashAlgo, w.Weight, w.SeqNumber, w.Revoked)
}

func newAccountKey(index uint32, pk []byte, signAlgo, hashAlgo, weight uint, seqNumber uint64, revoked bool) (AccountKey, error) {
	sigAlgo := crypto.SigningAlgorithm(signAlgo)

	publicKey, err := crypto.DecodePublicKey(sigAlgo, pk)
	if err != nil {
		return AccountKey{}, fmt.Errorf("could not decode public key: %w", err)
	}

	return AccountKey{
		Index:          index,
		PublicKey:      publicKey,
		SigAlgo:        sigAlgo,
		HashAlgo:       hash.HashingAlgorithm(hashAlgo),
		Weight:         int(weight),
		SequenceNumber: seqNumber,
		Revoked:        revoked,
	}, nil
}
