// Package crypto provides the signing capabilities the transaction model
// consumes: an opaque Signer, an in-memory implementation backed by an
// account private key, and the domain-tagged signing helpers.
package crypto

import (
	"fmt"

	"github.com/onflow/crypto"
	"github.com/onflow/crypto/hash"
)

// Signer produces a signature over a message. Implementations hash the
// message themselves; remote signers (KMS, wallets) implement this interface.
type Signer interface {
	Sign(message []byte) ([]byte, error)
}

// InMemorySigner signs messages with a private key held in memory.
type InMemorySigner struct {
	PrivateKey crypto.PrivateKey
	Hasher     hash.Hasher
}

var _ Signer = (*InMemorySigner)(nil)

// NewInMemorySigner returns a signer for the given private key and hashing
// algorithm.
func NewInMemorySigner(privateKey crypto.PrivateKey, hashAlgo hash.HashingAlgorithm) (*InMemorySigner, error) {
	hasher, err := NewHasher(hashAlgo)
	if err != nil {
		return nil, err
	}

	return &InMemorySigner{
		PrivateKey: privateKey,
		Hasher:     hasher,
	}, nil
}

// Sign signs the message with the private key and hasher.
func (s *InMemorySigner) Sign(message []byte) ([]byte, error) {
	sig, err := s.PrivateKey.Sign(message, s.Hasher)
	if err != nil {
		return nil, fmt.Errorf("failed to sign message with given key: %w", err)
	}
	return sig, nil
}

// NewHasher returns a hasher for the given algorithm. Only the hashing
// algorithms accepted for account keys are supported.
func NewHasher(hashAlgo hash.HashingAlgorithm) (hash.Hasher, error) {
	switch hashAlgo {
	case hash.SHA2_256:
		return hash.NewSHA2_256(), nil
	case hash.SHA3_256:
		return hash.NewSHA3_256(), nil
	}
	return nil, fmt.Errorf("unsupported hashing algorithm: %s", hashAlgo)
}
