package crypto

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/onflow/crypto"
	"github.com/onflow/crypto/hash"
)

// KeyType is a supported combination of signing and hashing algorithm for an
// account key.
type KeyType int

const (
	KeyTypeUnknown KeyType = iota
	KeyTypeECDSA_P256_SHA2_256
	KeyTypeECDSA_P256_SHA3_256
	KeyTypeECDSA_secp256k1_SHA2_256
	KeyTypeECDSA_secp256k1_SHA3_256
)

// String returns the string representation of a key type.
func (k KeyType) String() string {
	switch k {
	case KeyTypeECDSA_P256_SHA2_256:
		return "ECDSA_P256_SHA2_256"
	case KeyTypeECDSA_P256_SHA3_256:
		return "ECDSA_P256_SHA3_256"
	case KeyTypeECDSA_secp256k1_SHA2_256:
		return "ECDSA_secp256k1_SHA2_256"
	case KeyTypeECDSA_secp256k1_SHA3_256:
		return "ECDSA_secp256k1_SHA3_256"
	default:
		return "UNKNOWN"
	}
}

// ParseKeyType parses the string form of a key type, case-insensitively.
func ParseKeyType(s string) (KeyType, error) {
	for _, k := range []KeyType{
		KeyTypeECDSA_P256_SHA2_256,
		KeyTypeECDSA_P256_SHA3_256,
		KeyTypeECDSA_secp256k1_SHA2_256,
		KeyTypeECDSA_secp256k1_SHA3_256,
	} {
		if strings.EqualFold(k.String(), s) {
			return k, nil
		}
	}
	return KeyTypeUnknown, fmt.Errorf("unknown key type: %s", s)
}

func (k KeyType) SigningAlgorithm() crypto.SigningAlgorithm {
	switch k {
	case KeyTypeECDSA_P256_SHA2_256, KeyTypeECDSA_P256_SHA3_256:
		return crypto.ECDSAP256
	case KeyTypeECDSA_secp256k1_SHA2_256, KeyTypeECDSA_secp256k1_SHA3_256:
		return crypto.ECDSASecp256k1
	default:
		return crypto.UnknownSigningAlgorithm
	}
}

func (k KeyType) HashingAlgorithm() hash.HashingAlgorithm {
	switch k {
	case KeyTypeECDSA_P256_SHA2_256, KeyTypeECDSA_secp256k1_SHA2_256:
		return hash.SHA2_256
	case KeyTypeECDSA_P256_SHA3_256, KeyTypeECDSA_secp256k1_SHA3_256:
		return hash.SHA3_256
	default:
		return hash.UnknownHashingAlgorithm
	}
}

// GeneratePrivateKey generates a private key of the given type from a seed of
// at least crypto.KeyGenSeedMinLen bytes.
func GeneratePrivateKey(keyType KeyType, seed []byte) (crypto.PrivateKey, error) {
	if keyType == KeyTypeUnknown {
		return nil, fmt.Errorf("cannot generate key of type %s", keyType)
	}

	privateKey, err := crypto.GeneratePrivateKey(keyType.SigningAlgorithm(), seed)
	if err != nil {
		return nil, fmt.Errorf("could not generate private key: %w", err)
	}

	return privateKey, nil
}

// DecodePrivateKeyHex decodes a hex encoded private key of the given type.
func DecodePrivateKeyHex(keyType KeyType, h string) (crypto.PrivateKey, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(h, "0x"))
	if err != nil {
		return nil, fmt.Errorf("could not decode private key hex: %w", err)
	}

	privateKey, err := crypto.DecodePrivateKey(keyType.SigningAlgorithm(), b)
	if err != nil {
		return nil, fmt.Errorf("could not decode private key: %w", err)
	}

	return privateKey, nil
}

// DecodePublicKeyHex decodes a hex encoded public key of the given type.
func DecodePublicKeyHex(keyType KeyType, h string) (crypto.PublicKey, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(h, "0x"))
	if err != nil {
		return nil, fmt.Errorf("could not decode public key hex: %w", err)
	}

	publicKey, err := crypto.DecodePublicKey(keyType.SigningAlgorithm(), b)
	if err != nil {
		return nil, fmt.Errorf("could not decode public key: %w", err)
	}

	return publicKey, nil
}

// NewSigner returns an in-memory signer for a private key of the given type.
func NewSigner(keyType KeyType, privateKey crypto.PrivateKey) (*InMemorySigner, error) {
	return NewInMemorySigner(privateKey, keyType.HashingAlgorithm())
}
