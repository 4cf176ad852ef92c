package crypto

import (
	"fmt"

	"github.com/onflow/crypto"
	"github.com/onflow/crypto/hash"

	"github.com/onflow/flow-client-go/model/encoding"
)

// SignWithDomain signs the payload prefixed with the given domain tag.
func SignWithDomain(signer Signer, payload []byte, tag [encoding.DomainTagLength]byte) ([]byte, error) {
	message := make([]byte, 0, len(tag)+len(payload))
	message = append(message, tag[:]...)
	message = append(message, payload...)

	return signer.Sign(message)
}

// SignUserMessage signs an arbitrary user message in the user domain.
func SignUserMessage(signer Signer, message []byte) ([]byte, error) {
	return SignWithDomain(signer, message, encoding.UserDomainTag)
}

// SignTransactionMessage signs a transaction payload or envelope in the
// transaction domain.
func SignTransactionMessage(signer Signer, message []byte) ([]byte, error) {
	return SignWithDomain(signer, message, encoding.TransactionDomainTag)
}

// VerifyUserSignature checks a signature produced by SignUserMessage.
func VerifyUserSignature(
	publicKey crypto.PublicKey,
	hashAlgo hash.HashingAlgorithm,
	message []byte,
	signature []byte,
) (bool, error) {
	return verifyWithDomain(publicKey, hashAlgo, message, signature, encoding.UserDomainTag)
}

// VerifyTransactionSignature checks a signature produced by SignTransactionMessage.
func VerifyTransactionSignature(
	publicKey crypto.PublicKey,
	hashAlgo hash.HashingAlgorithm,
	message []byte,
	signature []byte,
) (bool, error) {
	return verifyWithDomain(publicKey, hashAlgo, message, signature, encoding.TransactionDomainTag)
}

func verifyWithDomain(
	publicKey crypto.PublicKey,
	hashAlgo hash.HashingAlgorithm,
	message []byte,
	signature []byte,
	tag [encoding.DomainTagLength]byte,
) (bool, error) {
	hasher, err := NewHasher(hashAlgo)
	if err != nil {
		return false, err
	}

	tagged := make([]byte, 0, len(tag)+len(message))
	tagged = append(tagged, tag[:]...)
	tagged = append(tagged, message...)

	valid, err := publicKey.Verify(signature, tagged, hasher)
	if err != nil {
		return false, fmt.Errorf("failed to verify signature: %w", err)
	}

	return valid, nil
}
