package crypto_test

import (
	crand "crypto/rand"
	"testing"

	"github.com/onflow/crypto"
	"github.com/onflow/crypto/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fcrypto "github.com/onflow/flow-client-go/crypto"
	"github.com/onflow/flow-client-go/model/encoding"
)

func seedFixture(t *testing.T) []byte {
	seed := make([]byte, crypto.KeyGenSeedMinLen)
	_, err := crand.Read(seed)
	require.NoError(t, err)
	return seed
}

// recordingSigner returns the message it was asked to sign.
type recordingSigner struct {
	messages [][]byte
}

func (r *recordingSigner) Sign(message []byte) ([]byte, error) {
	r.messages = append(r.messages, message)
	return message, nil
}

func TestSignWithDomain(t *testing.T) {
	t.Parallel()

	t.Run("transaction tag is prepended", func(t *testing.T) {
		signer := &recordingSigner{}
		sig, err := fcrypto.SignTransactionMessage(signer, []byte{0x01, 0x02})
		require.NoError(t, err)

		require.Len(t, sig, encoding.DomainTagLength+2)
		assert.Equal(t, encoding.TransactionDomainTag[:], sig[:encoding.DomainTagLength])
		assert.Equal(t, []byte{0x01, 0x02}, sig[encoding.DomainTagLength:])
	})

	t.Run("user tag is prepended", func(t *testing.T) {
		signer := &recordingSigner{}
		sig, err := fcrypto.SignUserMessage(signer, []byte("hello"))
		require.NoError(t, err)

		assert.Equal(t, encoding.UserDomainTag[:], sig[:encoding.DomainTagLength])
		assert.Equal(t, []byte("hello"), sig[encoding.DomainTagLength:])
	})

	t.Run("empty message signs the bare tag", func(t *testing.T) {
		signer := &recordingSigner{}
		sig, err := fcrypto.SignUserMessage(signer, nil)
		require.NoError(t, err)
		assert.Equal(t, encoding.UserDomainTag[:], sig)
	})
}

func TestInMemorySigner(t *testing.T) {
	t.Parallel()

	for _, keyType := range []fcrypto.KeyType{
		fcrypto.KeyTypeECDSA_P256_SHA2_256,
		fcrypto.KeyTypeECDSA_P256_SHA3_256,
		fcrypto.KeyTypeECDSA_secp256k1_SHA2_256,
		fcrypto.KeyTypeECDSA_secp256k1_SHA3_256,
	} {
		keyType := keyType
		t.Run(keyType.String(), func(t *testing.T) {
			t.Parallel()

			sk, err := fcrypto.GeneratePrivateKey(keyType, seedFixture(t))
			require.NoError(t, err)

			signer, err := fcrypto.NewSigner(keyType, sk)
			require.NoError(t, err)

			message := []byte("some user message")
			sig, err := fcrypto.SignUserMessage(signer, message)
			require.NoError(t, err)

			valid, err := fcrypto.VerifyUserSignature(sk.PublicKey(), keyType.HashingAlgorithm(), message, sig)
			require.NoError(t, err)
			assert.True(t, valid)

			// a user signature does not verify in the transaction domain
			valid, err = fcrypto.VerifyTransactionSignature(sk.PublicKey(), keyType.HashingAlgorithm(), message, sig)
			require.NoError(t, err)
			assert.False(t, valid)
		})
	}
}

func TestNewHasher(t *testing.T) {
	t.Parallel()

	hasher, err := fcrypto.NewHasher(hash.SHA3_256)
	require.NoError(t, err)
	assert.Equal(t, hash.SHA3_256, hasher.Algorithm())

	_, err = fcrypto.NewHasher(hash.UnknownHashingAlgorithm)
	require.Error(t, err)
}
