package unittest

import (
	"github.com/onflow/crypto"

	fcrypto "github.com/onflow/flow-client-go/crypto"
	"github.com/onflow/flow-client-go/model/flow"
)

// PrivateKeyFixture returns a random private key of the given key type.
func PrivateKeyFixture(keyType fcrypto.KeyType) crypto.PrivateKey {
	sk, err := fcrypto.GeneratePrivateKey(keyType, SeedFixture(crypto.KeyGenSeedMinLen))
	if err != nil {
		panic(err)
	}
	return sk
}

// SignerFixture returns an in-memory signer over a random private key.
func SignerFixture(keyType fcrypto.KeyType) *fcrypto.InMemorySigner {
	signer, err := fcrypto.NewSigner(keyType, PrivateKeyFixture(keyType))
	if err != nil {
		panic(err)
	}
	return signer
}

// AccountFixture returns an account holding a single full weight key.
func AccountFixture(address flow.Address, sk crypto.PrivateKey, keyType fcrypto.KeyType) flow.Account {
	return flow.Account{
		Address: address,
		Balance: 100_000,
		Keys: []flow.AccountKey{
			{
				Index:          0,
				PublicKey:      sk.PublicKey(),
				SigAlgo:        keyType.SigningAlgorithm(),
				HashAlgo:       keyType.HashingAlgorithm(),
				Weight:         flow.AccountKeyWeightThreshold,
				SequenceNumber: 0,
			},
		},
		Contracts: map[string][]byte{},
	}
}
