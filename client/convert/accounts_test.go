package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flow-client-go/client/convert"
	fcrypto "github.com/onflow/flow-client-go/crypto"
	"github.com/onflow/flow-client-go/utils/unittest"
)

func TestConvertAccount(t *testing.T) {
	t.Parallel()

	for _, keyType := range []fcrypto.KeyType{fcrypto.KeyTypeECDSA_P256_SHA3_256, fcrypto.KeyTypeECDSA_secp256k1_SHA2_256} {
		keyType := keyType
		t.Run(keyType.String(), func(t *testing.T) {
			t.Parallel()

			sk := unittest.PrivateKeyFixture(keyType)
			account := unittest.AccountFixture(unittest.AddressFixture(), sk, keyType)
			account.Contracts["Token"] = []byte("access(all) contract Token {}")

			msg := convert.AccountToMessage(&account)
			converted, err := convert.MessageToAccount(msg)
			require.NoError(t, err)

			assert.Equal(t, account.Address, converted.Address)
			assert.Equal(t, account.Balance, converted.Balance)
			assert.Equal(t, account.Contracts, converted.Contracts)
			require.Len(t, converted.Keys, 1)

			key := converted.Keys[0]
			assert.True(t, sk.PublicKey().Equals(key.PublicKey))
			assert.Equal(t, keyType.SigningAlgorithm(), key.SigAlgo)
			assert.Equal(t, keyType.HashingAlgorithm(), key.HashAlgo)
			assert.Equal(t, account.Keys[0].Weight, key.Weight)
		})
	}
}

func TestConvertAccount_Invalid(t *testing.T) {
	t.Parallel()

	sk := unittest.PrivateKeyFixture(fcrypto.KeyTypeECDSA_P256_SHA3_256)
	account := unittest.AccountFixture(unittest.AddressFixture(), sk, fcrypto.KeyTypeECDSA_P256_SHA3_256)

	t.Run("malformed public key", func(t *testing.T) {
		msg := convert.AccountToMessage(&account)
		msg.Keys[0].PublicKey = []byte{0x01, 0x02}

		_, err := convert.MessageToAccount(msg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "key 0")
	})

	t.Run("short address", func(t *testing.T) {
		msg := convert.AccountToMessage(&account)
		msg.Address = msg.Address[:4]

		_, err := convert.MessageToAccount(msg)
		require.Error(t, err)
	})
}
