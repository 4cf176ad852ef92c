package flow_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flow-client-go/model/flow"
)

func TestHexToAddress(t *testing.T) {
	t.Parallel()

	t.Run("short input is left padded", func(t *testing.T) {
		short, err := flow.HexToAddress("1")
		require.NoError(t, err)
		full, err := flow.HexToAddress("0000000000000001")
		require.NoError(t, err)

		assert.Equal(t, full, short)
		assert.Equal(t, flow.Address{0, 0, 0, 0, 0, 0, 0, 1}, short)
	})

	t.Run("0x prefix is stripped", func(t *testing.T) {
		address, err := flow.HexToAddress("0x0605040302")
		require.NoError(t, err)
		assert.Equal(t, "0000000605040302", address.Hex())
		assert.Equal(t, "0x0000000605040302", address.String())
		assert.Equal(t, "0605040302", address.Short())
	})

	t.Run("17 hex digits are rejected", func(t *testing.T) {
		_, err := flow.HexToAddress("10000000000000001")
		require.Error(t, err)
		assert.True(t, flow.IsInvalidLengthError(err))
	})

	t.Run("non hex input is rejected", func(t *testing.T) {
		_, err := flow.HexToAddress("xyz")
		require.Error(t, err)
		assert.True(t, flow.IsInvalidFormatError(err))
	})
}

func TestBytesToAddress(t *testing.T) {
	t.Parallel()

	address, err := flow.BytesToAddress([]byte{1, 2, 3, 4, 5, 6, 7, 8})
	require.NoError(t, err)
	assert.Equal(t, "0102030405060708", address.Hex())

	for _, b := range [][]byte{{1, 2, 3}, make([]byte, 9), nil} {
		_, err := flow.BytesToAddress(b)
		require.Error(t, err)

		var lengthErr flow.InvalidLengthError
		require.ErrorAs(t, err, &lengthErr)
		assert.Equal(t, flow.AddressLength, lengthErr.Expected)
		assert.Equal(t, len(b), lengthErr.Actual)
	}
}

func TestAddressJSON(t *testing.T) {
	t.Parallel()

	address := flow.MustHexToAddress("f8d6e0586b0a20c7")

	b, err := json.Marshal(address)
	require.NoError(t, err)
	assert.JSONEq(t, `"f8d6e0586b0a20c7"`, string(b))

	var decoded flow.Address
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, address, decoded)
}
