package values_test

import (
	"math/big"
	"testing"

	"github.com/onflow/cadence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flow-client-go/model/flow"
	"github.com/onflow/flow-client-go/model/values"
	"github.com/onflow/flow-client-go/utils/unittest"
)

func TestDecodeAny(t *testing.T) {
	t.Parallel()

	t.Run("scalars", func(t *testing.T) {
		cases := []struct {
			name     string
			value    cadence.Value
			expected interface{}
		}{
			{"bool", cadence.NewBool(false), false},
			{"string", cadence.String("s"), "s"},
			{"int8", cadence.Int8(-1), int8(-1)},
			{"uint64", cadence.UInt64(9), uint64(9)},
			{"absent", cadence.NewOptional(nil), nil},
			{"present", cadence.NewOptional(cadence.String("p")), "p"},
			{"void", cadence.NewVoid(), nil},
		}

		for _, c := range cases {
			decoded, err := values.DecodeAny(c.value)
			require.NoError(t, err, c.name)
			assert.Equal(t, c.expected, decoded, c.name)
		}
	})

	t.Run("numbers", func(t *testing.T) {
		decoded, err := values.DecodeAny(cadence.NewInt(-5))
		require.NoError(t, err)
		assert.Equal(t, 0, big.NewInt(-5).Cmp(decoded.(*big.Int)))

		decoded, err = values.DecodeAny(cadence.UFix64(12345))
		require.NoError(t, err)
		assert.Equal(t, "0.00012345", decoded.(decimal.Decimal).String())
	})

	t.Run("address", func(t *testing.T) {
		address := unittest.AddressFixture()
		decoded, err := values.DecodeAny(cadence.Address(address))
		require.NoError(t, err)
		assert.Equal(t, address, decoded.(flow.Address))
	})

	t.Run("composites and collections", func(t *testing.T) {
		st := personType()
		decoded, err := values.DecodeAny(personValue(st, "alice", 40, personValue(st, "bob", 12)))
		require.NoError(t, err)

		m, ok := decoded.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "alice", m["name"])

		children, ok := m["children"].([]interface{})
		require.True(t, ok)
		require.Len(t, children, 1)
		assert.Equal(t, "bob", children[0].(map[string]interface{})["name"])
	})

	t.Run("dictionary keys", func(t *testing.T) {
		dictionary := cadence.NewDictionary([]cadence.KeyValuePair{
			{Key: cadence.NewInt(1), Value: cadence.String("one")},
			{Key: cadence.UFix64(50000000), Value: cadence.String("half")},
			{Key: cadence.String("k"), Value: cadence.NewOptional(nil)},
		})

		decoded, err := values.DecodeAny(dictionary)
		require.NoError(t, err)
		assert.Equal(t, map[interface{}]interface{}{
			"1":   "one",
			"0.5": "half",
			"k":   nil,
		}, decoded)
	})

	t.Run("enum keys", func(t *testing.T) {
		dictionary := cadence.NewDictionary([]cadence.KeyValuePair{
			{Key: colorValue(0), Value: cadence.String("red")},
			{Key: colorValue(2), Value: cadence.String("blue")},
		})

		decoded, err := values.DecodeAny(dictionary)
		require.NoError(t, err)
		assert.Equal(t, map[interface{}]interface{}{
			"S.test.Color.0": "red",
			"S.test.Color.2": "blue",
		}, decoded)
	})

	t.Run("non-comparable keys", func(t *testing.T) {
		dictionary := cadence.NewDictionary([]cadence.KeyValuePair{
			{Key: cadence.NewArray([]cadence.Value{cadence.NewInt(1)}), Value: cadence.NewBool(true)},
		})

		_, err := values.DecodeAny(dictionary)
		require.Error(t, err)
		assert.True(t, values.IsUnsupportedShapeError(err))
	})

	t.Run("into empty interface field", func(t *testing.T) {
		var target struct {
			Name     interface{}
			Age      interface{}
			Children interface{}
		}
		require.NoError(t, values.Decode(personValue(personType(), "alice", 40), &target))
		assert.Equal(t, "alice", target.Name)
		assert.Equal(t, []interface{}{}, target.Children)
	})
}
