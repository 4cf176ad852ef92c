package convert_test

import (
	"testing"

	"github.com/onflow/cadence"
	"github.com/onflow/flow/protobuf/go/flow/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flow-client-go/client/convert"
	"github.com/onflow/flow-client-go/model/flow"
	"github.com/onflow/flow-client-go/utils/unittest"
)

// TestConvertTransaction tests that converting a transaction to and from a protobuf message results in
// the same transaction
func TestConvertTransaction(t *testing.T) {
	t.Parallel()

	tx := unittest.TransactionFixture(unittest.WithArguments(cadence.NewInt(7), cadence.String("foo")))
	tx = tx.AddPayloadSignature(unittest.AddressFixture(), 2, unittest.SignatureFixture())

	msg := convert.TransactionToMessage(tx)
	converted, err := convert.MessageToTransaction(msg)
	require.NoError(t, err)

	assert.Equal(t, tx, converted)
	assert.Equal(t, tx.ID(), converted.ID())
}

// TestConvertTransaction_Empty tests that an empty transaction keeps its proposer and payer unset.
func TestConvertTransaction_Empty(t *testing.T) {
	t.Parallel()

	msg := convert.TransactionToMessage(flow.NewTransaction().SetScript([]byte("transaction {}")))
	assert.Nil(t, msg.GetProposalKey())
	assert.Empty(t, msg.GetPayer())

	converted, err := convert.MessageToTransaction(msg)
	require.NoError(t, err)
	assert.Equal(t, flow.EmptyAddress, converted.Payer)
	assert.Equal(t, flow.EmptyAddress, converted.ProposalKey.Address)
}

func TestConvertTransaction_Invalid(t *testing.T) {
	t.Parallel()

	t.Run("nil message", func(t *testing.T) {
		_, err := convert.MessageToTransaction(nil)
		require.ErrorIs(t, err, convert.ErrEmptyMessage)
	})

	t.Run("short payer address", func(t *testing.T) {
		msg := convert.TransactionToMessage(unittest.TransactionFixture())
		msg.Payer = []byte{0x01, 0x02}

		_, err := convert.MessageToTransaction(msg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "payer address")
	})

	t.Run("long reference block id", func(t *testing.T) {
		msg := convert.TransactionToMessage(unittest.TransactionFixture())
		msg.ReferenceBlockId = append(msg.ReferenceBlockId, 0x00)

		_, err := convert.MessageToTransaction(msg)
		require.Error(t, err)
	})

	t.Run("short signature address", func(t *testing.T) {
		msg := convert.TransactionToMessage(unittest.TransactionFixture())
		msg.EnvelopeSignatures = []*entities.Transaction_Signature{
			{Address: []byte{0x01}, KeyId: 1, Signature: unittest.SignatureFixture()},
		}

		_, err := convert.MessageToTransaction(msg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "envelope signature 0")
	})
}
