package convert_test

import (
	"testing"

	"github.com/onflow/flow/protobuf/go/flow/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flow-client-go/client/convert"
	"github.com/onflow/flow-client-go/model/flow"
	"github.com/onflow/flow-client-go/utils/unittest"
)

// TestConvertBlockHeader tests that converting a header to and from a protobuf message results in
// the same header
func TestConvertBlockHeader(t *testing.T) {
	t.Parallel()

	header := unittest.BlockHeaderFixture()

	msg := convert.BlockHeaderToMessage(&header)
	converted, err := convert.MessageToBlockHeader(msg, convert.BlockStatusToMessage(header.Status))
	require.NoError(t, err)

	assert.Equal(t, &header, converted)
}

func TestConvertBlockHeader_Invalid(t *testing.T) {
	t.Parallel()

	_, err := convert.MessageToBlockHeader(nil, entities.BlockStatus_BLOCK_SEALED)
	require.ErrorIs(t, err, convert.ErrEmptyMessage)

	header := unittest.BlockHeaderFixture()
	msg := convert.BlockHeaderToMessage(&header)
	msg.ParentId = msg.ParentId[:31]
	_, err = convert.MessageToBlockHeader(msg, entities.BlockStatus_BLOCK_SEALED)
	require.Error(t, err)
}

func TestConvertBlockStatus(t *testing.T) {
	t.Parallel()

	for _, status := range []flow.BlockStatus{flow.BlockStatusUnknown, flow.BlockStatusFinalized, flow.BlockStatusSealed} {
		assert.Equal(t, status, convert.MessageToBlockStatus(convert.BlockStatusToMessage(status)))
	}
}
