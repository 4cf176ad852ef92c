package flow_test

import (
	"testing"

	"github.com/onflow/cadence"
	jsoncdc "github.com/onflow/cadence/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flow-client-go/model/flow"
	"github.com/onflow/flow-client-go/utils/unittest"
)

func TestEvent_Value(t *testing.T) {
	t.Parallel()

	payload, err := jsoncdc.Encode(cadence.String("minted"))
	require.NoError(t, err)

	event := unittest.EventFixture(unittest.Event.WithPayload(payload))

	value, err := event.Value()
	require.NoError(t, err)
	assert.Equal(t, cadence.String("minted"), value)

	event = unittest.EventFixture(unittest.Event.WithPayload([]byte("{")))
	_, err = event.Value()
	require.Error(t, err)
}

func TestEventsList_ByteSize(t *testing.T) {
	t.Parallel()

	event := unittest.EventFixture(
		unittest.Event.WithEventType(flow.EventAccountCreated),
		unittest.Event.WithPayload([]byte{1, 2, 3}),
	)

	expected := flow.IdentifierLen + 4 + len(flow.EventAccountCreated) + 4 + 3
	assert.Equal(t, 2*expected, flow.EventsList{event, event}.ByteSize())
}
