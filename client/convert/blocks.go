package convert

import (
	"time"

	"github.com/onflow/flow/protobuf/go/flow/entities"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/onflow/flow-client-go/model/flow"
)

// BlockHeaderToMessage converts a flow.BlockHeader to a protobuf message
func BlockHeaderToMessage(h *flow.BlockHeader) *entities.BlockHeader {
	return &entities.BlockHeader{
		Id:        h.ID[:],
		ParentId:  h.ParentID[:],
		Height:    h.Height,
		Timestamp: timestamppb.New(h.Timestamp),
	}
}

// MessageToBlockHeader converts a protobuf message to a flow.BlockHeader
func MessageToBlockHeader(m *entities.BlockHeader, status entities.BlockStatus) (*flow.BlockHeader, error) {
	if m == nil {
		return nil, ErrEmptyMessage
	}

	id, err := optionalIdentifier("block id", m.GetId())
	if err != nil {
		return nil, err
	}
	parentID, err := optionalIdentifier("parent block id", m.GetParentId())
	if err != nil {
		return nil, err
	}

	return &flow.BlockHeader{
		ID:        id,
		ParentID:  parentID,
		Height:    m.GetHeight(),
		Timestamp: MessageToTime(m.GetTimestamp()),
		Status:    MessageToBlockStatus(status),
	}, nil
}

// MessageToBlockStatus converts a protobuf BlockStatus message to a flow.BlockStatus
func MessageToBlockStatus(status entities.BlockStatus) flow.BlockStatus {
	switch status {
	case entities.BlockStatus_BLOCK_FINALIZED:
		return flow.BlockStatusFinalized
	case entities.BlockStatus_BLOCK_SEALED:
		return flow.BlockStatusSealed
	}
	return flow.BlockStatusUnknown
}

// BlockStatusToMessage converts a flow.BlockStatus to a protobuf BlockStatus
func BlockStatusToMessage(status flow.BlockStatus) entities.BlockStatus {
	switch status {
	case flow.BlockStatusFinalized:
		return entities.BlockStatus_BLOCK_FINALIZED
	case flow.BlockStatusSealed:
		return entities.BlockStatus_BLOCK_SEALED
	}
	return entities.BlockStatus_BLOCK_UNKNOWN
}

// MessageToTime converts a protobuf timestamp to a UTC time. A missing
// timestamp yields the zero time.
func MessageToTime(ts *timestamppb.Timestamp) time.Time {
	if ts == nil {
		return time.Time{}
	}
	return ts.AsTime()
}
