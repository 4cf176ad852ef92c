package convert

import (
	"github.com/onflow/flow/protobuf/go/flow/access"
	"github.com/onflow/flow/protobuf/go/flow/entities"

	"github.com/onflow/flow-client-go/model/flow"
)

// MessageToTransactionResult converts a protobuf message to a
// flow.TransactionResult. The transaction ID falls back to txID when the
// access node leaves it out of the response.
func MessageToTransactionResult(
	m *access.TransactionResultResponse,
	txID flow.Identifier,
	version entities.EventEncodingVersion,
) (*flow.TransactionResult, error) {
	if m == nil {
		return nil, ErrEmptyMessage
	}

	id, err := optionalIdentifier("transaction id", m.GetTransactionId())
	if err != nil {
		return nil, err
	}
	if id == flow.ZeroID {
		id = txID
	}
	blockID, err := optionalIdentifier("block id", m.GetBlockId())
	if err != nil {
		return nil, err
	}
	collectionID, err := optionalIdentifier("collection id", m.GetCollectionId())
	if err != nil {
		return nil, err
	}

	events, err := MessagesToEventsFromVersion(m.GetEvents(), version)
	if err != nil {
		return nil, err
	}

	return &flow.TransactionResult{
		TransactionID: id,
		Status:        MessageToTransactionStatus(m.GetStatus()),
		StatusCode:    uint(m.GetStatusCode()),
		ErrorMessage:  m.GetErrorMessage(),
		Events:        events,
		BlockID:       blockID,
		BlockHeight:   m.GetBlockHeight(),
		CollectionID:  collectionID,
	}, nil
}

// TransactionResultToMessage converts a flow.TransactionResult to a protobuf message
func TransactionResultToMessage(r *flow.TransactionResult) *access.TransactionResultResponse {
	return &access.TransactionResultResponse{
		Status:        TransactionStatusToMessage(r.Status),
		StatusCode:    uint32(r.StatusCode),
		ErrorMessage:  r.ErrorMessage,
		Events:        EventsToMessages(r.Events),
		BlockId:       r.BlockID[:],
		TransactionId: r.TransactionID[:],
		CollectionId:  r.CollectionID[:],
		BlockHeight:   r.BlockHeight,
	}
}

// MessageToTransactionStatus converts a protobuf TransactionStatus to a flow.TransactionStatus
func MessageToTransactionStatus(status entities.TransactionStatus) flow.TransactionStatus {
	switch status {
	case entities.TransactionStatus_PENDING:
		return flow.TransactionStatusPending
	case entities.TransactionStatus_FINALIZED:
		return flow.TransactionStatusFinalized
	case entities.TransactionStatus_EXECUTED:
		return flow.TransactionStatusExecuted
	case entities.TransactionStatus_SEALED:
		return flow.TransactionStatusSealed
	case entities.TransactionStatus_EXPIRED:
		return flow.TransactionStatusExpired
	}
	return flow.TransactionStatusUnknown
}

// TransactionStatusToMessage converts a flow.TransactionStatus to a protobuf TransactionStatus
func TransactionStatusToMessage(status flow.TransactionStatus) entities.TransactionStatus {
	switch status {
	case flow.TransactionStatusPending:
		return entities.TransactionStatus_PENDING
	case flow.TransactionStatusFinalized:
		return entities.TransactionStatus_FINALIZED
	case flow.TransactionStatusExecuted:
		return entities.TransactionStatus_EXECUTED
	case flow.TransactionStatusSealed:
		return entities.TransactionStatus_SEALED
	case flow.TransactionStatusExpired:
		return entities.TransactionStatus_EXPIRED
	}
	return entities.TransactionStatus_UNKNOWN
}
