package access

import (
	"context"

	"github.com/onflow/cadence"

	"github.com/onflow/flow-client-go/model/flow"
)

// API provides the subset of the Flow Access API a client SDK needs to build,
// submit and follow transactions.
type API interface {
	Ping(ctx context.Context) error

	GetLatestBlockHeader(ctx context.Context, isSealed bool) (*flow.BlockHeader, error)
	GetBlockHeaderByID(ctx context.Context, id flow.Identifier) (*flow.BlockHeader, error)

	GetAccountAtLatestBlock(ctx context.Context, address flow.Address) (*flow.Account, error)

	// SendTransaction submits a signed transaction and returns the identifier
	// the network assigned to it. The identifier equals tx.ID().
	SendTransaction(ctx context.Context, tx flow.Transaction) (flow.Identifier, error)
	GetTransaction(ctx context.Context, id flow.Identifier) (*flow.Transaction, error)
	// GetTransactionResult returns the current state of a transaction. A
	// transaction that is not sealed yet is reported through the result
	// status, not through an error.
	GetTransactionResult(ctx context.Context, id flow.Identifier) (*flow.TransactionResult, error)

	ExecuteScriptAtLatestBlock(ctx context.Context, script []byte, arguments []cadence.Value) (cadence.Value, error)

	GetEventsForHeightRange(ctx context.Context, eventType flow.EventType, startHeight, endHeight uint64) ([]flow.BlockEvents, error)
}
