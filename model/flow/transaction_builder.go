package flow

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/onflow/cadence"
)

// TransactionBuilder assembles a transaction from untrusted input such as
// hex strings read from a file or the command line. Input errors are
// collected and reported together by Build; no partial transaction is
// returned.
type TransactionBuilder struct {
	tx   Transaction
	errs *multierror.Error
}

// NewTransactionBuilder returns a builder for an empty transaction.
func NewTransactionBuilder() *TransactionBuilder {
	return &TransactionBuilder{tx: NewTransaction()}
}

func (b *TransactionBuilder) fail(err error) *TransactionBuilder {
	b.errs = multierror.Append(b.errs, err)
	return b
}

func (b *TransactionBuilder) Script(script []byte) *TransactionBuilder {
	b.tx = b.tx.SetScript(script)
	return b
}

func (b *TransactionBuilder) RawArgument(arg []byte) *TransactionBuilder {
	b.tx = b.tx.AddRawArgument(arg)
	return b
}

func (b *TransactionBuilder) Argument(value cadence.Value) *TransactionBuilder {
	tx, err := b.tx.AddArgument(value)
	if err != nil {
		return b.fail(err)
	}
	b.tx = tx
	return b
}

func (b *TransactionBuilder) ReferenceBlockID(blockID Identifier) *TransactionBuilder {
	b.tx = b.tx.SetReferenceBlockID(blockID)
	return b
}

// ReferenceBlockIDHex sets the reference block from its hex form.
func (b *TransactionBuilder) ReferenceBlockIDHex(h string) *TransactionBuilder {
	id, err := HexStringToIdentifier(h)
	if err != nil {
		return b.fail(fmt.Errorf("invalid reference block: %w", err))
	}
	return b.ReferenceBlockID(id)
}

// ReferenceBlockIDBytes sets the reference block from exactly 32 bytes.
func (b *TransactionBuilder) ReferenceBlockIDBytes(raw []byte) *TransactionBuilder {
	id, err := BytesToID(raw)
	if err != nil {
		return b.fail(fmt.Errorf("invalid reference block: %w", err))
	}
	return b.ReferenceBlockID(id)
}

func (b *TransactionBuilder) GasLimit(limit uint64) *TransactionBuilder {
	b.tx = b.tx.SetGasLimit(limit)
	return b
}

func (b *TransactionBuilder) ProposalKey(address Address, keyIndex uint32, sequenceNumber uint64) *TransactionBuilder {
	b.tx = b.tx.SetProposalKey(address, keyIndex, sequenceNumber)
	return b
}

// ProposalKeyHex sets the proposal key with the proposer address in hex form.
func (b *TransactionBuilder) ProposalKeyHex(address string, keyIndex uint32, sequenceNumber uint64) *TransactionBuilder {
	a, err := HexToAddress(address)
	if err != nil {
		return b.fail(fmt.Errorf("invalid proposer: %w", err))
	}
	return b.ProposalKey(a, keyIndex, sequenceNumber)
}

func (b *TransactionBuilder) Payer(address Address) *TransactionBuilder {
	b.tx = b.tx.SetPayer(address)
	return b
}

// PayerHex sets the payer from its hex form.
func (b *TransactionBuilder) PayerHex(address string) *TransactionBuilder {
	a, err := HexToAddress(address)
	if err != nil {
		return b.fail(fmt.Errorf("invalid payer: %w", err))
	}
	return b.Payer(a)
}

func (b *TransactionBuilder) Authorizer(address Address) *TransactionBuilder {
	b.tx = b.tx.AddAuthorizer(address)
	return b
}

// AuthorizerHex appends an authorizer given in hex form.
func (b *TransactionBuilder) AuthorizerHex(address string) *TransactionBuilder {
	a, err := HexToAddress(address)
	if err != nil {
		return b.fail(fmt.Errorf("invalid authorizer: %w", err))
	}
	return b.Authorizer(a)
}

// Build returns the assembled transaction, or every input error recorded
// while building it.
func (b *TransactionBuilder) Build() (*Transaction, error) {
	if err := b.errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	tx := b.tx.copy()
	return &tx, nil
}
