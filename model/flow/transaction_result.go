package flow

import (
	"errors"
	"fmt"
)

// TransactionStatus represents the status of a transaction.
type TransactionStatus int

const (
	// TransactionStatusUnknown indicates that the transaction status is not known.
	TransactionStatusUnknown TransactionStatus = iota
	// TransactionStatusPending is the status of a pending transaction.
	TransactionStatusPending
	// TransactionStatusFinalized is the status of a finalized transaction.
	TransactionStatusFinalized
	// TransactionStatusExecuted is the status of an executed transaction.
	TransactionStatusExecuted
	// TransactionStatusSealed is the status of a sealed transaction.
	TransactionStatusSealed
	// TransactionStatusExpired is the status of an expired transaction.
	TransactionStatusExpired
)

// String returns the string representation of a transaction status.
func (s TransactionStatus) String() string {
	if s < TransactionStatusUnknown || s > TransactionStatusExpired {
		return "UNKNOWN"
	}
	return [...]string{"UNKNOWN", "PENDING", "FINALIZED", "EXECUTED", "SEALED", "EXPIRED"}[s]
}

// IsFinal returns true if the status can no longer change.
func (s TransactionStatus) IsFinal() bool {
	return s == TransactionStatusSealed || s == TransactionStatusExpired
}

// ErrTransactionExpired is returned by TransactionResult.Err when the
// transaction expired before being included in a block.
var ErrTransactionExpired = errors.New("transaction expired")

// TransactionResult is the outcome of a submitted transaction as reported by
// the access API. A result that is not yet sealed is a regular value and
// carries no error.
type TransactionResult struct {
	TransactionID Identifier
	Status        TransactionStatus
	StatusCode    uint
	ErrorMessage  string
	Events        []Event
	BlockID       Identifier
	BlockHeight   uint64
	CollectionID  Identifier
}

// Err returns the execution error of the transaction, if any.
func (r TransactionResult) Err() error {
	if r.Status == TransactionStatusExpired {
		return ErrTransactionExpired
	}
	if r.ErrorMessage == "" && r.StatusCode == 0 {
		return nil
	}
	return fmt.Errorf("transaction %s failed with status code %d: %s", r.TransactionID, r.StatusCode, r.ErrorMessage)
}

// String returns the string representation of this result.
func (r TransactionResult) String() string {
	return fmt.Sprintf("Transaction ID: %s, Status: %s, Error Message: %s", r.TransactionID, r.Status, r.ErrorMessage)
}
