package access

import (
	"errors"
	"fmt"
	"strings"

	"github.com/onflow/flow-client-go/model/flow"
)

var (
	// ErrUnknownReferenceBlock indicates that a transaction references an unknown block.
	ErrUnknownReferenceBlock = errors.New("unknown reference block")
	// ErrNotFound indicates that the access node does not know the requested entity.
	ErrNotFound = errors.New("not found")
)

// IncompleteTransactionError indicates that a transaction is missing one or more required fields.
type IncompleteTransactionError struct {
	MissingFields []string
}

func (e IncompleteTransactionError) Error() string {
	return fmt.Sprintf("transaction is missing required fields: %s", strings.Join(e.MissingFields, ", "))
}

// ExpiredTransactionError indicates that a transaction has expired.
type ExpiredTransactionError struct {
	RefHeight, FinalHeight uint64
}

func (e ExpiredTransactionError) Error() string {
	return fmt.Sprintf("transaction is expired: ref_height=%d final_height=%d", e.RefHeight, e.FinalHeight)
}

// InvalidGasLimitError indicates that a transaction specifies a gas limit that exceeds the maximum.
type InvalidGasLimitError struct {
	Maximum uint64
	Actual  uint64
}

func (e InvalidGasLimitError) Error() string {
	return fmt.Sprintf("transaction gas limit (%d) is not in the acceptable range (min: 1, max: %d)", e.Actual, e.Maximum)
}

// InvalidTxByteSizeError indicates that a transaction byte size exceeds the maximum.
type InvalidTxByteSizeError struct {
	Maximum uint64
	Actual  uint64
}

func (e InvalidTxByteSizeError) Error() string {
	return fmt.Sprintf("transaction byte size (%d) exceeds the maximum byte size allowed for a transaction (%d)", e.Actual, e.Maximum)
}

// InvalidSignatureError indicates that a transaction contains a signature
// with a wrong format.
type InvalidSignatureError struct {
	Signature flow.TransactionSignature
}

func (e InvalidSignatureError) Error() string {
	return fmt.Sprintf("invalid signature: %s", e.Signature)
}

// DuplicatedSignatureError indicates that two signatures have been provided for a key (combination of account and key index)
type DuplicatedSignatureError struct {
	Address  flow.Address
	KeyIndex uint32
}

func (e DuplicatedSignatureError) Error() string {
	return fmt.Sprintf("duplicated signature for key (address: %s, index: %d)", e.Address.String(), e.KeyIndex)
}

// UnknownSignerError indicates that a transaction carries a signature of an
// account that neither proposes, authorizes nor pays for it.
type UnknownSignerError struct {
	Address flow.Address
}

func (e UnknownSignerError) Error() string {
	return fmt.Sprintf("signature from account %s which is not a signer of the transaction", e.Address)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsExpiredTransactionError(err error) bool {
	var target ExpiredTransactionError
	return errors.As(err, &target)
}

func IsIncompleteTransactionError(err error) bool {
	var target IncompleteTransactionError
	return errors.As(err, &target)
}

func IsInvalidGasLimitError(err error) bool {
	var target InvalidGasLimitError
	return errors.As(err, &target)
}

func IsInvalidSignatureError(err error) bool {
	var target InvalidSignatureError
	return errors.As(err, &target)
}

func IsDuplicatedSignatureError(err error) bool {
	var target DuplicatedSignatureError
	return errors.As(err, &target)
}

func IsUnknownSignerError(err error) bool {
	var target UnknownSignerError
	return errors.As(err, &target)
}

func IsInvalidTxByteSizeError(err error) bool {
	var target InvalidTxByteSizeError
	return errors.As(err, &target)
}

// FailureReason returns a short label describing a validation failure.
func FailureReason(err error) string {
	switch {
	case IsIncompleteTransactionError(err):
		return "incomplete_transaction"
	case IsExpiredTransactionError(err):
		return "expired_transaction"
	case errors.Is(err, ErrUnknownReferenceBlock):
		return "unknown_reference_block"
	case IsInvalidGasLimitError(err):
		return "invalid_gas_limit"
	case IsInvalidTxByteSizeError(err):
		return "invalid_tx_byte_size"
	case IsInvalidSignatureError(err):
		return "invalid_signature"
	case IsDuplicatedSignatureError(err):
		return "duplicated_signature"
	case IsUnknownSignerError(err):
		return "unknown_signer"
	default:
		return "unknown"
	}
}
