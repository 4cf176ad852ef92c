package access

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/onflow/crypto"

	"github.com/onflow/flow-client-go/model/flow"
	"github.com/onflow/flow-client-go/module"
	"github.com/onflow/flow-client-go/module/metrics"
)

// DefaultTransactionExpiry is the number of blocks after its reference block
// at which a transaction expires.
const DefaultTransactionExpiry = 600

// Blocks looks up block headers to check transaction expiry.
type Blocks interface {
	// HeaderByID returns nil without an error if the block is unknown.
	HeaderByID(ctx context.Context, id flow.Identifier) (*flow.BlockHeader, error)
	FinalizedHeader(ctx context.Context) (*flow.BlockHeader, error)
}

// APIBlocks reads block headers from an access node.
type APIBlocks struct {
	api API
}

var _ Blocks = (*APIBlocks)(nil)

func NewAPIBlocks(api API) *APIBlocks {
	return &APIBlocks{api: api}
}

func (b *APIBlocks) HeaderByID(ctx context.Context, id flow.Identifier) (*flow.BlockHeader, error) {
	header, err := b.api.GetBlockHeaderByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return header, nil
}

func (b *APIBlocks) FinalizedHeader(ctx context.Context) (*flow.BlockHeader, error) {
	return b.api.GetLatestBlockHeader(ctx, false)
}

type TransactionValidationOptions struct {
	Expiry                       uint
	ExpiryBuffer                 uint
	AllowEmptyReferenceBlockID   bool
	AllowUnknownReferenceBlockID bool
	MaxGasLimit                  uint64
	MaxTransactionByteSize       uint64
}

// TransactionValidator runs the checks an access node applies to incoming
// transactions before they are submitted.
type TransactionValidator struct {
	blocks                       Blocks // for looking up blocks to check transaction expiry, may be nil
	options                      TransactionValidationOptions
	transactionValidationMetrics module.TransactionValidationMetrics
}

func NewTransactionValidator(blocks Blocks, options TransactionValidationOptions) *TransactionValidator {
	return NewTransactionValidatorWithMetrics(blocks, options, metrics.NewNoopCollector())
}

func NewTransactionValidatorWithMetrics(
	blocks Blocks,
	options TransactionValidationOptions,
	transactionValidationMetrics module.TransactionValidationMetrics,
) *TransactionValidator {
	return &TransactionValidator{
		blocks:                       blocks,
		options:                      options,
		transactionValidationMetrics: transactionValidationMetrics,
	}
}

// Validate runs every check and returns all failures as one multierror.
// Expiry is only checked if the validator has a block source.
func (v *TransactionValidator) Validate(ctx context.Context, tx flow.Transaction) error {
	var result *multierror.Error

	checks := []func(flow.Transaction) error{
		v.checkTxSizeLimit,
		v.checkMissingFields,
		v.checkGasLimit,
		v.checkSignatureFormat,
		v.checkSignatureDuplications,
		v.checkSigners,
	}

	for _, check := range checks {
		if err := check(tx); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if v.blocks != nil {
		if err := v.checkExpiry(ctx, tx); err != nil {
			result = multierror.Append(result, err)
		}
	} else {
		v.transactionValidationMetrics.TransactionValidationSkipped()
	}

	if result == nil {
		v.transactionValidationMetrics.TransactionValidated()
		return nil
	}

	for _, err := range result.Errors {
		v.transactionValidationMetrics.TransactionValidationFailed(FailureReason(err))
	}

	return result.ErrorOrNil()
}

func (v *TransactionValidator) checkTxSizeLimit(tx flow.Transaction) error {
	if v.options.MaxTransactionByteSize == 0 {
		return nil
	}

	txSize := uint64(tx.ByteSize())
	if txSize > v.options.MaxTransactionByteSize {
		return InvalidTxByteSizeError{
			Actual:  txSize,
			Maximum: v.options.MaxTransactionByteSize,
		}
	}
	return nil
}

func (v *TransactionValidator) checkMissingFields(tx flow.Transaction) error {
	missingFields := tx.MissingFields()

	if v.options.AllowEmptyReferenceBlockID {
		missingFields = remove(missingFields, flow.TransactionFieldRefBlockID.String())
	}

	if len(missingFields) > 0 {
		return IncompleteTransactionError{MissingFields: missingFields}
	}

	return nil
}

func (v *TransactionValidator) checkGasLimit(tx flow.Transaction) error {
	if tx.GasLimit > v.options.MaxGasLimit || tx.GasLimit == 0 {
		return InvalidGasLimitError{
			Actual:  tx.GasLimit,
			Maximum: v.options.MaxGasLimit,
		}
	}

	return nil
}

// checkExpiry checks whether a transaction's reference block ID is
// valid. Returns nil if the reference is valid, returns an error if the
// reference is invalid or we failed to check it.
func (v *TransactionValidator) checkExpiry(ctx context.Context, tx flow.Transaction) error {
	if tx.ReferenceBlockID == flow.ZeroID {
		// reported by checkMissingFields unless explicitly allowed
		return nil
	}

	ref, err := v.blocks.HeaderByID(ctx, tx.ReferenceBlockID)
	if err != nil {
		return fmt.Errorf("could not get reference block: %w", err)
	}

	if ref == nil {
		if v.options.AllowUnknownReferenceBlockID {
			return nil
		}

		return ErrUnknownReferenceBlock
	}

	final, err := v.blocks.FinalizedHeader(ctx)
	if err != nil {
		return fmt.Errorf("could not get finalized header: %w", err)
	}

	diff := final.Height - ref.Height
	// check for overflow
	if ref.Height > final.Height {
		diff = 0
	}

	// discard transactions that are expired, or that will expire sooner than
	// our configured buffer allows
	if uint(diff) > v.options.Expiry-v.options.ExpiryBuffer {
		return ExpiredTransactionError{
			RefHeight:   ref.Height,
			FinalHeight: final.Height,
		}
	}

	return nil
}

// every key (account, key index combination) can only be used once for signing
func (v *TransactionValidator) checkSignatureDuplications(tx flow.Transaction) error {
	type key struct {
		address  flow.Address
		keyIndex uint32
	}

	var result *multierror.Error
	observedSigs := make(map[key]bool)
	for _, sig := range allSignatures(tx) {
		k := key{address: sig.Address, keyIndex: sig.KeyIndex}
		if observedSigs[k] {
			result = multierror.Append(result, DuplicatedSignatureError{Address: sig.Address, KeyIndex: sig.KeyIndex})
			continue
		}
		observedSigs[k] = true
	}
	return result.ErrorOrNil()
}

func (v *TransactionValidator) checkSignatureFormat(tx flow.Transaction) error {
	var result *multierror.Error

	for _, signature := range allSignatures(tx) {
		// a valid signature is an ECDSA signature of either P-256 or secp256k1 curve.
		valid, err := crypto.SignatureFormatCheck(crypto.ECDSAP256, signature.Signature)
		if err != nil {
			return fmt.Errorf("could not check the signature format (%s): %w", signature, err)
		}
		if valid {
			continue
		}

		valid, err = crypto.SignatureFormatCheck(crypto.ECDSASecp256k1, signature.Signature)
		if err != nil {
			return fmt.Errorf("could not check the signature format (%s): %w", signature, err)
		}
		if valid {
			continue
		}

		result = multierror.Append(result, InvalidSignatureError{Signature: signature})
	}

	return result.ErrorOrNil()
}

// checkSigners rejects signatures of accounts outside the signer list.
func (v *TransactionValidator) checkSigners(tx flow.Transaction) error {
	var result *multierror.Error

	for _, signature := range allSignatures(tx) {
		if signature.SignerIndex < 0 {
			result = multierror.Append(result, UnknownSignerError{Address: signature.Address})
		}
	}

	return result.ErrorOrNil()
}

func allSignatures(tx flow.Transaction) []flow.TransactionSignature {
	signatures := make([]flow.TransactionSignature, 0, len(tx.PayloadSignatures)+len(tx.EnvelopeSignatures))
	signatures = append(signatures, tx.PayloadSignatures...)
	return append(signatures, tx.EnvelopeSignatures...)
}

func remove(s []string, r string) []string {
	for i, v := range s {
		if v == r {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}
