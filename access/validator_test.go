package access_test

import (
	"context"
	"errors"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/onflow/flow-client-go/access"
	"github.com/onflow/flow-client-go/model/flow"
	"github.com/onflow/flow-client-go/module/mock"
	"github.com/onflow/flow-client-go/utils/unittest"
)

// blocks is an in-memory block source.
type blocks struct {
	headers map[flow.Identifier]*flow.BlockHeader
	final   *flow.BlockHeader
	err     error
}

func (b *blocks) HeaderByID(_ context.Context, id flow.Identifier) (*flow.BlockHeader, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.headers[id], nil
}

func (b *blocks) FinalizedHeader(context.Context) (*flow.BlockHeader, error) {
	return b.final, nil
}

type TransactionValidatorSuite struct {
	suite.Suite
	blocks    *blocks
	ref       flow.BlockHeader
	options   access.TransactionValidationOptions
	validator *access.TransactionValidator
}

func TestTransactionValidatorSuite(t *testing.T) {
	suite.Run(t, new(TransactionValidatorSuite))
}

func (s *TransactionValidatorSuite) SetupTest() {
	s.ref = unittest.BlockHeaderFixture(unittest.WithHeaderHeight(900))
	final := unittest.BlockHeaderFixture(unittest.WithHeaderHeight(1000))

	s.blocks = &blocks{
		headers: map[flow.Identifier]*flow.BlockHeader{s.ref.ID: &s.ref},
		final:   &final,
	}
	s.options = access.TransactionValidationOptions{
		Expiry:                 access.DefaultTransactionExpiry,
		ExpiryBuffer:           30,
		MaxGasLimit:            1000,
		MaxTransactionByteSize: 1500000,
	}
	s.validator = access.NewTransactionValidator(s.blocks, s.options)
}

func (s *TransactionValidatorSuite) TestValid() {
	tx := unittest.TransactionFixture(unittest.WithReferenceBlock(s.ref.ID))
	s.Require().NoError(s.validator.Validate(context.Background(), tx))
}

func (s *TransactionValidatorSuite) TestGasLimit() {
	for _, limit := range []uint64{0, 1001} {
		tx := unittest.TransactionFixture(
			unittest.WithReferenceBlock(s.ref.ID),
			unittest.WithGasLimit(limit),
		)

		err := s.validator.Validate(context.Background(), tx)
		s.Require().Error(err)
		s.Assert().True(access.IsInvalidGasLimitError(err))
	}
}

func (s *TransactionValidatorSuite) TestMissingFields() {
	tx := flow.NewTransaction().SetGasLimit(10)

	err := s.validator.Validate(context.Background(), tx)
	s.Require().Error(err)

	var incomplete access.IncompleteTransactionError
	s.Require().True(errors.As(err, &incomplete))
	s.Assert().Equal([]string{
		flow.TransactionFieldScript.String(),
		flow.TransactionFieldRefBlockID.String(),
		flow.TransactionFieldPayer.String(),
	}, incomplete.MissingFields)
}

func (s *TransactionValidatorSuite) TestAllowEmptyReferenceBlock() {
	s.options.AllowEmptyReferenceBlockID = true
	validator := access.NewTransactionValidator(s.blocks, s.options)

	tx := unittest.TransactionFixture(unittest.WithReferenceBlock(flow.ZeroID))
	s.Require().NoError(validator.Validate(context.Background(), tx))
}

func (s *TransactionValidatorSuite) TestExpiry() {
	s.Run("expired", func() {
		old := unittest.BlockHeaderFixture(unittest.WithHeaderHeight(1))
		s.blocks.headers[old.ID] = &old

		tx := unittest.TransactionFixture(unittest.WithReferenceBlock(old.ID))
		err := s.validator.Validate(context.Background(), tx)
		s.Require().Error(err)
		s.Assert().True(access.IsExpiredTransactionError(err))
	})

	s.Run("unknown reference block", func() {
		tx := unittest.TransactionFixture(unittest.WithReferenceBlock(unittest.IdentifierFixture()))
		err := s.validator.Validate(context.Background(), tx)
		s.Require().Error(err)
		s.Assert().ErrorIs(err, access.ErrUnknownReferenceBlock)

		s.options.AllowUnknownReferenceBlockID = true
		validator := access.NewTransactionValidator(s.blocks, s.options)
		s.Assert().NoError(validator.Validate(context.Background(), tx))
	})

	s.Run("lookup failure", func() {
		lookupErr := errors.New("unavailable")
		validator := access.NewTransactionValidator(&blocks{err: lookupErr}, s.options)

		tx := unittest.TransactionFixture()
		err := validator.Validate(context.Background(), tx)
		s.Assert().ErrorIs(err, lookupErr)
	})

	s.Run("no block source", func() {
		validator := access.NewTransactionValidator(nil, s.options)
		tx := unittest.TransactionFixture()
		s.Assert().NoError(validator.Validate(context.Background(), tx))
	})
}

func (s *TransactionValidatorSuite) TestSignatures() {
	s.Run("invalid format", func() {
		invalid := unittest.InvalidFormatSignature()
		tx := unittest.TransactionFixture(unittest.WithReferenceBlock(s.ref.ID)).
			AddPayloadSignature(invalid.Address, invalid.KeyIndex, invalid.Signature)

		err := s.validator.Validate(context.Background(), tx)
		s.Require().Error(err)
		s.Assert().True(access.IsInvalidSignatureError(err))
	})

	s.Run("duplicated key", func() {
		tx := unittest.TransactionFixture(unittest.WithReferenceBlock(s.ref.ID))
		sig := tx.EnvelopeSignatures[0]
		tx = tx.AddPayloadSignature(sig.Address, sig.KeyIndex, unittest.SignatureFixture())

		err := s.validator.Validate(context.Background(), tx)
		s.Require().Error(err)

		var duplicated access.DuplicatedSignatureError
		s.Require().True(errors.As(err, &duplicated))
		s.Assert().Equal(sig.Address, duplicated.Address)
		s.Assert().Equal(sig.KeyIndex, duplicated.KeyIndex)
	})

	s.Run("unknown signer", func() {
		stranger := unittest.RandomAddressFixture()
		for stranger == unittest.AddressFixture() {
			stranger = unittest.RandomAddressFixture()
		}

		tx := unittest.TransactionFixture(unittest.WithReferenceBlock(s.ref.ID)).
			AddPayloadSignature(stranger, 0, unittest.SignatureFixture())

		err := s.validator.Validate(context.Background(), tx)
		s.Require().Error(err)

		var unknown access.UnknownSignerError
		s.Require().True(errors.As(err, &unknown))
		s.Assert().Equal(stranger, unknown.Address)
	})
}

func (s *TransactionValidatorSuite) TestByteSize() {
	s.options.MaxTransactionByteSize = 10
	validator := access.NewTransactionValidator(s.blocks, s.options)

	tx := unittest.TransactionFixture(unittest.WithReferenceBlock(s.ref.ID))
	err := validator.Validate(context.Background(), tx)
	s.Require().Error(err)
	s.Assert().True(access.IsInvalidTxByteSizeError(err))
}

func TestValidate_AggregatesFailures(t *testing.T) {
	validator := access.NewTransactionValidator(nil, access.TransactionValidationOptions{MaxGasLimit: 100})

	invalid := unittest.InvalidFormatSignature()
	tx := flow.NewTransaction().
		SetGasLimit(101).
		AddPayloadSignature(invalid.Address, invalid.KeyIndex, invalid.Signature)

	err := validator.Validate(context.Background(), tx)
	require.Error(t, err)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))

	assert.True(t, access.IsIncompleteTransactionError(err))
	assert.True(t, access.IsInvalidGasLimitError(err))
	assert.True(t, access.IsInvalidSignatureError(err))
	assert.True(t, access.IsUnknownSignerError(err))
	assert.Len(t, merr.Errors, 4)
}

func TestValidate_Metrics(t *testing.T) {
	options := access.TransactionValidationOptions{MaxGasLimit: 100}

	t.Run("valid transaction", func(t *testing.T) {
		validationMetrics := mock.NewTransactionValidationMetrics(t)
		validationMetrics.On("TransactionValidationSkipped").Once()
		validationMetrics.On("TransactionValidated").Once()

		validator := access.NewTransactionValidatorWithMetrics(nil, options, validationMetrics)
		require.NoError(t, validator.Validate(context.Background(), unittest.TransactionFixture()))
	})

	t.Run("invalid transaction", func(t *testing.T) {
		validationMetrics := mock.NewTransactionValidationMetrics(t)
		validationMetrics.On("TransactionValidationSkipped").Once()
		validationMetrics.On("TransactionValidationFailed", "invalid_gas_limit").Once()

		validator := access.NewTransactionValidatorWithMetrics(nil, options, validationMetrics)
		err := validator.Validate(context.Background(), unittest.TransactionFixture(unittest.WithGasLimit(101)))
		require.Error(t, err)
	})
}

func TestFailureReason(t *testing.T) {
	assert.Equal(t, "unknown_reference_block", access.FailureReason(access.ErrUnknownReferenceBlock))
	assert.Equal(t, "expired_transaction", access.FailureReason(access.ExpiredTransactionError{RefHeight: 1, FinalHeight: 700}))
	assert.Equal(t, "unknown", access.FailureReason(errors.New("boom")))
}
