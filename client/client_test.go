package client_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/onflow/cadence"
	"github.com/onflow/cadence/encoding/ccf"
	jsoncdc "github.com/onflow/cadence/encoding/json"
	"github.com/onflow/flow/protobuf/go/flow/access"
	"github.com/onflow/flow/protobuf/go/flow/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	flowaccess "github.com/onflow/flow-client-go/access"
	"github.com/onflow/flow-client-go/client"
	"github.com/onflow/flow-client-go/client/convert"
	clientmock "github.com/onflow/flow-client-go/client/mock"
	fcrypto "github.com/onflow/flow-client-go/crypto"
	"github.com/onflow/flow-client-go/model/flow"
	modulemock "github.com/onflow/flow-client-go/module/mock"
	"github.com/onflow/flow-client-go/utils/unittest"
)

type ClientSuite struct {
	suite.Suite
	rpc    *clientmock.RPCClient
	client *client.Client
	ctx    context.Context
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.rpc = clientmock.NewRPCClient(s.T())
	s.client = client.NewFromRPCClient(s.rpc,
		client.WithLogger(unittest.Logger()),
		client.WithSealPollInterval(10*time.Millisecond),
	)
	s.ctx = context.Background()
}

func (s *ClientSuite) TestPing() {
	s.rpc.On("Ping", mock.Anything, &access.PingRequest{}).Return(&access.PingResponse{}, nil).Once()
	s.Require().NoError(s.client.Ping(s.ctx))
}

func (s *ClientSuite) TestRPCError() {
	s.rpc.On("Ping", mock.Anything, mock.Anything).
		Return(nil, status.Error(codes.Unavailable, "connection refused")).
		Once()

	err := s.client.Ping(s.ctx)
	s.Require().Error(err)

	var rpcErr *client.RPCError
	s.Require().True(errors.As(err, &rpcErr))
	s.Assert().Equal("Ping", rpcErr.Method)
	s.Assert().Equal(codes.Unavailable, rpcErr.Code)
	s.Assert().Equal("connection refused", rpcErr.Message)
	s.Assert().Equal(codes.Unavailable, status.Code(err))
	s.Assert().False(flowaccess.IsNotFound(err))
	s.Assert().True(client.IsRPCError(err))
	unittest.AssertErrSubstringMatch(s.T(), errors.New("connection refused"), err)
}

func (s *ClientSuite) TestRequestLogging() {
	var logs bytes.Buffer
	c := client.NewFromRPCClient(s.rpc, client.WithLogger(unittest.LoggerWithWriter(&logs)))

	s.rpc.On("Ping", mock.Anything, mock.Anything).Return(&access.PingResponse{}, nil).Once()
	s.rpc.On("Ping", mock.Anything, mock.Anything).
		Return(nil, status.Error(codes.Unavailable, "connection refused")).
		Once()

	s.Require().NoError(c.Ping(s.ctx))
	s.Require().Error(c.Ping(s.ctx))

	lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
	s.Require().Len(lines, 2)
	s.Assert().Contains(lines[0], `"level":"debug"`)
	s.Assert().Contains(lines[0], `"component":"access_client"`)
	s.Assert().Contains(lines[0], `"method":"Ping"`)
	s.Assert().Contains(lines[1], `"level":"warn"`)
	s.Assert().Contains(lines[1], "connection refused")
}

func (s *ClientSuite) TestGetLatestBlockHeader() {
	header := unittest.BlockHeaderFixture()

	s.rpc.On("GetLatestBlockHeader", mock.Anything, &access.GetLatestBlockHeaderRequest{IsSealed: true}).
		Return(&access.BlockHeaderResponse{
			Block:       convert.BlockHeaderToMessage(&header),
			BlockStatus: entities.BlockStatus_BLOCK_SEALED,
		}, nil).
		Once()

	actual, err := s.client.GetLatestBlockHeader(s.ctx, true)
	s.Require().NoError(err)
	s.Assert().Equal(&header, actual)
}

func (s *ClientSuite) TestGetBlockHeaderByID_NotFound() {
	id := unittest.IdentifierFixture()

	s.rpc.On("GetBlockHeaderByID", mock.Anything, &access.GetBlockHeaderByIDRequest{Id: id[:]}).
		Return(nil, status.Error(codes.NotFound, "block not found")).
		Once()

	_, err := s.client.GetBlockHeaderByID(s.ctx, id)
	s.Require().Error(err)
	s.Assert().True(flowaccess.IsNotFound(err))
}

func (s *ClientSuite) TestGetAccountAtLatestBlock() {
	keyType := fcrypto.KeyTypeECDSA_P256_SHA3_256
	sk := unittest.PrivateKeyFixture(keyType)
	account := unittest.AccountFixture(unittest.AddressFixture(), sk, keyType)

	s.rpc.On("GetAccountAtLatestBlock", mock.Anything, &access.GetAccountAtLatestBlockRequest{Address: account.Address.Bytes()}).
		Return(&access.AccountResponse{Account: convert.AccountToMessage(&account)}, nil).
		Once()

	actual, err := s.client.GetAccountAtLatestBlock(s.ctx, account.Address)
	s.Require().NoError(err)
	s.Assert().Equal(account.Address, actual.Address)
	s.Assert().Equal(account.Balance, actual.Balance)
	s.Require().Len(actual.Keys, 1)
	s.Assert().True(sk.PublicKey().Equals(actual.Keys[0].PublicKey))
}

func (s *ClientSuite) TestSendTransaction() {
	tx := unittest.TransactionFixture()
	id := tx.ID()

	s.rpc.On("SendTransaction", mock.Anything, mock.MatchedBy(func(req *access.SendTransactionRequest) bool {
		return proto.Equal(convert.TransactionToMessage(tx), req.GetTransaction())
	})).
		Return(&access.SendTransactionResponse{Id: id[:]}, nil).
		Once()

	actual, err := s.client.SendTransaction(s.ctx, tx)
	s.Require().NoError(err)
	s.Assert().Equal(id, actual)
}

func (s *ClientSuite) TestSendTransaction_Invalid() {
	validator := flowaccess.NewTransactionValidator(nil, flowaccess.TransactionValidationOptions{MaxGasLimit: 5})
	c := client.NewFromRPCClient(s.rpc, client.WithValidator(validator))

	// the rpc mock fails the test on any unexpected call
	_, err := c.SendTransaction(s.ctx, unittest.TransactionFixture(unittest.WithGasLimit(10)))
	s.Require().Error(err)
	s.Assert().True(flowaccess.IsInvalidGasLimitError(err))
	s.Assert().False(client.IsRPCError(err))
}

func (s *ClientSuite) TestGetTransaction() {
	tx := unittest.TransactionFixture()
	id := tx.ID()

	s.rpc.On("GetTransaction", mock.Anything, mock.MatchedBy(func(req *access.GetTransactionRequest) bool {
		return bytes.Equal(req.GetId(), id[:])
	})).
		Return(&access.TransactionResponse{Transaction: convert.TransactionToMessage(tx)}, nil).
		Once()

	actual, err := s.client.GetTransaction(s.ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal(id, actual.ID())
}

func (s *ClientSuite) TestExecuteScriptAtLatestBlock() {
	script := []byte("access(all) fun main(a: Int): Int { return a + 1 }")
	argument, err := jsoncdc.Encode(cadence.NewInt(41))
	s.Require().NoError(err)
	value, err := jsoncdc.Encode(cadence.NewInt(42))
	s.Require().NoError(err)

	s.rpc.On("ExecuteScriptAtLatestBlock", mock.Anything, &access.ExecuteScriptAtLatestBlockRequest{
		Script:    script,
		Arguments: [][]byte{argument},
	}).
		Return(&access.ExecuteScriptResponse{Value: value}, nil).
		Once()

	actual, err := s.client.ExecuteScriptAtLatestBlock(s.ctx, script, []cadence.Value{cadence.NewInt(41)})
	s.Require().NoError(err)
	s.Assert().Equal(cadence.NewInt(42), actual)
}

func (s *ClientSuite) TestGetEventsForHeightRange_CCF() {
	c := client.NewFromRPCClient(s.rpc, client.WithEventEncoding(entities.EventEncodingVersion_CCF_V0))

	payload, err := ccf.Encode(cadence.NewInt(7))
	s.Require().NoError(err)
	event := unittest.EventFixture(unittest.Event.WithPayload(payload))
	blockID := unittest.IdentifierFixture()

	s.rpc.On("GetEventsForHeightRange", mock.Anything, &access.GetEventsForHeightRangeRequest{
		Type:                 string(flow.EventAccountCreated),
		StartHeight:          10,
		EndHeight:            20,
		EventEncodingVersion: entities.EventEncodingVersion_CCF_V0,
	}).
		Return(&access.EventsResponse{Results: []*access.EventsResponse_Result{
			{
				BlockId:     blockID[:],
				BlockHeight: 15,
				Events:      []*entities.Event{convert.EventToMessage(event)},
			},
		}}, nil).
		Once()

	blocks, err := c.GetEventsForHeightRange(s.ctx, flow.EventAccountCreated, 10, 20)
	s.Require().NoError(err)
	s.Require().Len(blocks, 1)
	s.Assert().Equal(blockID, blocks[0].BlockID)
	s.Require().Len(blocks[0].Events, 1)

	value, err := blocks[0].Events[0].Value()
	s.Require().NoError(err)
	s.Assert().Equal(cadence.NewInt(7), value)
}

func (s *ClientSuite) TestWaitForSeal() {
	result := unittest.TransactionResultFixture()
	id := result.TransactionID

	pending := convert.TransactionResultToMessage(&result)
	pending.Status = entities.TransactionStatus_PENDING
	sealed := convert.TransactionResultToMessage(&result)

	s.rpc.On("GetTransactionResult", mock.Anything, mock.Anything).Return(pending, nil).Twice()
	s.rpc.On("GetTransactionResult", mock.Anything, mock.Anything).Return(sealed, nil).Once()

	actual, err := s.client.WaitForSeal(s.ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal(flow.TransactionStatusSealed, actual.Status)
	s.Assert().NoError(actual.Err())
}

func (s *ClientSuite) TestWaitForSeal_Expired() {
	result := unittest.TransactionResultFixture(unittest.WithTransactionStatus(flow.TransactionStatusExpired))

	s.rpc.On("GetTransactionResult", mock.Anything, mock.Anything).
		Return(convert.TransactionResultToMessage(&result), nil).
		Once()

	actual, err := s.client.WaitForSeal(s.ctx, result.TransactionID)
	s.Require().NoError(err)
	s.Assert().ErrorIs(actual.Err(), flow.ErrTransactionExpired)
}

func (s *ClientSuite) TestWaitForSeal_RequestFailure() {
	s.rpc.On("GetTransactionResult", mock.Anything, mock.Anything).
		Return(nil, status.Error(codes.Internal, "boom")).
		Once()

	_, err := s.client.WaitForSeal(s.ctx, unittest.IdentifierFixture())
	s.Require().Error(err)
	s.Assert().Equal(codes.Internal, status.Code(err))
}

func (s *ClientSuite) TestWaitForSeal_ContextDone() {
	result := unittest.TransactionResultFixture(unittest.WithTransactionStatus(flow.TransactionStatusPending))

	s.rpc.On("GetTransactionResult", mock.Anything, mock.Anything).
		Return(convert.TransactionResultToMessage(&result), nil)

	ctx, cancel := context.WithTimeout(s.ctx, 50*time.Millisecond)
	defer cancel()

	_, err := s.client.WaitForSeal(ctx, result.TransactionID)
	s.Require().ErrorIs(err, context.DeadlineExceeded)
}

func TestClient_Metrics(t *testing.T) {
	rpc := clientmock.NewRPCClient(t)
	clientMetrics := modulemock.NewAccessClientMetrics(t)
	c := client.NewFromRPCClient(rpc, client.WithMetrics(clientMetrics))

	tx := unittest.TransactionFixture()
	id := tx.ID()

	rpc.On("SendTransaction", mock.Anything, mock.Anything).
		Return(&access.SendTransactionResponse{Id: id[:]}, nil).
		Once()
	rpc.On("Ping", mock.Anything, mock.Anything).
		Return(nil, status.Error(codes.Unavailable, "down")).
		Once()

	clientMetrics.On("RequestCompleted", "SendTransaction", mock.Anything, nil).Once()
	clientMetrics.On("TransactionSubmitted").Once()
	clientMetrics.On("RequestCompleted", "Ping", mock.Anything, mock.MatchedBy(func(err error) bool {
		return status.Code(err) == codes.Unavailable
	})).Once()

	_, err := c.SendTransaction(context.Background(), tx)
	require.NoError(t, err)

	err = c.Ping(context.Background())
	assert.Error(t, err)
}
