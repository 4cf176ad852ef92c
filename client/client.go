// Package client implements a gRPC client to the Flow Access API.
package client

import (
	"context"
	"fmt"
	"time"

	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/onflow/cadence"
	jsoncdc "github.com/onflow/cadence/encoding/json"
	"github.com/onflow/flow/protobuf/go/flow/access"
	"github.com/onflow/flow/protobuf/go/flow/entities"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	flowaccess "github.com/onflow/flow-client-go/access"
	"github.com/onflow/flow-client-go/client/convert"
	"github.com/onflow/flow-client-go/model/flow"
	"github.com/onflow/flow-client-go/module"
	"github.com/onflow/flow-client-go/module/metrics"
)

// DefaultSealPollInterval is the interval at which WaitForSeal polls the
// transaction result.
const DefaultSealPollInterval = time.Second

// RPCClient is the subset of the Access API gRPC client used by Client.
type RPCClient interface {
	Ping(ctx context.Context, in *access.PingRequest, opts ...grpc.CallOption) (*access.PingResponse, error)
	GetLatestBlockHeader(ctx context.Context, in *access.GetLatestBlockHeaderRequest, opts ...grpc.CallOption) (*access.BlockHeaderResponse, error)
	GetBlockHeaderByID(ctx context.Context, in *access.GetBlockHeaderByIDRequest, opts ...grpc.CallOption) (*access.BlockHeaderResponse, error)
	GetAccountAtLatestBlock(ctx context.Context, in *access.GetAccountAtLatestBlockRequest, opts ...grpc.CallOption) (*access.AccountResponse, error)
	SendTransaction(ctx context.Context, in *access.SendTransactionRequest, opts ...grpc.CallOption) (*access.SendTransactionResponse, error)
	GetTransaction(ctx context.Context, in *access.GetTransactionRequest, opts ...grpc.CallOption) (*access.TransactionResponse, error)
	GetTransactionResult(ctx context.Context, in *access.GetTransactionRequest, opts ...grpc.CallOption) (*access.TransactionResultResponse, error)
	ExecuteScriptAtLatestBlock(ctx context.Context, in *access.ExecuteScriptAtLatestBlockRequest, opts ...grpc.CallOption) (*access.ExecuteScriptResponse, error)
	GetEventsForHeightRange(ctx context.Context, in *access.GetEventsForHeightRangeRequest, opts ...grpc.CallOption) (*access.EventsResponse, error)
}

var _ RPCClient = (access.AccessAPIClient)(nil)

// Client is a Flow Access API client. It is safe for concurrent use.
type Client struct {
	rpcClient RPCClient
	close     func() error

	log              zerolog.Logger
	metrics          module.AccessClientMetrics
	validator        *flowaccess.TransactionValidator
	eventEncoding    entities.EventEncodingVersion
	requestTimeout   time.Duration
	sealPollInterval time.Duration
	dialOptions      []grpc.DialOption

	rateLimiter    *rate.Limiter
	circuitBreaker *gobreaker.CircuitBreaker
	grpcMetrics    *grpc_prometheus.ClientMetrics
}

var _ flowaccess.API = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger of the client.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithMetrics sets the metrics collector of the client.
func WithMetrics(m module.AccessClientMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithValidator makes the client validate transactions before submitting them.
func WithValidator(v *flowaccess.TransactionValidator) Option {
	return func(c *Client) {
		c.validator = v
	}
}

// WithEventEncoding sets the event payload encoding requested from the access
// node. Payloads are always converted to JSON-Cadence.
func WithEventEncoding(version entities.EventEncodingVersion) Option {
	return func(c *Client) {
		c.eventEncoding = version
	}
}

// WithRequestTimeout bounds the duration of every request made over a
// connection dialed by NewClient. Zero disables the timeout.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.requestTimeout = timeout
	}
}

// WithCircuitBreaker stops sending requests for restoreTimeout after
// maxFailures consecutive requests failed. Requests rejected by the open
// breaker fail with gobreaker.ErrOpenState. Zero maxFailures disables it.
func WithCircuitBreaker(maxFailures uint32, restoreTimeout time.Duration) Option {
	return func(c *Client) {
		if maxFailures == 0 {
			c.circuitBreaker = nil
			return
		}
		c.circuitBreaker = newCircuitBreaker(maxFailures, restoreTimeout)
	}
}

// WithRateLimit limits the client to limit requests per second with bursts
// of up to burst requests. Zero limit disables it.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *Client) {
		if limit <= 0 {
			c.rateLimiter = nil
			return
		}
		c.rateLimiter = rate.NewLimiter(limit, burst)
	}
}

// WithGRPCMetrics registers per-method gRPC client metrics, including
// handling time histograms, with registerer.
func WithGRPCMetrics(registerer prometheus.Registerer) Option {
	return func(c *Client) {
		m := grpc_prometheus.NewClientMetrics()
		m.EnableClientHandlingTimeHistogram()
		registerer.MustRegister(m)
		c.grpcMetrics = m
	}
}

// WithSealPollInterval sets the interval at which WaitForSeal polls.
func WithSealPollInterval(interval time.Duration) Option {
	return func(c *Client) {
		c.sealPollInterval = interval
	}
}

// WithMaxMessageSize sets the maximum size of messages sent and received
// over the connection.
func WithMaxMessageSize(size int) Option {
	return func(c *Client) {
		c.dialOptions = append(c.dialOptions, grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(size),
			grpc.MaxCallSendMsgSize(size),
		))
	}
}

// WithDialOptions appends gRPC dial options used by NewClient.
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(c *Client) {
		c.dialOptions = append(c.dialOptions, opts...)
	}
}

// NewClient initializes a Flow client with the default gRPC provider.
//
// An error will be returned if the host is unreachable.
func NewClient(addr string, opts ...Option) (*Client, error) {
	c := newClient(opts)

	dialOptions := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithChainUnaryInterceptor(c.unaryInterceptors()...),
	}, c.dialOptions...)

	conn, err := grpc.Dial(addr, dialOptions...)
	if err != nil {
		return nil, fmt.Errorf("could not connect to access node %s: %w", addr, err)
	}

	c.rpcClient = access.NewAccessAPIClient(conn)
	c.close = func() error { return conn.Close() }
	c.log = c.log.With().Str("access_address", addr).Logger()

	return c, nil
}

// NewFromRPCClient initializes a Flow client over an existing gRPC client.
// The request timeout, circuit breaker, rate limit and gRPC metrics options
// only apply to connections dialed by NewClient.
func NewFromRPCClient(rpcClient RPCClient, opts ...Option) *Client {
	c := newClient(opts)
	c.rpcClient = rpcClient
	return c
}

func newClient(opts []Option) *Client {
	c := &Client{
		close:            func() error { return nil },
		log:              zerolog.Nop(),
		metrics:          metrics.NewNoopCollector(),
		eventEncoding:    entities.EventEncodingVersion_JSON_CDC_V0,
		sealPollInterval: DefaultSealPollInterval,
	}

	for _, apply := range opts {
		apply(c)
	}

	c.log = c.log.With().Str("component", "access_client").Logger()
	return c
}

// Close closes the client connection.
func (c *Client) Close() error {
	return c.close()
}

// Ping tests the connection to the Access API.
func (c *Client) Ping(ctx context.Context) error {
	return c.call(ctx, "Ping", func(ctx context.Context) error {
		_, err := c.rpcClient.Ping(ctx, &access.PingRequest{})
		return err
	})
}

// GetLatestBlockHeader returns the header of the latest sealed or finalized block.
func (c *Client) GetLatestBlockHeader(ctx context.Context, isSealed bool) (*flow.BlockHeader, error) {
	var res *access.BlockHeaderResponse
	err := c.call(ctx, "GetLatestBlockHeader", func(ctx context.Context) error {
		var err error
		res, err = c.rpcClient.GetLatestBlockHeader(ctx, &access.GetLatestBlockHeaderRequest{IsSealed: isSealed})
		return err
	})
	if err != nil {
		return nil, err
	}

	header, err := convert.MessageToBlockHeader(res.GetBlock(), res.GetBlockStatus())
	if err != nil {
		return nil, fmt.Errorf("could not convert block header: %w", err)
	}
	return header, nil
}

// GetBlockHeaderByID returns the header of the block with the given ID.
func (c *Client) GetBlockHeaderByID(ctx context.Context, id flow.Identifier) (*flow.BlockHeader, error) {
	var res *access.BlockHeaderResponse
	err := c.call(ctx, "GetBlockHeaderByID", func(ctx context.Context) error {
		var err error
		res, err = c.rpcClient.GetBlockHeaderByID(ctx, &access.GetBlockHeaderByIDRequest{Id: convert.IdentifierToMessage(id)})
		return err
	})
	if err != nil {
		return nil, err
	}

	header, err := convert.MessageToBlockHeader(res.GetBlock(), res.GetBlockStatus())
	if err != nil {
		return nil, fmt.Errorf("could not convert block header %s: %w", id, err)
	}
	return header, nil
}

// GetAccountAtLatestBlock returns the account state at the latest sealed block.
func (c *Client) GetAccountAtLatestBlock(ctx context.Context, address flow.Address) (*flow.Account, error) {
	var res *access.AccountResponse
	err := c.call(ctx, "GetAccountAtLatestBlock", func(ctx context.Context) error {
		var err error
		res, err = c.rpcClient.GetAccountAtLatestBlock(ctx, &access.GetAccountAtLatestBlockRequest{Address: address.Bytes()})
		return err
	})
	if err != nil {
		return nil, err
	}

	account, err := convert.MessageToAccount(res.GetAccount())
	if err != nil {
		return nil, fmt.Errorf("could not convert account %s: %w", address, err)
	}
	return account, nil
}

// SendTransaction submits a transaction to the network. If the client has a
// validator, transactions failing validation are not submitted.
func (c *Client) SendTransaction(ctx context.Context, tx flow.Transaction) (flow.Identifier, error) {
	if c.validator != nil {
		err := c.validator.Validate(ctx, tx)
		if err != nil {
			return flow.ZeroID, fmt.Errorf("invalid transaction %s: %w", tx.ID(), err)
		}
	}

	var res *access.SendTransactionResponse
	err := c.call(ctx, "SendTransaction", func(ctx context.Context) error {
		var err error
		res, err = c.rpcClient.SendTransaction(ctx, &access.SendTransactionRequest{
			Transaction: convert.TransactionToMessage(tx),
		})
		return err
	})
	if err != nil {
		return flow.ZeroID, err
	}

	id, err := convert.MessageToIdentifier(res.GetId())
	if err != nil {
		return flow.ZeroID, fmt.Errorf("could not convert transaction id: %w", err)
	}

	c.metrics.TransactionSubmitted()
	c.log.Info().Hex("tx_id", id[:]).Msg("transaction submitted")

	return id, nil
}

// GetTransaction returns the transaction with the given ID.
func (c *Client) GetTransaction(ctx context.Context, id flow.Identifier) (*flow.Transaction, error) {
	var res *access.TransactionResponse
	err := c.call(ctx, "GetTransaction", func(ctx context.Context) error {
		var err error
		res, err = c.rpcClient.GetTransaction(ctx, &access.GetTransactionRequest{Id: convert.IdentifierToMessage(id)})
		return err
	})
	if err != nil {
		return nil, err
	}

	tx, err := convert.MessageToTransaction(res.GetTransaction())
	if err != nil {
		return nil, fmt.Errorf("could not convert transaction %s: %w", id, err)
	}
	return &tx, nil
}

// GetTransactionResult returns the current result of the transaction with the given ID.
func (c *Client) GetTransactionResult(ctx context.Context, id flow.Identifier) (*flow.TransactionResult, error) {
	var res *access.TransactionResultResponse
	err := c.call(ctx, "GetTransactionResult", func(ctx context.Context) error {
		var err error
		res, err = c.rpcClient.GetTransactionResult(ctx, &access.GetTransactionRequest{
			Id:                   convert.IdentifierToMessage(id),
			EventEncodingVersion: c.eventEncoding,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	result, err := convert.MessageToTransactionResult(res, id, c.eventEncoding)
	if err != nil {
		return nil, fmt.Errorf("could not convert result of transaction %s: %w", id, err)
	}
	return result, nil
}

// ExecuteScriptAtLatestBlock executes a script against the latest sealed
// world state and returns its decoded result.
func (c *Client) ExecuteScriptAtLatestBlock(ctx context.Context, script []byte, arguments []cadence.Value) (cadence.Value, error) {
	args := make([][]byte, len(arguments))
	for i, argument := range arguments {
		encoded, err := jsoncdc.Encode(argument)
		if err != nil {
			return nil, fmt.Errorf("could not encode script argument %d: %w", i, err)
		}
		args[i] = encoded
	}

	var res *access.ExecuteScriptResponse
	err := c.call(ctx, "ExecuteScriptAtLatestBlock", func(ctx context.Context) error {
		var err error
		res, err = c.rpcClient.ExecuteScriptAtLatestBlock(ctx, &access.ExecuteScriptAtLatestBlockRequest{
			Script:    script,
			Arguments: args,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	value, err := jsoncdc.Decode(nil, res.GetValue())
	if err != nil {
		return nil, fmt.Errorf("could not decode script result: %w", err)
	}
	return value, nil
}

// GetEventsForHeightRange returns the events of the given type emitted in
// the blocks of the inclusive height range.
func (c *Client) GetEventsForHeightRange(
	ctx context.Context,
	eventType flow.EventType,
	startHeight uint64,
	endHeight uint64,
) ([]flow.BlockEvents, error) {
	var res *access.EventsResponse
	err := c.call(ctx, "GetEventsForHeightRange", func(ctx context.Context) error {
		var err error
		res, err = c.rpcClient.GetEventsForHeightRange(ctx, &access.GetEventsForHeightRangeRequest{
			Type:                 string(eventType),
			StartHeight:          startHeight,
			EndHeight:            endHeight,
			EventEncodingVersion: c.eventEncoding,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	events, err := convert.MessagesToBlockEvents(res.GetResults(), c.eventEncoding)
	if err != nil {
		return nil, fmt.Errorf("could not convert %s events: %w", eventType, err)
	}
	return events, nil
}

// call runs a single request, wrapping its failure in an RPCError and
// recording its outcome.
func (c *Client) call(ctx context.Context, method string, request func(ctx context.Context) error) error {
	start := time.Now()
	err := request(ctx)
	duration := time.Since(start)

	if err != nil {
		err = newRPCError(method, err)
	}
	c.metrics.RequestCompleted(method, duration, err)

	lg := c.log.With().
		Str("method", method).
		Dur("duration", duration).
		Logger()
	if err != nil {
		lg.Warn().Err(err).Msg("access api request failed")
		return err
	}
	lg.Debug().Msg("access api request completed")

	return nil
}
