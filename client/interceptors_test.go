package client_test

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/onflow/flow/protobuf/go/flow/access"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/onflow/flow-client-go/client"
	"github.com/onflow/flow-client-go/utils/unittest"
)

// accessServer answers Ping with the result of ping and fails every other
// method as unimplemented.
type accessServer struct {
	access.UnimplementedAccessAPIServer

	pings atomic.Int32
	ping  func(ctx context.Context) error
}

func (s *accessServer) Ping(ctx context.Context, _ *access.PingRequest) (*access.PingResponse, error) {
	s.pings.Add(1)
	if s.ping != nil {
		if err := s.ping(ctx); err != nil {
			return nil, err
		}
	}
	return &access.PingResponse{}, nil
}

// startAccessServer serves handler on a local port until the test ends.
func startAccessServer(t *testing.T, handler *accessServer) string {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	server := grpc.NewServer()
	access.RegisterAccessAPIServer(server, handler)

	go func() {
		assert.NoError(t, server.Serve(listener))
	}()
	t.Cleanup(server.Stop)

	return listener.Addr().String()
}

func dialAccessServer(t *testing.T, handler *accessServer, opts ...client.Option) *client.Client {
	addr := startAccessServer(t, handler)

	opts = append([]client.Option{client.WithLogger(unittest.Logger())}, opts...)
	c, err := client.NewClient(addr, opts...)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, c.Close())
	})

	return c
}

func TestRequestTimeout(t *testing.T) {
	requestTimeout := 100 * time.Millisecond

	t.Run("request within the timeout", func(t *testing.T) {
		c := dialAccessServer(t, &accessServer{}, client.WithRequestTimeout(requestTimeout))
		require.NoError(t, c.Ping(context.Background()))
	})

	t.Run("request exceeding the timeout", func(t *testing.T) {
		handler := &accessServer{
			ping: func(ctx context.Context) error {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(10 * time.Second):
					return nil
				}
			},
		}
		c := dialAccessServer(t, handler, client.WithRequestTimeout(requestTimeout))

		var err error
		unittest.RequireReturnsBefore(t, func() {
			err = c.Ping(context.Background())
		}, 5*time.Second, "request was not bounded by the timeout")

		require.Error(t, err)
		assert.Equal(t, codes.DeadlineExceeded, status.Code(err))
		assert.True(t, client.IsRPCError(err))
	})
}

func TestCircuitBreaker(t *testing.T) {
	restoreTimeout := 200 * time.Millisecond

	t.Run("opens after consecutive failures and restores", func(t *testing.T) {
		var failing atomic.Bool
		failing.Store(true)
		handler := &accessServer{
			ping: func(context.Context) error {
				if failing.Load() {
					return status.Error(codes.Unavailable, "node is down")
				}
				return nil
			},
		}
		c := dialAccessServer(t, handler, client.WithCircuitBreaker(1, restoreTimeout))
		ctx := context.Background()

		err := c.Ping(ctx)
		assert.Equal(t, codes.Unavailable, status.Code(err))

		// the open breaker rejects the request without reaching the node
		err = c.Ping(ctx)
		assert.True(t, errors.Is(err, gobreaker.ErrOpenState))
		assert.True(t, client.IsRPCError(err))
		assert.Equal(t, int32(1), handler.pings.Load())

		failing.Store(false)
		time.Sleep(restoreTimeout + 100*time.Millisecond)

		require.NoError(t, c.Ping(ctx))
		require.NoError(t, c.Ping(ctx))
		assert.Equal(t, int32(3), handler.pings.Load())
	})

	for _, code := range []codes.Code{
		codes.Canceled,
		codes.InvalidArgument,
		codes.NotFound,
		codes.Unimplemented,
		codes.OutOfRange,
	} {
		code := code
		t.Run(code.String()+" does not open the breaker", func(t *testing.T) {
			handler := &accessServer{
				ping: func(context.Context) error {
					return status.Error(code, code.String())
				},
			}
			c := dialAccessServer(t, handler, client.WithCircuitBreaker(1, time.Minute))

			for i := 0; i < 3; i++ {
				err := c.Ping(context.Background())
				assert.Equal(t, code, status.Code(err))
				assert.False(t, errors.Is(err, gobreaker.ErrOpenState))
			}
			assert.Equal(t, int32(3), handler.pings.Load())
		})
	}

	t.Run("zero failures disables the breaker", func(t *testing.T) {
		handler := &accessServer{
			ping: func(context.Context) error {
				return status.Error(codes.Unavailable, "node is down")
			},
		}
		c := dialAccessServer(t, handler, client.WithCircuitBreaker(0, time.Minute))

		for i := 0; i < 3; i++ {
			assert.Equal(t, codes.Unavailable, status.Code(c.Ping(context.Background())))
		}
		assert.Equal(t, int32(3), handler.pings.Load())
	})
}

func TestRateLimit(t *testing.T) {
	handler := &accessServer{}
	c := dialAccessServer(t, handler, client.WithRateLimit(rate.Limit(1), 1))

	require.NoError(t, c.Ping(context.Background()))

	// the next token is a second away, past the deadline of the request
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := c.Ping(ctx)
	require.Error(t, err)
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))
	assert.Equal(t, int32(1), handler.pings.Load())
}

func TestGRPCMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	handler := &accessServer{}
	handler.ping = func(context.Context) error {
		if handler.pings.Load() == 2 {
			return status.Error(codes.Unavailable, "node is down")
		}
		return nil
	}
	c := dialAccessServer(t, handler, client.WithGRPCMetrics(registry))

	require.NoError(t, c.Ping(context.Background()))
	require.Error(t, c.Ping(context.Background()))

	families, err := registry.Gather()
	require.NoError(t, err)

	handled := make(map[string]float64)
	var histogramSeen bool
	for _, family := range families {
		switch family.GetName() {
		case "grpc_client_handled_total":
			for _, metric := range family.GetMetric() {
				labels := make(map[string]string)
				for _, label := range metric.GetLabel() {
					labels[label.GetName()] = label.GetValue()
				}
				if labels["grpc_method"] == "Ping" {
					handled[labels["grpc_code"]] += metric.GetCounter().GetValue()
				}
			}
		case "grpc_client_handling_seconds":
			histogramSeen = true
		}
	}

	assert.Equal(t, map[string]float64{"OK": 1, "Unavailable": 1}, handled)
	assert.True(t, histogramSeen)
}
