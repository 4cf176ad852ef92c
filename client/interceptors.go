package client

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// breakerSuccessCodes are failures caused by the request rather than the
// access node. They do not count towards opening the circuit breaker.
var breakerSuccessCodes = map[codes.Code]struct{}{
	codes.Canceled:        {},
	codes.InvalidArgument: {},
	codes.NotFound:        {},
	codes.Unimplemented:   {},
	codes.OutOfRange:      {},
}

// unaryInterceptors returns the interceptors installed on connections
// dialed by NewClient, outermost first.
func (c *Client) unaryInterceptors() []grpc.UnaryClientInterceptor {
	var interceptors []grpc.UnaryClientInterceptor
	if c.rateLimiter != nil {
		interceptors = append(interceptors, createClientRateLimitInterceptor(c.rateLimiter))
	}
	if c.grpcMetrics != nil {
		interceptors = append(interceptors, c.grpcMetrics.UnaryClientInterceptor())
	}
	if c.circuitBreaker != nil {
		interceptors = append(interceptors, createCircuitBreakerInterceptor(c.circuitBreaker))
	}
	if c.requestTimeout > 0 {
		interceptors = append(interceptors, createClientTimeoutInterceptor(c.requestTimeout))
	}
	return interceptors
}

// createClientTimeoutInterceptor bounds every request to timeout.
func createClientTimeoutInterceptor(timeout time.Duration) grpc.UnaryClientInterceptor {
	clientTimeoutInterceptor := func(
		ctx context.Context,
		method string,
		req interface{},
		reply interface{},
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		return invoker(ctxWithTimeout, method, req, reply, cc, opts...)
	}

	return clientTimeoutInterceptor
}

// newCircuitBreaker opens after maxFailures consecutive failed requests and
// lets a single request through once restoreTimeout has passed.
func newCircuitBreaker(maxFailures uint32, restoreTimeout time.Duration) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "access_client",
		MaxRequests: 1,
		Timeout:     restoreTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			_, ok := breakerSuccessCodes[status.Code(err)]
			return ok
		},
	})
}

// createCircuitBreakerInterceptor fails requests with gobreaker.ErrOpenState
// without reaching the access node while the breaker is open.
func createCircuitBreakerInterceptor(breaker *gobreaker.CircuitBreaker) grpc.UnaryClientInterceptor {
	circuitBreakerInterceptor := func(
		ctx context.Context,
		method string,
		req interface{},
		reply interface{},
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		_, err := breaker.Execute(func() (interface{}, error) {
			return nil, invoker(ctx, method, req, reply, cc, opts...)
		})
		return err
	}

	return circuitBreakerInterceptor
}

// createClientRateLimitInterceptor delays requests until limiter allows them.
// A request whose context ends first fails with the matching status.
func createClientRateLimitInterceptor(limiter *rate.Limiter) grpc.UnaryClientInterceptor {
	rateLimitInterceptor := func(
		ctx context.Context,
		method string,
		req interface{},
		reply interface{},
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		if err := limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return status.FromContextError(ctx.Err()).Err()
			}
			return status.Errorf(codes.ResourceExhausted, "%s rate limit reached: %v", method, err)
		}

		return invoker(ctx, method, req, reply, cc, opts...)
	}

	return rateLimitInterceptor
}
