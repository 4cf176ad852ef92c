package client

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/onflow/flow-client-go/access"
)

// RPCError is returned when a request to the access node fails.
type RPCError struct {
	Method  string
	Code    codes.Code
	Message string
	Err     error
}

func newRPCError(method string, err error) *RPCError {
	st, _ := status.FromError(err)
	return &RPCError{
		Method:  method,
		Code:    st.Code(),
		Message: st.Message(),
		Err:     err,
	}
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("%s failed (%s): %s", e.Method, e.Code, e.Message)
}

func (e *RPCError) Unwrap() error {
	return e.Err
}

// GRPCStatus returns the gRPC status of the failed request.
func (e *RPCError) GRPCStatus() *status.Status {
	return status.New(e.Code, e.Message)
}

// Is reports a NotFound response as access.ErrNotFound.
func (e *RPCError) Is(target error) bool {
	return target == access.ErrNotFound && e.Code == codes.NotFound
}

// IsRPCError returns whether err was caused by a failed request.
func IsRPCError(err error) bool {
	var target *RPCError
	return errors.As(err, &target)
}
