package mock

import (
	time "time"

	mock "github.com/stretchr/testify/mock"
)

// AccessClientMetrics is a mock type for the AccessClientMetrics type
type AccessClientMetrics struct {
	mock.Mock
}

// RequestCompleted provides a mock function with given fields: method, duration, err
func (_m *AccessClientMetrics) RequestCompleted(method string, duration time.Duration, err error) {
	_m.Called(method, duration, err)
}

// TransactionExpired provides a mock function with given fields:
func (_m *AccessClientMetrics) TransactionExpired() {
	_m.Called()
}

// TransactionSealed provides a mock function with given fields: duration
func (_m *AccessClientMetrics) TransactionSealed(duration time.Duration) {
	_m.Called(duration)
}

// TransactionSubmitted provides a mock function with given fields:
func (_m *AccessClientMetrics) TransactionSubmitted() {
	_m.Called()
}

type mockConstructorTestingTNewAccessClientMetrics interface {
	mock.TestingT
	Cleanup(func())
}

// NewAccessClientMetrics creates a new instance of AccessClientMetrics. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewAccessClientMetrics(t mockConstructorTestingTNewAccessClientMetrics) *AccessClientMetrics {
	mock := &AccessClientMetrics{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
