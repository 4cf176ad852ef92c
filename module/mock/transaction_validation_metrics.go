package mock

import mock "github.com/stretchr/testify/mock"

// TransactionValidationMetrics is a mock type for the TransactionValidationMetrics type
type TransactionValidationMetrics struct {
	mock.Mock
}

// TransactionValidated provides a mock function with given fields:
func (_m *TransactionValidationMetrics) TransactionValidated() {
	_m.Called()
}

// TransactionValidationFailed provides a mock function with given fields: reason
func (_m *TransactionValidationMetrics) TransactionValidationFailed(reason string) {
	_m.Called(reason)
}

// TransactionValidationSkipped provides a mock function with given fields:
func (_m *TransactionValidationMetrics) TransactionValidationSkipped() {
	_m.Called()
}

type mockConstructorTestingTNewTransactionValidationMetrics interface {
	mock.TestingT
	Cleanup(func())
}

// NewTransactionValidationMetrics creates a new instance of TransactionValidationMetrics. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewTransactionValidationMetrics(t mockConstructorTestingTNewTransactionValidationMetrics) *TransactionValidationMetrics {
	mock := &TransactionValidationMetrics{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
