package module

import (
	"time"
)

// AccessClientMetrics tracks the requests a client sends to an access node.
type AccessClientMetrics interface {
	// RequestCompleted tracks the outcome and the duration of one access API call.
	RequestCompleted(method string, duration time.Duration, err error)

	// TransactionSubmitted tracks the number of transactions accepted by the access node.
	TransactionSubmitted()

	// TransactionSealed tracks the time between the submission of a transaction and its seal.
	TransactionSealed(duration time.Duration)

	// TransactionExpired tracks the number of submitted transactions that expired before being sealed.
	TransactionExpired()
}

// TransactionValidationMetrics tracks the client-side validation of transactions.
type TransactionValidationMetrics interface {
	// TransactionValidated tracks number of successfully validated transactions
	TransactionValidated()
	// TransactionValidationFailed tracks number of validation failed transactions with reason
	TransactionValidationFailed(reason string)
	// TransactionValidationSkipped tracks number of skipped transaction validations
	TransactionValidationSkipped()
}
