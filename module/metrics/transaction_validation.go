package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/onflow/flow-client-go/module"
)

// TransactionValidationCollector the metrics for transaction validation functionality
type TransactionValidationCollector struct {
	transactionValidated         prometheus.Counter
	transactionValidationSkipped prometheus.Counter
	transactionValidationFailed  *prometheus.CounterVec
}

// interface check
var _ module.TransactionValidationMetrics = (*TransactionValidationCollector)(nil)

// NewTransactionValidationCollector creates new instance of TransactionValidationCollector
// registered with the given registerer.
func NewTransactionValidationCollector(registerer prometheus.Registerer) *TransactionValidationCollector {
	factory := promauto.With(registerer)

	return &TransactionValidationCollector{
		transactionValidated: factory.NewCounter(prometheus.CounterOpts{
			Name:      "successes_total",
			Namespace: namespaceClient,
			Subsystem: subsystemTransactionValidation,
			Help:      "counter for the validated transactions",
		}),
		transactionValidationSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name:      "skipped_total",
			Namespace: namespaceClient,
			Subsystem: subsystemTransactionValidation,
			Help:      "counter for the skipped transaction validations",
		}),
		transactionValidationFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Name:      "failures_total",
			Namespace: namespaceClient,
			Subsystem: subsystemTransactionValidation,
			Help:      "counter for the failed transactions validation",
		}, []string{LabelReason}),
	}
}

// TransactionValidated tracks number of successfully validated transactions
func (tc *TransactionValidationCollector) TransactionValidated() {
	tc.transactionValidated.Inc()
}

// TransactionValidationFailed tracks number of validation failed transactions with reason
func (tc *TransactionValidationCollector) TransactionValidationFailed(reason string) {
	tc.transactionValidationFailed.WithLabelValues(reason).Inc()
}

// TransactionValidationSkipped tracks number of skipped transaction validations
func (tc *TransactionValidationCollector) TransactionValidationSkipped() {
	tc.transactionValidationSkipped.Inc()
}
