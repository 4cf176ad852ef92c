package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"google.golang.org/grpc/status"

	"github.com/onflow/flow-client-go/module"
)

// AccessClientCollector collects metrics of the requests a client sends to an
// access node.
type AccessClientCollector struct {
	requests              *prometheus.CounterVec
	requestDuration       *prometheus.HistogramVec
	transactionsSubmitted prometheus.Counter
	transactionsExpired   prometheus.Counter
	timeToSeal            prometheus.Histogram
}

var _ module.AccessClientMetrics = (*AccessClientCollector)(nil)

func NewAccessClientCollector(registerer prometheus.Registerer) *AccessClientCollector {
	factory := promauto.With(registerer)

	return &AccessClientCollector{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceClient,
			Subsystem: subsystemAccessAPI,
			Name:      "requests_total",
			Help:      "the number of access API requests by method and outcome",
		}, []string{LabelMethod, LabelOutcome, LabelCode}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespaceClient,
			Subsystem: subsystemAccessAPI,
			Name:      "request_duration_seconds",
			Help:      "the duration of access API requests",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{LabelMethod}),
		transactionsSubmitted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceClient,
			Subsystem: subsystemTransactions,
			Name:      "submitted_total",
			Help:      "the number of transactions accepted by the access node",
		}),
		transactionsExpired: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceClient,
			Subsystem: subsystemTransactions,
			Name:      "expired_total",
			Help:      "the number of submitted transactions that expired before being sealed",
		}),
		timeToSeal: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespaceClient,
			Subsystem: subsystemTransactions,
			Name:      "time_to_seal_seconds",
			Help:      "the time between submitting a transaction and observing its seal",
			Buckets:   []float64{1, 2, 5, 10, 20, 30, 60, 120, 300},
		}),
	}
}

func (ac *AccessClientCollector) RequestCompleted(method string, duration time.Duration, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}

	ac.requests.WithLabelValues(method, outcome, status.Code(err).String()).Inc()
	ac.requestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

func (ac *AccessClientCollector) TransactionSubmitted() {
	ac.transactionsSubmitted.Inc()
}

func (ac *AccessClientCollector) TransactionSealed(duration time.Duration) {
	ac.timeToSeal.Observe(duration.Seconds())
}

func (ac *AccessClientCollector) TransactionExpired() {
	ac.transactionsExpired.Inc()
}
