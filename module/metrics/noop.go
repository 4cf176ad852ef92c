package metrics

import (
	"time"

	"github.com/onflow/flow-client-go/module"
)

type NoopCollector struct{}

var (
	_ module.AccessClientMetrics          = (*NoopCollector)(nil)
	_ module.TransactionValidationMetrics = (*NoopCollector)(nil)
)

func NewNoopCollector() *NoopCollector {
	nc := &NoopCollector{}
	return nc
}

func (nc *NoopCollector) RequestCompleted(method string, duration time.Duration, err error) {}
func (nc *NoopCollector) TransactionSubmitted()                                            {}
func (nc *NoopCollector) TransactionSealed(duration time.Duration)                         {}
func (nc *NoopCollector) TransactionExpired()                                              {}
func (nc *NoopCollector) TransactionValidated()                                            {}
func (nc *NoopCollector) TransactionValidationFailed(reason string)                        {}
func (nc *NoopCollector) TransactionValidationSkipped()                                    {}
