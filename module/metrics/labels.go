package metrics

const (
	namespaceClient = "flow_client"

	subsystemAccessAPI             = "access_api"
	subsystemTransactions          = "transactions"
	subsystemTransactionValidation = "transaction_validation"
)

const (
	LabelMethod  = "method"
	LabelOutcome = "outcome"
	LabelCode    = "code"
	LabelReason  = "reason"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
