package account

// Operation names and results reported to MetricsCollector.
const (
	OperationRegister = "register"
	OperationList     = "list"
	OperationRemove   = "remove"
	OperationVerify   = "verify"

	ResultSuccess  = "success"
	ResultInvalid  = "invalid"
	ResultConflict = "conflict"
	ResultNotFound = "not_found"
	ResultFailure  = "failure"
	ResultError    = "error"

	ResultUnavailable = "unavailable"
)

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAccountOperation(string, string) {}
