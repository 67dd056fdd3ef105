package metrics

// Metric names
const (
	MetricNameRoundsTotal        = "gateway_rounds_total"
	MetricNameWalletCallsTotal   = "gateway_wallet_calls_total"
	MetricNameWalletCallDuration = "gateway_wallet_call_duration_seconds"
	MetricNameActiveSessions     = "gateway_active_sessions"
	MetricNameConnectionsTotal   = "gateway_connections_total"
)

// Help texts
const (
	HelpTextRoundsTotal        = "Spin rounds completed, by terminal state"
	HelpTextWalletCallsTotal   = "Outbound wallet calls, by transaction type and outcome"
	HelpTextWalletCallDuration = "Wallet call latency in seconds, by transaction type"
	HelpTextActiveSessions     = "Currently registered player sessions"
	HelpTextConnectionsTotal   = "Connection attempts, by result"
)

// Label names
const (
	LabelState   = "state"
	LabelType    = "type"
	LabelOutcome = "outcome"
	LabelResult  = "result"
)

// Label values
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"

	ConnectionAccepted = "accepted"
	ConnectionRefused  = "refused"
)

// WalletLatencyBuckets covers the expected partner wallet latency range.
var WalletLatencyBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
