package models

// Verdict is the risk tier assigned to a proposed transaction.
type Verdict string

const (
	VerdictAllowed          Verdict = "ALLOWED"
	VerdictManualProcessing Verdict = "MANUAL_PROCESSING"
	VerdictProhibited       Verdict = "PROHIBITED"
)

// TransactionRequest is the body of a classification call. Amount is a
// pointer so that a missing amount can be told apart from zero.
type TransactionRequest struct {
	Amount *float64 `json:"amount"`
}

type TransactionResponse struct {
	Result Verdict `json:"result"`
}
