package antifraud

import "antifraud/internal/models"

// Upper bounds (inclusive) of the ALLOWED and MANUAL_PROCESSING tiers.
const (
	MaxAllowedAmount = 200.0
	MaxManualAmount  = 1500.0
)

// Classify maps a validated, positive amount to its verdict.
func Classify(amount float64) models.Verdict {
	switch {
	case amount <= MaxAllowedAmount:
		return models.VerdictAllowed
	case amount <= MaxManualAmount:
		return models.VerdictManualProcessing
	default:
		return models.VerdictProhibited
	}
}
