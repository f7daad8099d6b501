package validation

import "antifraud/internal/models"

// Transaction validates a classification request.
func (v *Validator) Transaction(req *models.TransactionRequest) {
	v.Positive("amount", req.Amount)
}
