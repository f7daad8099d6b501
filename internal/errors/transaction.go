package errors

var (
	ErrInvalidBody = &DomainError{
		Code:    "INVALID_BODY",
		Message: "invalid request body",
		Kind:    KindValidation,
	}
	ErrInvalidAmount = &DomainError{
		Code:    "INVALID_AMOUNT",
		Message: "amount must be a positive number",
		Kind:    KindValidation,
	}
)
