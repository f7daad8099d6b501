package errors

// InvalidAccount returns a validation error describing the offending field.
func InvalidAccount(message string) *DomainError {
	return &DomainError{
		Code:    "INVALID_ACCOUNT",
		Message: message,
		Kind:    KindValidation,
	}
}

var (
	ErrUsernameTaken = &DomainError{
		Code:    "USERNAME_TAKEN",
		Message: "username already exists",
		Kind:    KindConflict,
	}
	ErrAccountNotFound = &DomainError{
		Code:    "ACCOUNT_NOT_FOUND",
		Message: "account not found",
		Kind:    KindNotFound,
	}
	// ErrDirectoryUnavailable means a removal could not be fenced off from
	// the credential cache and was not applied.
	ErrDirectoryUnavailable = &DomainError{
		Code:    "DIRECTORY_UNAVAILABLE",
		Message: "account directory temporarily unavailable",
		Kind:    KindUnavailable,
	}
	ErrInvalidCredentials = &DomainError{
		Code:    "INVALID_CREDENTIALS",
		Message: "invalid credentials",
		Kind:    KindUnauthenticated,
	}
)
