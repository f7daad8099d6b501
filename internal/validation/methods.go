package validation

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Validator defines validation methods
type Validator struct {
	Errors map[string]string
}

// New creates a new validator
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid checks if there are any validation errors
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records message for field unless the field already has one.
func (v *Validator) AddError(field, message string) {
	if _, exists := v.Errors[field]; !exists {
		v.Errors[field] = message
	}
}

// Check adds an error if the condition is false
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// FirstError returns "field: message" for the alphabetically first failing
// field, or "" when the validator is valid.
func (v *Validator) FirstError() string {
	if v.Valid() {
		return ""
	}
	fields := make([]string, 0, len(v.Errors))
	for field := range v.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fmt.Sprintf("%s: %s", fields[0], v.Errors[fields[0]])
}

// Required checks that a string is not blank.
func (v *Validator) Required(field, value string) {
	v.Check(strings.TrimSpace(value) != "", field, "must not be empty")
}

// MaxLength checks if a string has at most n bytes
func (v *Validator) MaxLength(field string, value string, n int) {
	v.Check(len(value) <= n, field, fmt.Sprintf("must not be more than %d characters long", n))
}

// Positive checks that a number is present, finite and strictly greater than zero.
func (v *Validator) Positive(field string, value *float64) {
	if value == nil {
		v.AddError(field, "is required")
		return
	}
	if math.IsNaN(*value) || math.IsInf(*value, 0) {
		v.AddError(field, "must be a finite number")
		return
	}
	v.Check(*value > 0, field, "must be greater than zero")
}
