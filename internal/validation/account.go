package validation

import "antifraud/internal/models"

// AccountRegistration validates a registration request.
func (v *Validator) AccountRegistration(input *models.CreateAccountInput) {
	v.Required("name", input.Name)
	v.Required("username", input.Username)
	v.Required("password", input.Password)

	v.MaxLength("name", input.Name, MaxNameLength)
	v.MaxLength("username", input.Username, MaxUsernameLength)
	v.MaxLength("password", input.Password, MaxPasswordLength)
}
