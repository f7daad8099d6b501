package validation

const (
	// bcrypt only hashes the first 72 bytes; longer passwords are rejected
	// rather than silently truncated.
	MaxPasswordLength = 72

	MaxNameLength     = 255
	MaxUsernameLength = 255
)
