package auth

import "errors"

// Signup errors. Uniqueness violations are user-correctable and are
// collected together rather than short-circuited, so a caller can report
// "username taken AND email registered" in one response.
var (
	ErrUsernameTaken = errors.New("username already taken, please try a different one")
	ErrEmailTaken    = errors.New("this email address has already been registered with a different account")
)

// Login errors. ErrInvalidCredentials is deliberately identical for a
// missing account and a wrong password to resist account enumeration.
var (
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrBadIdentifier      = errors.New("exactly one of username or email must be supplied")
)

// Verification errors.
var (
	ErrOTPExpired        = errors.New("one-time password expired, please request a new code")
	ErrOTPMismatch       = errors.New("incorrect code")
	ErrCodeGeneration    = errors.New("failed to generate one-time password")
	ErrEmailSendFailed   = errors.New("failed to send verification email")
	ErrAccountNotFound   = errors.New("account not found")
	ErrMissingTOTPSecret = errors.New("account has no TOTP secret")
)
