package password

import "errors"

var (
	ErrFailedToGenerateSalt = errors.New("failed to generate salt")
	ErrMalformedHash        = errors.New("malformed password hash")
	ErrUnsupportedAlgorithm = errors.New("unsupported hash algorithm")
	ErrIncompatibleVersion  = errors.New("incompatible argon2 version")
	ErrHasherBusy           = errors.New("hasher worker pool unavailable")
)
