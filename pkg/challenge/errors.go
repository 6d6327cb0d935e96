package challenge

import "errors"

var (
	ErrNotFound          = errors.New("challenge not found or expired")
	ErrFailedToStore     = errors.New("failed to store challenge")
	ErrFailedToFetch     = errors.New("failed to fetch challenge")
	ErrFailedToDelete    = errors.New("failed to delete challenge")
	ErrInvalidTTL        = errors.New("challenge TTL must be positive")
	ErrIncompleteContext = errors.New("signup context incomplete")
)
