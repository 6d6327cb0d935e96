// Package auth implements the credential and email-verification core:
// local signup and login over argon2id password hashes, and the
// one-time-password challenge lifecycle backed by an expiring
// challenge store.
//
// # Architecture
//
// CredentialService owns accounts: signup collects every uniqueness
// violation before giving up, hashes the password on a bounded worker
// pool, and provisions the account's immutable TOTP secret. Login is
// deliberately uninformative about what was wrong.
//
// VerificationService owns the challenge state machine. A code's
// fingerprint (never the code) is stored with a fixed TTL; issuing
// again overwrites, verifying deletes, expiring is silent. The store's
// TTL is the only expiry authority.
//
// Both services take their collaborators (Storage, challenge.Store,
// email.EmailSender) as constructor arguments, so tests substitute
// in-memory implementations and no package-level state exists.
//
// # Error Handling
//
// Domain outcomes are sentinel errors (ErrOTPExpired, ErrOTPMismatch,
// ErrInvalidCredentials, ...) matched with errors.Is; infrastructure
// failures are wrapped with context and bubble up unretried. Retry
// policy belongs to the caller: re-running Issue rotates the code, so
// the core never does it on its own.
package auth
