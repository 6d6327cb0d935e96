// Package storage provides the PostgreSQL implementation of the
// auth.Storage persistence contract.
//
// Unique violations on the accounts table are translated to
// auth.ErrUsernameTaken / auth.ErrEmailTaken by constraint name, so the
// database remains the final arbiter for duplicate signups that race
// past the application-level checks.
package storage
