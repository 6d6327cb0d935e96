// Package totp implements RFC 6238 time-based one-time passwords over
// the RFC 4226 HOTP truncation, parameterized by HMAC algorithm, digit
// count, time step and clock-skew tolerance.
//
// Defaults differ from the RFC 6238 appendix values on purpose: codes
// here are delivered by e-mail rather than read from an authenticator
// app, so the package defaults to HMAC-SHA512 with a 60-second step.
// All parameters can be overridden per call through Params.
//
// The package holds no state. Secrets are Base32 strings owned by the
// account record; generation is a pure function of (secret, time):
//
//	secret, _ := totp.GenerateSecretKey()
//	code, err := totp.GenerateCode(totp.Params{Secret: secret})
//
// ValidateCode recomputes adjacent time steps to absorb clock skew.
// Callers that stored a one-way artifact of the issued code should
// compare against that artifact instead and skip recomputation, which
// keeps the store's TTL as the single expiry authority.
package totp
