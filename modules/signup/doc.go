// Package signup exposes the account signup, login, and email
// verification flow as a JSON HTTP API.
//
// The router maps domain errors onto transport statuses: collected
// field violations answer 400 with a per-field error object, bad
// credentials and code mismatches answer 401, an expired challenge
// answers 400 with a resend instruction, and everything else is a 500.
// The signup response carries a signup_id the client passes back to
// /otp and /resend-otp to correlate the flow.
package signup
