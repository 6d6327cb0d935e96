// Package challenge provides keyed, expiring, single-use storage for
// in-flight one-time-password challenges.
//
// Each account has at most one live challenge: storing a new artifact
// overwrites the old one, which is exactly the "resend invalidates the
// previous code" contract. The backing store's TTL is the single expiry
// authority; callers never track deadlines themselves.
//
// Two implementations are provided. RedisStore is the production backend
// over a shared go-redis client. MemoryStore mirrors the same observable
// semantics in-process for local development and service tests, with an
// injectable clock to simulate expiry.
//
// Keys are account-scoped (otp:artifact:<id>, otp:signup:<id>), so
// verification flows for different accounts never interfere and any
// number of signups can be in flight at once.
package challenge
