// Package password provides memory-hard password hashing and a fast
// one-way fingerprint for verification artifacts.
//
// Hashing uses argon2id with RFC 9106 parameters and produces
// self-describing PHC strings, so stored hashes survive future parameter
// changes: verification always recomputes with the parameters embedded
// in the stored string.
//
// Because a single derivation costs tens of milliseconds of CPU and
// 64 MiB of memory, the Hasher bounds concurrent derivations with a slot
// pool. Request handlers should pass their request context so a caller
// that gives up does not hold a slot.
//
//	hasher := password.New()
//	hash, err := hasher.Hash(ctx, "s3cret")
//	ok, err := hasher.Verify(ctx, "s3cret", hash)
//
// Fingerprint is deliberately cheap (a plain SHA-512 digest) and is meant
// for equality checks on short-lived, high-entropy values such as one-time
// codes.
package password
