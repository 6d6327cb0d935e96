// Package async provides a minimal future abstraction for dispatching
// CPU-bound work off a request-handling goroutine.
//
// The credential flow uses it to run memory-hard password derivations
// concurrently with the rest of a signup's I/O:
//
//	fut := async.Async(ctx, plaintext, hasher.Hash)
//	// ... other suspending work ...
//	hash, err := fut.Await()
//
// Concurrency limits belong to the callee (the hasher bounds its own
// slots); Async itself spawns exactly one goroutine per call.
package async
