// Package credential owns the access/refresh credential pair and its
// persistence. The pair is created on login, replaced on a successful
// refresh, and destroyed on logout or terminal refresh failure.
//
// # Architecture boundaries
//
// Stores persist the pair and nothing else. No expiry checking, no token
// decoding, no network calls: validity is always the caller's judgement.
//
// # What this package must NOT do
//
//   - Duplicate the pair outside the configured store.
//   - Share a FileStore between client instances on different hosts; the
//     contract is survives-restart on the same machine, not distribution.
package credential
