// Package session provides the player session registry for the metaverse
// server.
//
// The session package implements:
//   - The authoritative per-connection player record
//   - Thread-safe session storage keyed by connection identity
//   - In-place position updates on accepted movement messages
//   - Snapshots of other players for late-join synchronization
//   - Idle detection for the connection reaper
//
// Lifecycle:
//
// A session is created only after a validated playerJoin, exactly one per
// connection. It is mutated in place on playerMove and removed on
// disconnect, whether client-initiated or reaper-forced. Creating a second
// session for the same connection fails with ErrSessionAlreadyExists.
//
// Concurrency:
//
// The registry is thread-safe. Mutation happens on the hub's dispatch
// loop; the stats endpoint and metrics collectors read counts
// concurrently.
package session
