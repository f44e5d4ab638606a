// Package chat provides the bounded chat history for the metaverse server.
//
// The chat package implements:
//   - Immutable chat entries for player messages and system announcements
//   - A thread-safe, append-only ledger bounded to the most recent entries
//   - Retrieval of the trailing window used to seed new connections
//
// Bounding:
//
// The ledger holds at most DefaultLimit entries. When an append would
// exceed the bound, the oldest entry is evicted first. Append is the only
// mutator; entries are never edited or deleted individually.
//
// Concurrency:
//
// All ledger operations take an internal lock so the dispatch loop and the
// stats endpoint can use the same instance.
package chat
