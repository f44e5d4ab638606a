// Package protocol defines the wire protocol for the metaverse server.
//
// The protocol package implements:
//   - The message envelope shared by every inbound and outbound frame
//   - The closed sets of inbound and outbound message kinds
//   - Typed payload structs for each kind
//   - Validation of join and movement payloads
//   - Chat text sanitization
//
// Envelope:
//
// Every frame is JSON of the form {"kind": string, "payload": object}.
// Inbound payloads are decoded lazily from the envelope's raw payload so
// the dispatcher can select a handler by kind before committing to a
// payload shape.
//
// Validation:
//
// ValidateJoin and ValidateMove are pure predicates over decoded payloads.
// They return false on any missing or non-finite field; there is no
// partial acceptance. Wire vectors use pointer components so an absent
// coordinate is distinguishable from zero.
//
// Sanitization:
//
// SanitizeChatMessage HTML-escapes angle brackets and truncates the result
// to 100 characters. Callers treat an empty result as "nothing to
// broadcast".
package protocol
