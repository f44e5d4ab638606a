// Package world provides the connection lifecycle controller for the
// metaverse server.
//
// The world package implements:
//   - The per-connection protocol state machine (connecting, active, closed)
//   - Dispatch of inbound frames by message kind
//   - Join validation, session creation, and late-join synchronization
//   - Movement updates with animation inference and speed advisories
//   - Chat relay through the bounded ledger
//   - Scripted NPC dialogue replies
//   - Teardown broadcasts shared by explicit closes and the idle reaper
//
// Entry Points:
//
// The transport drives a World through three calls: HandleConnect when a
// socket is admitted, HandleMessage for every inbound frame, and
// HandleDisconnect when the socket closes. IdleConnections feeds the
// reaper. All four are invoked from the hub's single dispatch loop, so
// handlers run one frame to completion before the next.
//
// A World sends through the Broadcaster interface it is constructed with;
// it never touches sockets directly, which keeps the state machine
// testable against a recording fake.
//
// Error Policy:
//
// Protocol errors (unparseable frames, unknown kinds) and join validation
// failures are reported to the offending connection with an error event.
// Movement, action, and chat problems are dropped silently to tolerate
// transient client glitches without reply flooding. Nothing here is fatal
// to the process.
package world
