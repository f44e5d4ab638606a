// Package websocket provides the WebSocket transport for the metaverse
// server.
//
// The websocket package implements:
//   - Connection upgrade and per-connection identity assignment
//   - The single dispatch loop serializing all state mutation
//   - Broadcast fan-out with optional sender exclusion
//   - Private sends to individual connections
//   - The idle-connection reaper
//
// Architecture:
//
// The package uses a hub-and-spoke model. Each connection runs a read pump
// and a write pump; the central Hub runs one event loop that owns the
// connection set. Registration, inbound frames, disconnects, and reaper
// ticks are all processed on that loop, so the Handler behind it never
// sees two events at once and shared state needs no coordination beyond
// what the loop provides.
//
// Message Protocol:
//
// Every frame in both directions is a JSON envelope {kind, payload}
// (see game/protocol). Outbound frames are serialized once per broadcast
// and the identical bytes are queued to every recipient.
//
// Delivery:
//
// Sends are fire-and-forget. Each client has a bounded send buffer drained
// by its write pump; a frame that cannot be queued is dropped and counted
// rather than blocking the loop or evicting the client. Per-connection
// ordering follows queue order.
//
// Connection Lifecycle:
//
// 1. Client connects and is assigned a random connection id
// 2. Handler.HandleConnect sends the initial state
// 3. Inbound frames flow through Handler.HandleMessage
// 4. Close (client-initiated or reaper-forced) runs Handler.HandleDisconnect
//
// Usage:
//
//	hub := websocket.NewHub(10 * time.Second)
//	hub.SetHandler(world)
//	go hub.Run(ctx)
//	router.HandleFunc("/ws", hub.ServeWS)
package websocket
