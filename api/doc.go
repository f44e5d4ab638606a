// Package api provides the HTTP surface of the metaverse server.
//
// The api package implements:
//   - The WebSocket upgrade endpoint
//   - A read-only stats endpoint
//   - Prometheus metrics exposition
//   - Static file serving for the client assets
//
// Endpoints:
//
//   - GET /ws        - upgrade to the realtime WebSocket protocol
//   - GET /api/stats - current player count, NPC count, chat history
//     length, and process uptime in seconds
//   - GET /metrics   - Prometheus exposition format
//   - GET /          - static client assets
//
// The stats endpoint never mutates core state; it reads counters the
// world exposes for exactly this purpose.
package api
