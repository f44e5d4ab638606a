// Package npc provides the non-player characters and the scripted
// dialogue matcher for the metaverse server.
//
// The npc package implements:
//   - The static NPC record broadcast to clients at connect time
//   - A directory for O(1) lookup by NPC id, preserving load order
//   - The deterministic phrase matcher for player speech near an NPC
//
// Matching:
//
// Player utterances are normalized (lowercased, stripped of .,!?;:
// punctuation, trimmed) and tested by substring containment against fixed
// phrase alternatives. The four question categories are evaluated in
// priority order: event, when, where, other. The first category whose
// response is configured and whose phrases match wins. An unmatched
// utterance degrades to a fallback that echoes the original text; it is
// never an error.
//
// The matcher is pure and memoryless: the same (NPC, text) pair always
// yields the same (response, matched) result, and nothing carries over
// between utterances.
//
// Content:
//
// NPC records and their per-category responses are configuration data
// loaded by game/config; this package never mutates them at runtime. The
// response table is held by the directory and is not part of the NPC wire
// shape, so scripted answers never leak into initialState.
package npc
