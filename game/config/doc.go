// Package config provides NPC content loading for the metaverse server.
//
// The config package implements:
//   - Loading the NPC roster and scripted responses from a JSON directory
//   - An embedded default roster used when no override file is present
//   - Structural validation of loaded content
//
// Content Files:
//
// A deployment may place an npcs.json in the configuration directory to
// replace the built-in roster. The file holds an array of NPC records,
// each carrying the public fields (id, name, position, color, voiceGender,
// dialogue) plus a per-category responses table consumed only by the
// dialogue matcher.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//	directory := manager.NPCs()
//
// Content is loaded once at startup and never mutated at runtime.
package config
