package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/voxelverse/metaverse-server/game/npc"
)

var ErrInvalidContent = errors.New("invalid NPC content")

// npcFileName is the override file looked up inside the config directory.
const npcFileName = "npcs.json"

//go:embed defaults/npcs.json
var defaultContent []byte

// npcEntry is the on-disk NPC record: the public NPC fields plus the
// scripted responses stripped off before anything reaches clients.
type npcEntry struct {
	npc.NPC
	Responses npc.ResponseSet `json:"responses,omitempty"`
}

type contentFile struct {
	NPCs []npcEntry `json:"npcs"`
}

// Manager loads and holds the NPC content for the process lifetime.
type Manager struct {
	configDir string
	directory *npc.Directory
}

// NewManager loads NPC content from configDir/npcs.json when present,
// falling back to the embedded default roster otherwise.
func NewManager(configDir string) (*Manager, error) {
	m := &Manager{configDir: configDir}

	data := defaultContent
	if configDir != "" {
		path := filepath.Join(configDir, npcFileName)
		if fileData, err := os.ReadFile(path); err == nil {
			log.Printf("Loading NPC content from %s", path)
			data = fileData
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read NPC content: %w", err)
		}
	}

	directory, err := parseContent(data)
	if err != nil {
		return nil, err
	}
	m.directory = directory
	return m, nil
}

// NPCs returns the loaded directory.
func (m *Manager) NPCs() *npc.Directory {
	return m.directory
}

// parseContent decodes and validates a content file, splitting the public
// roster from the response tables.
func parseContent(data []byte) (*npc.Directory, error) {
	var file contentFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse NPC content: %w", err)
	}
	if len(file.NPCs) == 0 {
		return nil, fmt.Errorf("%w: no NPCs defined", ErrInvalidContent)
	}

	npcs := make([]npc.NPC, 0, len(file.NPCs))
	responses := make(map[string]npc.ResponseSet, len(file.NPCs))
	seen := make(map[string]bool, len(file.NPCs))

	for i, entry := range file.NPCs {
		if entry.ID == "" {
			return nil, fmt.Errorf("%w: NPC at index %d has no id", ErrInvalidContent, i)
		}
		if entry.Name == "" {
			return nil, fmt.Errorf("%w: NPC %q has no name", ErrInvalidContent, entry.ID)
		}
		if seen[entry.ID] {
			return nil, fmt.Errorf("%w: duplicate NPC id %q", ErrInvalidContent, entry.ID)
		}
		seen[entry.ID] = true

		npcs = append(npcs, entry.NPC)
		if len(entry.Responses) > 0 {
			responses[entry.ID] = entry.Responses
		}
	}

	return npc.NewDirectory(npcs, responses), nil
}
