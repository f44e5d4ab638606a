package npc

import (
	"errors"

	"github.com/voxelverse/metaverse-server/game/protocol"
)

var ErrNPCNotFound = errors.New("npc not found")

// NPC is a static character in the world. This is the exact shape sent to
// clients in initialState; the response table lives in the Directory.
type NPC struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Position    protocol.Vector3 `json:"position"`
	Color       string           `json:"color"`
	VoiceGender string           `json:"voiceGender"`
	Dialogue    string           `json:"dialogue"`
}

// Directory holds the loaded NPCs and their scripted responses for the
// lifetime of the process.
type Directory struct {
	npcs      []NPC
	byID      map[string]*NPC
	responses map[string]ResponseSet
}

// NewDirectory builds a directory from loaded content. Load order is
// preserved for the initialState listing.
func NewDirectory(npcs []NPC, responses map[string]ResponseSet) *Directory {
	d := &Directory{
		npcs:      npcs,
		byID:      make(map[string]*NPC, len(npcs)),
		responses: responses,
	}
	for i := range d.npcs {
		d.byID[d.npcs[i].ID] = &d.npcs[i]
	}
	return d
}

// Lookup returns the NPC with the given id.
func (d *Directory) Lookup(id string) (*NPC, bool) {
	n, ok := d.byID[id]
	return n, ok
}

// All returns the NPCs in load order.
func (d *Directory) All() []NPC {
	return d.npcs
}

// Count returns the number of loaded NPCs.
func (d *Directory) Count() int {
	return len(d.npcs)
}

// Respond runs the dialogue matcher for the given NPC against a player
// utterance. It fails only when the NPC id is unknown; an unmatched
// utterance still produces the fallback response with matched=false.
func (d *Directory) Respond(npcID, text string) (response string, matched bool, err error) {
	if _, ok := d.byID[npcID]; !ok {
		return "", false, ErrNPCNotFound
	}
	response, matched = Respond(d.responses[npcID], text)
	return response, matched, nil
}
