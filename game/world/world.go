package world

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/voxelverse/metaverse-server/game/chat"
	"github.com/voxelverse/metaverse-server/game/npc"
	"github.com/voxelverse/metaverse-server/game/protocol"
	"github.com/voxelverse/metaverse-server/game/session"
	"github.com/voxelverse/metaverse-server/internal/metrics"
)

const (
	// DefaultIdleTimeout is how long a session may go without an accepted
	// movement before the reaper closes its connection.
	DefaultIdleTimeout = 300 * time.Second

	// DefaultMaxMoveDistance is the advisory per-update movement limit in
	// world units. Exceeding it by more than 10% logs a warning; the move
	// is never rejected.
	DefaultMaxMoveDistance = 5.0

	// walkEpsilon is the squared displacement above which a move without
	// an explicit animation state is inferred as walking.
	walkEpsilon = 0.001

	// chatSeedCount is how many ledger entries seed a new connection.
	chatSeedCount = 15
)

// Broadcaster is the outbound side of the transport. Broadcast fans a
// frame out to every open connection except excludeID (empty means no
// exclusion); SendTo targets a single connection. Both are fire-and-forget.
type Broadcaster interface {
	Broadcast(kind string, payload interface{}, excludeID string)
	SendTo(connID string, kind string, payload interface{})
}

// Config carries the tunable limits of the world.
type Config struct {
	IdleTimeout      time.Duration
	MaxMoveDistance  float64
	ChatHistoryLimit int
}

func (c Config) withDefaults() Config {
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = DefaultIdleTimeout
	}
	if c.MaxMoveDistance <= 0 {
		c.MaxMoveDistance = DefaultMaxMoveDistance
	}
	if c.ChatHistoryLimit <= 0 {
		c.ChatHistoryLimit = chat.DefaultLimit
	}
	return c
}

// Stats is the read-only snapshot served by the stats endpoint.
type Stats struct {
	PlayersOnline     int `json:"playersOnline"`
	TotalNPCs         int `json:"totalNPCs"`
	ChatHistoryLength int `json:"chatHistoryLength"`
}

// initialStatePayload seeds a new connection with the static NPC roster
// and the tail of the chat history.
type initialStatePayload struct {
	NPCs        []npc.NPC    `json:"npcs"`
	ChatHistory []chat.Entry `json:"chatHistory"`
}

// World owns the session registry, the chat ledger, and the NPC roster,
// and drives all state transitions for connected clients.
type World struct {
	cfg         Config
	registry    *session.Registry
	ledger      *chat.Ledger
	npcs        *npc.Directory
	broadcaster Broadcaster
	now         func() time.Time
}

// New creates a world around the given NPC roster and broadcaster.
func New(cfg Config, npcs *npc.Directory, broadcaster Broadcaster) *World {
	cfg = cfg.withDefaults()
	return &World{
		cfg:         cfg,
		registry:    session.NewRegistry(),
		ledger:      chat.NewLedger(cfg.ChatHistoryLimit),
		npcs:        npcs,
		broadcaster: broadcaster,
		now:         time.Now,
	}
}

// HandleConnect admits a new connection and sends it the initial state.
// The connection has no session yet; one is created on a valid join.
func (w *World) HandleConnect(connID string) {
	w.broadcaster.SendTo(connID, protocol.KindInitialState, initialStatePayload{
		NPCs:        w.npcs.All(),
		ChatHistory: w.ledger.Recent(chatSeedCount),
	})
	log.Printf("New player connected: %s", connID)
}

// HandleMessage dispatches one inbound frame for a connection.
func (w *World) HandleMessage(connID string, data []byte) {
	var envelope protocol.Envelope
	if err := json.Unmarshal(data, &envelope); err != nil || envelope.Kind == "" {
		metrics.MessagesTotal.WithLabelValues("invalid").Inc()
		log.Printf("Invalid frame from %s: %.120s", connID, data)
		w.sendError(connID, "Invalid JSON message format.")
		return
	}
	metrics.MessagesTotal.WithLabelValues(envelope.Kind).Inc()

	switch envelope.Kind {
	case protocol.KindPlayerJoin:
		w.handleJoin(connID, envelope.Payload)
	case protocol.KindPlayerMove:
		w.handleMove(connID, envelope.Payload)
	case protocol.KindPlayerAction:
		w.handleAction(connID, envelope.Payload)
	case protocol.KindChatMessage:
		w.handleChat(connID, envelope.Payload)
	case protocol.KindNPCInteract:
		w.handleNPCInteract(connID, envelope.Payload)
	case protocol.KindNPCUserSpeech:
		w.handleNPCSpeech(connID, envelope.Payload)
	default:
		log.Printf("Unknown message kind from %s: %s", connID, envelope.Kind)
		w.sendError(connID, fmt.Sprintf("Unknown message kind: %s", envelope.Kind))
	}
}

// HandleDisconnect tears a connection down. If a session existed, the
// leave broadcasts are emitted exactly once; calling this again for the
// same connection is a safe no-op. The reaper and explicit closes share
// this path.
func (w *World) HandleDisconnect(connID string) {
	player, existed := w.registry.Remove(connID)
	if !existed {
		log.Printf("Player %s left (never fully joined)", connID)
		return
	}

	now := w.now()
	w.broadcaster.Broadcast(protocol.KindPlayerLeft, protocol.LeftBroadcast{
		ID:   player.ID,
		Name: player.Name,
	}, "")

	leave := chat.NewSystemEntry(fmt.Sprintf("%s left the Metaverse 👋", player.Name), now)
	w.ledger.Append(leave)
	w.broadcaster.Broadcast(protocol.KindChatMessage, leave, "")
	w.broadcaster.Broadcast(protocol.KindPlayerCount, w.registry.Count(), "")

	metrics.PlayersOnline.Set(float64(w.registry.Count()))
	log.Printf("%s (%s) left. Players online: %d", player.Name, player.ID, w.registry.Count())
}

// IdleConnections returns the connections whose sessions idled past the
// configured threshold. The transport closes them, which funnels into
// HandleDisconnect.
func (w *World) IdleConnections() []string {
	return w.registry.IdleIDs(w.now().Add(-w.cfg.IdleTimeout))
}

// Stats snapshots the counters served by /api/stats.
func (w *World) Stats() Stats {
	return Stats{
		PlayersOnline:     w.registry.Count(),
		TotalNPCs:         w.npcs.Count(),
		ChatHistoryLength: w.ledger.Len(),
	}
}

func (w *World) handleJoin(connID string, payload json.RawMessage) {
	var join protocol.JoinPayload
	if err := json.Unmarshal(payload, &join); err != nil || !protocol.ValidateJoin(&join) {
		log.Printf("Invalid player data from %s: %s", connID, payload)
		w.sendError(connID, fmt.Sprintf("Invalid player data: %s", payload))
		return
	}

	now := w.now()
	player, err := w.registry.Create(connID, &join, now)
	if err != nil {
		log.Printf("Duplicate join from %s ignored", connID)
		w.sendError(connID, "Already joined.")
		return
	}

	w.broadcaster.SendTo(connID, protocol.KindJoinConfirmation, protocol.JoinConfirmation{PlayerID: player.ID})
	w.broadcaster.Broadcast(protocol.KindPlayerJoined, player.State(), connID)
	w.broadcaster.SendTo(connID, protocol.KindCurrentPlayers, w.registry.SnapshotExcept(connID))

	welcome := chat.NewSystemEntry(fmt.Sprintf("🎉 %s joined the Metaverse!", player.Name), now)
	w.ledger.Append(welcome)
	w.broadcaster.Broadcast(protocol.KindChatMessage, welcome, "")
	w.broadcaster.Broadcast(protocol.KindPlayerCount, w.registry.Count(), "")

	metrics.PlayersOnline.Set(float64(w.registry.Count()))
	log.Printf("%s (%s) joined. Players online: %d", player.Name, player.ID, w.registry.Count())
}

func (w *World) handleMove(connID string, payload json.RawMessage) {
	player, ok := w.registry.Get(connID)
	if !ok {
		return
	}

	var move protocol.MovePayload
	if err := json.Unmarshal(payload, &move); err != nil || !protocol.ValidateMove(&move) {
		// Dropped without a reply so transient bad frames don't flood the
		// client with errors.
		log.Printf("Invalid move data from %s: %s", player.Name, payload)
		return
	}

	position := move.Position.Vector3()
	rotation := move.Rotation.Vector3()
	distSq := squaredDistance(player.Position, position)

	maxSq := w.cfg.MaxMoveDistance * w.cfg.MaxMoveDistance
	if distSq > maxSq*1.1 {
		log.Printf("WARNING: %s moved too fast: %.2f units", player.Name, math.Sqrt(distSq))
	}

	animation := move.AnimationState
	if animation == "" {
		if distSq > walkEpsilon {
			animation = "walking"
		} else {
			animation = "idle"
		}
	}

	w.registry.UpdatePosition(connID, position, rotation, animation, w.now())
	w.broadcaster.Broadcast(protocol.KindPlayerMoved, protocol.MoveBroadcast{
		ID:             player.ID,
		Position:       position,
		Rotation:       rotation,
		AnimationState: animation,
	}, connID)
}

func (w *World) handleAction(connID string, payload json.RawMessage) {
	player, ok := w.registry.Get(connID)
	if !ok {
		return
	}

	var action protocol.ActionPayload
	if err := json.Unmarshal(payload, &action); err != nil || action.Action == "" {
		return
	}

	w.broadcaster.Broadcast(protocol.KindPlayerAction, protocol.ActionBroadcast{
		PlayerID:  player.ID,
		Action:    action.Action,
		Timestamp: w.now().UnixMilli(),
	}, connID)
}

func (w *World) handleChat(connID string, payload json.RawMessage) {
	player, ok := w.registry.Get(connID)
	if !ok {
		return
	}

	var message protocol.ChatPayload
	if err := json.Unmarshal(payload, &message); err != nil {
		return
	}

	sanitized := protocol.SanitizeChatMessage(message.Message)
	if sanitized == "" {
		return
	}

	entry := chat.NewPlayerEntry(player.ID, player.Name, sanitized, w.now())
	w.ledger.Append(entry)
	// Chat echoes back to the sender as well; movement and actions do not.
	w.broadcaster.Broadcast(protocol.KindChatMessage, entry, "")
	log.Printf("[%s]: %s", player.Name, sanitized)
}

func (w *World) handleNPCInteract(connID string, payload json.RawMessage) {
	var interact protocol.NPCInteractPayload
	if err := json.Unmarshal(payload, &interact); err != nil || interact.NPCID == "" {
		w.sendError(connID, "Invalid payload: npcId missing.")
		return
	}

	target, ok := w.npcs.Lookup(interact.NPCID)
	if !ok {
		w.sendError(connID, fmt.Sprintf("NPC ID '%s' not found.", interact.NPCID))
		return
	}

	w.broadcaster.SendTo(connID, protocol.KindNPCDialogue, protocol.NPCDialogue{
		NPCID:          target.ID,
		NPCName:        target.Name,
		Dialogue:       target.Dialogue,
		NPCVoiceGender: target.VoiceGender,
	})
}

func (w *World) handleNPCSpeech(connID string, payload json.RawMessage) {
	player, ok := w.registry.Get(connID)
	if !ok {
		return
	}

	var speech protocol.NPCSpeechPayload
	if err := json.Unmarshal(payload, &speech); err != nil || speech.NPCID == "" {
		return
	}

	target, ok := w.npcs.Lookup(speech.NPCID)
	if !ok {
		return
	}

	response, matched, err := w.npcs.Respond(speech.NPCID, speech.Text)
	if err != nil {
		return
	}
	if matched {
		log.Printf("Matched question from %s for %s", player.Name, target.Name)
	} else {
		log.Printf("No question matched for %s; sent default response", target.Name)
	}

	w.broadcaster.SendTo(connID, protocol.KindNPCDialogue, protocol.NPCDialogue{
		NPCID:          target.ID,
		NPCName:        target.Name,
		Dialogue:       response,
		NPCVoiceGender: target.VoiceGender,
	})
}

func (w *World) sendError(connID, message string) {
	w.broadcaster.SendTo(connID, protocol.KindError, protocol.ErrorPayload{Message: message})
}

func squaredDistance(a, b protocol.Vector3) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dz := b.Z - a.Z
	return dx*dx + dy*dy + dz*dz
}
