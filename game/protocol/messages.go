package protocol

import "encoding/json"

// Inbound message kinds sent by clients.
const (
	KindPlayerJoin    = "playerJoin"
	KindPlayerMove    = "playerMove"
	KindPlayerAction  = "playerAction"
	KindChatMessage   = "chatMessage"
	KindNPCInteract   = "npcInteract"
	KindNPCUserSpeech = "npcUserSpeech"
)

// Outbound message kinds sent by the server.
const (
	KindInitialState     = "initialState"
	KindJoinConfirmation = "joinConfirmation"
	KindCurrentPlayers   = "currentPlayers"
	KindPlayerJoined     = "playerJoined"
	KindPlayerMoved      = "playerMoved"
	KindPlayerLeft       = "playerLeft"
	KindPlayerCount      = "playerCount"
	KindNPCDialogue      = "npcDialogue"
	KindError            = "error"
)

// Envelope is the frame shared by all messages in both directions.
// The payload is kept raw so dispatch can happen on kind alone.
type Envelope struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Vector3 is a resolved 3D vector used in server state and outbound frames.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// VectorPayload is a wire vector whose components may be absent.
// Pointer fields let validation tell a missing coordinate from zero.
type VectorPayload struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
	Z *float64 `json:"z"`
}

// Vector3 resolves the wire vector, substituting zero for absent components.
func (v *VectorPayload) Vector3() Vector3 {
	if v == nil {
		return Vector3{}
	}
	var out Vector3
	if v.X != nil {
		out.X = *v.X
	}
	if v.Y != nil {
		out.Y = *v.Y
	}
	if v.Z != nil {
		out.Z = *v.Z
	}
	return out
}

// JoinPayload is the inbound playerJoin payload.
type JoinPayload struct {
	Name           string         `json:"name"`
	Color          string         `json:"color"`
	HairColor      string         `json:"hairColor,omitempty"`
	Position       *VectorPayload `json:"position"`
	Rotation       *VectorPayload `json:"rotation,omitempty"`
	AnimationState string         `json:"animationState,omitempty"`
}

// MovePayload is the inbound playerMove payload.
type MovePayload struct {
	Position       *VectorPayload `json:"position"`
	Rotation       *VectorPayload `json:"rotation"`
	AnimationState string         `json:"animationState,omitempty"`
}

// ActionPayload is the inbound playerAction payload.
type ActionPayload struct {
	Action string `json:"action"`
}

// ChatPayload is the inbound chatMessage payload.
type ChatPayload struct {
	Message string `json:"message"`
}

// NPCInteractPayload is the inbound npcInteract payload.
type NPCInteractPayload struct {
	NPCID string `json:"npcId"`
}

// NPCSpeechPayload is the inbound npcUserSpeech payload.
type NPCSpeechPayload struct {
	NPCID string `json:"npcId"`
	Text  string `json:"text"`
}

// PlayerState is the public view of a joined player, used in playerJoined
// broadcasts and currentPlayers snapshots.
type PlayerState struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Color          string  `json:"color"`
	HairColor      string  `json:"hairColor,omitempty"`
	Position       Vector3 `json:"position"`
	Rotation       Vector3 `json:"rotation"`
	AnimationState string  `json:"animationState"`
}

// MoveBroadcast is the outbound playerMoved payload.
type MoveBroadcast struct {
	ID             string  `json:"id"`
	Position       Vector3 `json:"position"`
	Rotation       Vector3 `json:"rotation"`
	AnimationState string  `json:"animationState"`
}

// ActionBroadcast is the outbound playerAction payload. Timestamp is the
// server clock in Unix milliseconds.
type ActionBroadcast struct {
	PlayerID  string `json:"playerId"`
	Action    string `json:"action"`
	Timestamp int64  `json:"timestamp"`
}

// LeftBroadcast is the outbound playerLeft payload.
type LeftBroadcast struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// JoinConfirmation is the private reply confirming a successful join.
type JoinConfirmation struct {
	PlayerID string `json:"playerId"`
}

// NPCDialogue is the private npcDialogue reply.
type NPCDialogue struct {
	NPCID          string `json:"npcId"`
	NPCName        string `json:"npcName"`
	Dialogue       string `json:"dialogue"`
	NPCVoiceGender string `json:"npcVoiceGender"`
}

// ErrorPayload is the outbound error payload.
type ErrorPayload struct {
	Message string `json:"message"`
}
