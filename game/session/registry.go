package session

import (
	"errors"
	"sync"
	"time"

	"github.com/voxelverse/metaverse-server/game/protocol"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionAlreadyExists = errors.New("session already exists")
)

// Session is the authoritative server-held state for one joined player.
// ID and JoinTime are immutable; movement fields are updated in place.
type Session struct {
	ID             string
	Name           string
	Color          string
	HairColor      string
	Position       protocol.Vector3
	Rotation       protocol.Vector3
	AnimationState string
	LastUpdate     time.Time
	JoinTime       time.Time
}

// State returns the public wire view of the session.
func (s *Session) State() protocol.PlayerState {
	return protocol.PlayerState{
		ID:             s.ID,
		Name:           s.Name,
		Color:          s.Color,
		HairColor:      s.HairColor,
		Position:       s.Position,
		Rotation:       s.Rotation,
		AnimationState: s.AnimationState,
	}
}

// Registry handles player session lifecycle, keyed by connection identity.
type Registry struct {
	sessions map[string]*Session
	order    []string
	mu       sync.RWMutex
}

// NewRegistry creates an empty session registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
	}
}

// Create registers a new session for the given connection. It fails with
// ErrSessionAlreadyExists if the connection already has one, so a
// duplicate join can never produce two sessions.
func (r *Registry) Create(connID string, p *protocol.JoinPayload, now time.Time) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[connID]; exists {
		return nil, ErrSessionAlreadyExists
	}

	animation := p.AnimationState
	if animation == "" {
		animation = "idle"
	}

	session := &Session{
		ID:             connID,
		Name:           p.Name,
		Color:          p.Color,
		HairColor:      p.HairColor,
		Position:       p.Position.Vector3(),
		Rotation:       p.Rotation.Vector3(),
		AnimationState: animation,
		LastUpdate:     now,
		JoinTime:       now,
	}

	r.sessions[connID] = session
	r.order = append(r.order, connID)
	return session, nil
}

// Get retrieves the session for a connection.
func (r *Registry) Get(connID string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, exists := r.sessions[connID]
	return session, exists
}

// UpdatePosition applies an accepted movement to the session in place and
// stamps LastUpdate. It is a no-op if the connection has no session.
func (r *Registry) UpdatePosition(connID string, position, rotation protocol.Vector3, animationState string, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, exists := r.sessions[connID]
	if !exists {
		return false
	}
	session.Position = position
	session.Rotation = rotation
	session.AnimationState = animationState
	session.LastUpdate = now
	return true
}

// Remove deletes the session for a connection and returns it, if any.
func (r *Registry) Remove(connID string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, exists := r.sessions[connID]
	if !exists {
		return nil, false
	}
	delete(r.sessions, connID)
	for i, id := range r.order {
		if id == connID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return session, true
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// SnapshotExcept returns the public state of every session other than the
// given connection, in join order. Used to seed late joiners.
func (r *Registry) SnapshotExcept(connID string) []protocol.PlayerState {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]protocol.PlayerState, 0, len(r.sessions))
	for _, id := range r.order {
		if id == connID {
			continue
		}
		if session, exists := r.sessions[id]; exists {
			out = append(out, session.State())
		}
	}
	return out
}

// IdleIDs returns the connections whose sessions have not been updated
// since the cutoff. The reaper terminates these.
func (r *Registry) IdleIDs(cutoff time.Time) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var idle []string
	for _, id := range r.order {
		if session, exists := r.sessions[id]; exists && session.LastUpdate.Before(cutoff) {
			idle = append(idle, id)
		}
	}
	return idle
}
