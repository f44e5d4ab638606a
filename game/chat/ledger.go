package chat

import (
	"sync"
	"time"
)

// Entry kinds as they appear on the wire.
const (
	EntrySystem = "system"
	EntryPlayer = "player"
)

// SystemSenderName is the display name attached to system announcements.
const SystemSenderName = "System"

// DefaultLimit is the maximum number of entries the ledger retains.
const DefaultLimit = 50

// Entry is a single chat event. Entries are immutable once created.
type Entry struct {
	Kind       string `json:"type"`
	PlayerID   string `json:"playerId,omitempty"`
	PlayerName string `json:"playerName"`
	Message    string `json:"message"`
	Timestamp  int64  `json:"timestamp"`
}

// NewSystemEntry builds a system announcement stamped with the given time.
func NewSystemEntry(message string, at time.Time) Entry {
	return Entry{
		Kind:       EntrySystem,
		PlayerName: SystemSenderName,
		Message:    message,
		Timestamp:  at.UnixMilli(),
	}
}

// NewPlayerEntry builds a player chat entry stamped with the given time.
func NewPlayerEntry(playerID, playerName, message string, at time.Time) Entry {
	return Entry{
		Kind:       EntryPlayer,
		PlayerID:   playerID,
		PlayerName: playerName,
		Message:    message,
		Timestamp:  at.UnixMilli(),
	}
}

// Ledger is a bounded, append-only history of chat events.
type Ledger struct {
	mu      sync.RWMutex
	entries []Entry
	limit   int
}

// NewLedger creates a ledger bounded to limit entries. A non-positive
// limit falls back to DefaultLimit.
func NewLedger(limit int) *Ledger {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Ledger{limit: limit}
}

// Append pushes an entry, evicting from the front while over the bound.
func (l *Ledger) Append(entry Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, entry)
	for len(l.entries) > l.limit {
		l.entries = l.entries[1:]
	}
}

// Recent returns the last n entries in chronological order, or fewer if
// the ledger holds fewer.
func (l *Ledger) Recent(n int) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n > len(l.entries) {
		n = len(l.entries)
	}
	if n <= 0 {
		return []Entry{}
	}
	out := make([]Entry, n)
	copy(out, l.entries[len(l.entries)-n:])
	return out
}

// Len returns the number of entries currently held.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
