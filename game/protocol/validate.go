package protocol

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxChatMessageLength is the character limit applied after escaping.
const MaxChatMessageLength = 100

// MaxPlayerNameLength bounds the display name accepted at join time.
const MaxPlayerNameLength = 20

var colorPattern = regexp.MustCompile(`(?i)^#[0-9A-F]{6}$`)

// ValidateJoin reports whether a playerJoin payload is acceptable: a name
// of 1-20 characters, a #RRGGBB color, and a complete finite position.
func ValidateJoin(p *JoinPayload) bool {
	if p == nil {
		return false
	}
	nameLen := utf8.RuneCountInString(p.Name)
	if nameLen < 1 || nameLen > MaxPlayerNameLength {
		return false
	}
	if !colorPattern.MatchString(p.Color) {
		return false
	}
	return vectorComplete(p.Position)
}

// ValidateMove reports whether a playerMove payload is acceptable: a
// complete finite position and a rotation carrying at least a numeric y.
func ValidateMove(p *MovePayload) bool {
	if p == nil {
		return false
	}
	if !vectorComplete(p.Position) {
		return false
	}
	return p.Rotation != nil && finite(p.Rotation.Y)
}

// SanitizeChatMessage escapes angle brackets and truncates the result to
// MaxChatMessageLength characters. An empty result means there is nothing
// to broadcast.
func SanitizeChatMessage(message string) string {
	escaped := strings.NewReplacer("<", "&lt;", ">", "&gt;").Replace(message)
	if utf8.RuneCountInString(escaped) <= MaxChatMessageLength {
		return escaped
	}
	runes := []rune(escaped)
	return string(runes[:MaxChatMessageLength])
}

func vectorComplete(v *VectorPayload) bool {
	return v != nil && finite(v.X) && finite(v.Y) && finite(v.Z)
}

func finite(f *float64) bool {
	return f != nil && !math.IsNaN(*f) && !math.IsInf(*f, 0)
}
