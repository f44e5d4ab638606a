package npc

import (
	"fmt"
	"strings"
)

// Category identifies one scripted question family.
type Category string

const (
	CategoryEvent Category = "event"
	CategoryWhen  Category = "when"
	CategoryWhere Category = "where"
	CategoryOther Category = "other"
)

// categoryOrder fixes matching priority: the first matching category wins.
var categoryOrder = [...]Category{CategoryEvent, CategoryWhen, CategoryWhere, CategoryOther}

// categoryPhrases are the literal alternatives per category, shared by all
// NPCs. A category matches when the normalized utterance contains any one
// of them.
var categoryPhrases = map[Category][]string{
	CategoryEvent: {
		"what kind of event are you planning",
		"could you tell me about the event you are organizing",
		"what's the special occasion",
		"what event are you hosting",
	},
	CategoryWhen: {
		"when will the event take place",
		"could you tell me the exact date and time",
	},
	CategoryWhere: {
		"where is the event going to be held",
		"what is the full address of the venue",
	},
	CategoryOther: {
		"is there a dress code for the guests",
		"what should guests wear to the event",
		"do i have all the information i need",
		"is there anything else",
	},
}

// fallbackFormat echoes the original, unnormalized utterance.
const fallbackFormat = `I heard you say, "%s".`

// ResponseSet maps question categories to one NPC's scripted answers.
type ResponseSet map[Category]string

// Normalize lowercases the utterance, strips sentence punctuation, and
// trims surrounding whitespace.
func Normalize(text string) string {
	lowered := strings.ToLower(text)
	stripped := strings.Map(func(r rune) rune {
		if strings.ContainsRune(".,!?;:", r) {
			return -1
		}
		return r
	}, lowered)
	return strings.TrimSpace(stripped)
}

// Respond matches a player utterance against the shared phrase table and
// returns the scripted answer for the first matching category, or the
// fallback echo when nothing matches.
func Respond(responses ResponseSet, text string) (string, bool) {
	normalized := Normalize(text)
	for _, category := range categoryOrder {
		response, ok := responses[category]
		if !ok {
			continue
		}
		for _, phrase := range categoryPhrases[category] {
			if strings.Contains(normalized, phrase) {
				return response, true
			}
		}
	}
	return fmt.Sprintf(fallbackFormat, text), false
}
