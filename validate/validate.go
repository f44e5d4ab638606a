// Command validate provides a small CLI that validates NPC content JSON
// files in the ../configs directory. It checks:
//   - JSON structure and required fields
//   - Unique, non-empty NPC ids
//   - Color format (#RRGGBB)
//   - Voice gender values (male, female)
//   - Presence of a base dialogue greeting
//   - Response tables limited to the known categories (event, when, where, other)
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// NPCEntry mirrors the JSON schema for one NPC record.
type NPCEntry struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Position    map[string]float64 `json:"position"`
	Color       string             `json:"color"`
	VoiceGender string             `json:"voiceGender"`
	Dialogue    string             `json:"dialogue"`
	Responses   map[string]string  `json:"responses"`
}

// ContentFile mirrors the JSON schema for an NPC content file.
type ContentFile struct {
	NPCs []NPCEntry `json:"npcs"`
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

var colorPattern = regexp.MustCompile(`(?i)^#[0-9A-F]{6}$`)

var knownCategories = map[string]bool{
	"event": true,
	"when":  true,
	"where": true,
	"other": true,
}

// validateContent loads and validates a single NPC content JSON file.
func validateContent(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var content ContentFile
	if err := json.Unmarshal(data, &content); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if len(content.NPCs) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "No NPCs defined")
		return result
	}

	seen := map[string]bool{}
	scripted := 0

	for i, entry := range content.NPCs {
		label := entry.ID
		if label == "" {
			label = fmt.Sprintf("index %d", i)
		}

		if entry.ID == "" {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("NPC at %s has no id", label))
		} else if seen[entry.ID] {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Duplicate NPC id %q", entry.ID))
		}
		seen[entry.ID] = true

		if entry.Name == "" {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("NPC %s has no name", label))
		}

		if !colorPattern.MatchString(entry.Color) {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("NPC %s has invalid color %q (expected #RRGGBB)", label, entry.Color))
		}

		if entry.VoiceGender != "male" && entry.VoiceGender != "female" {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("NPC %s has invalid voiceGender %q", label, entry.VoiceGender))
		}

		if entry.Dialogue == "" {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("NPC %s has no base dialogue greeting", label))
		}

		for category := range entry.Responses {
			if !knownCategories[category] {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("NPC %s has unknown response category %q", label, category))
			}
		}
		if len(entry.Responses) > 0 {
			scripted++
		}
	}

	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ NPCs: %d", len(content.NPCs)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Scripted: %d", scripted))
	}

	return result
}

// main scans ../configs for npcs*.json files and validates each one,
// printing a concise report and exiting with non-zero status if any are
// invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "npcs*.json"))
	if err != nil {
		fmt.Printf("Error finding content files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No NPC content files found in %s\n", configDir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateContent(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Println("  ❌ " + err)
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All content files are valid!")
	} else {
		fmt.Println("❌ Some content files have errors")
		os.Exit(1)
	}
}
