package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeContentFile(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	return path
}

func TestValidateContent_ValidFile(t *testing.T) {
	valid := `{
		"npcs": [
			{
				"id": "npc1",
				"name": "Eva",
				"position": {"x": -32, "y": 0, "z": 60},
				"color": "#800080",
				"voiceGender": "female",
				"dialogue": "Hello!",
				"responses": {
					"event": "A party!",
					"when": "Saturday.",
					"where": "Downtown.",
					"other": "Cocktail attire."
				}
			}
		]
	}`

	result := validateContent(writeContentFile(t, "npcs.json", valid))
	if !result.Valid {
		t.Errorf("Expected valid content, got errors: %v", result.Errors)
	}
}

func TestValidateContent_InvalidJSON(t *testing.T) {
	result := validateContent(writeContentFile(t, "npcs.json", "{not json"))
	if result.Valid {
		t.Error("Expected invalid result for malformed JSON")
	}
}

func TestValidateContent_MissingFile(t *testing.T) {
	result := validateContent("/non/existent/npcs.json")
	if result.Valid {
		t.Error("Expected invalid result for missing file")
	}
}

func TestValidateContent_EmptyRoster(t *testing.T) {
	result := validateContent(writeContentFile(t, "npcs.json", `{"npcs": []}`))
	if result.Valid {
		t.Error("Expected invalid result for empty roster")
	}
}

func TestValidateContent_FieldErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing id",
			content: `{"npcs": [
				{"name": "Eva", "color": "#800080", "voiceGender": "female", "dialogue": "Hi"}
			]}`,
			wantErr: "has no id",
		},
		{
			name: "duplicate id",
			content: `{"npcs": [
				{"id": "npc1", "name": "Eva", "color": "#800080", "voiceGender": "female", "dialogue": "Hi"},
				{"id": "npc1", "name": "Alex", "color": "#8B4513", "voiceGender": "male", "dialogue": "Hi"}
			]}`,
			wantErr: "Duplicate NPC id",
		},
		{
			name: "bad color",
			content: `{"npcs": [
				{"id": "npc1", "name": "Eva", "color": "purple", "voiceGender": "female", "dialogue": "Hi"}
			]}`,
			wantErr: "invalid color",
		},
		{
			name: "bad voice gender",
			content: `{"npcs": [
				{"id": "npc1", "name": "Eva", "color": "#800080", "voiceGender": "robot", "dialogue": "Hi"}
			]}`,
			wantErr: "invalid voiceGender",
		},
		{
			name: "no greeting",
			content: `{"npcs": [
				{"id": "npc1", "name": "Eva", "color": "#800080", "voiceGender": "female"}
			]}`,
			wantErr: "no base dialogue greeting",
		},
		{
			name: "unknown category",
			content: `{"npcs": [
				{"id": "npc1", "name": "Eva", "color": "#800080", "voiceGender": "female", "dialogue": "Hi",
				 "responses": {"weather": "Sunny."}}
			]}`,
			wantErr: "unknown response category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validateContent(writeContentFile(t, "npcs.json", tt.content))
			if result.Valid {
				t.Fatal("Expected invalid result")
			}
			found := false
			for _, msg := range result.Errors {
				if strings.Contains(msg, tt.wantErr) {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("Expected an error containing %q, got %v", tt.wantErr, result.Errors)
			}
		})
	}
}
