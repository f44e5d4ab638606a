package protocol

import (
	"math"
	"strings"
	"testing"
)

func fp(v float64) *float64 {
	return &v
}

func validJoin() *JoinPayload {
	return &JoinPayload{
		Name:     "Alice",
		Color:    "#FF00aa",
		Position: &VectorPayload{X: fp(1), Y: fp(0), Z: fp(-2.5)},
	}
}

func TestValidateJoin(t *testing.T) {
	t.Run("accepts a well-formed payload", func(t *testing.T) {
		if !ValidateJoin(validJoin()) {
			t.Error("Expected valid join payload to be accepted")
		}
	})

	t.Run("rejects nil payload", func(t *testing.T) {
		if ValidateJoin(nil) {
			t.Error("Expected nil payload to be rejected")
		}
	})

	t.Run("name length bounds", func(t *testing.T) {
		p := validJoin()
		p.Name = ""
		if ValidateJoin(p) {
			t.Error("Expected empty name to be rejected")
		}

		p.Name = strings.Repeat("a", 20)
		if !ValidateJoin(p) {
			t.Error("Expected 20-character name to be accepted")
		}

		p.Name = strings.Repeat("a", 21)
		if ValidateJoin(p) {
			t.Error("Expected 21-character name to be rejected")
		}
	})

	t.Run("color format", func(t *testing.T) {
		cases := map[string]bool{
			"#FFAA00": true,
			"#ffaa00": true,
			"#FfAa00": true,
			"FFAA00":  false,
			"#FFAA0":  false,
			"#FFAA000": false,
			"#GGGGGG": false,
			"":        false,
		}
		for color, want := range cases {
			p := validJoin()
			p.Color = color
			if got := ValidateJoin(p); got != want {
				t.Errorf("Color %q: expected %v, got %v", color, want, got)
			}
		}
	})

	t.Run("position must be complete and finite", func(t *testing.T) {
		p := validJoin()
		p.Position = nil
		if ValidateJoin(p) {
			t.Error("Expected missing position to be rejected")
		}

		p = validJoin()
		p.Position.Y = nil
		if ValidateJoin(p) {
			t.Error("Expected missing y coordinate to be rejected")
		}

		p = validJoin()
		p.Position.Z = fp(math.NaN())
		if ValidateJoin(p) {
			t.Error("Expected NaN coordinate to be rejected")
		}

		p = validJoin()
		p.Position.X = fp(math.Inf(1))
		if ValidateJoin(p) {
			t.Error("Expected infinite coordinate to be rejected")
		}
	})
}

func TestValidateMove(t *testing.T) {
	valid := func() *MovePayload {
		return &MovePayload{
			Position: &VectorPayload{X: fp(1), Y: fp(2), Z: fp(3)},
			Rotation: &VectorPayload{Y: fp(0.5)},
		}
	}

	t.Run("accepts a well-formed payload", func(t *testing.T) {
		if !ValidateMove(valid()) {
			t.Error("Expected valid move payload to be accepted")
		}
	})

	t.Run("rejects nil payload", func(t *testing.T) {
		if ValidateMove(nil) {
			t.Error("Expected nil payload to be rejected")
		}
	})

	t.Run("rotation requires at least a numeric y", func(t *testing.T) {
		p := valid()
		p.Rotation = nil
		if ValidateMove(p) {
			t.Error("Expected missing rotation to be rejected")
		}

		p = valid()
		p.Rotation = &VectorPayload{X: fp(1)}
		if ValidateMove(p) {
			t.Error("Expected rotation without y to be rejected")
		}

		p = valid()
		p.Rotation = &VectorPayload{Y: fp(math.NaN())}
		if ValidateMove(p) {
			t.Error("Expected NaN rotation y to be rejected")
		}
	})

	t.Run("position must be complete", func(t *testing.T) {
		p := valid()
		p.Position = &VectorPayload{X: fp(1), Y: fp(2)}
		if ValidateMove(p) {
			t.Error("Expected incomplete position to be rejected")
		}
	})
}

func TestVectorPayloadVector3(t *testing.T) {
	var nilVec *VectorPayload
	if got := nilVec.Vector3(); got != (Vector3{}) {
		t.Errorf("Expected zero vector from nil payload, got %+v", got)
	}

	partial := &VectorPayload{Y: fp(4.5)}
	got := partial.Vector3()
	if got.X != 0 || got.Y != 4.5 || got.Z != 0 {
		t.Errorf("Expected {0 4.5 0}, got %+v", got)
	}
}

func TestSanitizeChatMessage(t *testing.T) {
	t.Run("escapes angle brackets", func(t *testing.T) {
		got := SanitizeChatMessage("<script>hi</script>")
		want := "&lt;script&gt;hi&lt;/script&gt;"
		if got != want {
			t.Errorf("Expected %q, got %q", want, got)
		}
	})

	t.Run("truncates to the limit after escaping", func(t *testing.T) {
		got := SanitizeChatMessage(strings.Repeat("a", 150))
		if len(got) != MaxChatMessageLength {
			t.Errorf("Expected %d characters, got %d", MaxChatMessageLength, len(got))
		}
	})

	t.Run("escaping counts toward the limit", func(t *testing.T) {
		// 30 brackets escape to 120 characters.
		got := SanitizeChatMessage(strings.Repeat("<", 30))
		want := strings.Repeat("&lt;", 25)
		if got != want {
			t.Errorf("Expected %q, got %q", want, got)
		}
	})

	t.Run("empty stays empty", func(t *testing.T) {
		if got := SanitizeChatMessage(""); got != "" {
			t.Errorf("Expected empty result, got %q", got)
		}
	})
}
