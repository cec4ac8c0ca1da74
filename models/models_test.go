package models

import (
	"testing"
)

func TestParseSquareStripsSlotPrefix(t *testing.T) {
	square := ParseSquare(map[string]any{
		"slot":   "slot7",
		"name":   "Find the key",
		"colors": "red blue",
	})

	if square.Index != 7 {
		t.Errorf("Expected index 7, got %d", square.Index)
	}
	if square.Name != "Find the key" {
		t.Errorf("Unexpected name %q", square.Name)
	}
	if len(square.Teams) != 2 || square.Teams[0] != TeamRed || square.Teams[1] != TeamBlue {
		t.Errorf("Expected [red blue], got %v", square.Teams)
	}
}

func TestParseSquareNumericSlot(t *testing.T) {
	square := ParseSquare(map[string]any{"slot": float64(12)})
	if square.Index != 12 {
		t.Errorf("Expected index 12, got %d", square.Index)
	}
}

func TestParseSquareBadSlotDefaultsToZero(t *testing.T) {
	for _, slot := range []any{"slotx", "", nil, true} {
		square := ParseSquare(map[string]any{"slot": slot})
		if square.Index != 0 {
			t.Errorf("Expected index 0 for slot %v, got %d", slot, square.Index)
		}
	}
}

func TestParseSquareNilObject(t *testing.T) {
	square := ParseSquare(nil)
	if square.Index != 0 || square.Name != "" || len(square.Teams) != 0 {
		t.Errorf("Expected zero square, got %+v", square)
	}
}

func TestParsePlayerDefaults(t *testing.T) {
	player := ParsePlayer(nil)
	if player.UUID != "" || player.Name != "" || player.Team != TeamBlank || player.IsSpectator {
		t.Errorf("Expected zero player, got %+v", player)
	}
}

func TestParsePlayerFields(t *testing.T) {
	player := ParsePlayer(map[string]any{
		"uuid":         "abc-123",
		"name":         "nick",
		"color":        "TEAL",
		"is_spectator": true,
	})

	if player.UUID != "abc-123" || player.Name != "nick" {
		t.Errorf("Unexpected identity %+v", player)
	}
	if player.Team != TeamTeal {
		t.Errorf("Expected teal, got %v", player.Team)
	}
	if !player.IsSpectator {
		t.Error("Expected spectator flag to be set")
	}
}

func TestPlayerIdentity(t *testing.T) {
	a := PlayerData{UUID: "u1"}
	b := PlayerData{UUID: "u1"}
	c := PlayerData{UUID: "u2"}
	empty := PlayerData{}

	if !a.Is(b) {
		t.Error("Players with the same UUID should match")
	}
	if a.Is(c) {
		t.Error("Players with different UUIDs should not match")
	}
	if empty.Is(empty) {
		t.Error("Players without a UUID never match, not even themselves")
	}
}

func TestUint64Parsing(t *testing.T) {
	obj := map[string]any{
		"num":      float64(1700000000),
		"str":      "42",
		"negative": float64(-5),
		"junk":     "x",
	}

	if got := Uint64(obj, "num"); got != 1700000000 {
		t.Errorf("Expected 1700000000, got %d", got)
	}
	if got := Uint64(obj, "str"); got != 42 {
		t.Errorf("Expected 42, got %d", got)
	}
	if got := Uint64(obj, "negative"); got != 0 {
		t.Errorf("Negative values default to 0, got %d", got)
	}
	if got := Uint64(obj, "junk"); got != 0 {
		t.Errorf("Unparseable values default to 0, got %d", got)
	}
	if got := Uint64(obj, "missing"); got != 0 {
		t.Errorf("Missing values default to 0, got %d", got)
	}
}
