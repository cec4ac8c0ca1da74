// models/models.go
package models

import (
	"strconv"
	"strings"
)

// Board dimensions fixed by the room service.
const (
	BoardWidth  = 5
	BoardHeight = 5
	BoardSize   = BoardWidth * BoardHeight
)

// PlayerData identifies one participant of a room. Two values denote the
// same participant iff both UUIDs are non-empty and equal.
type PlayerData struct {
	UUID        string `json:"uuid"`
	Name        string `json:"name"`
	Team        Team   `json:"team"`
	IsSpectator bool   `json:"is_spectator"`
}

// Is reports whether both players carry the same non-empty UUID.
func (p PlayerData) Is(other PlayerData) bool {
	return p.UUID != "" && p.UUID == other.UUID
}

// SquareData is one cell of the board. Index is 1-based; 0 marks an
// invalid or unset square and must be ignored by consumers.
type SquareData struct {
	Name  string `json:"name"`
	Index int    `json:"index"`
	Teams []Team `json:"teams"`
}

// ParsePlayer builds a PlayerData from a loosely-typed `player` object.
// Missing or ill-typed fields fall back to zero values and the blank team.
func ParsePlayer(obj map[string]any) PlayerData {
	return PlayerData{
		UUID:        String(obj, "uuid"),
		Name:        String(obj, "name"),
		Team:        ParseTeam(String(obj, "color")),
		IsSpectator: Bool(obj, "is_spectator"),
	}
}

// ParseSquare builds a SquareData from a loosely-typed `square` object.
// Slot values arrive either as a bare number or prefixed with the literal
// token "slot" (e.g. "slot7"); unparseable slots yield index 0.
func ParseSquare(obj map[string]any) SquareData {
	return SquareData{
		Name:  String(obj, "name"),
		Index: parseSlot(obj["slot"]),
		Teams: ParseTeams(String(obj, "colors")),
	}
}

func parseSlot(v any) int {
	switch slot := v.(type) {
	case string:
		n, err := strconv.Atoi(strings.TrimPrefix(slot, "slot"))
		if err != nil {
			return 0
		}
		return n
	case float64:
		return int(slot)
	default:
		return 0
	}
}

// String reads a string field from a decoded JSON object, defaulting to "".
func String(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

// Bool reads a boolean field from a decoded JSON object, defaulting to false.
func Bool(obj map[string]any, key string) bool {
	b, _ := obj[key].(bool)
	return b
}

// Uint64 reads an unsigned integer field from a decoded JSON object.
// JSON numbers decode as float64; string digits are accepted too. Anything
// else defaults to 0.
func Uint64(obj map[string]any, key string) uint64 {
	switch n := obj[key].(type) {
	case float64:
		if n < 0 {
			return 0
		}
		return uint64(n)
	case string:
		v, err := strconv.ParseUint(n, 10, 64)
		if err != nil {
			return 0
		}
		return v
	default:
		return 0
	}
}

// Object reads a nested object field from a decoded JSON object. A missing
// or ill-typed field yields a nil map, which all parse helpers tolerate.
func Object(obj map[string]any, key string) map[string]any {
	m, _ := obj[key].(map[string]any)
	return m
}
