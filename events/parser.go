// events/parser.go
package events

import (
	"github.com/wfunc/bingoclient/logger"
	"github.com/wfunc/bingoclient/models"
)

// Parse decodes one inbound frame into a typed Event. It never panics on
// malformed input: a frame with an unknown or missing type is logged and
// reported as not-ok, and missing fields inside a known type fall back to
// their documented defaults.
func Parse(msg map[string]any) (Event, bool) {
	base := Base{
		Player:    models.ParsePlayer(models.Object(msg, "player")),
		Team:      models.ParseTeam(models.String(msg, "player_color")),
		Timestamp: models.Uint64(msg, "timestamp"),
	}

	switch msgType := models.String(msg, "type"); msgType {
	case "connection":
		roomID := models.String(msg, "room")
		switch eventType := models.String(msg, "event_type"); eventType {
		case "connected":
			return Connected{Base: base, RoomID: roomID}, true
		case "disconnected":
			return Disconnected{Base: base, RoomID: roomID}, true
		default:
			logger.Log.Errorf("Unhandled connection event type: %q", eventType)
			return nil, false
		}
	case "chat":
		return Chat{Base: base, Text: models.String(msg, "text")}, true
	case "color":
		return ColorChange{Base: base}, true
	case "goal":
		square := models.Object(msg, "square")
		if models.Bool(square, "remove") {
			return GoalCleared{Base: base, Square: models.ParseSquare(square)}, true
		}
		return GoalMarked{Base: base, Square: models.ParseSquare(square)}, true
	default:
		logger.Log.Errorf("Unhandled message type: %q", msgType)
		return nil, false
	}
}
