package events

import (
	"os"
	"testing"

	"github.com/wfunc/bingoclient/logger"
	"github.com/wfunc/bingoclient/models"
)

func TestMain(m *testing.M) {
	logger.InitDevelopment()
	os.Exit(m.Run())
}

func playerObj(uuid, name, color string) map[string]any {
	return map[string]any{"uuid": uuid, "name": name, "color": color}
}

func TestParseConnected(t *testing.T) {
	event, ok := Parse(map[string]any{
		"type":         "connection",
		"event_type":   "connected",
		"room":         "room-1",
		"player":       playerObj("u1", "alice", "red"),
		"player_color": "red",
		"timestamp":    float64(1234),
	})
	if !ok {
		t.Fatal("Expected a connected event")
	}

	connected, isConnected := event.(Connected)
	if !isConnected {
		t.Fatalf("Expected Connected, got %T", event)
	}
	if connected.RoomID != "room-1" {
		t.Errorf("Unexpected room id %q", connected.RoomID)
	}
	if connected.Player.UUID != "u1" || connected.Player.Team != models.TeamRed {
		t.Errorf("Unexpected player %+v", connected.Player)
	}
	if connected.Team != models.TeamRed {
		t.Errorf("Unexpected event team %v", connected.Team)
	}
	if connected.Timestamp != 1234 {
		t.Errorf("Unexpected timestamp %d", connected.Timestamp)
	}
}

func TestParseDisconnected(t *testing.T) {
	event, ok := Parse(map[string]any{
		"type":       "connection",
		"event_type": "disconnected",
		"room":       "room-1",
		"player":     playerObj("u2", "bob", "blue"),
	})
	if !ok {
		t.Fatal("Expected a disconnected event")
	}
	if _, isDisconnected := event.(Disconnected); !isDisconnected {
		t.Fatalf("Expected Disconnected, got %T", event)
	}
}

func TestParseUnknownConnectionEventType(t *testing.T) {
	event, ok := Parse(map[string]any{
		"type":       "connection",
		"event_type": "revoked",
	})
	if ok || event != nil {
		t.Fatalf("Expected no event, got %T", event)
	}
}

func TestParseChat(t *testing.T) {
	event, ok := Parse(map[string]any{
		"type":   "chat",
		"text":   "hello",
		"player": playerObj("u1", "alice", "red"),
	})
	if !ok {
		t.Fatal("Expected a chat event")
	}

	chat, isChat := event.(Chat)
	if !isChat {
		t.Fatalf("Expected Chat, got %T", event)
	}
	if chat.Text != "hello" {
		t.Errorf("Unexpected text %q", chat.Text)
	}
}

func TestParseChatMissingTextDefaultsToEmpty(t *testing.T) {
	event, ok := Parse(map[string]any{"type": "chat"})
	if !ok {
		t.Fatal("Expected a chat event")
	}
	if chat := event.(Chat); chat.Text != "" {
		t.Errorf("Expected empty text, got %q", chat.Text)
	}
}

func TestParseColorChange(t *testing.T) {
	event, ok := Parse(map[string]any{
		"type":         "color",
		"player":       playerObj("u1", "alice", "red"),
		"player_color": "blue",
	})
	if !ok {
		t.Fatal("Expected a color event")
	}

	change := event.(ColorChange)
	if change.Team != models.TeamBlue {
		t.Errorf("Expected new team blue, got %v", change.Team)
	}
	if change.Player.Team != models.TeamRed {
		t.Errorf("Expected old team red on the actor, got %v", change.Player.Team)
	}
}

func TestParseGoalMarkedRoundTrip(t *testing.T) {
	event, ok := Parse(map[string]any{
		"type":   "goal",
		"player": playerObj("u1", "alice", "red"),
		"square": map[string]any{
			"slot":   "slot7",
			"name":   "Open the vault",
			"colors": "RED BLUE",
			"remove": false,
		},
	})
	if !ok {
		t.Fatal("Expected a goal event")
	}

	marked, isMarked := event.(GoalMarked)
	if !isMarked {
		t.Fatalf("Expected GoalMarked, got %T", event)
	}
	if marked.Square.Index != 7 {
		t.Errorf("Expected index 7, got %d", marked.Square.Index)
	}
	want := []models.Team{models.TeamRed, models.TeamBlue}
	if len(marked.Square.Teams) != 2 || marked.Square.Teams[0] != want[0] || marked.Square.Teams[1] != want[1] {
		t.Errorf("Expected %v, got %v", want, marked.Square.Teams)
	}
}

func TestParseGoalCleared(t *testing.T) {
	event, ok := Parse(map[string]any{
		"type": "goal",
		"square": map[string]any{
			"slot":   "slot3",
			"remove": true,
		},
	})
	if !ok {
		t.Fatal("Expected a goal event")
	}
	if _, isCleared := event.(GoalCleared); !isCleared {
		t.Fatalf("Expected GoalCleared, got %T", event)
	}
}

func TestParseUnknownTypeDoesNotPanic(t *testing.T) {
	for _, msg := range []map[string]any{
		{"type": "ping"},
		{},
		{"type": float64(5)},
		{"type": "goal"}, // no square object at all
		nil,
	} {
		// Parse must report not-ok (or a defaulted goal event) without panicking.
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("Parse panicked on %v: %v", msg, r)
				}
			}()
			Parse(msg)
		}()
	}

	if event, ok := Parse(map[string]any{"type": "ping"}); ok || event != nil {
		t.Errorf("Expected no event for ping, got %T", event)
	}
}

func TestParseDefaultsWithMissingFields(t *testing.T) {
	event, ok := Parse(map[string]any{"type": "chat", "text": "hi"})
	if !ok {
		t.Fatal("Expected a chat event")
	}

	chat := event.(Chat)
	if chat.Player.UUID != "" || chat.Player.Team != models.TeamBlank {
		t.Errorf("Expected a blank actor, got %+v", chat.Player)
	}
	if chat.Timestamp != 0 {
		t.Errorf("Expected zero timestamp, got %d", chat.Timestamp)
	}
}
