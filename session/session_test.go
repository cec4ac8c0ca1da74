package session

import (
	"testing"

	"github.com/wfunc/bingoclient/models"
)

func TestSessionStartsDisconnected(t *testing.T) {
	s := New(false)

	if s.Connected() {
		t.Error("A fresh session should be disconnected")
	}
	if s.RoomID() != "" {
		t.Errorf("Expected empty room id, got %q", s.RoomID())
	}
	if s.Player().UUID != "" {
		t.Errorf("Expected blank player, got %+v", s.Player())
	}
}

func TestSetConnected(t *testing.T) {
	s := New(true)
	player := models.PlayerData{UUID: "u1", Name: "alice", Team: models.TeamRed}

	s.SetConnected("room-1", player)

	if !s.Connected() {
		t.Error("Session should be connected")
	}
	if s.RoomID() != "room-1" {
		t.Errorf("Expected room-1, got %q", s.RoomID())
	}
	if s.Player().UUID != "u1" {
		t.Errorf("Expected player u1, got %+v", s.Player())
	}
	if !s.IsCreator() {
		t.Error("Creator flag should survive")
	}
}

func TestSetTeamReturnsPrevious(t *testing.T) {
	s := New(false)
	s.SetConnected("room-1", models.PlayerData{UUID: "u1", Team: models.TeamRed})

	old := s.SetTeam(models.TeamBlue)
	if old != models.TeamRed {
		t.Errorf("Expected previous team red, got %v", old)
	}
	if s.Player().Team != models.TeamBlue {
		t.Errorf("Expected current team blue, got %v", s.Player().Team)
	}

	// Applying the same team twice is a no-op.
	old = s.SetTeam(models.TeamBlue)
	if old != models.TeamBlue {
		t.Errorf("Expected previous team blue, got %v", old)
	}
}

func TestResetClearsState(t *testing.T) {
	s := New(false)
	s.SetConnected("room-1", models.PlayerData{UUID: "u1"})

	s.Reset()

	if s.Connected() {
		t.Error("Session should be disconnected after reset")
	}
	if s.Player().UUID != "" {
		t.Errorf("Expected blank player after reset, got %+v", s.Player())
	}
}
