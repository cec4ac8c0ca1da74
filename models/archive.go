// models/archive.go
package models

import (
	"time"
)

// Event kinds stored by the archive.
const (
	EventKindChat        = "chat"
	EventKindGoalMarked  = "goal_marked"
	EventKindGoalCleared = "goal_cleared"
	EventKindConnect     = "connect"
	EventKindDisconnect  = "disconnect"
	EventKindTeamChange  = "team_change"
)

// EventRecord is one archived room event.
type EventRecord struct {
	ID          string    `json:"id"`
	RoomID      string    `json:"room_id"`
	Kind        string    `json:"kind"`
	PlayerUUID  string    `json:"player_uuid"`
	PlayerName  string    `json:"player_name"`
	Team        string    `json:"team"`
	Text        string    `json:"text"`
	SquareIndex int       `json:"square_index"`
	SquareName  string    `json:"square_name"`
	Timestamp   uint64    `json:"timestamp"`
	CreatedAt   time.Time `json:"created_at"`
}

// BoardSnapshot is one archived copy of a room's board.
type BoardSnapshot struct {
	ID        string       `json:"id"`
	RoomID    string       `json:"room_id"`
	Squares   []SquareData `json:"squares"`
	CreatedAt time.Time    `json:"created_at"`
}
