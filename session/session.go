// session/session.go
package session

import (
	"sync"

	"github.com/wfunc/bingoclient/models"
)

// Session holds the room client's shared mutable state: the current room
// id and the local player's data. Reads come from any goroutine; writes
// come only from the inbound event pump and from Disconnect, which keeps a
// single-writer discipline over the fields.
type Session struct {
	mutex     sync.RWMutex
	roomID    string
	player    models.PlayerData
	isCreator bool
}

func New(isCreator bool) *Session {
	return &Session{isCreator: isCreator}
}

// Connected reports whether the session has joined a room. An empty room
// id means disconnected.
func (s *Session) Connected() bool {
	return s.RoomID() != ""
}

func (s *Session) RoomID() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.roomID
}

func (s *Session) Player() models.PlayerData {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.player
}

// IsCreator reports whether the local session created the room it joined.
func (s *Session) IsCreator() bool {
	return s.isCreator
}

// SetConnected records the self-connect: room id and local player identity.
func (s *Session) SetConnected(roomID string, player models.PlayerData) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.roomID = roomID
	s.player = player
}

// SetTeam updates the local player's team and returns the previous one.
// Applying the same team twice is a harmless no-op.
func (s *Session) SetTeam(team models.Team) (old models.Team) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	old = s.player.Team
	s.player.Team = team
	return old
}

// Reset returns the session to its disconnected defaults.
func (s *Session) Reset() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.roomID = ""
	s.player = models.PlayerData{}
}
