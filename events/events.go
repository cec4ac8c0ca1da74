// events/events.go
package events

import (
	"github.com/wfunc/bingoclient/models"
)

// Event is the closed set of room events pushed over the duplex
// connection. Values are built once by Parse and never mutated.
type Event interface{ isEvent() }

// Base carries the fields common to every room event.
type Base struct {
	Player    models.PlayerData
	Team      models.Team
	Timestamp uint64
}

// Connected announces a participant joining the room.
type Connected struct {
	Base
	RoomID string
}

// Disconnected announces a participant leaving the room.
type Disconnected struct {
	Base
	RoomID string
}

// Chat carries one chat message.
type Chat struct {
	Base
	Text string
}

// ColorChange announces a participant switching teams. The new team is the
// Base.Team field.
type ColorChange struct {
	Base
}

// GoalMarked announces a square being claimed by the actor's team.
type GoalMarked struct {
	Base
	Square models.SquareData
}

// GoalCleared announces a square claim being removed.
type GoalCleared struct {
	Base
	Square models.SquareData
}

func (Connected) isEvent()    {}
func (Disconnected) isEvent() {}
func (Chat) isEvent()         {}
func (ColorChange) isEvent()  {}
func (GoalMarked) isEvent()   {}
func (GoalCleared) isEvent()  {}
