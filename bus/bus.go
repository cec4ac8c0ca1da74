// bus/bus.go
package bus

import (
	"sync"

	"github.com/wfunc/bingoclient/models"
)

// Feed is one notification category with its own subscriber list.
// Subscribers may attach and detach at any time, including from inside a
// running handler: fan-out walks a snapshot of the list, so a detach during
// delivery never skips or double-notifies the remaining subscribers.
type Feed[T any] struct {
	mutex  sync.Mutex
	subs   map[uint64]func(T)
	nextID uint64
}

// Subscribe registers a handler and returns its cancel function. Cancelling
// twice is harmless.
func (f *Feed[T]) Subscribe(fn func(T)) (cancel func()) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.subs == nil {
		f.subs = make(map[uint64]func(T))
	}
	id := f.nextID
	f.nextID++
	f.subs[id] = fn

	return func() {
		f.mutex.Lock()
		defer f.mutex.Unlock()
		delete(f.subs, id)
	}
}

// Publish delivers the payload to every subscriber registered at the time
// of the call. Handlers run on the caller's goroutine, in unspecified order.
func (f *Feed[T]) Publish(v T) {
	f.mutex.Lock()
	snapshot := make([]func(T), 0, len(f.subs))
	for _, fn := range f.subs {
		snapshot = append(snapshot, fn)
	}
	f.mutex.Unlock()

	for _, fn := range snapshot {
		fn(v)
	}
}

// Len reports the current number of subscribers.
func (f *Feed[T]) Len() int {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return len(f.subs)
}

// Payloads carried by each notification category.
type (
	SelfConnected struct {
		RoomID string
		Player models.PlayerData
	}
	OtherConnected struct {
		Player models.PlayerData
	}
	SelfDisconnected struct{}
	OtherDisconnected struct {
		Player models.PlayerData
	}
	SelfMarked struct {
		Square models.SquareData
	}
	OtherMarked struct {
		Player models.PlayerData
		Square models.SquareData
	}
	SelfCleared struct {
		Square models.SquareData
	}
	OtherCleared struct {
		Player models.PlayerData
		Square models.SquareData
	}
	SelfChatted struct {
		Text      string
		Timestamp uint64
	}
	OtherChatted struct {
		Player    models.PlayerData
		Text      string
		Timestamp uint64
	}
	SelfTeamChanged struct {
		OldTeam models.Team
		NewTeam models.Team
	}
	OtherTeamChanged struct {
		Player  models.PlayerData
		OldTeam models.Team
		NewTeam models.Team
	}
)

// Bus groups every notification feed a room client publishes. One bus
// belongs to one client; UI layers and other sinks subscribe to the
// categories they care about.
type Bus struct {
	SelfConnected     Feed[SelfConnected]
	OtherConnected    Feed[OtherConnected]
	SelfDisconnected  Feed[SelfDisconnected]
	OtherDisconnected Feed[OtherDisconnected]
	SelfMarked        Feed[SelfMarked]
	OtherMarked       Feed[OtherMarked]
	SelfCleared       Feed[SelfCleared]
	OtherCleared      Feed[OtherCleared]
	SelfChatted       Feed[SelfChatted]
	OtherChatted      Feed[OtherChatted]
	SelfTeamChanged   Feed[SelfTeamChanged]
	OtherTeamChanged  Feed[OtherTeamChanged]
}

func New() *Bus {
	return &Bus{}
}
