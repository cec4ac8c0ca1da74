// services/history_service.go
package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/wfunc/bingoclient/bus"
	"github.com/wfunc/bingoclient/logger"
	"github.com/wfunc/bingoclient/models"
	"github.com/wfunc/bingoclient/persistence"
)

// HistoryService archives room events through the persistence store. It is
// an ordinary bus subscriber: attach it to a client's bus and it records
// chat messages, goal activity and roster changes as they arrive.
type HistoryService struct {
	store persistence.Store
}

func NewHistoryService(store persistence.Store) *HistoryService {
	return &HistoryService{store: store}
}

// Attach subscribes the service to every archived category. roomID is
// resolved per event so records carry the room that was current when the
// event fired. The returned detach function removes all subscriptions.
func (s *HistoryService) Attach(b *bus.Bus, roomID func() string) (detach func()) {
	cancels := []func(){
		b.SelfChatted.Subscribe(func(n bus.SelfChatted) {
			s.record(roomID(), models.EventRecord{
				Kind: models.EventKindChat, Text: n.Text, Timestamp: n.Timestamp,
			})
		}),
		b.OtherChatted.Subscribe(func(n bus.OtherChatted) {
			s.record(roomID(), models.EventRecord{
				Kind: models.EventKindChat, Text: n.Text, Timestamp: n.Timestamp,
				PlayerUUID: n.Player.UUID, PlayerName: n.Player.Name, Team: n.Player.Team.Name(),
			})
		}),
		b.SelfMarked.Subscribe(func(n bus.SelfMarked) {
			s.record(roomID(), models.EventRecord{
				Kind: models.EventKindGoalMarked, SquareIndex: n.Square.Index, SquareName: n.Square.Name,
			})
		}),
		b.OtherMarked.Subscribe(func(n bus.OtherMarked) {
			s.record(roomID(), models.EventRecord{
				Kind: models.EventKindGoalMarked, SquareIndex: n.Square.Index, SquareName: n.Square.Name,
				PlayerUUID: n.Player.UUID, PlayerName: n.Player.Name, Team: n.Player.Team.Name(),
			})
		}),
		b.SelfCleared.Subscribe(func(n bus.SelfCleared) {
			s.record(roomID(), models.EventRecord{
				Kind: models.EventKindGoalCleared, SquareIndex: n.Square.Index, SquareName: n.Square.Name,
			})
		}),
		b.OtherCleared.Subscribe(func(n bus.OtherCleared) {
			s.record(roomID(), models.EventRecord{
				Kind: models.EventKindGoalCleared, SquareIndex: n.Square.Index, SquareName: n.Square.Name,
				PlayerUUID: n.Player.UUID, PlayerName: n.Player.Name, Team: n.Player.Team.Name(),
			})
		}),
		b.OtherConnected.Subscribe(func(n bus.OtherConnected) {
			s.record(roomID(), models.EventRecord{
				Kind:       models.EventKindConnect,
				PlayerUUID: n.Player.UUID, PlayerName: n.Player.Name, Team: n.Player.Team.Name(),
			})
		}),
		b.OtherDisconnected.Subscribe(func(n bus.OtherDisconnected) {
			s.record(roomID(), models.EventRecord{
				Kind:       models.EventKindDisconnect,
				PlayerUUID: n.Player.UUID, PlayerName: n.Player.Name, Team: n.Player.Team.Name(),
			})
		}),
		b.OtherTeamChanged.Subscribe(func(n bus.OtherTeamChanged) {
			s.record(roomID(), models.EventRecord{
				Kind:       models.EventKindTeamChange,
				PlayerUUID: n.Player.UUID, PlayerName: n.Player.Name, Team: n.NewTeam.Name(),
			})
		}),
	}

	return func() {
		for _, cancel := range cancels {
			cancel()
		}
	}
}

// RecordBoard archives one snapshot of the board.
func (s *HistoryService) RecordBoard(roomID string, squares []models.SquareData) error {
	return s.store.SaveBoardSnapshot(&models.BoardSnapshot{
		ID:        uuid.New().String(),
		RoomID:    roomID,
		Squares:   squares,
		CreatedAt: time.Now(),
	})
}

// Transcript returns the archived chat log of a room.
func (s *HistoryService) Transcript(roomID string, limit int) ([]models.EventRecord, error) {
	return s.store.LoadTranscript(roomID, limit)
}

// Stats returns archived event counts per kind for a room.
func (s *HistoryService) Stats(roomID string) (map[string]int64, error) {
	return s.store.CountEvents(roomID)
}

func (s *HistoryService) record(roomID string, record models.EventRecord) {
	record.ID = uuid.New().String()
	record.RoomID = roomID
	record.CreatedAt = time.Now()

	if err := s.store.SaveEvent(&record); err != nil {
		logger.Log.Warnf("Failed to archive %s event: %v", record.Kind, err)
	}
}
