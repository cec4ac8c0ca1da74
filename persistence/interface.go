// persistence/interface.go
package persistence

import (
	"github.com/wfunc/bingoclient/models"
)

// Store archives room events and board snapshots so a session can be
// replayed or audited after the fact.
type Store interface {
	SaveEvent(record *models.EventRecord) error
	SaveBoardSnapshot(snapshot *models.BoardSnapshot) error
	LoadTranscript(roomID string, limit int) ([]models.EventRecord, error)
	CountEvents(roomID string) (map[string]int64, error)
	Close() error
}
