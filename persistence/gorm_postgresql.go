// persistence/gorm_postgresql.go
package persistence

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wfunc/bingoclient/models"
)

// GormPostgreSQL is the GORM-backed archive store.
type GormPostgreSQL struct {
	db *gorm.DB
}

func NewGormPostgreSQL(host string, port int, user, password, dbname string) (*GormPostgreSQL, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Silent,
			Colorful:      false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := autoMigrate(db); err != nil {
		return nil, err
	}

	return &GormPostgreSQL{db: db}, nil
}

// GORM models for the archive tables.
type EventModel struct {
	ID          string `gorm:"primaryKey"`
	RoomID      string `gorm:"index;not null"`
	Kind        string `gorm:"index;not null"`
	PlayerUUID  string
	PlayerName  string
	Team        string
	Text        string
	SquareIndex int
	SquareName  string
	Timestamp   uint64
	CreatedAt   time.Time
}

type SnapshotModel struct {
	ID        string `gorm:"primaryKey"`
	RoomID    string `gorm:"index;not null"`
	Squares   string `gorm:"type:jsonb"`
	CreatedAt time.Time
}

func (EventModel) TableName() string    { return "room_events" }
func (SnapshotModel) TableName() string { return "board_snapshots" }

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&EventModel{},
		&SnapshotModel{},
	)
}

func (p *GormPostgreSQL) SaveEvent(record *models.EventRecord) error {
	row := EventModel{
		ID:          record.ID,
		RoomID:      record.RoomID,
		Kind:        record.Kind,
		PlayerUUID:  record.PlayerUUID,
		PlayerName:  record.PlayerName,
		Team:        record.Team,
		Text:        record.Text,
		SquareIndex: record.SquareIndex,
		SquareName:  record.SquareName,
		Timestamp:   record.Timestamp,
		CreatedAt:   record.CreatedAt,
	}
	return p.db.Create(&row).Error
}

func (p *GormPostgreSQL) SaveBoardSnapshot(snapshot *models.BoardSnapshot) error {
	squares, err := json.Marshal(snapshot.Squares)
	if err != nil {
		return err
	}

	row := SnapshotModel{
		ID:        snapshot.ID,
		RoomID:    snapshot.RoomID,
		Squares:   string(squares),
		CreatedAt: snapshot.CreatedAt,
	}
	return p.db.Create(&row).Error
}

func (p *GormPostgreSQL) LoadTranscript(roomID string, limit int) ([]models.EventRecord, error) {
	var rows []EventModel
	query := p.db.Where("room_id = ? AND kind = ?", roomID, models.EventKindChat).
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]models.EventRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, models.EventRecord{
			ID:          row.ID,
			RoomID:      row.RoomID,
			Kind:        row.Kind,
			PlayerUUID:  row.PlayerUUID,
			PlayerName:  row.PlayerName,
			Team:        row.Team,
			Text:        row.Text,
			SquareIndex: row.SquareIndex,
			SquareName:  row.SquareName,
			Timestamp:   row.Timestamp,
			CreatedAt:   row.CreatedAt,
		})
	}
	return records, nil
}

func (p *GormPostgreSQL) CountEvents(roomID string) (map[string]int64, error) {
	type kindCount struct {
		Kind  string
		Total int64
	}

	var counts []kindCount
	err := p.db.Model(&EventModel{}).
		Select("kind, COUNT(*) as total").
		Where("room_id = ?", roomID).
		Group("kind").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]int64, len(counts))
	for _, c := range counts {
		result[c.Kind] = c.Total
	}
	return result, nil
}

func (p *GormPostgreSQL) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
