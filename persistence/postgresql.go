// persistence/postgresql.go
package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/wfunc/bingoclient/models"
)

// PostgreSQL is the raw database/sql archive store, for deployments that
// prefer plain SQL over GORM.
type PostgreSQL struct {
	db *sql.DB
}

func NewPostgreSQL(host string, port int, user, password, dbname string) (*PostgreSQL, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := initTables(db); err != nil {
		return nil, err
	}

	return &PostgreSQL{db: db}, nil
}

func initTables(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS room_events (
            id TEXT PRIMARY KEY,
            room_id TEXT NOT NULL,
            kind TEXT NOT NULL,
            player_uuid TEXT,
            player_name TEXT,
            team TEXT,
            text TEXT,
            square_index INTEGER,
            square_name TEXT,
            timestamp BIGINT,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS board_snapshots (
            id TEXT PRIMARY KEY,
            room_id TEXT NOT NULL,
            squares JSONB NOT NULL,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_room_events_room ON room_events (room_id, kind)`)
	return err
}

func (p *PostgreSQL) SaveEvent(record *models.EventRecord) error {
	_, err := p.db.Exec(`
        INSERT INTO room_events
            (id, room_id, kind, player_uuid, player_name, team, text, square_index, square_name, timestamp, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		record.ID, record.RoomID, record.Kind, record.PlayerUUID, record.PlayerName,
		record.Team, record.Text, record.SquareIndex, record.SquareName,
		record.Timestamp, record.CreatedAt,
	)
	return err
}

func (p *PostgreSQL) SaveBoardSnapshot(snapshot *models.BoardSnapshot) error {
	squares, err := json.Marshal(snapshot.Squares)
	if err != nil {
		return err
	}

	_, err = p.db.Exec(`
        INSERT INTO board_snapshots (id, room_id, squares, created_at)
        VALUES ($1, $2, $3, $4)`,
		snapshot.ID, snapshot.RoomID, squares, snapshot.CreatedAt,
	)
	return err
}

func (p *PostgreSQL) LoadTranscript(roomID string, limit int) ([]models.EventRecord, error) {
	query := `
        SELECT id, room_id, kind, player_uuid, player_name, team, text,
               square_index, square_name, timestamp, created_at
        FROM room_events
        WHERE room_id = $1 AND kind = $2
        ORDER BY created_at ASC`
	args := []any{roomID, models.EventKindChat}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	rows, err := p.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.EventRecord
	for rows.Next() {
		var r models.EventRecord
		if err := rows.Scan(&r.ID, &r.RoomID, &r.Kind, &r.PlayerUUID, &r.PlayerName,
			&r.Team, &r.Text, &r.SquareIndex, &r.SquareName, &r.Timestamp, &r.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (p *PostgreSQL) CountEvents(roomID string) (map[string]int64, error) {
	rows, err := p.db.Query(`
        SELECT kind, COUNT(*) FROM room_events WHERE room_id = $1 GROUP BY kind`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]int64)
	for rows.Next() {
		var kind string
		var total int64
		if err := rows.Scan(&kind, &total); err != nil {
			return nil, err
		}
		result[kind] = total
	}
	return result, rows.Err()
}

func (p *PostgreSQL) Close() error {
	return p.db.Close()
}
