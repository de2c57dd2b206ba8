package snapshot

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

type SQLiteGateway struct {
	baseGateway
}

func NewSQLiteGateway(dsn string) (*SQLiteGateway, error) {
	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to sqlite: %w", err)
	}

	g := &SQLiteGateway{baseGateway{
		DB: db,
		Converter: func(query string) string {
			return query
		},
	}}

	schema := `
		CREATE TABLE IF NOT EXISTS snapshots (
			key TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
		)`
	if err := g.ensureTable(schema); err != nil {
		db.Close()
		return nil, err
	}

	return g, nil
}

func (g *SQLiteGateway) Save(snap *Snapshot) error {
	return g.save(snap, `
		INSERT INTO snapshots (key, data, updated_at)
		VALUES (?, ?, strftime('%s', 'now'))
		ON CONFLICT(key) DO UPDATE SET
		data = excluded.data,
		updated_at = excluded.updated_at
	`)
}

func (g *SQLiteGateway) Load() (*Snapshot, error) {
	return g.load()
}
