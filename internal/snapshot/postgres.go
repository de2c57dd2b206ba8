package snapshot

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type PostgresGateway struct {
	baseGateway
}

func NewPostgresGateway(dsn string) (*PostgresGateway, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	g := &PostgresGateway{baseGateway{
		DB: db,
		Converter: func(query string) string {
			out := query
			for i := 1; strings.Contains(out, "?"); i++ {
				out = strings.Replace(out, "?", fmt.Sprintf("$%d", i), 1)
			}
			return out
		},
	}}

	schema := `
		CREATE TABLE IF NOT EXISTS snapshots (
			key TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at BIGINT NOT NULL DEFAULT extract(epoch from now())
		)`
	if err := g.ensureTable(schema); err != nil {
		db.Close()
		return nil, err
	}

	return g, nil
}

func (g *PostgresGateway) Save(snap *Snapshot) error {
	return g.save(snap, `
		INSERT INTO snapshots (key, data, updated_at)
		VALUES (?, ?, extract(epoch from now()))
		ON CONFLICT(key) DO UPDATE SET
		data = EXCLUDED.data,
		updated_at = EXCLUDED.updated_at
	`)
}

func (g *PostgresGateway) Load() (*Snapshot, error) {
	return g.load()
}
