package snapshot

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/mooncakehq/mooncake/internal/models"
)

// StorageKey is the single fixed key the whole snapshot lives under.
const StorageKey = "chinese-culture-grader-data"

// CurrentVersion tags newly written snapshots. Older blobs without a
// version field are read as version 1.
const CurrentVersion = 1

// Snapshot is the full persisted state at one point in time.
type Snapshot struct {
	Version     int                 `json:"version"`
	Users       []models.User       `json:"users"`
	Assignments []models.Assignment `json:"assignments"`
	Submissions []models.Submission `json:"submissions"`
}

// Gateway durably stores one snapshot blob and restores it.
//
// Load returns (nil, nil) when nothing is stored or when the stored
// payload does not parse: corrupt data is treated as absent, the caller
// falls back to seed defaults.
type Gateway interface {
	Close() error
	Save(snap *Snapshot) error
	Load() (*Snapshot, error)
}

// baseGateway provides the blob table plumbing shared by the SQL-backed
// implementations.
type baseGateway struct {
	DB        *sqlx.DB
	Converter func(string) string
}

func (g *baseGateway) Close() error {
	if g.DB != nil {
		return g.DB.Close()
	}
	return nil
}

func (g *baseGateway) ensureTable(schema string) error {
	if _, err := g.DB.Exec(schema); err != nil {
		return fmt.Errorf("failed to create snapshots table: %w", err)
	}
	return nil
}

func (g *baseGateway) save(snap *Snapshot, upsert string) error {
	snap.Version = CurrentVersion
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}
	if _, err := g.DB.Exec(g.Converter(upsert), StorageKey, string(data)); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

func (g *baseGateway) load() (*Snapshot, error) {
	var data string
	query := g.Converter(`SELECT data FROM snapshots WHERE key = ?`)
	err := g.DB.Get(&data, query, StorageKey)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return decode([]byte(data)), nil
}

// decode parses a stored blob, returning nil for anything unreadable.
func decode(data []byte) *Snapshot {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		logger.Error.Printf("Discarding corrupt snapshot: %v", err)
		return nil
	}
	if snap.Version == 0 {
		snap.Version = 1
	}
	return &snap
}
