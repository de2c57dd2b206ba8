package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileGateway keeps the blob in a single JSON file. Handy for local
// runs without a database.
type FileGateway struct {
	path string
}

func NewFileGateway(path string) (*FileGateway, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot dir: %w", err)
	}
	return &FileGateway{path: path}, nil
}

func (g *FileGateway) Close() error {
	return nil
}

func (g *FileGateway) Save(snap *Snapshot) error {
	snap.Version = CurrentVersion
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}
	tmp := g.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, g.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

func (g *FileGateway) Load() (*Snapshot, error) {
	data, err := os.ReadFile(g.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return decode(data), nil
}
