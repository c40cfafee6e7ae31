package snapshots

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"homerun-fantasy/internal/domain"
)

// FSStore persists the last good leaders snapshot per season on disk.
// Files live at {basePath}/leaders/{season}.json with a domain.Snapshot
// payload. Writes are atomic (tmp file + rename) so a crash mid-write never
// leaves a torn snapshot behind.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed snapshot store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadLeaders reads the stored snapshot for a season.
func (s *FSStore) LoadLeaders(season int) (domain.Snapshot, error) {
	if s == nil {
		return domain.Snapshot{}, errors.New("snapshot store not configured")
	}
	if season <= 0 {
		return domain.Snapshot{}, errors.New("snapshot season required")
	}

	f, err := os.Open(s.leadersPath(season))
	if err != nil {
		return domain.Snapshot{}, err
	}
	defer f.Close()

	var snap domain.Snapshot
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return domain.Snapshot{}, err
	}
	if snap.Season == 0 {
		snap.Season = season
	}
	snap.Source = domain.SourceDisk
	return snap, nil
}

// SaveLeaders writes the snapshot for its season, skipping the write when
// the on-disk content is already identical.
func (s *FSStore) SaveLeaders(snap domain.Snapshot) error {
	if s == nil {
		return errors.New("snapshot store not configured")
	}
	if snap.Season <= 0 {
		return errors.New("snapshot season required")
	}

	target := s.leadersPath(snap.Season)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}

	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return nil
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}

func (s *FSStore) leadersPath(season int) string {
	return filepath.Join(s.basePath, "leaders", fmt.Sprintf("%d.json", season))
}
