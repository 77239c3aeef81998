// Package storage keeps the workspace snapshot on local disk.
package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"pp-governance/internal/models"

	"github.com/pkg/errors"
)

// JSONFile stores the snapshot as a single JSON document. Writes go to a
// temp file first and are renamed into place.
type JSONFile struct {
	path string
	mu   sync.Mutex
}

func NewJSONFile(path string) (*JSONFile, error) {
	if path == "" {
		return nil, errors.New("storage: empty data file path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "storage: create data dir")
	}
	return &JSONFile{path: path}, nil
}

// Load returns an empty snapshot when the file does not exist yet.
func (s *JSONFile) Load(_ context.Context) (*models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &models.Snapshot{}, nil
		}
		return nil, errors.Wrapf(err, "storage: read %s", s.path)
	}
	data, err = models.RehydrateDates(data)
	if err != nil {
		return nil, errors.Wrapf(err, "storage: decode %s", s.path)
	}
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, errors.Wrapf(err, "storage: decode %s", s.path)
	}
	return &snap, nil
}

func (s *JSONFile) Save(_ context.Context, snap *models.Snapshot) error {
	if snap == nil {
		return nil
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return errors.Wrap(err, "storage: encode snapshot")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".snapshot-*")
	if err != nil {
		return errors.Wrap(err, "storage: create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "storage: write temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "storage: close temp file")
	}
	return errors.Wrap(os.Rename(tmp.Name(), s.path), "storage: replace data file")
}

// Memory keeps the snapshot in process; handy for tests and demos.
type Memory struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

func (m *Memory) Load(_ context.Context) (*models.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return &models.Snapshot{}, nil
	}
	var snap models.Snapshot
	if err := json.Unmarshal(m.data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (m *Memory) Save(_ context.Context, snap *models.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	m.saves++
	return nil
}

// SaveCount reports how many times Save succeeded.
func (m *Memory) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
