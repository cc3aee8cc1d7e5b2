package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore implements Store with a single JSON file on disk, the reload
// persistence analogue for a headless client. All kinds share the file but
// each kind has its own entry keyed by kind name.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store backed by the given file path. The file is
// created lazily on first save.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("session file store: path is required")
	}
	return &FileStore{path: path}, nil
}

// Load returns the snapshot for a kind.
func (f *FileStore) Load(ctx context.Context, kind Kind) (*Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.read()
	if err != nil {
		return nil, err
	}

	snap, exists := entries[kind.String()]
	if !exists {
		return nil, ErrSnapshotNotFound
	}
	return &snap, nil
}

// Save stores the snapshot for a kind.
func (f *FileStore) Save(ctx context.Context, kind Kind, snap *Snapshot) error {
	if snap == nil {
		return ErrInvalidSnapshot
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.read()
	if err != nil {
		return err
	}

	entries[kind.String()] = *snap
	return f.write(entries)
}

// Clear removes the snapshot for a kind.
func (f *FileStore) Clear(ctx context.Context, kind Kind) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.read()
	if err != nil {
		return err
	}

	if _, exists := entries[kind.String()]; !exists {
		return nil
	}

	delete(entries, kind.String())
	return f.write(entries)
}

func (f *FileStore) read() (map[string]Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]Snapshot), nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}

	entries := make(map[string]Snapshot)
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		// A corrupt snapshot file is provisional data; start over rather
		// than wedging every session check behind a decode error.
		return make(map[string]Snapshot), nil
	}
	return entries, nil
}

// write replaces the file atomically via temp file and rename so a crash
// mid-write never leaves a truncated snapshot behind.
func (f *FileStore) write(entries map[string]Snapshot) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close session file: %w", err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}
