package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lox/wildpoker/internal/fileutil"
	"github.com/lox/wildpoker/internal/game"
)

// FileStore keeps one JSON document per game in a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(id string) (string, error) {
	if err := checkID(id); err != nil {
		return "", err
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", fmt.Errorf("invalid game id %q", id)
	}
	return filepath.Join(s.dir, id+".json"), nil
}

// Load reads the document for id.
func (s *FileStore) Load(_ context.Context, id string) (*game.State, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}
	var state game.State
	if err := fileutil.ReadJSON(path, &state); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &state, nil
}

// Save replaces the document for id atomically.
func (s *FileStore) Save(_ context.Context, id string, state *game.State) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}
	return fileutil.WriteJSON(path, state)
}

// Delete removes the document for id.
func (s *FileStore) Delete(_ context.Context, id string) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}
	return fileutil.RemoveIfExists(path)
}

// Close is a no-op.
func (s *FileStore) Close() error {
	return nil
}
