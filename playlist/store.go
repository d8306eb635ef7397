package playlist

import (
	"encoding/json"
	"os"

	"github.com/melodia-cli/melodia/filesystem"
	"github.com/melodia-cli/melodia/where"
)

// Store reads and writes the playlist collection as a single JSON document.
//
// The on-disk format is a flat array of playlists. Every save rewrites the
// whole document; there is no partial update path.
type Store struct {
	path string
}

// NewStore returns a store bound to the default playlist location.
func NewStore() *Store {
	return &Store{path: where.Playlists()}
}

// NewStoreAt returns a store bound to a custom path.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted playlist collection.
// A missing file yields an empty collection, not an error.
func (s *Store) Load() ([]*Playlist, error) {
	exists, err := filesystem.API().Exists(s.path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return []*Playlist{}, nil
	}

	data, err := filesystem.API().ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	var playlists []*Playlist
	if err := json.Unmarshal(data, &playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

// Save atomically replaces the persisted collection.
func (s *Store) Save(playlists []*Playlist) error {
	data, err := json.MarshalIndent(playlists, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := filesystem.API().WriteFile(tmp, data, os.ModePerm); err != nil {
		return err
	}
	return filesystem.API().Rename(tmp, s.path)
}
