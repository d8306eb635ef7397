package playlist

import (
	"fmt"

	"github.com/melodia-cli/melodia/log"
	"github.com/melodia-cli/melodia/media"
	"github.com/samber/lo"
)

// Sentinel errors for playlist mutations.
var (
	ErrAlreadyExists = fmt.Errorf("playlist already exists")
	ErrNotFound      = fmt.Errorf("playlist not found")
)

// Manager owns the in-memory playlist collection and keeps it in sync with
// the store. Every structural mutation persists the whole collection before
// returning.
//
// The manager is not safe for concurrent use; the control surface funnels
// all mutations through a single goroutine.
type Manager struct {
	store     *Store
	playlists []*Playlist
	onChange  func()
}

// NewManager loads the persisted collection into a ready manager.
func NewManager(store *Store) (*Manager, error) {
	playlists, err := store.Load()
	if err != nil {
		return nil, err
	}

	return &Manager{store: store, playlists: playlists}, nil
}

// OnChange registers a single observer invoked after every persisted mutation.
func (m *Manager) OnChange(fn func()) {
	m.onChange = fn
}

func (m *Manager) persist() error {
	if err := m.store.Save(m.playlists); err != nil {
		return err
	}
	if m.onChange != nil {
		m.onChange()
	}
	return nil
}

// Names returns playlist names in stable creation order.
func (m *Manager) Names() []string {
	return lo.Map(m.playlists, func(p *Playlist, _ int) string {
		return p.Name
	})
}

// Get returns the playlist with the given name.
func (m *Manager) Get(name string) (*Playlist, error) {
	for _, p := range m.playlists {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// All returns the playlists in stable order.
func (m *Manager) All() []*Playlist {
	return m.playlists
}

// Create adds an empty playlist with the given name.
func (m *Manager) Create(name string) (*Playlist, error) {
	if _, err := m.Get(name); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyExists, name)
	}

	p := &Playlist{Name: name, Items: []media.Item{}}
	m.playlists = append(m.playlists, p)
	if err := m.persist(); err != nil {
		return nil, err
	}

	log.Infof("created playlist %q", name)
	return p, nil
}

// Delete removes the named playlist. Deleting an absent playlist is a no-op.
func (m *Manager) Delete(name string) error {
	before := len(m.playlists)
	m.playlists = lo.Filter(m.playlists, func(p *Playlist, _ int) bool {
		return p.Name != name
	})
	if len(m.playlists) == before {
		return nil
	}

	log.Infof("deleted playlist %q", name)
	return m.persist()
}

// Rename changes a playlist's name, preserving its position.
func (m *Manager) Rename(oldName, newName string) error {
	if oldName == newName {
		return nil
	}
	if _, err := m.Get(newName); err == nil {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, newName)
	}

	p, err := m.Get(oldName)
	if err != nil {
		return err
	}

	p.Name = newName
	return m.persist()
}

// Add appends an item to the named playlist.
func (m *Manager) Add(name string, item media.Item) error {
	p, err := m.Get(name)
	if err != nil {
		return err
	}

	p.Items = append(p.Items, item)
	return m.persist()
}

// AddAll appends items to the named playlist in one persisted mutation.
// Import merges come through here: duplicates are kept as-is.
func (m *Manager) AddAll(name string, items []media.Item) error {
	p, err := m.Get(name)
	if err != nil {
		return err
	}

	p.Items = append(p.Items, items...)
	return m.persist()
}

// Remove deletes the item at index. Out-of-range indexes are no-ops.
func (m *Manager) Remove(name string, index int) error {
	p, err := m.Get(name)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(p.Items) {
		return nil
	}

	p.Items = append(p.Items[:index], p.Items[index+1:]...)
	return m.persist()
}

// Move shifts the item at index by delta positions within the playlist.
// Moves that would leave the playlist bounds are no-ops.
func (m *Manager) Move(name string, index, delta int) error {
	p, err := m.Get(name)
	if err != nil {
		return err
	}

	target := index + delta
	if index < 0 || index >= len(p.Items) || target < 0 || target >= len(p.Items) {
		return nil
	}

	p.Items[index], p.Items[target] = p.Items[target], p.Items[index]
	return m.persist()
}

// Replace swaps the entire item list of the named playlist.
// Used to persist a reordered view in one write.
func (m *Manager) Replace(name string, items []media.Item) error {
	p, err := m.Get(name)
	if err != nil {
		return err
	}

	p.Items = items
	return m.persist()
}

// CopyItem copies an item from one playlist into another, skipping items the
// destination already holds under the same identity key. Returns true when
// the item was copied.
func (m *Manager) CopyItem(fromName string, index int, toName string) (bool, error) {
	from, err := m.Get(fromName)
	if err != nil {
		return false, err
	}
	to, err := m.Get(toName)
	if err != nil {
		return false, err
	}
	if index < 0 || index >= len(from.Items) {
		return false, nil
	}

	item := from.Items[index]
	if to.ContainsKey(item.Key()) {
		return false, nil
	}

	to.Items = append(to.Items, item)
	return true, m.persist()
}
