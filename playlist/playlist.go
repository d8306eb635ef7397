// Package playlist implements named playlist management with whole-document persistence.
package playlist

import (
	"fmt"

	"github.com/melodia-cli/melodia/media"
)

// Playlist is a named, ordered collection of media items.
type Playlist struct {
	Name  string       `json:"name"`
	Items []media.Item `json:"media_files"`
}

// String returns the playlist display name.
func (p *Playlist) String() string {
	return p.Name
}

// TotalDuration sums the known durations of all items in seconds.
// Items with unknown durations contribute nothing.
func (p *Playlist) TotalDuration() int {
	var total int
	for _, item := range p.Items {
		if item.Duration > 0 {
			total += item.Duration
		}
	}
	return total
}

// PrettyDuration formats the total duration as M:SS or H:MM:SS.
func (p *Playlist) PrettyDuration() string {
	total := p.TotalDuration()
	if total <= 0 {
		return "--:--"
	}

	h := total / 3600
	m := total % 3600 / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// ContainsKey reports whether an item with the given identity key is present.
func (p *Playlist) ContainsKey(key string) bool {
	for _, item := range p.Items {
		if item.Key() == key {
			return true
		}
	}
	return false
}
