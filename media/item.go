// Package media defines the domain models for playable media items.
package media

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// Item represents a single playable entry in a playlist or queue.
//
// An item is either local (backed by a file on disk) or online (backed by a
// streaming provider). The Provider field discriminates; online-only fields
// stay empty for local items.
type Item struct {
	Title    string
	Artist   string
	Duration int // seconds, 0 when unknown
	Provider Provider
	Note     string

	// Local items only.
	LocalPath string

	// Online items only.
	SourceURL        string
	SourceID         string
	ThumbnailURL     string
	StreamingQuality string
}

// NewLocal constructs a local item from a file path.
// An empty title falls back to the file name without extension.
func NewLocal(title, artist string, duration int, path string) Item {
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return Item{
		Title:     title,
		Artist:    displayArtist(artist),
		Duration:  duration,
		Provider:  ProviderLocal,
		LocalPath: path,
	}
}

// NewOnline constructs a streaming item. At least one of url and sourceID
// should be non-empty for the item to be playable.
func NewOnline(provider Provider, title, artist string, duration int, url, sourceID string) Item {
	return Item{
		Title:     title,
		Artist:    displayArtist(artist),
		Duration:  duration,
		Provider:  provider,
		SourceURL: url,
		SourceID:  sourceID,
	}
}

func displayArtist(artist string) string {
	if strings.TrimSpace(artist) == "" {
		return "Unknown Artist"
	}
	return artist
}

// Online reports whether the item streams from a remote provider.
func (i Item) Online() bool {
	return i.Provider.Online()
}

// Key returns the stable identity of the item, used for deduplication.
// Two items describing the same underlying media always produce the same
// key; the key never depends on mutable fields like Title or Note.
func (i Item) Key() string {
	if !i.Online() {
		return string(ProviderLocal) + ":" + i.LocalPath
	}

	ref := i.SourceID
	if ref == "" {
		ref = i.SourceURL
	}
	return i.Provider.String() + ":" + ref
}

// String returns the item's display representation.
func (i Item) String() string {
	return fmt.Sprintf("%s - %s", i.Artist, i.Title)
}

// PrettyDuration formats the duration as M:SS or H:MM:SS.
// Unknown durations render as "--:--".
func (i Item) PrettyDuration() string {
	if i.Duration <= 0 {
		return "--:--"
	}

	h := i.Duration / 3600
	m := i.Duration % 3600 / 60
	s := i.Duration % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// itemJSON is the persisted wire form of an item.
type itemJSON struct {
	Title            string `json:"title"`
	Artist           string `json:"artist"`
	Duration         int    `json:"duration"`
	FilePath         string `json:"file_path,omitempty"`
	Provider         string `json:"provider"`
	Note             string `json:"note,omitempty"`
	URL              string `json:"url,omitempty"`
	SourceID         string `json:"source_id,omitempty"`
	StreamingQuality string `json:"streaming_quality,omitempty"`
	ThumbnailURL     string `json:"thumbnail_url,omitempty"`
}

// MarshalJSON implements json.Marshaler using the persisted schema.
func (i Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(itemJSON{
		Title:            i.Title,
		Artist:           i.Artist,
		Duration:         i.Duration,
		FilePath:         i.LocalPath,
		Provider:         i.Provider.String(),
		Note:             i.Note,
		URL:              i.SourceURL,
		SourceID:         i.SourceID,
		StreamingQuality: i.StreamingQuality,
		ThumbnailURL:     i.ThumbnailURL,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
// An entry is treated as online when its provider says so or, for documents
// written before the provider field existed, when a url is present.
func (i *Item) UnmarshalJSON(data []byte) error {
	var raw itemJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	provider := ParseProvider(raw.Provider)
	if provider == ProviderLocal && raw.URL != "" {
		provider = ProviderYouTube
	}

	*i = Item{
		Title:            raw.Title,
		Artist:           displayArtist(raw.Artist),
		Duration:         raw.Duration,
		Provider:         provider,
		Note:             raw.Note,
		LocalPath:        raw.FilePath,
		SourceURL:        raw.URL,
		SourceID:         raw.SourceID,
		StreamingQuality: raw.StreamingQuality,
		ThumbnailURL:     raw.ThumbnailURL,
	}
	return nil
}
