package search

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/melodia-cli/melodia/importer"
	"github.com/melodia-cli/melodia/media"
)

// SoundCloud resolves track URLs into pending items.
//
// SoundCloud exposes no public search API, so the only entry point is a
// pasted permalink. The item is constructed from the URL alone; title and
// artist come from the permalink path segments and stay editable.
type SoundCloud struct{}

// NewSoundCloud returns the resolver.
func NewSoundCloud() *SoundCloud {
	return &SoundCloud{}
}

// FromURL builds an item from a SoundCloud track permalink.
func (s *SoundCloud) FromURL(rawURL string) (media.Item, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || !strings.Contains(strings.ToLower(parsed.Host), "soundcloud.") {
		return media.Item{}, fmt.Errorf("%w: %s", importer.ErrUnsupportedURL, rawURL)
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) < 2 || segments[0] == "" || segments[1] == "" {
		return media.Item{}, fmt.Errorf("%w: %s", importer.ErrUnsupportedURL, rawURL)
	}

	artist := segments[0]
	title := humanizeSlug(segments[len(segments)-1])

	return media.NewOnline(media.ProviderSoundCloud, title, artist, 0, rawURL, ""), nil
}

// humanizeSlug turns a permalink slug into a display title.
func humanizeSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
