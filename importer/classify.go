package importer

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/melodia-cli/melodia/media"
)

// Classify maps a playlist URL to the provider that can import it.
func Classify(rawURL string) (media.Provider, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedURL, rawURL)
	}

	host := strings.ToLower(parsed.Host)
	switch {
	case strings.Contains(host, "youtube.") || strings.Contains(host, "youtu.be"):
		return media.ProviderYouTube, nil
	case strings.Contains(host, "soundcloud."):
		return media.ProviderSoundCloud, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedURL, rawURL)
	}
}
