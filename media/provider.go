// Package media defines the domain models for playable media items.
package media

// Provider identifies where a media item comes from.
type Provider string

const (
	ProviderLocal      Provider = "local"
	ProviderYouTube    Provider = "youtube"
	ProviderSoundCloud Provider = "soundcloud"
)

// Providers returns all known provider identifiers.
func Providers() []Provider {
	return []Provider{ProviderLocal, ProviderYouTube, ProviderSoundCloud}
}

// ParseProvider normalizes a raw provider string.
// Unknown or empty values fall back to ProviderLocal, matching how
// persisted playlists written by older versions are read back.
func ParseProvider(raw string) Provider {
	switch Provider(raw) {
	case ProviderYouTube:
		return ProviderYouTube
	case ProviderSoundCloud:
		return ProviderSoundCloud
	default:
		return ProviderLocal
	}
}

// Online reports whether the provider streams over the network.
func (p Provider) Online() bool {
	return p != ProviderLocal
}

// String returns the canonical provider identifier.
func (p Provider) String() string {
	return string(p)
}
