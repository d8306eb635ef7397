package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/melodia-cli/melodia/auth"
	"github.com/melodia-cli/melodia/log"
	"github.com/melodia-cli/melodia/media"
	"github.com/melodia-cli/melodia/network"
)

const soundcloudAPIBase = "https://api-v2.soundcloud.com"

// SoundCloud imports playlists via the public resolve endpoint.
type SoundCloud struct {
	// BaseURL overrides the API endpoint, used by tests.
	BaseURL string
	client  *http.Client
}

// NewSoundCloud returns an importer over the shared network client.
func NewSoundCloud() *SoundCloud {
	return &SoundCloud{
		BaseURL: soundcloudAPIBase,
		client:  network.Client,
	}
}

// resolvedPlaylist mirrors the slice of the resolve response we consume.
type resolvedPlaylist struct {
	Kind   string `json:"kind"`
	Title  string `json:"title"`
	Tracks []struct {
		Title        string `json:"title"`
		PermalinkURL string `json:"permalink_url"`
		ID           int64  `json:"id"`
		DurationMs   int    `json:"duration"`
		ArtworkURL   string `json:"artwork_url"`
		User         struct {
			Username string `json:"username"`
		} `json:"user"`
	} `json:"tracks"`
}

// FetchPlaylist resolves rawURL and maps its tracks to media items.
// Durations arrive in milliseconds; artwork is upgraded to the 500px variant.
func (s *SoundCloud) FetchPlaylist(rawURL string) (*Result, error) {
	clientID, ok := auth.Get(auth.SoundCloudClientID).Get()
	if !ok {
		return nil, fmt.Errorf("%w: set %s", ErrMissingCredential, auth.SoundCloudClientID.Env())
	}

	query := url.Values{}
	query.Set("url", rawURL)
	query.Set("client_id", clientID)

	resp, err := s.client.Get(s.BaseURL + "/resolve?" + query.Encode())
	if err != nil {
		return nil, fmt.Errorf("soundcloud api request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read soundcloud response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w (status %d)", ErrPrivateOrForbidden, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, &RemoteAPIError{Status: resp.StatusCode, Detail: truncateDetail(body)}
	}

	var resolved resolvedPlaylist
	if err := json.Unmarshal(body, &resolved); err != nil {
		return nil, fmt.Errorf("parse soundcloud response: %w", err)
	}

	if resolved.Kind != "playlist" {
		return nil, fmt.Errorf("%w: resolved to %q", ErrNotAPlaylist, resolved.Kind)
	}

	result := &Result{RemoteTitle: resolved.Title}
	if result.RemoteTitle == "" {
		result.RemoteTitle = "SoundCloud Playlist"
	}

	for _, track := range resolved.Tracks {
		item := media.NewOnline(
			media.ProviderSoundCloud,
			track.Title,
			track.User.Username,
			track.DurationMs/1000,
			track.PermalinkURL,
			fmt.Sprintf("%d", track.ID),
		)
		item.ThumbnailURL = upgradeArtwork(track.ArtworkURL)
		result.Items = append(result.Items, item)
	}

	log.Infof("resolved %d tracks from soundcloud playlist %q", len(result.Items), resolved.Title)
	return result, nil
}

// upgradeArtwork swaps the default artwork size for the 500px variant.
func upgradeArtwork(artworkURL string) string {
	return strings.Replace(artworkURL, "large", "t500x500", 1)
}
