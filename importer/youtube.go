package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/melodia-cli/melodia/auth"
	"github.com/melodia-cli/melodia/key"
	"github.com/melodia-cli/melodia/log"
	"github.com/melodia-cli/melodia/media"
	"github.com/melodia-cli/melodia/network"
	"github.com/spf13/viper"
)

const youtubeAPIBase = "https://www.googleapis.com/youtube/v3"

// YouTube imports playlists via the YouTube Data API playlistItems endpoint.
type YouTube struct {
	// BaseURL overrides the API endpoint, used by tests.
	BaseURL string
	client  *http.Client
}

// NewYouTube returns an importer over the shared network client.
func NewYouTube() *YouTube {
	return &YouTube{
		BaseURL: youtubeAPIBase,
		client:  network.Client,
	}
}

// playlistItemsPage mirrors the slice of the API response we consume.
type playlistItemsPage struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			Thumbnails   struct {
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
			} `json:"thumbnails"`
			ResourceID struct {
				VideoID string `json:"videoId"`
			} `json:"resourceId"`
		} `json:"snippet"`
	} `json:"items"`
}

// FetchPlaylist retrieves every track of the playlist referenced by rawURL.
//
// The playlist id comes from the url's list query parameter. Pages are
// fetched until the API stops returning a nextPageToken; entries without a
// video id (deleted or private videos) are skipped.
func (y *YouTube) FetchPlaylist(rawURL string) (*Result, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedURL, rawURL)
	}

	playlistID := parsed.Query().Get("list")
	if playlistID == "" {
		return nil, ErrMissingPlaylistID
	}

	apiKey, ok := auth.Get(auth.YouTubeAPIKey).Get()
	if !ok {
		return nil, fmt.Errorf("%w: set %s", ErrMissingCredential, auth.YouTubeAPIKey.Env())
	}

	result := &Result{RemoteTitle: "YouTube Playlist"}
	pageSize := viper.GetInt(key.ImportPageSize)
	if pageSize <= 0 || pageSize > 50 {
		pageSize = 50
	}

	pageToken := ""
	for page := 0; ; page++ {
		query := url.Values{}
		query.Set("part", "snippet")
		query.Set("playlistId", playlistID)
		query.Set("maxResults", strconv.Itoa(pageSize))
		query.Set("key", apiKey)
		if pageToken != "" {
			query.Set("pageToken", pageToken)
		}

		var parsed playlistItemsPage
		if err := y.getJSON("/playlistItems", query, &parsed); err != nil {
			return nil, err
		}

		for _, entry := range parsed.Items {
			videoID := entry.Snippet.ResourceID.VideoID
			if videoID == "" {
				continue
			}

			item := media.NewOnline(
				media.ProviderYouTube,
				entry.Snippet.Title,
				entry.Snippet.ChannelTitle,
				0,
				"https://www.youtube.com/watch?v="+videoID,
				videoID,
			)
			item.ThumbnailURL = entry.Snippet.Thumbnails.Medium.URL
			result.Items = append(result.Items, item)

			if page == 0 && entry.Snippet.ChannelTitle != "" {
				result.RemoteTitle = entry.Snippet.ChannelTitle
			}
		}

		pageToken = parsed.NextPageToken
		if pageToken == "" {
			break
		}
	}

	log.Infof("fetched %d items from youtube playlist %s", len(result.Items), playlistID)
	return result, nil
}

// getJSON performs one API request with status classification.
func (y *YouTube) getJSON(path string, query url.Values, target interface{}) error {
	resp, err := y.client.Get(y.BaseURL + path + "?" + query.Encode())
	if err != nil {
		return fmt.Errorf("youtube api request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read youtube response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w (status %d)", ErrPrivateOrForbidden, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return &RemoteAPIError{Status: resp.StatusCode, Detail: truncateDetail(body)}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("parse youtube response: %w", err)
	}
	return nil
}
