package search

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/melodia-cli/melodia/auth"
	"github.com/melodia-cli/melodia/importer"
	"github.com/melodia-cli/melodia/internal/cache"
	"github.com/melodia-cli/melodia/key"
	"github.com/melodia-cli/melodia/media"
	"github.com/melodia-cli/melodia/network"
	"github.com/spf13/viper"
)

const youtubeAPIBase = "https://www.googleapis.com/youtube/v3"

// YouTube searches videos and resolves single video URLs via the Data API.
type YouTube struct {
	// BaseURL overrides the API endpoint, used by tests.
	BaseURL string
	client  *http.Client
}

// NewYouTube returns a searcher over the shared network client.
func NewYouTube() *YouTube {
	return &YouTube{
		BaseURL: youtubeAPIBase,
		client:  network.Client,
	}
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			Thumbnails   struct {
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

type videosResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			Thumbnails   struct {
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
			} `json:"thumbnails"`
		} `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// Search queries the search endpoint and backfills durations from the
// videos endpoint in a single batch request. Results are cached on disk to
// keep repeated searches off the API quota.
func (y *YouTube) Search(query string) ([]media.Item, error) {
	cacheKey := cache.GenerateKey(query, media.ProviderYouTube.String())
	var cached []media.Item
	if cache.Read(cacheKey, &cached) {
		return cached, nil
	}

	apiKey, ok := auth.Get(auth.YouTubeAPIKey).Get()
	if !ok {
		return nil, fmt.Errorf("%w: set %s", importer.ErrMissingCredential, auth.YouTubeAPIKey.Env())
	}

	limit := viper.GetInt(key.SearchYouTubeLimit)
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(limit))
	params.Set("key", apiKey)

	var found searchResponse
	if err := y.getJSON("/search", params, &found); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(found.Items))
	for _, entry := range found.Items {
		if entry.ID.VideoID != "" {
			ids = append(ids, entry.ID.VideoID)
		}
	}
	if len(ids) == 0 {
		return []media.Item{}, nil
	}

	durations, err := y.fetchDurations(apiKey, ids)
	if err != nil {
		// Search results without durations still beat no results.
		durations = map[string]int{}
	}

	items := make([]media.Item, 0, len(found.Items))
	for _, entry := range found.Items {
		videoID := entry.ID.VideoID
		if videoID == "" {
			continue
		}

		item := media.NewOnline(
			media.ProviderYouTube,
			entry.Snippet.Title,
			entry.Snippet.ChannelTitle,
			durations[videoID],
			"https://www.youtube.com/watch?v="+videoID,
			videoID,
		)
		item.ThumbnailURL = entry.Snippet.Thumbnails.Medium.URL
		items = append(items, item)
	}

	_ = cache.Write(cacheKey, items)
	return items, nil
}

// fetchDurations resolves video durations for a batch of ids.
func (y *YouTube) fetchDurations(apiKey string, ids []string) (map[string]int, error) {
	params := url.Values{}
	params.Set("part", "contentDetails")
	params.Set("id", strings.Join(ids, ","))
	params.Set("key", apiKey)

	var videos videosResponse
	if err := y.getJSON("/videos", params, &videos); err != nil {
		return nil, err
	}

	durations := make(map[string]int, len(videos.Items))
	for _, entry := range videos.Items {
		durations[entry.ID] = parseISODuration(entry.ContentDetails.Duration)
	}
	return durations, nil
}

// videoIDRes match the URL shapes a YouTube video link can take.
var videoIDRes = []*regexp.Regexp{
	regexp.MustCompile(`[?&]v=([\w-]{6,})`),
	regexp.MustCompile(`youtu\.be/([\w-]{6,})`),
	regexp.MustCompile(`/embed/([\w-]{6,})`),
	regexp.MustCompile(`/shorts/([\w-]{6,})`),
}

// ExtractVideoID pulls the video id out of a YouTube URL, empty when none.
func ExtractVideoID(rawURL string) string {
	for _, re := range videoIDRes {
		if match := re.FindStringSubmatch(rawURL); match != nil {
			return match[1]
		}
	}
	return ""
}

// FromURL resolves a single video URL into a playable item.
func (y *YouTube) FromURL(rawURL string) (media.Item, error) {
	videoID := ExtractVideoID(rawURL)
	if videoID == "" {
		return media.Item{}, fmt.Errorf("%w: %s", importer.ErrUnsupportedURL, rawURL)
	}

	apiKey, ok := auth.Get(auth.YouTubeAPIKey).Get()
	if !ok {
		return media.Item{}, fmt.Errorf("%w: set %s", importer.ErrMissingCredential, auth.YouTubeAPIKey.Env())
	}

	params := url.Values{}
	params.Set("part", "snippet,contentDetails")
	params.Set("id", videoID)
	params.Set("key", apiKey)

	var videos videosResponse
	if err := y.getJSON("/videos", params, &videos); err != nil {
		return media.Item{}, err
	}
	if len(videos.Items) == 0 {
		return media.Item{}, fmt.Errorf("video %s not found", videoID)
	}

	entry := videos.Items[0]
	item := media.NewOnline(
		media.ProviderYouTube,
		entry.Snippet.Title,
		entry.Snippet.ChannelTitle,
		parseISODuration(entry.ContentDetails.Duration),
		"https://www.youtube.com/watch?v="+videoID,
		videoID,
	)
	item.ThumbnailURL = entry.Snippet.Thumbnails.Medium.URL
	return item, nil
}

// getJSON performs one API request with the importer's status classification.
func (y *YouTube) getJSON(path string, params url.Values, target interface{}) error {
	resp, err := y.client.Get(y.BaseURL + path + "?" + params.Encode())
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
		return fmt.Errorf("%w (status %d)", importer.ErrPrivateOrForbidden, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return &importer.RemoteAPIError{Status: resp.StatusCode, Detail: string(body)}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("parse youtube response: %w", err)
	}
	return nil
}
