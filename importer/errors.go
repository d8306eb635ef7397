// Package importer fetches remote playlists and turns them into media items.
package importer

import (
	"errors"
	"fmt"
)

// Sentinel errors for the import pipeline.
var (
	// ErrUnsupportedURL indicates the URL matches no known provider.
	ErrUnsupportedURL = errors.New("unsupported playlist url")

	// ErrMissingPlaylistID indicates a YouTube URL without a list parameter.
	ErrMissingPlaylistID = errors.New("url has no playlist id")

	// ErrMissingCredential indicates the provider credential is not configured.
	ErrMissingCredential = errors.New("missing provider credential")

	// ErrPrivateOrForbidden indicates the remote API rejected our access.
	ErrPrivateOrForbidden = errors.New("playlist is private or access is forbidden")

	// ErrNotAPlaylist indicates the URL resolved to something else (a track, a user).
	ErrNotAPlaylist = errors.New("url does not resolve to a playlist")
)

// maxDetailBytes bounds how much of a remote error body is kept.
const maxDetailBytes = 200

// RemoteAPIError is an unexpected non-2xx response from a provider API.
type RemoteAPIError struct {
	Status int
	Detail string
}

func (e *RemoteAPIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("remote api error: status %d", e.Status)
	}
	return fmt.Sprintf("remote api error: status %d: %s", e.Status, e.Detail)
}

// truncateDetail clips a response body for inclusion in an error message.
func truncateDetail(body []byte) string {
	if len(body) > maxDetailBytes {
		body = body[:maxDetailBytes]
	}
	return string(body)
}
