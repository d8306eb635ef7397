package importer

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/melodia-cli/melodia/media"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClassify(t *testing.T) {
	Convey("Classify", t, func() {
		Convey("Recognizes YouTube hosts", func() {
			for _, rawURL := range []string{
				"https://www.youtube.com/playlist?list=PL123",
				"https://music.youtube.com/playlist?list=PL123",
				"https://youtu.be/abc",
			} {
				provider, err := Classify(rawURL)
				So(err, ShouldBeNil)
				So(provider, ShouldEqual, media.ProviderYouTube)
			}
		})

		Convey("Recognizes SoundCloud hosts", func() {
			provider, err := Classify("https://soundcloud.com/artist/sets/mix")
			So(err, ShouldBeNil)
			So(provider, ShouldEqual, media.ProviderSoundCloud)
		})

		Convey("Rejects everything else", func() {
			_, err := Classify("https://example.com/playlist")
			So(errors.Is(err, ErrUnsupportedURL), ShouldBeTrue)
		})
	})
}

func TestYouTubeImport(t *testing.T) {
	t.Setenv("MELODIA_YOUTUBE_API_KEY", "test-key")

	Convey("Given the YouTube playlistItems API", t, func() {
		Convey("It follows nextPageToken across pages", func(c C) {
			var requests []string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				requests = append(requests, r.URL.Query().Get("pageToken"))
				c.So(r.URL.Path, ShouldEqual, "/playlistItems")
				c.So(r.URL.Query().Get("playlistId"), ShouldEqual, "PL123")
				c.So(r.URL.Query().Get("key"), ShouldEqual, "test-key")

				if r.URL.Query().Get("pageToken") == "" {
					fmt.Fprint(w, `{
						"nextPageToken": "page2",
						"items": [
							{"snippet": {"title": "Track One", "channelTitle": "Some Channel",
								"resourceId": {"videoId": "vid1"},
								"thumbnails": {"medium": {"url": "https://img/1.jpg"}}}},
							{"snippet": {"title": "Deleted video", "channelTitle": "Some Channel",
								"resourceId": {}}}
						]
					}`)
					return
				}
				fmt.Fprint(w, `{
					"items": [
						{"snippet": {"title": "Track Two", "channelTitle": "Some Channel",
							"resourceId": {"videoId": "vid2"}}}
					]
				}`)
			}))
			defer srv.Close()

			yt := &YouTube{BaseURL: srv.URL, client: srv.Client()}
			result, err := yt.FetchPlaylist("https://www.youtube.com/playlist?list=PL123")

			So(err, ShouldBeNil)
			So(requests, ShouldResemble, []string{"", "page2"})
			So(result.Items, ShouldHaveLength, 2)
			So(result.Items[0].SourceID, ShouldEqual, "vid1")
			So(result.Items[0].SourceURL, ShouldEqual, "https://www.youtube.com/watch?v=vid1")
			So(result.Items[0].ThumbnailURL, ShouldEqual, "https://img/1.jpg")
			So(result.Items[1].SourceID, ShouldEqual, "vid2")
			So(result.RemoteTitle, ShouldEqual, "Some Channel")
		})

		Convey("403 responses classify as private or forbidden", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			}))
			defer srv.Close()

			yt := &YouTube{BaseURL: srv.URL, client: srv.Client()}
			_, err := yt.FetchPlaylist("https://www.youtube.com/playlist?list=PL123")
			So(errors.Is(err, ErrPrivateOrForbidden), ShouldBeTrue)
		})

		Convey("Other failures carry status and truncated detail", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				for i := 0; i < 100; i++ {
					fmt.Fprint(w, "0123456789")
				}
			}))
			defer srv.Close()

			yt := &YouTube{BaseURL: srv.URL, client: srv.Client()}
			_, err := yt.FetchPlaylist("https://www.youtube.com/playlist?list=PL123")

			var remote *RemoteAPIError
			So(errors.As(err, &remote), ShouldBeTrue)
			So(remote.Status, ShouldEqual, http.StatusInternalServerError)
			So(len(remote.Detail), ShouldEqual, maxDetailBytes)
		})

		Convey("A url without a list parameter fails fast", func() {
			yt := NewYouTube()
			_, err := yt.FetchPlaylist("https://www.youtube.com/watch?v=abc")
			So(errors.Is(err, ErrMissingPlaylistID), ShouldBeTrue)
		})
	})
}

func TestYouTubeMissingCredential(t *testing.T) {
	t.Setenv("MELODIA_YOUTUBE_API_KEY", "")

	Convey("Without an API key the import fails fast", t, func() {
		yt := NewYouTube()
		_, err := yt.FetchPlaylist("https://www.youtube.com/playlist?list=PL123")
		So(errors.Is(err, ErrMissingCredential), ShouldBeTrue)
		So(err.Error(), ShouldContainSubstring, "MELODIA_YOUTUBE_API_KEY")
	})
}

func TestSoundCloudImport(t *testing.T) {
	t.Setenv("MELODIA_SOUNDCLOUD_CLIENT_ID", "test-client")

	Convey("Given the SoundCloud resolve API", t, func() {
		Convey("It maps playlist tracks to items", func(c C) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				c.So(r.URL.Path, ShouldEqual, "/resolve")
				c.So(r.URL.Query().Get("client_id"), ShouldEqual, "test-client")
				c.So(r.URL.Query().Get("url"), ShouldEqual, "https://soundcloud.com/a/sets/mix")

				fmt.Fprint(w, `{
					"kind": "playlist",
					"title": "Night Drive",
					"tracks": [
						{"title": "Track", "permalink_url": "https://soundcloud.com/a/track",
							"id": 42, "duration": 195000,
							"artwork_url": "https://img/a-large.jpg",
							"user": {"username": "someone"}}
					]
				}`)
			}))
			defer srv.Close()

			sc := &SoundCloud{BaseURL: srv.URL, client: srv.Client()}
			result, err := sc.FetchPlaylist("https://soundcloud.com/a/sets/mix")

			So(err, ShouldBeNil)
			So(result.RemoteTitle, ShouldEqual, "Night Drive")
			So(result.Items, ShouldHaveLength, 1)
			So(result.Items[0].Duration, ShouldEqual, 195)
			So(result.Items[0].Artist, ShouldEqual, "someone")
			So(result.Items[0].SourceID, ShouldEqual, "42")
			So(result.Items[0].ThumbnailURL, ShouldEqual, "https://img/a-t500x500.jpg")
		})

		Convey("A track url is not a playlist", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"kind": "track", "title": "Just a song"}`)
			}))
			defer srv.Close()

			sc := &SoundCloud{BaseURL: srv.URL, client: srv.Client()}
			_, err := sc.FetchPlaylist("https://soundcloud.com/a/track")
			So(errors.Is(err, ErrNotAPlaylist), ShouldBeTrue)
		})

		Convey("An empty playlist is a success", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"kind": "playlist", "title": "Empty", "tracks": []}`)
			}))
			defer srv.Close()

			sc := &SoundCloud{BaseURL: srv.URL, client: srv.Client()}
			result, err := sc.FetchPlaylist("https://soundcloud.com/a/sets/empty")
			So(err, ShouldBeNil)
			So(result.Items, ShouldBeEmpty)
		})
	})
}

func TestImporterPipeline(t *testing.T) {
	t.Setenv("MELODIA_YOUTUBE_API_KEY", "test-key")

	Convey("Given the background pipeline", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"items": [{"snippet": {"title": "Track", "channelTitle": "Channel",
				"resourceId": {"videoId": "vid1"}}}]}`)
		}))
		defer srv.Close()

		imp := &Importer{
			youtube:    &YouTube{BaseURL: srv.URL, client: srv.Client()},
			soundcloud: NewSoundCloud(),
			results:    make(chan Result, 1),
		}

		Convey("Submit rejects unsupported urls synchronously", func() {
			_, err := imp.Submit("https://example.com/whatever")
			So(errors.Is(err, ErrUnsupportedURL), ShouldBeTrue)
		})

		Convey("Results arrive asynchronously, tagged with the job id", func() {
			jobID, err := imp.Submit("https://www.youtube.com/playlist?list=PL123")
			So(err, ShouldBeNil)
			So(jobID, ShouldNotBeEmpty)

			select {
			case result := <-imp.Results():
				So(result.JobID, ShouldEqual, jobID)
				So(result.Err, ShouldBeNil)
				So(result.Items, ShouldHaveLength, 1)
			case <-time.After(5 * time.Second):
				So("timed out waiting for import result", ShouldBeEmpty)
			}
		})

		Convey("Fetch failures arrive as results, not panics", func() {
			failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			}))
			defer failing.Close()
			imp.youtube = &YouTube{BaseURL: failing.URL, client: failing.Client()}

			_, err := imp.Submit("https://www.youtube.com/playlist?list=PL123")
			So(err, ShouldBeNil)

			select {
			case result := <-imp.Results():
				So(errors.Is(result.Err, ErrPrivateOrForbidden), ShouldBeTrue)
			case <-time.After(5 * time.Second):
				So("timed out waiting for import result", ShouldBeEmpty)
			}
		})
	})
}
