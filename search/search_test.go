package search

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/melodia-cli/melodia/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseISODuration(t *testing.T) {
	Convey("parseISODuration", t, func() {
		So(parseISODuration("PT3M20S"), ShouldEqual, 200)
		So(parseISODuration("PT1H2M3S"), ShouldEqual, 3723)
		So(parseISODuration("PT45S"), ShouldEqual, 45)
		So(parseISODuration("PT2H"), ShouldEqual, 7200)
		So(parseISODuration("garbage"), ShouldEqual, 0)
		So(parseISODuration(""), ShouldEqual, 0)
	})
}

func TestExtractVideoID(t *testing.T) {
	Convey("ExtractVideoID", t, func() {
		cases := []struct {
			rawURL string
			want   string
		}{
			{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
			{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
			{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
			{"https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
			{"https://www.youtube.com/watch?list=x&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
			{"https://example.com/watch", ""},
		}
		for _, c := range cases {
			So(ExtractVideoID(c.rawURL), ShouldEqual, c.want)
		}
	})
}

func TestLocalSearch(t *testing.T) {
	Convey("Given a library on disk", t, func() {
		filesystem.SetMemMapFs()
		defer filesystem.SetOsFs()

		fs := filesystem.API()
		So(fs.MkdirAll("/library/sub", os.ModePerm), ShouldBeNil)
		for _, path := range []string{
			"/library/night drive.mp3",
			"/library/sub/driving home.flac",
			"/library/morning coffee.ogg",
			"/library/readme.txt",
			"/library/cover.jpg",
		} {
			So(fs.WriteFile(path, []byte("x"), os.ModePerm), ShouldBeNil)
		}

		local := NewLocalAt("/library")

		Convey("An empty query returns every audio file", func() {
			items, err := local.Search("")
			So(err, ShouldBeNil)
			So(items, ShouldHaveLength, 3)
		})

		Convey("Non-audio files are excluded", func() {
			items, err := local.Search("")
			So(err, ShouldBeNil)
			for _, item := range items {
				So(item.LocalPath, ShouldNotContainSubstring, "readme")
				So(item.LocalPath, ShouldNotContainSubstring, "cover")
			}
		})

		Convey("Substring matches hit", func() {
			items, err := local.Search("driv")
			So(err, ShouldBeNil)
			So(items, ShouldHaveLength, 2)
		})

		Convey("Closest match ranks first", func() {
			items, err := local.Search("night drive")
			So(err, ShouldBeNil)
			So(items, ShouldNotBeEmpty)
			So(items[0].Title, ShouldEqual, "night drive")
		})

		Convey("Unreadable tags fall back to the file name", func() {
			items, err := local.Search("coffee")
			So(err, ShouldBeNil)
			So(items, ShouldHaveLength, 1)
			So(items[0].Title, ShouldEqual, "morning coffee")
			So(items[0].Artist, ShouldEqual, "Unknown Artist")
		})
	})
}

func TestYouTubeSearch(t *testing.T) {
	t.Setenv("MELODIA_YOUTUBE_API_KEY", "test-key")
	filesystem.SetMemMapFs()
	defer filesystem.SetOsFs()

	Convey("Given the YouTube search API", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/search":
				fmt.Fprint(w, `{"items": [
					{"id": {"videoId": "vid1"},
						"snippet": {"title": "Song One", "channelTitle": "Channel",
							"thumbnails": {"medium": {"url": "https://img/1.jpg"}}}}
				]}`)
			case "/videos":
				fmt.Fprint(w, `{"items": [
					{"id": "vid1", "contentDetails": {"duration": "PT3M20S"},
						"snippet": {"title": "Song One", "channelTitle": "Channel"}}
				]}`)
			}
		}))
		defer srv.Close()

		yt := &YouTube{BaseURL: srv.URL, client: srv.Client()}

		Convey("Search merges snippets with durations", func() {
			items, err := yt.Search("song")
			So(err, ShouldBeNil)
			So(items, ShouldHaveLength, 1)
			So(items[0].SourceID, ShouldEqual, "vid1")
			So(items[0].Duration, ShouldEqual, 200)
			So(items[0].ThumbnailURL, ShouldEqual, "https://img/1.jpg")
		})

		Convey("FromURL resolves a single video", func() {
			item, err := yt.FromURL("https://youtu.be/vid1234567")
			So(err, ShouldBeNil)
			So(item.Title, ShouldEqual, "Song One")
			So(item.Duration, ShouldEqual, 200)
		})

		Convey("FromURL rejects non-video urls", func() {
			_, err := yt.FromURL("https://example.com/nope")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestSoundCloudFromURL(t *testing.T) {
	Convey("SoundCloud FromURL", t, func() {
		sc := NewSoundCloud()

		Convey("Builds a pending item from the permalink", func() {
			item, err := sc.FromURL("https://soundcloud.com/some-artist/great-song")
			So(err, ShouldBeNil)
			So(item.Artist, ShouldEqual, "some-artist")
			So(item.Title, ShouldEqual, "Great Song")
			So(item.SourceURL, ShouldEqual, "https://soundcloud.com/some-artist/great-song")
			So(item.Online(), ShouldBeTrue)
		})

		Convey("Rejects non-soundcloud urls", func() {
			_, err := sc.FromURL("https://example.com/a/b")
			So(err, ShouldNotBeNil)
		})

		Convey("Rejects urls without a track path", func() {
			_, err := sc.FromURL("https://soundcloud.com/just-a-user")
			So(err, ShouldNotBeNil)
		})
	})
}
