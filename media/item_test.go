package media

import (
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestItemKey(t *testing.T) {
	Convey("Given media items", t, func() {
		Convey("Local items key on their path", func() {
			item := NewLocal("Song", "Artist", 120, "/music/song.mp3")
			So(item.Key(), ShouldEqual, "local:/music/song.mp3")
		})

		Convey("Online items prefer the source id", func() {
			item := NewOnline(ProviderYouTube, "Song", "Artist", 0, "https://youtu.be/abc", "abc")
			So(item.Key(), ShouldEqual, "youtube:abc")
		})

		Convey("Online items fall back to the url", func() {
			item := NewOnline(ProviderSoundCloud, "Song", "Artist", 0, "https://soundcloud.com/a/b", "")
			So(item.Key(), ShouldEqual, "soundcloud:https://soundcloud.com/a/b")
		})

		Convey("Keys are stable across title edits", func() {
			item := NewOnline(ProviderYouTube, "Song", "Artist", 0, "", "abc")
			before := item.Key()
			item.Title = "Renamed"
			item.Note = "favorite"
			So(item.Key(), ShouldEqual, before)
		})
	})
}

func TestItemConstruction(t *testing.T) {
	Convey("Constructing items", t, func() {
		Convey("Local title falls back to the file name", func() {
			item := NewLocal("", "", 0, "/music/sub/track 01.mp3")
			So(item.Title, ShouldEqual, "track 01")
		})

		Convey("Blank artists become Unknown Artist", func() {
			item := NewLocal("Song", "   ", 0, "/music/song.mp3")
			So(item.Artist, ShouldEqual, "Unknown Artist")
		})

		Convey("Durations pretty-print", func() {
			So(NewLocal("a", "b", 61, "/x").PrettyDuration(), ShouldEqual, "1:01")
			So(NewLocal("a", "b", 3661, "/x").PrettyDuration(), ShouldEqual, "1:01:01")
			So(NewLocal("a", "b", 0, "/x").PrettyDuration(), ShouldEqual, "--:--")
		})
	})
}

func TestItemWireFormat(t *testing.T) {
	Convey("Given the persisted item schema", t, func() {
		Convey("Local items round-trip", func() {
			item := NewLocal("Song", "Artist", 240, "/music/song.mp3")
			item.Note = "from the demo tape"

			data, err := json.Marshal(item)
			So(err, ShouldBeNil)

			var decoded Item
			So(json.Unmarshal(data, &decoded), ShouldBeNil)
			So(decoded, ShouldResemble, item)
		})

		Convey("Online items round-trip with streaming fields", func() {
			item := NewOnline(ProviderSoundCloud, "Song", "Artist", 195, "https://soundcloud.com/a/b", "42")
			item.ThumbnailURL = "https://img/t500x500.jpg"
			item.StreamingQuality = "sq"

			data, err := json.Marshal(item)
			So(err, ShouldBeNil)

			var decoded Item
			So(json.Unmarshal(data, &decoded), ShouldBeNil)
			So(decoded, ShouldResemble, item)
		})

		Convey("Entries with a url but no provider decode as online", func() {
			raw := []byte(`{"title":"Song","artist":"Artist","duration":0,"url":"https://youtu.be/abc"}`)

			var decoded Item
			So(json.Unmarshal(raw, &decoded), ShouldBeNil)
			So(decoded.Online(), ShouldBeTrue)
			So(decoded.SourceURL, ShouldEqual, "https://youtu.be/abc")
		})

		Convey("Unknown providers decode as local", func() {
			raw := []byte(`{"title":"Song","artist":"Artist","provider":"vimeo","file_path":"/x"}`)

			var decoded Item
			So(json.Unmarshal(raw, &decoded), ShouldBeNil)
			So(decoded.Provider, ShouldEqual, ProviderLocal)
		})
	})
}
