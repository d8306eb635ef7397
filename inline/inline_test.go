package inline

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/melodia-cli/melodia/media"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleItems() []media.Item {
	return []media.Item{
		media.NewLocal("Alpha", "Artist A", 120, "/music/alpha.mp3"),
		media.NewOnline(media.ProviderYouTube, "Beta", "Artist B", 200, "", "vid123"),
		media.NewOnline(media.ProviderSoundCloud, "Gamma", "Artist C", 90, "https://soundcloud.com/c/gamma", ""),
	}
}

func TestWriteJsonResponse(t *testing.T) {
	Convey("writeJson", t, func() {
		Convey("Should produce valid JSON for empty track list", func() {
			var buf bytes.Buffer
			opts := &Options{Query: "test", Json: true}
			err := writeJson(&buf, nil, opts)
			So(err, ShouldBeNil)

			var output Output
			err = json.Unmarshal(buf.Bytes(), &output)
			So(err, ShouldBeNil)
			So(output.Query, ShouldEqual, "test")
			So(output.Result, ShouldHaveLength, 0)
		})

		Convey("Should tag each track with its provider", func() {
			var buf bytes.Buffer
			opts := &Options{Query: "q", Json: true}
			err := writeJson(&buf, sampleItems(), opts)
			So(err, ShouldBeNil)

			var output Output
			So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
			So(output.Result, ShouldHaveLength, 3)
			So(output.Result[0].Provider, ShouldEqual, "local")
			So(output.Result[1].Provider, ShouldEqual, "youtube")
		})
	})
}

func TestParseTrackPicker(t *testing.T) {
	Convey("ParseTrackPicker", t, func() {
		items := sampleItems()

		Convey("first returns the first track", func() {
			picker, err := ParseTrackPicker("first", "")
			So(err, ShouldBeNil)
			So(picker(items).Title, ShouldEqual, "Alpha")
		})

		Convey("last returns the last track", func() {
			picker, err := ParseTrackPicker("last", "")
			So(err, ShouldBeNil)
			So(picker(items).Title, ShouldEqual, "Gamma")
		})

		Convey("exact matches by title", func() {
			picker, err := ParseTrackPicker("exact", "Beta")
			So(err, ShouldBeNil)
			So(picker(items).Title, ShouldEqual, "Beta")

			miss, err := ParseTrackPicker("exact", "Nope")
			So(err, ShouldBeNil)
			So(miss(items), ShouldBeNil)
		})

		Convey("index clamps to the last track", func() {
			picker, err := ParseTrackPicker("index", "99")
			So(err, ShouldBeNil)
			So(picker(items).Title, ShouldEqual, "Gamma")
		})

		Convey("empty list yields nil", func() {
			picker, err := ParseTrackPicker("first", "")
			So(err, ShouldBeNil)
			So(picker(nil), ShouldBeNil)
		})

		Convey("unknown kind fails", func() {
			_, err := ParseTrackPicker("random", "")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestParseTracksFilter(t *testing.T) {
	Convey("ParseTracksFilter", t, func() {
		items := sampleItems()

		Convey("all keeps everything", func() {
			filter, err := ParseTracksFilter("all")
			So(err, ShouldBeNil)
			out, err := filter(items)
			So(err, ShouldBeNil)
			So(out, ShouldHaveLength, 3)
		})

		Convey("range selects an inclusive slice", func() {
			filter, err := ParseTracksFilter("0-1")
			So(err, ShouldBeNil)
			out, err := filter(items)
			So(err, ShouldBeNil)
			So(out, ShouldHaveLength, 2)
			So(out[1].Title, ShouldEqual, "Beta")
		})

		Convey("substring matches case-insensitively", func() {
			filter, err := ParseTracksFilter("@GAM@")
			So(err, ShouldBeNil)
			out, err := filter(items)
			So(err, ShouldBeNil)
			So(out, ShouldHaveLength, 1)
			So(out[0].Title, ShouldEqual, "Gamma")
		})

		Convey("single index out of range yields empty", func() {
			filter, err := ParseTracksFilter("7")
			So(err, ShouldBeNil)
			out, err := filter(items)
			So(err, ShouldBeNil)
			So(out, ShouldBeEmpty)
		})

		Convey("garbage fails", func() {
			_, err := ParseTracksFilter("x-y-z")
			So(err, ShouldNotBeNil)
		})
	})
}
