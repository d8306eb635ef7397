package player

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeMediaTarget(t *testing.T) {
	Convey("sanitizeMediaTarget", t, func() {
		Convey("Accepts http and https URLs", func() {
			for _, target := range []string{
				"http://example.com/a.mp3",
				"https://example.com/a.mp3",
			} {
				got, err := sanitizeMediaTarget(target)
				So(err, ShouldBeNil)
				So(got, ShouldEqual, target)
			}
		})

		Convey("Cleans local paths", func() {
			got, err := sanitizeMediaTarget("/music//sub/../a.mp3")
			So(err, ShouldBeNil)
			So(got, ShouldEqual, "/music/a.mp3")
		})

		Convey("Rejects empty targets", func() {
			_, err := sanitizeMediaTarget("   ")
			So(err, ShouldNotBeNil)
		})

		Convey("Rejects flag-looking targets", func() {
			_, err := sanitizeMediaTarget("--script=evil.lua")
			So(err, ShouldNotBeNil)
		})

		Convey("Rejects control characters", func() {
			_, err := sanitizeMediaTarget("/music/a\n.mp3")
			So(err, ShouldNotBeNil)
		})

		Convey("Rejects non-http schemes", func() {
			_, err := sanitizeMediaTarget("ftp://example.com/a.mp3")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestSanitizeTitle(t *testing.T) {
	Convey("sanitizeTitle", t, func() {
		Convey("Strips newlines and null bytes", func() {
			So(sanitizeTitle("a\nb\rc\td\x00"), ShouldEqual, "a b c d")
		})
	})
}

func TestClampVolume(t *testing.T) {
	Convey("ClampVolume", t, func() {
		So(ClampVolume(-5), ShouldEqual, 0)
		So(ClampVolume(0), ShouldEqual, 0)
		So(ClampVolume(55), ShouldEqual, 55)
		So(ClampVolume(100), ShouldEqual, 100)
		So(ClampVolume(180), ShouldEqual, 100)
	})
}
