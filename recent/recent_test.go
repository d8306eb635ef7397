package recent

import (
	"testing"

	"github.com/melodia-cli/melodia/filesystem"
	"github.com/melodia-cli/melodia/key"
	"github.com/melodia-cli/melodia/media"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.RecentSaveOnPlay, true)
	viper.Set(key.RecentSize, 50)
}

func TestRecent(t *testing.T) {
	Convey("Given a played item", t, func() {
		item := media.NewLocal("Song", "Artist", 180, "/music/song.mp3")

		Convey("When saving the playback", func() {
			err := Save(item)

			Convey("Then the record is retrievable", func() {
				So(err, ShouldBeNil)

				records, err := Get()
				So(err, ShouldBeNil)
				So(records, ShouldNotBeEmpty)

				found := false
				for _, record := range records {
					if record.Item.Key() == item.Key() {
						found = true
						So(record.Item.Title, ShouldEqual, "Song")
					}
				}
				So(found, ShouldBeTrue)
			})

			Convey("Replaying replaces the record instead of duplicating it", func() {
				So(Save(item), ShouldBeNil)
				So(Save(item), ShouldBeNil)

				records, err := Get()
				So(err, ShouldBeNil)

				count := 0
				for _, record := range records {
					if record.Item.Key() == item.Key() {
						count++
					}
				}
				So(count, ShouldEqual, 1)
			})

			Convey("Remove deletes the record", func() {
				records, _ := Get()
				for _, record := range records {
					So(Remove(record), ShouldBeNil)
				}

				records, err := Get()
				So(err, ShouldBeNil)
				So(records, ShouldBeEmpty)
			})
		})
	})
}
