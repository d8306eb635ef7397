package playlist

import (
	"errors"
	"testing"

	"github.com/melodia-cli/melodia/filesystem"
	"github.com/melodia-cli/melodia/media"
	. "github.com/smartystreets/goconvey/convey"
)

func newTestManager() *Manager {
	filesystem.SetMemMapFs()
	store := NewStoreAt("/playlists.json")
	m, err := NewManager(store)
	if err != nil {
		panic(err)
	}
	return m
}

func localItem(path string) media.Item {
	return media.NewLocal("", "Artist", 60, path)
}

func TestManagerLifecycle(t *testing.T) {
	Convey("Given an empty manager", t, func() {
		m := newTestManager()

		Convey("Create registers a new playlist", func() {
			p, err := m.Create("Favorites")
			So(err, ShouldBeNil)
			So(p.Name, ShouldEqual, "Favorites")
			So(m.Names(), ShouldResemble, []string{"Favorites"})
		})

		Convey("Create rejects duplicates", func() {
			_, err := m.Create("Favorites")
			So(err, ShouldBeNil)

			_, err = m.Create("Favorites")
			So(errors.Is(err, ErrAlreadyExists), ShouldBeTrue)
		})

		Convey("Delete on a missing playlist is a no-op", func() {
			So(m.Delete("Nope"), ShouldBeNil)
		})

		Convey("Rename preserves order", func() {
			_, _ = m.Create("A")
			_, _ = m.Create("B")
			_, _ = m.Create("C")

			So(m.Rename("B", "Beta"), ShouldBeNil)
			So(m.Names(), ShouldResemble, []string{"A", "Beta", "C"})
		})

		Convey("Rename rejects collisions", func() {
			_, _ = m.Create("A")
			_, _ = m.Create("B")

			err := m.Rename("A", "B")
			So(errors.Is(err, ErrAlreadyExists), ShouldBeTrue)
		})

		Convey("Mutations survive a reload", func() {
			_, _ = m.Create("Road Trip")
			So(m.Add("Road Trip", localItem("/music/a.mp3")), ShouldBeNil)

			reloaded, err := NewManager(NewStoreAt("/playlists.json"))
			So(err, ShouldBeNil)

			p, err := reloaded.Get("Road Trip")
			So(err, ShouldBeNil)
			So(p.Items, ShouldHaveLength, 1)
			So(p.Items[0].LocalPath, ShouldEqual, "/music/a.mp3")
		})
	})
}

func TestManagerItems(t *testing.T) {
	Convey("Given a playlist with items", t, func() {
		m := newTestManager()
		_, _ = m.Create("Mix")
		for _, path := range []string{"/a.mp3", "/b.mp3", "/c.mp3"} {
			So(m.Add("Mix", localItem(path)), ShouldBeNil)
		}

		paths := func() []string {
			p, _ := m.Get("Mix")
			out := make([]string, 0, len(p.Items))
			for _, item := range p.Items {
				out = append(out, item.LocalPath)
			}
			return out
		}

		Convey("Remove drops the indexed item", func() {
			So(m.Remove("Mix", 1), ShouldBeNil)
			So(paths(), ShouldResemble, []string{"/a.mp3", "/c.mp3"})
		})

		Convey("Remove out of range is a no-op", func() {
			So(m.Remove("Mix", 7), ShouldBeNil)
			So(m.Remove("Mix", -1), ShouldBeNil)
			So(paths(), ShouldHaveLength, 3)
		})

		Convey("Move swaps adjacent items", func() {
			So(m.Move("Mix", 0, 1), ShouldBeNil)
			So(paths(), ShouldResemble, []string{"/b.mp3", "/a.mp3", "/c.mp3"})
		})

		Convey("Move past the edges is a no-op", func() {
			So(m.Move("Mix", 0, -1), ShouldBeNil)
			So(m.Move("Mix", 2, 1), ShouldBeNil)
			So(paths(), ShouldResemble, []string{"/a.mp3", "/b.mp3", "/c.mp3"})
		})

		Convey("Replace persists a full reorder", func() {
			p, _ := m.Get("Mix")
			reversed := []media.Item{p.Items[2], p.Items[1], p.Items[0]}
			So(m.Replace("Mix", reversed), ShouldBeNil)
			So(paths(), ShouldResemble, []string{"/c.mp3", "/b.mp3", "/a.mp3"})
		})
	})
}

func TestManagerCopy(t *testing.T) {
	Convey("Given two playlists", t, func() {
		m := newTestManager()
		_, _ = m.Create("Source")
		_, _ = m.Create("Target")
		So(m.Add("Source", localItem("/a.mp3")), ShouldBeNil)

		Convey("CopyItem copies across", func() {
			copied, err := m.CopyItem("Source", 0, "Target")
			So(err, ShouldBeNil)
			So(copied, ShouldBeTrue)

			target, _ := m.Get("Target")
			So(target.Items, ShouldHaveLength, 1)
		})

		Convey("CopyItem skips identity duplicates", func() {
			_, _ = m.CopyItem("Source", 0, "Target")

			copied, err := m.CopyItem("Source", 0, "Target")
			So(err, ShouldBeNil)
			So(copied, ShouldBeFalse)

			target, _ := m.Get("Target")
			So(target.Items, ShouldHaveLength, 1)
		})

		Convey("Import merges keep duplicates", func() {
			items := []media.Item{localItem("/a.mp3"), localItem("/a.mp3")}
			So(m.AddAll("Target", items), ShouldBeNil)

			target, _ := m.Get("Target")
			So(target.Items, ShouldHaveLength, 2)
		})
	})
}

func TestStoreFormat(t *testing.T) {
	Convey("Given a persisted collection", t, func() {
		filesystem.SetMemMapFs()
		store := NewStoreAt("/playlists.json")

		Convey("A missing file loads as empty", func() {
			playlists, err := store.Load()
			So(err, ShouldBeNil)
			So(playlists, ShouldBeEmpty)
		})

		Convey("The document is a flat array with media_files", func() {
			item := media.NewOnline(media.ProviderYouTube, "Song", "Artist", 0, "", "abc")
			So(store.Save([]*Playlist{{Name: "Mix", Items: []media.Item{item}}}), ShouldBeNil)

			data, err := filesystem.API().ReadFile("/playlists.json")
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, `"name": "Mix"`)
			So(string(data), ShouldContainSubstring, `"media_files"`)
			So(string(data), ShouldContainSubstring, `"source_id": "abc"`)
		})
	})
}
