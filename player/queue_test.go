package player

import (
	"fmt"
	"sync"
	"testing"

	"github.com/melodia-cli/melodia/media"
	. "github.com/smartystreets/goconvey/convey"
)

// fakePlayer records play calls and can be told to fail.
type fakePlayer struct {
	mu     sync.Mutex
	played []string
	fail   map[string]bool
}

func (f *fakePlayer) Play(item media.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.played = append(f.played, item.Title)
	if f.fail[item.Title] {
		return fmt.Errorf("cannot play %s", item.Title)
	}
	return nil
}

func (f *fakePlayer) playedTitles() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.played...)
}

func queueItems(titles ...string) []media.Item {
	items := make([]media.Item, 0, len(titles))
	for _, title := range titles {
		items = append(items, media.NewLocal(title, "Artist", 0, "/"+title+".mp3"))
	}
	return items
}

func TestQueue(t *testing.T) {
	Convey("Given a queue with three items", t, func() {
		fp := &fakePlayer{fail: map[string]bool{}}
		q := NewQueue(fp)
		q.SetItems(queueItems("a", "b", "c"))

		Convey("It starts idle", func() {
			So(q.CurrentIndex(), ShouldEqual, -1)
			_, ok := q.Current()
			So(ok, ShouldBeFalse)
		})

		Convey("PlayAt plays the indexed item", func() {
			So(q.PlayAt(1), ShouldBeNil)
			So(q.CurrentIndex(), ShouldEqual, 1)
			So(fp.playedTitles(), ShouldResemble, []string{"b"})
		})

		Convey("PlayAt out of range is a no-op", func() {
			So(q.PlayAt(5), ShouldBeNil)
			So(q.PlayAt(-1), ShouldBeNil)
			So(q.CurrentIndex(), ShouldEqual, -1)
			So(fp.playedTitles(), ShouldBeEmpty)
		})

		Convey("Next and Prev walk the queue", func() {
			_ = q.PlayAt(0)
			So(q.Next(), ShouldBeNil)
			So(q.CurrentIndex(), ShouldEqual, 1)
			So(q.Prev(), ShouldBeNil)
			So(q.CurrentIndex(), ShouldEqual, 0)
		})

		Convey("Next from idle starts at the head", func() {
			So(q.Next(), ShouldBeNil)
			So(q.CurrentIndex(), ShouldEqual, 0)
			So(fp.playedTitles(), ShouldResemble, []string{"a"})
		})

		Convey("Next called once per item from idle lands on the tail", func() {
			for range q.Items() {
				So(q.Next(), ShouldBeNil)
			}
			So(q.CurrentIndex(), ShouldEqual, len(q.Items())-1)
			So(fp.playedTitles(), ShouldResemble, []string{"a", "b", "c"})
		})

		Convey("Advance from idle starts at the head", func() {
			So(q.Advance(), ShouldBeTrue)
			So(q.CurrentIndex(), ShouldEqual, 0)
		})

		Convey("Next at the tail is a no-op", func() {
			_ = q.PlayAt(2)
			So(q.Next(), ShouldBeNil)
			So(q.CurrentIndex(), ShouldEqual, 2)
			So(fp.playedTitles(), ShouldResemble, []string{"c"})
		})

		Convey("Prev at the head and while idle are no-ops", func() {
			So(q.Prev(), ShouldBeNil)
			_ = q.PlayAt(0)
			So(q.Prev(), ShouldBeNil)
			So(q.CurrentIndex(), ShouldEqual, 0)
		})

		Convey("The index advances even when playback fails", func() {
			fp.fail["b"] = true
			_ = q.PlayAt(0)

			err := q.Next()
			So(err, ShouldNotBeNil)
			So(q.CurrentIndex(), ShouldEqual, 1)

			// The failed item is skipped, not replayed.
			So(q.Next(), ShouldBeNil)
			So(q.CurrentIndex(), ShouldEqual, 2)
		})

		Convey("Advance reports whether it moved", func() {
			_ = q.PlayAt(1)
			So(q.Advance(), ShouldBeTrue)
			So(q.CurrentIndex(), ShouldEqual, 2)
			So(q.Advance(), ShouldBeFalse)
		})

		Convey("SetItems resets to idle", func() {
			_ = q.PlayAt(2)
			q.SetItems(queueItems("x"))
			So(q.CurrentIndex(), ShouldEqual, -1)
		})

		Convey("RemoveAt clamps the playing index", func() {
			_ = q.PlayAt(2)
			q.RemoveAt(2)
			So(q.CurrentIndex(), ShouldEqual, 1)
			So(q.Items(), ShouldHaveLength, 2)
		})

		Convey("RemoveAt out of range is a no-op", func() {
			q.RemoveAt(9)
			So(q.Items(), ShouldHaveLength, 3)
		})

		Convey("Next on an empty queue stays idle", func() {
			q.SetItems(nil)
			So(q.Next(), ShouldBeNil)
			So(q.Advance(), ShouldBeFalse)
			So(q.CurrentIndex(), ShouldEqual, -1)
		})

		Convey("OnPlay observes index changes", func() {
			var seen []int
			q.OnPlay(func(index int, _ media.Item) {
				seen = append(seen, index)
			})

			_ = q.PlayAt(0)
			_ = q.Next()
			So(seen, ShouldResemble, []int{0, 1})
		})
	})
}
