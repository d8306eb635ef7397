package player

import (
	"errors"
	"fmt"
	"testing"

	"github.com/melodia-cli/melodia/key"
	"github.com/melodia-cli/melodia/media"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

// fakeLocal is an in-memory LocalBackend.
type fakeLocal struct {
	played  []string
	paused  bool
	stopped int
	volume  int
	onEnd   func()
}

func (f *fakeLocal) Play(path, title string) error {
	f.played = append(f.played, path)
	return nil
}
func (f *fakeLocal) SetPaused(paused bool) error { f.paused = paused; return nil }
func (f *fakeLocal) Stop() error { f.stopped++; return nil }
func (f *fakeLocal) SetVolume(percent int) error { f.volume = percent; return nil }
func (f *fakeLocal) Position() float64 { return 0 }
func (f *fakeLocal) Duration() float64 { return 0 }
func (f *fakeLocal) SetOnEnd(fn func()) { f.onEnd = fn }
func (f *fakeLocal) IsRunning() bool { return len(f.played) > 0 }
func (f *fakeLocal) Close() error { return nil }

// fakeWeb is an in-memory WebBackend.
type fakeWeb struct {
	loaded []string
	paused int
	volume int
	onEnd  func()
}

func (f *fakeWeb) Load(provider media.Provider, ref string) error {
	f.loaded = append(f.loaded, provider.String()+":"+ref)
	return nil
}
func (f *fakeWeb) Pause() { f.paused++ }
func (f *fakeWeb) Resume() {}
func (f *fakeWeb) Stop() {}
func (f *fakeWeb) SetVolume(percent int) { f.volume = percent }
func (f *fakeWeb) SetOnEnd(fn func()) { f.onEnd = fn }
func (f *fakeWeb) Close() error { return nil }

func newTestFacade(local *fakeLocal, web *fakeWeb, webErr error) *Facade {
	viper.SetDefault(key.PlayerWebEnabled, true)

	f := &Facade{
		local:  local,
		assets: NewAssetServer(),
		newWeb: func(*AssetServer) (WebBackend, error) {
			if webErr != nil {
				return nil, webErr
			}
			return web, nil
		},
		ended: make(chan struct{}, 1),
	}
	local.SetOnEnd(f.signalEnd)
	return f
}

func TestFacadeRouting(t *testing.T) {
	Convey("Given a facade over fake backends", t, func() {
		local := &fakeLocal{}
		web := &fakeWeb{}
		f := newTestFacade(local, web, nil)

		Convey("Local items go to the local engine", func() {
			So(f.Play(media.NewLocal("Song", "Artist", 0, "/music/a.mp3")), ShouldBeNil)
			So(local.played, ShouldResemble, []string{"/music/a.mp3"})
			So(web.loaded, ShouldBeEmpty)
		})

		Convey("YouTube items load by video id", func() {
			item := media.NewOnline(media.ProviderYouTube, "Song", "Artist", 0, "https://youtu.be/abc", "abc")
			So(f.Play(item), ShouldBeNil)
			So(web.loaded, ShouldResemble, []string{"youtube:abc"})
		})

		Convey("SoundCloud items load by permalink", func() {
			item := media.NewOnline(media.ProviderSoundCloud, "Song", "Artist", 0, "https://soundcloud.com/a/b", "7")
			So(f.Play(item), ShouldBeNil)
			So(web.loaded, ShouldResemble, []string{"soundcloud:https://soundcloud.com/a/b"})
		})

		Convey("Online playback quiets the local engine", func() {
			_ = f.Play(media.NewLocal("Song", "Artist", 0, "/a.mp3"))
			_ = f.Play(media.NewOnline(media.ProviderYouTube, "Song", "Artist", 0, "", "abc"))
			So(local.stopped, ShouldEqual, 1)
		})

		Convey("Items with only a raw url fall back to it", func() {
			item := media.NewOnline(media.ProviderYouTube, "Song", "Artist", 0, "https://example.com/x", "")
			So(f.Play(item), ShouldBeNil)
			So(web.loaded, ShouldResemble, []string{"youtube:https://example.com/x"})
		})

		Convey("Items with no reference at all error", func() {
			item := media.Item{Title: "broken", Provider: media.ProviderYouTube}
			So(f.Play(item), ShouldNotBeNil)
		})

		Convey("Volume and pause fan out to both backends", func() {
			_ = f.Play(media.NewOnline(media.ProviderYouTube, "Song", "Artist", 0, "", "abc"))
			So(f.SetVolume(130), ShouldBeNil)
			So(local.volume, ShouldEqual, 100)
			So(web.volume, ShouldEqual, 100)

			So(f.Pause(), ShouldBeNil)
			So(local.paused, ShouldBeTrue)
			So(web.paused, ShouldEqual, 1)
		})
	})
}

func TestFacadeDegradedStreaming(t *testing.T) {
	Convey("Given a facade whose renderer cannot initialize", t, func() {
		local := &fakeLocal{}
		initErr := &RendererInitError{Err: fmt.Errorf("no chromium")}
		f := newTestFacade(local, nil, initErr)

		online := media.NewOnline(media.ProviderYouTube, "Song", "Artist", 0, "", "abc")

		Convey("Online playback reports WebPlayerUnavailable", func() {
			err := f.Play(online)

			var unavailable *WebPlayerUnavailableError
			So(errors.As(err, &unavailable), ShouldBeTrue)
			So(errors.Is(err, initErr), ShouldBeTrue)
		})

		Convey("The diagnostic carries the latest failure", func() {
			_ = f.Play(online)
			_ = f.Play(online)
			So(f.InitDiagnostic(), ShouldEqual, initErr)
		})

		Convey("A later play retries construction", func() {
			_ = f.Play(online)
			So(f.InitDiagnostic(), ShouldEqual, initErr)

			// The environment recovered, the next attempt succeeds.
			web := &fakeWeb{}
			f.newWeb = func(*AssetServer) (WebBackend, error) { return web, nil }

			So(f.Play(online), ShouldBeNil)
			So(web.loaded, ShouldResemble, []string{"youtube:abc"})
			So(f.InitDiagnostic(), ShouldBeNil)
		})

		Convey("Local playback still works", func() {
			_ = f.Play(online)
			So(f.Play(media.NewLocal("Song", "Artist", 0, "/a.mp3")), ShouldBeNil)
		})
	})
}

func TestFacadeWebDisabled(t *testing.T) {
	Convey("Given streaming disabled in config", t, func() {
		viper.Set(key.PlayerWebEnabled, false)
		defer viper.Set(key.PlayerWebEnabled, true)

		local := &fakeLocal{}
		web := &fakeWeb{}
		f := newTestFacade(local, web, nil)

		Convey("Online playback reports WebPlayerUnavailable without construction", func() {
			err := f.Play(media.NewOnline(media.ProviderYouTube, "Song", "Artist", 0, "", "abc"))

			var unavailable *WebPlayerUnavailableError
			So(errors.As(err, &unavailable), ShouldBeTrue)
			So(web.loaded, ShouldBeEmpty)
		})

		Convey("Local playback is unaffected", func() {
			So(f.Play(media.NewLocal("Song", "Artist", 0, "/a.mp3")), ShouldBeNil)
		})
	})
}

func TestFacadeEndEvents(t *testing.T) {
	Convey("Given a facade", t, func() {
		local := &fakeLocal{}
		web := &fakeWeb{}
		f := newTestFacade(local, web, nil)

		Convey("Local end-of-track feeds the shared channel", func() {
			local.onEnd()

			select {
			case <-f.Ended():
			default:
				So("no event", ShouldBeEmpty)
			}
		})

		Convey("The web backend is wired into the same channel on construction", func() {
			_ = f.Play(media.NewOnline(media.ProviderYouTube, "Song", "Artist", 0, "", "abc"))
			So(web.onEnd, ShouldNotBeNil)

			web.onEnd()
			select {
			case <-f.Ended():
			default:
				So("no event", ShouldBeEmpty)
			}
		})

		Convey("A slow consumer drops events instead of blocking", func() {
			local.onEnd()
			local.onEnd()
			local.onEnd()

			<-f.Ended()
			select {
			case <-f.Ended():
				So("unexpected second event", ShouldBeEmpty)
			default:
			}
		})
	})
}
