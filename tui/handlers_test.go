package tui

import (
	"testing"
	"time"

	"github.com/melodia-cli/melodia/key"
	"github.com/melodia-cli/melodia/media"
	"github.com/melodia-cli/melodia/player"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

// newPlaybackBubble builds a bubble with just the playback wiring. The
// backends stay idle until something is actually played.
func newPlaybackBubble() *statefulBubble {
	facade := player.NewFacade()
	return &statefulBubble{
		facade: facade,
		queue:  player.NewQueue(facade),
		queueC: list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0),
	}
}

func TestStreamingNotice(t *testing.T) {
	Convey("Given a facade with a captured renderer failure", t, func() {
		viper.Set(key.PlayerWebEnabled, false)
		defer viper.Set(key.PlayerWebEnabled, true)

		b := newPlaybackBubble()
		_ = b.facade.Play(media.NewOnline(media.ProviderYouTube, "Song", "Artist", 0, "", "abc"))

		Convey("The notice carries the diagnostic", func() {
			err := b.facade.InitDiagnostic()
			So(err, ShouldNotBeNil)
			So(streamingNotice(err), ShouldContainSubstring, err.Error())
			So(b.streamingDiagnosticCmd(), ShouldNotBeNil)
		})
	})

	Convey("Given a healthy facade", t, func() {
		b := newPlaybackBubble()

		Convey("There is no notice", func() {
			So(b.streamingDiagnosticCmd(), ShouldBeNil)
		})
	})
}

func TestPlayQueueCommands(t *testing.T) {
	Convey("Given a bubble with playback wiring", t, func() {
		b := newPlaybackBubble()

		// The single end-of-track waiter is armed at Init and re-armed by the
		// track-ended handler. playQueue must not arm another one.
		Convey("playQueue commands run to completion without an end event", func() {
			done := make(chan struct{})
			go func() {
				defer close(done)
				msg := b.playQueue(nil, 0)()
				if batch, ok := msg.(tea.BatchMsg); ok {
					for _, c := range batch {
						if c != nil {
							_ = c()
						}
					}
				}
			}()

			select {
			case <-done:
			case <-time.After(time.Second):
				So("a command blocked on the end-of-track channel", ShouldBeEmpty)
			}
		})
	})
}
