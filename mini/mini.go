// Package mini implements a lightweight, minimalist interface for music search and playback.
package mini

import (
	"os"

	"github.com/melodia-cli/melodia/inline"
	"github.com/melodia-cli/melodia/key"
	"github.com/melodia-cli/melodia/media"
	"github.com/melodia-cli/melodia/player"
	"github.com/melodia-cli/melodia/recent"
	searchpkg "github.com/melodia-cli/melodia/search"
	"github.com/melodia-cli/melodia/util"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

var (
	truncateAt = 100
)

type Options struct {
	// Continue starts from the recently played list instead of search.
	Continue bool
}

type mini struct {
	width, height int

	state         state
	statesHistory util.Stack[state]

	facade    *player.Facade
	queue     *player.Queue
	searchers []inline.Searcher

	cachedResults map[string][]media.Item

	query          string
	selectedTracks []media.Item
	startIndex     int
	paused         bool
}

func newMini(facade *player.Facade, queue *player.Queue) *mini {
	return &mini{
		statesHistory: util.Stack[state]{},
		facade:        facade,
		queue:         queue,
		searchers:     []inline.Searcher{searchpkg.NewLocal(), searchpkg.NewYouTube()},
		cachedResults: make(map[string][]media.Item),
	}
}

func (m *mini) previousState() {
	if m.statesHistory.Len() > 0 {
		m.setState(m.statesHistory.Pop())
	}
}

func (m *mini) setState(s state) {
	m.state = s
}

func (m *mini) newState(s state) {
	if m.state == s {
		return
	}

	if !lo.Contains([]state{playState}, m.state) {
		m.statesHistory.Push(m.state)
	}

	m.setState(s)
}

func Run(options *Options) error {
	facade := player.NewFacade()
	defer facade.Close()

	_ = facade.SetVolume(viper.GetInt(key.PlayerVolume))

	queue := player.NewQueue(facade)
	queue.OnPlay(func(_ int, item media.Item) {
		if viper.GetBool(key.RecentSaveOnPlay) {
			_ = recent.Save(item)
		}
	})

	// Auto-advance while a menu prompt is on screen. The next redraw of the
	// play screen picks up the new queue position.
	go func() {
		for range facade.Ended() {
			queue.Advance()
		}
	}()

	m := newMini(facade, queue)
	m.state = trackSearchState
	if options.Continue {
		m.state = recentSelectState
	}

	if w, h, err := util.TerminalSize(); err == nil {
		m.width, m.height = w, h
		truncateAt = w
	}

	for {
		if err := m.handleState(); err != nil {
			return err
		}
	}
}

func (m *mini) handleState() error {
	switch m.state {
	case recentSelectState:
		return m.handleRecentSelectState()
	case trackSearchState:
		return m.handleTrackSearchState()
	case trackSelectState:
		return m.handleTrackSelectState()
	case playState:
		return m.handlePlayState()
	case quitState:
		os.Exit(0)
	}

	return nil
}
