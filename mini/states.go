// Package mini implements a lightweight, minimalist interface for music search and playback.
package mini

import (
	"errors"
	"fmt"

	"github.com/melodia-cli/melodia/importer"
	"github.com/melodia-cli/melodia/key"
	"github.com/melodia-cli/melodia/log"
	"github.com/melodia-cli/melodia/media"
	"github.com/melodia-cli/melodia/query"
	"github.com/melodia-cli/melodia/recent"
	"github.com/melodia-cli/melodia/util"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

type state int

const (
	trackSearchState state = iota + 1
	trackSelectState
	playState
	recentSelectState
	quitState
)

func (m *mini) handleTrackSearchState() error {
	var searchLoop func() error
	title("Search Music")

	searchLoop = func() error {
		in, err := getInput(func(s string) bool {
			return s != ""
		})

		if err != nil {
			return err
		}

		q := in.value
		_ = query.Remember(q, 1)

		erase := progress("Searching Query..")
		results, err := m.searchAll(q)
		erase()
		if err != nil {
			return err
		}

		max := lo.Min([]int{len(results), viper.GetInt(key.MiniSearchLimit)})
		m.cachedResults[q] = results[:max]

		if len(m.cachedResults[q]) == 0 {
			fail("No search results found")
			return searchLoop()
		}

		m.query = q
		m.newState(trackSelectState)
		return nil
	}

	return searchLoop()
}

// searchAll merges results of every configured searcher. A provider whose
// credential is absent is skipped with a warning instead of failing the
// whole search.
func (m *mini) searchAll(q string) ([]media.Item, error) {
	var items []media.Item

	for _, searcher := range m.searchers {
		found, err := searcher.Search(q)
		if err != nil {
			if errors.Is(err, importer.ErrMissingCredential) {
				log.Warnf("provider skipped: %v", err)
				continue
			}
			return nil, err
		}
		items = append(items, found...)
	}

	return items, nil
}

func (m *mini) handleTrackSelectState() error {
	title("Query Results >>")
	b, item, err := menu(m.cachedResults[m.query], search)
	if err != nil {
		return err
	}

	switch {
	case quit.eq(b):
		m.newState(quitState)
		return nil
	case search.eq(b):
		m.newState(trackSearchState)
		return nil
	}

	results := m.cachedResults[m.query]
	m.selectedTracks = results
	m.startIndex = 0
	for i, result := range results {
		if result.Key() == item.Key() {
			m.startIndex = i
			break
		}
	}

	m.newState(playState)
	return nil
}

func (m *mini) handlePlayState() error {
	m.queue.SetItems(m.selectedTracks)
	if err := m.queue.PlayAt(m.startIndex); err != nil {
		fail(err.Error())
	}

	if err := m.facade.InitDiagnostic(); err != nil {
		log.Warnf("streaming renderer unavailable: %v", err)
	}

	for {
		util.ClearScreen()

		item, ok := m.queue.Current()
		if !ok {
			m.previousState()
			return nil
		}

		title(fmt.Sprintf("Currently playing %s [%s]", item, item.PrettyDuration()))

		var (
			index   = m.queue.CurrentIndex()
			options []*bind
		)
		if index > 0 {
			options = append(options, prev)
		}
		if index+1 < len(m.queue.Items()) {
			options = append(options, next)
		}
		options = append(options, pauseResume, replay, stop, back, search)

		b, _, err := menu([]fmt.Stringer{}, options...)
		if err != nil {
			return err
		}

		switch b {
		case next:
			if err := m.queue.Next(); err != nil {
				fail(err.Error())
			}
		case prev:
			if err := m.queue.Prev(); err != nil {
				fail(err.Error())
			}
		case pauseResume:
			m.paused = !m.paused
			if m.paused {
				_ = m.facade.Pause()
			} else {
				_ = m.facade.Resume()
			}
		case replay:
			if err := m.queue.PlayAt(m.queue.CurrentIndex()); err != nil {
				fail(err.Error())
			}
		case stop:
			_ = m.facade.Stop()
			m.previousState()
			return nil
		case back:
			m.previousState()
			return nil
		case search:
			m.newState(trackSearchState)
			return nil
		case quit:
			m.newState(quitState)
			return nil
		}
	}
}

func (m *mini) handleRecentSelectState() error {
	records, err := recent.Get()
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fail("Nothing played recently")
		m.newState(trackSearchState)
		return nil
	}

	title("Recently Played >>")
	b, record, err := menu(records, search)
	if err != nil {
		return err
	}

	switch {
	case quit.eq(b):
		m.newState(quitState)
		return nil
	case search.eq(b):
		m.newState(trackSearchState)
		return nil
	}

	m.selectedTracks = lo.Map(records, func(r *recent.SavedItem, _ int) media.Item {
		return r.Item
	})
	m.startIndex = lo.IndexOf(records, record)
	if m.startIndex < 0 {
		m.startIndex = 0
	}

	m.newState(playState)
	return nil
}
