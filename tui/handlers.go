// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"errors"
	"fmt"
	"sync"

	"github.com/melodia-cli/melodia/importer"
	"github.com/melodia-cli/melodia/key"
	"github.com/melodia-cli/melodia/log"
	"github.com/melodia-cli/melodia/media"
	"github.com/melodia-cli/melodia/playlist"
	"github.com/melodia-cli/melodia/recent"
	"github.com/melodia-cli/melodia/search"
	"github.com/melodia-cli/melodia/style"
	"github.com/melodia-cli/melodia/util"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"
)

// trackEndedMsg arrives when a backend reports natural end of track.
type trackEndedMsg struct{}

// playbackFailedMsg carries a non-fatal playback error for the status line.
type playbackFailedMsg struct {
	err error
}

// playbackStartedMsg signals a successful queue position change.
type playbackStartedMsg struct{}

func (b *statefulBubble) loadPlaylists() tea.Cmd {
	playlists := b.manager.All()

	items := make([]list.Item, len(playlists))
	for i, p := range playlists {
		items[i] = &listItem{internal: p}
	}

	return b.playlistsC.SetItems(items)
}

// openPlaylist fills the track list from the given playlist.
func (b *statefulBubble) openPlaylist(p *playlist.Playlist) tea.Cmd {
	b.selectedPlaylist = p
	b.itemsC.Title = p.Name

	items := make([]list.Item, len(p.Items))
	for i, item := range p.Items {
		items[i] = &listItem{internal: item}
	}

	return b.itemsC.SetItems(items)
}

// loadRecent fills the recently played list, most recent first.
func (b *statefulBubble) loadRecent() (tea.Cmd, error) {
	records, err := recent.Get()
	if err != nil {
		return nil, err
	}

	items := make([]list.Item, len(records))
	for i, record := range records {
		items[i] = &listItem{internal: record}
	}

	return b.recentC.SetItems(items), nil
}

// loadSelect fills the destination playlist chooser.
func (b *statefulBubble) loadSelect() tea.Cmd {
	playlists := b.manager.All()

	items := make([]list.Item, len(playlists))
	for i, p := range playlists {
		items[i] = &listItem{internal: p}
	}

	return b.selectC.SetItems(items)
}

// performSearch queries the local library and YouTube concurrently and merges
// the outcome. A missing YouTube credential degrades to local-only results
// instead of failing the whole search.
func (b *statefulBubble) performSearch(query string) tea.Cmd {
	return func() tea.Msg {
		log.Info("searching for " + query)
		b.progressStatus = fmt.Sprintf("Searching for %s", style.Fg(style.AccentColor)(query))

		var (
			merged []media.Item
			mutex  sync.Mutex
			wg     sync.WaitGroup
		)

		wg.Add(2)

		go func() {
			defer wg.Done()
			items, err := search.NewLocal().Search(query)
			if err != nil {
				log.Errorf("library search failed: %v", err)
				return
			}
			mutex.Lock()
			merged = append(merged, items...)
			mutex.Unlock()
		}()

		go func() {
			defer wg.Done()
			items, err := search.NewYouTube().Search(query)
			if err != nil {
				if errors.Is(err, importer.ErrMissingCredential) {
					log.Warn("youtube search skipped, no api key configured")
				} else {
					log.Errorf("youtube search failed: %v", err)
				}
				return
			}
			mutex.Lock()
			merged = append(merged, items...)
			mutex.Unlock()
		}()

		wg.Wait()

		log.Infof("found %s for %q", util.Quantify(len(merged), "result", "results"), query)
		b.searchResultsChannel <- merged
		return nil
	}
}

func (b *statefulBubble) waitForSearchResults() tea.Cmd {
	return func() tea.Msg {
		select {
		case found := <-b.searchResultsChannel:
			return found
		case err := <-b.errorChannel:
			b.lastError = err
			return err
		}
	}
}

// submitImport starts a background import job for the URL.
// Classification failures surface immediately as errors.
func (b *statefulBubble) submitImport(rawURL string) tea.Cmd {
	return func() tea.Msg {
		jobID, err := b.importer.Submit(rawURL)
		if err != nil {
			return err
		}

		log.Infof("import submitted, job %s", jobID)
		return nil
	}
}

// waitForImport blocks on the importer's result channel.
func (b *statefulBubble) waitForImport() tea.Cmd {
	return func() tea.Msg {
		return <-b.importer.Results()
	}
}

// playQueue loads the items into the queue and starts at index.
// Playback errors are surfaced on the status line, not as fatal errors: the
// queue keeps its position so Next can move past the broken item.
func (b *statefulBubble) playQueue(items []media.Item, index int) tea.Cmd {
	b.queue.SetItems(items)
	return tea.Batch(b.refreshQueue(), b.playAt(index))
}

// playAt starts playback at the given queue position.
func (b *statefulBubble) playAt(index int) tea.Cmd {
	return func() tea.Msg {
		if err := b.queue.PlayAt(index); err != nil {
			return playbackFailedMsg{err: err}
		}

		if item, ok := b.queue.Current(); ok {
			saveRecent(item)
		}
		return playbackStartedMsg{}
	}
}

// saveRecent records a play when the recently played list is enabled.
func saveRecent(item media.Item) {
	if viper.GetBool(key.RecentSaveOnPlay) {
		_ = recent.Save(item)
	}
}

// refreshQueue synchronizes the queue list component with the queue contents.
func (b *statefulBubble) refreshQueue() tea.Cmd {
	queued := b.queue.Items()

	items := make([]list.Item, len(queued))
	current := b.queue.CurrentIndex()
	for i, item := range queued {
		items[i] = &listItem{internal: item, marked: i == current}
	}

	cmd := b.queueC.SetItems(items)
	if current >= 0 {
		b.queueC.Select(current)
	}
	return cmd
}

// waitForTrackEnd blocks until a backend reports natural end of track.
// Armed once at Init and re-armed after every received event, so a single
// waiter is outstanding at any time.
func (b *statefulBubble) waitForTrackEnd() tea.Cmd {
	return func() tea.Msg {
		<-b.facade.Ended()
		return trackEndedMsg{}
	}
}
