// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/melodia-cli/melodia/importer"
	"github.com/melodia-cli/melodia/key"
	"github.com/melodia-cli/melodia/log"
	"github.com/melodia-cli/melodia/media"
	"github.com/melodia-cli/melodia/open"
	"github.com/melodia-cli/melodia/player"
	"github.com/melodia-cli/melodia/playlist"
	"github.com/melodia-cli/melodia/query"
	"github.com/melodia-cli/melodia/recent"
	"github.com/melodia-cli/melodia/style"
	"github.com/melodia-cli/melodia/util"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Process ephemeral UI notifications (captures `string` and `ui.ClearNotificationMsg`)
	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmd = tea.Batch(cmd, uiCmd)
	}

	switch msg := msg.(type) {
	case error:
		b.stopLoading()
		b.importRunning = false
		b.raiseError(msg)
	case playbackStartedMsg:
		b.paused = false
		return b, tea.Batch(cmd, b.refreshQueue())
	case playbackFailedMsg:
		log.Errorf("playback failed: %v", msg.err)
		return b, tea.Batch(cmd, b.queueC.NewStatusMessage(
			style.Fg(style.ErrorColor)(fmt.Sprintf("Playback failed: %v", msg.err)),
		))
	case trackEndedMsg:
		if b.queue.Advance() {
			if item, ok := b.queue.Current(); ok {
				saveRecent(item)
			}
			return b, tea.Batch(cmd, b.refreshQueue(), b.waitForTrackEnd())
		}
		// Tail of the queue: keep listening in case the user restarts playback.
		return b, tea.Batch(cmd, b.queueC.NewStatusMessage(style.Faint("Queue finished")), b.waitForTrackEnd())
	case importer.Result:
		return b.onImportResult(msg, cmd)
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.forceQuit):
			_ = b.facade.Close()
			return b, tea.Quit
		}

		// Input guard: ignore non-priority keys during asynchronous operations.
		if b.busy && b.state != nowPlayingState && b.state != errorState {
			return b, nil
		}

		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			onListBack := func(l *list.Model) tea.Cmd {
				l.ResetSelected()
				l.ResetFilter()
				return tea.Batch(cmd, l.NewStatusMessage(""))
			}

			switch b.state {
			case searchState:
				b.inputC.SetValue("")
			case importState:
				b.urlInputC.SetValue("")
			case nameInputState:
				// Cancellation semantics live in updateNameInput.
				return b.updateNameInput(msg)
			case playlistItemsState:
				if b.itemsC.FilterState() != list.Unfiltered {
					b.itemsC, cmd = b.itemsC.Update(msg)
					return b, cmd
				}
				cmd = onListBack(&b.itemsC)
			case resultsState:
				if b.resultsC.FilterState() != list.Unfiltered {
					b.resultsC, cmd = b.resultsC.Update(msg)
					return b, cmd
				}
				cmd = onListBack(&b.resultsC)
			case selectPlaylistState:
				b.pendingAdd = mo.None[media.Item]()
				cmd = onListBack(&b.selectC)
			case recentState:
				if b.recentC.FilterState() != list.Unfiltered {
					b.recentC, cmd = b.recentC.Update(msg)
					return b, cmd
				}
				cmd = onListBack(&b.recentC)
			case playlistsState:
				if b.playlistsC.FilterState() != list.Unfiltered {
					b.playlistsC, cmd = b.playlistsC.Update(msg)
					return b, cmd
				}
				cmd = onListBack(&b.playlistsC)
			}

			b.previousState()
			b.stopLoading()
			return b, cmd
		}
	}

	switch b.state {
	case loadingState:
		return b.updateLoading(msg)
	case playlistsState:
		return b.updatePlaylists(msg)
	case playlistItemsState:
		return b.updatePlaylistItems(msg)
	case searchState:
		return b.updateSearch(msg)
	case resultsState:
		return b.updateResults(msg)
	case selectPlaylistState:
		return b.updateSelectPlaylist(msg)
	case importState:
		return b.updateImport(msg)
	case nameInputState:
		return b.updateNameInput(msg)
	case recentState:
		return b.updateRecent(msg)
	case nowPlayingState:
		return b.updateNowPlaying(msg)
	case errorState:
		return b.updateError(msg)
	}

	return b, nil
}

// onImportResult reacts to a finished background import job.
func (b *statefulBubble) onImportResult(result importer.Result, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	b.importRunning = false

	if result.Err != nil {
		log.Errorf("import job %s failed: %v", result.JobID, result.Err)
		b.raiseError(result.Err)
		return b, cmd
	}

	log.Infof("import job %s fetched %s", result.JobID, util.Quantify(len(result.Items), "track", "tracks"))

	b.pendingImport = &result
	b.nameFor = nameActionImport
	b.nameInputC.SetValue(result.RemoteTitle)
	b.nameInputC.SetCursor(len(result.RemoteTitle))
	b.nameInputC.Focus()
	b.newState(nameInputState)
	return b, tea.Batch(cmd, textinput.Blink)
}

func (b *statefulBubble) updateLoading(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds = make([]tea.Cmd, 0)
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			if b.statesHistory.Len() > 0 {
				b.previousState()
			} else {
				return b, tea.Quit
			}
		}
	case []media.Item:
		items := make([]list.Item, len(msg))
		for i, m := range msg {
			items[i] = &listItem{internal: m}
		}

		cmds = append(cmds, b.resultsC.SetItems(items))
		b.newState(resultsState)
		b.stopLoading()
	}

	b.spinnerC, cmd = b.spinnerC.Update(msg)
	return b, tea.Batch(append(cmds, cmd)...)
}

func (b *statefulBubble) updatePlaylists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.playlistsC.Items()); n > 0 && b.playlistsC.Index() == 0 {
				b.playlistsC.Select(n - 1)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.playlistsC.Items()); n > 0 && b.playlistsC.Index() == n-1 {
				b.playlistsC.Select(0)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.create):
			b.nameFor = nameActionCreate
			b.nameInputC.SetValue("")
			b.nameInputC.Focus()
			b.newState(nameInputState)
			return b, textinput.Blink
		case bubblesKey.Matches(msg, b.keymap.rename):
			if b.playlistsC.SelectedItem() == nil {
				break
			}
			p := b.playlistsC.SelectedItem().(*listItem).internal.(*playlist.Playlist)
			b.selectedPlaylist = p
			b.nameFor = nameActionRename
			b.nameInputC.SetValue(p.Name)
			b.nameInputC.SetCursor(len(p.Name))
			b.nameInputC.Focus()
			b.newState(nameInputState)
			return b, textinput.Blink
		case bubblesKey.Matches(msg, b.keymap.remove):
			if b.playlistsC.SelectedItem() == nil {
				break
			}
			p := b.playlistsC.SelectedItem().(*listItem).internal.(*playlist.Playlist)
			if err := b.manager.Delete(p.Name); err != nil {
				b.raiseError(err)
				return b, nil
			}
			return b, tea.Batch(
				b.loadPlaylists(),
				b.playlistsC.NewStatusMessage(fmt.Sprintf("Deleted %s", style.Fg(style.AccentColor)(p.Name))),
			)
		case bubblesKey.Matches(msg, b.keymap.search):
			b.newState(searchState)
			b.inputC.Focus()
			return b, textinput.Blink
		case bubblesKey.Matches(msg, b.keymap.importURL):
			if b.importRunning {
				return b, b.playlistsC.NewStatusMessage("An import is already running")
			}
			b.newState(importState)
			b.urlInputC.Focus()
			return b, textinput.Blink
		case bubblesKey.Matches(msg, b.keymap.recent):
			loadCmd, err := b.loadRecent()
			if err != nil {
				b.raiseError(err)
				return b, nil
			}
			b.newState(recentState)
			return b, loadCmd
		case bubblesKey.Matches(msg, b.keymap.nowPlaying):
			b.newState(nowPlayingState)
			return b, b.refreshQueue()
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if b.playlistsC.SelectedItem() == nil {
				break
			}
			p := b.playlistsC.SelectedItem().(*listItem).internal.(*playlist.Playlist)
			b.newState(playlistItemsState)
			return b, b.openPlaylist(p)
		}
	}

	b.playlistsC, cmd = b.playlistsC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updatePlaylistItems(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.itemsC.Items()); n > 0 && b.itemsC.Index() == 0 {
				b.itemsC.Select(n - 1)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.itemsC.Items()); n > 0 && b.itemsC.Index() == n-1 {
				b.itemsC.Select(0)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.remove):
			if b.itemsC.SelectedItem() == nil {
				break
			}
			index := b.itemsC.Index()
			if err := b.manager.Remove(b.selectedPlaylist.Name, index); err != nil {
				b.raiseError(err)
				return b, nil
			}
			return b, b.openPlaylist(b.selectedPlaylist)
		case bubblesKey.Matches(msg, b.keymap.moveUp):
			index := b.itemsC.Index()
			if err := b.manager.Move(b.selectedPlaylist.Name, index, -1); err != nil {
				b.raiseError(err)
				return b, nil
			}
			cmd = b.openPlaylist(b.selectedPlaylist)
			if index > 0 {
				b.itemsC.Select(index - 1)
			}
			return b, cmd
		case bubblesKey.Matches(msg, b.keymap.moveDown):
			index := b.itemsC.Index()
			if err := b.manager.Move(b.selectedPlaylist.Name, index, 1); err != nil {
				b.raiseError(err)
				return b, nil
			}
			cmd = b.openPlaylist(b.selectedPlaylist)
			if index+1 < len(b.itemsC.Items()) {
				b.itemsC.Select(index + 1)
			}
			return b, cmd
		case bubblesKey.Matches(msg, b.keymap.addToPlaylist):
			if b.itemsC.SelectedItem() == nil {
				break
			}
			item := b.itemsC.SelectedItem().(*listItem).internal.(media.Item)
			b.pendingAdd = mo.Some(item)
			b.newState(selectPlaylistState)
			return b, b.loadSelect()
		case bubblesKey.Matches(msg, b.keymap.openURL):
			if b.itemsC.SelectedItem() == nil {
				break
			}
			item := b.itemsC.SelectedItem().(*listItem).internal.(media.Item)
			if item.SourceURL == "" {
				break
			}
			if err := open.Start(item.SourceURL); err != nil {
				b.raiseError(err)
			}
		case bubblesKey.Matches(msg, b.keymap.nowPlaying):
			b.newState(nowPlayingState)
			return b, b.refreshQueue()
		case bubblesKey.Matches(msg, b.keymap.play):
			if !viper.GetBool(key.TUIPlayOnEnter) || b.itemsC.SelectedItem() == nil {
				break
			}
			index := b.itemsC.Index()
			b.newState(nowPlayingState)
			return b, tea.Batch(
				b.playQueue(b.selectedPlaylist.Items, index),
				b.streamingDiagnosticCmd(),
			)
		}
	}

	b.itemsC, cmd = b.itemsC.Update(msg)
	return b, cmd
}

// streamingDiagnosticCmd surfaces the retained streaming renderer failure as
// a persistent notice on the queue view.
func (b *statefulBubble) streamingDiagnosticCmd() tea.Cmd {
	err := b.facade.InitDiagnostic()
	if err == nil {
		return nil
	}
	return b.queueC.NewStatusMessage(streamingNotice(err))
}

// streamingNotice renders the notice with the captured renderer diagnostic.
func streamingNotice(err error) string {
	return style.Fg(style.WarningColor)(fmt.Sprintf("Streaming unavailable: %v", err))
}

func (b *statefulBubble) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm) && b.inputC.Value() != "":
			b.progressStatus = fmt.Sprintf("Searching for %s...", b.inputC.Value())
			b.startLoading()
			b.newState(loadingState)
			go query.Remember(b.inputC.Value(), 1)
			return b, tea.Batch(b.performSearch(b.inputC.Value()), b.waitForSearchResults(), b.spinnerC.Tick)
		case bubblesKey.Matches(msg, b.keymap.acceptSearchSuggestion) && b.searchSuggestion.IsPresent():
			b.inputC.SetValue(b.searchSuggestion.MustGet())
			b.searchSuggestion = mo.None[string]()
			b.inputC.SetCursor(len(b.inputC.Value()))
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b, nil
		}
	}

	b.inputC, cmd = b.inputC.Update(msg)

	if viper.GetBool(key.SearchShowQuerySuggestions) && b.inputC.Value() != "" {
		if suggestion, ok := query.Suggest(b.inputC.Value()).Get(); ok && suggestion != b.inputC.Value() {
			b.searchSuggestion = mo.Some(suggestion)
		} else {
			b.searchSuggestion = mo.None[string]()
		}
	} else if b.searchSuggestion.IsPresent() {
		b.searchSuggestion = mo.None[string]()
	}

	return b, cmd
}

func (b *statefulBubble) updateResults(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.resultsC.Items()); n > 0 && b.resultsC.Index() == 0 {
				b.resultsC.Select(n - 1)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.resultsC.Items()); n > 0 && b.resultsC.Index() == n-1 {
				b.resultsC.Select(0)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.addToPlaylist):
			if b.resultsC.SelectedItem() == nil {
				break
			}
			item := b.resultsC.SelectedItem().(*listItem).internal.(media.Item)
			b.pendingAdd = mo.Some(item)
			b.newState(selectPlaylistState)
			return b, b.loadSelect()
		case bubblesKey.Matches(msg, b.keymap.openURL):
			if b.resultsC.SelectedItem() == nil {
				break
			}
			item := b.resultsC.SelectedItem().(*listItem).internal.(media.Item)
			if item.SourceURL == "" {
				break
			}
			if err := open.Start(item.SourceURL); err != nil {
				b.raiseError(err)
			}
		case bubblesKey.Matches(msg, b.keymap.play):
			if b.resultsC.SelectedItem() == nil {
				break
			}
			item := b.resultsC.SelectedItem().(*listItem).internal.(media.Item)
			go query.Remember(item.Title, 2)
			b.newState(nowPlayingState)
			return b, tea.Batch(
				b.playQueue([]media.Item{item}, 0),
				b.streamingDiagnosticCmd(),
			)
		}
	}

	b.resultsC, cmd = b.resultsC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateSelectPlaylist(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.selectC.Items()); n > 0 && b.selectC.Index() == 0 {
				b.selectC.Select(n - 1)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.selectC.Items()); n > 0 && b.selectC.Index() == n-1 {
				b.selectC.Select(0)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if b.selectC.SelectedItem() == nil {
				break
			}
			item, ok := b.pendingAdd.Get()
			if !ok {
				b.previousState()
				return b, nil
			}

			dest := b.selectC.SelectedItem().(*listItem).internal.(*playlist.Playlist)
			if dest.ContainsKey(item.Key()) {
				b.previousState()
				b.pendingAdd = mo.None[media.Item]()
				return b, b.notify(fmt.Sprintf("%q is already in %s", item.Title, dest.Name))
			}

			if err := b.manager.Add(dest.Name, item); err != nil {
				b.raiseError(err)
				return b, nil
			}

			b.previousState()
			b.pendingAdd = mo.None[media.Item]()

			cmds := []tea.Cmd{b.notify(fmt.Sprintf("Added %q to %s", item.Title, dest.Name))}
			if b.selectedPlaylist != nil && b.state == playlistItemsState {
				cmds = append(cmds, b.openPlaylist(b.selectedPlaylist))
			}
			return b, tea.Batch(cmds...)
		}
	}

	b.selectC, cmd = b.selectC.Update(msg)
	return b, cmd
}

// notify pushes a transient notification through the shared notifier.
func (b *statefulBubble) notify(message string) tea.Cmd {
	return func() tea.Msg {
		return message
	}
}

func (b *statefulBubble) updateImport(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm) && strings.TrimSpace(b.urlInputC.Value()) != "":
			rawURL := strings.TrimSpace(b.urlInputC.Value())
			b.urlInputC.SetValue("")
			b.urlInputC.Blur()
			b.importRunning = true
			b.previousState()
			return b, tea.Batch(
				b.submitImport(rawURL),
				b.waitForImport(),
				b.notify("Import running in the background"),
			)
		case bubblesKey.Matches(msg, b.keymap.back):
			b.urlInputC.SetValue("")
			b.urlInputC.Blur()
			b.previousState()
			return b, nil
		}
	}

	b.urlInputC, cmd = b.urlInputC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateNameInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case msg.Type == tea.KeyEnter:
			name := strings.TrimSpace(b.nameInputC.Value())
			if name == "" {
				return b, nil
			}

			switch b.nameFor {
			case nameActionCreate:
				if _, err := b.manager.Create(name); err != nil {
					if errors.Is(err, playlist.ErrAlreadyExists) {
						return b, b.notify(fmt.Sprintf("Playlist %q already exists", name))
					}
					b.raiseError(err)
					return b, nil
				}
				b.finishNameInput()
				return b, tea.Batch(b.loadPlaylists(), b.notify(fmt.Sprintf("Created %s", name)))

			case nameActionRename:
				if err := b.manager.Rename(b.selectedPlaylist.Name, name); err != nil {
					if errors.Is(err, playlist.ErrAlreadyExists) {
						return b, b.notify(fmt.Sprintf("Playlist %q already exists", name))
					}
					b.raiseError(err)
					return b, nil
				}
				b.finishNameInput()
				return b, tea.Batch(b.loadPlaylists(), b.notify(fmt.Sprintf("Renamed to %s", name)))

			case nameActionImport:
				result := b.pendingImport
				b.pendingImport = nil
				if result == nil {
					b.finishNameInput()
					return b, nil
				}

				// Merge into an existing playlist of the same name, create otherwise.
				if _, err := b.manager.Get(name); err != nil {
					if _, err := b.manager.Create(name); err != nil {
						b.raiseError(err)
						return b, nil
					}
				}
				if err := b.manager.AddAll(name, result.Items); err != nil {
					b.raiseError(err)
					return b, nil
				}

				b.finishNameInput()
				return b, tea.Batch(
					b.loadPlaylists(),
					b.notify(fmt.Sprintf("Imported %s into %s", util.Quantify(len(result.Items), "track", "tracks"), name)),
				)
			}

		case msg.Type == tea.KeyEsc:
			if b.nameFor == nameActionImport && b.pendingImport != nil {
				b.pendingImport = nil
				b.finishNameInput()
				return b, b.notify("Import discarded")
			}
			b.finishNameInput()
			return b, nil
		}
	}

	b.nameInputC, cmd = b.nameInputC.Update(msg)
	return b, cmd
}

// finishNameInput leaves the name prompt and returns to the prior state.
func (b *statefulBubble) finishNameInput() {
	b.nameInputC.SetValue("")
	b.nameInputC.Blur()
	b.previousState()
}

func (b *statefulBubble) updateRecent(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.recentC.Items()); n > 0 && b.recentC.Index() == 0 {
				b.recentC.Select(n - 1)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.recentC.Items()); n > 0 && b.recentC.Index() == n-1 {
				b.recentC.Select(0)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.remove):
			if b.recentC.SelectedItem() == nil {
				break
			}
			record := b.recentC.SelectedItem().(*listItem).internal.(*recent.SavedItem)
			_ = recent.Remove(record)
			loadCmd, err := b.loadRecent()
			if err != nil {
				b.raiseError(err)
				return b, nil
			}
			return b, loadCmd
		case bubblesKey.Matches(msg, b.keymap.play):
			if b.recentC.SelectedItem() == nil {
				break
			}
			record := b.recentC.SelectedItem().(*listItem).internal.(*recent.SavedItem)
			b.newState(nowPlayingState)
			return b, tea.Batch(
				b.playQueue([]media.Item{record.Item}, 0),
				b.streamingDiagnosticCmd(),
			)
		}
	}

	b.recentC, cmd = b.recentC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateNowPlaying(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.queueC.Items()); n > 0 && b.queueC.Index() == 0 {
				b.queueC.Select(n - 1)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.queueC.Items()); n > 0 && b.queueC.Index() == n-1 {
				b.queueC.Select(0)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.playPause):
			b.paused = !b.paused
			var err error
			if b.paused {
				err = b.facade.Pause()
			} else {
				err = b.facade.Resume()
			}
			if err != nil {
				return b, b.notify(fmt.Sprintf("Playback control failed: %v", err))
			}
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.next):
			if err := b.queue.Next(); err != nil {
				log.Errorf("next track failed: %v", err)
			}
			if item, ok := b.queue.Current(); ok {
				saveRecent(item)
			}
			b.paused = false
			return b, b.refreshQueue()
		case bubblesKey.Matches(msg, b.keymap.prev):
			if err := b.queue.Prev(); err != nil {
				log.Errorf("prev track failed: %v", err)
			}
			if item, ok := b.queue.Current(); ok {
				saveRecent(item)
			}
			b.paused = false
			return b, b.refreshQueue()
		case bubblesKey.Matches(msg, b.keymap.stopPlayback):
			if err := b.facade.Stop(); err != nil {
				log.Errorf("stop failed: %v", err)
			}
			b.paused = false
			return b, b.queueC.NewStatusMessage(style.Faint("Stopped"))
		case bubblesKey.Matches(msg, b.keymap.volumeUp):
			b.volume = player.ClampVolume(b.volume + 5)
			_ = b.facade.SetVolume(b.volume)
			return b, b.queueC.NewStatusMessage(fmt.Sprintf("Volume %d%%", b.volume))
		case bubblesKey.Matches(msg, b.keymap.volumeDown):
			b.volume = player.ClampVolume(b.volume - 5)
			_ = b.facade.SetVolume(b.volume)
			return b, b.queueC.NewStatusMessage(fmt.Sprintf("Volume %d%%", b.volume))
		case bubblesKey.Matches(msg, b.keymap.play):
			if b.queueC.SelectedItem() == nil {
				break
			}
			index := b.queueC.Index()
			b.paused = false
			return b, tea.Batch(b.playAt(index), b.refreshQueue())
		}
	}

	b.queueC, cmd = b.queueC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			_ = b.facade.Close()
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b, nil
		}
	}
	return b, nil
}
