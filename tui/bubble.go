// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"time"

	"github.com/melodia-cli/melodia/constant"
	"github.com/melodia-cli/melodia/importer"
	"github.com/melodia-cli/melodia/internal/ui"
	"github.com/melodia-cli/melodia/key"
	"github.com/melodia-cli/melodia/media"
	"github.com/melodia-cli/melodia/player"
	"github.com/melodia-cli/melodia/playlist"
	"github.com/melodia-cli/melodia/style"
	"github.com/melodia-cli/melodia/util"
	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// statefulBubble encapsulates the comprehensive application state, including component models and workflow tracking.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]
	loading       bool
	busy          bool // Protects against rapid input during async ops

	keymap *statefulKeymap

	// components
	spinnerC   spinner.Model
	inputC     textinput.Model // search query
	urlInputC  textinput.Model // import url
	nameInputC textinput.Model // playlist names
	playlistsC list.Model
	itemsC     list.Model
	resultsC   list.Model
	selectC    list.Model
	recentC    list.Model
	queueC     list.Model
	helpC      help.Model

	manager  *playlist.Manager
	facade   *player.Facade
	queue    *player.Queue
	importer *importer.Importer

	// selectedPlaylist is the playlist whose items fill itemsC.
	selectedPlaylist *playlist.Playlist

	// nameFor tracks what the shared name input is collecting.
	nameFor nameAction

	// pendingImport holds an import result awaiting a playlist name.
	pendingImport *importer.Result

	// pendingAdd holds the item awaiting a destination playlist choice.
	pendingAdd mo.Option[media.Item]

	// importRunning guards against concurrent import submissions.
	importRunning bool

	searchResultsChannel chan []media.Item
	errorChannel         chan error

	progressStatus string
	volume         int
	paused         bool
	lastError      error

	width, height    int
	searchSuggestion mo.Option[string]
	notifier         *ui.Model

	options *Options
}

// raiseError dispatches a terminal error and transitions the application to the failure view.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

// setState performs a synchronous transition of both the application workflow and its associated keymap.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState facilitates an idempotent transition to a target state, recording the previous state in the navigation history when appropriate.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	// Do not push these states to history
	if !lo.Contains([]state{
		loadingState,
		nameInputState,
	}, b.state) {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

// previousState restores the application to its immediate predecessor in the navigation stack.
func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		s := b.statesHistory.Pop()
		b.setState(s)
	}
}

// resize propagates terminal dimension changes to all child component models.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	styledWidth := width - x
	styledHeight := height - y

	listWidth := width - xx
	listHeight := height - yy

	b.playlistsC.SetSize(listWidth, listHeight)
	b.playlistsC.Help.Width = listWidth

	b.itemsC.SetSize(listWidth, listHeight)
	b.itemsC.Help.Width = listWidth

	b.resultsC.SetSize(listWidth, listHeight)
	b.resultsC.Help.Width = listWidth

	b.selectC.SetSize(listWidth, listHeight)
	b.selectC.Help.Width = listWidth

	b.recentC.SetSize(listWidth, listHeight)
	b.recentC.Help.Width = listWidth

	b.queueC.SetSize(listWidth, listHeight)
	b.queueC.Help.Width = listWidth

	b.width = styledWidth
	b.height = styledHeight
	b.helpC.Width = listWidth
}

// startLoading enters a concurrent loading state, initializing visual indicators across child components.
func (b *statefulBubble) startLoading() tea.Cmd {
	b.loading = true
	b.busy = true
	return tea.Batch(b.resultsC.StartSpinner(), b.itemsC.StartSpinner())
}

// stopLoading exits the loading state and synchronizes child component visual indicators.
func (b *statefulBubble) stopLoading() tea.Cmd {
	b.loading = false
	b.busy = false
	b.resultsC.StopSpinner()
	b.itemsC.StopSpinner()
	return nil
}

// newBubble performs a complete initialization of the application's primary UI model.
func newBubble(manager *playlist.Manager, facade *player.Facade, queue *player.Queue, imp *importer.Importer, options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        keymap,

		manager:  manager,
		facade:   facade,
		queue:    queue,
		importer: imp,

		searchResultsChannel: make(chan []media.Item),
		errorChannel:         make(chan error),

		volume:   viper.GetInt(key.PlayerVolume),
		notifier: &ui.Model{},
	}

	type listOptions struct {
		TitleStyle mo.Option[lipgloss.Style]
	}

	makeList := func(title string, description bool, options *listOptions) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
		delegate.ShowDescription = description
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(style.AccentColor).
			Foreground(style.AccentColor).
			Padding(0, 0, 0, 1)
		delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.NoItems = paddingStyle
		if titleStyle, ok := options.TitleStyle.Get(); ok {
			listC.Styles.Title = titleStyle
		}
		listC.StatusMessageLifetime = time.Hour * 999
		listC.SetShowPagination(false)
		listC.SetShowStatusBar(false)

		return listC
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = fmt.Sprintf("Search Music (v%s)", constant.Version)
	bubble.inputC.CharLimit = 60
	bubble.inputC.Prompt = viper.GetString(key.TUISearchPromptString)

	bubble.urlInputC = textinput.New()
	bubble.urlInputC.Placeholder = "Paste a YouTube or SoundCloud playlist URL"
	bubble.urlInputC.CharLimit = 200
	bubble.urlInputC.Prompt = "URL: "

	bubble.nameInputC = textinput.New()
	bubble.nameInputC.Placeholder = "Playlist name"
	bubble.nameInputC.CharLimit = 60
	bubble.nameInputC.Prompt = "Name: "

	bubble.playlistsC = makeList("Playlists", true, &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.AccentColor).Padding(0, 1),
		),
	})
	bubble.playlistsC.SetStatusBarItemName("playlist", "playlists")

	bubble.itemsC = makeList("Tracks", true, &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.Lavender).Padding(0, 1),
		),
	})
	bubble.itemsC.SetStatusBarItemName("track", "tracks")

	bubble.resultsC = makeList("Search Results", true, &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.Peach).Padding(0, 1),
		),
	})
	bubble.resultsC.SetStatusBarItemName("result", "results")

	bubble.selectC = makeList("Add to Playlist", false, &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.Blue).Padding(0, 1),
		),
	})
	bubble.selectC.SetStatusBarItemName("playlist", "playlists")

	bubble.recentC = makeList("Recently Played", true, &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.Yellow).Padding(0, 1),
		),
	})
	bubble.recentC.SetStatusBarItemName("entry", "entries")

	bubble.queueC = makeList("Now Playing", true, &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.Mauve).Padding(0, 1),
		),
	})
	bubble.queueC.SetStatusBarItemName("track", "tracks")

	bubble.options = options

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.inputC.Focus()

	return &bubble
}
