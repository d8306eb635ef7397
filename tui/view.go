// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"

	"github.com/melodia-cli/melodia/color"
	"github.com/melodia-cli/melodia/icon"
	"github.com/melodia-cli/melodia/style"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case playlistsState:
		output = b.viewPlaylists()
	case playlistItemsState:
		output = b.viewPlaylistItems()
	case searchState:
		output = b.viewSearch()
	case resultsState:
		output = b.viewResults()
	case selectPlaylistState:
		output = b.viewSelectPlaylist()
	case importState:
		output = b.viewImport()
	case nameInputState:
		output = b.viewNameInput()
	case recentState:
		output = b.viewRecent()
	case nowPlayingState:
		output = b.viewNowPlaying()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Loading"),
			"",
			b.spinnerC.View() + " " + b.progressStatus,
		},
	)
}

func (b *statefulBubble) viewPlaylists() string {
	return listExtraPaddingStyle.Render(b.playlistsC.View())
}

func (b *statefulBubble) viewPlaylistItems() string {
	return listExtraPaddingStyle.Render(b.itemsC.View())
}

func (b *statefulBubble) viewSearch() string {
	lines := []string{
		style.Title("Search Music"),
		"",
		b.inputC.View(),
	}

	if suggestion, ok := b.searchSuggestion.Get(); ok {
		lines = append(lines, "", style.Faint(fmt.Sprintf("Did you mean %s? (tab to accept)", suggestion)))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewResults() string {
	return listExtraPaddingStyle.Render(b.resultsC.View())
}

func (b *statefulBubble) viewSelectPlaylist() string {
	return listExtraPaddingStyle.Render(b.selectC.View())
}

func (b *statefulBubble) viewImport() string {
	lines := []string{
		style.Title("Import Playlist"),
		"",
		icon.Get(icon.Import) + " Import a remote playlist into your library",
		"",
		b.urlInputC.View(),
		"",
		style.Faint("(Enter to import, Esc to cancel)"),
	}

	return b.renderLines(false, lines)
}

func (b *statefulBubble) viewNameInput() string {
	var prompt string
	switch b.nameFor {
	case nameActionCreate:
		prompt = "Name the new playlist:"
	case nameActionRename:
		prompt = fmt.Sprintf("Rename %s to:", style.Fg(color.Purple)(b.selectedPlaylist.Name))
	case nameActionImport:
		prompt = "Name the imported playlist:"
	}

	lines := []string{
		style.Title("Playlist Name"),
		"",
		prompt,
		"",
		b.nameInputC.View(),
		"",
		style.Faint("(Enter to confirm, Esc to cancel)"),
	}

	return b.renderLines(false, lines)
}

func (b *statefulBubble) viewRecent() string {
	return listExtraPaddingStyle.Render(b.recentC.View())
}

func (b *statefulBubble) viewNowPlaying() string {
	var status string

	if item, ok := b.queue.Current(); ok {
		stateIcon := icon.Get(icon.Progress)
		if b.paused {
			stateIcon = icon.Get(icon.Queue)
		}
		status = fmt.Sprintf("%s %s", stateIcon, style.Fg(color.Purple)(item.String()))

		if pos, dur := b.facade.Position(), b.facade.Duration(); dur > 0 {
			status += style.Faint(fmt.Sprintf("  %d:%02d / %d:%02d",
				int(pos)/60, int(pos)%60, int(dur)/60, int(dur)%60))
		}
	} else {
		status = style.Faint("Nothing playing")
	}

	volume := fmt.Sprintf("%s %d%%", icon.Get(icon.Volume), b.volume)

	header := paddingStyle.Render(status + "  " + style.Faint(volume))
	return header + "\n" + listExtraPaddingStyle.Render(b.queueC.View())
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	errorBody := errorStyle.Render(fmt.Sprintf("Critical Failure: %v", b.lastError.Error()))
	errorMsg := wrap.String(errorBody, b.width)
	return b.renderLines(
		true,
		append([]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
		},
			errorMsg,
		),
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
