// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"

	"github.com/melodia-cli/melodia/icon"
	"github.com/melodia-cli/melodia/key"
	"github.com/melodia-cli/melodia/media"
	"github.com/melodia-cli/melodia/playlist"
	"github.com/melodia-cli/melodia/recent"
	"github.com/melodia-cli/melodia/style"
	"github.com/melodia-cli/melodia/util"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"
)

// listItem implements the list.Item interface, wrapping various domain models for terminal display.
type listItem struct {
	internal interface{}
	marked   bool
}

func (t *listItem) toggleMark() {
	t.marked = !t.marked
}

func (t *listItem) getMark() string {
	switch t.internal.(type) {
	case media.Item:
		return lipgloss.NewStyle().Bold(true).Foreground(style.AccentColor).Render(icon.Get(icon.Progress))
	default:
		return ""
	}
}

// Title retrieves the primary display text for the list item.
func (t *listItem) Title() (title string) {
	switch e := t.internal.(type) {
	case media.Item:
		title = e.Title
	case *playlist.Playlist:
		title = e.Name
	case *recent.SavedItem:
		title = e.Item.Title
	case string:
		title = e
	default:
		title = t.FilterValue()
	}

	if title != "" && t.marked {
		title = fmt.Sprintf("%s %s", title, t.getMark())
	}

	return
}

// Description retrieves the secondary metadata line for the list item.
func (t *listItem) Description() (description string) {
	switch e := t.internal.(type) {
	case media.Item:
		var parts []string

		parts = append(parts, e.Artist)
		parts = append(parts, e.PrettyDuration())

		if e.Online() {
			badge := lipgloss.NewStyle().Foreground(style.Blue).Render(util.Capitalize(e.Provider.String()))
			parts = append(parts, badge)
			if viper.GetBool(key.TUIShowURLs) && e.SourceURL != "" {
				parts = append(parts, style.Faint(e.SourceURL))
			}
		}

		if e.Note != "" {
			parts = append(parts, style.Faint(e.Note))
		}

		description = strings.Join(parts, " • ")
	case *playlist.Playlist:
		description = fmt.Sprintf("%s • %s", util.Quantify(len(e.Items), "track", "tracks"), e.PrettyDuration())
	case *recent.SavedItem:
		description = fmt.Sprintf("%s • %s", e.Item.Artist, e.Item.PrettyDuration())
	case string:
		description = ""
	}

	return
}

// FilterValue returns the string used for real-time list filtering and searching.
func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case media.Item:
		return e.Title + " " + e.Artist
	case *playlist.Playlist:
		return e.Name
	case *recent.SavedItem:
		return e.Item.Title + " " + e.Item.Artist
	case string:
		return e
	default:
		return ""
	}
}
