// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"

	"github.com/melodia-cli/melodia/importer"
	"github.com/melodia-cli/melodia/key"
	"github.com/melodia-cli/melodia/player"
	"github.com/melodia-cli/melodia/playlist"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// Playlist opens the named playlist immediately instead of the overview.
	Playlist string
}

// Run initializes and executes the primary Bubble Tea application loop.
func Run(options *Options) error {
	manager, err := playlist.NewManager(playlist.NewStore())
	if err != nil {
		return err
	}

	facade := player.NewFacade()
	defer facade.Close()

	_ = facade.SetVolume(viper.GetInt(key.PlayerVolume))

	queue := player.NewQueue(facade)

	bubble := newBubble(manager, facade, queue, importer.New(), options)

	if options.Playlist != "" {
		p, err := manager.Get(options.Playlist)
		if err != nil {
			return fmt.Errorf("playlist %q not found", options.Playlist)
		}
		bubble.setState(playlistsState)
		bubble.newState(playlistItemsState)
		bubble.openPlaylist(p)
	} else {
		bubble.setState(playlistsState)
	}

	_, err = tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	return err
}
