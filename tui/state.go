// Package tui provides the primary terminal user interface implementation.
package tui

type state int

const (
	loadingState state = iota
	errorState
	playlistsState
	playlistItemsState
	searchState
	resultsState
	selectPlaylistState
	importState
	nameInputState
	recentState
	nowPlayingState
)

// nameAction discriminates what the shared name input is collecting.
type nameAction int

const (
	nameActionCreate nameAction = iota
	nameActionRename
	nameActionImport
)
