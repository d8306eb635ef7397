// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Library Configuration - these keys govern the local music library on disk.
const (
	LibraryPath       = "library.path"
	LibraryExtensions = "library.extensions"
)

// Search Interaction - these keys define the UI/UX parameters for search discovery.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
	SearchYouTubeLimit         = "search.youtube_limit"
)

// Import Pipeline - these keys configure remote playlist imports.
const (
	ImportPageSize = "import.page_size"
)

// Recently Played - these keys configure the persistence of playback state.
const (
	RecentSaveOnPlay = "recent.save_on_play"
	RecentSize       = "recent.size"
)

// Minimalist (Mini) Mode - these keys configure the specialized lightweight prompt mode.
const (
	MiniSearchLimit = "mini.search_limit"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the primary interactive environment's styling and logic.
const (
	TUIItemSpacing        = "tui.item_spacing"
	TUIPlayOnEnter        = "tui.play_on_enter"
	TUISearchPromptString = "tui.search_prompt"
	TUIShowURLs           = "tui.show_urls"
)

// Media Playback - these keys maintain the state and configuration for the playback backends.
const (
	Player           = "player.local"
	PlayerVolume     = "player.volume"
	PlayerWebEnabled = "player.web_enabled"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
