// Package player implements the playback engines, their facade and the queue.
//
// Two backends exist: a local engine driving mpv over its JSON-IPC socket,
// and an embedded streaming renderer driving a headless browser page. The
// Facade routes items to the right backend; the Queue sequences them.
package player

import "github.com/melodia-cli/melodia/media"

// LocalBackend encapsulates the capabilities of the on-disk playback engine.
type LocalBackend interface {
	// Play starts playback of the given file path, replacing any current load.
	Play(path string, title string) error

	// SetPaused suspends or resumes playback.
	SetPaused(paused bool) error

	// Stop halts playback and unloads the current file.
	Stop() error

	// SetVolume sets the playback volume, clamped to 0-100.
	SetVolume(percent int) error

	// Position retrieves the current playback position in seconds.
	// Best effort: returns 0 when nothing is loaded.
	Position() float64

	// Duration retrieves the length of the loaded file in seconds.
	// Best effort: returns 0 when unknown.
	Duration() float64

	// SetOnEnd registers the single end-of-track callback slot.
	SetOnEnd(fn func())

	// IsRunning validates the liveness of the underlying playback process.
	IsRunning() bool

	// Close terminates the engine and releases all associated resources.
	Close() error
}

// WebBackend encapsulates the capabilities of the embedded streaming renderer.
//
// Control calls are fire-and-forget script injections: the page may not have
// loaded yet, and a missed injection only affects the current track.
type WebBackend interface {
	// Load navigates the renderer to the player page for the given source.
	Load(provider media.Provider, ref string) error

	// Pause suspends playback inside the page.
	Pause()

	// Resume resumes playback inside the page.
	Resume()

	// Stop halts playback inside the page.
	Stop()

	// SetVolume sets the page playback volume, clamped to 0-100.
	SetVolume(percent int)

	// SetOnEnd registers the single end-of-track callback slot.
	SetOnEnd(fn func())

	// Close tears the renderer down.
	Close() error
}

// ClampVolume bounds a volume percentage to the 0-100 range.
func ClampVolume(percent int) int {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}
