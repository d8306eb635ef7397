// Package player implements the playback engines, their facade and the queue.
package player

import (
	"errors"
	"fmt"
)

// ErrBackendUnavailable indicates the local playback engine cannot be used,
// typically because the mpv binary is missing from PATH.
var ErrBackendUnavailable = errors.New("local playback backend unavailable")

// RendererInitError indicates the embedded streaming renderer failed to
// construct. The original failure is retained for diagnostics.
type RendererInitError struct {
	Err error
}

func (e *RendererInitError) Error() string {
	return fmt.Sprintf("streaming renderer failed to initialize: %v", e.Err)
}

func (e *RendererInitError) Unwrap() error {
	return e.Err
}

// WebPlayerUnavailableError is returned when an online item is played but the
// streaming renderer is not usable. It carries the retained init failure so
// the user sees why streaming is degraded, not just that it is.
type WebPlayerUnavailableError struct {
	Reason error
}

func (e *WebPlayerUnavailableError) Error() string {
	if e.Reason != nil {
		return fmt.Sprintf("web player unavailable: %v", e.Reason)
	}
	return "web player unavailable"
}

func (e *WebPlayerUnavailableError) Unwrap() error {
	return e.Reason
}
