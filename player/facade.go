package player

import (
	"fmt"

	"github.com/melodia-cli/melodia/key"
	"github.com/melodia-cli/melodia/log"
	"github.com/melodia-cli/melodia/media"
	"github.com/spf13/viper"
)

// Facade routes playback to the right backend for each item and presents
// the pair as a single player.
//
// The streaming renderer is constructed lazily on the first online play.
// A failed construction is retried on the next online play; the latest
// failure is retained and exposed to the UI through InitDiagnostic.
type Facade struct {
	local  LocalBackend
	assets *AssetServer

	newWeb func(*AssetServer) (WebBackend, error)
	web    WebBackend
	webErr error

	ended chan struct{}
}

// NewFacade builds a facade over the default backends.
func NewFacade() *Facade {
	f := &Facade{
		local:  NewMPV(),
		assets: NewAssetServer(),
		newWeb: func(assets *AssetServer) (WebBackend, error) {
			web, err := NewWeb(assets)
			if err != nil {
				return nil, err
			}
			return web, nil
		},
		ended: make(chan struct{}, 1),
	}
	f.local.SetOnEnd(f.signalEnd)
	return f
}

// signalEnd feeds the shared end-of-track channel. A slow consumer drops the
// event rather than blocking a backend goroutine.
func (f *Facade) signalEnd() {
	select {
	case f.ended <- struct{}{}:
	default:
	}
}

// Ended returns the end-of-track event channel. Both backends feed the same
// channel; there is a single logical subscriber.
func (f *Facade) Ended() <-chan struct{} {
	return f.ended
}

// InitDiagnostic reports the latest streaming renderer init failure, nil
// when the renderer is healthy or was never needed.
func (f *Facade) InitDiagnostic() error {
	return f.webErr
}

// ensureWeb lazily constructs the streaming renderer. A failed attempt is
// not permanent: the next online play tries again while the renderer is nil.
func (f *Facade) ensureWeb() (WebBackend, error) {
	if f.web != nil {
		return f.web, nil
	}

	if !viper.GetBool(key.PlayerWebEnabled) {
		f.webErr = fmt.Errorf("streaming renderer disabled (%s)", key.PlayerWebEnabled)
		return nil, &WebPlayerUnavailableError{Reason: f.webErr}
	}

	web, err := f.newWeb(f.assets)
	if err != nil {
		f.webErr = err
		log.Errorf("streaming renderer init failed: %v", err)
		return nil, &WebPlayerUnavailableError{Reason: err}
	}

	f.web = web
	f.webErr = nil
	// The end subscriber outlives renderer reconstruction, re-apply it here.
	f.web.SetOnEnd(f.signalEnd)
	return f.web, nil
}

// Play routes the item to its backend.
func (f *Facade) Play(item media.Item) error {
	if !item.Online() {
		return f.local.Play(item.LocalPath, item.String())
	}

	web, err := f.ensureWeb()
	if err != nil {
		return err
	}

	// Quiet the local engine so the two backends never play over each other.
	_ = f.local.Stop()

	ref, err := streamRef(item)
	if err != nil {
		return err
	}
	return web.Load(item.Provider, ref)
}

// streamRef picks the reference the player page needs for the item.
func streamRef(item media.Item) (string, error) {
	switch item.Provider {
	case media.ProviderYouTube:
		if item.SourceID != "" {
			return item.SourceID, nil
		}
	case media.ProviderSoundCloud:
		if item.SourceURL != "" {
			return item.SourceURL, nil
		}
	}

	// Legacy items carry only a url; pass it through and let the page cope.
	if item.SourceURL != "" {
		log.Warnf("item %q has no provider-native reference, falling back to raw url", item.Title)
		return item.SourceURL, nil
	}
	if item.SourceID != "" {
		return item.SourceID, nil
	}
	return "", fmt.Errorf("item %q has no playable source reference", item.Title)
}

// Pause suspends both backends. Streaming control calls are best-effort.
func (f *Facade) Pause() error {
	if f.web != nil {
		f.web.Pause()
	}
	return f.local.SetPaused(true)
}

// Resume resumes both backends.
func (f *Facade) Resume() error {
	if f.web != nil {
		f.web.Resume()
	}
	return f.local.SetPaused(false)
}

// Stop halts both backends.
func (f *Facade) Stop() error {
	if f.web != nil {
		f.web.Stop()
	}
	return f.local.Stop()
}

// SetVolume applies the volume to both backends, clamped to 0-100.
func (f *Facade) SetVolume(percent int) error {
	percent = ClampVolume(percent)
	if f.web != nil {
		f.web.SetVolume(percent)
	}
	return f.local.SetVolume(percent)
}

// Position reports the local engine playback position in seconds.
// The streaming renderer does not expose one.
func (f *Facade) Position() float64 {
	return f.local.Position()
}

// Duration reports the local engine media duration in seconds.
func (f *Facade) Duration() float64 {
	return f.local.Duration()
}

// Close releases both backends and the asset server.
func (f *Facade) Close() error {
	if f.web != nil {
		_ = f.web.Close()
	}
	_ = f.assets.Close()
	return f.local.Close()
}
