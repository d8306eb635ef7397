package player

import (
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/melodia-cli/melodia/log"
	"github.com/melodia-cli/melodia/media"
	"github.com/ysmood/gson"
)

// endedBridge is the page-global function the player page calls on track end.
const endedBridge = "__melodiaEnded"

// Web implements WebBackend on a sandboxed headless Chromium page.
//
// Construction launches the browser and can fail on systems without a usable
// Chromium; callers must treat that as a degraded mode, not a crash.
type Web struct {
	browser *rod.Browser
	page    *rod.Page
	assets  *AssetServer
	onEnd   func()
}

// NewWeb launches the renderer. A failure at any step is wrapped in
// RendererInitError so the facade can retain it as a diagnostic.
func NewWeb(assets *AssetServer) (*Web, error) {
	if err := assets.Start(); err != nil {
		return nil, &RendererInitError{Err: err}
	}

	control, err := launcher.New().
		Headless(true).
		Set("autoplay-policy", "no-user-gesture-required").
		Launch()
	if err != nil {
		return nil, &RendererInitError{Err: fmt.Errorf("launch browser: %w", err)}
	}

	browser := rod.New().ControlURL(control)
	if err := browser.Connect(); err != nil {
		return nil, &RendererInitError{Err: fmt.Errorf("connect browser: %w", err)}
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = browser.Close()
		return nil, &RendererInitError{Err: fmt.Errorf("create page: %w", err)}
	}

	w := &Web{
		browser: browser,
		page:    page,
		assets:  assets,
	}

	if _, err := page.Expose(endedBridge, func(gson.JSON) (interface{}, error) {
		if w.onEnd != nil {
			w.onEnd()
		}
		return nil, nil
	}); err != nil {
		_ = browser.Close()
		return nil, &RendererInitError{Err: fmt.Errorf("expose bridge: %w", err)}
	}

	log.Info("streaming renderer initialized")
	return w, nil
}

// SetOnEnd registers the end-of-track callback. Only one slot exists.
func (w *Web) SetOnEnd(fn func()) {
	w.onEnd = fn
}

// Load navigates the page to the player bundle for the given source.
// Navigation failures are logged and swallowed: the page may recover on the
// next track and the caller cannot do anything useful with the error.
func (w *Web) Load(provider media.Provider, ref string) error {
	pageURL := w.assets.PageURL(provider, ref)
	if err := w.page.Navigate(pageURL); err != nil {
		log.Warnf("streaming renderer navigation failed: %v", err)
	}
	return nil
}

// inject runs a script in the page, ignoring failures. Control calls race
// against page loads, so a missed injection is expected and harmless.
func (w *Web) inject(js string) {
	if _, err := w.page.Eval(js); err != nil {
		log.Debugf("injection failed: %v", err)
	}
}

// Pause suspends playback inside the page.
func (w *Web) Pause() {
	w.inject(`() => { window.pausePlayback && window.pausePlayback() }`)
}

// Resume resumes playback inside the page.
func (w *Web) Resume() {
	w.inject(`() => { window.resumePlayback && window.resumePlayback() }`)
}

// Stop halts playback inside the page.
func (w *Web) Stop() {
	w.inject(`() => { window.stopPlayback && window.stopPlayback() }`)
}

// SetVolume sets the page playback volume.
func (w *Web) SetVolume(percent int) {
	w.inject(fmt.Sprintf(`() => { window.setPlaybackVolume && window.setPlaybackVolume(%d) }`, ClampVolume(percent)))
}

// Close tears the browser down.
func (w *Web) Close() error {
	return w.browser.Close()
}
