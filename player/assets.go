package player

import (
	"embed"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"net/url"
	"sync"

	"github.com/melodia-cli/melodia/log"
	"github.com/melodia-cli/melodia/media"
	"github.com/samber/lo"
)

//go:embed assets
var assetsDir embed.FS

// AssetServer serves the embedded player page over a loopback HTTP listener.
//
// The streaming renderer needs an http origin for the provider embed APIs to
// work, so the page cannot be loaded from a file:// URL. One server lives for
// the whole process and is passed to whoever needs it.
type AssetServer struct {
	startOnce sync.Once
	server    *http.Server
	addr      string
	startErr  error
}

// NewAssetServer returns an unstarted asset server.
func NewAssetServer() *AssetServer {
	return &AssetServer{}
}

// Start binds the loopback listener and begins serving. Subsequent calls
// return the outcome of the first.
func (a *AssetServer) Start() error {
	a.startOnce.Do(func() {
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			a.startErr = fmt.Errorf("bind asset server: %w", err)
			return
		}

		assets := lo.Must(fs.Sub(assetsDir, "assets"))
		a.server = &http.Server{Handler: http.FileServer(http.FS(assets))}
		a.addr = listener.Addr().String()

		go func() {
			if err := a.server.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Warnf("asset server stopped: %v", err)
			}
		}()

		log.Infof("asset server listening on %s", a.addr)
	})

	return a.startErr
}

// PageURL builds the player page URL for the given source reference.
// YouTube items pass a video id, SoundCloud items pass a permalink URL.
func (a *AssetServer) PageURL(provider media.Provider, ref string) string {
	query := url.Values{}
	query.Set("type", provider.String())

	switch provider {
	case media.ProviderSoundCloud:
		query.Set("url", ref)
	default:
		query.Set("id", ref)
	}

	return fmt.Sprintf("http://%s/player.html?%s", a.addr, query.Encode())
}

// Close shuts the listener down.
func (a *AssetServer) Close() error {
	if a.server == nil {
		return nil
	}
	return a.server.Close()
}
