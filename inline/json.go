// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"encoding/json"

	"github.com/melodia-cli/melodia/media"
)

type Track struct {
	// Provider is the name of the provider the track came from.
	Provider string `json:"provider"`
	// Track is the media item in its persisted schema.
	Track media.Item `json:"track"`
}

type Output struct {
	Query  string   `json:"query"`
	Result []*Track `json:"result"`
}

func asJson(items []media.Item, query string) ([]byte, error) {
	var result = make([]*Track, len(items))
	for i, item := range items {
		result[i] = &Track{
			Provider: item.Provider.String(),
			Track:    item,
		}
	}

	return json.Marshal(&Output{
		Query:  query,
		Result: result,
	})
}
