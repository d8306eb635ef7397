// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/melodia-cli/melodia/media"
	"github.com/melodia-cli/melodia/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

type (
	TrackPicker  func([]media.Item) *media.Item
	TracksFilter func([]media.Item) ([]media.Item, error)
)

// Searcher is any provider capable of resolving a text query to tracks.
type Searcher interface {
	Search(query string) ([]media.Item, error)
}

type Options struct {
	Out          io.Writer
	Searchers    []Searcher
	Json         bool
	Query        string
	TrackPicker  mo.Option[TrackPicker]
	TracksFilter mo.Option[TracksFilter]
}

func ParseTrackPicker(kind, value string) (TrackPicker, error) {
	switch kind {
	case "first":
		return func(items []media.Item) *media.Item {
			if len(items) == 0 {
				return nil
			}
			return &items[0]
		}, nil
	case "last":
		return func(items []media.Item) *media.Item {
			if len(items) == 0 {
				return nil
			}
			return &items[len(items)-1]
		}, nil
	case "exact":
		return func(items []media.Item) *media.Item {
			for i, item := range items {
				if item.Title == value {
					return &items[i]
				}
			}
			return nil
		}, nil
	case "index":
		idx, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid index: %s", value)
		}
		return func(items []media.Item) *media.Item {
			if len(items) == 0 {
				return nil
			}
			i := util.Min(idx, uint64(len(items)-1))
			return &items[i]
		}, nil
	default:
		return nil, fmt.Errorf("unknown picker type: %s", kind)
	}
}

// ParseTracksFilter parses a string description of a filter.
// Format: "first", "last", "all", "[from]-[to]", "@substring@", "[index]"
func ParseTracksFilter(description string) (TracksFilter, error) {
	if description == "first" {
		return func(items []media.Item) ([]media.Item, error) {
			if len(items) == 0 {
				return items, nil
			}
			return items[:1], nil
		}, nil
	}
	if description == "last" {
		return func(items []media.Item) ([]media.Item, error) {
			if len(items) == 0 {
				return items, nil
			}
			return items[len(items)-1:], nil
		}, nil
	}
	if description == "all" {
		return func(items []media.Item) ([]media.Item, error) {
			return items, nil
		}, nil
	}

	// Range: "1-5"
	if strings.Contains(description, "-") {
		parts := strings.Split(description, "-")
		if len(parts) == 2 {
			from, err1 := strconv.ParseUint(parts[0], 10, 16)
			to, err2 := strconv.ParseUint(parts[1], 10, 16)
			if err1 == nil && err2 == nil {
				return func(items []media.Item) ([]media.Item, error) {
					start := util.Min(from, uint64(len(items)))
					end := util.Min(to+1, uint64(len(items)))
					if start > end {
						return []media.Item{}, nil
					}
					return items[start:end], nil
				}, nil
			}
		}
	}

	// Substring: "@text@"
	if strings.HasPrefix(description, "@") && strings.HasSuffix(description, "@") {
		sub := description[1 : len(description)-1]
		return func(items []media.Item) ([]media.Item, error) {
			return lo.Filter(items, func(item media.Item, _ int) bool {
				return strings.Contains(strings.ToLower(item.Title), strings.ToLower(sub))
			}), nil
		}, nil
	}

	// Single index: "5"
	if idx, err := strconv.ParseUint(description, 10, 16); err == nil {
		return func(items []media.Item) ([]media.Item, error) {
			if uint64(len(items)) <= idx {
				return []media.Item{}, nil
			}
			return []media.Item{items[idx]}, nil
		}, nil
	}

	return nil, fmt.Errorf("invalid tracks filter: %s", description)
}
