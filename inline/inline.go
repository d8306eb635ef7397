// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/melodia-cli/melodia/importer"
	"github.com/melodia-cli/melodia/log"
	"github.com/melodia-cli/melodia/media"
)

func Run(options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	// Step 1: Execute searches across all configured providers.
	var items []media.Item
	for _, searcher := range options.Searchers {
		found, err := searcher.Search(options.Query)
		if err != nil {
			// A missing credential degrades that provider, not the run.
			if errors.Is(err, importer.ErrMissingCredential) {
				log.Warnf("provider skipped: %v", err)
				continue
			}
			return fmt.Errorf("search failed: %w", err)
		}
		items = append(items, found...)
	}

	// Step 2: Narrow the result set if a filter is defined.
	if options.TracksFilter.IsPresent() {
		filter := options.TracksFilter.MustGet()
		filtered, err := filter(items)
		if err != nil {
			return err
		}
		items = filtered
	}

	// Step 3: Apply track selection logic if a picker is defined.
	var selected []media.Item
	if options.TrackPicker.IsPresent() {
		picker := options.TrackPicker.MustGet()
		if choice := picker(items); choice != nil {
			selected = []media.Item{*choice}
		}
	} else {
		selected = items
	}

	if len(selected) == 0 {
		if options.Json {
			return writeJson(options.Out, []media.Item{}, options)
		}
		return nil // Nothing found
	}

	// Step 4: Dispatch the processed results to the configured output writer.
	if options.Json {
		return writeJson(options.Out, selected, options)
	}

	for _, item := range selected {
		fmt.Fprintln(options.Out, location(item))
	}

	return nil
}

// location returns the playable address of an item, suitable for piping
// into an external player.
func location(item media.Item) string {
	if item.Online() {
		if item.SourceURL != "" {
			return item.SourceURL
		}
		return "https://www.youtube.com/watch?v=" + item.SourceID
	}
	return item.LocalPath
}

func writeJson(out io.Writer, items []media.Item, options *Options) error {
	data, err := asJson(items, options.Query)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
