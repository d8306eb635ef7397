// Package cmd implements the command-line interface for melodia.
package cmd

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/melodia-cli/melodia/filesystem"
	"github.com/melodia-cli/melodia/inline"
	"github.com/melodia-cli/melodia/query"
	"github.com/melodia-cli/melodia/search"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("query", "q", "", "The search query to execute for track discovery")
	inlineCmd.Flags().StringP("track", "t", "", "Criteria for selecting a specific track from the search results")
	inlineCmd.Flags().StringP("filter", "f", "", "Criteria for narrowing the search results before selection")
	inlineCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	inlineCmd.Flags().BoolP("local-only", "L", false, "Search only the local library, skipping online providers")

	inlineCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")

	lo.Must0(inlineCmd.MarkFlagRequired("query"))

	inlineCmd.RegisterFlagCompletionFunc("query", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
}

// inlineCmd executes the application in non-interactive, scriptable inline mode.
var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Execute the application in non-interactive, scriptable inline mode",
	Long: `Initialize the application for automated execution and data extraction using inline mode.

Track selectors:
  first - first track in the list
  last - last track in the list
  exact - track whose title equals the query
  index - select track by index (starting from 0)

Filters:
  first - first track in the list
  last - last track in the list
  all - all tracks in the list
  [number] - select track by index (starting from 0)
  [from]-[to] - select tracks by range
  @[substring]@ - select tracks by title substring

When using the json flag the track selector could be omitted. That way, it will output all tracks`,

	Example: "melodia inline -q 'moonlight sonata' -t first",
	Run: func(cmd *cobra.Command, args []string) {
		var err error

		searchQuery := lo.Must(cmd.Flags().GetString("query"))

		searchers := []inline.Searcher{search.NewLocal()}
		if !lo.Must(cmd.Flags().GetBool("local-only")) {
			searchers = append(searchers, search.NewYouTube())
		}

		output := lo.Must(cmd.Flags().GetString("output"))
		var writer io.Writer
		if output != "" {
			writer, err = filesystem.API().Create(output)
			handleErr(err)
		} else {
			writer = os.Stdout
		}

		trackFlag := lo.Must(cmd.Flags().GetString("track"))
		trackPicker := mo.None[inline.TrackPicker]()
		if trackFlag != "" {
			fn, err := inline.ParseTrackPicker(trackFlag, searchQuery)
			handleErr(err)
			trackPicker = mo.Some(fn)
		}

		filterFlag := lo.Must(cmd.Flags().GetString("filter"))
		tracksFilter := mo.None[inline.TracksFilter]()
		if filterFlag != "" {
			fn, err := inline.ParseTracksFilter(filterFlag)
			handleErr(err)
			tracksFilter = mo.Some(fn)
		}

		options := &inline.Options{
			Searchers:    searchers,
			Json:         lo.Must(cmd.Flags().GetBool("json")),
			Query:        searchQuery,
			TrackPicker:  trackPicker,
			TracksFilter: tracksFilter,
			Out:          writer,
		}

		handleErr(inline.Run(options))
	},
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)
}

// inlineSchemaCmd generates JSON schemas for structured inline mode outputs.
var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate JSON schemas for structured inline mode outputs",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "track", "item", "output":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		schema := reflector.Reflect(&inline.Output{})

		handleErr(json.NewEncoder(os.Stdout).Encode(schema))
	},
}
