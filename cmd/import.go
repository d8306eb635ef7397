// Package cmd implements the command-line interface for melodia.
package cmd

import (
	"errors"
	"fmt"

	"github.com/melodia-cli/melodia/icon"
	"github.com/melodia-cli/melodia/importer"
	"github.com/melodia-cli/melodia/playlist"
	"github.com/melodia-cli/melodia/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringP("name", "n", "", "Name of the local playlist to import into")
}

// importCmd imports a remote playlist into the local store.
var importCmd = &cobra.Command{
	Use:   "import <url>",
	Short: "Import a remote playlist from YouTube or SoundCloud",
	Long: `Fetch every track of a remote playlist and merge it into a local playlist.

The playlist name defaults to the remote title. Importing into an existing
playlist appends the fetched tracks to it.`,
	Example: "melodia import https://www.youtube.com/playlist?list=PLabc123 -n 'Road Trip'",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		manager, err := playlist.NewManager(playlist.NewStore())
		handleErr(err)

		imp := importer.New()

		_, err = imp.Submit(args[0])
		handleErr(err)

		erase := util.PrintErasable(fmt.Sprintf("%s Importing...", icon.Get(icon.Progress)))
		result := <-imp.Results()
		erase()

		handleErr(result.Err)

		name := lo.Must(cmd.Flags().GetString("name"))
		if name == "" {
			name = result.RemoteTitle
		}
		if name == "" {
			name = "Imported"
		}

		if _, err := manager.Create(name); err != nil && !errors.Is(err, playlist.ErrAlreadyExists) {
			handleErr(err)
		}
		handleErr(manager.AddAll(name, result.Items))

		p, err := manager.Get(name)
		handleErr(err)

		fmt.Printf("%s Imported %s into %q (%s total)\n",
			icon.Get(icon.Success),
			util.Quantify(len(result.Items), "track", "tracks"),
			name,
			util.Quantify(len(p.Items), "track", "tracks"),
		)
	},
}
