// Package cmd implements the command-line interface for melodia.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/melodia-cli/melodia/color"
	"github.com/melodia-cli/melodia/constant"
	"github.com/melodia-cli/melodia/icon"
	"github.com/melodia-cli/melodia/key"
	"github.com/melodia-cli/melodia/log"
	"github.com/melodia-cli/melodia/playlist"
	"github.com/melodia-cli/melodia/style"
	"github.com/melodia-cli/melodia/tui"
	"github.com/melodia-cli/melodia/util"
	"github.com/melodia-cli/melodia/version"
	"github.com/melodia-cli/melodia/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, square)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().BoolP("save-recent", "R", true, "Record played tracks in the recently played list")
	lo.Must0(viper.BindPFlag(key.RecentSaveOnPlay, rootCmd.PersistentFlags().Lookup("save-recent")))

	rootCmd.Flags().StringP("playlist", "p", "", "Open the named playlist immediately")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("playlist", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return playlistNames(), cobra.ShellCompDirectiveNoFileComp
	}))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	// Initialize cleanup of localized temporary files on application startup.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// playlistNames lists stored playlist names for shell completion.
func playlistNames() []string {
	manager, err := playlist.NewManager(playlist.NewStore())
	if err != nil {
		return nil
	}

	return manager.Names()
}

// rootCmd defines the entry point for the melodia application.
var rootCmd = &cobra.Command{
	Use:   constant.Melodia,
	Short: "A minimalist command-line interface for music discovery and playback",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A minimalist command-line interface for music discovery and playback"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		CheckDependencies()

		options := tui.Options{
			Playlist: lo.Must(cmd.Flags().GetString("playlist")),
		}
		handleErr(tui.Run(&options))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
