// Package cmd implements the command-line interface for melodia.
package cmd

import (
	"fmt"

	"github.com/melodia-cli/melodia/auth"
	"github.com/melodia-cli/melodia/color"
	"github.com/melodia-cli/melodia/icon"
	"github.com/melodia-cli/melodia/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func credentialNames() []string {
	return lo.Map(auth.Credentials(), func(c auth.Credential, _ int) string {
		return string(c)
	})
}

func parseCredential(name string) (auth.Credential, error) {
	for _, c := range auth.Credentials() {
		if string(c) == name {
			return c, nil
		}
	}

	return "", fmt.Errorf("unknown credential %q, expected one of %v", name, credentialNames())
}

func init() {
	rootCmd.AddCommand(authCmd)
}

// authCmd manages provider credentials in the system keyring.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage provider credentials",
	Long: `Manage the credentials used to talk to streaming providers.

Credentials are stored in the system keyring. The matching environment
variable always takes precedence over the stored value.`,
}

func init() {
	authCmd.AddCommand(authSetCmd)
}

// authSetCmd stores a credential value in the system keyring.
var authSetCmd = &cobra.Command{
	Use:       "set <credential> <value>",
	Short:     "Store a credential in the system keyring",
	Example:   "melodia auth set youtube-api-key AIza...",
	Args:      cobra.ExactArgs(2),
	ValidArgs: credentialNames(),
	Run: func(cmd *cobra.Command, args []string) {
		credential, err := parseCredential(args[0])
		handleErr(err)

		handleErr(auth.Set(credential, args[1]))
		fmt.Printf("%s %s stored\n", icon.Get(icon.Success), credential)
	},
}

func init() {
	authCmd.AddCommand(authDeleteCmd)
}

// authDeleteCmd removes a credential from the system keyring.
var authDeleteCmd = &cobra.Command{
	Use:       "delete <credential>",
	Short:     "Remove a credential from the system keyring",
	Args:      cobra.ExactArgs(1),
	ValidArgs: credentialNames(),
	Run: func(cmd *cobra.Command, args []string) {
		credential, err := parseCredential(args[0])
		handleErr(err)

		handleErr(auth.Delete(credential))
		fmt.Printf("%s %s removed\n", icon.Get(icon.Success), credential)
	},
}

func init() {
	authCmd.AddCommand(authStatusCmd)
}

// authStatusCmd reports which credentials are configured.
var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which provider credentials are configured",
	Run: func(cmd *cobra.Command, args []string) {
		nameStyle := style.New().Bold(true).Foreground(color.HiPurple).Render

		for _, credential := range auth.Credentials() {
			state := style.Fg(color.Red)("not set")
			if auth.Get(credential).IsPresent() {
				state = style.Fg(color.Green)("set")
			}

			fmt.Printf("%s %s (env %s)\n", nameStyle(string(credential)), state, credential.Env())
		}
	},
}
