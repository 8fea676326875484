// Package root defines the root of the gripctl command tree.
package root

import (
	"github.com/spf13/cobra"
)

var (
	// Command is the root of the command tree.
	Command = setUpRootCmd()
)

// Setup persistent flags, pre-run and return root command
func setUpRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gripctl",
		Short: "GRIP command-line tool.",
		Long: "Build GRIP instructions, encode and decode WebSocket-over-HTTP events, " +
			"check Grip-Sig tokens and publish to GRIP proxies such as Pushpin.",
		SilenceUsage: true,
	}

	verbose := rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	// function to run before every subcommand
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		setUpLogs(*verbose)
	}

	return rootCmd
}
