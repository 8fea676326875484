// Package completions implements the completions command.
package completions

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fanout/go-gripcontrol/cmds/root"
)

var (
	defaultShell = "bash"
)

func init() {
	completionsCommand := &cobra.Command{
		Use:       "completions [bash|zsh|fish] [filename]",
		Short:     "Provides a shell completion script.",
		Long:      "Writes a completion script for the given shell (default: " + defaultShell + ") to filename, or stdout.",
		Args:      cobra.MaximumNArgs(2),
		ValidArgs: []string{"bash", "zsh", "fish"},
		RunE:      genCompletion,
	}
	root.Command.AddCommand(completionsCommand)
}

func genCompletion(cmd *cobra.Command, args []string) error {
	shell := defaultShell
	if len(args) > 0 {
		shell = args[0]
	}
	if len(args) > 1 {
		filename := args[1]
		switch shell {
		case "bash":
			return root.Command.GenBashCompletionFile(filename)
		case "zsh":
			return root.Command.GenZshCompletionFile(filename)
		case "fish":
			return root.Command.GenFishCompletionFile(filename, true)
		}
		return fmt.Errorf("unsupported shell %q", shell)
	}
	out := cmd.OutOrStdout()
	switch shell {
	case "bash":
		return root.Command.GenBashCompletion(out)
	case "zsh":
		return root.Command.GenZshCompletion(out)
	case "fish":
		return root.Command.GenFishCompletion(out, true)
	}
	return fmt.Errorf("unsupported shell %q", shell)
}
