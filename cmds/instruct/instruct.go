// Package instruct implements the commands that build GRIP instructions:
// hold, channel-header and control-message.
package instruct

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/fanout/go-gripcontrol"
	"github.com/fanout/go-gripcontrol/cmds/root"
)

var log = root.Logger

func init() {
	hold := &cobra.Command{
		Use:   "hold",
		Short: "Print a hold instruction.",
		Long: `Print a hold instruction for a long-polling (--mode response) or
streaming (--mode stream) request. Channels are given as name or
name@prev-id. With --file, a hold instruction written in YAML or JSON is
validated and printed as JSON instead.`,
		Example: `  gripctl hold -c updates@17 --timeout 55 --code 204
  gripctl hold --file hold.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHold(cmd.OutOrStdout(), cmd.Flags())
		},
	}
	holdFlags(hold)

	channelHeader := &cobra.Command{
		Use:     "channel-header <name[@prev-id]>...",
		Short:   "Print a Grip-Channel header value.",
		Example: `  gripctl channel-header chan1 chan2@prev-id`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChannelHeader(args, cmd.OutOrStdout())
		},
	}

	controlMessage := &cobra.Command{
		Use:     "control-message <type> [key=value]...",
		Short:   "Print a WebSocket control message.",
		Example: `  gripctl control-message subscribe channel=room`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runControlMessage(args, cmd.OutOrStdout(), cmd.Flags())
		},
	}
	controlMessage.Flags().Bool("prefix", false, "Prefix the message with \"c:\" for use as a TEXT event payload.")

	root.Command.AddCommand(hold, channelHeader, controlMessage)
}

// parseChannel parses name or name@prev-id.
func parseChannel(arg string) gripcontrol.Channel {
	name, prevID, _ := strings.Cut(arg, "@")
	return gripcontrol.Channel{Name: name, PrevID: prevID}
}

func parseChannels(args []string) []gripcontrol.Channel {
	channels := make([]gripcontrol.Channel, 0, len(args))
	for _, arg := range args {
		channels = append(channels, parseChannel(arg))
	}
	return channels
}
