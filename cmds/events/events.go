// Package events implements the encode and decode commands, which convert
// between readable event lists and the WebSocket-over-HTTP wire format.
package events

import (
	"github.com/spf13/cobra"

	"github.com/fanout/go-gripcontrol/cmds/root"
)

var log = root.Logger

func init() {
	encode := &cobra.Command{
		Use:   "encode <TYPE[:payload]>...",
		Short: "Encode events into a WebSocket-over-HTTP body.",
		Long: `Encode events into a WebSocket-over-HTTP body written to stdout.

Each argument is an event: TYPE on its own has no payload, TYPE:payload
carries the text after the first colon (TYPE: carries an empty payload).`,
		Example: `  gripctl encode OPEN 'TEXT:c:{"type":"subscribe","channel":"room"}'`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(args, cmd.OutOrStdout(), cmd.Flags())
		},
	}
	encode.Flags().Bool("base64", false, "Payloads are base64 encoded.")

	decode := &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode a WebSocket-over-HTTP body.",
		Long:  "Decode a WebSocket-over-HTTP body read from file, or stdin if no file is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(args, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.Flags())
		},
	}
	decode.Flags().Bool("json", false, "Print events as a JSON array.")

	root.Command.AddCommand(encode, decode)
}
