package instruct

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/fanout/go-gripcontrol"
)

func runChannelHeader(args []string, out io.Writer) error {
	_, err := fmt.Fprintln(out, gripcontrol.CreateGripChannelHeader(parseChannels(args)))
	return err
}

func runControlMessage(args []string, out io.Writer, flags *pflag.FlagSet) error {
	var params map[string]interface{}
	for _, arg := range args[1:] {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("argument %q is not of the form key=value", arg)
		}
		if params == nil {
			params = map[string]interface{}{}
		}
		params[key] = value
	}
	message, err := gripcontrol.WebSocketControlMessage(args[0], params)
	if err != nil {
		return err
	}
	if prefix, _ := flags.GetBool("prefix"); prefix {
		message = "c:" + message
	}
	_, err = fmt.Fprintln(out, message)
	return err
}
