package instruct

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"sigs.k8s.io/yaml"

	"github.com/fanout/go-gripcontrol"
	"github.com/fanout/go-gripcontrol/formats"
)

func holdFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringP("mode", "m", string(gripcontrol.HoldModeResponse), "Hold mode: response or stream.")
	flags.StringArrayP("channel", "c", nil, "Channel to hold on, as name or name@prev-id (repeatable).")
	flags.Int("timeout", 0, "Seconds before a long-poll times out (0 leaves it to the proxy).")
	flags.Int("code", 0, "Status code of the immediate/timeout response.")
	flags.String("reason", "", "Reason phrase of the immediate/timeout response.")
	flags.StringArray("header", nil, "Header of the immediate/timeout response, as 'Name: value' (repeatable).")
	flags.String("body", "", "Body of the immediate/timeout response.")
	flags.StringP("file", "f", "", "Read a hold instruction from a YAML or JSON file.")
	flags.Bool("pretty", false, "Indent the output.")
}

// responseFromFlags returns nil when no response flag was given.
func responseFromFlags(flags *pflag.FlagSet) (*formats.HTTPResponse, error) {
	if !flags.Changed("code") && !flags.Changed("reason") && !flags.Changed("header") && !flags.Changed("body") {
		return nil, nil
	}
	response := &formats.HTTPResponse{}
	response.Code, _ = flags.GetInt("code")
	response.Reason, _ = flags.GetString("reason")
	if flags.Changed("body") {
		body, _ := flags.GetString("body")
		response.Body = []byte(body)
	}
	headers, _ := flags.GetStringArray("header")
	for _, header := range headers {
		name, value, ok := strings.Cut(header, ":")
		if !ok {
			return nil, fmt.Errorf("header %q is not of the form 'Name: value'", header)
		}
		if response.Headers == nil {
			response.Headers = map[string]string{}
		}
		response.Headers[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return response, nil
}

func holdFromFlags(flags *pflag.FlagSet) ([]byte, error) {
	if file, _ := flags.GetString("file"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		document, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %v", file, err)
		}
		return document, nil
	}

	mode, _ := flags.GetString("mode")
	channels, _ := flags.GetStringArray("channel")
	timeout, _ := flags.GetInt("timeout")
	response, err := responseFromFlags(flags)
	if err != nil {
		return nil, err
	}
	hold, err := gripcontrol.CreateHold(gripcontrol.HoldConfig{
		Mode:     gripcontrol.HoldMode(mode),
		Channels: parseChannels(channels),
		Response: response,
		Timeout:  timeout,
	})
	return []byte(hold), err
}

func runHold(out io.Writer, flags *pflag.FlagSet) error {
	document, err := holdFromFlags(flags)
	if err != nil {
		return err
	}
	if err := gripcontrol.ValidateInstruction(document); err != nil {
		return err
	}
	if pretty, _ := flags.GetBool("pretty"); pretty {
		var indented bytes.Buffer
		if err := json.Indent(&indented, document, "", "  "); err != nil {
			return err
		}
		document = indented.Bytes()
	}
	log.Debugf("hold instruction is %d bytes", len(document))
	_, err = fmt.Fprintln(out, string(document))
	return err
}
