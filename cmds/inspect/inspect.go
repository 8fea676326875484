// Package inspect implements the parse-uri and validate-sig commands.
package inspect

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/fanout/go-gripcontrol"
	"github.com/fanout/go-gripcontrol/cmds/root"
	"github.com/fanout/go-gripcontrol/text"
)

var log = root.Logger

func init() {
	parseURI := &cobra.Command{
		Use:     "parse-uri <grip-uri>",
		Short:   "Show the control endpoint described by a GRIP URI.",
		Example: `  gripctl parse-uri 'http://localhost:5561/?iss=realm&key=base64:Z2VlWDAz'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParseURI(args, cmd.OutOrStdout(), cmd.Flags())
		},
	}
	parseURI.Flags().Bool("show-key", false, "Print the key instead of starring it out.")

	validateSig := &cobra.Command{
		Use:   "validate-sig <token>",
		Short: "Check a Grip-Sig token.",
		Long: `Check a Grip-Sig token against a key, printing its claims when it is
valid. The key is taken from --key, or from the key of --uri.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidateSig(args, cmd.OutOrStdout(), cmd.Flags())
		},
	}
	validateSig.Flags().String("key", "", "Signing key, optionally prefixed with \"base64:\".")
	validateSig.Flags().String("uri", "", "GRIP URI whose key to use.")

	root.Command.AddCommand(parseURI, validateSig)
}

func runParseURI(args []string, out io.Writer, flags *pflag.FlagSet) error {
	config, err := gripcontrol.ParseGripURI(args[0])
	if err != nil {
		return err
	}
	key := string(config.Key)
	if showKey, _ := flags.GetBool("show-key"); !showKey {
		key = text.StarOut(key)
	}
	fields := fmt.Sprintf("control_uri: %s\ncontrol_iss: %s\nkey: %s\n", config.ControlURI, config.ControlIss, key)
	_, err = fmt.Fprint(out, text.Underline(args[0])+text.Indent(fields, "  "))
	return err
}

func keyFromFlags(flags *pflag.FlagSet) ([]byte, error) {
	if uri, _ := flags.GetString("uri"); uri != "" {
		config, err := gripcontrol.ParseGripURI(uri)
		if err != nil {
			return nil, err
		}
		return config.Key, nil
	}
	key, _ := flags.GetString("key")
	if encoded, ok := strings.CutPrefix(key, "base64:"); ok {
		return base64.StdEncoding.DecodeString(encoded)
	}
	return []byte(key), nil
}

func runValidateSig(args []string, out io.Writer, flags *pflag.FlagSet) error {
	key, err := keyFromFlags(flags)
	if err != nil {
		return err
	}
	if len(key) == 0 {
		return errors.New("validate-sig requires --key or a --uri with a key")
	}
	claims, err := gripcontrol.VerifySig(args[0], key)
	if err != nil {
		log.Debugf("token rejected: %v", err)
		return err
	}
	pretty, err := json.MarshalIndent(claims, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "Signature is valid, claims:\n%s\n", text.Indent(string(pretty), "  "))
	return err
}
