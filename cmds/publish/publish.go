// Package publish implements the publish command.
package publish

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cenkalti/backoff/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/taskcluster/httpbackoff/v3"
	sluglib "github.com/taskcluster/slugid-go/slugid"

	"github.com/fanout/go-gripcontrol"
	"github.com/fanout/go-gripcontrol/cmds/root"
	"github.com/fanout/go-gripcontrol/config"
	"github.com/fanout/go-gripcontrol/formats"
	"github.com/fanout/go-gripcontrol/pubcontrol"
)

var log = root.Logger

func init() {
	cmd := &cobra.Command{
		Use:   "publish <channel>...",
		Short: "Publish a message to GRIP proxies.",
		Long: `Publish a message to every configured GRIP proxy (see the proxies
option of gripctl.yml, or GRIP_URL), or to the proxies given with --uri.`,
		Example: `  gripctl publish room --format ws-message --content hello
  gripctl publish clock --format http-stream --content "tick
"
  gripctl publish updates --format http-response --code 200 --content done --auto-id`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return runPublish(cmd.Context(), cfg, args, cmd.OutOrStdout(), cmd.Flags())
		},
	}
	flags := cmd.Flags()
	flags.String("format", "ws-message", "Format to publish: ws-message, http-stream or http-response.")
	flags.String("content", "", "Content to publish.")
	flags.String("content-file", "", "Read the content to publish from a file.")
	flags.Bool("close", false, "Publish an http-stream close action instead of content.")
	flags.Int("code", 0, "Status code, for http-response.")
	flags.String("id", "", "Item ID.")
	flags.String("prev-id", "", "Previous item ID.")
	flags.Bool("auto-id", false, "Generate a random item ID.")
	flags.StringArray("uri", nil, "GRIP URI to publish to, instead of the configured proxies (repeatable).")

	root.Command.AddCommand(cmd)
}

func contentFromFlags(flags *pflag.FlagSet) ([]byte, error) {
	if file, _ := flags.GetString("content-file"); file != "" {
		return os.ReadFile(file)
	}
	content, _ := flags.GetString("content")
	return []byte(content), nil
}

func formatFromFlags(flags *pflag.FlagSet) (pubcontrol.Format, error) {
	content, err := contentFromFlags(flags)
	if err != nil {
		return nil, err
	}
	name, _ := flags.GetString("format")
	switch name {
	case "ws-message":
		return formats.NewWebSocketMessage(string(content)), nil
	case "http-stream":
		if closeStream, _ := flags.GetBool("close"); closeStream {
			return formats.NewHTTPStreamClose(), nil
		}
		return formats.NewHTTPStream(content)
	case "http-response":
		response := formats.NewHTTPResponse(content)
		response.Code, _ = flags.GetInt("code")
		return response, nil
	}
	return nil, fmt.Errorf("unknown format %q", name)
}

func optionsFromFlags(flags *pflag.FlagSet) gripcontrol.PublishOptions {
	opts := gripcontrol.PublishOptions{}
	opts.ID, _ = flags.GetString("id")
	opts.PrevID, _ = flags.GetString("prev-id")
	if autoID, _ := flags.GetBool("auto-id"); autoID && opts.ID == "" {
		opts.ID = sluglib.Nice()
	}
	return opts
}

func runPublish(ctx context.Context, cfg *config.Config, args []string, out io.Writer, flags *pflag.FlagSet) error {
	if uris, _ := flags.GetStringArray("uri"); len(uris) > 0 {
		cfg.Proxies = uris
	}
	if len(cfg.Proxies) == 0 {
		return fmt.Errorf("no proxies configured: set proxies in %s, GRIP_URL, or use --uri", config.File())
	}
	gripConfigs, err := cfg.GripConfigs()
	if err != nil {
		return err
	}
	format, err := formatFromFlags(flags)
	if err != nil {
		return err
	}
	opts := optionsFromFlags(flags)

	gpc := gripcontrol.NewGripPubControl()
	gpc.Logger = log
	gpc.ApplyGripConfig(gripConfigs...)
	settings := backoff.NewExponentialBackOff()
	settings.MaxElapsedTime = cfg.MaxElapsedTime
	for _, client := range gpc.Clients() {
		client.HTTPBackoffClient = &httpbackoff.Client{BackOffSettings: settings}
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := gpc.Publish(ctx, args, format, opts); err != nil {
		return err
	}
	log.WithField("proxies", len(gripConfigs)).Debug("published")
	if opts.ID != "" {
		_, err = fmt.Fprintf(out, "Published %s to %d proxies\n", opts.ID, len(gripConfigs))
	} else {
		_, err = fmt.Fprintf(out, "Published to %d proxies\n", len(gripConfigs))
	}
	return err
}
