package events

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/fanout/go-gripcontrol/wsevent"
)

// parseEvent turns TYPE or TYPE:payload into an event.
func parseEvent(arg string, isBase64 bool) (wsevent.Event, error) {
	typ, payload, hasPayload := strings.Cut(arg, ":")
	if err := wsevent.ValidateType(typ); err != nil {
		return wsevent.Event{}, fmt.Errorf("invalid event type in %q: %w", arg, err)
	}
	if !hasPayload {
		return wsevent.NewEvent(typ), nil
	}
	if !isBase64 {
		return wsevent.NewTextEvent(typ, payload), nil
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return wsevent.Event{}, fmt.Errorf("invalid base64 payload in %q: %v", arg, err)
	}
	return wsevent.NewPayloadEvent(typ, data), nil
}

func runEncode(args []string, out io.Writer, flags *pflag.FlagSet) error {
	isBase64, _ := flags.GetBool("base64")
	events := make([]wsevent.Event, 0, len(args))
	for _, arg := range args {
		event, err := parseEvent(arg, isBase64)
		if err != nil {
			return err
		}
		events = append(events, event)
	}
	log.Debugf("encoding %d events", len(events))
	_, err := out.Write(wsevent.Encode(events))
	return err
}
