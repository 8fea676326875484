package events

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/fanout/go-gripcontrol/wsevent"
)

type jsonEvent struct {
	Type       string  `json:"type"`
	Content    *string `json:"content,omitempty"`
	ContentBin *string `json:"content-bin,omitempty"`
}

func runDecode(args []string, in io.Reader, out io.Writer, flags *pflag.FlagSet) error {
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	events, err := wsevent.Decode(data)
	if err != nil {
		return err
	}
	log.Debugf("decoded %d events from %d bytes", len(events), len(data))

	if asJSON, _ := flags.GetBool("json"); asJSON {
		return writeJSON(events, out)
	}
	for _, event := range events {
		fmt.Fprintln(out, describe(event))
	}
	return nil
}

// describe renders an event on one line, e.g. `TEXT 5 bytes: "hello"`.
func describe(event wsevent.Event) string {
	if !event.HasPayload() {
		return event.Type()
	}
	line := fmt.Sprintf("%s %d bytes", event.Type(), event.Len())
	if code, ok := event.CloseCode(); ok {
		return line + ": code " + strconv.Itoa(code)
	}
	if s, ok := event.Text(); ok {
		return line + ": " + strconv.Quote(s)
	}
	payload, _ := event.Payload()
	return line + ": base64:" + base64.StdEncoding.EncodeToString(payload)
}

func writeJSON(events []wsevent.Event, out io.Writer) error {
	docs := make([]jsonEvent, 0, len(events))
	for _, event := range events {
		doc := jsonEvent{Type: event.Type()}
		if payload, ok := event.Payload(); ok {
			if s, isText := event.Text(); isText {
				doc.Content = &s
			} else {
				bin := base64.StdEncoding.EncodeToString(payload)
				doc.ContentBin = &bin
			}
		}
		docs = append(docs, doc)
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(docs)
}
