package main

import (
	"encoding/base64"
	"log/syslog"
	"net/http"
	"os"
	"strings"

	docopt "github.com/docopt/docopt-go"
	mozlog "github.com/mozilla-services/go-mozlogrus"
	log "github.com/sirupsen/logrus"
	lSyslog "github.com/sirupsen/logrus/hooks/syslog"

	"github.com/fanout/go-gripcontrol"
	"github.com/fanout/go-gripcontrol/origin"
)

const usage = `GRIP Origin Server

Usage: grip-origin [-h | --help]

Environment:
 PORT (optional; defaults to 7999)    port on which this service is available
 GRIP_KEY (optional)                  key Grip-Sig tokens must be signed with,
                                      optionally prefixed with "base64:"
 GRIP_URL (optional)                  GRIP URI of the proxy to publish to
 SYSLOG_ADDR                          address to which to send syslog output
 ENV                                  "production" for mozlog output

Options:
-h --help       Show help`

func main() {
	_, _ = docopt.Parse(usage, nil, true, "grip-origin", false)

	logger := log.New()

	if env := os.Getenv("ENV"); env == "production" {
		// add mozlog formatter
		logger.Formatter = &mozlog.MozLogFormatter{
			LoggerName: "grip-origin",
		}

		// add syslog hook if addr is provided
		syslogAddr := os.Getenv("SYSLOG_ADDR")
		if syslogAddr != "" {
			hook, err := lSyslog.NewSyslogHook("udp", syslogAddr, syslog.LOG_DEBUG, "grip-origin")
			if err != nil {
				panic(err)
			}
			logger.Hooks.Add(hook)
		}
	}

	var key []byte
	if gripKey := os.Getenv("GRIP_KEY"); strings.HasPrefix(gripKey, "base64:") {
		var err error
		key, err = base64.StdEncoding.DecodeString(strings.TrimPrefix(gripKey, "base64:"))
		if err != nil {
			panic(err)
		}
	} else if gripKey != "" {
		key = []byte(gripKey)
	}

	var publisher *gripcontrol.GripPubControl
	if gripURL := os.Getenv("GRIP_URL"); gripURL != "" {
		config, err := gripcontrol.ParseGripURI(gripURL)
		if err != nil {
			panic(err)
		}
		publisher = gripcontrol.NewGripPubControl()
		publisher.Logger = logger
		publisher.ApplyGripConfig(config)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "7999"
	}

	server := &http.Server{
		Addr: ":" + port,
		Handler: origin.New(origin.Config{
			Logger:    logger,
			Key:       key,
			Publisher: publisher,
		}),
	}
	defer func() {
		_ = server.Close()
	}()
	logger.WithFields(log.Fields{
		"server-addr": server.Addr,
		"signed":      key != nil,
		"publishing":  publisher != nil,
	}).Info("starting server")

	if err := server.ListenAndServe(); err != nil {
		panic(err)
	}
}
