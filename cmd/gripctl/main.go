// gripctl is a command-line tool for working with GRIP proxies.
package main

import (
	"os"

	"github.com/fanout/go-gripcontrol/cmds/root"
)

func main() {
	if err := root.Command.Execute(); err != nil {
		os.Exit(1)
	}
}
