package main

// List all subpackages which implement `gripctl` commands here, in
// alphabetical order.

import _ "github.com/fanout/go-gripcontrol/cmds/completions"
import _ "github.com/fanout/go-gripcontrol/cmds/events"
import _ "github.com/fanout/go-gripcontrol/cmds/inspect"
import _ "github.com/fanout/go-gripcontrol/cmds/instruct"
import _ "github.com/fanout/go-gripcontrol/cmds/publish"
import _ "github.com/fanout/go-gripcontrol/cmds/version"
