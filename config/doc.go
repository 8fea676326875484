// Package config loads and saves gripctl configuration.
//
// Configuration lives in $XDG_CONFIG_HOME/gripctl.yml (or
// ~/.config/gripctl.yml) and may be overridden from the environment:
// GRIP_URL adds a proxy and GRIP_TIMEOUT sets the publish timeout.
package config
