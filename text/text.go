// Package text checks whether raw bytes form valid UTF-8 text and holds the
// small formatting helpers gripctl uses for its reports.
package text

import (
	"strings"
)

// Indent prefixes each line of s with prefix. A final newline ends the last
// line and does not open a new, indented one.
func Indent(s, prefix string) string {
	if s == "" {
		return s
	}
	body, nl := strings.CutSuffix(s, "\n")
	out := prefix + strings.ReplaceAll(body, "\n", "\n"+prefix)
	if nl {
		out += "\n"
	}
	return out
}

// Underline returns heading on its own line followed by a row of "=" as wide
// as the heading, in characters.
func Underline(heading string) string {
	width, ok := CharLength([]byte(heading))
	if !ok {
		width = len(heading)
	}
	return heading + "\n" + strings.Repeat("=", width) + "\n"
}

// StarOut masks a secret, keeping only its length.
func StarOut(secret string) string {
	return strings.Repeat("*", len(secret))
}
