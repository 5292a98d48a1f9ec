// Package format implements the two wire formats a completed, processed
// tree can be rendered to: a human-oriented box-drawing layout and
// line-delimited JSON.
package format

import (
	"io"
	"strings"

	"github.com/QnnOkabayashi/tracing-tests/process"
)

// Kind selects which formatter an Emitter writes through.
type Kind int

const (
	KindPretty Kind = iota
	KindJSON
)

// ParseKind interprets a TRACE_LOG_FORMAT value; anything other than
// "json" (case-insensitive) selects pretty, the default.
func ParseKind(value string) Kind {
	if strings.EqualFold(value, "json") {
		return KindJSON
	}
	return KindPretty
}

// Render writes tree through the formatter kind selects. color is only
// honored for KindPretty, and only has any effect if the caller has
// confirmed the destination is a terminal.
func Render(w io.Writer, kind Kind, tree process.ProcessedTree, color bool) error {
	if kind == KindJSON {
		return JSON{}.Render(w, tree)
	}
	return Pretty{Color: color}.Render(w, tree)
}
