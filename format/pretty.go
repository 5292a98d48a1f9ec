package format

import (
	"fmt"
	"io"
	"time"

	"github.com/QnnOkabayashi/tracing-tests/event"
	"github.com/QnnOkabayashi/tracing-tests/facade"
	"github.com/QnnOkabayashi/tracing-tests/process"
)

const zeroUUID = "00000000-0000-0000-0000-000000000000"

// fill is one of the four box-drawing indent cells.
type fill int

const (
	fillVoid fill = iota
	fillLine
	fillFork
	fillTurn
)

func (f fill) String() string {
	switch f {
	case fillVoid:
		return "   "
	case fillLine:
		return "│  "
	case fillFork:
		return "┝━ "
	case fillTurn:
		return "┕━ "
	default:
		return "   "
	}
}

// Pretty renders a processed tree as box-drawing, emoji-annotated text.
// Color is strictly additive: off by default, it wraps only the level
// column in ANSI escapes and never changes a glyph or byte of the
// underlying layout.
type Pretty struct {
	Color bool
}

// Render writes tree to w.
func (p Pretty) Render(w io.Writer, tree process.ProcessedTree) error {
	indent := make([]fill, 0, 8)
	return p.rec(w, tree, &indent, "", false, 0, false)
}

func (p Pretty) rec(w io.Writer, tree process.ProcessedTree, indent *[]fill, uuid string, hasUUID bool, rootDuration float64, hasRoot bool) error {
	switch t := tree.(type) {
	case process.ProcessedEvent:
		id := uuid
		if !hasUUID {
			id = zeroUUID
		}
		return p.renderEvent(w, t, *indent, id)

	case process.ProcessedSpan:
		spanUUID, spanHasUUID := t.UUID()
		id := uuid
		switch {
		case spanHasUUID:
			id = spanUUID
		case !hasUUID:
			panic("format: span has no associated uuid, this is a bug")
		}

		total := float64(t.TotalDuration.Nanoseconds())
		root := total
		if hasRoot {
			root = rootDuration
		}

		if err := p.renderSpanHeader(w, t, *indent, id, total, root); err != nil {
			return err
		}

		if len(t.Children) == 0 {
			return nil
		}

		if n := len(*indent); n > 0 {
			switch (*indent)[n-1] {
			case fillTurn:
				(*indent)[n-1] = fillVoid
			case fillFork:
				(*indent)[n-1] = fillLine
			}
		}
		*indent = append(*indent, fillFork)
		defer func() { *indent = (*indent)[:len(*indent)-1] }()

		for i, child := range t.Children {
			if i == len(t.Children)-1 {
				(*indent)[len(*indent)-1] = fillTurn
			} else {
				(*indent)[len(*indent)-1] = fillFork
			}
			if err := p.rec(w, child, indent, id, true, root, true); err != nil {
				return err
			}
		}
		return nil

	default:
		panic("format: unrecognized ProcessedTree implementation, this is a bug")
	}
}

func (p Pretty) renderEvent(w io.Writer, pe process.ProcessedEvent, indent []fill, uuid string) error {
	ev := pe.Event
	emoji, tag := eventGlyphs(ev)

	level := p.levelColumn(ev.Level)
	if _, err := fmt.Fprintf(w, "%s %s %s ", uuid, ev.Timestamp.Format(time.RFC3339), level); err != nil {
		return err
	}
	for _, f := range indent {
		if _, err := io.WriteString(w, f.String()); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "%s [%s]: %s", emoji, tag, ev.Message); err != nil {
		return err
	}
	for _, kv := range ev.Values {
		if _, err := fmt.Fprintf(w, " | %s: %s", kv.Key, kv.Value); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func (p Pretty) renderSpanHeader(w io.Writer, span process.ProcessedSpan, indent []fill, uuid string, total, root float64) error {
	level := p.levelColumn(facade.LevelTrace)
	if _, err := fmt.Fprintf(w, "%s %s %s ", uuid, span.Timestamp.Format(time.RFC3339), level); err != nil {
		return err
	}
	for _, f := range indent {
		if _, err := io.WriteString(w, f.String()); err != nil {
			return err
		}
	}

	nested := float64(span.NestedDuration.Nanoseconds())
	totalLoad := 100.0 * total / root

	if _, err := fmt.Fprintf(w, "%s [ %s | ", span.Name, prettyDuration(total)); err != nil {
		return err
	}
	if nested > 0 {
		directLoad := 100.0 * (total - nested) / root
		if _, err := fmt.Fprintf(w, "%.3f%% / ", directLoad); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%.3f%% ]\n", totalLoad)
	return err
}

// levelColumn left-justifies level to 8 columns, matching fmt::Display's
// {:<8} for the level names, and optionally wraps it in color
// after padding so escape codes never affect column width.
func (p Pretty) levelColumn(l facade.Level) string {
	padded := fmt.Sprintf("%-8s", l.String())
	if !p.Color {
		return padded
	}
	return ansiColor(l) + padded + ansiReset
}

const ansiReset = "\x1b[0m"

func ansiColor(l facade.Level) string {
	switch l {
	case facade.LevelError:
		return "\x1b[31m"
	case facade.LevelWarn:
		return "\x1b[33m"
	case facade.LevelInfo:
		return "\x1b[32m"
	case facade.LevelDebug:
		return "\x1b[36m"
	case facade.LevelTrace:
		return "\x1b[90m"
	default:
		return ""
	}
}

// eventGlyphs resolves the emoji/tag pair: the event's own tag if present,
// otherwise a level-derived fallback of the form "_.<level>".
func eventGlyphs(ev event.Event) (emoji string, tag string) {
	if ev.Tag != nil {
		return ev.Tag.Emoji(), ev.Tag.Pretty()
	}
	switch ev.Level {
	case facade.LevelError:
		return "🚨", "_.error"
	case facade.LevelWarn:
		return "🚧", "_.warn"
	case facade.LevelInfo:
		return "💬", "_.info"
	case facade.LevelDebug:
		return "🐛", "_.debug"
	case facade.LevelTrace:
		return "📍", "_.trace"
	default:
		return "💬", "_.info"
	}
}
