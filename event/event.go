// Package event parses a single tracing event from the fields the facade
// delivered, implementing the dispatch rules of the distilled spec's §4.C.
package event

import (
	"fmt"
	"time"

	"github.com/QnnOkabayashi/tracing-tests/facade"
	"github.com/QnnOkabayashi/tracing-tests/tagset"
)

// KV is one rendered (key, value) pair preserved in record order.
type KV struct {
	Key   string
	Value string
}

// Event is an immutable record created at the moment the facade reports an
// event.
type Event struct {
	Timestamp time.Time
	Level     facade.Level
	Message   string
	Tag       tagset.TagSet // nil if absent
	Values    []KV
}

// Parse visits every field exactly once, preserving order, and returns the
// parsed Event plus whether the alarm side-channel was set. A present but
// undecodable event_tag is a programmer contract violation and panics,
// matching §7's "fatal, panic" classification for decode failures.
func Parse(level facade.Level, fields facade.Fields, tags tagset.Decoder) (ev Event, alarm bool) {
	ev.Timestamp = time.Now().UTC()
	ev.Level = level
	ev.Values = make([]KV, 0, len(fields))

	for _, f := range fields {
		switch f.Name {
		case "message":
			ev.Message = stringify(f.Value)
		case "event_tag":
			id, ok := asUint64(f.Value)
			if !ok {
				panic(fmt.Sprintf("tracing: event_tag field carried non-integer value %v (%T)", f.Value, f.Value))
			}
			tag, ok := tags.Decode(id)
			if !ok {
				panic(fmt.Sprintf("tracing: event_tag %d did not decode to a known tag; this is a bug in the tag decoder or the caller", id))
			}
			ev.Tag = tag
		case "alarm":
			b, ok := f.Value.(bool)
			alarm = ok && b
		default:
			ev.Values = append(ev.Values, KV{Key: f.Name, Value: stringify(f.Value)})
		}
	}

	return ev, alarm
}

// Stringify renders any field value the way every non-special-cased field
// is rendered: strings pass through, error/fmt.Stringer use their own
// rendering, everything else falls back to fmt's default verb. Exported so
// other packages extracting ad hoc fields (e.g. a span's uuid or output
// attribute) stringify consistently with event values.
func Stringify(v any) string {
	return stringify(v)
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	case error:
		return x.Error()
	default:
		return fmt.Sprintf("%v", x)
	}
}

func asUint64(v any) (uint64, bool) {
	switch x := v.(type) {
	case uint64:
		return x, true
	case uint:
		return uint64(x), true
	case uint32:
		return uint64(x), true
	case int:
		if x < 0 {
			return 0, false
		}
		return uint64(x), true
	case int64:
		if x < 0 {
			return 0, false
		}
		return uint64(x), true
	default:
		return 0, false
	}
}
