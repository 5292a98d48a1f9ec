// Package facade is the generic tracing facade the ingestion layer plugs
// into. It is deliberately thin: an id allocator, a parent/child stack
// threaded through context.Context, and a Subscriber callback contract. The
// core never assumes more about the facade than this package provides —
// swapping Registry for a different facade only requires satisfying
// Subscriber from the new driver.
package facade

import "fmt"

// Level mirrors the five levels the distilled spec requires on every event.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// Field is one (name, value) pair recorded by a producer, in the order the
// facade delivered it. Value retains its original type so the ingestion
// layer can special-case event_tag (uint64-like) and alarm (bool) before
// stringifying everything else.
type Field struct {
	Name  string
	Value any
}

// Fields preserves producer record order; it is never reordered by the core.
type Fields []Field

// Get returns the first field with the given name, if any.
func (fs Fields) Get(name string) (any, bool) {
	for _, f := range fs {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// SpanID identifies a span for the lifetime of the process. The zero value
// is never allocated by Registry and is used as the "no span" sentinel.
type SpanID uint64

// Subscriber is the Go-idiomatic name for the distilled spec's "Layer": the
// five callbacks a tracing core registers with the facade. The facade
// guarantees callbacks for a single span id are serialized: NewSpan happens
// before any OnEnter/OnExit/OnClose for that id, and OnClose is the last
// callback for that id.
type Subscriber interface {
	// NewSpan reports that a span was opened. hasParent distinguishes a
	// genuine root span (hasParent == false) from a nested span whose
	// parent id happens to need representing as zero.
	NewSpan(id SpanID, parent SpanID, hasParent bool, name string, fields Fields)

	// OnEnter reports that the span became busy.
	OnEnter(id SpanID)

	// OnExit reports that the span became idle.
	OnExit(id SpanID)

	// OnClose reports that the span will never be entered again.
	OnClose(id SpanID, parent SpanID, hasParent bool)

	// OnEvent reports a single event fired while current (if hasCurrent)
	// was the innermost open span.
	OnEvent(level Level, current SpanID, hasCurrent bool, fields Fields)
}
