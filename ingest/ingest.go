// Package ingest is the crux of the tracing core: a facade.Subscriber that
// turns the five lifecycle callbacks into a tree of SpanBuffers, timed by
// per-span Timers, and hands completed roots to an emit.Emitter.
package ingest

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	googleuuid "github.com/google/uuid"

	"github.com/QnnOkabayashi/tracing-tests/emit"
	"github.com/QnnOkabayashi/tracing-tests/event"
	"github.com/QnnOkabayashi/tracing-tests/facade"
	"github.com/QnnOkabayashi/tracing-tests/format"
	"github.com/QnnOkabayashi/tracing-tests/process"
	"github.com/QnnOkabayashi/tracing-tests/spanbuf"
	"github.com/QnnOkabayashi/tracing-tests/tagset"
	"github.com/QnnOkabayashi/tracing-tests/timer"
)

const zeroUUID = "00000000-0000-0000-0000-000000000000"

type spanState struct {
	buffer *spanbuf.SpanBuffer
	timer  *timer.Timer
	name   string

	parent    facade.SpanID
	hasParent bool
}

// Layer implements facade.Subscriber. It owns per-span extension state
// directly (a map guarded by a mutex) rather than relying on the facade to
// supply typed per-span storage, since facade.Registry doesn't.
type Layer struct {
	tags        tagset.Decoder
	emitter     *emit.Emitter
	kind        format.Kind
	alarmWriter io.Writer

	mu    sync.Mutex
	spans map[facade.SpanID]*spanState
}

var _ facade.Subscriber = (*Layer)(nil)

// Option configures a Layer at construction.
type Option func(*Layer)

// WithAlarmWriter overrides the alarm path's destination, for tests. It
// defaults to standard error.
func WithAlarmWriter(w io.Writer) Option { return func(l *Layer) { l.alarmWriter = w } }

// New constructs a Layer that decodes event tags with tags and hands
// completed trees to emitter, formatted as kind.
func New(tags tagset.Decoder, emitter *emit.Emitter, kind format.Kind, opts ...Option) *Layer {
	l := &Layer{
		tags:        tags,
		emitter:     emitter,
		kind:        kind,
		alarmWriter: os.Stderr,
		spans:       make(map[facade.SpanID]*spanState),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewSpan implements facade.Subscriber. It extracts the optional uuid and
// (root-only) output fields, resolves this span's effective uuid by
// explicit value, parent inheritance, or fresh v4 synthesis for a root,
// and attaches a fresh SpanBuffer and Timer.
func (l *Layer) NewSpan(id facade.SpanID, parent facade.SpanID, hasParent bool, name string, fields facade.Fields) {
	uuid, hasUUID := "", false
	if v, ok := fields.Get("uuid"); ok {
		uuid, hasUUID = event.Stringify(v), true
	}

	out := spanbuf.Sink{Kind: spanbuf.SinkParent}
	if !hasParent {
		out = spanbuf.Sink{Kind: spanbuf.SinkStderr}
		if v, ok := fields.Get("output"); ok {
			out = spanbuf.ParseOutput(event.Stringify(v))
		}
	}

	switch {
	case hasUUID:
		// explicit value wins
	case hasParent:
		if parentState := l.mustGet(parent); parentState != nil {
			if parentUUID, parentHasUUID := parentState.buffer.UUID(); parentHasUUID {
				uuid, hasUUID = parentUUID, true
			}
		}
	default:
		uuid, hasUUID = googleuuid.New().String(), true
	}

	buf := spanbuf.New(name, uuid, hasUUID, out)

	l.mu.Lock()
	l.spans[id] = &spanState{
		buffer:    buf,
		timer:     timer.New(),
		name:      name,
		parent:    parent,
		hasParent: hasParent,
	}
	l.mu.Unlock()
}

// OnEnter implements facade.Subscriber.
func (l *Layer) OnEnter(id facade.SpanID) {
	l.mustGet(id).timer.Unpause()
}

// OnExit implements facade.Subscriber.
func (l *Layer) OnExit(id facade.SpanID) {
	l.mustGet(id).timer.Pause()
}

// OnClose implements facade.Subscriber. It removes the span's extension
// state, wraps it into a Tree, and either appends it to the parent's
// buffer or dispatches it to the emitter as a completed root.
func (l *Layer) OnClose(id facade.SpanID, parent facade.SpanID, hasParent bool) {
	l.mu.Lock()
	st, ok := l.spans[id]
	delete(l.spans, id)
	l.mu.Unlock()
	if !ok {
		panic(fmt.Sprintf("ingest: missing per-span state for id %d, this is a bug", id))
	}

	tree := st.buffer.Close(st.timer.Duration())

	if hasParent {
		l.mustGet(parent).buffer.Log(tree)
		return
	}

	l.emitter.Send(process.Process(tree), l.kind, st.buffer.Out())
}

// OnEvent implements facade.Subscriber. An alarm field fires the
// synchronous standard-error path first, regardless of outcome below;
// then the event is buffered into its enclosing span, or dispatched alone
// if there is none.
func (l *Layer) OnEvent(level facade.Level, current facade.SpanID, hasCurrent bool, fields facade.Fields) {
	ev, alarm := event.Parse(level, fields, l.tags)
	if alarm {
		_, _ = io.WriteString(l.alarmWriter, l.alarmLine(ev, current, hasCurrent))
	}

	if hasCurrent {
		l.mustGet(current).buffer.Log(spanbuf.EventNode{Event: ev})
		return
	}

	l.emitter.Send(process.Process(spanbuf.EventNode{Event: ev}), l.kind, spanbuf.Sink{Kind: spanbuf.SinkStderr})
}

func (l *Layer) mustGet(id facade.SpanID) *spanState {
	l.mu.Lock()
	st, ok := l.spans[id]
	l.mu.Unlock()
	if !ok {
		panic(fmt.Sprintf("ingest: missing per-span state for id %d, this is a bug", id))
	}
	return st
}

// alarmLine renders the synchronous alarm notification: "[ALARM]", the
// event's resolved uuid, timestamp, level, its root-to-leaf span scope
// (if any), message, and key/value pairs.
func (l *Layer) alarmLine(ev event.Event, current facade.SpanID, hasCurrent bool) string {
	uuid := zeroUUID
	var chain []string

	if hasCurrent {
		l.mu.Lock()
		id, has := current, true
		resolved := false
		for has {
			st, ok := l.spans[id]
			if !ok {
				break
			}
			chain = append(chain, st.name)
			if u, hu := st.buffer.UUID(); hu && !resolved {
				uuid, resolved = u, true
			}
			id, has = st.parent, st.hasParent
		}
		l.mu.Unlock()

		for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
			chain[i], chain[j] = chain[j], chain[i]
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[ALARM] %s %s %-8s ", uuid, ev.Timestamp.Format(time.RFC3339), ev.Level.String())
	if len(chain) > 0 {
		fmt.Fprintf(&b, "%s: ", strings.Join(chain, "/"))
	}
	b.WriteString(ev.Message)
	for _, kv := range ev.Values {
		fmt.Fprintf(&b, " | %s: %s", kv.Key, kv.Value)
	}
	b.WriteByte('\n')
	return b.String()
}
