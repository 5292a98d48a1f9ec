// Package spanbuf holds a span's accumulating children until it closes, and
// defines the Tree tagged union the ingestion layer builds and the tree
// processor consumes.
package spanbuf

import (
	"time"

	"github.com/QnnOkabayashi/tracing-tests/event"
)

// SinkKind selects a completed root tree's destination.
type SinkKind int

const (
	// SinkStderr is the default: standard error.
	SinkStderr SinkKind = iota
	SinkStdout
	// SinkFile appends to Sink.Path.
	SinkFile
	// SinkParent means "write to wherever my parent writes" — the default
	// for any non-root span; only a root span's Sink is ever consulted by
	// the emitter.
	SinkParent
)

// Sink is a span's resolved output destination.
type Sink struct {
	Kind SinkKind
	Path string
}

// ParseOutput interprets a root span's "output" field per §3: "stdout" and
// "stderr" are special-cased, anything else is a file path.
func ParseOutput(value string) Sink {
	switch value {
	case "stdout":
		return Sink{Kind: SinkStdout}
	case "stderr":
		return Sink{Kind: SinkStderr}
	default:
		return Sink{Kind: SinkFile, Path: value}
	}
}

// Tree is either an Event or a (SpanBuffer, total-duration) pair. Two
// variants are enough; implemented as a small closed interface rather than
// an inheritance hierarchy.
type Tree interface {
	isTree()
}

// EventNode is a leaf: a single event attached to its enclosing span.
type EventNode struct {
	Event event.Event
}

func (EventNode) isTree() {}

// SpanNode is a finished child span plus the total busy duration its Timer
// measured.
type SpanNode struct {
	Buffer   *SpanBuffer
	Duration time.Duration
}

func (SpanNode) isTree() {}

// SpanBuffer accumulates a span's children and identity while the span is
// open. It is finalized (and must never be mutated again) at Close.
type SpanBuffer struct {
	Timestamp time.Time
	Name      string

	uuid    string
	hasUUID bool
	out     Sink

	children []Tree
}

// New constructs a SpanBuffer opened at the current instant.
func New(name string, uuid string, hasUUID bool, out Sink) *SpanBuffer {
	return &SpanBuffer{
		Timestamp: time.Now().UTC(),
		Name:      name,
		uuid:      uuid,
		hasUUID:   hasUUID,
		out:       out,
	}
}

// Log appends a child node in arrival order.
func (b *SpanBuffer) Log(node Tree) {
	b.children = append(b.children, node)
}

// Close consumes the buffer into a Tree, pairing it with the span's total
// busy duration as measured by its Timer.
func (b *SpanBuffer) Close(total time.Duration) Tree {
	return SpanNode{Buffer: b, Duration: total}
}

// UUID returns the span's explicit or inherited identity, if it has one.
func (b *SpanBuffer) UUID() (string, bool) {
	return b.uuid, b.hasUUID
}

// Out returns the span's sink selector.
func (b *SpanBuffer) Out() Sink {
	return b.out
}

// Children returns the span's accumulated children in append order. The
// returned slice must not be mutated by the caller.
func (b *SpanBuffer) Children() []Tree {
	return b.children
}
