// Package process turns a buffered Tree into a ProcessedTree by resolving
// per-span total and nested durations in a single post-order pass.
package process

import (
	"time"

	"github.com/QnnOkabayashi/tracing-tests/event"
	"github.com/QnnOkabayashi/tracing-tests/spanbuf"
)

// ProcessedTree is either a ProcessedEvent or a ProcessedSpan.
type ProcessedTree interface {
	isProcessed()
}

// ProcessedEvent is a leaf event, unchanged by processing.
type ProcessedEvent struct {
	Event event.Event
}

func (ProcessedEvent) isProcessed() {}

// ProcessedSpan carries the resolved durations alongside the span's
// identity. DirectLoad/TotalLoad are deliberately not stored here — the
// formatter computes them against the root's TotalDuration, per §4.F.
type ProcessedSpan struct {
	Timestamp time.Time
	Name      string
	Out       spanbuf.Sink

	uuid    string
	hasUUID bool

	TotalDuration  time.Duration
	NestedDuration time.Duration
	Children       []ProcessedTree
}

func (ProcessedSpan) isProcessed() {}

// UUID returns the span's own or inherited identity.
func (p ProcessedSpan) UUID() (string, bool) {
	return p.uuid, p.hasUUID
}

// Process recursively resolves durations from root to leaves, preserving
// child order.
func Process(node spanbuf.Tree) ProcessedTree {
	switch n := node.(type) {
	case spanbuf.EventNode:
		return ProcessedEvent{Event: n.Event}

	case spanbuf.SpanNode:
		rawChildren := n.Buffer.Children()
		children := make([]ProcessedTree, 0, len(rawChildren))
		var nested time.Duration

		for _, child := range rawChildren {
			processed := Process(child)
			children = append(children, processed)
			if span, ok := processed.(ProcessedSpan); ok {
				nested += span.TotalDuration
			}
		}

		uuid, hasUUID := n.Buffer.UUID()
		return ProcessedSpan{
			Timestamp:      n.Buffer.Timestamp,
			Name:           n.Buffer.Name,
			Out:            n.Buffer.Out(),
			uuid:           uuid,
			hasUUID:        hasUUID,
			TotalDuration:  n.Duration,
			NestedDuration: nested,
			Children:       children,
		}

	default:
		panic("process: unrecognized Tree implementation, this is a bug")
	}
}
