package format

import (
	"encoding/json"
	"io"
	"time"

	"github.com/QnnOkabayashi/tracing-tests/process"
)

// JSON renders a processed tree as line-delimited JSON: one object per
// line, a span before its children, each event object carrying the
// root-first chain of enclosing span names in "spans".
type JSON struct{}

type jsonEvent struct {
	UUID      string   `json:"uuid"`
	Timestamp string   `json:"timestamp"`
	Level     string   `json:"level"`
	Message   string   `json:"message"`
	LogType   string   `json:"log-type"`
	Tag       *string  `json:"tag"`
	Spans     []string `json:"spans"`
}

type jsonSpan struct {
	UUID        string `json:"uuid"`
	Timestamp   string `json:"timestamp"`
	Level       string `json:"level"`
	Message     string `json:"message"`
	LogType     string `json:"log-type"`
	NanosNested int64  `json:"nanos-nested"`
	NanosTotal  int64  `json:"nanos-total"`
}

// Render writes tree to w.
func (j JSON) Render(w io.Writer, tree process.ProcessedTree) error {
	enc := json.NewEncoder(w)
	return j.rec(enc, tree, nil, "", false)
}

func (j JSON) rec(enc *json.Encoder, tree process.ProcessedTree, spans []string, uuid string, hasUUID bool) error {
	switch t := tree.(type) {
	case process.ProcessedEvent:
		id := uuid
		if !hasUUID {
			id = zeroUUID
		}
		ev := t.Event

		var tag *string
		if ev.Tag != nil {
			s := ev.Tag.Pretty()
			tag = &s
		}

		ancestors := make([]string, len(spans))
		copy(ancestors, spans)

		return enc.Encode(jsonEvent{
			UUID:      id,
			Timestamp: ev.Timestamp.Format(time.RFC3339),
			Level:     ev.Level.String(),
			Message:   ev.Message,
			LogType:   "event",
			Tag:       tag,
			Spans:     ancestors,
		})

	case process.ProcessedSpan:
		spanUUID, spanHasUUID := t.UUID()
		id := uuid
		switch {
		case spanHasUUID:
			id = spanUUID
		case !hasUUID:
			panic("format: span has no associated uuid, this is a bug")
		}

		if err := enc.Encode(jsonSpan{
			UUID:        id,
			Timestamp:   t.Timestamp.Format(time.RFC3339),
			Level:       "TRACE",
			Message:     t.Name,
			LogType:     "span",
			NanosNested: t.NestedDuration.Nanoseconds(),
			NanosTotal:  t.TotalDuration.Nanoseconds(),
		}); err != nil {
			return err
		}

		childSpans := append(append([]string{}, spans...), t.Name)
		for _, child := range t.Children {
			if err := j.rec(enc, child, childSpans, id, true); err != nil {
				return err
			}
		}
		return nil

	default:
		panic("format: unrecognized ProcessedTree implementation, this is a bug")
	}
}
