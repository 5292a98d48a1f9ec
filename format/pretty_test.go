package format_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/QnnOkabayashi/tracing-tests/event"
	"github.com/QnnOkabayashi/tracing-tests/facade"
	"github.com/QnnOkabayashi/tracing-tests/format"
	"github.com/QnnOkabayashi/tracing-tests/process"
	"github.com/QnnOkabayashi/tracing-tests/sectags"
	"github.com/QnnOkabayashi/tracing-tests/spanbuf"
)

func TestPrettyRootEventHasZeroUUID(t *testing.T) {
	tree := process.Process(spanbuf.EventNode{Event: event.Event{
		Level:   facade.LevelInfo,
		Message: "hello",
	}})

	var buf bytes.Buffer
	if err := (format.Pretty{}).Render(&buf, tree); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "00000000-0000-0000-0000-000000000000 ") {
		t.Fatalf("expected zero uuid prefix, got %q", out)
	}
	if !strings.Contains(out, "[_.info]: hello") {
		t.Fatalf("expected untagged info fallback, got %q", out)
	}
}

func TestPrettyTwoEventsGetForkAndTurn(t *testing.T) {
	root := spanbuf.New("root", "abc-uuid", true, spanbuf.Sink{Kind: spanbuf.SinkStderr})
	root.Log(spanbuf.EventNode{Event: event.Event{Level: facade.LevelInfo, Message: "a"}})
	root.Log(spanbuf.EventNode{Event: event.Event{
		Level:   facade.LevelError,
		Message: "b",
		Tag:     sectags.SecurityCritical,
	}})
	tree := process.Process(root.Close(2 * time.Millisecond))

	var buf bytes.Buffer
	if err := (format.Pretty{}).Render(&buf, tree); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], "┝━ ") {
		t.Fatalf("expected non-last child to fork, got %q", lines[1])
	}
	if !strings.Contains(lines[2], "┕━ ") {
		t.Fatalf("expected last child to turn, got %q", lines[2])
	}
	if !strings.Contains(lines[2], "[security.critical]: b") {
		t.Fatalf("expected tagged event rendering, got %q", lines[2])
	}
	if !strings.Contains(lines[0], "abc-uuid") || !strings.Contains(lines[2], "abc-uuid") {
		t.Fatalf("expected uuid to be inherited by children, got %q", buf.String())
	}
}

func TestPrettyNestedSpanConvertsParentCell(t *testing.T) {
	inner := spanbuf.New("inner", "", false, spanbuf.Sink{Kind: spanbuf.SinkParent})
	inner.Log(spanbuf.EventNode{Event: event.Event{Level: facade.LevelInfo, Message: "deep"}})
	innerTree := inner.Close(1 * time.Millisecond)

	outer := spanbuf.New("outer", "root-id", true, spanbuf.Sink{Kind: spanbuf.SinkStderr})
	outer.Log(innerTree)
	outer.Log(spanbuf.EventNode{Event: event.Event{Level: facade.LevelInfo, Message: "sibling"}})
	tree := process.Process(outer.Close(5 * time.Millisecond))

	var buf bytes.Buffer
	if err := (format.Pretty{}).Render(&buf, tree); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), buf.String())
	}
	// inner span header is the non-last child of root: Fork.
	if !strings.Contains(lines[1], "┝━ ") {
		t.Fatalf("expected inner span line to fork, got %q", lines[1])
	}
	// the deeply nested event inherits Line (inner was non-last) + its own Turn.
	if !strings.Contains(lines[2], "│  ┕━ ") {
		t.Fatalf("expected line-then-turn indent on grandchild, got %q", lines[2])
	}
	// sibling is root's last child: Turn.
	if !strings.Contains(lines[3], "┕━ ") {
		t.Fatalf("expected sibling event to turn, got %q", lines[3])
	}
}
