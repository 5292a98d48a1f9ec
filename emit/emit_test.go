package emit_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/QnnOkabayashi/tracing-tests/emit"
	"github.com/QnnOkabayashi/tracing-tests/event"
	"github.com/QnnOkabayashi/tracing-tests/facade"
	"github.com/QnnOkabayashi/tracing-tests/format"
	"github.com/QnnOkabayashi/tracing-tests/process"
	"github.com/QnnOkabayashi/tracing-tests/spanbuf"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func sampleTree(msg string) process.ProcessedTree {
	return process.Process(spanbuf.EventNode{Event: event.Event{
		Level:   facade.LevelInfo,
		Message: msg,
	}})
}

func TestEmitterWritesToStderrOverride(t *testing.T) {
	var buf bytes.Buffer
	e := emit.New(testLogger(), emit.WithStderr(&buf))
	e.Start()
	e.Send(sampleTree("hello"), format.KindPretty, spanbuf.Sink{Kind: spanbuf.SinkStderr})
	e.Stop()

	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("expected message in output, got %q", buf.String())
	}
}

func TestEmitterWritesToFileAppending(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.jsonl")

	e := emit.New(testLogger())
	e.Start()
	e.Send(sampleTree("first"), format.KindJSON, spanbuf.Sink{Kind: spanbuf.SinkFile, Path: path})
	e.Send(sampleTree("second"), format.KindJSON, spanbuf.Sink{Kind: spanbuf.SinkFile, Path: path})
	e.Stop()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines appended, got %d: %q", len(lines), string(data))
	}
}

func TestEmitterWithQueueCapacityStillDrains(t *testing.T) {
	var buf bytes.Buffer
	e := emit.New(testLogger(), emit.WithStderr(&buf), emit.WithQueueCapacity(8))
	e.Start()
	for i := 0; i < 20; i++ {
		e.Send(sampleTree("drain-marker"), format.KindPretty, spanbuf.Sink{Kind: spanbuf.SinkStderr})
	}
	e.Stop()

	if got := strings.Count(buf.String(), "drain-marker"); got != 20 {
		t.Fatalf("expected all 20 sends to drain past the preallocated capacity, got %d", got)
	}
}

func TestEmitterSendAfterStopPanics(t *testing.T) {
	e := emit.New(testLogger(), emit.WithStderr(io.Discard))
	e.Start()
	e.Stop()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on send after stop")
		}
	}()
	e.Send(sampleTree("late"), format.KindPretty, spanbuf.Sink{Kind: spanbuf.SinkStderr})
}

