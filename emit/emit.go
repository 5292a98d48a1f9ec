// Package emit is the dedicated consumer that drains the emission channel
// and writes completed trees to their sinks. It never runs inline with a
// producer: ingestion hands it a tree and moves on.
package emit

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/QnnOkabayashi/tracing-tests/format"
	"github.com/QnnOkabayashi/tracing-tests/process"
	"github.com/QnnOkabayashi/tracing-tests/spanbuf"
)

type message struct {
	tree process.ProcessedTree
	kind format.Kind
	sink spanbuf.Sink
}

// Emitter is a multi-producer, single-consumer queue of completed trees.
// Send never blocks: the queue grows to hold whatever producers hand it,
// matching the distilled design's "unbounded MPSC" emission channel.
type Emitter struct {
	logger zerolog.Logger
	stdout io.Writer
	stderr io.Writer

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []message
	closed bool
	done   chan struct{}
}

// Option configures an Emitter at construction.
type Option func(*Emitter)

// WithStdout overrides the standard-output sink destination, for tests.
func WithStdout(w io.Writer) Option { return func(e *Emitter) { e.stdout = w } }

// WithStderr overrides the standard-error sink destination, for tests.
func WithStderr(w io.Writer) Option { return func(e *Emitter) { e.stderr = w } }

// WithQueueCapacity preallocates the internal queue's backing array to
// capacity n, avoiding repeated grows under steady load. The queue still
// grows past n whenever it needs to: this tunes allocator churn, not a
// backpressure limit (sends must never block, per §5).
func WithQueueCapacity(n int) Option {
	return func(e *Emitter) {
		if n > 0 {
			e.queue = make([]message, 0, n)
		}
	}
}

// New constructs an Emitter. Call Start to launch its consumer goroutine.
func New(logger zerolog.Logger, opts ...Option) *Emitter {
	e := &Emitter{
		logger: logger.With().Str("component", "emitter").Logger(),
		stdout: os.Stdout,
		stderr: os.Stderr,
		done:   make(chan struct{}),
	}
	e.cond = sync.NewCond(&e.mu)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start launches the consumer goroutine. Call once.
func (e *Emitter) Start() {
	go e.run()
}

// Send enqueues a completed tree for writing to sink in the given format.
// It panics if called after Stop, matching §7's "send on a closed channel
// is a programmer contract violation".
func (e *Emitter) Send(tree process.ProcessedTree, kind format.Kind, sink spanbuf.Sink) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		panic("emit: send on a closed emitter, this is a bug")
	}
	e.queue = append(e.queue, message{tree: tree, kind: kind, sink: sink})
	e.mu.Unlock()
	e.cond.Signal()
}

// Stop signals the consumer to drain the remaining queue and exit, then
// blocks until it has.
func (e *Emitter) Stop() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
	e.cond.Signal()
	<-e.done
}

func (e *Emitter) run() {
	defer close(e.done)
	for {
		e.mu.Lock()
		for len(e.queue) == 0 && !e.closed {
			e.cond.Wait()
		}
		if len(e.queue) == 0 && e.closed {
			e.mu.Unlock()
			return
		}
		msg := e.queue[0]
		e.queue = e.queue[1:]
		e.mu.Unlock()

		e.write(msg)
	}
}

// write panics on any I/O failure, deliberately left unrecovered in run's
// goroutine: a sink that cannot be opened or written to is fatal per §7,
// and in Go that means taking the whole process down rather than limping
// on with a consumer that silently stopped emitting.
func (e *Emitter) write(msg message) {
	w, closer, color, err := e.resolve(msg.sink, msg.kind)
	if err != nil {
		e.logger.Error().Err(err).Str("path", msg.sink.Path).Msg("failed to open sink")
		panic(fmt.Sprintf("emit: failed to open sink: %v", err))
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	if err := format.Render(w, msg.kind, msg.tree, color); err != nil {
		e.logger.Error().Err(err).Msg("failed to write formatted tree")
		panic(fmt.Sprintf("emit: failed to write formatted tree: %v", err))
	}
}

// resolve opens the writer for sink, plus an optional Closer (only File
// sinks need closing) and whether the pretty formatter should color its
// level column, which it only does for a terminal stdout.
func (e *Emitter) resolve(sink spanbuf.Sink, kind format.Kind) (io.Writer, io.Closer, bool, error) {
	switch sink.Kind {
	case spanbuf.SinkStdout:
		color := kind == format.KindPretty && isStdoutTerminal(e.stdout)
		return e.stdout, nil, color, nil
	case spanbuf.SinkFile:
		f, err := os.OpenFile(sink.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, false, err
		}
		return f, f, false, nil
	default:
		return e.stderr, nil, false, nil
	}
}

func isStdoutTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
