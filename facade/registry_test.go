package facade_test

import (
	"context"
	"sync"
	"testing"

	"github.com/QnnOkabayashi/tracing-tests/facade"
)

type recorder struct {
	mu      sync.Mutex
	opened  []facade.SpanID
	closed  []facade.SpanID
	entered []facade.SpanID
	events  int
}

func (r *recorder) NewSpan(id facade.SpanID, parent facade.SpanID, hasParent bool, name string, fields facade.Fields) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opened = append(r.opened, id)
}

func (r *recorder) OnEnter(id facade.SpanID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entered = append(r.entered, id)
}

func (r *recorder) OnExit(id facade.SpanID) {}

func (r *recorder) OnClose(id facade.SpanID, parent facade.SpanID, hasParent bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = append(r.closed, id)
}

func (r *recorder) OnEvent(level facade.Level, current facade.SpanID, hasCurrent bool, fields facade.Fields) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events++
}

func TestNewSpanAssignsDistinctIDs(t *testing.T) {
	rec := &recorder{}
	reg := facade.NewRegistry(rec)

	_, s1 := reg.NewSpan(context.Background(), "a")
	_, s2 := reg.NewSpan(context.Background(), "b")

	if s1.ID() == s2.ID() {
		t.Fatalf("expected distinct span ids, got %d and %d", s1.ID(), s2.ID())
	}
}

func TestNestedSpanBecomesCurrent(t *testing.T) {
	rec := &recorder{}
	reg := facade.NewRegistry(rec)

	ctx, outer := reg.NewSpan(context.Background(), "outer")
	ctx, inner := reg.NewSpan(ctx, "inner")

	current, ok := facade.CurrentSpan(ctx)
	if !ok || current.ID() != inner.ID() {
		t.Fatalf("expected current span to be inner (%d), got %v (ok=%v)", inner.ID(), current, ok)
	}
	_ = outer
}

func TestEventWithNoCurrentSpanIsDelivered(t *testing.T) {
	rec := &recorder{}
	reg := facade.NewRegistry(rec)

	reg.Event(context.Background(), facade.LevelInfo, facade.Field{Name: "message", Value: "hi"})

	if rec.events != 1 {
		t.Fatalf("expected one event recorded, got %d", rec.events)
	}
}

func TestCloseReportsSpanOnce(t *testing.T) {
	rec := &recorder{}
	reg := facade.NewRegistry(rec)

	_, s := reg.NewSpan(context.Background(), "once")
	s.Enter()
	s.Exit()
	s.Close()

	if len(rec.closed) != 1 || rec.closed[0] != s.ID() {
		t.Fatalf("expected span %d to be closed exactly once, got %v", s.ID(), rec.closed)
	}
}
