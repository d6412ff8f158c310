package observability

import (
	"context"
	"testing"
	"time"
)

// recordingPipelineHooks counts pipeline events for assertions.
type recordingPipelineHooks struct {
	NoopPipelineHooks
	parseStarts int
	renderDone  int
}

func (r *recordingPipelineHooks) OnParseStart(ctx context.Context, kind, path string) {
	r.parseStarts++
}

func (r *recordingPipelineHooks) OnRenderComplete(ctx context.Context, formats []string, d time.Duration, err error) {
	r.renderDone++
}

// recordingCacheHooks counts cache events for assertions.
type recordingCacheHooks struct {
	NoopCacheHooks
	hits   int
	misses int
}

func (r *recordingCacheHooks) OnCacheHit(ctx context.Context, keyType string)  { r.hits++ }
func (r *recordingCacheHooks) OnCacheMiss(ctx context.Context, keyType string) { r.misses++ }

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()

	// Calls on default hooks must not panic.
	ctx := context.Background()
	Pipeline().OnParseStart(ctx, "dependency", "/proj")
	Pipeline().OnAnalyzeComplete(ctx, "structure", time.Second, nil)
	Cache().OnCacheHit(ctx, "graph")
}

func TestSetPipelineHooks(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingPipelineHooks{}
	SetPipelineHooks(rec)

	ctx := context.Background()
	Pipeline().OnParseStart(ctx, "dependency", "/proj")
	Pipeline().OnParseStart(ctx, "structure", "/proj")
	Pipeline().OnRenderComplete(ctx, []string{"svg"}, time.Millisecond, nil)

	if rec.parseStarts != 2 {
		t.Errorf("parseStarts = %d, want 2", rec.parseStarts)
	}
	if rec.renderDone != 1 {
		t.Errorf("renderDone = %d, want 1", rec.renderDone)
	}
}

func TestSetCacheHooks(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingCacheHooks{}
	SetCacheHooks(rec)

	ctx := context.Background()
	Cache().OnCacheHit(ctx, "graph")
	Cache().OnCacheMiss(ctx, "artifact")
	Cache().OnCacheMiss(ctx, "layout")

	if rec.hits != 1 || rec.misses != 2 {
		t.Errorf("hits = %d, misses = %d, want 1 and 2", rec.hits, rec.misses)
	}
}

func TestSetNilHooksKeepsCurrent(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingPipelineHooks{}
	SetPipelineHooks(rec)
	SetPipelineHooks(nil)

	Pipeline().OnParseStart(context.Background(), "dependency", "/proj")
	if rec.parseStarts != 1 {
		t.Error("nil registration replaced existing hooks")
	}
}

func TestReset(t *testing.T) {
	rec := &recordingPipelineHooks{}
	SetPipelineHooks(rec)
	Reset()

	Pipeline().OnParseStart(context.Background(), "dependency", "/proj")
	if rec.parseStarts != 0 {
		t.Error("Reset did not restore no-op hooks")
	}
}
