package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/flowtower/pkg/cache"
	"github.com/matzehuels/flowtower/pkg/layout"
	"github.com/matzehuels/flowtower/pkg/observability"
)

const welcomeDoc = `{
  "title": "Welcome",
  "root": {
    "id": "welcome",
    "kind": "sequence",
    "steps": [
      {"id": "greet", "label": "Say hello"},
      {
        "id": "known",
        "kind": "if",
        "condition": {"id": "check", "label": "Known user?"},
        "branches": [
          {"id": "yes", "kind": "sequence", "label": "yes", "steps": [{"id": "back", "label": "Welcome back"}]},
          {"id": "no", "kind": "sequence", "label": "no", "steps": [{"id": "signup", "label": "Sign up"}]}
        ]
      }
    ]
  }
}`

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewMemoryCache(64)
	if err != nil {
		t.Fatal(err)
	}
	return NewRunner(c, nil, nil)
}

func TestRunnerExecute(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	opts := Options{Data: []byte(welcomeDoc), Formats: []string{"svg", "json", "dot"}}

	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Document.Title != "Welcome" {
		t.Errorf("Title = %q", res.Document.Title)
	}
	if res.Stats.NodeCount != 8 {
		t.Errorf("NodeCount = %d, want 8", res.Stats.NodeCount)
	}
	// greet, check, choice, back, signup
	if res.Stats.BoxCount != 5 || res.Stats.EdgeCount != 8 {
		t.Errorf("boxes/edges = %d/%d, want 5/8", res.Stats.BoxCount, res.Stats.EdgeCount)
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Error("first run hit the cache")
	}
	if len(res.DocumentHash) != 64 {
		t.Errorf("DocumentHash = %q", res.DocumentHash)
	}

	if !strings.Contains(string(res.Artifacts["svg"]), "<svg") {
		t.Error("svg artifact missing <svg>")
	}
	if !strings.Contains(string(res.Artifacts["json"]), `"axis_x"`) {
		t.Error("json artifact is not a layout")
	}
	if !strings.Contains(string(res.Artifacts["dot"]), "digraph G") {
		t.Error("dot artifact is not DOT")
	}

	again, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}
	if !again.CacheInfo.LayoutHit || !again.CacheInfo.RenderHit {
		t.Errorf("second run cache info = %+v, want both hits", again.CacheInfo)
	}
	if string(again.Artifacts["svg"]) != string(res.Artifacts["svg"]) {
		t.Error("cached svg differs from rendered svg")
	}
}

func TestRunnerRefresh(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	opts := Options{Data: []byte(welcomeDoc)}

	if _, err := r.Execute(ctx, opts); err != nil {
		t.Fatal(err)
	}
	opts.Refresh = true
	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Errorf("refresh run cache info = %+v, want misses", res.CacheInfo)
	}
}

func TestRunnerSpacingChangesLayoutKey(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	first, err := r.Execute(ctx, Options{Data: []byte(welcomeDoc)})
	if err != nil {
		t.Fatal(err)
	}

	s := layout.DefaultSpacing()
	s.IntervalY = 60
	second, err := r.Execute(ctx, Options{Data: []byte(welcomeDoc), Spacing: s})
	if err != nil {
		t.Fatal(err)
	}
	if second.CacheInfo.LayoutHit {
		t.Error("changed spacing hit the layout cache")
	}
	if second.Layout.Height <= first.Layout.Height {
		t.Errorf("Height = %v, want more than %v", second.Layout.Height, first.Layout.Height)
	}
}

func TestRunnerDocumentWithoutIDsIsCached(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	opts := Options{Data: []byte(`{"root": {"kind": "sequence", "steps": [{"label": "a"}, {"label": "b"}]}}`)}

	if _, err := r.Execute(ctx, opts); err != nil {
		t.Fatal(err)
	}
	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !res.CacheInfo.LayoutHit {
		t.Error("generated ids changed between runs")
	}
}

func TestRunnerInvalidDocument(t *testing.T) {
	r := newTestRunner(t)
	_, err := r.Execute(context.Background(), Options{Data: []byte(`{"root": `)})
	if err == nil || !strings.Contains(err.Error(), "parse") {
		t.Errorf("Execute() error = %v, want parse error", err)
	}
}

// brokenCache fails every operation.
type brokenCache struct{}

func (brokenCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("disk on fire")
}
func (brokenCache) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("disk on fire")
}
func (brokenCache) Delete(context.Context, string) error { return nil }
func (brokenCache) Close() error                         { return nil }

func TestRunnerCacheFailuresAreNotFatal(t *testing.T) {
	r := NewRunner(brokenCache{}, nil, nil)
	res, err := r.Execute(context.Background(), Options{Data: []byte(welcomeDoc), Formats: []string{"json"}})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(res.Artifacts["json"]) == 0 {
		t.Error("json artifact missing")
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnParseStart(context.Context, string, string) { h.record("parse") }
func (h *recordingHooks) OnLayoutStart(context.Context, int)           { h.record("layout") }
func (h *recordingHooks) OnRenderStart(context.Context, []string)      { h.record("render") }
func (h *recordingHooks) OnCacheHit(_ context.Context, keyType string) { h.record("hit:" + keyType) }

func TestRunnerHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	t.Cleanup(observability.Reset)

	r := newTestRunner(t)
	ctx := context.Background()
	opts := Options{Data: []byte(welcomeDoc)}
	for i := 0; i < 2; i++ {
		if _, err := r.Execute(ctx, opts); err != nil {
			t.Fatal(err)
		}
	}

	got := strings.Join(h.events, " ")
	want := "parse layout render parse hit:layout hit:artifact"
	if got != want {
		t.Errorf("hook events = %q, want %q", got, want)
	}
}
