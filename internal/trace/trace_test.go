package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"off", "error", "phase", "detail", "debug"} {
		lvl, err := ParseLevel(strings.ToUpper(name))
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", name, err)
		}
		if lvl.String() != name {
			t.Fatalf("round trip: want %q, got %q", name, lvl.String())
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestShouldEmit(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeError, false},
		{LevelError, ScopeError, true},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeModule, false},
		{LevelDetail, ScopeModule, true},
		{LevelDetail, ScopeDebug, false},
		{LevelDebug, ScopeDebug, true},
	}
	for _, tc := range cases {
		if got := tc.level.ShouldEmit(tc.scope); got != tc.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tc.level, tc.scope, got, tc.want)
		}
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Fatal("off tracer must be disabled")
	}
}

func TestStreamTextSpans(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelDetail, Output: &buf, Format: FormatText})
	if err != nil {
		t.Fatal(err)
	}
	ctx := WithTracer(context.Background(), tr)

	ctx, run := Start(ctx, ScopeDriver, "run")
	mctx, m := Start(ctx, ScopePass, "manifest")
	Point(mctx, ScopeModule, "cache", "hit", map[string]string{"b": "2", "a": "1"})
	Point(mctx, ScopeDebug, "hidden", "", nil)
	m.End("ok")
	run.End("")

	out := buf.String()
	for _, want := range []string{"→ run", "  → manifest", "  • cache (hit) {a=1, b=2}", "  ← manifest (ok)", "← run"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug event emitted at detail level:\n%s", out)
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	span := Begin(tr, ScopePass, "manifest", 0)
	span.WithExtra("path", "Cargo.toml").End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 events, got %d:\n%s", len(lines), buf.String())
	}
	var ev map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev["kind"] != "end" || ev["name"] != "manifest" {
		t.Fatalf("unexpected end event: %v", ev)
	}
	extra, ok := ev["extra"].(map[string]any)
	if !ok || extra["path"] != "Cargo.toml" {
		t.Fatalf("extra not encoded: %v", ev)
	}
}

func TestNoTracerInContext(t *testing.T) {
	ctx, span := Start(context.Background(), ScopeDriver, "run")
	if span.ID() != 0 {
		t.Fatal("span without tracer must be inert")
	}
	if CurrentSpan(ctx).SpanID != 0 {
		t.Fatal("context must not carry a span")
	}
	span.End("")
}
