package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"depsort/internal/config"
	"depsort/internal/engine"
	"depsort/internal/match"
	"depsort/internal/source"
	"depsort/internal/trace"
	"depsort/internal/workspace"
)

// Mode selects what happens with the transformed text.
type Mode uint8

const (
	// ModeWrite rewrites manifests whose text changed.
	ModeWrite Mode = iota
	// ModeCheck only reports verdicts.
	ModeCheck
	// ModePrint returns the text without touching files.
	ModePrint
)

func (m Mode) String() string {
	switch m {
	case ModeWrite:
		return "write"
	case ModeCheck:
		return "check"
	case ModePrint:
		return "print"
	default:
		return "unknown"
	}
}

// Options configures a run.
type Options struct {
	Mode Mode
	// Jobs bounds the worker pool; <= 0 means GOMAXPROCS.
	Jobs int
	// NoVerify skips the data-preservation check.
	NoVerify bool
	// Cache stores check verdicts; nil disables it. Used in ModeCheck only.
	Cache *Cache
	// Version is mixed into cache keys.
	Version  string
	Progress ProgressSink
}

// Result captures the outcome for one manifest.
type Result struct {
	Path      string // manifest file
	Crate     string // name of the directory holding the manifest
	Sorted    bool
	Formatted bool
	Changed   bool // final text differs from the input
	Written   bool
	Cached    bool
	Output    []byte // ModePrint only
	Err       error
}

// Failed reports whether the result makes the run fail in the given mode.
func (r Result) Failed(mode Mode) bool {
	if r.Err != nil {
		return true
	}
	return mode == ModeCheck && (!r.Sorted || !r.Formatted)
}

// Run processes manifests concurrently. Each path is a manifest file or a
// directory containing one. Duplicate paths are processed once. Results
// follow the order of first appearance. The returned error is only the
// context error; per-manifest failures live in Result.Err.
func Run(ctx context.Context, paths []string, m match.Matcher, cfg config.Config, opts Options) ([]Result, error) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "run")
	defer span.End("")

	results := dedupe(paths)
	span.WithExtra("manifests", strconv.Itoa(len(results))).WithExtra("mode", opts.Mode.String())
	if len(results) == 0 {
		return results, nil
	}
	for i := range results {
		if results[i].Err == nil {
			emit(opts.Progress, Event{File: results[i].Path, Stage: StageRead, Status: StatusQueued})
		}
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(results)))
	for i := range results {
		if results[i].Err != nil {
			continue
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			process(gctx, &results[i], m, cfg, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// dedupe resolves directories to manifests and drops repeated paths.
func dedupe(paths []string) []Result {
	seen := make(map[string]bool, len(paths))
	out := make([]Result, 0, len(paths))
	for _, p := range paths {
		manifest, err := workspace.ManifestPath(p)
		if err != nil {
			out = append(out, Result{Path: p, Crate: crateName(p), Err: err})
			continue
		}
		key := filepath.Clean(manifest)
		if abs, err := filepath.Abs(manifest); err == nil {
			key = abs
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, Result{Path: manifest, Crate: crateName(manifest)})
	}
	return out
}

func crateName(manifest string) string {
	dir := filepath.Dir(manifest)
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return filepath.Base(dir)
}

func process(ctx context.Context, res *Result, m match.Matcher, cfg config.Config, opts Options) {
	ctx, span := trace.Start(ctx, trace.ScopePass, "manifest")
	span.WithExtra("path", res.Path)
	start := time.Now()
	stage := StageRead

	fail := func(err error) {
		res.Err = err
		span.End("error")
		trace.Point(ctx, trace.ScopeError, "manifest failed", err.Error(), map[string]string{"path": res.Path})
		emit(opts.Progress, Event{File: res.Path, Stage: stage, Status: StatusError, Err: err, Elapsed: time.Since(start)})
	}
	step := func(s Stage) {
		stage = s
		emit(opts.Progress, Event{File: res.Path, Stage: s, Status: StatusWorking})
	}

	step(StageRead)
	f, err := source.Load(res.Path)
	if err != nil {
		fail(fmt.Errorf("no file found at %s: %w", res.Path, err))
		return
	}

	var key Digest
	useCache := opts.Mode == ModeCheck && opts.Cache != nil
	if useCache {
		key, err = Key(f.Content, cfg, opts.Version)
		if err != nil {
			useCache = false
			trace.Point(ctx, trace.ScopeModule, "cache", "disabled", map[string]string{"err": err.Error()})
		} else if v, ok, err := opts.Cache.Get(key); err == nil && ok {
			res.Sorted, res.Formatted, res.Changed, res.Cached = v.Sorted, v.Formatted, v.Changed, true
			trace.Point(ctx, trace.ScopeModule, "cache", "hit", nil)
			span.End("cached")
			emit(opts.Progress, Event{File: res.Path, Stage: stage, Status: StatusDone, Outcome: outcomeOf(res, opts.Mode), Elapsed: time.Since(start)})
			return
		}
	}

	step(StageSort)
	out, err := engine.Transform(res.Path, f.Content, m, cfg)
	if err != nil {
		fail(err)
		return
	}
	res.Sorted = out.AlreadySorted
	res.Formatted = out.AlreadyFormatted
	res.Changed = out.Changed(f.Content)

	if !opts.NoVerify && res.Changed {
		step(StageVerify)
		if err := engine.Verify(f.Content, out.Final); err != nil {
			fail(fmt.Errorf("%s: %w", res.Path, err))
			return
		}
	}

	switch opts.Mode {
	case ModePrint:
		res.Output = out.Final
	case ModeCheck:
		if useCache {
			v := Verdict{Sorted: res.Sorted, Formatted: res.Formatted, Changed: res.Changed}
			if err := opts.Cache.Put(key, &v); err != nil {
				trace.Point(ctx, trace.ScopeModule, "cache", "put failed", map[string]string{"err": err.Error()})
			}
		}
	case ModeWrite:
		if res.Changed {
			step(StageWrite)
			if err := writeFile(res.Path, out.Final); err != nil {
				fail(err)
				return
			}
			res.Written = true
		}
	}

	outcome := outcomeOf(res, opts.Mode)
	span.End(string(outcome))
	emit(opts.Progress, Event{File: res.Path, Stage: stage, Status: StatusDone, Outcome: outcome, Elapsed: time.Since(start)})
}

// writeFile replaces the file keeping its permission bits.
func writeFile(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, data, mode.Perm()); err != nil {
		return fmt.Errorf("%w %s: %w", ErrWrite, path, err)
	}
	return nil
}

// ErrWrite wraps failures to replace a manifest on disk.
var ErrWrite = errors.New("write")

// ErrFailed is returned by callers when any result failed.
var ErrFailed = errors.New("some Cargo.toml files are not sorted or formatted")

// AnyFailed reports whether a run should exit non-zero.
func AnyFailed(results []Result, mode Mode) bool {
	for _, r := range results {
		if r.Failed(mode) {
			return true
		}
	}
	return false
}
