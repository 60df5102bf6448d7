package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"depsort/internal/config"
	"depsort/internal/driver"
	"depsort/internal/observ"
	"depsort/internal/version"
	"depsort/internal/workspace"
)

func init() {
	f := rootCmd.Flags()
	f.BoolP("check", "c", false, "exit non-zero if any manifest is not sorted (or not formatted); write nothing")
	f.BoolP("print", "p", false, "print the sorted manifest to stdout instead of writing it")
	f.BoolP("no-format", "n", false, "skip formatting, only sort")
	f.Bool("check-format", false, "with --check, also fail when a manifest is not formatted")
	f.BoolP("workspace", "w", false, "also process every workspace member")
	f.BoolP("grouped", "g", false, "sort blank-line separated groups independently")
	f.StringSliceP("order", "o", nil, "top-level table order, comma separated")
	f.Bool("crlf", false, "force CRLF line endings (default: keep the input's)")
	f.Bool("case-insensitive", false, "compare keys case-insensitively")
	f.String("tie-break", "original", "order of keys that compare equal (original|case-sensitive)")
	f.Bool("split-kinds", false, "group dependencies by kind (path, git, workspace, registry)")
	f.Int("jobs", 0, "parallel manifests (0 = number of CPUs)")
	f.String("report", "text", "report format (text|json|yaml)")
	f.Bool("cache", false, "cache --check verdicts between runs")
	f.Bool("no-verify", false, "skip the check that decoded data is unchanged")
	f.String("ui", "auto", "progress view (auto|on|off)")

	rootCmd.MarkFlagsMutuallyExclusive("check", "print")
}

type sortFlags struct {
	check       bool
	print       bool
	checkFormat bool
	workspace   bool
	jobs        int
	report      reportFormat
	cache       bool
	noVerify    bool
	ui          uiMode
	quiet       bool
	timings     bool
}

func readSortFlags(cmd *cobra.Command) (sortFlags, error) {
	f := cmd.Flags()
	var sf sortFlags
	var err error
	get := func(name string) bool {
		v, gerr := f.GetBool(name)
		if gerr != nil && err == nil {
			err = gerr
		}
		return v
	}
	sf.check = get("check")
	sf.print = get("print")
	sf.checkFormat = get("check-format")
	sf.workspace = get("workspace")
	sf.cache = get("cache")
	sf.noVerify = get("no-verify")
	if err != nil {
		return sf, err
	}
	if sf.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return sf, err
	}
	if sf.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return sf, err
	}
	if sf.jobs, err = f.GetInt("jobs"); err != nil {
		return sf, err
	}
	if sf.jobs < 0 {
		return sf, fmt.Errorf("--jobs must not be negative")
	}

	reportStr, err := f.GetString("report")
	if err != nil {
		return sf, err
	}
	if sf.report, err = parseReportFormat(reportStr); err != nil {
		return sf, err
	}
	uiStr, err := f.GetString("ui")
	if err != nil {
		return sf, err
	}
	if sf.ui, err = readUIMode(uiStr); err != nil {
		return sf, err
	}
	if sf.checkFormat && !sf.check {
		return sf, errors.New("--check-format requires --check")
	}
	return sf, nil
}

func (sf sortFlags) mode() driver.Mode {
	switch {
	case sf.check:
		return driver.ModeCheck
	case sf.print:
		return driver.ModePrint
	default:
		return driver.ModeWrite
	}
}

func runSort(cmd *cobra.Command, args []string) error {
	sf, err := readSortFlags(cmd)
	if err != nil {
		return err
	}

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	stopProf, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProf()

	timer := observ.NewTimer()
	if sf.timings {
		defer func() { _ = timer.WriteSummary(cmd.ErrOrStderr()) }()
	}

	var cfg config.Config
	err = timer.Measure("config", func() error {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		cfg, err = config.Load(cwd, cmd.Flags())
		return err
	})
	if err != nil {
		return err
	}

	var paths []string
	err = timer.Measure("discover", func() error {
		paths, err = collectPaths(args, sf.workspace)
		return err
	})
	if err != nil {
		return err
	}

	opts := driver.Options{
		Mode:     sf.mode(),
		Jobs:     sf.jobs,
		NoVerify: sf.noVerify,
		Version:  version.Version,
	}
	if sf.cache && opts.Mode == driver.ModeCheck {
		cache, err := driver.OpenCache("depsort")
		if err != nil {
			// без кэша работаем как обычно
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: cache disabled: %v\n", err)
		} else {
			opts.Cache = cache
		}
	}

	m := cfg.Matcher()
	var results []driver.Result
	useUI := !sf.quiet && opts.Mode != driver.ModePrint && sf.report == reportText && shouldUseTUI(sf.ui, len(paths))
	err = timer.Measure("run", func() error {
		var err error
		if useUI {
			results, err = runWithUI(cmd.Context(), "Sorting manifests", paths, m, cfg, opts)
		} else {
			results, err = driver.Run(cmd.Context(), paths, m, cfg, opts)
		}
		return err
	})
	if err != nil {
		return err
	}

	rep := newReport(opts.Mode, results)
	err = timer.Measure("report", func() error {
		out := cmd.OutOrStdout()
		switch {
		case opts.Mode == driver.ModePrint:
			return writePrinted(out, cmd.ErrOrStderr(), results)
		case sf.report == reportText:
			return writeText(out, cmd.ErrOrStderr(), rep, sf.quiet)
		default:
			return writeStructured(out, rep, sf.report)
		}
	})
	if err != nil {
		return err
	}

	if rep.Failed {
		return driver.ErrFailed
	}
	return nil
}

// collectPaths returns the explicit paths (default: the working directory)
// and, with --workspace and at most one path, the workspace members.
func collectPaths(args []string, withWorkspace bool) ([]string, error) {
	paths := make([]string, 0, len(args))
	for _, a := range args {
		if a = strings.TrimSpace(a); a != "" {
			paths = append(paths, a)
		}
	}
	if len(paths) == 0 {
		paths = append(paths, ".")
	}
	if !withWorkspace || len(paths) > 1 {
		return paths, nil
	}
	members, err := workspace.Discover(paths[0])
	if err != nil {
		return nil, err
	}
	return append(paths, members...), nil
}
