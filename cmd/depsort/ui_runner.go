package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"depsort/internal/config"
	"depsort/internal/driver"
	"depsort/internal/match"
	"depsort/internal/ui"
	"depsort/internal/workspace"
)

type runOutcome struct {
	results []driver.Result
	err     error
}

// runWithUI executes the driver while a Bubble Tea program renders progress.
func runWithUI(ctx context.Context, title string, files []string, m match.Matcher, cfg config.Config, opts driver.Options) ([]driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan runOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.Run(ctx, files, m, cfg, optsCopy)
		outcomeCh <- runOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, progressFiles(files), events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// программа могла выйти раньше; не даём воркерам заблокироваться на канале
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

// progressFiles maps inputs to the manifest paths the driver reports on.
func progressFiles(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if manifest, err := workspace.ManifestPath(p); err == nil {
			out = append(out, manifest)
		}
	}
	return out
}
