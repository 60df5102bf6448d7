package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"depsort/internal/driver"
)

func newModel(files ...string) *progressModel {
	events := make(chan driver.Event)
	return NewProgressModel("sorting", files, events).(*progressModel)
}

func TestApplyEventTracksStatus(t *testing.T) {
	m := newModel("a/Cargo.toml", "b/Cargo.toml")

	m.applyEvent(driver.Event{File: "a/Cargo.toml", Stage: driver.StageSort, Status: driver.StatusWorking})
	if got := m.items[0].status; got != "sorting" {
		t.Fatalf("status = %q, want sorting", got)
	}
	m.applyEvent(driver.Event{File: "b/Cargo.toml", Stage: driver.StageRead, Status: driver.StatusError, Err: errors.New("boom")})
	if got := m.items[1].status; got != "error" {
		t.Fatalf("status = %q, want error", got)
	}
	// неизвестный файл игнорируется
	if cmd := m.applyEvent(driver.Event{File: "c/Cargo.toml", Status: driver.StatusDone}); cmd != nil {
		t.Fatalf("unexpected command for unknown file")
	}
}

func TestProgressFromStageIsMonotonic(t *testing.T) {
	stages := []driver.Stage{driver.StageRead, driver.StageSort, driver.StageVerify, driver.StageWrite}
	prev := -1.0
	for _, s := range stages {
		p := progressFromStage(s)
		if p < prev {
			t.Fatalf("progress for %s = %v, below %v", s, p, prev)
		}
		prev = p
	}
}

func TestViewListsFiles(t *testing.T) {
	m := newModel("crate/Cargo.toml")
	m.applyEvent(driver.Event{File: "crate/Cargo.toml", Status: driver.StatusDone})
	model, _ := m.Update(doneMsg{})

	view := model.View()
	if !strings.Contains(view, "crate/Cargo.toml") {
		t.Fatalf("view misses file:\n%s", view)
	}
	if !strings.Contains(view, "done: sorting") {
		t.Fatalf("view misses done header:\n%s", view)
	}
}

func TestUpdateWindowSize(t *testing.T) {
	m := newModel("x")
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.width != 120 {
		t.Fatalf("width = %d, want 120", m.width)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 10); got != "abcdef" {
		t.Fatalf("truncate short = %q", got)
	}
	if got := truncate("abcdefghij", 6); got != "abc..." {
		t.Fatalf("truncate long = %q", got)
	}
	if got := truncate("abcdef", 2); got != "ab" {
		t.Fatalf("truncate tiny = %q", got)
	}
}

func TestViewShowsOutcome(t *testing.T) {
	m := newModel("a/Cargo.toml", "b/Cargo.toml")
	m.applyEvent(driver.Event{File: "a/Cargo.toml", Stage: driver.StageVerify, Status: driver.StatusDone, Outcome: driver.OutcomeUnsorted})
	m.applyEvent(driver.Event{File: "b/Cargo.toml", Stage: driver.StageVerify, Status: driver.StatusDone, Outcome: driver.OutcomeSorted})
	if !m.items[0].finished || m.items[0].status != "unsorted" {
		t.Fatalf("item = %+v, want finished unsorted", m.items[0])
	}
	model, _ := m.Update(doneMsg{})

	view := model.View()
	if !strings.Contains(view, "unsorted") {
		t.Fatalf("view misses verdict:\n%s", view)
	}
	if !strings.Contains(view, "1 sorted, 1 unsorted") {
		t.Fatalf("view misses summary:\n%s", view)
	}
}
