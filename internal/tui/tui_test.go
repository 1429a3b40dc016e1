package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/handiism/panels-downloader/internal/download"
	"github.com/handiism/panels-downloader/internal/panels"
)

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model
}

func TestNewModel(t *testing.T) {
	m := NewModel()
	if m.state != StateInput {
		t.Errorf("state = %v, want StateInput", m.state)
	}
	if m.textInput.Value() != panels.DefaultManifestPath {
		t.Errorf("input = %q, want %q", m.textInput.Value(), panels.DefaultManifestPath)
	}
}

func TestModel_ToggleVerbose(t *testing.T) {
	m := NewModel()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	if !m.verbose {
		t.Error("verbose should be on after ctrl+l")
	}
	if m.textInput.Value() != panels.DefaultManifestPath {
		t.Errorf("option keys should not edit the input, got %q", m.textInput.Value())
	}
	if !strings.Contains(m.View(), "[x] Verbose output") {
		t.Error("view should show the verbose option as checked")
	}
}

func TestModel_InitError(t *testing.T) {
	m := NewModel()
	m.state = StateInitializing

	m = update(t, m, InitDoneMsg{Err: fmt.Errorf("load: %w", panels.ErrManifestEmpty)})
	if m.state != StateError {
		t.Fatalf("state = %v, want StateError", m.state)
	}
	if !strings.Contains(m.View(), `does not have a "data" property`) {
		t.Error("view should explain the empty manifest")
	}
}

func TestModel_DownloadDone(t *testing.T) {
	m := NewModel()
	m.state = StateDownloading

	m = update(t, m, DownloadDoneMsg{Summary: download.Summary{Total: 3, Succeeded: 2, Failed: 1}})
	if m.state != StateComplete {
		t.Fatalf("state = %v, want StateComplete", m.state)
	}

	view := m.View()
	for _, want := range []string{"Succeeded: 2", "Failed: 1"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_ProgressLogFiltering(t *testing.T) {
	m := NewModel()
	m.state = StateDownloading
	m.events = make(chan download.ProgressEvent)

	m = update(t, m, ProgressMsg{Event: download.ProgressEvent{Message: "hidden", Level: download.LevelVerbose}})
	m = update(t, m, ProgressMsg{Event: download.ProgressEvent{Message: "Saved image", Level: download.LevelSuccess}})

	if len(m.logs) != 1 || m.logs[0].Message != "Saved image" {
		t.Errorf("logs = %+v, want only the success event", m.logs)
	}

	for i := 0; i < maxLogLines+5; i++ {
		m = update(t, m, ProgressMsg{Event: download.ProgressEvent{Message: "x", Level: download.LevelInfo}})
	}
	if len(m.logs) != maxLogLines {
		t.Errorf("log count = %d, want %d", len(m.logs), maxLogLines)
	}
}

func TestForwardEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := make(chan download.ProgressEvent)
	emit := forwardEvents(ctx, events)

	// Nobody is reading: a verbose event is dropped instead of blocking.
	emit(download.ProgressEvent{Message: "noise", Level: download.LevelVerbose})

	go emit(download.ProgressEvent{Message: "Failed to download x: HTTP 404", Level: download.LevelError})
	select {
	case got := <-events:
		if got.Level != download.LevelError {
			t.Errorf("got %+v, want the error event", got)
		}
	case <-time.After(time.Second):
		t.Fatal("error event was not delivered")
	}

	cancel()
	done := make(chan struct{})
	go func() {
		emit(download.ProgressEvent{Message: "late", Level: download.LevelInfo})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("emit should give up once ctx is done")
	}
}

func TestModel_InitFailureClosesEvents(t *testing.T) {
	m := NewModel()
	m.textInput.SetValue(filepath.Join(t.TempDir(), "missing.json"))
	m.events = make(chan download.ProgressEvent, 64)

	msg, ok := m.initializeDownload()().(InitDoneMsg)
	if !ok || msg.Err == nil {
		t.Fatalf("got %+v, want an InitDoneMsg with an error", msg)
	}

	assertClosed(t, m.events)
	if got := m.waitForEvent()(); got != nil {
		t.Errorf("waitForEvent() = %v, want nil after the channel is closed", got)
	}
}

func TestModel_StartDownloadClosesEvents(t *testing.T) {
	m := NewModel()
	m.events = make(chan download.ProgressEvent, 64)

	if msg, ok := m.startDownload()().(DownloadDoneMsg); !ok || msg.Err == nil {
		t.Fatalf("got %+v, want a DownloadDoneMsg with an error", msg)
	}
	assertClosed(t, m.events)
}

func assertClosed(t *testing.T, events chan download.ProgressEvent) {
	t.Helper()
	timeout := time.After(time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("event channel was not closed")
		}
	}
}
