package download

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/handiism/panels-downloader/internal/config"
	"github.com/handiism/panels-downloader/internal/http"
	ioutils "github.com/handiism/panels-downloader/internal/io"
	"github.com/handiism/panels-downloader/internal/model"
	"github.com/handiism/panels-downloader/internal/panels"
	"golang.org/x/sync/errgroup"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a download progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Manager resolves a manifest into download tasks and runs them.
type Manager struct {
	settings     *config.Settings
	httpClient   *http.Client
	loader       *panels.Loader
	imageService *ioutils.ImageService

	tasks          []*model.Task
	skippedEntries int
	outcomes       []Outcome
	startedAt      time.Time
	finishedAt     time.Time

	receivedBytes   int64
	downloadedFiles int32
	failedFiles     int32

	onProgress func(ProgressEvent)
	mu         sync.RWMutex
}

// NewManager creates a new download Manager.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) *Manager {
	return &Manager{
		settings:     settings,
		httpClient:   http.NewClient(settings.ToClientConfig()),
		loader:       panels.NewLoader(),
		imageService: ioutils.NewImageService(),
		onProgress:   onProgress,
	}
}

// Initialize loads the manifest and resolves its entries into tasks.
//
// panels.ErrManifestEmpty and panels.ErrManifestMalformed are returned as
// is; no task is created in that case.
func (m *Manager) Initialize(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	manifest, err := m.loader.LoadFile(m.settings.ManifestPath)
	if err != nil {
		return err
	}

	var tasks []*model.Task
	skipped := manifest.Invalid
	for _, key := range manifest.Keys() {
		task, ok := model.NewTask(key, manifest.Entries[key], m.settings.DownloadsPath)
		if !ok {
			skipped++
			m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping %s: no dhd or dsd URL", key), Level: LevelVerbose})
			continue
		}
		tasks = append(tasks, task)
	}
	if manifest.Invalid > 0 {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Skipped %d manifest entries that are not objects", manifest.Invalid), Level: LevelWarning})
	}

	m.mu.Lock()
	m.tasks = tasks
	m.skippedEntries = skipped
	m.outcomes = nil
	m.mu.Unlock()

	m.progress(ProgressEvent{Message: fmt.Sprintf("Found %d images in %s (%d entries skipped)", len(tasks), m.settings.ManifestPath, skipped), Level: LevelInfo})
	return nil
}

// StartDownloads creates the downloads directory and downloads every task.
//
// All tasks run concurrently; the per-host cap of the HTTP client decides
// how many requests are actually in flight. A failing task never stops the
// others. StartDownloads returns after every task has finished, with an
// error only if the directory cannot be created or ctx was cancelled.
func (m *Manager) StartDownloads(ctx context.Context) error {
	m.mu.Lock()
	m.startedAt = time.Now()
	tasks := m.tasks
	outcomes := make([]Outcome, len(tasks))
	m.mu.Unlock()

	created, err := ioutils.EnsureDir(m.settings.DownloadsPath)
	if err != nil {
		return fmt.Errorf("create downloads directory: %w", err)
	}
	if created {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Created directory: %s", m.settings.DownloadsPath), Level: LevelInfo})
	}

	var g errgroup.Group
	for i, task := range tasks {
		g.Go(func() error {
			outcomes[i] = m.downloadTask(ctx, task)
			return nil
		})
	}
	_ = g.Wait()

	m.mu.Lock()
	m.outcomes = outcomes
	m.finishedAt = time.Now()
	m.mu.Unlock()

	summary := m.Summary()
	if summary.Failed == 0 {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Downloaded %d images", summary.Succeeded), Level: LevelSuccess})
	} else {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Finished with %d failed downloads", summary.Failed), Level: LevelWarning})
	}

	return ctx.Err()
}

// GetProgress returns current download progress.
func (m *Manager) GetProgress() (received int64, filesDone, filesFailed, filesTotal int32) {
	m.mu.RLock()
	total := int32(len(m.tasks))
	m.mu.RUnlock()
	return atomic.LoadInt64(&m.receivedBytes), atomic.LoadInt32(&m.downloadedFiles),
		atomic.LoadInt32(&m.failedFiles), total
}

// Tasks returns the resolved tasks in manifest key order.
func (m *Manager) Tasks() []*model.Task {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*model.Task(nil), m.tasks...)
}

// TaskNames returns the file name of every resolved task.
func (m *Manager) TaskNames() []string {
	tasks := m.Tasks()
	names := make([]string, len(tasks))
	for i, task := range tasks {
		names[i] = filepath.Base(task.Path)
	}
	return names
}

// Outcomes returns the result of every task of the last run.
func (m *Manager) Outcomes() []Outcome {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Outcome(nil), m.outcomes...)
}

// Summary counts the outcomes of the last run.
//
// Entries without a usable URL count as skipped.
func (m *Manager) Summary() Summary {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := Summary{Total: len(m.tasks), Skipped: m.skippedEntries}
	for _, o := range m.outcomes {
		switch o.Status {
		case StatusSucceeded:
			s.Succeeded++
			s.Bytes += o.Bytes
		case StatusFailed:
			s.Failed++
		}
	}
	return s
}

func (m *Manager) downloadTask(ctx context.Context, task *model.Task) Outcome {
	var last int64
	n, err := m.httpClient.DownloadFile(ctx, task.URL, task.Path, func(written, total int64) {
		atomic.AddInt64(&m.receivedBytes, written-last)
		last = written
	})
	if err != nil {
		atomic.AddInt32(&m.failedFiles, 1)
		m.progress(ProgressEvent{Message: failureMessage(task, err), Level: LevelError})
		return Outcome{Task: task, Status: StatusFailed, Err: err}
	}

	atomic.AddInt32(&m.downloadedFiles, 1)

	msg := fmt.Sprintf("Saved image to %s", task.Path)
	if info, err := m.imageService.Describe(ctx, task.Path); err == nil {
		msg = fmt.Sprintf("%s (%s)", msg, info)
	}
	m.progress(ProgressEvent{Message: msg, Level: LevelSuccess})

	return Outcome{Task: task, Status: StatusSucceeded, Bytes: n}
}

func failureMessage(task *model.Task, err error) string {
	var statusErr *http.StatusError
	var transportErr *http.TransportError
	switch {
	case errors.As(err, &statusErr):
		return fmt.Sprintf("Failed to download %s: HTTP %d", task.URL, statusErr.StatusCode)
	case errors.As(err, &transportErr):
		return fmt.Sprintf("Error downloading %s: %v", task.URL, transportErr.Err)
	default:
		return fmt.Sprintf("Error saving %s: %v", task.URL, err)
	}
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
