package download

import (
	"encoding/json"
	"io"
	"time"

	ioutils "github.com/handiism/panels-downloader/internal/io"
)

// Report is the JSON run report written by WriteReport.
type Report struct {
	Manifest     string    `json:"manifest"`
	DownloadsDir string    `json:"downloads_dir"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`

	Summary Summary      `json:"summary"`
	Items   []ReportItem `json:"items"`
}

// ReportItem is the result of one task.
type ReportItem struct {
	Key        string `json:"key"`
	URL        string `json:"url"`
	Resolution string `json:"resolution"`
	Path       string `json:"path"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
	Bytes      int64  `json:"bytes,omitempty"`
}

// Report builds the report of the last run. Items follow manifest key order.
func (m *Manager) Report() *Report {
	outcomes := m.Outcomes()

	m.mu.RLock()
	r := &Report{
		Manifest:     m.settings.ManifestPath,
		DownloadsDir: m.settings.DownloadsPath,
		StartedAt:    m.startedAt.UTC(),
		FinishedAt:   m.finishedAt.UTC(),
		Items:        make([]ReportItem, 0, len(outcomes)),
	}
	m.mu.RUnlock()

	r.Summary = m.Summary()
	for _, o := range outcomes {
		item := ReportItem{
			Key:        o.Task.Key,
			URL:        o.Task.URL,
			Resolution: o.Task.Resolution.String(),
			Path:       o.Task.Path,
			Status:     o.Status.String(),
			Bytes:      o.Bytes,
		}
		if o.Err != nil {
			item.Error = o.Err.Error()
		}
		r.Items = append(r.Items, item)
	}
	return r
}

// WriteReport writes the report of the last run to path as indented JSON.
func (m *Manager) WriteReport(path string) error {
	report := m.Report()
	return ioutils.WriteFileAtomic(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	})
}
