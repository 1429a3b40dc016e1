package download

import "github.com/handiism/panels-downloader/internal/model"

// Status is the result of one task.
type Status int

const (
	StatusSucceeded Status = iota
	StatusFailed
)

// String returns the lower-case status name used in reports.
func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is what happened to one task.
type Outcome struct {
	Task   *model.Task
	Status Status

	// Err is set for failed tasks: *http.StatusError, *http.TransportError
	// or a filesystem error.
	Err error

	// Bytes is the number of bytes written for succeeded tasks.
	Bytes int64
}

// Summary counts the outcomes of a run.
type Summary struct {
	Total     int   `json:"total"`
	Succeeded int   `json:"succeeded"`
	Failed    int   `json:"failed"`
	Skipped   int   `json:"skipped"`
	Bytes     int64 `json:"bytes"`
}
