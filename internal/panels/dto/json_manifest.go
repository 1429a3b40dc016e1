package dto

import (
	"encoding/json"

	"github.com/handiism/panels-downloader/internal/model"
)

// JSONManifest is the top level of a media manifest file.
type JSONManifest struct {
	Data json.RawMessage `json:"data"`
}

// JSONEntry is one value of the manifest's "data" mapping.
//
// The URL fields are kept raw so that a value of the wrong type only
// disqualifies that field instead of the whole entry.
type JSONEntry struct {
	HD json.RawMessage `json:"dhd"`
	SD json.RawMessage `json:"dsd"`
}

// ToEntry converts the JSON entry to a model.Entry.
func (e *JSONEntry) ToEntry() model.Entry {
	return model.Entry{
		HD: rawString(e.HD),
		SD: rawString(e.SD),
	}
}

// rawString returns the string held by raw, or "" if raw is not a JSON string.
func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
